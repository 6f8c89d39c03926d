package admin

import (
	"strings"

	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
)

// HandleCheat исполняет отладочный код. Регистрируется только при
// включенных читах; ход не тратится никогда, мир не тикает.
func HandleCheat(ctx handlers.Context, p api.CheatPayload) (handlers.Result, error) {
	pl := ctx.Player

	switch strings.ToLower(p.Code) {
	case "heal":
		pl.HP = pl.MaxHP
		systems.ClearAll(&pl.Actor)
		return info("❤️ Fully healed, effects purged"), nil

	case "fuel":
		pl.Fuel += 10
		return info("⛽ +10 fuel"), nil

	case "credits":
		pl.Credits += 500
		return info("💰 +500 credits"), nil

	case "xp":
		events := pl.GainXP(domain.XPPerRank)
		events = append(events, domain.NewEvent(domain.EventSystem, "✨ XP granted"))
		return handlers.Result{Events: events}, nil

	case "reveal":
		all := make(map[domain.Position]bool, ctx.Level.Grid.Width*ctx.Level.Grid.Height)
		for y := 0; y < ctx.Level.Grid.Height; y++ {
			for x := 0; x < ctx.Level.Grid.Width; x++ {
				all[domain.Position{X: x, Y: y}] = true
			}
		}
		ctx.Level.MarkExplored(all)
		systems.RevealHazards(ctx.Level, all)
		return info("👁️ Floor revealed"), nil

	default:
		return handlers.Refused("Unknown cheat code: %s", p.Code), nil
	}
}

func info(text string) handlers.Result {
	return handlers.Result{Events: []domain.Event{domain.NewEvent(domain.EventSystem, text)}}
}
