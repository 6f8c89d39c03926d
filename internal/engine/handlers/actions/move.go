package actions

import (
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
)

// HandleMove разыгрывает шаг оператора: атака при столкновении с врагом,
// перемещение с входом на клетку, отказ при стене.
func HandleMove(ctx handlers.Context, p api.MovePayload) (handlers.Result, error) {
	pl := ctx.Player
	res := systems.ProbeStep(ctx.Level, pl.Pos, p.Dx, p.Dy)

	if res.BlockedBy != nil {
		events, killed := systems.ResolveAttack(&pl.Actor, res.BlockedBy, 0, nil, ctx.Rng, ctx.Effects)
		if killed {
			events = append(events, ctx.Switch.ReportKill(res.BlockedBy)...)
		}
		return handlers.Spent(events...), nil
	}

	if res.Moved {
		pl.Pos = res.Target
		events := systems.EnterTile(ctx.Level, pl, ctx.Rng, ctx.Effects, ctx.Hazards, ctx.Items)

		// Стимулятор дает второй шаг в том же направлении. Только шаг:
		// без атаки и не через лестницы, чтобы разгон не утащил с этажа.
		if pl.HasEffect(domain.EffectStim) && !onStairs(ctx.Level, pl.Pos) {
			extra := systems.ProbeStep(ctx.Level, pl.Pos, p.Dx, p.Dy)
			if extra.Moved && !onStairs(ctx.Level, extra.Target) {
				pl.Pos = extra.Target
				events = append(events, systems.EnterTile(ctx.Level, pl, ctx.Rng, ctx.Effects, ctx.Hazards, ctx.Items)...)
			}
		}
		return handlers.Spent(events...), nil
	}

	return handlers.Refused("The way is blocked."), nil
}

func onStairs(lvl *domain.Level, pos domain.Position) bool {
	tile := lvl.Grid.At(pos)
	return tile == domain.TileStairUp || tile == domain.TileStairDown
}
