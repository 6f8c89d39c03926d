package actions

import (
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
)

// Порядок обхода клеток при разминировании: своя, потом крест.
var disarmProbes = []struct{ dx, dy int }{
	{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0},
}

// HandleDisarm снимает ближайшую обнаруженную ловушку. Требует
// инженерного навыка; свои заряды тоже снимаются, без возврата.
func HandleDisarm(ctx handlers.Context) (handlers.Result, error) {
	pl := ctx.Player

	if pl.Profile.SkillLevel(domain.SkillEngineering) < 2 {
		return handlers.Refused("Engineering 2+ required to disarm traps."), nil
	}

	for _, d := range disarmProbes {
		pos := pl.Pos.Shift(d.dx, d.dy)
		hz, ok := ctx.Level.Hazards[pos]
		if !ok || !hz.Revealed {
			continue
		}
		spec := ctx.Hazards[hz.Kind]
		delete(ctx.Level.Hazards, pos)
		return handlers.Spent(domain.NewEvent(domain.EventInfo,
			"Engineering: %s disarmed.", spec.Name)), nil
	}

	return handlers.Refused("No visible trap nearby to disarm."), nil
}
