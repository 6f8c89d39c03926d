package actions

import (
	"github.com/sirupsen/logrus"

	"erebus-server/internal/engine/handlers"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
)

// HandleUse обрабатывает команду USE - применение предмета из слота.
//
// Пустой слот отбивается без траты хода. Все остальное, включая осечки
// вроде гранаты без цели, ход тратит: решение принято, хватание за пояс
// случилось.
func HandleUse(ctx handlers.Context, p api.UsePayload) (handlers.Result, error) {
	pl := ctx.Player

	kind, ok := pl.ItemAt(p.Slot)
	if !ok {
		return handlers.Refused("Nothing in that slot."), nil
	}

	ctx.Log.WithFields(logrus.Fields{
		"slot": p.Slot,
		"item": kind.String(),
	}).Debug("Item use requested")

	events, _ := systems.UseItem(ctx.Level, pl, p.Slot, ctx.Rng, ctx.Effects, ctx.Hazards, ctx.Items)
	return handlers.Spent(events...), nil
}
