package actions

import (
	"erebus-server/internal/engine/handlers"
)

// HandleDescend спускает оператора: в шахту на поверхности или по
// лестнице вниз под землей. Вся маршрутизация на стороне Switcher.
func HandleDescend(ctx handlers.Context) (handlers.Result, error) {
	events, spent := ctx.Switch.Descend()
	return handlers.Result{Events: events, Spent: spent}, nil
}

// HandleAscend поднимает оператора на этаж выше либо на поверхность.
// На посадочной площадке та же команда дает взлет и конец рейда.
func HandleAscend(ctx handlers.Context) (handlers.Result, error) {
	events, spent := ctx.Switch.Ascend()
	return handlers.Result{Events: events, Spent: spent}, nil
}
