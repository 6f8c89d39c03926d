package actions

import (
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
)

// HandleRestart помечает рейд на сброс. Сам сброс делает сессия после
// закрытия хода, чтобы финальный кадр успел уйти клиенту.
func HandleRestart(ctx handlers.Context) (handlers.Result, error) {
	ctx.Switch.RequestReset()
	return handlers.Spent(domain.NewEvent(domain.EventSystem, "Mission abort signal sent.")), nil
}
