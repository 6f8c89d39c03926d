package actions

import (
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
)

// HandleWait пропускает ход. Мир при этом тикает как обычно.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Spent(domain.NewEvent(domain.EventInfo, "You hold position.")), nil
}
