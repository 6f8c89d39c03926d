package actions

import (
	"erebus-server/internal/engine/handlers"
	"erebus-server/pkg/api"
)

// HandleTravel перелетает на другую площадку. Работает только с
// поверхности; топливо и валидность индекса проверяет Switcher.
func HandleTravel(ctx handlers.Context, p api.TravelPayload) (handlers.Result, error) {
	events, spent := ctx.Switch.Travel(p.Site)
	return handlers.Result{Events: events, Spent: spent}, nil
}
