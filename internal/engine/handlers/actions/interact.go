package actions

import (
	"erebus-server/internal/domain"
	"erebus-server/internal/engine/handlers"
	"erebus-server/pkg/api"
	"erebus-server/pkg/dungeon"
)

// HandleInteract обрабатывает команду INTERACT на текущей клетке:
// терминалы, сейфовые шкафы и точки интереса на поверхности.
func HandleInteract(ctx handlers.Context) (handlers.Result, error) {
	pl := ctx.Player

	if f, ok := ctx.Level.Features[pl.Pos]; ok {
		switch f.Kind {
		case domain.FeatureTerminal:
			return readTerminal(ctx, f)
		case domain.FeatureShopTerminal:
			// Торговая сеть давно мертва, остался только экран.
			return handlers.Result{Events: []domain.Event{domain.NewEvent(domain.EventInfo,
				"The shop terminal boots to a dark storefront. Nobody is selling.")}}, nil
		case domain.FeatureVaultLocker:
			return openLocker(ctx, f)
		}
	}

	if poi, ok := ctx.Level.POIAt(pl.Pos); ok {
		return handlers.Result{Events: []domain.Event{domain.NewEvent(domain.EventInfo,
			"%s. Descend here to enter.", poi.Label)}}, nil
	}

	return handlers.Refused("Nothing to interact with here."), nil
}

// readTerminal выдает запись терминала. Первое чтение тратит ход,
// генерирует запись и на нижних этажах главного узла сбрасывает помехи.
// Повторные чтения бесплатны и показывают ту же запись.
func readTerminal(ctx handlers.Context, f *domain.Feature) (handlers.Result, error) {
	if f.Used {
		return handlers.Result{
			Events:   []domain.Event{domain.NewEvent(domain.EventInfo, "The terminal replays its last entry.")},
			Terminal: &api.TerminalView{Title: f.Title, Lines: f.Lines},
		}, nil
	}

	f.Title, f.Lines = dungeon.GenerateTerminalEntry(ctx.Depth, ctx.Rng)
	f.Used = true

	events := []domain.Event{domain.NewEvent(domain.EventDiscovery, "You access the terminal: %s", f.Title)}

	// Рабочий терминал на фонящих этажах дает сброс помех.
	pl := ctx.Player
	if ctx.Site.Main && ctx.Depth >= domain.CorruptionFloorFrom && pl.Corruption > 0 {
		vent := 30
		if vent > pl.Corruption {
			vent = pl.Corruption
		}
		pl.Corruption -= vent
		events = append(events, domain.NewEvent(domain.EventInfo,
			"Terminal handshake: signal suppressed -%d%%.", vent))
	}

	return handlers.Result{
		Events:   events,
		Spent:    true,
		Terminal: &api.TerminalView{Title: f.Title, Lines: f.Lines},
	}, nil
}

// openLocker вскрывает сейфовый шкаф за кредиты. Лут выдается целиком,
// не влезшее в рюкзак пропадает с пометкой в ленте.
func openLocker(ctx handlers.Context, f *domain.Feature) (handlers.Result, error) {
	pl := ctx.Player

	if f.Used {
		return handlers.Result{Events: []domain.Event{domain.NewEvent(domain.EventInfo,
			"The locker hangs open, empty.")}}, nil
	}
	if pl.Credits < domain.VaultCost {
		return handlers.Refused("The locker demands %d credits.", domain.VaultCost), nil
	}

	pl.Credits -= domain.VaultCost
	f.Used = true

	events := []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"The locker accepts %d credits and unseals.", domain.VaultCost)}
	lost := 0
	for _, kind := range domain.VaultLoot {
		if !pl.AddItem(kind) {
			lost++
			continue
		}
		spec := ctx.Items[kind]
		events = append(events, domain.NewEvent(domain.EventInfo, "You take %s.", spec.Name))
	}
	if lost > 0 {
		events = append(events, domain.NewEvent(domain.EventInfo,
			"Your pack is full; %d items stay behind.", lost))
	}

	return handlers.Spent(events...), nil
}
