package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// --- SPECIAL ROOMS ---

// EnterSpecialRoom срабатывает при первом входе игрока в особую комнату.
// Повторные входы ничего не дают: флаг Triggered взводится навсегда.
func EnterSpecialRoom(lvl *domain.Level, pl *domain.Player, rng *rand.Rand, items domain.ItemTable) []domain.Event {
	sp := lvl.SpecialRoomAt(pl.Pos)
	if sp == nil || sp.Triggered {
		return nil
	}
	sp.Triggered = true

	logger.Log.WithFields(logrus.Fields{
		"component": "room_system",
		"room":      sp.Kind.String(),
		"depth":     lvl.Depth,
	}).Debug("Special room triggered.")

	switch sp.Kind {
	case domain.SpecialArmory:
		return triggerArmory(lvl, pl, sp, rng)
	case domain.SpecialMedbay:
		return triggerMedbay(lvl, pl, sp, rng, items)
	case domain.SpecialTerminals:
		return triggerTerminals(lvl, pl, sp, rng)
	case domain.SpecialVault:
		return triggerVault(lvl, sp)
	case domain.SpecialShop:
		return triggerShop(lvl, sp)
	}
	return nil
}

// triggerArmory разбрасывает три предмета снабжения по полу комнаты.
func triggerArmory(lvl *domain.Level, pl *domain.Player, sp *domain.SpecialRoom, rng *rand.Rand) []domain.Event {
	placed := 0
	for i := 0; i < 3; i++ {
		p, ok := freeRoomTile(lvl, pl, sp.Room, rng)
		if !ok {
			break
		}
		lvl.Items[p] = domain.ArmoryLoot[rng.Intn(len(domain.ArmoryLoot))]
		placed++
	}
	if placed == 0 {
		return []domain.Event{domain.NewEvent(domain.EventDiscovery,
			"An old armory. The racks have been stripped bare.")}
	}
	return []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"An old armory. Some of the racks are still stocked.")}
}

// triggerMedbay полностью лечит и выдает два медкита. Если рюкзак полон,
// лишние медкиты падают на пол комнаты, а не пропадают.
func triggerMedbay(lvl *domain.Level, pl *domain.Player, sp *domain.SpecialRoom, rng *rand.Rand, items domain.ItemTable) []domain.Event {
	events := []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"The medbay auto-doc springs to life. Wounds close.")}
	pl.HP = pl.MaxHP

	granted := 0
	for i := 0; i < 2; i++ {
		if pl.AddItem(domain.ItemMedkit) {
			granted++
			continue
		}
		if p, ok := freeRoomTile(lvl, pl, sp.Room, rng); ok {
			lvl.Items[p] = domain.ItemMedkit
		}
	}
	if granted > 0 {
		events = append(events, domain.NewEvent(domain.EventInfo,
			"The dispenser drops %d %s(s) into the chute.", granted, items[domain.ItemMedkit].Name))
	}
	return events
}

// triggerTerminals ставит три рабочих терминала на пол комнаты.
func triggerTerminals(lvl *domain.Level, pl *domain.Player, sp *domain.SpecialRoom, rng *rand.Rand) []domain.Event {
	for i := 0; i < 3; i++ {
		p, ok := freeRoomTile(lvl, pl, sp.Room, rng)
		if !ok {
			break
		}
		lvl.Features[p] = &domain.Feature{Kind: domain.FeatureTerminal}
	}
	return []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"Banks of terminals line the walls. Some screens still flicker.")}
}

// triggerVault ставит сейфовый шкаф в центр комнаты.
func triggerVault(lvl *domain.Level, sp *domain.SpecialRoom) []domain.Event {
	center := sp.Room.Center()
	if _, taken := lvl.Features[center]; !taken {
		lvl.Features[center] = &domain.Feature{Kind: domain.FeatureVaultLocker}
	}
	return []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"A sealed vault locker dominates the room.")}
}

// triggerShop ставит неработающий торговый киоск. Торговли нет,
// киоск — чистый маркер на карте.
func triggerShop(lvl *domain.Level, sp *domain.SpecialRoom) []domain.Event {
	center := sp.Room.Center()
	if _, taken := lvl.Features[center]; !taken {
		lvl.Features[center] = &domain.Feature{Kind: domain.FeatureShopTerminal}
	}
	return []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"An abandoned trade kiosk. The screen is dark.")}
}

// freeRoomTile выбирает случайную свободную клетку пола внутри комнаты.
// Свободная — без врага, предмета, ловушки, объекта и не под игроком.
func freeRoomTile(lvl *domain.Level, pl *domain.Player, room domain.Room, rng *rand.Rand) (domain.Position, bool) {
	var candidates []domain.Position
	for _, p := range room.FloorTiles() {
		if p == pl.Pos || !lvl.Grid.Walkable(p) {
			continue
		}
		if _, ok := lvl.Enemies[p]; ok {
			continue
		}
		if _, ok := lvl.Items[p]; ok {
			continue
		}
		if _, ok := lvl.Hazards[p]; ok {
			continue
		}
		if _, ok := lvl.Features[p]; ok {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return domain.Position{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
