package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// --- PICKUP ---

// PickupAt подбирает предмет с клетки. Вызывается автоматически после
// шага игрока: отдельного действия подбора в протоколе нет.
// Переполненный рюкзак — нарратив, предмет остается лежать.
func PickupAt(lvl *domain.Level, pl *domain.Player, pos domain.Position, items domain.ItemTable) []domain.Event {
	kind, ok := lvl.Items[pos]
	if !ok {
		return nil
	}
	spec := items[kind]

	if !pl.AddItem(kind) {
		return []domain.Event{domain.NewEvent(domain.EventRefusal,
			"Pack is full. The %s stays where it is.", spec.Name)}
	}

	delete(lvl.Items, pos)
	return []domain.Event{domain.NewEvent(domain.EventDiscovery,
		"%s picks up the %s.", pl.Name, spec.Name)}
}

// --- USE ---

// UseItem применяет предмет из слота рюкзака.
//
// consumed=false означает, что предмет остался в рюкзаке: не было
// валидной цели или применение бессмысленно. Ход при этом все равно
// тратится — решение принято, время ушло.
func UseItem(lvl *domain.Level, pl *domain.Player, slot int, rng *rand.Rand, effects domain.EffectTable, hazards domain.HazardTable, items domain.ItemTable) ([]domain.Event, bool) {
	kind, ok := pl.ItemAt(slot)
	if !ok {
		return []domain.Event{domain.NewEvent(domain.EventRefusal, "Nothing in that slot.")}, false
	}
	spec := items[kind]

	itemLogger := logger.Log.WithFields(logrus.Fields{
		"component": "inventory_system",
		"item":      kind.String(),
		"slot":      slot,
	})

	var events []domain.Event
	consumed := false

	switch kind {
	case domain.ItemMedkit:
		if pl.HP >= pl.MaxHP {
			return []domain.Event{domain.NewEvent(domain.EventRefusal,
				"Vitals already stable. The medkit stays sealed.")}, false
		}
		healed := pl.HealBy(spec.Heal + pl.Profile.HealBonus())
		events = append(events, domain.NewEvent(domain.EventInfo,
			"The medkit hisses. %s recovers %d HP.", pl.Name, healed))
		consumed = true

	case domain.ItemAntidote:
		if len(pl.Effects) == 0 {
			return []domain.Event{domain.NewEvent(domain.EventRefusal,
				"Bloodstream is clean. No point wasting the antidote.")}, false
		}
		cleared := ClearAll(&pl.Actor)
		events = append(events, domain.NewEvent(domain.EventInfo,
			"The antidote flushes %d condition(s) out of %s.", cleared, pl.Name))
		consumed = true

	case domain.ItemStim:
		Apply(&pl.Actor, spec.Effect, spec.EffectTurns, effects)
		events = append(events, domain.NewEvent(domain.EventInfo,
			"The stim hits hard. %s moves like lightning.", pl.Name))
		consumed = true

	case domain.ItemToxinGrenade, domain.ItemIncendiaryGrenade, domain.ItemFlashGrenade:
		target, found := NearestVisibleEnemy(lvl, pl.Pos)
		if !found {
			return []domain.Event{domain.NewEvent(domain.EventRefusal,
				"No target in sight for the %s.", spec.Name)}, false
		}
		Apply(target, spec.Effect, spec.EffectTurns, effects)
		events = append(events, domain.NewEvent(domain.EventCombat,
			"The %s bursts over %s.", spec.Name, target.Name))
		events = append(events, domain.NewEvent(domain.EventEffect,
			"%s %s", target.Name, afflictionText(spec.Effect)))
		consumed = true

	case domain.ItemEMPCharge:
		targets := VisibleMechanical(lvl)
		if len(targets) == 0 {
			return []domain.Event{domain.NewEvent(domain.EventRefusal,
				"No mechanical targets in sight for the EMP.")}, false
		}
		for _, t := range targets {
			Apply(t, spec.Effect, spec.EffectTurns, effects)
		}
		events = append(events, domain.NewEvent(domain.EventCombat,
			"The EMP pops. %d machine(s) seize up.", len(targets)))
		consumed = true

	case domain.ItemSmokeGrenade:
		covered := 0
		for dy := -domain.SmokeRadius; dy <= domain.SmokeRadius; dy++ {
			for dx := -domain.SmokeRadius; dx <= domain.SmokeRadius; dx++ {
				p := pl.Pos.Shift(dx, dy)
				if !p.WithinRadius(pl.Pos, domain.SmokeRadius) || !lvl.Grid.Walkable(p) {
					continue
				}
				lvl.Smoke[p] = domain.SmokeTurns
				covered++
			}
		}
		events = append(events, domain.NewEvent(domain.EventInfo,
			"Smoke floods the area. %d tiles are covered.", covered))
		consumed = true

	case domain.ItemFieldScanner:
		revealed := RevealHazards(lvl, nil)
		if revealed > 0 {
			events = append(events, domain.NewEvent(domain.EventDiscovery,
				"The scanner pings %d hidden threat(s) on this floor.", revealed))
		} else {
			events = append(events, domain.NewEvent(domain.EventInfo,
				"The scanner sweeps the floor. No hidden threats."))
		}
		consumed = true

	case domain.ItemProximityCharge:
		if _, taken := lvl.Hazards[pl.Pos]; taken {
			return []domain.Event{domain.NewEvent(domain.EventRefusal,
				"Something already occupies this spot.")}, false
		}
		lvl.Hazards[pl.Pos] = &domain.Hazard{
			Kind:         domain.HazardCharge,
			TriggersLeft: 1,
			Revealed:     true,
			Planted:      true,
		}
		events = append(events, domain.NewEvent(domain.EventInfo,
			"%s arms a proximity charge and steps back carefully.", pl.Name))
		consumed = true

	case domain.ItemFuelCell:
		pl.Fuel += spec.Fuel
		events = append(events, domain.NewEvent(domain.EventInfo,
			"Fuel reserves up by %d. Total: %d.", spec.Fuel, pl.Fuel))
		consumed = true

	default:
		itemLogger.Warn("Use requested for an item with no use handler.")
		return []domain.Event{domain.NewEvent(domain.EventRefusal,
			"No obvious way to use the %s.", spec.Name)}, false
	}

	if consumed {
		pl.RemoveItemAt(slot)
		itemLogger.Debug("Item consumed.")
	}
	return events, consumed
}
