package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TriggerHazard разыгрывает наступание игрока на ловушку.
// Сначала бросок уклонения (перешагнул), затем прямой урон и эффект.
// Ловушка тратит одно срабатывание и исчезает, когда они кончаются.
// Мины, поставленные игроком, на него самого не реагируют.
func TriggerHazard(lvl *domain.Level, pl *domain.Player, pos domain.Position, rng *rand.Rand, effects domain.EffectTable, hazards domain.HazardTable) []domain.Event {
	hz, ok := lvl.Hazards[pos]
	if !ok || hz.Planted || hz.TriggersLeft <= 0 {
		return nil
	}
	spec := hazards[hz.Kind]

	// Наступил — значит узнал, что тут лежит.
	hz.Revealed = true

	var events []domain.Event

	dodgeRoll := rng.Intn(100)
	if dodgeRoll < pl.Profile.DodgeChance() {
		events = append(events, domain.NewEvent(domain.EventHazard,
			"%s sidesteps the %s at the last moment.", pl.Name, spec.Name))
		return events
	}

	damage := spec.Damage
	if spec.DepthBonus {
		damage += lvl.Depth
	}

	if damage > 0 {
		dealt := pl.TakeDamage(damage)
		events = append(events, domain.NewEvent(domain.EventHazard,
			"The %s goes off! %s takes %d damage.", spec.Name, pl.Name, dealt))
	} else {
		events = append(events, domain.NewEvent(domain.EventHazard,
			"%s stumbles into the %s.", pl.Name, spec.Name))
	}

	if spec.Effect != domain.EffectUnknown {
		turns := pl.ResistDuration(spec.EffectTurns)
		Apply(&pl.Actor, spec.Effect, turns, effects)
		events = append(events, domain.NewEvent(domain.EventEffect,
			"%s %s", pl.Name, afflictionText(spec.Effect)))
	}

	consumeTrigger(lvl, pos, hz)
	return events
}

// TriggerCharge подрывает установленную игроком мину под врагом.
// Вызывается после каждого шага врага в фазе противников.
func TriggerCharge(lvl *domain.Level, enemy *domain.Actor, hazards domain.HazardTable) []domain.Event {
	hz, ok := lvl.Hazards[enemy.Pos]
	if !ok || !hz.Planted || hz.TriggersLeft <= 0 {
		return nil
	}
	spec := hazards[hz.Kind]

	dealt := enemy.TakeDamage(spec.Damage)
	logger.Log.WithFields(logrus.Fields{
		"component": "hazard_system",
		"enemy":     enemy.Name,
		"damage":    dealt,
	}).Debug("Proximity charge detonated.")

	events := []domain.Event{domain.NewEvent(domain.EventHazard,
		"The proximity charge detonates under %s for %d damage!", enemy.Name, dealt)}

	consumeTrigger(lvl, enemy.Pos, hz)
	return events
}

// RevealHazards открывает ловушки из набора позиций.
// Возвращает число свежеоткрытых.
func RevealHazards(lvl *domain.Level, within map[domain.Position]bool) int {
	revealed := 0
	for pos, hz := range lvl.Hazards {
		if hz.Revealed || hz.Planted {
			continue
		}
		if within != nil && !within[pos] {
			continue
		}
		hz.Revealed = true
		revealed++
	}
	return revealed
}

func consumeTrigger(lvl *domain.Level, pos domain.Position, hz *domain.Hazard) {
	hz.TriggersLeft--
	if hz.TriggersLeft <= 0 {
		delete(lvl.Hazards, pos)
	}
}
