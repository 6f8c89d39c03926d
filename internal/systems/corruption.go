package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// --- CORRUPTION ---

// CorruptionRate — прирост заражения за ход. Разум и навык взлома
// замедляют сигнал, но полностью остановить его нельзя.
func CorruptionRate(p domain.CharacterProfile) int {
	rate := 3 - max(0, p.Mind-5)/2 - p.SkillLevel(domain.SkillHacking)/3
	return max(1, rate)
}

// AdvanceCorruption двигает счетчик заражения на сигнальных этажах.
// active=false означает, что игрок вне зоны сигнала: счетчик стоит.
//
// Пороги 25/50/75 дают нарративные события при пересечении. Со второго
// яруса сигнал начинает кусаться, на третьем — бить всерьез. Достижение
// потолка сбрасывает счетчик с принудительной очисткой буфера.
func AdvanceCorruption(pl *domain.Player, active bool, rng *rand.Rand, effects domain.EffectTable) []domain.Event {
	if !active {
		return nil
	}

	before := pl.Corruption
	pl.Corruption += CorruptionRate(pl.Profile)

	if pl.Corruption >= domain.CorruptionMax {
		pl.Corruption = domain.CorruptionResetTo
		Apply(&pl.Actor, domain.EffectStun, 1, effects)
		logger.Log.WithFields(logrus.Fields{
			"component": "corruption_system",
			"callsign":  pl.Profile.Callsign,
		}).Info("Corruption peaked, buffer purged.")
		return []domain.Event{domain.NewEvent(domain.EventEffect,
			"Corruption peaks. %s convulses as the buffer force-purges.", pl.Name)}
	}

	var events []domain.Event
	if ev, crossed := tierCrossing(before, pl.Corruption); crossed {
		events = append(events, ev)
	}

	// Яруса ниже второго сигнал только шумит, без последствий.
	switch {
	case pl.Corruption >= domain.CorruptionTierHigh:
		if rng.Intn(100) < 22 {
			if rng.Intn(2) == 0 {
				Apply(&pl.Actor, domain.EffectBurn, 1, effects)
				events = append(events, domain.NewEvent(domain.EventEffect,
					"The signal bites. %s's implants run hot.", pl.Name))
			} else {
				Apply(&pl.Actor, domain.EffectStun, 1, effects)
				events = append(events, domain.NewEvent(domain.EventEffect,
					"%s blanks out as the signal spikes.", pl.Name))
			}
		}
	case pl.Corruption >= domain.CorruptionTierMid:
		if rng.Intn(100) < 12 {
			Apply(&pl.Actor, domain.EffectBurn, 1, effects)
			events = append(events, domain.NewEvent(domain.EventEffect,
				"The signal bites. %s's implants run hot.", pl.Name))
		}
	}
	return events
}

func tierCrossing(before, after int) (domain.Event, bool) {
	switch {
	case before < domain.CorruptionTierHigh && after >= domain.CorruptionTierHigh:
		return domain.NewEvent(domain.EventEffect,
			"KERNEL BREACH. The signal is inside."), true
	case before < domain.CorruptionTierMid && after >= domain.CorruptionTierMid:
		return domain.NewEvent(domain.EventEffect,
			"The signal worms deeper. Vision swims at the edges."), true
	case before < domain.CorruptionTierLow && after >= domain.CorruptionTierLow:
		return domain.NewEvent(domain.EventEffect,
			"Static creeps into the HUD. Something is listening."), true
	}
	return domain.Event{}, false
}

// RenderRadius — радиус обзора для отрисовки с учетом помех сигнала.
//
// Штраф чисто косметический: исследование карты и враждебный ИИ работают
// от полного радиуса. Мерцание на втором ярусе детерминировано от номера
// хода, генератор сессии не трогается.
func RenderRadius(pl *domain.Player, turn int) int {
	radius := pl.Profile.FOVRadius()
	switch {
	case pl.Corruption >= domain.CorruptionTierHigh:
		return radius - 1
	case pl.Corruption >= domain.CorruptionTierMid:
		if flickerHash(turn)%100 < 35 {
			return radius - 1
		}
	}
	return radius
}

// flickerHash — мультипликативный хеш Кнута от номера хода.
func flickerHash(turn int) uint32 {
	return (uint32(turn) * 2654435761) >> 16
}
