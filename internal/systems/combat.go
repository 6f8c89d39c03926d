package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ResolveAttack разыгрывает одну атаку и мутирует защитника.
//
// defenderDodge — шанс уклонения защитника в процентах (у врагов 0),
// resist — модификатор длительности on-hit эффектов (навык выживания
// цели); nil означает "без сопротивления". Возвращает нарратив и флаг
// смерти защитника. Добивание трупа, опыт и лут — забота вызывающего.
func ResolveAttack(attacker, defender *domain.Actor, defenderDodge int, resist func(int) int, rng *rand.Rand, table domain.EffectTable) ([]domain.Event, bool) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"defender_id":   defender.ID,
		"defender_name": defender.Name,
	})

	var events []domain.Event

	// --- Уклонение ---
	// Бросок идет всегда, даже при нулевом шансе: поток случайных
	// чисел не должен зависеть от профиля защитника.
	roll := rng.Intn(100)
	if roll < defenderDodge {
		combatLogger.WithFields(logrus.Fields{
			"dodge_chance": defenderDodge,
			"roll":         roll,
		}).Debug("Attack dodged.")
		events = append(events, domain.NewEvent(domain.EventCombat,
			"%s attacks %s, but %s slips aside.", attacker.Name, defender.Name, defender.Name))
		return events, false
	}

	// --- Расчёт урона ---

	// Финальный урон: атака минус защита, минимум 1.
	finalDamage := attacker.Attack - defender.Defense
	if finalDamage < 1 {
		finalDamage = 1
	}

	hpBefore := defender.HP
	dealt := defender.TakeDamage(finalDamage)
	killed := !defender.Alive()

	combatLogger.WithFields(logrus.Fields{
		"attack":       attacker.Attack,
		"defense":      defender.Defense,
		"final_damage": dealt,
		"hp_before":    hpBefore,
		"hp_after":     defender.HP,
		"killed":       killed,
	}).Debug("Attack resolved.")

	events = append(events, domain.NewEvent(domain.EventCombat,
		"%s hits %s for %d damage.", attacker.Name, defender.Name, dealt))

	// --- Эффект при попадании ---

	if attacker.OnHit != nil && !killed {
		procRoll := rng.Intn(100)
		if procRoll < attacker.OnHit.Chance {
			turns := attacker.OnHit.Turns
			if resist != nil {
				turns = resist(turns)
			}
			Apply(defender, attacker.OnHit.Effect, turns, table)
			events = append(events, domain.NewEvent(domain.EventEffect,
				"%s %s", defender.Name, afflictionText(attacker.OnHit.Effect)))
		}
	}

	return events, killed
}

// afflictionText возвращает хвост фразы "<имя> ..." для on-hit эффекта.
func afflictionText(kind domain.EffectKind) string {
	switch kind {
	case domain.EffectPoison:
		return "is poisoned!"
	case domain.EffectBurn:
		return "catches fire!"
	case domain.EffectStun:
		return "is stunned!"
	case domain.EffectRepair:
		return "starts regenerating."
	case domain.EffectStim:
		return "speeds up!"
	default:
		return "is afflicted."
	}
}
