package systems

import (
	"strings"

	"erebus-server/internal/domain"
)

// Apply вешает эффект на актора. Повторное наложение освежает
// длительность до максимума из старой и новой; стакающиеся виды
// вдобавок наращивают магнитуду. Возвращает true для нового эффекта.
func Apply(a *domain.Actor, kind domain.EffectKind, turns int, table domain.EffectTable) bool {
	spec, known := table[kind]
	if !known || turns <= 0 {
		return false
	}
	if a.Effects == nil {
		a.Effects = make(map[domain.EffectKind]*domain.ActiveEffect)
	}

	ae, exists := a.Effects[kind]
	if !exists {
		a.Effects[kind] = &domain.ActiveEffect{Remaining: turns, Magnitude: 1}
		return true
	}
	if turns > ae.Remaining {
		ae.Remaining = turns
	}
	if spec.Stacks {
		ae.Magnitude++
	}
	return false
}

// Suppressed — несет ли актор эффект, съедающий его ход.
func Suppressed(a *domain.Actor, table domain.EffectTable) bool {
	for kind, ae := range a.Effects {
		if ae.Remaining <= 0 {
			continue
		}
		if spec, ok := table[kind]; ok && spec.Suppressive {
			return true
		}
	}
	return false
}

// Tick продвигает эффекты актора на один ход: урон, лечение,
// декремент, снятие истекших. Порядок видов фиксирован
// (domain.EffectTickOrder); работа идет по снимку, так что эффекты,
// навешанные самим тиком, в этом же тике не обрабатываются.
func Tick(a *domain.Actor, table domain.EffectTable) []domain.Event {
	var events []domain.Event

	for _, kind := range a.EffectsSnapshot() {
		ae := a.Effects[kind]
		if ae == nil || ae.Remaining <= 0 {
			continue
		}
		spec := table[kind]

		if spec.TickDamage > 0 {
			magnitude := ae.Magnitude
			if magnitude < 1 {
				magnitude = 1
			}
			dealt := a.TakeDamage(spec.TickDamage * magnitude)
			events = append(events, domain.NewEvent(domain.EventEffect,
				"%s takes %d %s damage.", a.Name, dealt, effectNoun(kind)))
		}
		if spec.TickHeal > 0 && a.HP < a.MaxHP {
			healed := a.HealBy(spec.TickHeal)
			events = append(events, domain.NewEvent(domain.EventEffect,
				"%s regenerates %d HP.", a.Name, healed))
		}

		ae.Remaining--
		if ae.Remaining > 0 {
			continue
		}
		delete(a.Effects, kind)

		switch kind {
		case domain.EffectStim:
			// Откат стимулятора: организм выставляет счет.
			Apply(a, domain.EffectStun, 1, table)
			events = append(events, domain.NewEvent(domain.EventEffect,
				"%s crashes hard as the stim wears off.", a.Name))
		default:
			events = append(events, domain.NewEvent(domain.EventEffect,
				"%s: %s wears off.", a.Name, effectNoun(kind)))
		}
	}

	return events
}

// ClearAll снимает все эффекты (антидот). Возвращает число снятых.
func ClearAll(a *domain.Actor) int {
	n := len(a.Effects)
	for kind := range a.Effects {
		delete(a.Effects, kind)
	}
	return n
}

func effectNoun(kind domain.EffectKind) string {
	return strings.ToLower(kind.String())
}
