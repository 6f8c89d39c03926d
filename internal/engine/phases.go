package engine

import (
	"github.com/sirupsen/logrus"

	"erebus-server/internal/domain"
	"erebus-server/internal/systems"
)

// ResolveTurn разыгрывает одну команду оператора. Команды, не стоившие
// хода (отказы, чтение знакомого терминала, читы), возвращают только
// свой нарратив; потраченный ход прокручивает фазы мира в жестком
// порядке: враги, эффекты, окружение, вердикт.
func (s *Session) ResolveTurn(cmd domain.InternalCommand) []domain.Event {
	if s.State != SessionActive {
		s.push(domain.NewEvent(domain.EventRefusal, "The run is over. Send RESTART to begin anew."))
		return s.TakeEvents()
	}
	s.Cache.AssertHeld(s.Level)

	if !s.playerPhase(cmd) {
		return s.TakeEvents()
	}

	s.Turn++
	s.hostilePhase()
	s.effectPhase()
	s.worldPhase()
	s.evaluateTerminal()

	return s.TakeEvents()
}

// playerPhase исполняет команду. Возвращает true, если ход потрачен.
func (s *Session) playerPhase(cmd domain.InternalCommand) bool {
	pl := s.Player

	// Оглушение съедает любое решение. Команда пропадает, ход идет.
	if systems.Suppressed(&pl.Actor, s.Effects) {
		s.push(domain.NewEvent(domain.EventSuppressed, "You are stunned and cannot act!"))
		return true
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		s.push(domain.NewEvent(domain.EventRefusal, "Unknown directive."))
		return false
	}

	result, err := handler(s.handlerContext(), cmd.Payload)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"action": cmd.Action.String(),
			"error":  err,
		}).Warn("Command rejected")
		s.push(domain.NewEvent(domain.EventRefusal, "Directive rejected: %v", err))
		return false
	}

	s.push(result.Events...)
	if result.Terminal != nil {
		s.lastTerminal = result.Terminal
	}
	return result.Spent
}

// hostilePhase дает ход каждому врагу уровня в порядке инициативы.
func (s *Session) hostilePhase() {
	pl := s.Player
	hctx := &systems.HostileContext{
		Level:   s.Level,
		Player:  pl,
		Rng:     s.Rng,
		Effects: s.Effects,
		Hazards: s.Hazards,
	}

	for _, e := range s.Initiative.Order() {
		if !e.Alive() || !pl.Alive() {
			continue
		}

		// Колебание под взглядом оператора. Бросок делается только
		// когда шанс ненулевой и враг на виду: поток случайности не
		// должен зависеть от скрытых врагов.
		if chance := pl.Profile.HesitationChance(); chance > 0 && s.Level.Visible[e.Pos] {
			if s.Rng.Intn(100) < chance {
				continue
			}
		}

		if systems.Suppressed(e, s.Effects) {
			s.push(domain.NewEvent(domain.EventSuppressed, "%s is stunned.", e.Name))
			continue
		}

		s.push(systems.TakeTurn(hctx, e)...)

		// Враг мог шагнуть на заложенный заряд и не пережить этого.
		if !e.Alive() {
			s.push(s.ReportKill(e)...)
		}
	}
}

// effectPhase тикает эффекты: сначала оператор, затем враги
// в порядке инициативы.
func (s *Session) effectPhase() {
	pl := s.Player
	s.push(systems.Tick(&pl.Actor, s.Effects)...)

	for _, e := range s.Initiative.Order() {
		if !e.Alive() {
			continue
		}
		s.push(systems.Tick(e, s.Effects)...)
		if !e.Alive() {
			s.push(s.ReportKill(e)...)
		}
	}
}

// worldPhase — окружение: дым, помехи, пересчет зрения, авто-пометка
// ловушек инженерным глазом.
func (s *Session) worldPhase() {
	pl := s.Player

	s.Level.TickSmoke()

	hot := s.site().Spec.Main && s.Depth >= domain.CorruptionFloorFrom
	s.push(systems.AdvanceCorruption(pl, hot, s.Rng, s.Effects)...)

	s.refreshVision()

	if pl.Profile.SkillLevel(domain.SkillEngineering) >= 1 {
		if n := systems.RevealHazards(s.Level, s.Level.Visible); n > 0 {
			s.push(domain.NewEvent(domain.EventDiscovery,
				"Engineering: %d traps marked on the overlay.", n))
		}
	}
}

// evaluateTerminal выносит вердикт хода. Порядок важен: смерть
// перебивает взлет, взлет перебивает запрошенный сброс.
func (s *Session) evaluateTerminal() {
	switch {
	case !s.Player.Alive():
		s.State = SessionDead
		s.push(
			domain.NewEvent(domain.EventDeath, "You die in the dark of %s.", s.Level.Site),
			domain.NewEvent(domain.EventSystem, "Signal lost. Send RESTART to begin a new run."),
		)
	case s.liftoff:
		s.State = SessionEscaped
		s.push(
			domain.NewEvent(domain.EventTransition, "The shuttle climbs until %s is a scar below. You made it out.", s.Level.Site),
			domain.NewEvent(domain.EventSystem, "Run complete. Send RESTART to begin a new run."),
		)
	case s.resetAsked:
		s.State = SessionRestarted
	default:
		return
	}

	s.log.WithFields(logrus.Fields{
		"state": s.State.String(),
		"turn":  s.Turn,
		"depth": s.Player.DeepestDepth,
		"kills": s.Player.Kills,
	}).Info("Run ended.")
}
