package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HostileContext — все, что нужно враждебному актору, чтобы разыграть ход.
type HostileContext struct {
	Level   *domain.Level
	Player  *domain.Player
	Rng     *rand.Rand
	Effects domain.EffectTable
	Hazards domain.HazardTable
}

// TakeTurn разыгрывает ход одного врага согласно поведенческому тегу.
//
// Враг осведомлен об игроке, когда его клетка входит в видимый набор:
// видимость симметрична, отдельного стелса у врагов нет. Неосведомленный
// враг бесцельно бродит. Дым над игроком глушит наведение целиком.
func TakeTurn(ctx *HostileContext, e *domain.Actor) []domain.Event {
	if !e.Alive() {
		return nil
	}

	aware := ctx.Level.Visible[e.Pos]
	logger.Log.WithFields(logrus.Fields{
		"component": "hostile_system",
		"enemy":     e.Name,
		"behavior":  e.Behavior.String(),
		"aware":     aware,
		"dist":      e.Pos.ManhattanTo(ctx.Player.Pos),
	}).Debug("Hostile acts.")

	if ctx.Level.InSmoke(ctx.Player.Pos) || !aware {
		return wander(ctx, e)
	}

	switch e.Behavior {
	case domain.BehaviorRanged:
		return rangedTurn(ctx, e)
	case domain.BehaviorFast:
		return fastTurn(ctx, e)
	case domain.BehaviorBrute:
		return bruteTurn(ctx, e)
	default:
		// melee, exploder и боссы ходят одинаково: сблизиться и бить.
		return meleeTurn(ctx, e)
	}
}

// --- MELEE ---

func meleeTurn(ctx *HostileContext, e *domain.Actor) []domain.Event {
	if e.Pos.ManhattanTo(ctx.Player.Pos) == 1 {
		return attackPlayer(ctx, e)
	}
	return stepTowardPlayer(ctx, e)
}

// stepTowardPlayer делает один шаг по A*-пути к игроку.
// Чужие враги непроходимы, клетка игрока раскрывается как цель.
func stepTowardPlayer(ctx *HostileContext, e *domain.Actor) []domain.Event {
	passable := func(p domain.Position) bool {
		_, occupied := ctx.Level.EnemyAt(p)
		return !occupied
	}
	path := FindPath(ctx.Level.Grid, e.Pos, ctx.Player.Pos, passable)
	if len(path) == 0 {
		return nil // пути нет, стоим на месте
	}
	next := path[0]
	if next == ctx.Player.Pos || !ctx.Level.MoveEnemy(e, next) {
		return nil
	}
	return afterMove(ctx, e)
}

// --- RANGED ---

// rangedTurn — кайтер: держит дистанцию, стреляет издалека.
func rangedTurn(ctx *HostileContext, e *domain.Actor) []domain.Event {
	if e.Pos.ManhattanTo(ctx.Player.Pos) <= 2 {
		if events, retreated := retreatFromPlayer(ctx, e); retreated {
			return events
		}
		// Отступать некуда. Зажатый стрелок бьет в упор.
		return attackPlayer(ctx, e)
	}
	return attackPlayer(ctx, e)
}

// retreatFromPlayer отходит на соседнюю клетку, строго увеличивающую
// манхэттенскую дистанцию до игрока. Равная дистанция не считается.
func retreatFromPlayer(ctx *HostileContext, e *domain.Actor) ([]domain.Event, bool) {
	best := e.Pos
	bestDist := e.Pos.ManhattanTo(ctx.Player.Pos)
	for _, d := range pathNeighbors {
		p := e.Pos.Shift(d.dx, d.dy)
		if !ctx.Level.Grid.Walkable(p) {
			continue
		}
		if _, occupied := ctx.Level.EnemyAt(p); occupied {
			continue
		}
		if nd := p.ManhattanTo(ctx.Player.Pos); nd > bestDist {
			best, bestDist = p, nd
		}
	}
	if best == e.Pos || !ctx.Level.MoveEnemy(e, best) {
		return nil, false
	}
	return afterMove(ctx, e), true
}

// --- FAST ---

// fastTurn — двойной ход: два шага за ход, остановка после атаки
// или при потере цели из виду.
func fastTurn(ctx *HostileContext, e *domain.Actor) []domain.Event {
	var events []domain.Event
	for step := 0; step < 2; step++ {
		if !e.Alive() || !ctx.Level.Visible[e.Pos] {
			break
		}
		if e.Pos.ManhattanTo(ctx.Player.Pos) == 1 {
			events = append(events, attackPlayer(ctx, e)...)
			break
		}
		events = append(events, stepTowardPlayer(ctx, e)...)
	}
	return events
}

// --- BRUTE ---

// bruteTurn — тяжеловес с перезарядкой: действует через ход.
func bruteTurn(ctx *HostileContext, e *domain.Actor) []domain.Event {
	if e.Cooldown > 0 {
		e.Cooldown--
		return []domain.Event{domain.NewEvent(domain.EventInfo,
			"%s winds up for a crushing blow.", e.Name)}
	}
	e.Cooldown = 1
	return meleeTurn(ctx, e)
}

// --- WANDER ---

// wander — случайный шаг на свободную соседнюю клетку.
func wander(ctx *HostileContext, e *domain.Actor) []domain.Event {
	var candidates []domain.Position
	for _, d := range pathNeighbors {
		p := e.Pos.Shift(d.dx, d.dy)
		if !ctx.Level.Grid.Walkable(p) || p == ctx.Player.Pos {
			continue
		}
		if _, occupied := ctx.Level.EnemyAt(p); occupied {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		return nil
	}
	next := candidates[ctx.Rng.Intn(len(candidates))]
	if !ctx.Level.MoveEnemy(e, next) {
		return nil
	}
	return afterMove(ctx, e)
}

// --- ATTACK ---

func attackPlayer(ctx *HostileContext, e *domain.Actor) []domain.Event {
	events, killed := ResolveAttack(e, &ctx.Player.Actor,
		ctx.Player.Profile.DodgeChance(), ctx.Player.ResistDuration,
		ctx.Rng, ctx.Effects)
	if killed {
		logger.Log.WithFields(logrus.Fields{
			"component": "hostile_system",
			"enemy":     e.Name,
		}).Info("Player downed by hostile attack.")
	}
	return events
}

// afterMove проверяет клетку, на которую враг только что встал:
// заложенный игроком заряд срабатывает именно здесь.
func afterMove(ctx *HostileContext, e *domain.Actor) []domain.Event {
	return TriggerCharge(ctx.Level, e, ctx.Hazards)
}
