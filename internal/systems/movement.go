package systems

import (
	"math/rand"

	"erebus-server/internal/domain"
)

// StepResult — исход попытки шага игрока. Вычисление не меняет мир.
type StepResult struct {
	Target    domain.Position
	Moved     bool
	BlockedBy *domain.Actor // живой враг на целевой клетке, цель для атаки
	IsWall    bool
}

// ProbeStep вычисляет исход шага игрока в направлении (dx, dy).
// Стена и враг различаются: первый дает отказ, второй — атаку.
func ProbeStep(lvl *domain.Level, from domain.Position, dx, dy int) StepResult {
	target := from.Shift(dx, dy)
	res := StepResult{Target: target}

	if !lvl.Grid.Walkable(target) {
		res.IsWall = true
		return res
	}
	if enemy, ok := lvl.EnemyAt(target); ok && enemy.Alive() {
		res.BlockedBy = enemy
		return res
	}

	res.Moved = true
	return res
}

// EnterTile — последовательность входа игрока на клетку: подбор предмета,
// срабатывание ловушки, триггер особой комнаты. Вызывается после того,
// как позиция игрока уже обновлена.
func EnterTile(lvl *domain.Level, pl *domain.Player, rng *rand.Rand, effects domain.EffectTable, hazards domain.HazardTable, items domain.ItemTable) []domain.Event {
	var events []domain.Event
	events = append(events, PickupAt(lvl, pl, pl.Pos, items)...)
	events = append(events, TriggerHazard(lvl, pl, pl.Pos, rng, effects, hazards)...)
	events = append(events, EnterSpecialRoom(lvl, pl, rng, items)...)
	return events
}
