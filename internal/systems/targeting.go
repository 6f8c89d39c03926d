package systems

import (
	"sort"

	"erebus-server/internal/domain"
)

// NearestVisibleEnemy возвращает ближайшего по Манхэттену живого врага
// в текущем поле зрения. Равные дистанции разруливаются порядком
// (y, x), чтобы выбор не зависел от обхода map.
func NearestVisibleEnemy(lvl *domain.Level, from domain.Position) (*domain.Actor, bool) {
	var best *domain.Actor
	bestDist := 0

	for pos, e := range lvl.Enemies {
		if !e.Alive() || !lvl.Visible[pos] {
			continue
		}
		d := from.ManhattanTo(pos)
		if best == nil || d < bestDist || (d == bestDist && positionBefore(pos, best.Pos)) {
			best = e
			bestDist = d
		}
	}
	return best, best != nil
}

// VisibleMechanical возвращает видимых механических врагов (цели EMP)
// в порядке спавна — порядок наложения эффектов воспроизводим.
func VisibleMechanical(lvl *domain.Level) []*domain.Actor {
	var targets []*domain.Actor
	for pos, e := range lvl.Enemies {
		if e.Alive() && e.Mechanical && lvl.Visible[pos] {
			targets = append(targets, e)
		}
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].ID.Serial() < targets[j].ID.Serial()
	})
	return targets
}

func positionBefore(a, b domain.Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
