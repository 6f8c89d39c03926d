package systems

import "erebus-server/internal/domain"

// TraceLine ведет луч Брезенхэма от a к b включительно, начиная с a.
// visit вызывается для каждой клетки; возврат false обрывает луч
// (клетка при этом уже посещена).
func TraceLine(a, b domain.Position, visit func(domain.Position) bool) {
	x, y := a.X, a.Y
	dx := absInt(b.X - a.X)
	dy := absInt(b.Y - a.Y)
	sx, sy := a.DirectionTo(b)

	err := dx - dy
	for {
		if !visit(domain.Position{X: x, Y: y}) {
			return
		}
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// HasLineOfSight — свободна ли прямая между двумя клетками.
// Сами конечные клетки преградой не считаются: стрелок и цель
// могут стоять в дверных проемах.
func HasLineOfSight(g *domain.Grid, from, to domain.Position) bool {
	clear := true
	TraceLine(from, to, func(p domain.Position) bool {
		if p == from || p == to {
			return true
		}
		if g.Opaque(p) {
			clear = false
			return false
		}
		return true
	})
	return clear
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
