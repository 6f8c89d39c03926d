package domain

import "math"

// Position — координата на тайловой сетке.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceTo возвращает евклидово расстояние (для плавных радиусов).
func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquaredTo возвращает квадрат евклидова расстояния.
// Дешевле DistanceTo, когда нужно только сравнение с радиусом.
func (p Position) DistanceSquaredTo(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// ManhattanTo возвращает манхэттенское расстояние (метрика шагов по осям).
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// WithinRadius проверяет попадание в евклидов радиус r без плавающей точки.
func (p Position) WithinRadius(other Position, r int) bool {
	return p.DistanceSquaredTo(other) <= r*r
}

// IsAdjacent проверяет соседство по Чебышеву (8 направлений), сама клетка не в счет.
func (p Position) IsAdjacent(other Position) bool {
	if p == other {
		return false
	}
	return abs(p.X-other.X) <= 1 && abs(p.Y-other.Y) <= 1
}

// Shift возвращает позицию, смещенную на (dx, dy).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo возвращает единичное направление к цели по каждой оси (-1, 0, 1).
func (p Position) DirectionTo(other Position) (dx, dy int) {
	return sign(other.X - p.X), sign(other.Y - p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
