package domain

// Room — прямоугольная комната. X2/Y2 эксклюзивные:
// пол занимает [X1, X2) x [Y1, Y2).
type Room struct {
	X1, Y1 int
	X2, Y2 int
}

// NewRoom строит комнату по левому верхнему углу и размерам.
func NewRoom(x, y, w, h int) Room {
	return Room{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center возвращает детерминированный центр комнаты.
// Округление вниз: центр одной и той же комнаты всегда одинаков.
func (r Room) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersects проверяет пересечение с другой комнатой.
// Сравнения нестрогие, поэтому между принятыми комнатами
// гарантированно остается минимум один тайл стены.
func (r Room) Intersects(other Room) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains проверяет, лежит ли позиция на полу комнаты.
func (r Room) Contains(p Position) bool {
	return p.X >= r.X1 && p.X < r.X2 && p.Y >= r.Y1 && p.Y < r.Y2
}

// FloorTiles возвращает все позиции пола комнаты в построчном порядке.
func (r Room) FloorTiles() []Position {
	tiles := make([]Position, 0, (r.X2-r.X1)*(r.Y2-r.Y1))
	for y := r.Y1; y < r.Y2; y++ {
		for x := r.X1; x < r.X2; x++ {
			tiles = append(tiles, Position{X: x, Y: y})
		}
	}
	return tiles
}
