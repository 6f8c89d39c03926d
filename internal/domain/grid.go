package domain

import "strings"

// Grid — прямоугольное поле тайлов. Хранится одним слайсом row-major,
// чтобы копии и обходы были дешевыми и кэш-дружелюбными.
type Grid struct {
	Width  int
	Height int
	Cells  []TileKind
}

// NewGrid создает поле, целиком залитое стеной.
// Генератор потом вырезает в нем комнаты и коридоры.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]TileKind, width*height),
	}
}

// Index возвращает позицию в слайсе Cells. Без проверки границ.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// InBounds проверяет попадание координат в поле.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At возвращает тайл в позиции. Все вне границ считается стеной:
// так обходы лучей и путей не требуют отдельных проверок краев.
func (g *Grid) At(p Position) TileKind {
	if !g.InBounds(p.X, p.Y) {
		return TileWall
	}
	return g.Cells[g.Index(p.X, p.Y)]
}

// Set ставит тайл в позицию. Вне границ — тихий no-op.
func (g *Grid) Set(p Position, k TileKind) {
	if !g.InBounds(p.X, p.Y) {
		return
	}
	g.Cells[g.Index(p.X, p.Y)] = k
}

// Walkable — можно ли стоять в позиции.
func (g *Grid) Walkable(p Position) bool {
	return g.At(p).Walkable()
}

// Opaque — блокирует ли позиция линию зрения.
func (g *Grid) Opaque(p Position) bool {
	return g.At(p).Opaque()
}

// Dump отрисовывает поле в строку для дебаг-логов и golden-сравнений в тестах.
func (g *Grid) Dump() string {
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			sb.WriteRune(g.Cells[g.Index(x, y)].Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
