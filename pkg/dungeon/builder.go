package dungeon

import "erebus-server/internal/domain"

// LevelBuilder собирает этаж вручную, без случайности. Нужен в двух
// местах: запасной макет при провале генерации и постановочные этажи
// в тестах, где геометрия должна быть известна заранее.
type LevelBuilder struct {
	depth  int
	width  int
	height int
	rooms  []domain.Room
}

// NewLevelBuilder создает строитель этажа стандартного размера.
func NewLevelBuilder(depth int) *LevelBuilder {
	return &LevelBuilder{
		depth:  depth,
		width:  domain.DefaultMapWidth,
		height: domain.DefaultMapHeight,
	}
}

// WithSize устанавливает размер карты.
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRoom добавляет комнату. Порядок значим: первая комната якорит
// вход, последняя выход, соседние соединяются коридором.
func (b *LevelBuilder) WithRoom(x, y, w, h int) *LevelBuilder {
	b.rooms = append(b.rooms, domain.NewRoom(x, y, w, h))
	return b
}

// Build вырезает карту и возвращает готовый этаж. Коридоры идут
// сначала по горизонтали, потом по вертикали: монетки нет, макет
// воспроизводим без сида.
func (b *LevelBuilder) Build() *domain.Level {
	grid := domain.NewGrid(b.width, b.height)

	for i, room := range b.rooms {
		carveRoom(grid, room)
		if i > 0 {
			curr := room.Center()
			prev := b.rooms[i-1].Center()
			carveHCorridor(grid, curr.X, prev.X, curr.Y)
			carveVCorridor(grid, curr.Y, prev.Y, prev.X)
		}
	}
	markDoors(grid, b.rooms)

	lvl := domain.NewLevel(b.depth, grid)
	lvl.Rooms = append(lvl.Rooms, b.rooms...)
	if len(b.rooms) > 0 {
		lvl.Entry = b.rooms[0].Center()
		lvl.Exit = b.rooms[len(b.rooms)-1].Center()
		lvl.HasExit = len(b.rooms) > 1
	}
	return lvl
}

// FallbackLayout — три комнаты в ряд на случай, когда генератор не
// уложился в минимум. Форма возврата совпадает с Generate, чтобы
// вызывающий код не ветвился.
func FallbackLayout(width, height int) (*domain.Grid, []domain.Room) {
	third := width / 3
	y := height / 4
	rh := height / 2

	lvl := NewLevelBuilder(0).
		WithSize(width, height).
		WithRoom(1, y, third-2, rh).
		WithRoom(third+1, y, third-2, rh).
		WithRoom(2*third+1, y, width-2*third-2, rh).
		Build()
	return lvl.Grid, lvl.Rooms
}
