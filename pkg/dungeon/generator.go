package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrGenerationFailed — после всех перегенераций комнат меньше минимума.
// Вызывающий код ловит его через errors.Is и подставляет запасной макет.
var ErrGenerationFailed = errors.New("not enough rooms")

// Params — параметры генерации этажа. Обычно берутся из темы.
type Params struct {
	MaxRooms int
	MinRooms int
	MinW     int
	MaxW     int
	MinH     int
	MaxH     int
}

// Generate вырезает этаж методом отбраковки: до MaxRooms попыток
// поставить случайную комнату, пересечения отбрасываются. Каждая
// принятая комната соединяется Г-коридором с предыдущей, так что
// связность получается по построению. Порядок комнат значим: первая
// якорит точку входа, последняя — выход.
//
// Вся случайность течет через один rng: одинаковые аргументы дают
// бит-в-бит одинаковую карту.
func Generate(width, height int, rng *rand.Rand, p Params) (*domain.Grid, []domain.Room, error) {
	minW, minH := p.MinW, p.MinH

	for attempt := 0; attempt <= domain.GenerationRetries; attempt++ {
		grid, rooms := carveLayout(width, height, rng, p, minW, minH)
		if len(rooms) >= p.MinRooms {
			markDoors(grid, rooms)
			return grid, rooms, nil
		}

		logger.Log.WithFields(logrus.Fields{
			"component": "generator",
			"attempt":   attempt,
			"rooms":     len(rooms),
			"min_rooms": p.MinRooms,
		}).Warn("Layout below room minimum, relaxing extents")

		// Ослабляем минимальные размеры комнат и пробуем снова
		// на том же потоке случайности.
		if minW > 2 {
			minW--
		}
		if minH > 2 {
			minH--
		}
	}

	return nil, nil, fmt.Errorf("generate %dx%d: %w", width, height, ErrGenerationFailed)
}

// carveLayout — одна попытка генерации: карта, залитая стеной,
// комнаты и коридоры поверх.
func carveLayout(width, height int, rng *rand.Rand, p Params, minW, minH int) (*domain.Grid, []domain.Room) {
	grid := domain.NewGrid(width, height)
	rooms := make([]domain.Room, 0, p.MaxRooms)

	for i := 0; i < p.MaxRooms; i++ {
		w := randRange(rng, minW, p.MaxW)
		h := randRange(rng, minH, p.MaxH)

		// Комната обязана влезть вместе с крайней стеной.
		if w > width-2 || h > height-2 {
			continue
		}

		x := randRange(rng, 1, width-w-1)
		y := randRange(rng, 1, height-h-1)
		candidate := domain.NewRoom(x, y, w, h)

		overlaps := false
		for _, other := range rooms {
			if candidate.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		carveRoom(grid, candidate)

		// Соединяем с предыдущей комнатой, изгиб коридора по монетке.
		if len(rooms) > 0 {
			curr := candidate.Center()
			prev := rooms[len(rooms)-1].Center()

			if rng.Float64() < 0.5 {
				carveHCorridor(grid, curr.X, prev.X, curr.Y)
				carveVCorridor(grid, curr.Y, prev.Y, prev.X)
			} else {
				carveVCorridor(grid, curr.Y, prev.Y, curr.X)
				carveHCorridor(grid, curr.X, prev.X, prev.Y)
			}
		}

		rooms = append(rooms, candidate)
	}

	return grid, rooms
}

// --- Вспомогательные функции ---

func carveRoom(grid *domain.Grid, room domain.Room) {
	for y := room.Y1; y < room.Y2; y++ {
		for x := room.X1; x < room.X2; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}
}

func carveHCorridor(grid *domain.Grid, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
	}
}

func carveVCorridor(grid *domain.Grid, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
	}
}

// markDoors помечает дверями пол на границе комнат: сквозь границу
// мог пробиться только коридор. Углы не трогаем, коридоры в них не
// заходят. Пометка косметическая, двери проходимы и прозрачны.
func markDoors(grid *domain.Grid, rooms []domain.Room) {
	for _, room := range rooms {
		for x := room.X1; x < room.X2; x++ {
			markDoorAt(grid, domain.Position{X: x, Y: room.Y1 - 1})
			markDoorAt(grid, domain.Position{X: x, Y: room.Y2})
		}
		for y := room.Y1; y < room.Y2; y++ {
			markDoorAt(grid, domain.Position{X: room.X1 - 1, Y: y})
			markDoorAt(grid, domain.Position{X: room.X2, Y: y})
		}
	}
}

func markDoorAt(grid *domain.Grid, p domain.Position) {
	if grid.At(p) == domain.TileFloor {
		grid.Set(p, domain.TileDoor)
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
