package constraints

import "erebus-server/internal/domain"

// Rule — одно ограничение на точку расстановки контента.
// Популятор прогоняет кандидата через список правил и отбрасывает
// клетку при первом отказе.
type Rule interface {
	Allow(lvl *domain.Level, p domain.Position) bool
}

// InsideRoom пропускает только пол комнат: коридоры контентом не засоряем.
type InsideRoom struct{}

func (InsideRoom) Allow(lvl *domain.Level, p domain.Position) bool {
	_, ok := lvl.RoomAt(p)
	return ok
}

// AwayFromStairs закрывает вход и выход этажа.
type AwayFromStairs struct{}

func (AwayFromStairs) Allow(lvl *domain.Level, p domain.Position) bool {
	if p == lvl.Entry {
		return false
	}
	if lvl.HasExit && p == lvl.Exit {
		return false
	}
	return true
}

// OutsideSpecialRooms не пускает случайный контент в особые комнаты:
// их наполнение кладется отдельно и по своим правилам.
type OutsideSpecialRooms struct{}

func (OutsideSpecialRooms) Allow(lvl *domain.Level, p domain.Position) bool {
	return lvl.SpecialRoomAt(p) == nil
}

// MinDistanceFrom требует манхэттенскую дистанцию от опорной точки.
// На поверхности так расталкиваются точки интереса вокруг площадки.
type MinDistanceFrom struct {
	From domain.Position
	Dist int
}

func (c MinDistanceFrom) Allow(_ *domain.Level, p domain.Position) bool {
	return p.ManhattanTo(c.From) >= c.Dist
}

// Check прогоняет позицию через все правила.
func Check(lvl *domain.Level, p domain.Position, rules ...Rule) bool {
	for _, r := range rules {
		if !r.Allow(lvl, p) {
			return false
		}
	}
	return true
}
