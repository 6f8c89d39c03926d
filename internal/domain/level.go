package domain

// POI — точка интереса на поверхности: вход в подземную зону.
type POI struct {
	Pos    Position
	Label  string
	Symbol string
	Main   bool
	// Индекс зоны в развернутом реестре кампании; -1 для главного
	// входа, который ведет в собственную зону площадки.
	SiteIndex int
}

// Level — один закэшированный этаж (или поверхность площадки).
// Создается один раз, дальше мутирует на месте: коллекции никогда
// не пересоздаются целиком, внешний код держит указатель вечно.
type Level struct {
	Depth int // 0 — поверхность
	Site  string
	Theme string
	Seed  int64

	Grid  *Grid
	Rooms []Room

	Entry   Position
	Exit    Position
	HasExit bool

	// Туман войны: что игрок когда-либо видел (только растет)
	// и что видит прямо сейчас (пересчитывается каждый ход).
	Explored map[Position]bool
	Visible  map[Position]bool

	Enemies  map[Position]*Actor
	Items    map[Position]ItemKind
	Hazards  map[Position]*Hazard
	Features map[Position]*Feature
	Smoke    map[Position]int // TTL в ходах

	Special []*SpecialRoom

	// Только на поверхности.
	POIs []POI
}

// NewLevel создает пустой этаж вокруг готовой сетки.
// Все коллекции сразу живые: ни одна не пересоздается после.
func NewLevel(depth int, grid *Grid) *Level {
	return &Level{
		Depth:    depth,
		Grid:     grid,
		Explored: make(map[Position]bool),
		Visible:  make(map[Position]bool),
		Enemies:  make(map[Position]*Actor),
		Items:    make(map[Position]ItemKind),
		Hazards:  make(map[Position]*Hazard),
		Features: make(map[Position]*Feature),
		Smoke:    make(map[Position]int),
	}
}

// EnemyAt возвращает врага на позиции.
func (l *Level) EnemyAt(p Position) (*Actor, bool) {
	e, ok := l.Enemies[p]
	return e, ok
}

// AddEnemy регистрирует врага по его текущей позиции.
// Занятая клетка — false, ничего не меняется.
func (l *Level) AddEnemy(a *Actor) bool {
	if _, taken := l.Enemies[a.Pos]; taken {
		return false
	}
	l.Enemies[a.Pos] = a
	return true
}

// RemoveEnemy убирает врага с уровня (смерть или деспавн).
func (l *Level) RemoveEnemy(a *Actor) {
	if current, ok := l.Enemies[a.Pos]; ok && current == a {
		delete(l.Enemies, a.Pos)
	}
}

// MoveEnemy переставляет врага на новую позицию, поддерживая индекс.
// false — клетка занята или непроходима, враг остается на месте.
func (l *Level) MoveEnemy(a *Actor, to Position) bool {
	if !l.Grid.Walkable(to) {
		return false
	}
	if _, taken := l.Enemies[to]; taken {
		return false
	}
	if current, ok := l.Enemies[a.Pos]; !ok || current != a {
		return false
	}
	delete(l.Enemies, a.Pos)
	a.Pos = to
	l.Enemies[to] = a
	return true
}

// MarkExplored вливает текущую видимость в туман войны.
// Explored только растет, очистки нет.
func (l *Level) MarkExplored(visible map[Position]bool) {
	for p := range visible {
		l.Explored[p] = true
	}
}

// SetVisible заменяет текущий видимый набор (пересчет раз в ход).
func (l *Level) SetVisible(visible map[Position]bool) {
	for p := range l.Visible {
		delete(l.Visible, p)
	}
	for p := range visible {
		l.Visible[p] = true
	}
}

// SpecialRoomAt возвращает особую комнату, которой принадлежит позиция.
func (l *Level) SpecialRoomAt(p Position) *SpecialRoom {
	for _, sr := range l.Special {
		if sr.Room.Contains(p) {
			return sr
		}
	}
	return nil
}

// RoomAt возвращает комнату, которой принадлежит позиция.
func (l *Level) RoomAt(p Position) (Room, bool) {
	for _, r := range l.Rooms {
		if r.Contains(p) {
			return r, true
		}
	}
	return Room{}, false
}

// InSmoke — стоит ли позиция в дыму.
func (l *Level) InSmoke(p Position) bool {
	return l.Smoke[p] > 0
}

// TickSmoke гасит дымовые облака на один ход.
func (l *Level) TickSmoke() {
	for p, ttl := range l.Smoke {
		if ttl <= 1 {
			delete(l.Smoke, p)
		} else {
			l.Smoke[p] = ttl - 1
		}
	}
}

// POIAt возвращает точку интереса на позиции (только поверхность).
func (l *Level) POIAt(p Position) (POI, bool) {
	for _, poi := range l.POIs {
		if poi.Pos == p {
			return poi, true
		}
	}
	return POI{}, false
}

// GuardianAlive — жив ли страж уровня.
func (l *Level) GuardianAlive() bool {
	for _, e := range l.Enemies {
		if e.Boss && e.Alive() {
			return true
		}
	}
	return false
}
