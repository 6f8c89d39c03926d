package dungeon

// ThemeSpec описывает пояс глубин: размеры и плотность комнат плюс
// веса врагов. Индексы Weights совпадают с порядком среза Hostiles.
type ThemeSpec struct {
	Name    string
	Message string // атмосферная строка при первом входе, пустая у верхних палуб
	Weights []int

	MaxRooms int
	MinRooms int
	MinW     int
	MaxW     int
	MinH     int
	MaxH     int
}

// Params отдает генератору размерную часть темы.
func (t ThemeSpec) Params() Params {
	return Params{
		MaxRooms: t.MaxRooms,
		MinRooms: t.MinRooms,
		MinW:     t.MinW,
		MaxW:     t.MaxW,
		MinH:     t.MinH,
		MaxH:     t.MaxH,
	}
}

// --- Пояса глубин ---

// ThemeOperations — верхние палубы. Просторно, врагов мало и они слабые.
var ThemeOperations = ThemeSpec{
	Name:     "Operations Deck",
	Weights:  []int{5, 3, 1, 2, 1, 0, 2},
	MaxRooms: 30,
	MinRooms: 4,
	MinW:     5,
	MaxW:     12,
	MinH:     4,
	MaxH:     9,
}

// ThemeResearch — исследовательское крыло, середина станции.
var ThemeResearch = ThemeSpec{
	Name:     "Research Wing",
	Message:  "Emergency lighting only. The station is badly damaged.",
	Weights:  []int{2, 5, 2, 3, 2, 1, 2},
	MaxRooms: 25,
	MinRooms: 4,
	MinW:     4,
	MaxW:     10,
	MinH:     3,
	MaxH:     8,
}

// ThemeSublevel — технические подуровни. Тесные отсеки, опасный состав.
var ThemeSublevel = ThemeSpec{
	Name:     "Sublevel Core",
	Message:  "The signal is overwhelming. Something is very wrong here.",
	Weights:  []int{1, 2, 5, 2, 3, 2, 1},
	MaxRooms: 20,
	MinRooms: 4,
	MinW:     3,
	MaxW:     9,
	MinH:     3,
	MaxH:     7,
}

// ThemeSignal — дно. Большие залы, дронов уже не встретить.
var ThemeSignal = ThemeSpec{
	Name:     "Signal Source",
	Message:  "You feel it in your bones. You have arrived.",
	Weights:  []int{0, 1, 4, 1, 3, 3, 1},
	MaxRooms: 15,
	MinRooms: 4,
	MinW:     6,
	MaxW:     14,
	MinH:     5,
	MaxH:     11,
}

// ThemeForDepth выбирает пояс по глубине. Зоны могут смещать глубину
// перед вызовом, см. SiteSpec.ThemeAt.
func ThemeForDepth(depth int) ThemeSpec {
	switch {
	case depth <= 3:
		return ThemeOperations
	case depth <= 6:
		return ThemeResearch
	case depth <= 9:
		return ThemeSublevel
	default:
		return ThemeSignal
	}
}
