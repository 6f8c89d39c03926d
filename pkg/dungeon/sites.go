package dungeon

import "erebus-server/internal/domain"

// BiomeSpec — рецепт поверхности площадки: сколько гряд, какой
// местный колорит и есть ли вода.
type BiomeSpec struct {
	Ridges   int             // непроходимые гряды
	Feature  domain.TileKind // проходимый колорит биома
	Features int
	Water    int // 0 — сухая площадка
}

// MiniSiteSpec — вторичная точка интереса на поверхности: свой
// маленький данж, достижимый пешком с площадки родителя.
type MiniSiteSpec struct {
	Symbol string // метка на поверхности
	Site   SiteSpec
}

// SiteSpec описывает зону кампании. У четырех верхнеуровневых зон
// есть поверхность и цена перелета; вложенные мини-зоны живут на
// чужой поверхности и своей не имеют.
type SiteSpec struct {
	Name     string
	Symbol   string
	Desc     string
	Depths   int
	FuelCost int
	Density  float64 // множитель численности врагов
	Main     bool    // станция с источником сигнала: страж и шум только тут

	// Смещение и потолок глубины при выборе темы.
	ThemeShift int
	ThemeCap   int

	// Именованные этажи. Пустой срез — имя берется из темы.
	FloorNames []string

	Biome BiomeSpec
	Minis []MiniSiteSpec

	EntranceLabel  string
	EntranceSymbol string
}

// ThemeAt выбирает тему этажа с учетом смещения и потолка зоны.
func (s SiteSpec) ThemeAt(depth int) ThemeSpec {
	d := depth + s.ThemeShift
	if s.ThemeCap > 0 && d > s.ThemeCap {
		d = s.ThemeCap
	}
	return ThemeForDepth(d)
}

// FloorName возвращает имя этажа: авторское, если задано, иначе имя темы.
func (s SiteSpec) FloorName(depth int) string {
	if len(s.FloorNames) == 0 {
		return s.ThemeAt(depth).Name
	}
	i := depth - 1
	if i < 0 {
		i = 0
	}
	if i >= len(s.FloorNames) {
		i = len(s.FloorNames) - 1
	}
	return s.FloorNames[i]
}

// Sites возвращает свежий реестр зон для новой кампании.
// Порядок значим: из индекса выводится сид зоны.
func Sites() []SiteSpec {
	return []SiteSpec{
		{
			Name:           "Erebus Station",
			Symbol:         "E",
			Desc:           "ISC research station. Origin of the signal.",
			Depths:         10,
			FuelCost:       0,
			Density:        1.0,
			Main:           true,
			EntranceLabel:  "Main Station",
			EntranceSymbol: ">",
			Biome:          BiomeSpec{Ridges: 40, Feature: domain.TileCrystal, Features: 35, Water: 18},
			Minis: []MiniSiteSpec{
				{
					Symbol: "[",
					Site: SiteSpec{
						Name:       "Sensor Array",
						Desc:       "Signal monitoring outpost.",
						Depths:     2,
						Density:    0.6,
						ThemeShift: 2,
						ThemeCap:   6,
						FloorNames: []string{"Sensor Array L1", "Sensor Array L2"},
					},
				},
			},
		},
		{
			Name:           "Frontier Town",
			Symbol:         "T",
			Desc:           "Rough settlement. Supplies available.",
			Depths:         1,
			FuelCost:       1,
			Density:        0.0,
			EntranceLabel:  "Settlement",
			EntranceSymbol: "+",
			ThemeCap:       1,
			FloorNames:     []string{"Frontier Town"},
			Biome:          BiomeSpec{Ridges: 18, Feature: domain.TileShrub, Features: 50},
			Minis: []MiniSiteSpec{
				{
					Symbol: ">",
					Site: SiteSpec{
						Name:       "Abandoned Mine",
						Desc:       "Old excavation. Something moved in.",
						Depths:     2,
						Density:    1.0,
						ThemeCap:   1,
						FloorNames: []string{"Mine Entrance", "Deep Vein"},
					},
				},
			},
		},
		{
			Name:           "Wreck: ISC Calyx",
			Symbol:         "W",
			Desc:           "Drifting hulk. Security drones still active.",
			Depths:         4,
			FuelCost:       2,
			Density:        1.4,
			EntranceLabel:  "Main Wreck",
			EntranceSymbol: ">",
			ThemeCap:       3,
			FloorNames:     []string{"Cargo Hold", "Crew Deck", "Bridge", "Reactor"},
			Biome:          BiomeSpec{Ridges: 55, Feature: domain.TileScrap, Features: 25},
			Minis: []MiniSiteSpec{
				{
					Symbol: "[",
					Site: SiteSpec{
						Name:       "Emergency Bay",
						Desc:       "Sealed emergency compartment.",
						Depths:     1,
						Density:    0.4,
						ThemeCap:   1,
						FloorNames: []string{"Emergency Bay"},
					},
				},
			},
		},
		{
			Name:           "Colony Ruin KE-7",
			Symbol:         "C",
			Desc:           "Abandoned colony. Something moved in.",
			Depths:         6,
			FuelCost:       2,
			Density:        1.0,
			EntranceLabel:  "Colony Ruins",
			EntranceSymbol: ">",
			ThemeShift:     1,
			ThemeCap:       9,
			FloorNames:     []string{"Surface", "Sub-Level 1", "Sub-Level 2", "Bunker", "Lab", "Core"},
			Biome:          BiomeSpec{Ridges: 22, Feature: domain.TileTree, Features: 60, Water: 10},
			Minis: []MiniSiteSpec{
				{
					Symbol: ">",
					Site: SiteSpec{
						Name:       "Bunker",
						Desc:       "Military hardened shelter. Heavy resistance.",
						Depths:     3,
						Density:    1.5,
						ThemeShift: 3,
						ThemeCap:   9,
						FloorNames: []string{"Bunker Access", "Lower Vault", "Core Shelter"},
					},
				},
			},
		},
	}
}
