package dungeon

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"erebus-server/internal/domain"
	"erebus-server/internal/domain/constraints"
)

// POISpec — заявка на точку интереса для генератора поверхности.
// Кампания строит заявки из реестра зон и своих индексов.
type POISpec struct {
	Label     string
	Symbol    string
	Main      bool
	SiteIndex int
}

// Минимальная манхэттенская дистанция между точками интереса
// и площадкой, чтобы поверхность не слипалась в один угол.
const poiSpacing = 12

var growDirs = [...]domain.Position{
	{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0},
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

var cardinalDirs = [...]domain.Position{
	{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0},
}

// GenerateOverland строит поверхность площадки: открытая земля,
// выращенный блужданием рельеф, посадочная площадка в левом верхнем
// углу и точки интереса по квадрантам. Первая заявка считается
// главным входом и уходит в правый нижний квадрант. В конце каждая
// точка пробивается тропой до площадки, так что недостижимых входов
// не бывает.
func GenerateOverland(site SiteSpec, pois []POISpec, width, height int, rng *rand.Rand) *domain.Level {
	grid := domain.NewGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}

	growTerrain(grid, domain.TileRidge, site.Biome.Ridges, 0, rng)
	growTerrain(grid, site.Biome.Feature, site.Biome.Features, 0, rng)
	if site.Biome.Water > 0 {
		growTerrain(grid, domain.TileWater, site.Biome.Water, max(1, site.Biome.Water/20), rng)
	}

	pad := domain.Position{X: randRange(rng, 3, 12), Y: randRange(rng, 3, 8)}
	clearArea(grid, pad, 2)
	grid.Set(pad, domain.TilePad)

	lvl := domain.NewLevel(0, grid)
	lvl.Site = site.Name
	lvl.Theme = "Surface"
	lvl.Entry = pad

	quadrants := [][4]int{
		{width / 2, height / 2, width - 5, height - 4},
		{width / 4, height / 4, 3 * width / 4, 3 * height / 4},
		{5, height / 2, width / 2, height - 4},
	}
	avoid := []domain.Position{pad}

	for i, spec := range pois {
		q := quadrants[min(i, len(quadrants)-1)]
		pos := findOpenPos(lvl, q[0], q[1], q[2], q[3], avoid, rng)
		clearArea(grid, pos, 1)
		avoid = append(avoid, pos)

		lvl.POIs = append(lvl.POIs, domain.POI{
			Pos:       pos,
			Label:     spec.Label,
			Symbol:    spec.Symbol,
			Main:      spec.Main,
			SiteIndex: spec.SiteIndex,
		})
	}

	for _, poi := range lvl.POIs {
		ensurePath(grid, pad, poi.Pos)
	}

	return lvl
}

// growTerrain выращивает пятна рельефа случайным блужданием: каждое
// зерно ставит до perSeed тайлов, шагая в одну из восьми сторон.
// Кромка карты не трогается.
func growTerrain(grid *domain.Grid, kind domain.TileKind, total, seeds int, rng *rand.Rand) {
	if total <= 0 {
		return
	}
	if seeds <= 0 {
		seeds = max(2, total/12)
	}
	perSeed := max(1, total/seeds)
	w, h := grid.Width, grid.Height

	for s := 0; s < seeds; s++ {
		x := randRange(rng, 2, w-3)
		y := randRange(rng, 2, h-3)
		placed := 0

		for step := 0; step < perSeed*6; step++ {
			p := domain.Position{X: x, Y: y}
			if grid.At(p) != kind {
				grid.Set(p, kind)
				placed++
				if placed >= perSeed {
					break
				}
			}
			d := growDirs[rng.Intn(len(growDirs))]
			x = max(1, min(w-2, x+d.X))
			y = max(1, min(h-2, y+d.Y))
		}
	}
}

// clearArea выравнивает квадрат вокруг точки в открытую землю.
func clearArea(grid *domain.Grid, c domain.Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			grid.Set(domain.Position{X: c.X + dx, Y: c.Y + dy}, domain.TileFloor)
		}
	}
}

// findOpenPos ищет проходимую клетку в прямоугольнике, держа
// дистанцию от уже занятых точек. Не нашли за разумное число проб -
// сдаемся по шагам: сначала без дистанции, потом центр прямоугольника.
func findOpenPos(lvl *domain.Level, x1, y1, x2, y2 int, avoid []domain.Position, rng *rand.Rand) domain.Position {
	rules := make([]constraints.Rule, len(avoid))
	for i, a := range avoid {
		rules[i] = constraints.MinDistanceFrom{From: a, Dist: poiSpacing}
	}

	for i := 0; i < 400; i++ {
		p := domain.Position{X: randRange(rng, x1, x2), Y: randRange(rng, y1, y2)}
		if !lvl.Grid.Walkable(p) {
			continue
		}
		if constraints.Check(lvl, p, rules...) {
			return p
		}
	}
	for i := 0; i < 100; i++ {
		p := domain.Position{X: randRange(rng, x1, x2), Y: randRange(rng, y1, y2)}
		if lvl.Grid.Walkable(p) {
			return p
		}
	}
	return domain.Position{X: (x1 + x2) / 2, Y: (y1 + y2) / 2}
}

// ensurePath проверяет BFS-ом достижимость точки от площадки.
// Если рельеф отрезал точку, пробиваем тропу: шаг наискосок к цели,
// непроходимые тайлы по дороге превращаются в землю.
func ensurePath(grid *domain.Grid, start, end domain.Position) {
	visited := mapset.New[domain.Position]()
	visited.Put(start)
	queue := []domain.Position{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			return
		}
		for _, d := range cardinalDirs {
			next := domain.Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !grid.InBounds(next.X, next.Y) || visited.Has(next) || !grid.Walkable(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}

	cur := start
	for cur != end {
		if cur.X < end.X {
			cur.X++
		} else if cur.X > end.X {
			cur.X--
		}
		if cur.Y < end.Y {
			cur.Y++
		} else if cur.Y > end.Y {
			cur.Y--
		}
		if !grid.Walkable(cur) {
			grid.Set(cur, domain.TileFloor)
		}
	}
}
