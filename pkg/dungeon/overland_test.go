package dungeon

import (
	"reflect"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"erebus-server/internal/domain"
)

func erebusPOISpecs() []POISpec {
	return []POISpec{
		{Label: "Main Station", Symbol: ">", Main: true, SiteIndex: -1},
		{Label: "Sensor Array", Symbol: "[", SiteIndex: 4},
	}
}

// reachable8 floods the grid with diagonal steps allowed. Surface
// trails are carved diagonally, so overland connectivity is
// eight-directional.
func reachable8(grid *domain.Grid, from domain.Position) mapset.Set[domain.Position] {
	seen := mapset.New[domain.Position]()
	seen.Put(from)
	queue := []domain.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range growDirs {
			next := domain.Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			if seen.Has(next) || !grid.Walkable(next) {
				continue
			}
			seen.Put(next)
			queue = append(queue, next)
		}
	}
	return seen
}

func TestGenerateOverland_PadAndAnchors(t *testing.T) {
	site := erebusSite(t)
	for _, seed := range testSeeds {
		lvl := GenerateOverland(site, erebusPOISpecs(), domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(seed))

		if lvl.Depth != 0 {
			t.Errorf("Surface level depth = %d, want 0 (seed %d)", lvl.Depth, seed)
		}
		if lvl.Site != site.Name {
			t.Errorf("Surface site = %q, want %q (seed %d)", lvl.Site, site.Name, seed)
		}
		if lvl.Theme != "Surface" {
			t.Errorf("Surface theme = %q (seed %d)", lvl.Theme, seed)
		}
		if lvl.Entry.X < 3 || lvl.Entry.X > 12 || lvl.Entry.Y < 3 || lvl.Entry.Y > 8 {
			t.Errorf("Landing pad at %v outside the top-left corner band (seed %d)", lvl.Entry, seed)
		}
		if got := lvl.Grid.At(lvl.Entry); got != domain.TilePad {
			t.Errorf("Entry tile = %v, want pad (seed %d)", got, seed)
		}
	}
}

func TestGenerateOverland_POIQuadrants(t *testing.T) {
	site := erebusSite(t)
	specs := erebusPOISpecs()
	// Quadrant rectangles for the default 80x40 surface.
	quads := [][4]int{
		{40, 20, 75, 36},
		{20, 10, 60, 30},
		{5, 20, 40, 36},
	}

	for _, seed := range testSeeds {
		lvl := GenerateOverland(site, specs, domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(seed))

		if len(lvl.POIs) != len(specs) {
			t.Fatalf("Placed %d POIs, want %d (seed %d)", len(lvl.POIs), len(specs), seed)
		}
		for i, poi := range lvl.POIs {
			spec := specs[i]
			if poi.Label != spec.Label || poi.Symbol != spec.Symbol || poi.Main != spec.Main || poi.SiteIndex != spec.SiteIndex {
				t.Errorf("POI %d metadata %+v does not match spec %+v (seed %d)", i, poi, spec, seed)
			}
			q := quads[min(i, len(quads)-1)]
			if poi.Pos.X < q[0] || poi.Pos.X > q[2] || poi.Pos.Y < q[1] || poi.Pos.Y > q[3] {
				t.Errorf("POI %d at %v outside its quadrant %v (seed %d)", i, poi.Pos, q, seed)
			}
			if !lvl.Grid.Walkable(poi.Pos) {
				t.Errorf("POI %d at %v sits on unwalkable terrain (seed %d)", i, poi.Pos, seed)
			}
		}
		if !lvl.POIs[0].Main {
			t.Errorf("First POI lost its main-entrance flag (seed %d)", seed)
		}
	}
}

func TestGenerateOverland_POIsReachableFromPad(t *testing.T) {
	for _, site := range Sites() {
		specs := []POISpec{{Label: site.EntranceLabel, Symbol: site.EntranceSymbol, Main: true, SiteIndex: -1}}
		for _, mini := range site.Minis {
			specs = append(specs, POISpec{Label: mini.Site.Name, Symbol: mini.Symbol, SiteIndex: 4})
		}

		for _, seed := range testSeeds {
			lvl := GenerateOverland(site, specs, domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(seed))
			seen := reachable8(lvl.Grid, lvl.Entry)
			for i, poi := range lvl.POIs {
				if !seen.Has(poi.Pos) {
					t.Errorf("%s: POI %d (%s) at %v unreachable from pad (seed %d)",
						site.Name, i, poi.Label, poi.Pos, seed)
				}
			}
		}
	}
}

func TestGenerateOverland_Deterministic(t *testing.T) {
	site := erebusSite(t)
	a := GenerateOverland(site, erebusPOISpecs(), domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(42))
	b := GenerateOverland(site, erebusPOISpecs(), domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(42))

	if a.Grid.Dump() != b.Grid.Dump() {
		t.Error("Same seed produced different surface terrain")
	}
	if !reflect.DeepEqual(a.POIs, b.POIs) {
		t.Errorf("Same seed produced different POIs:\n%+v\n%+v", a.POIs, b.POIs)
	}
	if a.Entry != b.Entry {
		t.Errorf("Same seed produced different pads: %v vs %v", a.Entry, b.Entry)
	}
}

func TestGenerateOverland_DryBiomeHasNoWater(t *testing.T) {
	town := Sites()[1]
	if town.Biome.Water != 0 {
		t.Fatalf("Expected a dry biome for %s", town.Name)
	}

	for _, seed := range testSeeds {
		lvl := GenerateOverland(town, []POISpec{{Label: "Settlement", Symbol: "+", Main: true, SiteIndex: -1}},
			domain.DefaultMapWidth, domain.DefaultMapHeight, newTestRand(seed))

		for y := 0; y < lvl.Grid.Height; y++ {
			for x := 0; x < lvl.Grid.Width; x++ {
				if lvl.Grid.At(domain.Position{X: x, Y: y}) == domain.TileWater {
					t.Fatalf("Water tile at (%d,%d) in a dry biome (seed %d)", x, y, seed)
				}
			}
		}
	}
}

func TestGrowTerrain_StaysInsideEdges(t *testing.T) {
	grid := domain.NewGrid(30, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}

	growTerrain(grid, domain.TileRidge, 50, 0, newTestRand(9))

	ridges := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			if grid.At(domain.Position{X: x, Y: y}) != domain.TileRidge {
				continue
			}
			ridges++
			if x == 0 || x == 29 || y == 0 || y == 19 {
				t.Errorf("Ridge grew onto the map edge at (%d,%d)", x, y)
			}
		}
	}
	if ridges == 0 {
		t.Error("Expected at least one ridge tile")
	}
	if ridges > 50 {
		t.Errorf("Placed %d ridge tiles, budget was 50", ridges)
	}
}

func TestClearArea(t *testing.T) {
	grid := domain.NewGrid(20, 20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileRidge)
		}
	}

	clearArea(grid, domain.Position{X: 10, Y: 10}, 2)

	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			p := domain.Position{X: 10 + dx, Y: 10 + dy}
			if grid.At(p) != domain.TileFloor {
				t.Errorf("Tile %v not cleared", p)
			}
		}
	}
	if grid.At(domain.Position{X: 7, Y: 10}) != domain.TileRidge {
		t.Error("Clearing leaked outside its radius")
	}
}

func TestEnsurePath_CarvesThroughBlockedTerrain(t *testing.T) {
	grid := domain.NewGrid(20, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}
	// Ridge wall splits the map in two.
	for y := 0; y < 10; y++ {
		grid.Set(domain.Position{X: 10, Y: y}, domain.TileRidge)
	}

	start := domain.Position{X: 2, Y: 5}
	end := domain.Position{X: 17, Y: 5}
	ensurePath(grid, start, end)

	if grid.At(domain.Position{X: 10, Y: 5}) != domain.TileFloor {
		t.Error("Expected the trail to breach the ridge wall on the straight line")
	}
	if grid.At(domain.Position{X: 10, Y: 0}) != domain.TileRidge {
		t.Error("Trail carving touched terrain off the path")
	}
	if !reachable8(grid, start).Has(end) {
		t.Error("End still unreachable after carving")
	}
}

func TestEnsurePath_LeavesConnectedTerrainAlone(t *testing.T) {
	grid := domain.NewGrid(20, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}
	// Partial ridge wall with a gap at the bottom.
	for y := 0; y < 8; y++ {
		grid.Set(domain.Position{X: 10, Y: y}, domain.TileRidge)
	}

	before := grid.Dump()
	ensurePath(grid, domain.Position{X: 2, Y: 5}, domain.Position{X: 17, Y: 5})

	if grid.Dump() != before {
		t.Error("Carving ran even though the map was already connected")
	}
}

func TestFindOpenPos_KeepsDistanceFromAvoided(t *testing.T) {
	grid := domain.NewGrid(domain.DefaultMapWidth, domain.DefaultMapHeight)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			grid.Set(domain.Position{X: x, Y: y}, domain.TileFloor)
		}
	}
	lvl := domain.NewLevel(0, grid)
	taken := domain.Position{X: 50, Y: 25}

	pos := findOpenPos(lvl, 40, 20, 75, 36, []domain.Position{taken}, newTestRand(1))

	if pos.X < 40 || pos.X > 75 || pos.Y < 20 || pos.Y > 36 {
		t.Errorf("Position %v outside the requested rectangle", pos)
	}
	dist := pos.ManhattanTo(taken)
	if dist < poiSpacing {
		t.Errorf("Position %v only %d tiles from an avoided point, want at least %d", pos, dist, poiSpacing)
	}
}
