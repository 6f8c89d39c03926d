package agent

import (
	"testing"

	"erebus-server/internal/domain"
	"erebus-server/pkg/api"
)

// frame собирает минимальный кадр STATE для проверки чистых помощников.
// Бот видит только то, что сервер прислал, поэтому кадра достаточно.
func frame(depth int, tiles []api.TileView) *api.StateView {
	return &api.StateView{
		Depth: depth,
		Grid:  api.GridMeta{Width: 20, Height: 10},
		Tiles: tiles,
	}
}

func TestBuildLocalGrid(t *testing.T) {
	state := frame(1, []api.TileView{
		{X: 1, Y: 1, Symbol: "."},
		{X: 2, Y: 1, Symbol: ">"},
		{X: 3, Y: 1, Symbol: "#"},
		{X: 4, Y: 1, Symbol: "?"},
	})

	grid, explored := buildLocalGrid(state)

	cases := []struct {
		pos  domain.Position
		want domain.TileKind
	}{
		{domain.Position{X: 1, Y: 1}, domain.TileFloor},
		{domain.Position{X: 2, Y: 1}, domain.TileStairDown},
		{domain.Position{X: 3, Y: 1}, domain.TileWall},
		// Непонятный символ читается как стена: бот туда не пойдет.
		{domain.Position{X: 4, Y: 1}, domain.TileWall},
		// Не присланный тайл тоже стена.
		{domain.Position{X: 0, Y: 0}, domain.TileWall},
	}
	for _, c := range cases {
		if got := grid.At(c.pos); got != c.want {
			t.Errorf("grid.At(%v) = %v, want %v", c.pos, got, c.want)
		}
	}

	if len(explored) != 4 {
		t.Errorf("len(explored) = %d, want 4", len(explored))
	}
	if !explored[domain.Position{X: 1, Y: 1}] {
		t.Error("explored missing a tile the server sent")
	}
	if explored[domain.Position{X: 0, Y: 0}] {
		t.Error("explored contains a tile the server never sent")
	}
}

func TestFindSelf(t *testing.T) {
	state := frame(0, nil)
	state.Actors = []api.ActorView{
		{ID: "hostile_1", Name: "Stalker", X: 3, Y: 3},
		{ID: "player_1", Name: "Drifter", X: 5, Y: 2, Player: true},
	}

	pos, ok := findSelf(state)
	if !ok {
		t.Fatal("findSelf() reported no operator in a frame that has one")
	}
	if pos.X != 5 || pos.Y != 2 {
		t.Errorf("findSelf() = %v, want {5 2}", pos)
	}

	if _, ok := findSelf(frame(0, nil)); ok {
		t.Error("findSelf() found an operator in an empty frame")
	}
}

func TestStandingOnDescend(t *testing.T) {
	underground := frame(2, []api.TileView{
		{X: 1, Y: 1, Symbol: "."},
		{X: 2, Y: 1, Symbol: ">"},
	})
	ugGrid, _ := buildLocalGrid(underground)

	surface := frame(0, []api.TileView{
		{X: 1, Y: 1, Symbol: "."},
		{X: 4, Y: 1, Symbol: "."},
	})
	surface.POIs = []api.POIView{{X: 4, Y: 1, Label: "Mine Entrance"}}
	sfGrid, _ := buildLocalGrid(surface)

	tests := []struct {
		name  string
		state *api.StateView
		grid  *domain.Grid
		me    domain.Position
		want  bool
	}{
		{"underground on shaft", underground, ugGrid, domain.Position{X: 2, Y: 1}, true},
		{"underground on floor", underground, ugGrid, domain.Position{X: 1, Y: 1}, false},
		{"surface on entrance", surface, sfGrid, domain.Position{X: 4, Y: 1}, true},
		{"surface off entrance", surface, sfGrid, domain.Position{X: 1, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := standingOnDescend(tt.state, tt.grid, tt.me); got != tt.want {
				t.Errorf("standingOnDescend(%v) = %v, want %v", tt.me, got, tt.want)
			}
		})
	}
}

func TestGoalsPrefersMainEntrance(t *testing.T) {
	// Боковой вход ближе, но главный все равно первый в списке целей.
	state := frame(0, []api.TileView{
		{X: 1, Y: 1, Symbol: "."},
		{X: 2, Y: 1, Symbol: "."},
		{X: 6, Y: 1, Symbol: "."},
	})
	state.POIs = []api.POIView{
		{X: 2, Y: 1, Label: "Old Shaft"},
		{X: 6, Y: 1, Label: "Main Gate", Main: true},
	}
	grid, explored := buildLocalGrid(state)
	me := domain.Position{X: 1, Y: 1}

	got := (&Bot{}).goals(state, grid, explored, me)
	if len(got) < 2 {
		t.Fatalf("len(goals) = %d, want at least 2", len(got))
	}
	if got[0].X != 6 || got[0].Y != 1 {
		t.Errorf("goals[0] = %v, want the main entrance {6 1}", got[0])
	}
	if got[1].X != 2 || got[1].Y != 1 {
		t.Errorf("goals[1] = %v, want the side entrance {2 1}", got[1])
	}
}

func TestGoalsUndergroundShaftsByDistance(t *testing.T) {
	state := frame(1, []api.TileView{
		{X: 1, Y: 1, Symbol: "."},
		{X: 5, Y: 1, Symbol: ">"},
		{X: 1, Y: 3, Symbol: ">"},
	})
	grid, explored := buildLocalGrid(state)
	me := domain.Position{X: 1, Y: 1}

	got := (&Bot{}).goals(state, grid, explored, me)
	if len(got) < 2 {
		t.Fatalf("len(goals) = %d, want at least 2", len(got))
	}
	if got[0].X != 1 || got[0].Y != 3 {
		t.Errorf("goals[0] = %v, want the nearer shaft {1 3}", got[0])
	}
	if got[1].X != 5 || got[1].Y != 1 {
		t.Errorf("goals[1] = %v, want the farther shaft {5 1}", got[1])
	}
}

func TestGoalsFrontierCapped(t *testing.T) {
	// Полоса пола: у каждого тайла есть неизведанный сосед сверху,
	// так что вся полоса попадает в границу исследованного.
	var tiles []api.TileView
	for x := 1; x <= 12; x++ {
		tiles = append(tiles, api.TileView{X: x, Y: 1, Symbol: "."})
	}
	state := frame(0, tiles)
	grid, explored := buildLocalGrid(state)
	me := domain.Position{X: 1, Y: 1}

	got := (&Bot{}).goals(state, grid, explored, me)
	if len(got) != 8 {
		t.Fatalf("len(goals) = %d, want the frontier capped at 8", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ManhattanTo(me) > got[i].ManhattanTo(me) {
			t.Errorf("goals out of order at %d: %v before %v", i, got[i-1], got[i])
		}
	}
}

func TestSortByDistance(t *testing.T) {
	from := domain.Position{X: 0, Y: 0}
	ps := []domain.Position{
		{X: 2, Y: 0},
		{X: 0, Y: 1},
		{X: 1, Y: 1},
		{X: 1, Y: 0},
	}

	sortByDistance(ps, from)

	want := []domain.Position{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: 2, Y: 0},
		{X: 1, Y: 1},
	}
	for i := range want {
		if ps[i] != want[i] {
			t.Errorf("ps[%d] = %v, want %v", i, ps[i], want[i])
		}
	}
}
