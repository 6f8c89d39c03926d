package engine

import (
	"errors"
	"testing"

	"erebus-server/internal/domain"
)

// firstMini returns the flat index of the first nested site.
func firstMini(t *testing.T, c *Campaign) int {
	t.Helper()
	for _, site := range c.Sites {
		if !site.Top() {
			return site.Index
		}
	}
	t.Fatal("campaign has no mini sites")
	return -1
}

func TestCacheReturnsSameLevelPointer(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	first, err := lc.GetOrCreate(0, 1)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 1) error: %v", err)
	}
	second, err := lc.GetOrCreate(0, 1)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 1) second error: %v", err)
	}

	if first != second {
		t.Error("repeat GetOrCreate returned a different pointer")
	}
	if lc.Size() != 1 {
		t.Errorf("Size() = %d, want 1", lc.Size())
	}

	// Mutations stick because the handle is shared.
	pos := domain.Position{X: 3, Y: 3}
	first.Explored[pos] = true
	if !second.Explored[pos] {
		t.Error("mutation through one handle is invisible through the other")
	}
}

func TestCacheLevelSeeds(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	for _, tc := range []struct {
		site  int
		depth int
	}{
		{site: 0, depth: 0},
		{site: 0, depth: 1},
		{site: 0, depth: 3},
		{site: 1, depth: 1},
	} {
		lvl, err := lc.GetOrCreate(tc.site, tc.depth)
		if err != nil {
			t.Fatalf("GetOrCreate(%d, %d) error: %v", tc.site, tc.depth, err)
		}
		want := c.Sites[tc.site].Seed + int64(tc.depth)
		if lvl.Seed != want {
			t.Errorf("level (%d, %d) seed = %d, want %d", tc.site, tc.depth, lvl.Seed, want)
		}
	}
}

func TestCacheRejectsBadKeys(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	if _, err := lc.GetOrCreate(99, 1); !errors.Is(err, ErrUnknownSite) {
		t.Errorf("GetOrCreate(99, 1) error = %v, want ErrUnknownSite", err)
	}
	if _, err := lc.GetOrCreate(-1, 0); !errors.Is(err, ErrUnknownSite) {
		t.Errorf("GetOrCreate(-1, 0) error = %v, want ErrUnknownSite", err)
	}

	mini := firstMini(t, c)
	if _, err := lc.GetOrCreate(mini, 0); !errors.Is(err, ErrNoSurface) {
		t.Errorf("GetOrCreate(mini, 0) error = %v, want ErrNoSurface", err)
	}

	// The mini's underground floors are reachable as usual.
	if _, err := lc.GetOrCreate(mini, 1); err != nil {
		t.Errorf("GetOrCreate(mini, 1) error: %v", err)
	}
}

func TestCacheBuildsSurface(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	lvl, err := lc.GetOrCreate(0, 0)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 0) error: %v", err)
	}

	if lvl.Depth != 0 {
		t.Errorf("surface Depth = %d, want 0", lvl.Depth)
	}
	if lvl.Grid.At(lvl.Entry) != domain.TilePad {
		t.Errorf("tile at Entry = %v, want PAD", lvl.Grid.At(lvl.Entry))
	}
	if len(lvl.POIs) == 0 {
		t.Error("surface has no POIs")
	}
	if len(lvl.Enemies) != 0 {
		t.Errorf("surface spawned %d enemies, want 0", len(lvl.Enemies))
	}
}

func TestCacheBuildsFloorShafts(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)
	site := c.Sites[0]

	lvl, err := lc.GetOrCreate(0, 1)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 1) error: %v", err)
	}
	if lvl.Grid.At(lvl.Entry) != domain.TileStairUp {
		t.Errorf("tile at Entry = %v, want STAIR_UP", lvl.Grid.At(lvl.Entry))
	}
	if !lvl.HasExit || lvl.Grid.At(lvl.Exit) != domain.TileStairDown {
		t.Errorf("floor 1: HasExit = %v, tile at Exit = %v, want down shaft",
			lvl.HasExit, lvl.Grid.At(lvl.Exit))
	}

	bottom, err := lc.GetOrCreate(0, site.Spec.Depths)
	if err != nil {
		t.Fatalf("GetOrCreate(0, %d) error: %v", site.Spec.Depths, err)
	}
	if bottom.HasExit {
		t.Error("bottom floor has a down shaft")
	}
	if bottom.Grid.At(bottom.Entry) != domain.TileStairUp {
		t.Error("bottom floor is missing the up shaft")
	}

	// The signal source site ends at a guardian.
	if !bottom.GuardianAlive() {
		t.Error("bottom floor of the main site has no guardian")
	}
}

func TestCacheAssertHeld(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, true)

	held, err := lc.Checkout(0, 1)
	if err != nil {
		t.Fatalf("Checkout(0, 1) error: %v", err)
	}
	other, err := lc.GetOrCreate(0, 2)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 2) error: %v", err)
	}

	// The checked-out level passes quietly.
	lc.AssertHeld(held)

	defer func() {
		if recover() == nil {
			t.Error("AssertHeld on a foreign level did not panic")
		}
	}()
	lc.AssertHeld(other)
}

func TestCacheAssertHeldDisabled(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	if _, err := lc.Checkout(0, 1); err != nil {
		t.Fatalf("Checkout(0, 1) error: %v", err)
	}
	stray, err := lc.GetOrCreate(0, 2)
	if err != nil {
		t.Fatalf("GetOrCreate(0, 2) error: %v", err)
	}

	// Release builds skip the integrity check entirely.
	lc.AssertHeld(stray)
}

func TestCacheDebugDumpOrder(t *testing.T) {
	c := NewCampaign(42)
	lc := NewLocationCache(c, false)

	for _, key := range [][2]int{{1, 1}, {0, 2}, {0, 1}} {
		if _, err := lc.GetOrCreate(key[0], key[1]); err != nil {
			t.Fatalf("GetOrCreate(%d, %d) error: %v", key[0], key[1], err)
		}
	}
	if _, err := lc.Checkout(0, 2); err != nil {
		t.Fatalf("Checkout(0, 2) error: %v", err)
	}

	dump := lc.DebugDump()
	if len(dump) != 3 {
		t.Fatalf("DebugDump() len = %d, want 3", len(dump))
	}

	wantOrder := [][2]int{{0, 1}, {0, 2}, {1, 1}}
	for i, want := range wantOrder {
		if dump[i]["site"] != want[0] || dump[i]["depth"] != want[1] {
			t.Errorf("dump[%d] = (%v, %v), want (%d, %d)",
				i, dump[i]["site"], dump[i]["depth"], want[0], want[1])
		}
	}

	if dump[1]["active"] != true {
		t.Error("checked-out level not flagged active in dump")
	}
	if dump[0]["active"] != false {
		t.Error("idle level flagged active in dump")
	}
}
