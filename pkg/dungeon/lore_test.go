package dungeon

import (
	"reflect"
	"testing"
)

func TestGenerateTerminalEntry_Deterministic(t *testing.T) {
	titleA, linesA := GenerateTerminalEntry(5, newTestRand(42))
	titleB, linesB := GenerateTerminalEntry(5, newTestRand(42))

	if titleA != titleB {
		t.Errorf("Same seed produced different titles: %q vs %q", titleA, titleB)
	}
	if !reflect.DeepEqual(linesA, linesB) {
		t.Errorf("Same seed produced different bodies:\n%v\n%v", linesA, linesB)
	}
}

func TestGenerateTerminalEntry_WellFormed(t *testing.T) {
	for depth := 1; depth <= 12; depth++ {
		for _, seed := range testSeeds {
			title, lines := GenerateTerminalEntry(depth, newTestRand(seed))

			if title == "" {
				t.Fatalf("Empty title at depth %d seed %d", depth, seed)
			}
			if len(lines) < 3 {
				t.Fatalf("Body too short at depth %d seed %d: %v", depth, seed, lines)
			}
			if lines[0] == "" {
				t.Errorf("Body opens with a blank line at depth %d seed %d", depth, seed)
			}
			if lines[len(lines)-1] == "" {
				t.Errorf("Body ends with a blank line at depth %d seed %d", depth, seed)
			}
			for i := 1; i < len(lines); i++ {
				if lines[i] == "" && lines[i-1] == "" {
					t.Errorf("Double blank separator at depth %d seed %d: %v", depth, seed, lines)
				}
			}
		}
	}
}

func TestGenerateTerminalEntry_VariesAcrossSeeds(t *testing.T) {
	titles := make(map[string]bool)
	for seed := int64(1); seed <= 30; seed++ {
		title, _ := GenerateTerminalEntry(5, newTestRand(seed))
		titles[title] = true
	}
	if len(titles) < 2 {
		t.Errorf("Thirty seeds produced %d distinct titles", len(titles))
	}
}

func TestLoreTier(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{1, 0},
		{3, 0},
		{4, 1},
		{6, 1},
		{7, 2},
		{12, 2},
	}
	for _, tt := range tests {
		if got := loreTier(tt.depth); got != tt.want {
			t.Errorf("loreTier(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestLoreDay_StaysInsideTierWindow(t *testing.T) {
	windows := [][2]int{{1, 20}, {21, 50}, {51, 80}}
	rng := newTestRand(1)

	for tier, w := range windows {
		for i := 0; i < 200; i++ {
			day := loreDay(tier, rng)
			if day < w[0] || day > w[1] {
				t.Fatalf("Tier %d rolled day %d, want within [%d, %d]", tier, day, w[0], w[1])
			}
		}
	}
}
