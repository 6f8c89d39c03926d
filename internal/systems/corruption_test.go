package systems

import (
	"math/rand"
	"strings"
	"testing"

	"erebus-server/internal/domain"
)

func TestCorruptionRate(t *testing.T) {
	tests := []struct {
		name    string
		mind    int
		hacking int
		want    int
	}{
		{"baseline", 5, 0, 3},
		{"sharp mind", 9, 0, 1},
		{"hacker", 5, 3, 2},
		{"never below one", 11, 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := domain.DefaultProfile()
			p.Mind = tt.mind
			p.Skills[domain.SkillHacking] = tt.hacking

			if got := CorruptionRate(p); got != tt.want {
				t.Errorf("CorruptionRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvanceCorruption_InactiveFloors(t *testing.T) {
	effects := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(2))
	pl := testPlayer(domain.Position{X: 3, Y: 3})
	pl.Corruption = 10

	events := AdvanceCorruption(pl, false, rng, effects)
	if len(events) != 0 {
		t.Errorf("Expected silence off the signal floors, got %v", events)
	}
	if pl.Corruption != 10 {
		t.Errorf("Corruption moved to %d on an inactive floor", pl.Corruption)
	}
}

func TestAdvanceCorruption_TierCrossings(t *testing.T) {
	effects := domain.DefaultEffects()

	tests := []struct {
		name   string
		start  int
		phrase string
	}{
		{"first tier", 23, "Static creeps"},
		{"second tier", 48, "worms deeper"},
		{"third tier", 73, "KERNEL BREACH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(2))
			pl := testPlayer(domain.Position{X: 3, Y: 3})
			pl.Corruption = tt.start

			events := AdvanceCorruption(pl, true, rng, effects)
			if pl.Corruption != tt.start+3 {
				t.Errorf("Corruption = %d, want %d", pl.Corruption, tt.start+3)
			}
			found := false
			for _, ev := range events {
				if strings.Contains(ev.Text, tt.phrase) {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected a crossing event containing %q, got %v", tt.phrase, events)
			}
		})
	}
}

func TestAdvanceCorruption_SurgeResets(t *testing.T) {
	effects := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(2))
	pl := testPlayer(domain.Position{X: 3, Y: 3})
	pl.Corruption = 98

	events := AdvanceCorruption(pl, true, rng, effects)
	if pl.Corruption != domain.CorruptionResetTo {
		t.Errorf("Corruption after surge = %d, want %d", pl.Corruption, domain.CorruptionResetTo)
	}
	if !Suppressed(&pl.Actor, effects) {
		t.Error("Surge should leave the player stunned")
	}
	if len(events) != 1 {
		t.Errorf("Expected a single surge event, got %d", len(events))
	}
}

func TestAdvanceCorruption_HighTierProcs(t *testing.T) {
	effects := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(2))

	procs, quiet := 0, 0
	for i := 0; i < 100; i++ {
		pl := testPlayer(domain.Position{X: 3, Y: 3})
		pl.Corruption = 80

		events := AdvanceCorruption(pl, true, rng, effects)
		if len(events) > 0 {
			procs++
		} else {
			quiet++
		}
	}
	// 22% per-turn odds: both outcomes must show up over 100 turns.
	if procs == 0 {
		t.Error("Third-tier corruption never fired in 100 turns")
	}
	if quiet == 0 {
		t.Error("Third-tier corruption fired every single turn")
	}
}

func TestRenderRadius(t *testing.T) {
	pl := testPlayer(domain.Position{X: 3, Y: 3})
	full := pl.Profile.FOVRadius()

	t.Run("clean signal keeps full radius", func(t *testing.T) {
		pl.Corruption = 10
		for turn := 0; turn < 10; turn++ {
			if got := RenderRadius(pl, turn); got != full {
				t.Fatalf("Turn %d: radius %d, want %d", turn, got, full)
			}
		}
	})

	t.Run("third tier always penalized", func(t *testing.T) {
		pl.Corruption = 80
		for turn := 0; turn < 10; turn++ {
			if got := RenderRadius(pl, turn); got != full-1 {
				t.Fatalf("Turn %d: radius %d, want %d", turn, got, full-1)
			}
		}
	})

	t.Run("second tier flickers by turn", func(t *testing.T) {
		pl.Corruption = 60
		penalized, clear := 0, 0
		for turn := 0; turn < 20; turn++ {
			switch got := RenderRadius(pl, turn); got {
			case full - 1:
				penalized++
			case full:
				clear++
			default:
				t.Fatalf("Turn %d: radius %d, want %d or %d", turn, got, full-1, full)
			}
		}
		if penalized == 0 || clear == 0 {
			t.Errorf("Expected both flicker outcomes: penalized=%d, clear=%d", penalized, clear)
		}

		// The flicker is a pure function of the turn number.
		for turn := 0; turn < 20; turn++ {
			if RenderRadius(pl, turn) != RenderRadius(pl, turn) {
				t.Fatal("Flicker must be deterministic per turn")
			}
		}
	})
}
