package engine

import (
	"os"
	"testing"

	"erebus-server/internal/domain"
	"erebus-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// newTestSession spawns a fresh campaign with the stock profile.
func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession("test", Config{Seed: seed}, domain.DefaultProfile())
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	return s
}

// waitCmd spends a turn without touching the world.
func waitCmd() domain.InternalCommand {
	return domain.InternalCommand{Action: domain.ActionWait}
}

// mainPOI finds the primary entrance on the current surface.
func mainPOI(t *testing.T, lvl *domain.Level) domain.POI {
	t.Helper()
	for _, poi := range lvl.POIs {
		if poi.Main {
			return poi
		}
	}
	t.Fatal("surface has no main POI")
	return domain.POI{}
}

// remoteFloor finds a walkable tile far outside the player's view.
func remoteFloor(t *testing.T, lvl *domain.Level, from domain.Position) domain.Position {
	t.Helper()
	for y := 0; y < lvl.Grid.Height; y++ {
		for x := 0; x < lvl.Grid.Width; x++ {
			p := domain.Position{X: x, Y: y}
			if !lvl.Grid.At(p).Walkable() || p.ManhattanTo(from) < 20 {
				continue
			}
			if _, taken := lvl.EnemyAt(p); taken {
				continue
			}
			return p
		}
	}
	t.Fatal("no remote walkable tile found")
	return domain.Position{}
}
