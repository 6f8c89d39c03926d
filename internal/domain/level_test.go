package domain

import (
	"math"
	"testing"
)

func openGrid(w, h int) *Grid {
	g := NewGrid(w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			g.Set(Position{X: x, Y: y}, TileFloor)
		}
	}
	return g
}

func TestLevel_MoveEnemyKeepsIndex(t *testing.T) {
	lvl := NewLevel(1, openGrid(10, 10))

	enemy := &Actor{Name: "Drone", Pos: Position{X: 3, Y: 3}, HP: 5, MaxHP: 5}
	if !lvl.AddEnemy(enemy) {
		t.Fatal("AddEnemy failed on an empty tile")
	}

	to := Position{X: 4, Y: 3}
	if !lvl.MoveEnemy(enemy, to) {
		t.Fatal("MoveEnemy failed on a walkable empty tile")
	}

	if enemy.Pos != to {
		t.Errorf("Actor position = %v, want %v", enemy.Pos, to)
	}
	if _, ok := lvl.EnemyAt(Position{X: 3, Y: 3}); ok {
		t.Error("Old position still occupied in the index")
	}
	if got, ok := lvl.EnemyAt(to); !ok || got != enemy {
		t.Error("New position not registered in the index")
	}
}

func TestLevel_MoveEnemyRejectsWallAndOccupied(t *testing.T) {
	lvl := NewLevel(1, openGrid(10, 10))

	a := &Actor{Name: "Drone", Pos: Position{X: 2, Y: 2}, HP: 5, MaxHP: 5}
	b := &Actor{Name: "Sentry", Pos: Position{X: 3, Y: 2}, HP: 5, MaxHP: 5}
	lvl.AddEnemy(a)
	lvl.AddEnemy(b)

	if lvl.MoveEnemy(a, Position{X: 0, Y: 0}) {
		t.Error("MoveEnemy into a wall must fail")
	}
	if lvl.MoveEnemy(a, b.Pos) {
		t.Error("MoveEnemy onto another enemy must fail")
	}
	if a.Pos != (Position{X: 2, Y: 2}) {
		t.Errorf("Failed move must not shift the actor, pos = %v", a.Pos)
	}
}

func TestLevel_ExploredOnlyGrows(t *testing.T) {
	lvl := NewLevel(1, openGrid(10, 10))

	first := map[Position]bool{{X: 1, Y: 1}: true, {X: 2, Y: 1}: true}
	second := map[Position]bool{{X: 5, Y: 5}: true}

	lvl.MarkExplored(first)
	lvl.MarkExplored(second)

	for p := range first {
		if !lvl.Explored[p] {
			t.Errorf("Tile %v dropped from explored set", p)
		}
	}
	if !lvl.Explored[Position{X: 5, Y: 5}] {
		t.Error("New tile missing from explored set")
	}
	if len(lvl.Explored) != 3 {
		t.Errorf("Explored size = %d, want 3", len(lvl.Explored))
	}
}

func TestLevel_TickSmoke(t *testing.T) {
	lvl := NewLevel(1, openGrid(10, 10))
	p := Position{X: 4, Y: 4}
	lvl.Smoke[p] = 2

	lvl.TickSmoke()
	if !lvl.InSmoke(p) {
		t.Fatal("Smoke expired one turn early")
	}
	lvl.TickSmoke()
	if lvl.InSmoke(p) {
		t.Error("Smoke survived past its TTL")
	}
}

func TestPlayer_GainXPCarriesOver(t *testing.T) {
	p := NewPlayer(DefaultProfile())

	events := p.GainXP(250)

	if p.Rank != 2 {
		t.Errorf("Rank = %d, want 2", p.Rank)
	}
	// 250 - 100 за второй ранг, остаток идет дальше.
	if p.XP != 150 {
		t.Errorf("Leftover XP = %d, want 150", p.XP)
	}
	if p.XPNext != 200 {
		t.Errorf("XPNext = %d, want 200", p.XPNext)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 rank-up event, got %d", len(events))
	}
	if p.SkillPoints != SkillPointsPerRank {
		t.Errorf("SkillPoints = %d, want %d", p.SkillPoints, SkillPointsPerRank)
	}
}

func TestPlayer_InventoryCap(t *testing.T) {
	p := NewPlayer(DefaultProfile())

	for i := 0; i < MaxInventory; i++ {
		if !p.AddItem(ItemMedkit) {
			t.Fatalf("AddItem failed at slot %d before the cap", i)
		}
	}
	if p.AddItem(ItemMedkit) {
		t.Error("AddItem succeeded past the inventory cap")
	}

	kind, ok := p.RemoveItemAt(0)
	if !ok || kind != ItemMedkit {
		t.Errorf("RemoveItemAt(0) = (%v, %v), want (MEDKIT, true)", kind, ok)
	}
	if len(p.Inventory) != MaxInventory-1 {
		t.Errorf("Inventory size = %d, want %d", len(p.Inventory), MaxInventory-1)
	}
}

func TestProfile_DerivedStats(t *testing.T) {
	profile := CharacterProfile{
		Callsign: "Vex",
		Body:     7,
		Reflex:   6,
		Mind:     8,
		Tech:     5,
		Presence: 5,
		Skills: map[Skill]int{
			SkillMelee:       2,
			SkillTactics:     1,
			SkillCartography: 2,
		},
	}

	if got := profile.MaxHP(); got != 34 {
		t.Errorf("MaxHP() = %d, want 34", got)
	}
	if got := profile.MeleeAttack(); got != 4 {
		t.Errorf("MeleeAttack() = %d, want 4", got)
	}
	if got := profile.DodgeChance(); got != 6 {
		t.Errorf("DodgeChance() = %d, want 6", got)
	}
	if got := profile.FOVRadius(); got != 10 {
		t.Errorf("FOVRadius() = %d, want 10", got)
	}
	if got := profile.XPMultiplier(); math.Abs(got-1.15) > 1e-9 {
		t.Errorf("XPMultiplier() = %v, want 1.15", got)
	}
}
