package systems

import (
	"math/rand"
	"testing"

	"erebus-server/internal/domain"
)

func TestPickupAt(t *testing.T) {
	items := domain.DefaultItems()
	lvl := newTestLevel(10, 8)
	pos := domain.Position{X: 4, Y: 4}
	pl := testPlayer(pos)

	t.Run("picks up and clears the tile", func(t *testing.T) {
		lvl.Items[pos] = domain.ItemMedkit

		events := PickupAt(lvl, pl, pos, items)
		if len(events) != 1 {
			t.Fatalf("Expected 1 pickup event, got %d", len(events))
		}
		if pl.CountItem(domain.ItemMedkit) != 1 {
			t.Error("Medkit did not land in the pack")
		}
		if _, still := lvl.Items[pos]; still {
			t.Error("Item should leave the floor once picked up")
		}
	})

	t.Run("empty tile is silent", func(t *testing.T) {
		if events := PickupAt(lvl, pl, domain.Position{X: 5, Y: 5}, items); events != nil {
			t.Errorf("Expected no events for an empty tile, got %v", events)
		}
	})

	t.Run("full pack leaves the item", func(t *testing.T) {
		for pl.AddItem(domain.ItemAntidote) {
		}
		lvl.Items[pos] = domain.ItemStim

		events := PickupAt(lvl, pl, pos, items)
		if len(events) != 1 || events[0].Kind != domain.EventRefusal {
			t.Fatalf("Expected a refusal event, got %v", events)
		}
		if _, still := lvl.Items[pos]; !still {
			t.Error("Item vanished even though the pack was full")
		}
	})
}

func TestUseItem_Medkit(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(10, 8)
	pl := testPlayer(domain.Position{X: 4, Y: 4})
	pl.Profile.Skills[domain.SkillMedicine] = 2
	pl.AddItem(domain.ItemMedkit)

	t.Run("refuses at full HP", func(t *testing.T) {
		events, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items)
		if consumed {
			t.Error("Medkit consumed at full HP")
		}
		if len(events) != 1 || events[0].Kind != domain.EventRefusal {
			t.Errorf("Expected refusal, got %v", events)
		}
		if pl.CountItem(domain.ItemMedkit) != 1 {
			t.Error("Refused medkit should stay in the pack")
		}
	})

	t.Run("heals with medicine bonus", func(t *testing.T) {
		pl.HP -= 20

		_, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items)
		if !consumed {
			t.Fatal("Medkit should be consumed")
		}
		// 10 base + 2*medicine.
		if got := pl.MaxHP - pl.HP; got != 6 {
			t.Errorf("Missing HP after medkit = %d, want 6", got)
		}
		if pl.CountItem(domain.ItemMedkit) != 0 {
			t.Error("Consumed medkit still in the pack")
		}
	})
}

func TestUseItem_Antidote(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(10, 8)
	pl := testPlayer(domain.Position{X: 4, Y: 4})
	pl.AddItem(domain.ItemAntidote)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); consumed {
		t.Error("Antidote consumed with a clean bloodstream")
	}

	Apply(&pl.Actor, domain.EffectPoison, 4, effects)
	Apply(&pl.Actor, domain.EffectBurn, 3, effects)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("Antidote should be consumed against active effects")
	}
	if len(pl.Effects) != 0 {
		t.Errorf("Expected a clean bloodstream, %d effects remain", len(pl.Effects))
	}
}

func TestUseItem_GrenadeTargeting(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(14, 14)
	pl := testPlayer(domain.Position{X: 6, Y: 6})
	pl.AddItem(domain.ItemToxinGrenade)

	t.Run("no visible target refuses", func(t *testing.T) {
		events, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items)
		if consumed {
			t.Error("Grenade thrown into empty air")
		}
		if len(events) != 1 || events[0].Kind != domain.EventRefusal {
			t.Errorf("Expected refusal, got %v", events)
		}
	})

	t.Run("hits the nearest visible enemy", func(t *testing.T) {
		near := testEnemy("Drone", domain.Position{X: 6, Y: 8})
		far := testEnemy("Sentry", domain.Position{X: 10, Y: 6})
		lvl.AddEnemy(near)
		lvl.AddEnemy(far)
		seeEverything(lvl)

		_, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items)
		if !consumed {
			t.Fatal("Grenade should be consumed with a target in sight")
		}
		if !near.HasEffect(domain.EffectPoison) {
			t.Error("Nearest enemy escaped the toxin cloud")
		}
		if far.HasEffect(domain.EffectPoison) {
			t.Error("Far enemy should not be hit")
		}
	})
}

func TestUseItem_EMPStunsMechanicals(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(14, 14)
	pl := testPlayer(domain.Position{X: 6, Y: 6})
	pl.AddItem(domain.ItemEMPCharge)

	drone := testEnemy("Drone", domain.Position{X: 4, Y: 4})
	drone.Mechanical = true
	sentry := testEnemy("Sentry", domain.Position{X: 9, Y: 9})
	sentry.Mechanical = true
	stalker := testEnemy("Stalker", domain.Position{X: 6, Y: 9})
	lvl.AddEnemy(drone)
	lvl.AddEnemy(sentry)
	lvl.AddEnemy(stalker)
	seeEverything(lvl)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("EMP should be consumed with machines in sight")
	}
	if !drone.HasEffect(domain.EffectStun) || !sentry.HasEffect(domain.EffectStun) {
		t.Error("All visible machines should be stunned")
	}
	if stalker.HasEffect(domain.EffectStun) {
		t.Error("EMP should not affect organic targets")
	}
}

func TestUseItem_SmokeCoversDisc(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(13, 13)
	pl := testPlayer(domain.Position{X: 6, Y: 6})
	pl.AddItem(domain.ItemSmokeGrenade)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("Smoke grenade should always be consumable")
	}
	// Euclidean disc of radius 3 on open floor.
	if got := len(lvl.Smoke); got != 29 {
		t.Errorf("Smoke covers %d tiles, want 29", got)
	}
	if !lvl.InSmoke(pl.Pos) {
		t.Error("Player's own tile should be in the cloud")
	}
	if lvl.InSmoke(domain.Position{X: 10, Y: 6}) {
		t.Error("Tile at distance 4 should be outside the cloud")
	}
	if got := lvl.Smoke[pl.Pos]; got != domain.SmokeTurns {
		t.Errorf("Cloud TTL = %d, want %d", got, domain.SmokeTurns)
	}
}

func TestUseItem_ScannerAlwaysConsumed(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(14, 14)
	hidden := domain.Position{X: 11, Y: 11}
	lvl.Hazards[hidden] = &domain.Hazard{Kind: domain.HazardAcid, TriggersLeft: 5}

	pl := testPlayer(domain.Position{X: 3, Y: 3})
	pl.AddItem(domain.ItemFieldScanner)
	pl.AddItem(domain.ItemFieldScanner)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("Scanner should be consumed")
	}
	if !lvl.Hazards[hidden].Revealed {
		t.Error("Scanner should reveal hazards beyond the current view")
	}

	// Nothing left to find, the second sweep still burns the charge.
	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Error("Scanner with nothing to reveal should still be consumed")
	}
}

func TestUseItem_ProximityCharge(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(10, 8)
	pl := testPlayer(domain.Position{X: 4, Y: 4})
	pl.AddItem(domain.ItemProximityCharge)
	pl.AddItem(domain.ItemProximityCharge)

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("Charge should be planted on open floor")
	}
	hz, ok := lvl.Hazards[pl.Pos]
	if !ok {
		t.Fatal("No hazard at the player's feet after planting")
	}
	if hz.Kind != domain.HazardCharge || !hz.Planted || !hz.Revealed {
		t.Errorf("Planted charge state = %+v, want planted and revealed", hz)
	}

	// The tile is occupied now; a second charge has nowhere to go.
	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); consumed {
		t.Error("Second charge planted on an occupied tile")
	}
}

func TestUseItem_FuelCell(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(10, 8)
	pl := testPlayer(domain.Position{X: 4, Y: 4})
	pl.AddItem(domain.ItemFuelCell)
	fuelBefore := pl.Fuel

	if _, consumed := UseItem(lvl, pl, 0, rng, effects, hazards, items); !consumed {
		t.Fatal("Fuel cell should be consumed")
	}
	if got := pl.Fuel - fuelBefore; got != 2 {
		t.Errorf("Fuel gained = %d, want 2", got)
	}
}

func TestUseItem_EmptySlot(t *testing.T) {
	items := domain.DefaultItems()
	effects := domain.DefaultEffects()
	hazards := domain.DefaultHazards()
	rng := rand.New(rand.NewSource(11))

	lvl := newTestLevel(10, 8)
	pl := testPlayer(domain.Position{X: 4, Y: 4})

	events, consumed := UseItem(lvl, pl, 3, rng, effects, hazards, items)
	if consumed {
		t.Error("Empty slot reported as consumed")
	}
	if len(events) != 1 || events[0].Kind != domain.EventRefusal {
		t.Errorf("Expected refusal for empty slot, got %v", events)
	}
}
