package systems

import (
	"math/rand"
	"testing"

	"erebus-server/internal/domain"
)

func TestResolveAttack_DamageFloor(t *testing.T) {
	table := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(7))

	attacker := testEnemy("Drone", domain.Position{X: 2, Y: 2})
	attacker.Attack = 3
	defender := testEnemy("Brute", domain.Position{X: 3, Y: 2})
	defender.HP, defender.MaxHP = 35, 35
	defender.Defense = 10

	_, killed := ResolveAttack(attacker, defender, 0, nil, rng, table)
	if killed {
		t.Fatal("Defender should survive a 1-damage hit")
	}
	if defender.HP != 34 {
		t.Errorf("Defender HP = %d, want 34 (damage floor is 1)", defender.HP)
	}
}

func TestResolveAttack_DodgeNegatesDamage(t *testing.T) {
	table := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(7))

	attacker := testEnemy("Drone", domain.Position{X: 2, Y: 2})
	defender := testEnemy("Lurker", domain.Position{X: 3, Y: 2})

	events, killed := ResolveAttack(attacker, defender, 100, nil, rng, table)
	if killed {
		t.Fatal("A dodged attack cannot kill")
	}
	if defender.HP != defender.MaxHP {
		t.Errorf("Defender HP = %d, want untouched %d", defender.HP, defender.MaxHP)
	}
	if len(events) != 1 {
		t.Errorf("Expected a single miss event, got %d", len(events))
	}
}

func TestResolveAttack_OnHitProc(t *testing.T) {
	table := domain.DefaultEffects()

	tests := []struct {
		name          string
		resist        func(int) int
		wantRemaining int
	}{
		{"no resistance", nil, 4},
		{"survival shortens", func(turns int) int { return turns - 2 }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			attacker := testEnemy("Stalker", domain.Position{X: 2, Y: 2})
			attacker.OnHit = &domain.OnHitSpec{Effect: domain.EffectPoison, Turns: 4, Chance: 100}
			defender := testEnemy("Drone", domain.Position{X: 3, Y: 2})
			defender.HP, defender.MaxHP = 20, 20

			ResolveAttack(attacker, defender, 0, tt.resist, rng, table)
			ae, ok := defender.Effects[domain.EffectPoison]
			if !ok {
				t.Fatal("Expected poison to be applied at 100% proc chance")
			}
			if ae.Remaining != tt.wantRemaining {
				t.Errorf("Poison duration = %d, want %d", ae.Remaining, tt.wantRemaining)
			}
		})
	}
}

func TestResolveAttack_KillSkipsOnHit(t *testing.T) {
	table := domain.DefaultEffects()
	rng := rand.New(rand.NewSource(7))

	attacker := testEnemy("Brute", domain.Position{X: 2, Y: 2})
	attacker.Attack = 10
	attacker.OnHit = &domain.OnHitSpec{Effect: domain.EffectStun, Turns: 2, Chance: 100}
	defender := testEnemy("Drone", domain.Position{X: 3, Y: 2})
	defender.HP = 2

	_, killed := ResolveAttack(attacker, defender, 0, nil, rng, table)
	if !killed {
		t.Fatal("Expected the defender to die")
	}
	if defender.Alive() {
		t.Error("Defender reports alive after lethal hit")
	}
	if defender.HasEffect(domain.EffectStun) {
		t.Error("On-hit effects must not land on a corpse")
	}
}
