package dungeon

import (
	"math/rand"

	"erebus-server/internal/core/types"
	"erebus-server/internal/core/types/enums"
	"erebus-server/internal/domain"
)

// EnemySpec — неизменяемый шаблон врага. Spawn снимает с него копию,
// масштабируя характеристики под глубину.
type EnemySpec struct {
	Name       string
	Symbol     string
	HP         int
	Attack     int
	Defense    int
	XPReward   int
	Behavior   domain.BehaviorTag
	Mechanical bool
	Boss       bool
	OnHit      *domain.OnHitSpec
}

// Spawn создает актора из шаблона. Характеристики растут на 20% за
// каждый этаж ниже первого. У босса награда не масштабируется, она
// и так финальная.
func (t EnemySpec) Spawn(pos domain.Position, depth int, seq *types.Sequence) *domain.Actor {
	scale := 1.0 + 0.2*float64(depth-1)

	kind := enums.ActorKindHostile
	if t.Boss {
		kind = enums.ActorKindGuardian
	}

	hp := max(1, int(float64(t.HP)*scale))
	atk := max(1, int(float64(t.Attack)*scale))
	dfn := int(float64(t.Defense) * scale)
	xp := t.XPReward
	if !t.Boss {
		xp = int(float64(xp) * scale)
	}

	return &domain.Actor{
		ID:         seq.NextID(kind),
		Name:       t.Name,
		Symbol:     t.Symbol,
		Pos:        pos,
		HP:         hp,
		MaxHP:      hp,
		Attack:     atk,
		Defense:    dfn,
		Behavior:   t.Behavior,
		XPReward:   xp,
		Mechanical: t.Mechanical,
		Boss:       t.Boss,
		OnHit:      t.OnHit,
		Effects:    make(map[domain.EffectKind]*domain.ActiveEffect),
	}
}

// --- ВРАГИ ---

var Drone = EnemySpec{
	Name:       "Maintenance Drone",
	Symbol:     "d",
	HP:         8,
	Attack:     3,
	Defense:    0,
	XPReward:   10,
	Behavior:   domain.BehaviorMelee,
	Mechanical: true,
}

var Sentry = EnemySpec{
	Name:       "Sentry Frame",
	Symbol:     "S",
	HP:         15,
	Attack:     5,
	Defense:    2,
	XPReward:   25,
	Behavior:   domain.BehaviorMelee,
	Mechanical: true,
	OnHit:      &domain.OnHitSpec{Effect: domain.EffectStun, Turns: 2, Chance: 15},
}

var Stalker = EnemySpec{
	Name:     "Vent Stalker",
	Symbol:   "X",
	HP:       22,
	Attack:   7,
	Defense:  1,
	XPReward: 40,
	Behavior: domain.BehaviorMelee,
	OnHit:    &domain.OnHitSpec{Effect: domain.EffectPoison, Turns: 4, Chance: 20},
}

var Gunner = EnemySpec{
	Name:     "Rail Gunner",
	Symbol:   "G",
	HP:       12,
	Attack:   6,
	Defense:  0,
	XPReward: 30,
	Behavior: domain.BehaviorRanged,
	OnHit:    &domain.OnHitSpec{Effect: domain.EffectBurn, Turns: 3, Chance: 25},
}

var Lurker = EnemySpec{
	Name:     "Pale Lurker",
	Symbol:   "L",
	HP:       14,
	Attack:   5,
	Defense:  0,
	XPReward: 35,
	Behavior: domain.BehaviorFast,
}

var Brute = EnemySpec{
	Name:     "Hull Brute",
	Symbol:   "B",
	HP:       35,
	Attack:   10,
	Defense:  3,
	XPReward: 60,
	Behavior: domain.BehaviorBrute,
	OnHit:    &domain.OnHitSpec{Effect: domain.EffectStun, Turns: 2, Chance: 25},
}

var Exploder = EnemySpec{
	Name:     "Volatile Husk",
	Symbol:   "E",
	HP:       10,
	Attack:   4,
	Defense:  0,
	XPReward: 20,
	Behavior: domain.BehaviorExploder,
}

// Guardian сторожит источник сигнала. Не механический: EMP его не берет.
var Guardian = EnemySpec{
	Name:     "HADES-7 Remnant",
	Symbol:   "H",
	HP:       100,
	Attack:   12,
	Defense:  3,
	XPReward: 500,
	Behavior: domain.BehaviorMelee,
	Boss:     true,
}

// Hostiles — рядовые враги в порядке индексов ThemeSpec.Weights.
var Hostiles = []EnemySpec{Drone, Sentry, Stalker, Gunner, Lurker, Brute, Exploder}

// PickHostile выбирает шаблон по весам темы. Нулевая сумма весов
// дает дрона, чтобы этаж не остался пустым.
func PickHostile(weights []int, rng *rand.Rand) EnemySpec {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return Drone
	}

	roll := rng.Intn(total)
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return Hostiles[i]
		}
	}
	return Drone
}

// --- ЛУТ ---

// LootEntry — строка взвешенной таблицы напольного лута.
type LootEntry struct {
	Kind   domain.ItemKind
	Weight int
}

// FloorLoot — что валяется на этажах. Медикаменты чаще всего,
// топливо почти никогда.
var FloorLoot = []LootEntry{
	{domain.ItemMedkit, 25},
	{domain.ItemAntidote, 10},
	{domain.ItemStim, 10},
	{domain.ItemToxinGrenade, 10},
	{domain.ItemIncendiaryGrenade, 10},
	{domain.ItemFlashGrenade, 10},
	{domain.ItemEMPCharge, 5},
	{domain.ItemSmokeGrenade, 8},
	{domain.ItemFieldScanner, 5},
	{domain.ItemProximityCharge, 5},
	{domain.ItemFuelCell, 2},
}

// PickLoot выбирает предмет из взвешенной таблицы.
func PickLoot(table []LootEntry, rng *rand.Rand) domain.ItemKind {
	total := 0
	for _, e := range table {
		total += e.Weight
	}
	if total <= 0 {
		return domain.ItemMedkit
	}

	roll := rng.Intn(total)
	for _, e := range table {
		roll -= e.Weight
		if roll < 0 {
			return e.Kind
		}
	}
	return domain.ItemMedkit
}
