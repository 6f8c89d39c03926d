package domain

import "strings"

// HazardKind - Тип напольной ловушки
type HazardKind uint8

const (
	HazardUnknown HazardKind = iota
	HazardMine
	HazardAcid
	HazardElectric
	HazardCharge // мина, установленная игроком
)

var hazardStringToKind = map[string]HazardKind{
	"MINE":     HazardMine,
	"ACID":     HazardAcid,
	"ELECTRIC": HazardElectric,
	"CHARGE":   HazardCharge,
}

var hazardKindToString = map[HazardKind]string{
	HazardMine:     "MINE",
	HazardAcid:     "ACID",
	HazardElectric: "ELECTRIC",
	HazardCharge:   "CHARGE",
}

// ParseHazardKind конвертирует строку в Enum
func ParseHazardKind(s string) HazardKind {
	upper := strings.ToUpper(s)
	if val, ok := hazardStringToKind[upper]; ok {
		return val
	}
	return HazardUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k HazardKind) String() string {
	if val, ok := hazardKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// HazardSpec — статические параметры ловушки.
type HazardSpec struct {
	Kind        HazardKind
	Name        string
	Symbol      string
	Effect      EffectKind // что вешает при срабатывании; EffectUnknown = ничего
	EffectTurns int
	Damage      int  // прямой урон
	DepthBonus  bool // урон растет с глубиной (+depth)
	Triggers    int  // сколько срабатываний переживает
}

// HazardTable — каталог ловушек, собирается один раз.
type HazardTable map[HazardKind]HazardSpec

// DefaultHazards возвращает боевой каталог ловушек.
func DefaultHazards() HazardTable {
	return HazardTable{
		HazardMine:     {Kind: HazardMine, Name: "mine", Symbol: "^", Effect: EffectBurn, EffectTurns: 3, Damage: 8, DepthBonus: true, Triggers: 1},
		HazardAcid:     {Kind: HazardAcid, Name: "acid pool", Symbol: "~", Effect: EffectBurn, EffectTurns: 3, Triggers: 5},
		HazardElectric: {Kind: HazardElectric, Name: "live conduit", Symbol: "=", Effect: EffectStun, EffectTurns: 2, Triggers: 4},
		HazardCharge:   {Kind: HazardCharge, Name: "proximity charge", Symbol: "^", Damage: 12, Triggers: 1},
	}
}

// Hazard — живая ловушка на конкретном тайле уровня.
type Hazard struct {
	Kind         HazardKind
	TriggersLeft int
	Revealed     bool
	Planted      bool // поставлена игроком, срабатывает на врагах
}
