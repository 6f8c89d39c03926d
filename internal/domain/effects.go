package domain

import "strings"

// EffectKind - Тип статусного эффекта
type EffectKind uint8

const (
	EffectUnknown EffectKind = iota
	EffectPoison
	EffectBurn
	EffectRepair
	EffectStim
	EffectStun
)

var effectStringToKind = map[string]EffectKind{
	"POISON": EffectPoison,
	"BURN":   EffectBurn,
	"REPAIR": EffectRepair,
	"STIM":   EffectStim,
	"STUN":   EffectStun,
}

var effectKindToString = map[EffectKind]string{
	EffectPoison: "POISON",
	EffectBurn:   "BURN",
	EffectRepair: "REPAIR",
	EffectStim:   "STIM",
	EffectStun:   "STUN",
}

// ParseEffectKind конвертирует строку в Enum
func ParseEffectKind(s string) EffectKind {
	upper := strings.ToUpper(s)
	if val, ok := effectStringToKind[upper]; ok {
		return val
	}
	return EffectUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k EffectKind) String() string {
	if val, ok := effectKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// EffectSpec описывает, что эффект делает каждый ход.
// Длительность сюда не входит: ее задает источник (оружие, ловушка, предмет).
type EffectSpec struct {
	Kind        EffectKind
	TickDamage  int  // урон в ход
	TickHeal    int  // лечение в ход, режется недостающим HP
	Stacks      bool // повторное наложение усиливает, а не только освежает
	Suppressive bool // наличие эффекта съедает ход актора
}

// EffectTable — каталог эффектов. Собирается один раз,
// дальше передается по ссылке и не мутирует.
type EffectTable map[EffectKind]EffectSpec

// DefaultEffects возвращает боевой каталог.
func DefaultEffects() EffectTable {
	return EffectTable{
		EffectPoison: {Kind: EffectPoison, TickDamage: 2},
		EffectBurn:   {Kind: EffectBurn, TickDamage: 3},
		EffectRepair: {Kind: EffectRepair, TickHeal: 5},
		EffectStim:   {Kind: EffectStim},
		EffectStun:   {Kind: EffectStun, Suppressive: true},
	}
}

// EffectTickOrder — фиксированный порядок обработки эффектов в тике.
// Сначала урон, потом лечение, потом модификаторы действий.
var EffectTickOrder = [...]EffectKind{
	EffectPoison,
	EffectBurn,
	EffectRepair,
	EffectStim,
	EffectStun,
}

// ActiveEffect — наложенный на актора эффект.
type ActiveEffect struct {
	Remaining int `json:"remaining"`
	Magnitude int `json:"magnitude"` // для стакающихся видов; у обычных всегда 1
}
