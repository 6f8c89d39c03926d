package domain

import "strings"

// ItemKind - Тип расходника
type ItemKind uint8

const (
	ItemUnknown ItemKind = iota
	ItemMedkit
	ItemAntidote
	ItemStim
	ItemToxinGrenade
	ItemIncendiaryGrenade
	ItemFlashGrenade
	ItemEMPCharge
	ItemSmokeGrenade
	ItemFieldScanner
	ItemProximityCharge
	ItemFuelCell
)

var itemStringToKind = map[string]ItemKind{
	"MEDKIT":             ItemMedkit,
	"ANTIDOTE":           ItemAntidote,
	"STIM":               ItemStim,
	"TOXIN_GRENADE":      ItemToxinGrenade,
	"INCENDIARY_GRENADE": ItemIncendiaryGrenade,
	"FLASH_GRENADE":      ItemFlashGrenade,
	"EMP_CHARGE":         ItemEMPCharge,
	"SMOKE_GRENADE":      ItemSmokeGrenade,
	"FIELD_SCANNER":      ItemFieldScanner,
	"PROXIMITY_CHARGE":   ItemProximityCharge,
	"FUEL_CELL":          ItemFuelCell,
}

var itemKindToString = map[ItemKind]string{
	ItemMedkit:            "MEDKIT",
	ItemAntidote:          "ANTIDOTE",
	ItemStim:              "STIM",
	ItemToxinGrenade:      "TOXIN_GRENADE",
	ItemIncendiaryGrenade: "INCENDIARY_GRENADE",
	ItemFlashGrenade:      "FLASH_GRENADE",
	ItemEMPCharge:         "EMP_CHARGE",
	ItemSmokeGrenade:      "SMOKE_GRENADE",
	ItemFieldScanner:      "FIELD_SCANNER",
	ItemProximityCharge:   "PROXIMITY_CHARGE",
	ItemFuelCell:          "FUEL_CELL",
}

// ParseItemKind конвертирует строку в Enum
func ParseItemKind(s string) ItemKind {
	upper := strings.ToUpper(s)
	if val, ok := itemStringToKind[upper]; ok {
		return val
	}
	return ItemUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k ItemKind) String() string {
	if val, ok := itemKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ItemSpec — статические параметры расходника. Механика применения
// живет в systems, здесь только числа.
type ItemSpec struct {
	Kind        ItemKind
	Name        string // видимое игроку имя
	Symbol      string
	Heal        int        // базовое лечение (медкит)
	Effect      EffectKind // что вешает на цель
	EffectTurns int
	Thrown      bool // летит в ближайшего видимого врага
	Fuel        int  // сколько топлива дает
}

// ItemTable — каталог расходников, собирается один раз.
type ItemTable map[ItemKind]ItemSpec

// DefaultItems возвращает боевой каталог расходников.
func DefaultItems() ItemTable {
	return ItemTable{
		ItemMedkit:            {Kind: ItemMedkit, Name: "Medkit", Symbol: "!", Heal: 10},
		ItemAntidote:          {Kind: ItemAntidote, Name: "Antidote", Symbol: "!"},
		ItemStim:              {Kind: ItemStim, Name: "Stim Injector", Symbol: "!", Effect: EffectStim, EffectTurns: 5},
		ItemToxinGrenade:      {Kind: ItemToxinGrenade, Name: "Toxin Grenade", Symbol: "*", Effect: EffectPoison, EffectTurns: 4, Thrown: true},
		ItemIncendiaryGrenade: {Kind: ItemIncendiaryGrenade, Name: "Incendiary Grenade", Symbol: "*", Effect: EffectBurn, EffectTurns: 3, Thrown: true},
		ItemFlashGrenade:      {Kind: ItemFlashGrenade, Name: "Flash Grenade", Symbol: "*", Effect: EffectStun, EffectTurns: 2, Thrown: true},
		ItemEMPCharge:         {Kind: ItemEMPCharge, Name: "EMP Charge", Symbol: "*", Effect: EffectStun, EffectTurns: 2},
		ItemSmokeGrenade:      {Kind: ItemSmokeGrenade, Name: "Smoke Grenade", Symbol: "*"},
		ItemFieldScanner:      {Kind: ItemFieldScanner, Name: "Field Scanner", Symbol: "?"},
		ItemProximityCharge:   {Kind: ItemProximityCharge, Name: "Proximity Charge", Symbol: "^"},
		ItemFuelCell:          {Kind: ItemFuelCell, Name: "Fuel Cell", Symbol: "$", Fuel: 2},
	}
}

// ArmoryLoot — пул оружейной комнаты. Из него случайно разбрасываются
// предметы при первом входе.
var ArmoryLoot = []ItemKind{
	ItemToxinGrenade,
	ItemIncendiaryGrenade,
	ItemFlashGrenade,
	ItemMedkit,
	ItemProximityCharge,
	ItemFuelCell,
}

// VaultLoot — содержимое сейфового шкафа. Выдается целиком при оплате.
var VaultLoot = []ItemKind{
	ItemStim,
	ItemEMPCharge,
	ItemSmokeGrenade,
	ItemFieldScanner,
}
