package domain

import "strings"

// FeatureKind - Тип интерактивного объекта на тайле
type FeatureKind uint8

const (
	FeatureUnknown FeatureKind = iota
	FeatureTerminal
	FeatureShopTerminal
	FeatureVaultLocker
)

var featureStringToKind = map[string]FeatureKind{
	"TERMINAL":      FeatureTerminal,
	"SHOP_TERMINAL": FeatureShopTerminal,
	"VAULT_LOCKER":  FeatureVaultLocker,
}

var featureKindToString = map[FeatureKind]string{
	FeatureTerminal:     "TERMINAL",
	FeatureShopTerminal: "SHOP_TERMINAL",
	FeatureVaultLocker:  "VAULT_LOCKER",
}

// ParseFeatureKind конвертирует строку в Enum
func ParseFeatureKind(s string) FeatureKind {
	upper := strings.ToUpper(s)
	if val, ok := featureStringToKind[upper]; ok {
		return val
	}
	return FeatureUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k FeatureKind) String() string {
	if val, ok := featureKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Feature — интерактивный объект на тайле уровня.
type Feature struct {
	Kind FeatureKind
	Used bool // терминал прочитан / сейф открыт

	// Запись терминала. Генерируется лениво при первом чтении
	// и дальше не меняется: повторное чтение показывает то же.
	Title string
	Lines []string
}

// Symbol возвращает символ объекта для вью.
func (f *Feature) Symbol() string {
	switch f.Kind {
	case FeatureTerminal:
		return "T"
	case FeatureShopTerminal:
		return "$"
	case FeatureVaultLocker:
		return "V"
	default:
		return "?"
	}
}

// SpecialRoomKind - Назначение особой комнаты
type SpecialRoomKind uint8

const (
	SpecialNone SpecialRoomKind = iota
	SpecialArmory
	SpecialMedbay
	SpecialTerminals
	SpecialVault
	SpecialShop
)

var specialKindToString = map[SpecialRoomKind]string{
	SpecialArmory:    "ARMORY",
	SpecialMedbay:    "MEDBAY",
	SpecialTerminals: "TERMINALS",
	SpecialVault:     "VAULT",
	SpecialShop:      "SHOP",
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k SpecialRoomKind) String() string {
	if val, ok := specialKindToString[k]; ok {
		return val
	}
	return "NONE"
}

// SpecialRoom — комната с разовым эффектом при первом входе.
type SpecialRoom struct {
	Kind      SpecialRoomKind
	Room      Room
	Triggered bool
}
