package domain

import "strings"

// BehaviorTag - Модель поведения враждебного актора
type BehaviorTag uint8

const (
	BehaviorUnknown BehaviorTag = iota
	BehaviorMelee
	BehaviorRanged
	BehaviorFast
	BehaviorBrute
	BehaviorExploder
)

// Маппинг для конвертации шаблонов -> Domain
var behaviorStringToTag = map[string]BehaviorTag{
	"MELEE":    BehaviorMelee,
	"RANGED":   BehaviorRanged,
	"FAST":     BehaviorFast,
	"BRUTE":    BehaviorBrute,
	"EXPLODER": BehaviorExploder,
}

// Маппинг для логов Domain -> String
var behaviorTagToString = map[BehaviorTag]string{
	BehaviorMelee:    "MELEE",
	BehaviorRanged:   "RANGED",
	BehaviorFast:     "FAST",
	BehaviorBrute:    "BRUTE",
	BehaviorExploder: "EXPLODER",
}

// ParseBehaviorTag конвертирует строку в Enum
func ParseBehaviorTag(s string) BehaviorTag {
	upper := strings.ToUpper(s)
	if val, ok := behaviorStringToTag[upper]; ok {
		return val
	}
	return BehaviorUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (b BehaviorTag) String() string {
	if val, ok := behaviorTagToString[b]; ok {
		return val
	}
	return "UNKNOWN"
}
