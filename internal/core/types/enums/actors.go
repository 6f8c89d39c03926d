package enums

import "strings"

// ActorKind — тип актора в симуляции.
type ActorKind uint8

const (
	ActorKindUnknown ActorKind = iota
	ActorKindOperator
	ActorKindHostile
	ActorKindGuardian
)

var actorKindToString = map[ActorKind]string{
	ActorKindOperator: "OPERATOR",
	ActorKindHostile:  "HOSTILE",
	ActorKindGuardian: "GUARDIAN",
}

var actorKindStringToKind = map[string]ActorKind{
	"OPERATOR": ActorKindOperator,
	"HOSTILE":  ActorKindHostile,
	"GUARDIAN": ActorKindGuardian,
}

// String возвращает строковое представление (для логов и дебага)
func (k ActorKind) String() string {
	if val, ok := actorKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseActorKind конвертирует строку в Enum (нужно для конфигов и реплеев)
func ParseActorKind(s string) ActorKind {
	upper := strings.ToUpper(s)
	if val, ok := actorKindStringToKind[upper]; ok {
		return val
	}
	return ActorKindUnknown
}
