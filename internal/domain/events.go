package domain

import (
	"fmt"
	"strings"
)

// EventType - Категория нарративного события хода
type EventType uint8

const (
	EventUnknown EventType = iota
	EventInfo
	EventCombat
	EventEffect
	EventSuppressed
	EventHazard
	EventDeath
	EventDiscovery
	EventTransition
	EventRefusal
	EventSystem
)

// Маппинг для конвертации JSON -> Domain
var eventStringToCmd = map[string]EventType{
	"INFO":       EventInfo,
	"COMBAT":     EventCombat,
	"EFFECT":     EventEffect,
	"SUPPRESSED": EventSuppressed,
	"HAZARD":     EventHazard,
	"DEATH":      EventDeath,
	"DISCOVERY":  EventDiscovery,
	"TRANSITION": EventTransition,
	"REFUSAL":    EventRefusal,
	"SYSTEM":     EventSystem,
}

// Маппинг для логов Domain -> String
var eventCmdToString = map[EventType]string{
	EventInfo:       "INFO",
	EventCombat:     "COMBAT",
	EventEffect:     "EFFECT",
	EventSuppressed: "SUPPRESSED",
	EventHazard:     "HAZARD",
	EventDeath:      "DEATH",
	EventDiscovery:  "DISCOVERY",
	EventTransition: "TRANSITION",
	EventRefusal:    "REFUSAL",
	EventSystem:     "SYSTEM",
}

// ParseEvent конвертирует строку из JSON в EventType
func ParseEvent(s string) EventType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := eventStringToCmd[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// Event — одна строка нарратива хода. Все, что игрок должен увидеть
// (промахи, отказы, срабатывания ловушек), идет событиями, а не ошибками.
type Event struct {
	Kind EventType `json:"kind"`
	Text string    `json:"text"`
}

// NewEvent форматирует событие в стиле fmt.Sprintf.
func NewEvent(kind EventType, format string, args ...any) Event {
	return Event{Kind: kind, Text: fmt.Sprintf(format, args...)}
}
