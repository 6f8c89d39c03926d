package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionUse
	ActionInteract
	ActionAscend
	ActionDescend
	ActionTravel
	ActionDisarm
	ActionRestart
	ActionCheat
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"WAIT":     ActionWait,
	"USE":      ActionUse,
	"INTERACT": ActionInteract,
	"ASCEND":   ActionAscend,
	"DESCEND":  ActionDescend,
	"TRAVEL":   ActionTravel,
	"DISARM":   ActionDisarm,
	"RESTART":  ActionRestart,
	"CHEAT":    ActionCheat,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionWait:     "WAIT",
	ActionUse:      "USE",
	ActionInteract: "INTERACT",
	ActionAscend:   "ASCEND",
	ActionDescend:  "DESCEND",
	ActionTravel:   "TRAVEL",
	ActionDisarm:   "DISARM",
	ActionRestart:  "RESTART",
	ActionCheat:    "CHEAT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
