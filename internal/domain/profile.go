package domain

import "strings"

// Skill - Прокачиваемый навык персонажа
type Skill uint8

const (
	SkillUnknown Skill = iota
	SkillMelee
	SkillTactics
	SkillSurvival
	SkillMedicine
	SkillEngineering
	SkillHacking
	SkillPilot
	SkillCartography
	SkillIntimidation
)

var skillStringToKind = map[string]Skill{
	"MELEE":        SkillMelee,
	"TACTICS":      SkillTactics,
	"SURVIVAL":     SkillSurvival,
	"MEDICINE":     SkillMedicine,
	"ENGINEERING":  SkillEngineering,
	"HACKING":      SkillHacking,
	"PILOT":        SkillPilot,
	"CARTOGRAPHY":  SkillCartography,
	"INTIMIDATION": SkillIntimidation,
}

var skillKindToString = map[Skill]string{
	SkillMelee:        "MELEE",
	SkillTactics:      "TACTICS",
	SkillSurvival:     "SURVIVAL",
	SkillMedicine:     "MEDICINE",
	SkillEngineering:  "ENGINEERING",
	SkillHacking:      "HACKING",
	SkillPilot:        "PILOT",
	SkillCartography:  "CARTOGRAPHY",
	SkillIntimidation: "INTIMIDATION",
}

// ParseSkill конвертирует строку в Enum
func ParseSkill(s string) Skill {
	upper := strings.ToUpper(s)
	if val, ok := skillStringToKind[upper]; ok {
		return val
	}
	return SkillUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (s Skill) String() string {
	if val, ok := skillKindToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// CharacterProfile — готовый персонаж, каким его отдает внешний
// конструктор персонажей. Ядро профиль только читает; производные
// характеристики всегда считаются, а не хранятся.
type CharacterProfile struct {
	Callsign string        `json:"callsign"`
	Body     int           `json:"body"`
	Reflex   int           `json:"reflex"`
	Mind     int           `json:"mind"`
	Tech     int           `json:"tech"`
	Presence int           `json:"presence"`
	Skills   map[Skill]int `json:"skills,omitempty"`
}

// DefaultProfile возвращает сбалансированный профиль для ботов и тестов.
func DefaultProfile() CharacterProfile {
	return CharacterProfile{
		Callsign: "Drifter",
		Body:     5,
		Reflex:   5,
		Mind:     5,
		Tech:     5,
		Presence: 5,
		Skills:   map[Skill]int{},
	}
}

// SkillLevel возвращает уровень навыка, 0 для непрокачанных.
func (p CharacterProfile) SkillLevel(s Skill) int {
	if p.Skills == nil {
		return 0
	}
	return p.Skills[s]
}

// MaxHP: 20 + 2*Body.
func (p CharacterProfile) MaxHP() int {
	return 20 + p.Body*2
}

// MeleeAttack: база 1, бонус тела сверх 5, навык ближнего боя.
func (p CharacterProfile) MeleeAttack() int {
	return 1 + max(0, (p.Body-5)/2) + p.SkillLevel(SkillMelee)
}

// DodgeChance — шанс уклонения в процентах.
func (p CharacterProfile) DodgeChance() int {
	return max(0, (p.Reflex-5)*4) + p.SkillLevel(SkillTactics)*2
}

// FOVRadius — радиус обзора в тайлах.
func (p CharacterProfile) FOVRadius() int {
	return 8 + max(0, (p.Mind-5)/3) + p.SkillLevel(SkillCartography)/2
}

// XPMultiplier — множитель получаемого опыта.
func (p CharacterProfile) XPMultiplier() float64 {
	return 1.0 + 0.05*float64(max(0, p.Mind-5))
}

// FuelDiscount — скидка на перелеты за навык пилотирования.
func (p CharacterProfile) FuelDiscount() int {
	return p.SkillLevel(SkillPilot) / 2
}

// EffectResistance — на сколько ходов выживание режет входящие эффекты.
func (p CharacterProfile) EffectResistance() int {
	return p.SkillLevel(SkillSurvival)
}

// HealBonus — прибавка медицины к лечению медкитом.
func (p CharacterProfile) HealBonus() int {
	return p.SkillLevel(SkillMedicine) * 2
}

// HesitationChance — шанс (в процентах), что враг замешкается
// и пропустит ход, глядя на этого персонажа.
func (p CharacterProfile) HesitationChance() int {
	return max(0, (p.Presence-5)*3+p.SkillLevel(SkillIntimidation)*3)
}
