package domain

import "erebus-server/internal/core/types"

// OnHitSpec — эффект, который атака вешает на цель при попадании.
type OnHitSpec struct {
	Effect EffectKind
	Turns  int
	Chance int // процент
}

// Actor — любой участник боя: враги, стражи и (через Player) оператор.
// Позиция актора дублирует ключ в коллекции уровня; двигать актора
// можно только методами Level, иначе индексы разъедутся.
type Actor struct {
	ID     types.ActorID
	Name   string
	Symbol string
	Pos    Position

	HP      int
	MaxHP   int
	Attack  int
	Defense int

	// Поля врагов. У игрока нулевые.
	Behavior   BehaviorTag
	XPReward   int
	Mechanical bool // уязвим для EMP
	Boss       bool
	Cooldown   int // такт тяжелой атаки
	OnHit      *OnHitSpec

	Effects map[EffectKind]*ActiveEffect
}

// TakeDamage снимает HP, не опускаясь ниже нуля, и возвращает
// фактически нанесенный урон.
func (a *Actor) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > a.HP {
		amount = a.HP
	}
	a.HP -= amount
	return amount
}

// HealBy восстанавливает HP до потолка MaxHP и возвращает
// фактически восстановленное количество.
func (a *Actor) HealBy(amount int) int {
	if amount < 0 {
		amount = 0
	}
	missing := a.MaxHP - a.HP
	if amount > missing {
		amount = missing
	}
	a.HP += amount
	return amount
}

// Alive — жив ли актор.
func (a *Actor) Alive() bool {
	return a.HP > 0
}

// HasEffect проверяет наличие активного эффекта.
func (a *Actor) HasEffect(kind EffectKind) bool {
	if a.Effects == nil {
		return false
	}
	ae, ok := a.Effects[kind]
	return ok && ae.Remaining > 0
}

// EffectsSnapshot возвращает виды активных эффектов в фиксированном
// порядке тика. Снимок не меняется, если во время обхода вешаются
// новые эффекты.
func (a *Actor) EffectsSnapshot() []EffectKind {
	if len(a.Effects) == 0 {
		return nil
	}
	kinds := make([]EffectKind, 0, len(a.Effects))
	for _, k := range EffectTickOrder {
		if _, ok := a.Effects[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
