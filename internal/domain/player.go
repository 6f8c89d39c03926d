package domain

// Player — актор под управлением оператора. Встраивает Actor,
// так что боевые системы работают с ним как с любым другим актором.
type Player struct {
	Actor
	Profile CharacterProfile

	Rank        int // уровень персонажа (глубина этажа тут ни при чем)
	XP          int
	XPNext      int
	SkillPoints int

	Credits    int
	Fuel       int
	Corruption int

	Inventory []ItemKind

	// Статистика рейда для архива.
	Kills        int
	DeepestDepth int
}

// NewPlayer собирает игрока из готового профиля.
// ID проставляет кампания при старте.
func NewPlayer(profile CharacterProfile) *Player {
	maxHP := profile.MaxHP()
	return &Player{
		Actor: Actor{
			Name:    profile.Callsign,
			Symbol:  "@",
			HP:      maxHP,
			MaxHP:   maxHP,
			Attack:  profile.MeleeAttack(),
			Effects: make(map[EffectKind]*ActiveEffect),
		},
		Profile:   profile,
		Rank:      1,
		XPNext:    XPPerRank,
		Fuel:      StartingFuel,
		Inventory: make([]ItemKind, 0, MaxInventory),
	}
}

// GainXP начисляет опыт с учетом множителя интеллекта и прокручивает
// уровни с переносом остатка. Возвращает нарратив повышений.
func (p *Player) GainXP(base int) []Event {
	earned := int(float64(base) * p.Profile.XPMultiplier())
	if earned < 1 {
		earned = 1
	}
	p.XP += earned

	var events []Event
	for p.XP >= p.XPNext {
		p.XP -= p.XPNext
		p.Rank++
		p.SkillPoints += SkillPointsPerRank
		p.XPNext = XPPerRank * p.Rank
		events = append(events, NewEvent(EventInfo, "Rank up! You are now rank %d.", p.Rank))
	}
	return events
}

// AddItem кладет предмет в рюкзак. false — рюкзак полон.
func (p *Player) AddItem(kind ItemKind) bool {
	if len(p.Inventory) >= MaxInventory {
		return false
	}
	p.Inventory = append(p.Inventory, kind)
	return true
}

// ItemAt возвращает предмет в слоте без изъятия.
func (p *Player) ItemAt(slot int) (ItemKind, bool) {
	if slot < 0 || slot >= len(p.Inventory) {
		return ItemUnknown, false
	}
	return p.Inventory[slot], true
}

// RemoveItemAt изымает предмет из слота, сохраняя порядок остальных.
func (p *Player) RemoveItemAt(slot int) (ItemKind, bool) {
	kind, ok := p.ItemAt(slot)
	if !ok {
		return ItemUnknown, false
	}
	p.Inventory = append(p.Inventory[:slot], p.Inventory[slot+1:]...)
	return kind, true
}

// CountItem считает предметы вида в рюкзаке.
func (p *Player) CountItem(kind ItemKind) int {
	n := 0
	for _, k := range p.Inventory {
		if k == kind {
			n++
		}
	}
	return n
}

// ResistDuration режет длительность входящего эффекта навыком выживания.
// Хотя бы один ход эффект держится всегда.
func (p *Player) ResistDuration(turns int) int {
	reduced := turns - p.Profile.EffectResistance()
	if reduced < 1 {
		reduced = 1
	}
	return reduced
}
