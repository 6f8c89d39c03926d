package engine

import (
	"sort"

	"erebus-server/internal/domain"
	"erebus-server/internal/systems"
	"erebus-server/pkg/api"
)

// BuildState создает персональный "снимок" мира для оператора сессии.
//
// Снимок честный: неисследованные тайлы не передаются вовсе, враги и
// предметы входят только из текущего поля зрения, ловушки — только
// замеченные. Клиент не может отрендерить то, чего оператор не знает.
func BuildState(s *Session, events []domain.Event) *api.StateView {
	lvl := s.Level
	pl := s.Player

	state := &api.StateView{
		Turn:         s.Turn,
		Session:      s.State.String(),
		Site:         lvl.Site,
		Depth:        s.Depth,
		Floor:        lvl.Theme,
		RenderRadius: systems.RenderRadius(pl, s.Turn),
		Grid:         api.GridMeta{Width: lvl.Grid.Width, Height: lvl.Grid.Height},
	}

	// --- Тайлы ---
	// Проход строго построчный: кадр детерминирован при равном мире.
	for y := 0; y < lvl.Grid.Height; y++ {
		for x := 0; x < lvl.Grid.Width; x++ {
			pos := domain.Position{X: x, Y: y}
			if !lvl.Explored[pos] {
				continue
			}
			state.Tiles = append(state.Tiles, api.TileView{
				X:       x,
				Y:       y,
				Symbol:  string(lvl.Grid.At(pos).Rune()),
				Visible: lvl.Visible[pos],
			})
		}
	}

	// --- Акторы ---
	// Оператор всегда первый; враги в порядке инициативы, только видимые.
	state.Actors = append(state.Actors, api.ActorView{
		ID:     pl.ID.Wire(),
		Name:   pl.Name,
		Symbol: pl.Symbol,
		X:      pl.Pos.X,
		Y:      pl.Pos.Y,
		HP:     pl.HP,
		MaxHP:  pl.MaxHP,
		Player: true,
	})
	for _, e := range s.Initiative.Order() {
		if !e.Alive() || !lvl.Visible[e.Pos] {
			continue
		}
		state.Actors = append(state.Actors, api.ActorView{
			ID:     e.ID.Wire(),
			Name:   e.Name,
			Symbol: e.Symbol,
			X:      e.Pos.X,
			Y:      e.Pos.Y,
			HP:     e.HP,
			MaxHP:  e.MaxHP,
		})
	}

	// --- Предметы, ловушки, объекты ---
	for _, pos := range sortedPositions(lvl.Items) {
		if !lvl.Visible[pos] {
			continue
		}
		spec := s.Items[lvl.Items[pos]]
		state.Items = append(state.Items, api.ItemView{
			X: pos.X, Y: pos.Y, Name: spec.Name, Symbol: spec.Symbol,
		})
	}

	for _, pos := range sortedPositions(lvl.Hazards) {
		hz := lvl.Hazards[pos]
		if !hz.Revealed || !lvl.Explored[pos] {
			continue
		}
		spec := s.Hazards[hz.Kind]
		state.Hazards = append(state.Hazards, api.HazardView{
			X: pos.X, Y: pos.Y,
			Kind:    hz.Kind.String(),
			Symbol:  spec.Symbol,
			Planted: hz.Planted,
		})
	}

	for _, pos := range sortedPositions(lvl.Features) {
		if !lvl.Explored[pos] {
			continue
		}
		f := lvl.Features[pos]
		state.Features = append(state.Features, api.FeatureView{
			X: pos.X, Y: pos.Y,
			Kind:   f.Kind.String(),
			Symbol: f.Symbol(),
			Used:   f.Used,
		})
	}

	for _, poi := range lvl.POIs {
		if !lvl.Explored[poi.Pos] {
			continue
		}
		state.POIs = append(state.POIs, api.POIView{
			X: poi.Pos.X, Y: poi.Pos.Y,
			Label:  poi.Label,
			Symbol: poi.Symbol,
			Main:   poi.Main,
		})
	}

	state.Panel = buildPanel(s)

	state.Events = make([]api.EventView, 0, len(events))
	for _, ev := range events {
		state.Events = append(state.Events, api.EventView{
			Kind: ev.Kind.String(),
			Text: ev.Text,
		})
	}

	return state
}

// buildPanel собирает боковой статус-экран.
func buildPanel(s *Session) api.PanelView {
	pl := s.Player

	panel := api.PanelView{
		Callsign:    pl.Name,
		Rank:        pl.Rank,
		XP:          pl.XP,
		XPNext:      pl.XPNext,
		SkillPoints: pl.SkillPoints,
		HP:          pl.HP,
		MaxHP:       pl.MaxHP,
		Attack:      pl.Attack,
		Dodge:       pl.Profile.DodgeChance(),
		Credits:     pl.Credits,
		Fuel:        pl.Fuel,
		Corruption:  pl.Corruption,
		Kills:       pl.Kills,
		Inventory:   make([]string, 0, len(pl.Inventory)),
	}

	for _, kind := range pl.Inventory {
		panel.Inventory = append(panel.Inventory, s.Items[kind].Name)
	}
	for _, kind := range pl.EffectsSnapshot() {
		panel.Effects = append(panel.Effects, api.EffectView{
			Name:      kind.String(),
			Remaining: pl.Effects[kind].Remaining,
		})
	}
	return panel
}

// sortedPositions возвращает ключи позиционированной коллекции в
// построчном порядке. Обход map сам по себе недетерминирован, а кадры
// при равном мире обязаны совпадать байт в байт.
func sortedPositions[V any](m map[domain.Position]V) []domain.Position {
	keys := make([]domain.Position, 0, len(m))
	for p := range m {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}
