package engine

import (
	"bytes"
	"encoding/json"
	"testing"

	"erebus-server/internal/domain"
)

func TestNewSessionSpawn(t *testing.T) {
	s := newTestSession(t, 42)

	if s.State != SessionActive {
		t.Errorf("State = %v, want ACTIVE", s.State)
	}
	if s.Turn != 0 || s.RunIndex != 0 {
		t.Errorf("Turn, RunIndex = %d, %d; want 0, 0", s.Turn, s.RunIndex)
	}
	if s.SiteIndex != 0 || s.Depth != 0 {
		t.Errorf("spawn location = (%d, %d), want (0, 0)", s.SiteIndex, s.Depth)
	}
	if s.Level.Site != "Erebus Station" {
		t.Errorf("Level.Site = %s, want Erebus Station", s.Level.Site)
	}
	if s.Player.Pos != s.Level.Entry {
		t.Errorf("Player.Pos = %v, want Entry %v", s.Player.Pos, s.Level.Entry)
	}
	if s.Level.Grid.At(s.Player.Pos) != domain.TilePad {
		t.Error("operator does not spawn on the landing pad")
	}
	if s.Player.Fuel != domain.StartingFuel {
		t.Errorf("Fuel = %d, want %d", s.Player.Fuel, domain.StartingFuel)
	}
	if len(s.Level.Explored) == 0 {
		t.Error("no tiles explored after landing")
	}

	events := s.TakeEvents()
	if len(events) == 0 {
		t.Fatal("landing produced no narrative")
	}
	if events[0].Kind != domain.EventTransition {
		t.Errorf("first landing event kind = %v, want TRANSITION", events[0].Kind)
	}
	if s.TakeEvents() != nil {
		t.Error("TakeEvents did not drain the buffer")
	}
}

func TestSessionDeterminism(t *testing.T) {
	a := newTestSession(t, 1234)
	b := newTestSession(t, 1234)
	a.TakeEvents()
	b.TakeEvents()

	frameA, err := json.Marshal(BuildState(a, nil))
	if err != nil {
		t.Fatalf("marshal A: %v", err)
	}
	frameB, err := json.Marshal(BuildState(b, nil))
	if err != nil {
		t.Fatalf("marshal B: %v", err)
	}

	if !bytes.Equal(frameA, frameB) {
		t.Error("same seed produced different opening frames")
	}
}

func TestSessionDescendViaMainEntrance(t *testing.T) {
	s := newTestSession(t, 42)
	poi := mainPOI(t, s.Level)
	s.Player.Pos = poi.Pos

	events, ok := s.Descend()
	if !ok {
		t.Fatalf("Descend() at main entrance refused: %v", events)
	}

	if s.SiteIndex != 0 || s.Depth != 1 {
		t.Errorf("after descend: (%d, %d), want (0, 1)", s.SiteIndex, s.Depth)
	}
	if s.Player.Pos != s.Level.Entry {
		t.Error("operator did not land at the floor entry")
	}
	if s.Level.Grid.At(s.Level.Entry) != domain.TileStairUp {
		t.Error("floor entry has no up shaft")
	}
	if s.Player.DeepestDepth != 1 {
		t.Errorf("DeepestDepth = %d, want 1", s.Player.DeepestDepth)
	}

	// Climbing back out drops the operator at the entrance they used.
	events, ok = s.Ascend()
	if !ok {
		t.Fatalf("Ascend() from floor 1 refused: %v", events)
	}
	if s.Depth != 0 || s.SiteIndex != 0 {
		t.Errorf("after ascend: (%d, %d), want (0, 0)", s.SiteIndex, s.Depth)
	}
	if s.Player.Pos != poi.Pos {
		t.Errorf("surfaced at %v, want entrance %v", s.Player.Pos, poi.Pos)
	}
}

func TestSessionDescendIntoMini(t *testing.T) {
	s := newTestSession(t, 42)
	mini := firstMini(t, s.Campaign)

	var entrance domain.POI
	found := false
	for _, poi := range s.Level.POIs {
		if poi.SiteIndex == mini {
			entrance, found = poi, true
			break
		}
	}
	if !found {
		t.Fatalf("surface has no entrance for site %d", mini)
	}

	s.Player.Pos = entrance.Pos
	if events, ok := s.Descend(); !ok {
		t.Fatalf("Descend() into mini refused: %v", events)
	}
	if s.SiteIndex != mini || s.Depth != 1 {
		t.Errorf("after descend: (%d, %d), want (%d, 1)", s.SiteIndex, s.Depth, mini)
	}

	// Surfacing from a nested site lands on the parent's ground.
	if events, ok := s.Ascend(); !ok {
		t.Fatalf("Ascend() from mini refused: %v", events)
	}
	if s.SiteIndex != 0 || s.Depth != 0 {
		t.Errorf("after ascend: (%d, %d), want (0, 0)", s.SiteIndex, s.Depth)
	}
	if s.Player.Pos != entrance.Pos {
		t.Errorf("surfaced at %v, want mini entrance %v", s.Player.Pos, entrance.Pos)
	}
}

func TestSessionDescendRefusals(t *testing.T) {
	s := newTestSession(t, 42)

	// The landing pad is not an entrance.
	events, ok := s.Descend()
	if ok {
		t.Fatal("Descend() on the pad succeeded")
	}
	if len(events) != 1 || events[0].Kind != domain.EventRefusal {
		t.Fatalf("refusal events = %v, want single REFUSAL", events)
	}
	if events[0].Text != "There is no way down here." {
		t.Errorf("refusal text = %q", events[0].Text)
	}
	if s.Depth != 0 {
		t.Error("refused descend changed depth")
	}
}

func TestSessionAscendRefusalOffPad(t *testing.T) {
	s := newTestSession(t, 42)
	s.Player.Pos = remoteFloor(t, s.Level, s.Level.Entry)

	events, ok := s.Ascend()
	if ok {
		t.Fatal("Ascend() away from the pad succeeded")
	}
	if events[0].Text != "The shuttle waits on the pad, not here." {
		t.Errorf("refusal text = %q", events[0].Text)
	}
}

func TestSessionTravel(t *testing.T) {
	s := newTestSession(t, 42)

	tests := []struct {
		name   string
		target int
		want   string
	}{
		{name: "same site", target: 0, want: "You are already on Erebus Station."},
		{name: "unknown index", target: 99, want: "No such destination on the nav chart."},
		{name: "nested site", target: firstMini(t, s.Campaign), want: "No such destination on the nav chart."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			events, ok := s.Travel(tc.target)
			if ok {
				t.Fatalf("Travel(%d) succeeded", tc.target)
			}
			if events[0].Text != tc.want {
				t.Errorf("refusal text = %q, want %q", events[0].Text, tc.want)
			}
		})
	}

	if events, ok := s.Travel(1); !ok {
		t.Fatalf("Travel(1) refused: %v", events)
	}
	if s.SiteIndex != 1 || s.Depth != 0 {
		t.Errorf("after travel: (%d, %d), want (1, 0)", s.SiteIndex, s.Depth)
	}
	if s.Level.Site != "Frontier Town" {
		t.Errorf("Level.Site = %s, want Frontier Town", s.Level.Site)
	}
	if want := domain.StartingFuel - 1; s.Player.Fuel != want {
		t.Errorf("Fuel after flight = %d, want %d", s.Player.Fuel, want)
	}
	if s.Player.Pos != s.Level.Entry {
		t.Error("operator did not land on the destination pad")
	}
}

func TestSessionTravelNeedsFuel(t *testing.T) {
	s := newTestSession(t, 42)
	s.Player.Fuel = 1

	// Wreck: ISC Calyx costs 2 fuel.
	events, ok := s.Travel(2)
	if ok {
		t.Fatal("Travel(2) succeeded with 1 fuel")
	}
	if events[0].Text != "Not enough fuel: the flight needs 2, you carry 1." {
		t.Errorf("refusal text = %q", events[0].Text)
	}
	if s.Player.Fuel != 1 {
		t.Error("refused flight burned fuel")
	}
}

func TestSessionTravelOnlyFromSurface(t *testing.T) {
	s := newTestSession(t, 42)
	s.Player.Pos = mainPOI(t, s.Level).Pos
	if events, ok := s.Descend(); !ok {
		t.Fatalf("Descend() refused: %v", events)
	}

	events, ok := s.Travel(1)
	if ok {
		t.Fatal("Travel() succeeded underground")
	}
	if events[0].Text != "You can only hail the shuttle from the surface." {
		t.Errorf("refusal text = %q", events[0].Text)
	}
}

func TestBeginNextRunRerollsCampaign(t *testing.T) {
	const seed = 42
	s := newTestSession(t, seed)
	s.Player.Credits = 500
	s.Player.Kills = 9
	s.State = SessionDead

	if err := s.BeginNextRun(); err != nil {
		t.Fatalf("BeginNextRun() error: %v", err)
	}

	if s.RunIndex != 1 {
		t.Errorf("RunIndex = %d, want 1", s.RunIndex)
	}
	if s.Campaign.MasterSeed != seed+1 {
		t.Errorf("MasterSeed = %d, want %d", s.Campaign.MasterSeed, seed+1)
	}
	if s.State != SessionActive {
		t.Errorf("State = %v, want ACTIVE", s.State)
	}
	if s.Turn != 0 {
		t.Errorf("Turn = %d, want 0", s.Turn)
	}
	if s.Player.Credits != 0 || s.Player.Kills != 0 {
		t.Error("operator carried progress into the new run")
	}
	if s.SiteIndex != 0 || s.Depth != 0 {
		t.Errorf("respawn location = (%d, %d), want (0, 0)", s.SiteIndex, s.Depth)
	}
}

func TestSessionStateStrings(t *testing.T) {
	tests := []struct {
		state SessionState
		str   string
	}{
		{SessionActive, "ACTIVE"},
		{SessionEscaped, "ESCAPED"},
		{SessionDead, "DEAD"},
		{SessionRestarted, "RESTARTED"},
	}
	for _, tc := range tests {
		if tc.state.String() != tc.str {
			t.Errorf("%d.String() = %s, want %s", tc.state, tc.state.String(), tc.str)
		}
		if ParseSessionState(tc.str) != tc.state {
			t.Errorf("ParseSessionState(%s) = %v, want %v", tc.str, ParseSessionState(tc.str), tc.state)
		}
	}

	if !SessionDead.Terminal() || !SessionEscaped.Terminal() {
		t.Error("DEAD and ESCAPED must be terminal")
	}
	if SessionActive.Terminal() || SessionRestarted.Terminal() {
		t.Error("ACTIVE and RESTARTED must not be terminal")
	}
}
