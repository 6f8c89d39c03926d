package api

import "testing"

func TestMovePayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		payload MovePayload
		wantErr bool
	}{
		{"cardinal step", MovePayload{Dx: 1, Dy: 0}, false},
		{"diagonal step", MovePayload{Dx: -1, Dy: 1}, false},
		{"zero vector", MovePayload{Dx: 0, Dy: 0}, true},
		{"dx too large", MovePayload{Dx: 2, Dy: 0}, true},
		{"dy too small", MovePayload{Dx: 0, Dy: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitPayloadValidate(t *testing.T) {
	base := InitPayload{Callsign: "Vega", Body: 5, Reflex: 5, Mind: 5, Tech: 5, Presence: 5}

	t.Run("balanced profile passes", func(t *testing.T) {
		if err := base.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("empty callsign passes", func(t *testing.T) {
		p := base
		p.Callsign = ""
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("attribute above 10 fails", func(t *testing.T) {
		p := base
		p.Mind = 11
		if err := p.Validate(); err == nil {
			t.Error("Expected error for mind=11, got nil")
		}
	})

	t.Run("attribute below 1 fails", func(t *testing.T) {
		p := base
		p.Body = 0
		if err := p.Validate(); err == nil {
			t.Error("Expected error for body=0, got nil")
		}
	})

	t.Run("skill above cap fails", func(t *testing.T) {
		p := base
		p.Skills = map[string]int{"MELEE": 6}
		if err := p.Validate(); err == nil {
			t.Error("Expected error for skill level 6, got nil")
		}
	})

	t.Run("negative skill fails", func(t *testing.T) {
		p := base
		p.Skills = map[string]int{"PILOT": -1}
		if err := p.Validate(); err == nil {
			t.Error("Expected error for negative skill, got nil")
		}
	})
}

func TestScalarPayloadValidate(t *testing.T) {
	if err := (UsePayload{Slot: 0}).Validate(); err != nil {
		t.Errorf("UsePayload{0}.Validate() = %v, want nil", err)
	}
	if err := (UsePayload{Slot: -1}).Validate(); err == nil {
		t.Error("Expected error for negative slot, got nil")
	}
	if err := (TravelPayload{Site: 3}).Validate(); err != nil {
		t.Errorf("TravelPayload{3}.Validate() = %v, want nil", err)
	}
	if err := (TravelPayload{Site: -2}).Validate(); err == nil {
		t.Error("Expected error for negative site, got nil")
	}
	if err := (CheatPayload{Code: "reveal"}).Validate(); err != nil {
		t.Errorf("CheatPayload.Validate() = %v, want nil", err)
	}
	if err := (CheatPayload{}).Validate(); err == nil {
		t.Error("Expected error for empty cheat code, got nil")
	}
}
