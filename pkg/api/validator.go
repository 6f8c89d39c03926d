package api

import (
	"errors"
	"fmt"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InitPayload) Validate() error {
	for name, v := range map[string]int{
		"body":     p.Body,
		"reflex":   p.Reflex,
		"mind":     p.Mind,
		"tech":     p.Tech,
		"presence": p.Presence,
	} {
		if v < 1 || v > 10 {
			return fmt.Errorf("attribute %s out of range [1,10]: %d", name, v)
		}
	}
	for name, lvl := range p.Skills {
		if lvl < 0 || lvl > 5 {
			return fmt.Errorf("skill %s out of range [0,5]: %d", name, lvl)
		}
	}
	return nil
}

func (p MovePayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p UsePayload) Validate() error {
	if p.Slot < 0 {
		return errors.New("slot cannot be negative")
	}
	return nil
}

func (p TravelPayload) Validate() error {
	if p.Site < 0 {
		return errors.New("site index cannot be negative")
	}
	return nil
}

func (p CheatPayload) Validate() error {
	if p.Code == "" {
		return errors.New("cheat code is required")
	}
	return nil
}
