package sim

import (
	"fmt"
	"strings"
)

// Mode selects the ruleset for a run. It is fixed once the run starts.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSurvival
)

func (m Mode) String() string {
	if m == ModeSurvival {
		return "survival"
	}
	return "classic"
}

// ParseMode accepts "classic" or "survival" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return ModeClassic, nil
	case "survival":
		return ModeSurvival, nil
	}
	return ModeClassic, fmt.Errorf("unknown mode %q (want classic or survival)", s)
}

// newHazard builds the mode's active hazard.
func (m Mode) newHazard(vp Viewport) Hazard {
	if m == ModeSurvival {
		return NewChasingSun(vp)
	}
	return noHazard{}
}
