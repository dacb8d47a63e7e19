package sim

import (
	"fmt"
	"image/color"
)

// EventKind identifies a feedback or gameplay event emitted during a tick.
type EventKind int

const (
	EventBurst   EventKind = iota // particle burst: X, Y, Color, Count
	EventText                     // floating label: X, Y, Color, Text
	EventPulse                    // planet glow: PlanetID, Value
	EventLeap                     // player left a planet
	EventCapture                  // player entered an orbit
	EventCombo                    // combo bonus awarded: Count = combo, Value = points
	EventPickup                   // collectible taken
	EventSmash                    // asteroid destroyed in flight
	EventBash                     // asteroid destroyed by a capture
	EventConsume                  // planet swallowed by the chasing sun
	EventBoss                     // boss cluster generated
	EventDeath                    // run ended: Cause, Count = final score
)

var eventKindNames = [...]string{
	"burst", "text", "pulse", "leap", "capture", "combo",
	"pickup", "smash", "bash", "consume", "boss", "death",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// DeathCause records why a run ended.
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseTimeout
	CauseBoundary
	CauseBlackHole
	CauseFallingAsteroid
	CauseSun
)

var causeNames = [...]string{"none", "timeout", "boundary", "black_hole", "falling_asteroid", "sun"}

func (c DeathCause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return "unknown"
	}
	return causeNames[c]
}

// Event is a single entry on the feedback channel. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind     EventKind
	Tick     int
	X, Y     float64
	Color    color.RGBA
	Count    int
	Value    float64
	Text     string
	PlanetID uint64
	Cause    DeathCause
	NewBest  bool
}

func (e Event) String() string {
	switch e.Kind {
	case EventText:
		return fmt.Sprintf("[T=%05d] %-8s %q", e.Tick, e.Kind, e.Text)
	case EventDeath:
		return fmt.Sprintf("[T=%05d] %-8s cause=%s score=%d best=%v", e.Tick, e.Kind, e.Cause, e.Count, e.NewBest)
	case EventCombo:
		return fmt.Sprintf("[T=%05d] %-8s x%d +%.0f", e.Tick, e.Kind, e.Count, e.Value)
	}
	return fmt.Sprintf("[T=%05d] %-8s (%.0f,%.0f)", e.Tick, e.Kind, e.X, e.Y)
}

// Palette used by the core when it tags bursts and labels.
var (
	ColorWhite    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGold     = color.RGBA{R: 251, G: 191, B: 36, A: 255}
	ColorAmber    = color.RGBA{R: 249, G: 115, B: 22, A: 255}
	ColorCrimson  = color.RGBA{R: 220, G: 38, B: 38, A: 255}
	ColorRed      = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	ColorViolet   = color.RGBA{R: 124, G: 58, B: 237, A: 255}
	ColorDebris   = color.RGBA{R: 100, G: 116, B: 139, A: 255}
	ColorDust     = color.RGBA{R: 241, G: 245, B: 249, A: 255}
	ColorBoom     = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	ColorSmash    = color.RGBA{R: 252, G: 165, B: 165, A: 255}
	ColorSunlight = color.RGBA{R: 254, G: 240, B: 138, A: 255}
)

// comboColors steps green → yellow → orange → red as the combo grows.
var comboColors = [...]color.RGBA{
	{R: 74, G: 222, B: 128, A: 255},
	{R: 250, G: 204, B: 21, A: 255},
	{R: 249, G: 115, B: 22, A: 255},
	{R: 239, G: 68, B: 68, A: 255},
}

// ComboColor returns the label colour for a combo count (1-based).
func ComboColor(combo int) color.RGBA {
	i := combo - 1
	if i < 0 {
		i = 0
	}
	if i >= len(comboColors) {
		i = len(comboColors) - 1
	}
	return comboColors[i]
}

// PlanetPalette holds the three tones a planet type is drawn with.
type PlanetPalette struct {
	Main, Detail, Atmosphere color.RGBA
}

var planetPalettes = [...]PlanetPalette{
	Terran: {Main: rgb(59, 130, 246), Detail: rgb(16, 185, 129), Atmosphere: rgb(96, 165, 250)},
	Gas:    {Main: rgb(168, 85, 247), Detail: rgb(232, 121, 249), Atmosphere: rgb(192, 132, 252)},
	Crater: {Main: rgb(148, 163, 184), Detail: rgb(100, 116, 139), Atmosphere: rgb(203, 213, 225)},
	Lava:   {Main: rgb(239, 68, 68), Detail: rgb(249, 115, 22), Atmosphere: rgb(252, 165, 165)},
	Sun:    {Main: rgb(245, 158, 11), Detail: rgb(252, 211, 77), Atmosphere: rgb(251, 191, 36)},
}

// Palette returns the colours for a planet type.
func (t PlanetType) Palette() PlanetPalette {
	if t < 0 || int(t) >= len(planetPalettes) {
		return PlanetPalette{Main: ColorWhite, Detail: ColorWhite, Atmosphere: ColorWhite}
	}
	return planetPalettes[t]
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
