package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

const (
	logMaxEntries = 60
	logLineHeight = 14
	logRecent     = 3 // newest entries drawn highlighted
)

// FlightEntry is a single line in the flight log.
type FlightEntry struct {
	Tick    int
	Kind    sim.EventKind
	Message string
}

// FlightLog is a ring buffer of notable run events rendered as a panel.
type FlightLog struct {
	entries []FlightEntry
	head    int
	count   int
}

// NewFlightLog creates a flight log with a fixed capacity.
func NewFlightLog() *FlightLog {
	return &FlightLog{
		entries: make([]FlightEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (fl *FlightLog) Add(tick int, kind sim.EventKind, msg string) {
	fl.entries[fl.head] = FlightEntry{Tick: tick, Kind: kind, Message: msg}
	fl.head = (fl.head + 1) % logMaxEntries
	if fl.count < logMaxEntries {
		fl.count++
	}
}

// Record adds a line for every gameplay event in a tick's batch. Pure
// feedback events (bursts, labels, pulses) are skipped.
func (fl *FlightLog) Record(events []sim.Event) {
	for _, e := range events {
		if msg, ok := describe(e); ok {
			fl.Add(e.Tick, e.Kind, msg)
		}
	}
}

// Reset empties the log.
func (fl *FlightLog) Reset() {
	fl.head = 0
	fl.count = 0
}

// Len is the number of stored entries.
func (fl *FlightLog) Len() int {
	return fl.count
}

// Recent returns entries in chronological order (oldest first).
func (fl *FlightLog) Recent() []FlightEntry {
	result := make([]FlightEntry, fl.count)
	for i := 0; i < fl.count; i++ {
		idx := (fl.head - fl.count + i + logMaxEntries) % logMaxEntries
		result[i] = fl.entries[idx]
	}
	return result
}

func describe(e sim.Event) (string, bool) {
	switch e.Kind {
	case sim.EventLeap:
		return fmt.Sprintf("leap from planet %d", e.PlanetID), true
	case sim.EventCapture:
		return fmt.Sprintf("orbit planet %d", e.PlanetID), true
	case sim.EventCombo:
		return fmt.Sprintf("combo x%d +%.0f", e.Count, e.Value), true
	case sim.EventPickup:
		return fmt.Sprintf("pickup +%.0f", e.Value), true
	case sim.EventSmash:
		return "asteroid smashed", true
	case sim.EventBash:
		return fmt.Sprintf("shield bash at planet %d", e.PlanetID), true
	case sim.EventConsume:
		return fmt.Sprintf("sun swallowed planet %d", e.PlanetID), true
	case sim.EventBoss:
		return fmt.Sprintf("solar flare (roll %d)", e.Count), true
	case sim.EventDeath:
		msg := fmt.Sprintf("lost: %s at %dm", e.Cause, e.Count)
		if e.NewBest {
			msg += " NEW BEST"
		}
		return msg, true
	}
	return "", false
}

// kindColor is the marker colour for an entry.
func kindColor(k sim.EventKind) color.RGBA {
	switch k {
	case sim.EventCombo:
		return sim.ComboColor(3)
	case sim.EventPickup, sim.EventBoss:
		return sim.ColorGold
	case sim.EventSmash, sim.EventBash:
		return sim.ColorSmash
	case sim.EventConsume:
		return sim.ColorAmber
	case sim.EventDeath:
		return sim.ColorRed
	case sim.EventCapture:
		return color.RGBA{R: 96, G: 165, B: 250, A: 255}
	}
	return color.RGBA{R: 148, G: 163, B: 184, A: 255}
}

// Draw renders the panel into dst, newest entry at the bottom.
func (fl *FlightLog) Draw(dst *ebiten.Image, x, y, w, h int) {
	fx, fy, fw, fh := float32(x), float32(y), float32(w), float32(h)
	vector.FillRect(dst, fx, fy, fw, fh, color.RGBA{R: 8, G: 10, B: 20, A: 220}, false)
	vector.StrokeRect(dst, fx, fy, fw, fh, 1.0, color.RGBA{R: 60, G: 70, B: 110, A: 200}, false)

	vector.FillRect(dst, fx, fy, fw, 16, color.RGBA{R: 20, G: 24, B: 44, A: 255}, false)
	drawText(dst, "FLIGHT LOG", float64(x+6), float64(y+1), colorHUD)
	vector.StrokeLine(dst, fx, fy+16, fx+fw, fy+16, 1.0, color.RGBA{R: 60, G: 70, B: 110, A: 200}, false)

	entries := fl.Recent()
	maxVisible := (h - 22) / logLineHeight
	if maxVisible <= 0 {
		return
	}
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	ly := y + 19
	for i, e := range entries {
		isRecent := i >= len(entries)-logRecent
		if isRecent {
			vector.FillRect(dst, fx+2, float32(ly), fw-4, logLineHeight, color.RGBA{R: 30, G: 36, B: 64, A: 160}, false)
		}
		vector.FillRect(dst, fx+5, float32(ly+4), 3, 6, kindColor(e.Kind), false)

		textCol := colorDim
		if isRecent {
			textCol = colorHUD
		}
		drawText(dst, fmt.Sprintf("%5d %s", e.Tick, e.Message), float64(x+12), float64(ly), textCol)
		ly += logLineHeight
	}
}
