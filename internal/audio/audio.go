// Package audio turns simulation events into short synthesized sound cues.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

const sampleRate = beep.SampleRate(44100)

// CueKind names a sound.
type CueKind int

const (
	CueLeap CueKind = iota
	CueCapture
	CueCombo
	CuePickup
	CueSmash
	CueBash
	CueConsume
	CueBoss
	CueDeath
)

var cueNames = [...]string{"leap", "capture", "combo", "pickup", "smash", "bash", "consume", "boss", "death"}

func (k CueKind) String() string {
	if k < 0 || int(k) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[k]
}

// Cue is one sound to play. Level carries the combo count for CueCombo.
type Cue struct {
	Kind  CueKind
	Level int
}

// Cues maps a tick's events to sounds, at most one per kind. A combo
// replaces the plain capture sound of the same tick.
func Cues(events []sim.Event) []Cue {
	var out []Cue
	var seen [len(cueNames)]bool
	add := func(c Cue) {
		if seen[c.Kind] {
			return
		}
		seen[c.Kind] = true
		out = append(out, c)
	}
	for _, e := range events {
		switch e.Kind {
		case sim.EventLeap:
			add(Cue{Kind: CueLeap})
		case sim.EventCapture:
			add(Cue{Kind: CueCapture})
		case sim.EventCombo:
			add(Cue{Kind: CueCombo, Level: e.Count})
		case sim.EventPickup:
			add(Cue{Kind: CuePickup})
		case sim.EventSmash:
			add(Cue{Kind: CueSmash})
		case sim.EventBash:
			add(Cue{Kind: CueBash})
		case sim.EventConsume:
			add(Cue{Kind: CueConsume})
		case sim.EventBoss:
			add(Cue{Kind: CueBoss})
		case sim.EventDeath:
			add(Cue{Kind: CueDeath})
		}
	}
	if seen[CueCombo] {
		kept := out[:0]
		for _, c := range out {
			if c.Kind != CueCapture {
				kept = append(kept, c)
			}
		}
		out = kept
	}
	return out
}

// Player consumes event batches. The game holds one regardless of whether
// sound is enabled.
type Player interface {
	Handle(events []sim.Event)
	Close()
}

// Silent is the Player used when audio is disabled or unavailable.
type Silent struct{}

func (Silent) Handle([]sim.Event) {}
func (Silent) Close()             {}

// Manager plays cues through the system speaker via a shared mixer.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      int
}

// NewManager creates a manager; volume is a base-2 exponent (0 is unity,
// -1 is half).
func NewManager(volume float64) *Manager {
	return &Manager{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Safe to call more than once.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(&effects.Volume{Streamer: m.mixer, Base: 2, Volume: m.volume})
	m.initialized = true
	return nil
}

// Handle queues the cues for a tick's events.
func (m *Manager) Handle(events []sim.Event) {
	cues := Cues(events)
	if len(cues) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	streams := make([]beep.Streamer, len(cues))
	for i, c := range cues {
		streams[i] = Sound(c, sampleRate)
	}
	speaker.Lock()
	m.mixer.Add(streams...)
	speaker.Unlock()
	m.played += len(cues)
}

// Played reports how many cues have been queued.
func (m *Manager) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// Close silences everything still playing.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Open returns a speaker-backed Player, or Silent with the error when the
// speaker cannot be opened or audio is disabled.
func Open(enabled bool, volume float64) (Player, error) {
	if !enabled {
		return Silent{}, nil
	}
	m := NewManager(volume)
	if err := m.Init(); err != nil {
		return Silent{}, err
	}
	return m, nil
}
