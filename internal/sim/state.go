package sim

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Viewport is the visible play area in pixels. World X matches screen X;
// world Y is screen Y plus the camera offset, growing downward.
type Viewport struct {
	W, H float64
}

// Input is the per-tick player intent.
type Input struct {
	Leap bool
}

// Config selects how a run starts.
type Config struct {
	Mode Mode
	View Viewport
	Seed int64 // 0 picks a time-based seed
	Best int   // best score carried in from storage
}

// State is the whole simulation for one run. It is mutated only by Step
// and Leap; presentation code reads it between ticks.
type State struct {
	RunID string
	Seed  int64
	Mode  Mode
	View  Viewport
	Tick  int

	Active bool
	Cause  DeathCause

	Player       Player
	Planets      []*Planet // creation order, top-most last
	Asteroids    []*Asteroid
	Falling      []*FallingAsteroid
	Collectibles []*Collectible
	BlackHoles   []*BlackHole
	Hazard       Hazard

	CameraY       float64
	TargetCameraY float64
	Shake         float64

	Altitude   int // best altitude in meters
	Bonus      int // combo and pickup points
	Leaps      int
	Combo      int
	ComboTimer int
	MaxCombo   int
	Best       int

	// Log receives structured trace entries when non-nil.
	Log *SimLog

	gen    *Generator
	rng    *rand.Rand
	nextID uint64
	events []Event
}

// NewState starts a run: a safe first planet at 70% of the viewport height,
// the player parked on top of it, and the generator filled ahead.
func NewState(cfg Config) *State {
	s := newBareState(cfg)
	s.gen = NewGenerator(s.rng)
	first := s.addPlanet(newPlanet(s.rng, 0, cfg.View.W/2, s.ReferenceY(), FirstPlanetRadius, FirstPlanetSpeed, false))
	s.parkOn(first, StartOrbitDist, -math.Pi/2)
	s.gen.Fill(s)
	return s
}

func newBareState(cfg Config) *State {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.View.W <= 0 || cfg.View.H <= 0 {
		cfg.View = Viewport{W: 480, H: 800}
	}
	s := &State{
		RunID:  uuid.NewString(),
		Seed:   seed,
		Mode:   cfg.Mode,
		View:   cfg.View,
		Active: true,
		Best:   cfg.Best,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
	}
	s.Hazard = cfg.Mode.newHazard(cfg.View)
	s.Player.Radius = PlayerRadius
	return s
}

// ReferenceY is the world Y at which altitude is zero.
func (s *State) ReferenceY() float64 {
	return s.View.H * CameraLower
}

// Score is best altitude plus bonuses. It never decreases during a run.
func (s *State) Score() int {
	return s.Altitude + s.Bonus
}

// Sun returns the chasing sun in survival runs, nil otherwise.
func (s *State) Sun() *ChasingSun {
	cs, _ := s.Hazard.(*ChasingSun)
	return cs
}

// PlanetsGenerated is the number of generator rolls so far (ring planets excluded).
func (s *State) PlanetsGenerated() int {
	if s.gen == nil {
		return 0
	}
	return s.gen.Generated()
}

// addPlanet assigns an ID and appends the planet.
func (s *State) addPlanet(p *Planet) *Planet {
	s.nextID++
	p.ID = s.nextID
	s.Planets = append(s.Planets, p)
	return p
}

// parkOn puts the player in orbit around p without any capture side effects.
func (s *State) parkOn(p *Planet, orbitDist, angle float64) {
	pl := &s.Player
	pl.State = Orbiting
	pl.Current = p
	pl.Last = nil
	pl.OrbitDist = orbitDist
	pl.Angle = angle
	pl.VX, pl.VY = 0, 0
	pl.FlyTicks = 0
	pl.Trail = pl.Trail[:0]
	pl.X = p.X + math.Cos(angle)*orbitDist
	pl.Y = p.Y + math.Sin(angle)*orbitDist
}

func (s *State) emit(e Event) {
	e.Tick = s.Tick
	s.events = append(s.events, e)
}

func (s *State) emitBurst(x, y float64, c color.RGBA, count int) {
	s.emit(Event{Kind: EventBurst, X: x, Y: y, Color: c, Count: count})
}

func (s *State) emitText(x, y float64, text string, c color.RGBA) {
	s.emit(Event{Kind: EventText, X: x, Y: y, Text: text, Color: c})
}

func (s *State) emitPulse(p *Planet, v float64) {
	s.emit(Event{Kind: EventPulse, X: p.X, Y: p.Y, PlanetID: p.ID, Value: v})
}

// drainEvents hands the tick's events to the caller.
func (s *State) drainEvents() []Event {
	out := s.events
	s.events = nil
	return out
}

func (s *State) logf(category, key string, num float64, format string, args ...any) {
	if s.Log == nil {
		return
	}
	s.Log.Add(s.Tick, category, key, fmt.Sprintf(format, args...), num)
}

// endRun finishes the run once; later calls in the same tick are ignored.
func (s *State) endRun(cause DeathCause) {
	if !s.Active {
		return
	}
	s.Active = false
	s.Cause = cause
	s.Shake = ShakeDeath
	s.emitBurst(s.Player.X, s.Player.Y, ColorWhite, 30)

	final := s.Score()
	newBest := final > s.Best
	if newBest {
		s.Best = final
	}
	s.emit(Event{Kind: EventDeath, X: s.Player.X, Y: s.Player.Y, Cause: cause, Count: final, NewBest: newBest})
	s.logf("run", "end", float64(final), "cause=%s score=%d leaps=%d", cause, final, s.Leaps)
}
