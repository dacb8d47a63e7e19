package sim

import "fmt"

// TestSim is a headless run harness used by tests and the headless
// reporter. It drives Step exactly like the ebiten adapter does, with
// deterministic seeding, optional hand-placed entities and structured
// logging.
type TestSim struct {
	State  *State
	SimLog *SimLog
	Events []Event // every event emitted so far

	cfg      Config
	generate bool
	pilot    *Autopilot
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // seed, viewport, mode, generation, verbose, applied first
	simOptEntity                      // hand-placed entities, applied after the state exists
	simOptPlayer                      // player placement, applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
	}}
}

// WithViewport sets the play area size.
func WithViewport(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.View = Viewport{W: w, H: h}
	}}
}

// WithMode selects classic or survival rules.
func WithMode(m Mode) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Mode = m
	}}
}

// WithBest seeds the in-memory best score.
func WithBest(best int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Best = best
	}}
}

// WithoutGeneration starts from an empty world: no first planet, no
// generator. Use the entity options to build the scene by hand.
func WithoutGeneration() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.generate = false
	}}
}

// WithVerbose enables per-tick position logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithAutopilot lets the built-in pilot decide every leap.
func WithAutopilot() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.pilot = NewAutopilot()
	}}
}

// WithPlanet adds a stationary planet with the standard gravity radius.
func WithPlanet(x, y, radius, orbitSpeed float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		p := &Planet{
			X: x, Y: y, BaseX: x,
			Radius:        radius,
			GravityRadius: radius * GravityScale,
			OrbitSpeed:    orbitSpeed,
		}
		ts.State.addPlanet(p)
	}}
}

// WithMovingPlanet adds a planet that drifts horizontally.
func WithMovingPlanet(x, y, radius, orbitSpeed, moveRange, moveSpeed float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		p := &Planet{
			X: x, Y: y, BaseX: x,
			Radius:        radius,
			GravityRadius: radius * GravityScale,
			OrbitSpeed:    orbitSpeed,
			Moving:        true,
			MoveRange:     moveRange,
			MoveSpeed:     moveSpeed,
		}
		ts.State.addPlanet(p)
	}}
}

// WithAsteroid binds an asteroid to the planet at index planetIdx.
func WithAsteroid(planetIdx int, angle, distance, size, speed float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		if planetIdx < 0 || planetIdx >= len(ts.State.Planets) {
			return
		}
		ts.State.Asteroids = append(ts.State.Asteroids, &Asteroid{
			Host:     ts.State.Planets[planetIdx],
			Angle:    angle,
			Distance: distance,
			Speed:    speed,
			Size:     size,
			Shape:    []float64{1, 1, 1, 1, 1},
		})
	}}
}

// WithBlackHole adds a black hole with the standard radii.
func WithBlackHole(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.State.BlackHoles = append(ts.State.BlackHoles, newBlackHole(x, y))
	}}
}

// WithCollectible adds an uncollected pickup.
func WithCollectible(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.State.Collectibles = append(ts.State.Collectibles, &Collectible{X: x, Y: y, Radius: CollectibleRadius})
	}}
}

// WithFallingAsteroid adds a falling asteroid with a fixed speed.
func WithFallingAsteroid(x, y, speed float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.State.Falling = append(ts.State.Falling, &FallingAsteroid{X: x, Y: y, Radius: FallingRadius, Speed: speed})
	}}
}

// WithOrbitingPlayer parks the player around the planet at planetIdx.
func WithOrbitingPlayer(planetIdx int, orbitDist, angle float64) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		if planetIdx < 0 || planetIdx >= len(ts.State.Planets) {
			return
		}
		ts.State.parkOn(ts.State.Planets[planetIdx], orbitDist, angle)
	}}
}

// WithFlyingPlayer puts the player in free flight.
func WithFlyingPlayer(x, y, vx, vy float64) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		pl := &ts.State.Player
		pl.State = Flying
		pl.Current = nil
		pl.Last = nil
		pl.X, pl.Y = x, y
		pl.VX, pl.VY = vx, vy
		pl.FlyTicks = 0
	}}
}

// WithComboTimer primes the combo window as if a leap just happened.
func WithComboTimer(ticks int) SimOption {
	return SimOption{simOptPlayer, func(ts *TestSim) {
		ts.State.ComboTimer = ticks
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (seed, viewport, mode, generation, verbose)
//  2. State construction (full generation unless disabled)
//  3. Hand-placed entities
//  4. Player placement
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		cfg:      Config{Seed: 1, View: Viewport{W: 480, H: 800}},
		generate: true,
		SimLog:   NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	if ts.generate {
		ts.State = NewState(ts.cfg)
	} else {
		ts.State = newBareState(ts.cfg)
	}
	ts.State.Log = ts.SimLog
	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptPlayer {
			o.fn(ts)
		}
	}
	return ts
}

// Tick advances one tick with the given input and returns its events.
func (ts *TestSim) Tick(in Input) []Event {
	if ts.pilot != nil && ts.pilot.ShouldLeap(ts.State) {
		in.Leap = true
	}
	events := Step(ts.State, in)
	ts.Events = append(ts.Events, events...)
	if ts.SimLog.Verbose() {
		pl := &ts.State.Player
		ts.SimLog.AddVerbose(ts.State.Tick, "player", "position",
			fmt.Sprintf("(%.1f,%.1f) %s", pl.X, pl.Y, pl.State), pl.Y)
	}
	return events
}

// Leap advances one tick with a leap request.
func (ts *TestSim) Leap() []Event {
	return ts.Tick(Input{Leap: true})
}

// RunTicks advances the run n ticks without input, stopping early if the
// run ends.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n && ts.State.Active; i++ {
		ts.Tick(Input{})
	}
}

// RunUntil advances up to maxTicks, stopping early if predicate returns
// true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks && ts.State.Active; i++ {
		ts.Tick(Input{})
		if predicate(ts) {
			return ts.State.Tick
		}
	}
	return -1
}

// EventsOf returns every recorded event of the given kind.
func (ts *TestSim) EventsOf(kind EventKind) []Event {
	var out []Event
	for _, e := range ts.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Report summarises the run so far.
func (ts *TestSim) Report() RunReport {
	r := NewReporter()
	r.Collect(ts.Events)
	return r.Report(ts.State)
}
