package sim

import (
	"image/color"
	"math/rand"
)

const (
	particleDecay  = 0.02
	pulseDecay     = 0.03
	textLife       = 1.5
	textRise       = 1.0
	textLift       = 30.0
	burstSpread    = 8.0
	maxParticles   = 2000
	particleMinSz  = 1.0
	particleSzSpan = 4.0
)

// Particle is a transient visual. Text particles carry a label and drift up.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Size   float64
	Color  color.RGBA
	Text   string
}

// Effects turns the event stream into particles and planet pulses. It is
// owned by the presentation side and never feeds back into the simulation.
type Effects struct {
	Particles []*Particle
	pulses    map[uint64]float64
	rng       *rand.Rand
}

// NewEffects creates an effect layer with its own RNG so particle jitter
// never disturbs the simulation's sequence.
func NewEffects(seed int64) *Effects {
	return &Effects{
		pulses: make(map[uint64]float64),
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
	}
}

// Apply spawns visuals for a tick's events.
func (fx *Effects) Apply(events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventBurst:
			fx.burst(e.X, e.Y, e.Color, e.Count)
		case EventText:
			fx.Particles = append(fx.Particles, &Particle{
				X: e.X, Y: e.Y - textLift, VY: -textRise,
				Life: textLife, Color: e.Color, Text: e.Text,
			})
		case EventPulse:
			fx.pulses[e.PlanetID] = e.Value
		case EventConsume:
			delete(fx.pulses, e.PlanetID)
		}
	}
	if over := len(fx.Particles) - maxParticles; over > 0 {
		clearTail(fx.Particles[:over], 0)
		fx.Particles = fx.Particles[over:]
	}
}

func (fx *Effects) burst(x, y float64, c color.RGBA, count int) {
	for i := 0; i < count; i++ {
		fx.Particles = append(fx.Particles, &Particle{
			X:     x,
			Y:     y,
			VX:    (fx.rng.Float64() - 0.5) * burstSpread,
			VY:    (fx.rng.Float64() - 0.5) * burstSpread,
			Life:  1,
			Size:  particleMinSz + fx.rng.Float64()*particleSzSpan,
			Color: c,
		})
	}
}

// Update moves and ages particles and fades pulses.
func (fx *Effects) Update() {
	kept := fx.Particles[:0]
	for _, p := range fx.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= particleDecay
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	clearTail(fx.Particles, len(kept))
	fx.Particles = kept

	for id, v := range fx.pulses {
		v -= pulseDecay
		if v <= 0 {
			delete(fx.pulses, id)
			continue
		}
		fx.pulses[id] = v
	}
}

// Pulse is the current glow of a planet, 0 when idle.
func (fx *Effects) Pulse(id uint64) float64 {
	return fx.pulses[id]
}

// Reset drops all visuals, used when a new run starts.
func (fx *Effects) Reset() {
	fx.Particles = nil
	clear(fx.pulses)
}
