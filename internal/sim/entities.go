package sim

import (
	"math"
	"math/rand"
)

// PlayerState is the player's position in the orbit state machine.
type PlayerState int

const (
	Orbiting PlayerState = iota
	Flying
)

func (ps PlayerState) String() string {
	if ps == Flying {
		return "flying"
	}
	return "orbiting"
}

// TrailPoint is one sample of the player's recent path.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// Player is the moon the user steers. Current is set only while Orbiting;
// VX/VY are meaningful only while Flying.
type Player struct {
	X, Y      float64
	Radius    float64
	State     PlayerState
	Angle     float64
	OrbitDist float64
	VX, VY    float64
	Current   *Planet
	Last      *Planet // departure planet, ignored by capture until the player leaves its well
	FlyTicks  int
	Trail     []TrailPoint
}

// pushTrail appends the current position, fading older samples.
func (p *Player) pushTrail() {
	p.Trail = append(p.Trail, TrailPoint{X: p.X, Y: p.Y, Alpha: 1})
	if len(p.Trail) > TrailLength {
		p.Trail = p.Trail[len(p.Trail)-TrailLength:]
	}
	for i := range p.Trail {
		p.Trail[i].Alpha -= TrailFade
	}
}

// PlanetType selects a planet's palette and surface detail.
type PlanetType int

const (
	Terran PlanetType = iota
	Gas
	Crater
	Lava
	Sun
)

var planetTypeNames = [...]string{"terran", "gas", "crater", "lava", "sun"}

func (t PlanetType) String() string {
	if t < 0 || int(t) >= len(planetTypeNames) {
		return "unknown"
	}
	return planetTypeNames[t]
}

// Planet is an orbitable body. The sign of OrbitSpeed is the orbit
// direction and therefore the launch direction.
type Planet struct {
	ID            uint64
	X, Y          float64
	BaseX         float64
	Radius        float64
	GravityRadius float64
	OrbitSpeed    float64
	Type          PlanetType
	Ringed        bool
	Boss          bool
	Rotation      float64

	Moving    bool
	MovePhase float64
	MoveSpeed float64
	MoveRange float64
}

func newPlanet(rng *rand.Rand, id uint64, x, y, radius, orbitSpeed float64, moving bool) *Planet {
	p := &Planet{
		ID:            id,
		X:             x,
		Y:             y,
		BaseX:         x,
		Radius:        radius,
		GravityRadius: radius * GravityScale,
		OrbitSpeed:    orbitSpeed,
		Type:          PlanetType(rng.Intn(int(Sun))),
		Rotation:      rng.Float64() * 2 * math.Pi,
		Moving:        moving,
		MovePhase:     rng.Float64() * 2 * math.Pi,
		MoveSpeed:     0.02 + rng.Float64()*0.02,
		MoveRange:     60 + rng.Float64()*40,
	}
	p.Ringed = p.Type == Gas && rng.Float64() > 0.5
	return p
}

// animate advances rotation and horizontal drift.
func (p *Planet) animate() {
	p.Rotation += 0.005
	if p.Moving {
		p.MovePhase += p.MoveSpeed
		p.X = p.BaseX + math.Sin(p.MovePhase)*p.MoveRange
	}
}

// Asteroid circles its host planet at a fixed distance.
type Asteroid struct {
	Host     *Planet
	Angle    float64
	Distance float64
	Speed    float64
	Size     float64
	Shape    []float64 // per-vertex radius fractions
}

func newAsteroid(rng *rand.Rand, host *Planet) *Asteroid {
	a := &Asteroid{
		Host:     host,
		Angle:    rng.Float64() * 2 * math.Pi,
		Distance: host.GravityRadius*0.8 + rng.Float64()*20,
		Speed:    (0.02 + rng.Float64()*0.02) * randSign(rng),
		Size:     6 + rng.Float64()*6,
	}
	verts := 5 + rng.Intn(4)
	a.Shape = make([]float64, verts)
	for i := range a.Shape {
		a.Shape[i] = 0.7 + rng.Float64()*0.6
	}
	return a
}

// Position is the asteroid's world position, derived from its host.
func (a *Asteroid) Position() (float64, float64) {
	return a.Host.X + math.Cos(a.Angle)*a.Distance,
		a.Host.Y + math.Sin(a.Angle)*a.Distance
}

// FallingAsteroid drops straight down and kills on contact.
type FallingAsteroid struct {
	X, Y     float64
	Radius   float64
	Speed    float64
	Rotation float64
	RotSpeed float64
	Shape    []float64
}

func newFallingAsteroid(rng *rand.Rand, x, y float64) *FallingAsteroid {
	fa := &FallingAsteroid{
		X:        x,
		Y:        y,
		Radius:   FallingRadius,
		Speed:    4 + rng.Float64()*3,
		RotSpeed: (rng.Float64() - 0.5) * 0.2,
	}
	verts := 7 + rng.Intn(4)
	fa.Shape = make([]float64, verts)
	for i := range fa.Shape {
		fa.Shape[i] = 0.8 + rng.Float64()*0.4
	}
	return fa
}

func (fa *FallingAsteroid) update() {
	fa.Y += fa.Speed
	fa.Rotation += fa.RotSpeed
}

// Collectible is a one-shot score pickup.
type Collectible struct {
	X, Y      float64
	Radius    float64
	Collected bool
	Rotation  float64
}

// BlackHole pulls a flying player in and kills inside its event horizon.
type BlackHole struct {
	X, Y          float64
	Radius        float64
	GravityRadius float64
	Spin          float64
}

func newBlackHole(x, y float64) *BlackHole {
	return &BlackHole{X: x, Y: y, Radius: BlackHoleRadius, GravityRadius: BlackHoleGravityRadius}
}

func randSign(rng *rand.Rand) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}
