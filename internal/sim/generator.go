package sim

import (
	"math"
	"math/rand"
)

// Generator lays out planets, asteroids, pickups and black holes ahead of
// the player. It is pulled after every cleanup, never scheduled.
type Generator struct {
	rng       *rand.Rand
	generated int
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generated is the number of planets rolled so far. Boss ring planets are
// not counted, so every BossEvery-th roll is a boss.
func (g *Generator) Generated() int {
	return g.generated
}

// Difficulty maps depth to [0,1].
func Difficulty(y float64) float64 {
	return math.Min(1, math.Abs(y)/DifficultyDepth)
}

// Fill generates upward until at least MinActivePlanets are active.
func (g *Generator) Fill(s *State) {
	lastY := s.View.H
	if n := len(s.Planets); n > 0 {
		lastY = s.Planets[n-1].Y
	}
	for len(s.Planets) < MinActivePlanets {
		g.generated++
		var p *Planet
		if g.generated%BossEvery == 0 {
			p = g.spawnBoss(s, lastY)
		} else {
			p = g.spawnPlanet(s, lastY)
		}
		g.decorate(s, p)
		lastY = p.Y
	}
}

// spawnPlanet places one ordinary planet 180–300px above lastY.
func (g *Generator) spawnPlanet(s *State, lastY float64) *Planet {
	rng := g.rng
	x := SpawnMargin + rng.Float64()*(s.View.W-2*SpawnMargin)
	y := lastY - (PlanetGapMin + rng.Float64()*PlanetGapJitter)
	radius := PlanetRadiusMin + rng.Float64()*PlanetRadiusJitter
	diff := Difficulty(y)
	speed := (0.03 + rng.Float64()*0.05*(1+diff)) * randSign(rng)
	moving := diff > MovingDifficulty && rng.Float64() > 0.6

	p := s.addPlanet(newPlanet(rng, 0, x, y, radius, speed, moving))
	s.logf("gen", "planet", float64(p.ID), "%s r=%.0f y=%.0f moving=%v", p.Type, radius, y, moving)
	return p
}

// spawnBoss places a stationary sun with a ring of small planets and a
// rain of falling asteroids above it. Ring planets precede the sun in the
// planet list so they win capture ties inside the sun's wide well.
func (g *Generator) spawnBoss(s *State, lastY float64) *Planet {
	rng := g.rng
	x := s.View.W / 2
	y := lastY - BossGap

	for i := 0; i < BossRingCount; i++ {
		angle := float64(i) / BossRingCount * 2 * math.Pi
		s.addPlanet(newPlanet(rng, 0,
			x+math.Cos(angle)*BossRingDist,
			y+math.Sin(angle)*BossRingDist,
			BossRingRadius, BossRingSpeed, false))
	}

	for i := 0; i < BossRainCount; i++ {
		fx := SpawnMargin + rng.Float64()*(s.View.W-2*SpawnMargin)
		fy := y - BossRainHeight - rng.Float64()*BossRainJitter
		s.Falling = append(s.Falling, newFallingAsteroid(rng, fx, fy))
	}

	sun := newPlanet(rng, 0, x, y, BossRadius, 0, false)
	sun.Type = Sun
	sun.Ringed = false
	sun.Boss = true
	sun.GravityRadius = BossRadius * SunGravityScale
	s.addPlanet(sun)

	s.emitText(x, y-200, "SOLAR FLARE", ColorGold)
	s.emit(Event{Kind: EventBoss, X: x, Y: y, PlanetID: sun.ID, Count: g.generated})
	s.logf("gen", "boss", float64(g.generated), "sun %d y=%.0f", sun.ID, y)
	return sun
}

// decorate rolls the difficulty-scaled extras around a freshly rolled planet.
func (g *Generator) decorate(s *State, p *Planet) {
	rng := g.rng
	diff := Difficulty(p.Y)

	if diff > AsteroidDifficulty && rng.Float64() > 0.5 {
		count := 1 + int(math.Floor(rng.Float64()*3*diff))
		for i := 0; i < count; i++ {
			s.Asteroids = append(s.Asteroids, newAsteroid(rng, p))
		}
	}

	if !p.Boss && rng.Float64() > 0.4 {
		s.Collectibles = append(s.Collectibles, &Collectible{
			X:      p.X + (rng.Float64()-0.5)*CollectibleSpread,
			Y:      p.Y - CollectibleOffset,
			Radius: CollectibleRadius,
		})
	}

	if diff > BlackHoleDifficulty && rng.Float64() > 0.85 {
		bx := SpawnMargin + rng.Float64()*(s.View.W-2*SpawnMargin)
		s.BlackHoles = append(s.BlackHoles, newBlackHole(bx, p.Y-BlackHoleOffset))
		s.logf("gen", "black_hole", diff, "at (%.0f,%.0f)", bx, p.Y-BlackHoleOffset)
	}
}

// Cleanup drops everything that has fallen far enough below the camera.
// Planets leave from the front of the list only, so creation order holds.
func (g *Generator) Cleanup(s *State) {
	limit := s.CameraY + s.View.H + CleanupBelow

	drop := 0
	for drop < len(s.Planets) && s.Planets[drop].Y > limit {
		drop++
	}
	if drop > 0 {
		clearTail(s.Planets[:drop], 0)
		s.Planets = s.Planets[drop:]
		s.dropOrphanAsteroids()
	}

	keptC := s.Collectibles[:0]
	for _, c := range s.Collectibles {
		if c.Y <= limit {
			keptC = append(keptC, c)
		}
	}
	clearTail(s.Collectibles, len(keptC))
	s.Collectibles = keptC

	keptB := s.BlackHoles[:0]
	for _, bh := range s.BlackHoles {
		if bh.Y <= limit {
			keptB = append(keptB, bh)
		}
	}
	clearTail(s.BlackHoles, len(keptB))
	s.BlackHoles = keptB

	keptF := s.Falling[:0]
	for _, fa := range s.Falling {
		if fa.Y <= limit {
			keptF = append(keptF, fa)
		}
	}
	clearTail(s.Falling, len(keptF))
	s.Falling = keptF
}

// dropOrphanAsteroids removes asteroids whose host planet is gone.
func (s *State) dropOrphanAsteroids() {
	live := make(map[*Planet]struct{}, len(s.Planets))
	for _, p := range s.Planets {
		live[p] = struct{}{}
	}
	kept := s.Asteroids[:0]
	for _, a := range s.Asteroids {
		if _, ok := live[a.Host]; ok {
			kept = append(kept, a)
		}
	}
	clearTail(s.Asteroids, len(kept))
	s.Asteroids = kept
}
