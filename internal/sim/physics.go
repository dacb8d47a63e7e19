package sim

import (
	"fmt"
	"math"
)

// Leap launches the player tangentially off its current planet. It does
// nothing unless the run is active and the player is orbiting.
func Leap(s *State) bool {
	pl := &s.Player
	if !s.Active || pl.State != Orbiting || pl.Current == nil {
		return false
	}
	planet := pl.Current
	vx, vy := launchVelocity(pl.Angle, planet.OrbitSpeed)

	pl.State = Flying
	pl.VX, pl.VY = vx, vy
	pl.FlyTicks = 0
	pl.Last = planet
	pl.Current = nil
	s.Leaps++
	s.ComboTimer = ComboWindowTicks

	s.emitPulse(planet, 0.8)
	s.emitBurst(pl.X, pl.Y, planet.Type.Palette().Main, 10)
	s.emit(Event{Kind: EventLeap, X: pl.X, Y: pl.Y, PlanetID: planet.ID})
	s.logf("player", "leap", float64(s.Leaps), "from planet %d angle=%.2f", planet.ID, pl.Angle)
	return true
}

// launchVelocity is the tangent to the orbit, in the orbit's direction.
func launchVelocity(angle, orbitSpeed float64) (float64, float64) {
	dir := -1.0
	if orbitSpeed > 0 {
		dir = 1
	}
	a := angle + dir*math.Pi/2
	return math.Cos(a) * LaunchSpeed, math.Sin(a) * LaunchSpeed
}

// updatePlayer advances the orbit state machine by one tick.
func (s *State) updatePlayer() {
	pl := &s.Player
	switch pl.State {
	case Orbiting:
		if pl.Current == nil {
			return
		}
		pl.Angle += pl.Current.OrbitSpeed
		pl.X = pl.Current.X + math.Cos(pl.Angle)*pl.OrbitDist
		pl.Y = pl.Current.Y + math.Sin(pl.Angle)*pl.OrbitDist
	case Flying:
		s.updateFlight()
	}
}

func (s *State) updateFlight() {
	pl := &s.Player
	pl.X += pl.VX
	pl.Y += pl.VY
	pl.FlyTicks++

	if pl.FlyTicks > MaxFlyTicks {
		s.emitBurst(pl.X, pl.Y, ColorWhite, 20)
		s.endRun(CauseTimeout)
		return
	}

	if p := s.captureCandidate(); p != nil {
		s.capture(p)
	} else {
		s.applyPlanetPull()
	}

	if pl.State == Flying {
		s.smashAsteroids()
		s.collectPickups()
	}
}

// captureCandidate clears the departure-planet exclusion once the player is
// outside its well, then returns the first planet (creation order) whose
// gravity radius contains the player.
func (s *State) captureCandidate() *Planet {
	pl := &s.Player
	if pl.Last != nil && dist(pl.X, pl.Y, pl.Last.X, pl.Last.Y) > pl.Last.GravityRadius {
		pl.Last = nil
	}
	for _, p := range s.Planets {
		if p == pl.Last {
			continue
		}
		if dist(pl.X, pl.Y, p.X, p.Y) < p.GravityRadius {
			return p
		}
	}
	return nil
}

// capture puts the player into orbit around p and resolves combo scoring
// and the shield bash against p's asteroids.
func (s *State) capture(p *Planet) {
	pl := &s.Player
	dx, dy := pl.X-p.X, pl.Y-p.Y
	d := math.Hypot(dx, dy)

	pl.State = Orbiting
	pl.Current = p
	pl.FlyTicks = 0
	pl.VX, pl.VY = 0, 0
	pl.OrbitDist = math.Max(p.Radius+CaptureMinClearance, d)
	pl.Angle = math.Atan2(dy, dx)
	pl.X = p.X + math.Cos(pl.Angle)*pl.OrbitDist
	pl.Y = p.Y + math.Sin(pl.Angle)*pl.OrbitDist

	s.Shake = ShakeCapture
	s.emitPulse(p, 1)
	s.emitBurst(pl.X, pl.Y, p.Type.Palette().Atmosphere, 15)
	s.emit(Event{Kind: EventCapture, X: pl.X, Y: pl.Y, PlanetID: p.ID})
	s.logf("player", "capture", float64(p.ID), "planet %d orbit=%.0f", p.ID, pl.OrbitDist)

	if s.ComboTimer > 0 {
		s.Combo++
		if s.Combo > s.MaxCombo {
			s.MaxCombo = s.Combo
		}
		points := s.Combo * ComboPoints
		s.Bonus += points
		s.emitText(pl.X, pl.Y, fmt.Sprintf("+%d", points), ComboColor(s.Combo))
		s.emit(Event{Kind: EventCombo, X: pl.X, Y: pl.Y, Count: s.Combo, Value: float64(points)})
		s.logf("score", "combo", float64(points), "x%d", s.Combo)
	}

	kept := s.Asteroids[:0]
	for _, a := range s.Asteroids {
		if a.Host == p {
			ax, ay := a.Position()
			if dist(pl.X, pl.Y, ax, ay) < pl.Radius+a.Size+BashReach {
				s.emitBurst(ax, ay, ColorDebris, 15)
				s.emitBurst(ax, ay, ColorDust, 12)
				s.emitText(ax, ay, "BOOM!", ColorBoom)
				s.emitPulse(p, 1.5)
				s.emit(Event{Kind: EventBash, X: ax, Y: ay, PlanetID: p.ID})
				continue
			}
		}
		kept = append(kept, a)
	}
	clearTail(s.Asteroids, len(kept))
	s.Asteroids = kept
}

// applyPlanetPull bends the flight toward the single nearest planet other
// than the departure planet.
func (s *State) applyPlanetPull() {
	pl := &s.Player
	var nearest *Planet
	minDist := math.Inf(1)
	for _, p := range s.Planets {
		if p == pl.Last {
			continue
		}
		if d := dist(pl.X, pl.Y, p.X, p.Y); d < minDist {
			minDist = d
			nearest = p
		}
	}
	if nearest == nil || minDist >= PlanetPullRange || minDist == 0 {
		return
	}
	pl.VX -= (pl.X - nearest.X) / minDist * PlanetPull
	pl.VY -= (pl.Y - nearest.Y) / minDist * PlanetPull
}

// smashAsteroids destroys every asteroid the flying player touches; each
// hit costs 10% of the player's speed.
func (s *State) smashAsteroids() {
	pl := &s.Player
	kept := s.Asteroids[:0]
	for _, a := range s.Asteroids {
		ax, ay := a.Position()
		if dist(pl.X, pl.Y, ax, ay) < pl.Radius+a.Size {
			s.emitBurst(ax, ay, ColorDebris, 15)
			s.emitBurst(ax, ay, ColorDust, 12)
			s.emitText(ax, ay, "SMASH!", ColorSmash)
			s.emit(Event{Kind: EventSmash, X: ax, Y: ay})
			s.Shake = ShakeSmash
			pl.VX *= SmashDamping
			pl.VY *= SmashDamping
			continue
		}
		kept = append(kept, a)
	}
	clearTail(s.Asteroids, len(kept))
	s.Asteroids = kept
}

func (s *State) collectPickups() {
	pl := &s.Player
	for _, c := range s.Collectibles {
		if c.Collected {
			continue
		}
		if dist(pl.X, pl.Y, c.X, c.Y) < pl.Radius+c.Radius+PickupReach {
			c.Collected = true
			s.Bonus += CollectiblePoints
			s.emitBurst(c.X, c.Y, ColorGold, 10)
			s.emitText(c.X, c.Y, fmt.Sprintf("+%d", CollectiblePoints), ColorGold)
			s.emit(Event{Kind: EventPickup, X: c.X, Y: c.Y, Value: CollectiblePoints})
			s.logf("score", "pickup", CollectiblePoints, "at (%.0f,%.0f)", c.X, c.Y)
		}
	}
}

// resolveBlackHoles pulls a flying player toward every black hole in range
// and ends the run inside any event horizon, whatever the player's state.
func (s *State) resolveBlackHoles() {
	pl := &s.Player
	for _, bh := range s.BlackHoles {
		d := dist(pl.X, pl.Y, bh.X, bh.Y)
		if d >= bh.GravityRadius {
			continue
		}
		if pl.State == Flying && d > 0 {
			pl.VX -= (pl.X - bh.X) / d * BlackHolePull
			pl.VY -= (pl.Y - bh.Y) / d * BlackHolePull
		}
		if d < bh.Radius {
			s.emitBurst(pl.X, pl.Y, ColorViolet, 30)
			s.endRun(CauseBlackHole)
		}
	}
}

// resolveFallingAsteroids moves the rain and ends the run on contact.
func (s *State) resolveFallingAsteroids() {
	pl := &s.Player
	for _, fa := range s.Falling {
		fa.update()
		if dist(pl.X, pl.Y, fa.X, fa.Y) < pl.Radius+fa.Radius {
			s.emitBurst(pl.X, pl.Y, ColorRed, 30)
			s.endRun(CauseFallingAsteroid)
		}
	}
}

// outOfBounds reports a player below the screen or off either side.
func (s *State) outOfBounds() bool {
	pl := &s.Player
	return pl.Y-s.CameraY > s.View.H+BoundaryBelow ||
		pl.X < -BoundarySide || pl.X > s.View.W+BoundarySide
}

// PredictTrajectory returns the straight-line launch path for the next
// steps ticks, or nil if the player is not orbiting.
func PredictTrajectory(s *State, steps int) [][2]float64 {
	pl := &s.Player
	if pl.State != Orbiting || pl.Current == nil || steps <= 0 {
		return nil
	}
	vx, vy := launchVelocity(pl.Angle, pl.Current.OrbitSpeed)
	out := make([][2]float64, steps)
	x, y := pl.X, pl.Y
	for i := range out {
		x += vx
		y += vy
		out[i] = [2]float64{x, y}
	}
	return out
}
