package sim

import "math"

// Step advances the run by one fixed tick and returns the events it
// produced. Once the run has ended Step only decays screen shake; the
// phases after a death in the same tick are skipped so the final score
// reported by the death event stays final.
//
// Order within a tick:
//  1. decay (shake, combo timer)
//  2. leap input
//  3. camera
//  4. mode hazard (may move or consume planets, may kill)
//  5. entity animation (planets, asteroids, black holes, falling rain)
//  6. player state machine, black holes, falling asteroids
//  7. altitude score, boundary check
//  8. cleanup + generation
//  9. trail
func Step(s *State, in Input) []Event {
	s.decayShake()
	if !s.Active {
		return s.drainEvents()
	}
	s.Tick++

	if s.ComboTimer > 0 {
		s.ComboTimer--
		if s.ComboTimer == 0 && s.Combo > 0 {
			s.logf("score", "combo_reset", float64(s.Combo), "x%d expired", s.Combo)
			s.Combo = 0
		}
	} else {
		s.Combo = 0
	}

	if in.Leap {
		Leap(s)
	}

	s.updateCamera()

	s.Hazard.Update(s)
	if s.Hazard.CaughtPlayer(&s.Player) {
		s.emitBurst(s.Player.X, s.Player.Y, ColorGold, 40)
		s.endRun(CauseSun)
	}
	if !s.Active {
		return s.drainEvents()
	}

	s.animate()

	s.updatePlayer()
	s.resolveBlackHoles()
	s.resolveFallingAsteroids()
	if !s.Active {
		return s.drainEvents()
	}

	s.updateAltitude()
	if s.outOfBounds() {
		s.endRun(CauseBoundary)
	}

	if s.gen != nil {
		s.gen.Cleanup(s)
		s.gen.Fill(s)
	}

	s.Player.pushTrail()
	return s.drainEvents()
}

func (s *State) decayShake() {
	if s.Shake > ShakeCutoff {
		s.Shake *= ShakeDecay
	} else {
		s.Shake = 0
	}
}

// animate moves everything whose motion does not depend on the player.
// Planets move before the player so an orbit is always measured against
// the planet's position for this tick.
func (s *State) animate() {
	for _, p := range s.Planets {
		p.animate()
	}
	for _, a := range s.Asteroids {
		a.Angle += a.Speed
	}
	for _, bh := range s.BlackHoles {
		bh.Spin += BlackHoleSpin
	}
	for _, c := range s.Collectibles {
		c.Rotation += 0.02
	}
}

// updateAltitude raises the altitude score when the player sets a new high.
func (s *State) updateAltitude() {
	alt := int(math.Floor((s.ReferenceY() - s.Player.Y) / AltitudeUnit))
	if alt > s.Altitude {
		s.Altitude = alt
	}
}
