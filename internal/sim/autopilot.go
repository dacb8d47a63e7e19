package sim

// Autopilot is a simple bot: it leaps when the straight launch line runs
// into a higher planet's well without crossing a black hole or leaving
// the screen. It drives the headless reporter and the attract demo.
type Autopilot struct {
	Lookahead     int     // ticks of launch line to inspect
	MinOrbitTicks int     // settle time after a capture
	WellFraction  float64 // how deep into a well the line must reach
	SunPanic      float64 // leap regardless when the sun is this close

	orbitTicks int
	planetID   uint64
}

// NewAutopilot returns a pilot with tuned defaults.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lookahead:     MaxFlyTicks / 2,
		MinOrbitTicks: 12,
		WellFraction:  0.8,
		SunPanic:      120,
	}
}

// ShouldLeap decides whether to leap this tick.
func (a *Autopilot) ShouldLeap(s *State) bool {
	pl := &s.Player
	if !s.Active || pl.State != Orbiting || pl.Current == nil {
		a.orbitTicks = 0
		return false
	}
	if pl.Current.ID != a.planetID {
		a.planetID = pl.Current.ID
		a.orbitTicks = 0
	}
	a.orbitTicks++
	if a.orbitTicks < a.MinOrbitTicks {
		return false
	}
	if sun := s.Sun(); sun != nil && sun.Y-sun.Radius-pl.Y < a.SunPanic {
		return true
	}
	return a.clearShot(s)
}

// clearShot walks the predicted launch line.
func (a *Autopilot) clearShot(s *State) bool {
	pl := &s.Player
	home := pl.Current
	for _, pt := range PredictTrajectory(s, a.Lookahead) {
		x, y := pt[0], pt[1]
		if x < 0 || x > s.View.W {
			return false
		}
		for _, bh := range s.BlackHoles {
			if dist(x, y, bh.X, bh.Y) < bh.GravityRadius {
				return false
			}
		}
		for _, p := range s.Planets {
			if p == home || p.Y >= home.Y {
				continue
			}
			if dist(x, y, p.X, p.Y) < p.GravityRadius*a.WellFraction {
				return true
			}
		}
	}
	return false
}
