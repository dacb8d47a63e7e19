package sim

import "math"

// Hazard is a mode-specific threat updated once per tick.
type Hazard interface {
	Update(s *State)
	CaughtPlayer(p *Player) bool
}

// noHazard is the classic-mode hazard: nothing chases the player.
type noHazard struct{}

func (noHazard) Update(*State)             {}
func (noHazard) CaughtPlayer(*Player) bool { return false }

// ChasingSun rises from below, drags the nearest planet ahead of it down,
// swallows planets inside its consume line and kills on contact.
type ChasingSun struct {
	X, Y          float64
	Radius        float64
	ConsumeRadius float64
	Speed         float64
	Corona        float64
}

// NewChasingSun places the sun centred below the viewport.
func NewChasingSun(vp Viewport) *ChasingSun {
	return &ChasingSun{
		X:             vp.W / 2,
		Y:             vp.H + SunStartBelow,
		Radius:        SunRadius,
		ConsumeRadius: SunConsumeRadius,
		Speed:         SunStartSpeed,
	}
}

// Update rises, accelerates, pulls and consumes.
func (cs *ChasingSun) Update(s *State) {
	cs.Y -= cs.Speed
	cs.Speed = math.Min(SunMaxSpeed, cs.Speed+SunAccel)
	cs.Corona += SunCoronaSpin

	var closest *Planet
	closestDist := math.Inf(1)
	for _, p := range s.Planets {
		d := cs.Y - p.Y
		if d > 0 && d < closestDist {
			closestDist = d
			closest = p
		}
	}
	if closest != nil && closestDist < SunPullRange {
		closest.Y += (SunPullRange - closestDist) * SunPullFactor
	}

	consumed := false
	kept := s.Planets[:0]
	for _, p := range s.Planets {
		if p.Y > cs.Y-cs.ConsumeRadius {
			s.emitBurst(p.X, p.Y, ColorAmber, 25)
			s.emitBurst(p.X, p.Y, ColorGold, 20)
			s.emitBurst(p.X, p.Y, ColorCrimson, 15)
			s.emit(Event{Kind: EventConsume, X: p.X, Y: p.Y, PlanetID: p.ID})
			s.Shake = ShakeSmash
			s.logf("hazard", "consume", float64(p.ID), "planet %d at y=%.0f", p.ID, p.Y)
			consumed = true
			continue
		}
		kept = append(kept, p)
	}
	clearTail(s.Planets, len(kept))
	s.Planets = kept
	if consumed {
		s.dropOrphanAsteroids()
	}
}

// CaughtPlayer reports contact between the sun's top edge and the player.
func (cs *ChasingSun) CaughtPlayer(p *Player) bool {
	top := cs.Y - cs.Radius
	return p.Y > top-p.Radius
}

// clearTail nils out the slots past n so filtered-away pointers can be collected.
func clearTail[T any](s []*T, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
