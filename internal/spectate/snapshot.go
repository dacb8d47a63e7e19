// Package spectate serves a read-only live feed of a run over websockets.
package spectate

import "github.com/Garsondee/sticky-orbit/internal/sim"

// PlanetView is the spectator's view of one planet.
type PlanetView struct {
	ID     uint64  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
	Type   string  `json:"type"`
	Boss   bool    `json:"boss,omitempty"`
}

// PlayerView is the spectator's view of the player.
type PlayerView struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	State string  `json:"state"`
}

// Snapshot is an immutable copy of the visible run state. It shares no
// memory with sim.State so the hub goroutine can encode it freely.
type Snapshot struct {
	RunID    string       `json:"run_id"`
	Mode     string       `json:"mode"`
	Tick     int          `json:"tick"`
	Active   bool         `json:"active"`
	Cause    string       `json:"cause,omitempty"`
	Score    int          `json:"score"`
	Altitude int          `json:"altitude"`
	Bonus    int          `json:"bonus"`
	Combo    int          `json:"combo"`
	Leaps    int          `json:"leaps"`
	Best     int          `json:"best"`
	CameraY  float64      `json:"camera_y"`
	SunY     *float64     `json:"sun_y,omitempty"`
	Player   PlayerView   `json:"player"`
	Planets  []PlanetView `json:"planets"`
}

// NewSnapshot copies the parts of s a spectator can see.
func NewSnapshot(s *sim.State) Snapshot {
	snap := Snapshot{
		RunID:    s.RunID,
		Mode:     s.Mode.String(),
		Tick:     s.Tick,
		Active:   s.Active,
		Score:    s.Score(),
		Altitude: s.Altitude,
		Bonus:    s.Bonus,
		Combo:    s.Combo,
		Leaps:    s.Leaps,
		Best:     s.Best,
		CameraY:  s.CameraY,
		Player: PlayerView{
			X:     s.Player.X,
			Y:     s.Player.Y,
			State: s.Player.State.String(),
		},
		Planets: make([]PlanetView, 0, len(s.Planets)),
	}
	if !s.Active {
		snap.Cause = s.Cause.String()
	}
	if sun := s.Sun(); sun != nil {
		y := sun.Y
		snap.SunY = &y
	}
	for _, p := range s.Planets {
		if !s.Visible(p.Y, p.GravityRadius) {
			continue
		}
		snap.Planets = append(snap.Planets, PlanetView{
			ID: p.ID, X: p.X, Y: p.Y, Radius: p.Radius, Type: p.Type.String(), Boss: p.Boss,
		})
	}
	return snap
}
