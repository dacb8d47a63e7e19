package sim

// updateCamera retargets only when the player leaves the 40%–70% dead
// zone, then eases the camera 8% of the way toward the target.
func (s *State) updateCamera() {
	screenY := s.Player.Y - s.CameraY
	switch {
	case screenY < s.View.H*CameraUpper:
		s.TargetCameraY = s.Player.Y - s.View.H*CameraUpper
	case screenY > s.View.H*CameraLower:
		s.TargetCameraY = s.Player.Y - s.View.H*CameraLower
	}
	s.CameraY += (s.TargetCameraY - s.CameraY) * CameraSmooth
}

// ScreenY converts a world Y to viewport coordinates.
func (s *State) ScreenY(worldY float64) float64 {
	return worldY - s.CameraY
}

// Visible reports whether a world Y lies within the viewport plus margin.
func (s *State) Visible(worldY, margin float64) bool {
	sy := worldY - s.CameraY
	return sy > -margin && sy < s.View.H+margin
}
