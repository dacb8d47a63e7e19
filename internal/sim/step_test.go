package sim

import (
	"math"
	"testing"
)

// chainSim builds a vertical column of planets 200px apart with the player
// parked on the bottom one.
func chainSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	base := []SimOption{
		WithoutGeneration(),
		WithPlanet(240, 560, 40, 0.05),
		WithPlanet(240, 360, 40, 0.05),
		WithPlanet(240, 160, 40, 0.05),
		WithPlanet(240, -40, 40, 0.05),
		WithOrbitingPlayer(0, 70, 0),
	}
	return NewTestSim(append(base, opts...)...)
}

// aimUp moves the player to the left side of its planet so a
// counter-clockwise launch goes straight up.
func aimUp(s *State) {
	pl := &s.Player
	pl.Angle = math.Pi
	pl.X = pl.Current.X + math.Cos(pl.Angle)*pl.OrbitDist
	pl.Y = pl.Current.Y + math.Sin(pl.Angle)*pl.OrbitDist
}

func TestScenario_ThreeQuickCapturesBuildCombo(t *testing.T) {
	ts := chainSim(t)
	s := ts.State
	for hop := 1; hop <= 3; hop++ {
		aimUp(s)
		ts.Leap()
		target := s.Planets[hop]
		tick := ts.RunUntil(func(ts *TestSim) bool { return ts.State.Player.State == Orbiting }, 60)
		if tick < 0 {
			t.Fatalf("hop %d: never captured\n%s", hop, ts.SimLog.Format())
		}
		if s.Player.Current != target {
			t.Fatalf("hop %d: captured by planet %d, want %d", hop, s.Player.Current.ID, target.ID)
		}
		if s.Combo != hop {
			t.Fatalf("hop %d: expected combo %d, got %d", hop, hop, s.Combo)
		}
	}
	if s.Bonus != 10+20+30 {
		t.Fatalf("expected combo bonus 60, got %d", s.Bonus)
	}
	if s.Score() != s.Altitude+60 {
		t.Fatalf("score %d != altitude %d + 60", s.Score(), s.Altitude)
	}
	if s.MaxCombo != 3 || s.Leaps != 3 {
		t.Fatalf("maxCombo=%d leaps=%d", s.MaxCombo, s.Leaps)
	}
	if n := ts.SimLog.CountCategory("player", "capture"); n != 3 {
		t.Fatalf("expected 3 capture log entries, got %d", n)
	}
}

func TestStep_ComboResetsWhenTimerHitsZero(t *testing.T) {
	ts := NewTestSim(
		WithoutGeneration(),
		WithPlanet(240, 400, 40, 0.05),
		WithOrbitingPlayer(0, 70, 0),
		WithComboTimer(3),
	)
	ts.State.Combo = 2
	ts.RunTicks(2)
	if ts.State.Combo != 2 || ts.State.ComboTimer != 1 {
		t.Fatalf("combo should survive while the timer runs: combo=%d timer=%d", ts.State.Combo, ts.State.ComboTimer)
	}
	ts.Tick(Input{})
	if ts.State.Combo != 0 || ts.State.ComboTimer != 0 {
		t.Fatalf("combo should reset the tick the timer hits zero: combo=%d timer=%d", ts.State.Combo, ts.State.ComboTimer)
	}
}

func TestStep_AltitudeNeverDecreases(t *testing.T) {
	ts := NewTestSim(
		WithoutGeneration(),
		WithPlanet(240, 400, 40, 0.05),
		WithOrbitingPlayer(0, 70, 0),
	)
	prev := 0
	for i := 0; i < 200; i++ {
		ts.Tick(Input{})
		if sc := ts.State.Score(); sc < prev {
			t.Fatalf("T=%d score dropped %d -> %d", ts.State.Tick, prev, sc)
		} else {
			prev = sc
		}
	}
	// Orbit top is y=330, i.e. 23m above the reference line.
	if a := ts.State.Altitude; a < 22 || a > 23 {
		t.Fatalf("expected altitude 22..23 after a full orbit, got %d", a)
	}
}

func TestStep_ScoreMonotonicOverAutopilotRun(t *testing.T) {
	ts := NewTestSim(WithSeed(42), WithAutopilot())
	prevScore, prevAlt := 0, 0
	for i := 0; i < 3000 && ts.State.Active; i++ {
		ts.Tick(Input{})
		s := ts.State
		if s.Score() < prevScore || s.Altitude < prevAlt {
			t.Fatalf("T=%d score %d->%d altitude %d->%d", s.Tick, prevScore, s.Score(), prevAlt, s.Altitude)
		}
		prevScore, prevAlt = s.Score(), s.Altitude
		if s.Active && len(s.Planets) < MinActivePlanets {
			t.Fatalf("T=%d only %d planets active", s.Tick, len(s.Planets))
		}
	}
	t.Log(ts.SimLog.Summary(ts.State))
}

func TestStep_DeterministicForSeed(t *testing.T) {
	run := func() RunReport {
		ts := NewTestSim(WithSeed(99), WithAutopilot(), WithMode(ModeSurvival))
		ts.RunTicks(2000)
		return ts.Report()
	}
	a, b := run(), run()
	a.RunID, b.RunID = "", ""
	if a != b {
		t.Fatalf("same seed produced different runs:\n%s\n%s", a, b)
	}
}

func TestStep_InactiveRunOnlyDecaysShake(t *testing.T) {
	ts := NewTestSim(WithoutGeneration(), WithFlyingPlayer(240, 400, 0, 0))
	ts.State.endRun(CauseBoundary)
	tick, x, y := ts.State.Tick, ts.State.Player.X, ts.State.Player.Y
	shake := ts.State.Shake
	events := ts.Tick(Input{Leap: true})
	if ts.State.Tick != tick || ts.State.Player.X != x || ts.State.Player.Y != y {
		t.Fatal("a finished run must not advance")
	}
	if ts.State.Shake >= shake {
		t.Fatalf("shake should decay, %.2f -> %.2f", shake, ts.State.Shake)
	}
	for _, e := range events {
		if e.Kind != EventBurst && e.Kind != EventDeath {
			t.Fatalf("unexpected event after death: %s", e)
		}
	}
}

func TestStep_TrailIsCappedAndFades(t *testing.T) {
	ts := NewTestSim(WithoutGeneration(), WithPlanet(240, 400, 40, 0.05), WithOrbitingPlayer(0, 70, 0))
	ts.RunTicks(50)
	trail := ts.State.Player.Trail
	if len(trail) != TrailLength {
		t.Fatalf("expected %d trail points, got %d", TrailLength, len(trail))
	}
	if trail[0].Alpha >= trail[len(trail)-1].Alpha {
		t.Fatal("older trail points should be fainter")
	}
}

// --- Camera ---

func TestCamera_DeadZoneHolds(t *testing.T) {
	ts := NewTestSim(WithoutGeneration(), WithPlanet(240, 400, 40, 0.05), WithOrbitingPlayer(0, 70, 0))
	ts.RunTicks(150)
	if ts.State.CameraY != 0 || ts.State.TargetCameraY != 0 {
		t.Fatalf("camera moved inside dead zone: cam=%.2f target=%.2f", ts.State.CameraY, ts.State.TargetCameraY)
	}
}

func TestCamera_FollowsAboveDeadZone(t *testing.T) {
	ts := NewTestSim(WithoutGeneration(), WithFlyingPlayer(240, 100, 0, 0))
	ts.Tick(Input{})
	s := ts.State
	wantTarget := 100 - s.View.H*CameraUpper
	if math.Abs(s.TargetCameraY-wantTarget) > eps {
		t.Fatalf("expected target %.1f, got %.4f", wantTarget, s.TargetCameraY)
	}
	if math.Abs(s.CameraY-wantTarget*CameraSmooth) > eps {
		t.Fatalf("expected camera eased to %.2f, got %.4f", wantTarget*CameraSmooth, s.CameraY)
	}
	if got := s.ScreenY(100); math.Abs(got-(100-s.CameraY)) > eps {
		t.Fatalf("ScreenY mismatch: %.4f", got)
	}
	if !s.Visible(100, 0) || s.Visible(s.CameraY+s.View.H+60, 50) {
		t.Fatal("Visible margin check failed")
	}
}

// --- Modes ---

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"classic", ModeClassic, false},
		{"", ModeClassic, false},
		{" Survival ", ModeSurvival, false},
		{"hard", ModeClassic, true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseMode(%q) err=%v, wantErr=%v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseMode(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNewState_StartsParkedOnFirstPlanet(t *testing.T) {
	ts := NewTestSim(WithSeed(7))
	s := ts.State
	first := s.Planets[0]
	if s.Player.Current != first || s.Player.State != Orbiting {
		t.Fatal("player should start orbiting the first planet")
	}
	if first.X != s.View.W/2 || first.Y != s.ReferenceY() {
		t.Fatalf("first planet at (%.0f,%.0f)", first.X, first.Y)
	}
	if first.Radius != FirstPlanetRadius || first.OrbitSpeed != FirstPlanetSpeed {
		t.Fatalf("first planet r=%.0f speed=%.3f", first.Radius, first.OrbitSpeed)
	}
	if math.Abs(s.Player.Y-(first.Y-StartOrbitDist)) > eps {
		t.Fatalf("player should sit on top of the first planet, y=%.2f", s.Player.Y)
	}
	if len(s.Planets) < MinActivePlanets || s.RunID == "" {
		t.Fatalf("planets=%d runID=%q", len(s.Planets), s.RunID)
	}
	if s.Sun() != nil {
		t.Fatal("classic mode has no sun")
	}
}
