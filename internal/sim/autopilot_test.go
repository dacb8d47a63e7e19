package sim

import (
	"math"
	"testing"
)

func TestAutopilot_WaitsOutSettleTime(t *testing.T) {
	ts := chainSim(t)
	aimUp(ts.State)
	ap := NewAutopilot()
	for i := 1; i < ap.MinOrbitTicks; i++ {
		if ap.ShouldLeap(ts.State) {
			t.Fatalf("leapt after %d ticks, settle time is %d", i, ap.MinOrbitTicks)
		}
	}
	if !ap.ShouldLeap(ts.State) {
		t.Fatal("aligned shot at the planet above should leap once settled")
	}
}

func TestAutopilot_HopsToPlanetAbove(t *testing.T) {
	ts := chainSim(t, WithAutopilot())
	above := ts.State.Planets[1]
	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.State.Player.Current == above }, 400)
	if tick < 0 {
		t.Fatalf("autopilot never reached the planet above\n%s", ts.SimLog.Format())
	}
	if ts.State.Leaps != 1 {
		t.Fatalf("expected a single leap, got %d", ts.State.Leaps)
	}
}

func TestAutopilot_AvoidsBlackHoles(t *testing.T) {
	ts := chainSim(t, WithBlackHole(170, 450))
	aimUp(ts.State)
	ap := NewAutopilot()
	ap.MinOrbitTicks = 1
	if ap.ShouldLeap(ts.State) {
		t.Fatal("launch line crosses a black hole well")
	}
}

func TestAutopilot_IgnoresPlanetsBelow(t *testing.T) {
	ts := NewTestSim(
		WithoutGeneration(),
		WithPlanet(240, 300, 40, 0.05),
		WithPlanet(240, 560, 40, 0.05),
		WithOrbitingPlayer(0, 70, 0), // launch straight down at the lower planet
	)
	ap := NewAutopilot()
	ap.MinOrbitTicks = 1
	if ap.ShouldLeap(ts.State) {
		t.Fatal("autopilot should not dive to a lower planet")
	}
}

func TestAutopilot_PanicsWhenSunIsClose(t *testing.T) {
	ts := survivalSim()
	s := ts.State
	ap := NewAutopilot()
	ap.MinOrbitTicks = 1
	if ap.ShouldLeap(s) {
		t.Fatal("no planet above and a distant sun: stay put")
	}
	s.Sun().Y = s.Player.Y + SunRadius + ap.SunPanic/2
	if !ap.ShouldLeap(s) {
		t.Fatal("sun within panic range should force a leap")
	}
}

func TestAutopilot_ResetsOnNewPlanet(t *testing.T) {
	ts := chainSim(t)
	aimUp(ts.State)
	ap := NewAutopilot()
	for i := 0; i < ap.MinOrbitTicks; i++ {
		ap.ShouldLeap(ts.State)
	}
	ts.State.parkOn(ts.State.Planets[1], 70, math.Pi)
	if ap.ShouldLeap(ts.State) {
		t.Fatal("settle time should restart after changing planets")
	}
}
