package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/sticky-orbit/internal/config"
	"github.com/Garsondee/sticky-orbit/internal/sim"
	"github.com/Garsondee/sticky-orbit/internal/spectate"
	"github.com/Garsondee/sticky-orbit/internal/store"
)

type recordingPlayer struct {
	events []sim.Event
}

func (r *recordingPlayer) Handle(events []sim.Event) { r.events = append(r.events, events...) }
func (r *recordingPlayer) Close()                    {}

func (r *recordingPlayer) count(kind sim.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.Audio = false
	return cfg
}

// doomedState is a run that ends by timeout at tick MaxFlyTicks+1 with a
// score of 16: the player hangs motionless with no planet in reach.
func doomedState() *sim.State {
	return sim.NewTestSim(sim.WithoutGeneration(), sim.WithFlyingPlayer(240, 400, 0, 0)).State
}

func tickN(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.update(intent{})
	}
}

func runToGameOver(t *testing.T, g *Game) {
	t.Helper()
	g.update(intent{classic: true})
	g.state = doomedState()
	for i := 0; i < 500 && g.phase == phasePlaying; i++ {
		g.update(intent{})
	}
	if g.phase != phaseOver {
		t.Fatalf("run never ended: phase=%d tick=%d", g.phase, g.state.Tick)
	}
}

func TestNew_LoadsBestAndStartsDemo(t *testing.T) {
	st := &store.MemStore{}
	if err := st.Save(500); err != nil {
		t.Fatal(err)
	}
	g := New(testConfig(), Options{Store: st})
	if g.Best() != 500 || g.state.Best != 500 {
		t.Fatalf("expected best 500, got game=%d state=%d", g.Best(), g.state.Best)
	}
	if g.phase != phaseStart || g.pilot == nil {
		t.Fatalf("expected title phase with autopilot, got phase=%d", g.phase)
	}
	tickN(g, 10)
	if g.state.Tick != 10 {
		t.Fatalf("demo should advance behind the title, tick=%d", g.state.Tick)
	}
	if w, h := g.Layout(1920, 1080); w != 480 || h != 800 {
		t.Fatalf("unexpected layout %dx%d", w, h)
	}
}

func TestUpdate_StartKeys(t *testing.T) {
	cases := []struct {
		name string
		cfg  sim.Mode
		in   intent
		want sim.Mode
	}{
		{"space uses configured classic", sim.ModeClassic, intent{space: true}, sim.ModeClassic},
		{"space uses configured survival", sim.ModeSurvival, intent{space: true}, sim.ModeSurvival},
		{"1 is classic", sim.ModeSurvival, intent{classic: true}, sim.ModeClassic},
		{"2 is survival", sim.ModeClassic, intent{survival: true}, sim.ModeSurvival},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Mode = tc.cfg
			g := New(cfg, Options{})
			g.update(tc.in)
			if g.phase != phasePlaying {
				t.Fatalf("expected playing phase, got %d", g.phase)
			}
			if g.state.Mode != tc.want || g.state.Tick != 0 || g.pilot != nil {
				t.Fatalf("unexpected run: mode=%s tick=%d pilot=%v", g.state.Mode, g.state.Tick, g.pilot != nil)
			}
		})
	}
}

func TestUpdate_LeapOnlyWhilePlaying(t *testing.T) {
	g := New(testConfig(), Options{})
	g.update(intent{leap: true})
	if g.phase != phaseStart {
		t.Fatal("a click on the title screen should not start a run")
	}

	g.update(intent{classic: true})
	g.update(intent{leap: true})
	if g.state.Leaps != 1 || g.state.Player.State != sim.Flying {
		t.Fatalf("click should leap: leaps=%d state=%s", g.state.Leaps, g.state.Player.State)
	}
	g.update(intent{space: true})
	if g.state.Leaps != 1 {
		t.Fatal("space while flying should not leap again")
	}
}

func TestRunEnd_RecordsBest(t *testing.T) {
	st := &store.MemStore{}
	g := New(testConfig(), Options{Store: st})
	runToGameOver(t, g)

	if g.report.Cause != sim.CauseTimeout || g.report.Score != 16 || g.report.Active {
		t.Fatalf("unexpected report %+v", g.report)
	}
	if !g.report.NewBest {
		t.Fatal("first scoring run should be a new best")
	}
	best, _ := st.Load()
	if best != 16 || st.Saves() != 1 || g.Best() != 16 {
		t.Fatalf("best not persisted: store=%d saves=%d game=%d", best, st.Saves(), g.Best())
	}
}

func TestRunEnd_KeepsHigherBest(t *testing.T) {
	st := &store.MemStore{}
	if err := st.Save(900); err != nil {
		t.Fatal(err)
	}
	g := New(testConfig(), Options{Store: st})
	runToGameOver(t, g)
	if st.Saves() != 1 || g.Best() != 900 {
		t.Fatalf("lower score must not overwrite best: saves=%d best=%d", st.Saves(), g.Best())
	}
}

func TestGameOver_InputWaitsForOverlay(t *testing.T) {
	g := New(testConfig(), Options{})
	g.update(intent{survival: true})
	g.state = doomedState()
	g.mode = sim.ModeSurvival
	for g.phase == phasePlaying {
		g.update(intent{})
	}

	for i := 1; i < gameOverDelay; i++ {
		g.update(intent{restart: true})
		if g.phase != phaseOver {
			t.Fatalf("restart accepted %d ticks after death", i)
		}
	}
	g.update(intent{restart: true})
	if g.phase != phasePlaying || g.state.Mode != sim.ModeSurvival {
		t.Fatalf("R should restart the same mode, got phase=%d mode=%s", g.phase, g.state.Mode)
	}
	if len(g.fx.Particles) != 0 || g.report.Ticks != 0 {
		t.Fatal("restart should clear effects and the previous report")
	}
}

func TestGameOver_CopyReport(t *testing.T) {
	var copied string
	g := New(testConfig(), Options{Copy: func(s string) error {
		copied = s
		return nil
	}})
	runToGameOver(t, g)
	tickN(g, gameOverDelay)

	g.update(intent{copy: true})
	if !strings.Contains(copied, "ended: timeout") || !strings.Contains(copied, "score=16m") {
		t.Fatalf("unexpected report text:\n%s", copied)
	}
	if g.status != "report copied" || g.phase != phaseOver {
		t.Fatalf("status=%q phase=%d", g.status, g.phase)
	}

	tickN(g, statusTicks)
	if g.status != "" {
		t.Fatalf("status should expire, got %q", g.status)
	}
}

func TestGameOver_CopyFailureIsReported(t *testing.T) {
	g := New(testConfig(), Options{Copy: func(string) error { return errors.New("no clipboard") }})
	runToGameOver(t, g)
	tickN(g, gameOverDelay)
	g.update(intent{copy: true})
	if g.status != "clipboard unavailable" {
		t.Fatalf("unexpected status %q", g.status)
	}
}

func TestPlay_FeedsAudioAndFlightLog(t *testing.T) {
	rec := &recordingPlayer{}
	g := New(testConfig(), Options{Audio: rec})
	tickN(g, 100)
	if len(rec.events) != 0 {
		t.Fatal("the title demo should be silent")
	}

	runToGameOver(t, g)
	if rec.count(sim.EventDeath) != 1 {
		t.Fatalf("expected one death event for audio, got %d", rec.count(sim.EventDeath))
	}
	entries := g.flightLog.Recent()
	if len(entries) == 0 {
		t.Fatal("flight log is empty")
	}
	last := entries[len(entries)-1]
	if last.Kind != sim.EventDeath || !strings.Contains(last.Message, "timeout") {
		t.Fatalf("unexpected last entry %+v", last)
	}
}

func TestPlay_PublishesSnapshots(t *testing.T) {
	hub := spectate.NewHub() // not running: the queue fills and drops
	g := New(testConfig(), Options{Hub: hub})
	tickN(g, 40)
	if hub.Dropped() != 0 {
		t.Fatal("the title demo should not be published")
	}

	g.update(intent{classic: true}) // one snapshot at run start
	tickN(g, 40)                    // one per publishEvery ticks
	want := 1 + 40/publishEvery - 8
	if hub.Dropped() != want {
		t.Fatalf("expected %d dropped snapshots, got %d", want, hub.Dropped())
	}
}

func TestDemo_RestartsAfterDeath(t *testing.T) {
	g := New(testConfig(), Options{})
	g.state = doomedState()
	doomed := g.state.RunID
	tickN(g, sim.MaxFlyTicks+gameOverDelay+1)
	if g.phase != phaseStart || g.state.RunID == doomed || !g.state.Active {
		t.Fatalf("demo should restart after a death: phase=%d active=%v", g.phase, g.state.Active)
	}
}

func TestToggleFlightLog(t *testing.T) {
	g := New(testConfig(), Options{})
	g.update(intent{toggleLog: true})
	if !g.showLog {
		t.Fatal("L should show the flight log")
	}
	g.update(intent{toggleLog: true})
	if g.showLog {
		t.Fatal("L again should hide it")
	}
}

func TestScoreLines(t *testing.T) {
	g := New(testConfig(), Options{})
	g.update(intent{survival: true})
	lines := g.scoreLines()
	if len(lines) != 3 || lines[0] != "0m" || !strings.HasPrefix(lines[2], "SUN ") {
		t.Fatalf("unexpected survival readout %q", lines)
	}

	g.phase = phaseOver
	g.report = sim.RunReport{Cause: sim.CauseSun, Score: 42, Leaps: 3, NewBest: true}
	over := strings.Join(g.gameOverLines(), "\n")
	for _, want := range []string{"burned by the sun", "score  42m", "leaps  3", "NEW BEST!"} {
		if !strings.Contains(over, want) {
			t.Fatalf("game-over text missing %q:\n%s", want, over)
		}
	}
}

func TestStarScreenY_Wraps(t *testing.T) {
	const h = 800.0
	stars := newStarField(3, sim.Viewport{W: 480, H: h})
	if len(stars) != starCount {
		t.Fatalf("expected %d stars, got %d", starCount, len(stars))
	}
	for _, cam := range []float64{0, -5000, -123456, 9000} {
		for _, st := range stars {
			y := starScreenY(st, cam, h)
			if y < -100 || y >= h+starWrapExtra {
				t.Fatalf("star y=%f out of band for camera %f", y, cam)
			}
		}
	}
}

func TestWithAlpha_Premultiplies(t *testing.T) {
	c := withAlpha(sim.ColorWhite, 0.5)
	if c.A != 127 || c.R != 127 {
		t.Fatalf("unexpected colour %+v", c)
	}
	if withAlpha(sim.ColorWhite, 3).A != 255 || withAlpha(sim.ColorWhite, -1).A != 0 {
		t.Fatal("alpha should clamp to [0,1]")
	}
}
