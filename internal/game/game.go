package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/sticky-orbit/internal/audio"
	"github.com/Garsondee/sticky-orbit/internal/config"
	"github.com/Garsondee/sticky-orbit/internal/sim"
	"github.com/Garsondee/sticky-orbit/internal/spectate"
	"github.com/Garsondee/sticky-orbit/internal/store"
)

const (
	gameOverDelay = 30 // ticks between death and the game-over overlay (~500ms)
	publishEvery  = 2  // spectator snapshot cadence, in ticks
	statusTicks   = 120
)

// phase is the screen the game is on.
type phase int

const (
	phaseStart   phase = iota // title over an autopilot demo
	phasePlaying              // a run driven by the player
	phaseOver                 // run ended; overlay after gameOverDelay
)

// Options wires the IO collaborators. Nil fields get quiet defaults.
type Options struct {
	Store store.BestStore
	Audio audio.Player
	Hub   *spectate.Hub // nil disables spectating
	Copy  func(string) error
}

// intent is one frame of player input, already edge-detected.
type intent struct {
	leap      bool // mouse press or touch start
	space     bool
	classic   bool // 1
	survival  bool // 2
	restart   bool // R
	copy      bool // C
	toggleLog bool // L
}

// Game is the ebiten adapter around one sim.State at a time.
type Game struct {
	cfg  config.Config
	view sim.Viewport

	store    store.BestStore
	audio    audio.Player
	hub      *spectate.Hub
	copyText func(string) error

	phase     phase
	mode      sim.Mode
	state     *sim.State
	pilot     *sim.Autopilot // attract demo only
	fx        *sim.Effects
	reporter  *sim.Reporter
	flightLog *FlightLog
	showLog   bool

	best      int
	overTicks int
	report    sim.RunReport

	status     string
	statusLeft int

	stars    []star
	shakeRng *rand.Rand

	// Offscreen buffer for the world, blitted with the shake offset.
	worldBuf *ebiten.Image
	// Offscreen buffer for HUD text, rendered at 1x then blitted at hudScale.
	hudBuf *ebiten.Image

	touchIDs []ebiten.TouchID
}

// New creates the game on its title screen.
func New(cfg config.Config, opts Options) *Game {
	g := &Game{
		cfg:       cfg,
		view:      cfg.Viewport(),
		store:     opts.Store,
		audio:     opts.Audio,
		hub:       opts.Hub,
		copyText:  opts.Copy,
		mode:      cfg.Mode,
		fx:        sim.NewEffects(cfg.Seed + 7777),
		reporter:  sim.NewReporter(),
		flightLog: NewFlightLog(),
		shakeRng:  rand.New(rand.NewSource(cfg.Seed + 99)), // #nosec G404 -- cosmetic only
	}
	if g.store == nil {
		g.store = &store.MemStore{}
	}
	if g.audio == nil {
		g.audio = audio.Silent{}
	}
	if g.copyText == nil {
		g.copyText = clipboard.WriteAll
	}
	best, err := g.store.Load()
	if err != nil {
		log.Printf("best score: %v", err)
	}
	g.best = best
	g.stars = newStarField(cfg.Seed, g.view)
	g.startDemo()
	return g
}

func (g *Game) newState(mode sim.Mode) *sim.State {
	return sim.NewState(sim.Config{Mode: mode, View: g.view, Seed: g.cfg.Seed, Best: g.best})
}

func (g *Game) resetRun() {
	g.fx.Reset()
	g.reporter.Reset()
	g.overTicks = 0
	g.report = sim.RunReport{}
}

// startDemo puts an autopilot run behind the title screen.
func (g *Game) startDemo() {
	g.resetRun()
	g.phase = phaseStart
	g.state = g.newState(g.mode)
	g.pilot = sim.NewAutopilot()
}

// startRun begins a player-driven run in mode.
func (g *Game) startRun(mode sim.Mode) {
	g.resetRun()
	g.flightLog.Reset()
	g.phase = phasePlaying
	g.mode = mode
	g.state = g.newState(mode)
	g.pilot = nil
	g.setStatus(fmt.Sprintf("%s run", mode))
	g.publish(true)
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// Update advances one fixed tick.
func (g *Game) Update() error {
	g.update(g.readInput())
	return nil
}

func (g *Game) readInput() intent {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	return intent{
		leap:      inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || len(g.touchIDs) > 0,
		space:     inpututil.IsKeyJustPressed(ebiten.KeySpace),
		classic:   inpututil.IsKeyJustPressed(ebiten.Key1),
		survival:  inpututil.IsKeyJustPressed(ebiten.Key2),
		restart:   inpututil.IsKeyJustPressed(ebiten.KeyR),
		copy:      inpututil.IsKeyJustPressed(ebiten.KeyC),
		toggleLog: inpututil.IsKeyJustPressed(ebiten.KeyL),
	}
}

// update is the input-independent half of Update.
func (g *Game) update(in intent) {
	if g.statusLeft > 0 {
		g.statusLeft--
		if g.statusLeft == 0 {
			g.status = ""
		}
	}
	if in.toggleLog {
		g.showLog = !g.showLog
	}

	switch g.phase {
	case phaseStart:
		switch {
		case in.survival:
			g.startRun(sim.ModeSurvival)
		case in.classic:
			g.startRun(sim.ModeClassic)
		case in.space:
			g.startRun(g.cfg.Mode)
		default:
			g.stepDemo()
		}

	case phasePlaying:
		g.play(sim.Input{Leap: in.leap || in.space})

	case phaseOver:
		g.overTicks++
		g.advance(sim.Input{})
		if g.overTicks < gameOverDelay {
			return
		}
		switch {
		case in.copy:
			g.copyReport()
		case in.survival:
			g.startRun(sim.ModeSurvival)
		case in.classic:
			g.startRun(sim.ModeClassic)
		case in.space:
			g.startRun(g.cfg.Mode)
		case in.restart:
			g.startRun(g.mode)
		}
	}
}

// advance steps the simulation and the effect layer.
func (g *Game) advance(in sim.Input) []sim.Event {
	events := sim.Step(g.state, in)
	g.fx.Apply(events)
	g.fx.Update()
	return events
}

func (g *Game) stepDemo() {
	g.advance(sim.Input{Leap: g.pilot.ShouldLeap(g.state)})
	if g.state.Active {
		return
	}
	g.overTicks++
	if g.overTicks >= gameOverDelay {
		g.startDemo()
	}
}

// play runs one player tick and fans its events out.
func (g *Game) play(in sim.Input) {
	events := g.advance(in)
	g.reporter.Collect(events)
	g.flightLog.Record(events)
	g.audio.Handle(events)
	g.publish(!g.state.Active)
	if !g.state.Active {
		g.finishRun()
	}
}

func (g *Game) publish(force bool) {
	if g.hub == nil {
		return
	}
	if !force && g.state.Tick%publishEvery != 0 {
		return
	}
	g.hub.Publish(spectate.NewSnapshot(g.state))
}

// finishRun records the result once the run has ended.
func (g *Game) finishRun() {
	g.phase = phaseOver
	g.overTicks = 0
	g.report = g.reporter.Report(g.state)

	best, err := store.Record(g.store, g.state.Score())
	if err != nil {
		log.Printf("save best score: %v", err)
	}
	if best > g.best {
		g.best = best
	}
	if g.state.Best > g.best {
		g.best = g.state.Best
	}
}

func (g *Game) copyReport() {
	if err := g.copyText(g.report.String()); err != nil {
		log.Printf("copy report: %v", err)
		g.setStatus("clipboard unavailable")
		return
	}
	g.setStatus("report copied")
}

// Layout reports the fixed logical screen size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Best is the best score known to the game.
func (g *Game) Best() int {
	return g.best
}
