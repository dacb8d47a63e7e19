package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

const (
	lineSpacing = 14.0
	logPanelH   = 180
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	colorHUD    = color.RGBA{R: 226, G: 232, B: 240, A: 255}
	colorDim    = color.RGBA{R: 148, G: 163, B: 184, A: 255}
	colorPanel  = color.RGBA{R: 8, G: 10, B: 24, A: 210}
	colorBorder = color.RGBA{R: 80, G: 90, B: 150, A: 180}
)

func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = lineSpacing
	text.Draw(dst, s, hudFace, op)
}

func drawTextCentered(dst *ebiten.Image, s string, cx, y float64, c color.Color) {
	w, _ := text.Measure(s, hudFace, lineSpacing)
	drawText(dst, s, cx-w/2, y, c)
}

// drawHUD renders score lines and overlays into hudBuf, then blits it
// at hudScale. The flight log is drawn at 1x so long lines fit.
func (g *Game) drawHUD(screen *ebiten.Image) {
	bufW, bufH := g.cfg.Width/hudScale, g.cfg.Height/hudScale
	if g.hudBuf == nil {
		g.hudBuf = ebiten.NewImage(bufW, bufH)
	}
	g.hudBuf.Clear()

	switch g.phase {
	case phaseStart:
		g.drawTitle(g.hudBuf, float64(bufW), float64(bufH))
	case phasePlaying:
		g.drawScore(g.hudBuf, float64(bufW))
	case phaseOver:
		g.drawScore(g.hudBuf, float64(bufW))
		if g.overTicks >= gameOverDelay {
			g.drawGameOver(g.hudBuf, float64(bufW), float64(bufH))
		}
	}
	if g.status != "" {
		drawTextCentered(g.hudBuf, g.status, float64(bufW)/2, float64(bufH)-20, sim.ColorGold)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)

	if g.showLog {
		g.flightLog.Draw(screen, 8, g.cfg.Height-logPanelH-8, g.cfg.Width-16, logPanelH)
	}
}

// scoreLines is the in-run readout, one line per entry.
func (g *Game) scoreLines() []string {
	s := g.state
	lines := []string{
		fmt.Sprintf("%dm", s.Score()),
		fmt.Sprintf("BEST %dm", max(g.best, s.Best)),
	}
	if s.Mode == sim.ModeSurvival {
		line := "SURVIVAL"
		if sun := s.Sun(); sun != nil {
			gap := sun.Y - sun.Radius - s.Player.Y
			line = fmt.Sprintf("SUN %.0fm", max(0, gap/sim.AltitudeUnit))
		}
		lines = append(lines, line)
	}
	return lines
}

func (g *Game) drawScore(dst *ebiten.Image, w float64) {
	for i, line := range g.scoreLines() {
		c := colorHUD
		if i > 0 {
			c = colorDim
		}
		drawText(dst, line, 6, 4+float64(i)*lineSpacing, c)
	}
	if s := g.state; s.Combo > 1 && s.Active {
		label := fmt.Sprintf("x%d", s.Combo)
		tw, _ := text.Measure(label, hudFace, lineSpacing)
		drawText(dst, label, w-tw-6, 4, sim.ComboColor(s.Combo))
	}
}

func drawPanel(dst *ebiten.Image, x, y, w, h float32) {
	vector.FillRect(dst, x, y, w, h, colorPanel, false)
	vector.StrokeRect(dst, x, y, w, h, 1.0, colorBorder, false)
	vector.StrokeLine(dst, x+1, y+1, x+w-1, y+1, 1.0, color.RGBA{R: 120, G: 130, B: 200, A: 80}, false)
}

func (g *Game) drawTitle(dst *ebiten.Image, w, h float64) {
	lines := []string{
		"STICKY ORBIT",
		"",
		"click / tap / space: leap",
		"",
		"1 or SPACE  classic",
		"2           survival",
		"L           flight log",
		"",
		fmt.Sprintf("BEST %dm", g.best),
	}
	boxH := float64(len(lines))*lineSpacing + 12
	top := h/2 - boxH/2
	drawPanel(dst, 8, float32(top), float32(w-16), float32(boxH))
	for i, line := range lines {
		c := colorDim
		if i == 0 {
			c = sim.ColorGold
		}
		drawTextCentered(dst, line, w/2, top+6+float64(i)*lineSpacing, c)
	}
}

// gameOverLines is the overlay text shown after a run ends.
func (g *Game) gameOverLines() []string {
	r := g.report
	lines := []string{
		"GAME OVER",
		causeText(r.Cause),
		"",
		fmt.Sprintf("score  %dm", r.Score),
		fmt.Sprintf("leaps  %d", r.Leaps),
		fmt.Sprintf("combo  x%d", r.MaxCombo),
	}
	if r.NewBest {
		lines = append(lines, "NEW BEST!")
	} else {
		lines = append(lines, fmt.Sprintf("best   %dm", g.best))
	}
	return append(lines, "", "R retry  1/2 mode", "C copy report")
}

func causeText(c sim.DeathCause) string {
	switch c {
	case sim.CauseTimeout:
		return "lost in space"
	case sim.CauseBoundary:
		return "drifted off"
	case sim.CauseBlackHole:
		return "swallowed by a black hole"
	case sim.CauseFallingAsteroid:
		return "hit by a meteor"
	case sim.CauseSun:
		return "burned by the sun"
	}
	return ""
}

func (g *Game) drawGameOver(dst *ebiten.Image, w, h float64) {
	lines := g.gameOverLines()
	boxH := float64(len(lines))*lineSpacing + 12
	top := h/2 - boxH/2
	drawPanel(dst, 8, float32(top), float32(w-16), float32(boxH))
	for i, line := range lines {
		c := colorHUD
		switch {
		case i == 0:
			c = sim.ColorRed
		case line == "NEW BEST!":
			c = sim.ColorGold
		case i >= len(lines)-2:
			c = colorDim
		}
		drawTextCentered(dst, line, w/2, top+6+float64(i)*lineSpacing, c)
	}
}
