package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/sticky-orbit/internal/sim"
)

const (
	starCount     = 500
	starWrapExtra = 500.0
	previewSteps  = 25
	previewDash   = 2 // segments drawn per gap
)

var (
	colorSpace   = color.RGBA{R: 5, G: 6, B: 18, A: 255}
	colorPreview = color.RGBA{R: 255, G: 255, B: 255, A: 52}
	colorMoon    = color.RGBA{R: 241, G: 245, B: 249, A: 255}
	colorHorizon = color.RGBA{R: 124, G: 58, B: 237, A: 255}
)

// star is one parallax background point. Depth scales its drift.
type star struct {
	x, y    float64
	size    float64
	opacity float64
	depth   float64
}

func newStarField(seed int64, vp sim.Viewport) []star {
	rng := rand.New(rand.NewSource(seed + 31)) // #nosec G404 -- cosmetic only
	stars := make([]star, starCount)
	for i := range stars {
		d := rng.Float64()
		stars[i] = star{
			x:       rng.Float64() * vp.W,
			y:       rng.Float64()*10000 - 5000,
			size:    0.5 + d*2,
			opacity: 0.2 + d*0.8,
			depth:   0.05 + d*0.2,
		}
	}
	return stars
}

// starScreenY wraps a star's parallax position into the visible band.
func starScreenY(st star, cameraY, h float64) float64 {
	span := h + starWrapExtra
	y := math.Mod(st.y-cameraY*st.depth, span)
	if y < -100 {
		y += span
	}
	return y
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// vector colours are premultiplied.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// Draw renders the world, then the HUD on top.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.worldBuf == nil {
		g.worldBuf = ebiten.NewImage(g.cfg.Width, g.cfg.Height)
	}
	screen.Fill(colorSpace)

	g.worldBuf.Clear()
	g.drawWorld(g.worldBuf)

	var blit ebiten.DrawImageOptions
	if shake := g.state.Shake; shake > 0 {
		blit.GeoM.Translate((g.shakeRng.Float64()-0.5)*shake, (g.shakeRng.Float64()-0.5)*shake)
	}
	screen.DrawImage(g.worldBuf, &blit)

	g.drawHUD(screen)
}

func (g *Game) drawWorld(dst *ebiten.Image) {
	s := g.state
	g.drawStars(dst)

	for _, c := range s.Collectibles {
		if !c.Collected && s.Visible(c.Y, c.Radius*2) {
			drawCollectible(dst, c, s.ScreenY(c.Y))
		}
	}
	for _, bh := range s.BlackHoles {
		if s.Visible(bh.Y, bh.GravityRadius) {
			drawBlackHole(dst, bh, s.ScreenY(bh.Y))
		}
	}
	for _, p := range s.Planets {
		if s.Visible(p.Y, p.GravityRadius) {
			drawPlanet(dst, p, s.ScreenY(p.Y), g.fx.Pulse(p.ID))
		}
	}
	for _, a := range s.Asteroids {
		x, y := a.Position()
		if s.Visible(y, a.Size*2) {
			drawPolygon(dst, x, s.ScreenY(y), a.Size, a.Angle*3, a.Shape, sim.ColorDebris)
		}
	}
	for _, fa := range s.Falling {
		if s.Visible(fa.Y, fa.Radius*4) {
			drawFalling(dst, fa, s.ScreenY(fa.Y))
		}
	}
	if sun := s.Sun(); sun != nil {
		drawSun(dst, sun, s.ScreenY(sun.Y), s.View.W)
	}

	g.drawTrajectory(dst)
	g.drawPlayer(dst)
	g.drawParticles(dst)
}

func (g *Game) drawStars(dst *ebiten.Image) {
	for _, st := range g.stars {
		y := starScreenY(st, g.state.CameraY, g.view.H)
		vector.FillCircle(dst, float32(st.x), float32(y), float32(st.size), withAlpha(colorMoon, st.opacity), false)
	}
}

func drawPlanet(dst *ebiten.Image, p *sim.Planet, sy, pulse float64) {
	pal := p.Type.Palette()
	x, y := float32(p.X), float32(sy)
	r := float32(p.Radius)

	// Gravity well, breathing slightly with the planet's rotation.
	field := float32(p.GravityRadius * (1 + 0.02*math.Sin(p.Rotation*8)))
	vector.FillCircle(dst, x, y, field, withAlpha(pal.Atmosphere, 0.05+pulse*0.08), true)
	vector.StrokeCircle(dst, x, y, field, 1, withAlpha(pal.Atmosphere, 0.12+pulse*0.2), true)

	if p.Ringed {
		drawRing(dst, p, sy, pal.Detail, false)
	}
	if pulse > 0 {
		vector.FillCircle(dst, x, y, r+float32(pulse*5), withAlpha(pal.Atmosphere, 0.5*math.Min(1, pulse)), true)
	}
	if p.Type == sim.Sun {
		for i := 0; i < 12; i++ {
			a := p.Rotation*2 + float64(i)*math.Pi/6
			inner, outer := p.Radius*1.05, p.Radius*(1.25+0.1*math.Sin(p.Rotation*10+float64(i)))
			vector.StrokeLine(dst,
				x+float32(math.Cos(a)*inner), y+float32(math.Sin(a)*inner),
				x+float32(math.Cos(a)*outer), y+float32(math.Sin(a)*outer),
				3, withAlpha(pal.Atmosphere, 0.6), true)
		}
	}

	vector.FillCircle(dst, x, y, r, pal.Main, true)

	// Surface details turn with the planet.
	details := 3 + int(p.ID%3)
	for i := 0; i < details; i++ {
		a := p.Rotation + float64(i)*2*math.Pi/float64(details) + float64(p.ID)
		d := p.Radius * (0.35 + 0.15*float64(i%2))
		dr := float32(p.Radius * (0.15 + 0.05*float64((int(p.ID)+i)%3)))
		vector.FillCircle(dst, x+float32(math.Cos(a)*d), y+float32(math.Sin(a)*d*0.8), dr, withAlpha(pal.Detail, 0.8), true)
	}
	// Terminator shading on the lower right.
	vector.FillCircle(dst, x+r*0.25, y+r*0.25, r*0.8, withAlpha(color.RGBA{A: 255}, 0.18), true)

	if p.Ringed {
		drawRing(dst, p, sy, pal.Detail, true)
	}
	if p.Boss {
		vector.StrokeCircle(dst, x, y, r+6, 2, withAlpha(sim.ColorGold, 0.7), true)
	}
}

// drawRing draws the back (upper) or front (lower) half of a tilted ring.
func drawRing(dst *ebiten.Image, p *sim.Planet, sy float64, c color.RGBA, front bool) {
	const segs = 24
	rx, ry := p.Radius*1.5, p.Radius*0.45
	start := math.Pi
	if front {
		start = 0
	}
	alpha := 0.45
	if front {
		alpha = 0.8
	}
	for i := 0; i < segs; i++ {
		a0 := start + math.Pi*float64(i)/segs
		a1 := start + math.Pi*float64(i+1)/segs
		vector.StrokeLine(dst,
			float32(p.X+math.Cos(a0)*rx), float32(sy+math.Sin(a0)*ry),
			float32(p.X+math.Cos(a1)*rx), float32(sy+math.Sin(a1)*ry),
			3, withAlpha(c, alpha), true)
	}
}

// drawPolygon strokes an irregular rock whose vertex radii are shape*size.
func drawPolygon(dst *ebiten.Image, cx, cy, size, rot float64, shape []float64, c color.RGBA) {
	n := len(shape)
	if n < 3 {
		vector.FillCircle(dst, float32(cx), float32(cy), float32(size), c, true)
		return
	}
	vector.FillCircle(dst, float32(cx), float32(cy), float32(size*0.7), withAlpha(c, 0.9), true)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a0 := rot + float64(i)*2*math.Pi/float64(n)
		a1 := rot + float64(j)*2*math.Pi/float64(n)
		vector.StrokeLine(dst,
			float32(cx+math.Cos(a0)*size*shape[i]), float32(cy+math.Sin(a0)*size*shape[i]),
			float32(cx+math.Cos(a1)*size*shape[j]), float32(cy+math.Sin(a1)*size*shape[j]),
			2, c, true)
	}
}

func drawFalling(dst *ebiten.Image, fa *sim.FallingAsteroid, sy float64) {
	// Heat streak above the rock.
	for i := 1; i <= 4; i++ {
		vector.FillCircle(dst, float32(fa.X), float32(sy-float64(i)*fa.Speed*3), float32(fa.Radius*(1-float64(i)*0.18)),
			withAlpha(sim.ColorAmber, 0.25-float64(i)*0.05), true)
	}
	drawPolygon(dst, fa.X, sy, fa.Radius, fa.Rotation, fa.Shape, sim.ColorCrimson)
}

func drawCollectible(dst *ebiten.Image, c *sim.Collectible, sy float64) {
	x, y := float32(c.X), float32(sy)
	r := c.Radius * (0.6 + 0.4*math.Abs(math.Cos(c.Rotation*3)))
	vector.FillCircle(dst, x, y, float32(c.Radius*1.8), withAlpha(sim.ColorGold, 0.15), true)
	pts := [4][2]float64{{0, -c.Radius * 1.3}, {r, 0}, {0, c.Radius * 1.3}, {-r, 0}}
	for i := range pts {
		j := (i + 1) % len(pts)
		vector.StrokeLine(dst, x+float32(pts[i][0]), y+float32(pts[i][1]), x+float32(pts[j][0]), y+float32(pts[j][1]), 2, sim.ColorGold, true)
	}
}

func drawBlackHole(dst *ebiten.Image, bh *sim.BlackHole, sy float64) {
	x, y := float32(bh.X), float32(sy)
	vector.FillCircle(dst, x, y, float32(bh.GravityRadius), withAlpha(colorHorizon, 0.06), true)
	// Accretion arms.
	for arm := 0; arm < 3; arm++ {
		base := bh.Spin + float64(arm)*2*math.Pi/3
		prevX, prevY := x, y
		for i := 1; i <= 16; i++ {
			t := float64(i) / 16
			a := base + t*math.Pi
			d := bh.Radius + t*(bh.GravityRadius*0.6-bh.Radius)
			px, py := x+float32(math.Cos(a)*d), y+float32(math.Sin(a)*d)
			if i > 1 {
				vector.StrokeLine(dst, prevX, prevY, px, py, 2, withAlpha(colorHorizon, 0.7*(1-t)), true)
			}
			prevX, prevY = px, py
		}
	}
	vector.FillCircle(dst, x, y, float32(bh.Radius), color.RGBA{A: 255}, true)
	vector.StrokeCircle(dst, x, y, float32(bh.Radius), 2, sim.ColorViolet, true)
}

func drawSun(dst *ebiten.Image, sun *sim.ChasingSun, sy, w float64) {
	x, y := float32(sun.X), float32(sy)
	r := sun.Radius
	for i := 0; i < 24; i++ {
		a := sun.Corona + float64(i)*2*math.Pi/24
		flare := r * (1.1 + 0.08*math.Sin(sun.Corona*5+float64(i)*1.7))
		vector.StrokeLine(dst,
			x+float32(math.Cos(a)*r), y+float32(math.Sin(a)*r),
			x+float32(math.Cos(a)*flare), y+float32(math.Sin(a)*flare),
			6, withAlpha(sim.ColorGold, 0.5), true)
	}
	vector.FillCircle(dst, x, y, float32(r*1.08), withAlpha(sim.ColorAmber, 0.35), true)
	vector.FillCircle(dst, x, y, float32(r), sim.ColorAmber, true)
	vector.FillCircle(dst, x, y, float32(r*0.85), sim.ColorGold, true)
	vector.FillCircle(dst, x, y, float32(r*0.6), sim.ColorSunlight, true)

	// Consume line: planets below it are gone.
	line := float32(sy - sun.ConsumeRadius)
	vector.StrokeLine(dst, 0, line, float32(w), line, 1, withAlpha(sim.ColorCrimson, 0.35), false)
}

func (g *Game) drawTrajectory(dst *ebiten.Image) {
	if !g.state.Active {
		return
	}
	pts := sim.PredictTrajectory(g.state, previewSteps)
	if len(pts) == 0 {
		return
	}
	prevX, prevY := g.state.Player.X, g.state.ScreenY(g.state.Player.Y)
	for i, pt := range pts {
		x, y := pt[0], g.state.ScreenY(pt[1])
		if (i/previewDash)%2 == 0 {
			vector.StrokeLine(dst, float32(prevX), float32(prevY), float32(x), float32(y), 2, colorPreview, true)
		}
		prevX, prevY = x, y
	}
}

func (g *Game) drawPlayer(dst *ebiten.Image) {
	s := g.state
	pl := &s.Player
	for _, tp := range pl.Trail {
		if tp.Alpha <= 0 {
			continue
		}
		vector.FillCircle(dst, float32(tp.X), float32(s.ScreenY(tp.Y)), float32(pl.Radius*tp.Alpha*0.8), withAlpha(colorMoon, tp.Alpha*0.5), true)
	}
	if !s.Active {
		return
	}
	x, y := float32(pl.X), float32(s.ScreenY(pl.Y))
	glow := sim.ColorWhite
	if s.Combo > 1 {
		glow = sim.ComboColor(s.Combo)
	}
	vector.FillCircle(dst, x, y, float32(pl.Radius*1.8), withAlpha(glow, 0.25), true)
	vector.FillCircle(dst, x, y, float32(pl.Radius), colorMoon, true)
	vector.FillCircle(dst, x-float32(pl.Radius*0.3), y-float32(pl.Radius*0.3), float32(pl.Radius*0.3), withAlpha(sim.ColorDebris, 0.6), true)
}

func (g *Game) drawParticles(dst *ebiten.Image) {
	for _, p := range g.fx.Particles {
		y := g.state.ScreenY(p.Y)
		if p.Text != "" {
			drawTextCentered(dst, p.Text, p.X, y, withAlpha(p.Color, p.Life))
			continue
		}
		sz := float32(p.Size)
		vector.FillRect(dst, float32(p.X)-sz/2, float32(y)-sz/2, sz, sz, withAlpha(p.Color, p.Life), false)
	}
}
