package sim

import (
	"math"
	"testing"
)

func TestEffects_BurstSpawnsParticles(t *testing.T) {
	fx := NewEffects(1)
	fx.Apply([]Event{{Kind: EventBurst, X: 10, Y: 20, Color: ColorGold, Count: 12}})
	if len(fx.Particles) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(fx.Particles))
	}
	for _, p := range fx.Particles {
		if p.X != 10 || p.Y != 20 || p.Life != 1 || p.Color != ColorGold {
			t.Fatalf("bad particle %+v", *p)
		}
		if math.Abs(p.VX) > burstSpread/2 || math.Abs(p.VY) > burstSpread/2 {
			t.Fatalf("velocity out of range: (%.2f,%.2f)", p.VX, p.VY)
		}
	}
}

func TestEffects_TextFloatsUp(t *testing.T) {
	fx := NewEffects(1)
	fx.Apply([]Event{{Kind: EventText, X: 50, Y: 100, Text: "+20", Color: ComboColor(2)}})
	if len(fx.Particles) != 1 {
		t.Fatalf("expected 1 text particle, got %d", len(fx.Particles))
	}
	p := fx.Particles[0]
	if p.Text != "+20" || p.Y != 100-textLift || p.Life != textLife {
		t.Fatalf("bad text particle %+v", *p)
	}
	fx.Update()
	if p.Y >= 100-textLift {
		t.Fatal("text should drift upward")
	}
}

func TestEffects_ParticlesExpire(t *testing.T) {
	fx := NewEffects(1)
	fx.Apply([]Event{
		{Kind: EventBurst, Count: 5},
		{Kind: EventText, Text: "BOOM!"},
	})
	for i := 0; i < 100; i++ {
		fx.Update()
	}
	if len(fx.Particles) != 0 {
		t.Fatalf("expected all particles expired, %d left", len(fx.Particles))
	}
}

func TestEffects_ParticleCap(t *testing.T) {
	fx := NewEffects(1)
	fx.Apply([]Event{{Kind: EventBurst, Count: maxParticles + 500}})
	if len(fx.Particles) != maxParticles {
		t.Fatalf("expected cap %d, got %d", maxParticles, len(fx.Particles))
	}
}

func TestEffects_PulseFadesAndConsumeClears(t *testing.T) {
	fx := NewEffects(1)
	fx.Apply([]Event{
		{Kind: EventPulse, PlanetID: 3, Value: 1},
		{Kind: EventPulse, PlanetID: 4, Value: 0.8},
	})
	fx.Update()
	if got := fx.Pulse(3); math.Abs(got-(1-pulseDecay)) > eps {
		t.Fatalf("expected pulse %.2f, got %.4f", 1-pulseDecay, got)
	}
	fx.Apply([]Event{{Kind: EventConsume, PlanetID: 4}})
	if fx.Pulse(4) != 0 {
		t.Fatal("consumed planet should stop pulsing")
	}
	for i := 0; i < 40; i++ {
		fx.Update()
	}
	if fx.Pulse(3) != 0 {
		t.Fatalf("pulse should fade out, got %.4f", fx.Pulse(3))
	}
}

func TestEffects_ResetAndSimEvents(t *testing.T) {
	ts := NewTestSim(
		WithoutGeneration(),
		WithPlanet(240, 300, 40, 0.05),
		WithFlyingPlayer(240, 420, 0, -5),
	)
	fx := NewEffects(1)
	for i := 0; i < 5; i++ {
		fx.Apply(ts.Tick(Input{}))
		fx.Update()
	}
	if len(fx.Particles) == 0 {
		t.Fatal("capture should have spawned particles")
	}
	if fx.Pulse(ts.State.Planets[0].ID) == 0 {
		t.Fatal("captured planet should pulse")
	}
	fx.Reset()
	if len(fx.Particles) != 0 || fx.Pulse(ts.State.Planets[0].ID) != 0 {
		t.Fatal("reset should drop all visuals")
	}
}

func TestComboColor(t *testing.T) {
	if ComboColor(1) == ComboColor(4) {
		t.Fatal("combo colours should change as the combo grows")
	}
	if ComboColor(0) != ComboColor(1) {
		t.Fatal("combo 0 should clamp to the first colour")
	}
	if ComboColor(100) != ComboColor(1000) {
		t.Fatal("high combos should clamp to the last colour")
	}
}
