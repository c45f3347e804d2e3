package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/aura/components"
)

const step = 0.016

// still returns a wave with no vertical oscillation.
func still() components.Wave {
	return components.Wave{Speed: 0.02, Amplitude: 0}
}

func glowAt(opacity, target float64) components.Glow {
	return components.Glow{Radius: 3, DrawRadius: 3, Opacity: opacity, TargetOpacity: target}
}

func TestAdvanceWrapsHorizontally(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))
	sim := NewSimulation(store, &cfg.Scene, cfg.Theme(true))
	b := Bounds{Width: 800, Height: 600}

	store.Spawn(components.Position{X: 801, Y: 300}, components.Drift{VX: 0.1, BaseY: 300}, still(), glowAt(0.2, 0.4))
	store.Spawn(components.Position{X: -1, Y: 300}, components.Drift{VX: -0.1, BaseY: 300}, still(), glowAt(0.2, 0.4))
	store.Spawn(components.Position{X: 400, Y: 300}, components.Drift{VX: 0.15, BaseY: 300}, still(), glowAt(0.2, 0.4))

	sim.Advance(step, b)

	if pos, _, _, _ := store.At(0); pos.X != 0 {
		t.Errorf("right exit: X = %v, want 0", pos.X)
	}
	if pos, _, _, _ := store.At(1); pos.X != b.Width {
		t.Errorf("left exit: X = %v, want %v", pos.X, b.Width)
	}
	if pos, _, _, _ := store.At(2); math.Abs(pos.X-400.15) > 1e-9 {
		t.Errorf("interior: X = %v, want 400.15", pos.X)
	}
}

func TestAdvanceWrapsVerticallyWithMargin(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))
	sim := NewSimulation(store, &cfg.Scene, cfg.Theme(true))
	b := Bounds{Width: 800, Height: 600}

	// Below the bottom buffer
	store.Spawn(components.Position{X: 100, Y: 651}, components.Drift{BaseY: 651}, still(), glowAt(0.2, 0.4))
	// Above the top buffer
	store.Spawn(components.Position{X: 100, Y: -51}, components.Drift{BaseY: -51}, still(), glowAt(0.2, 0.4))
	// Inside the buffer but off-screen: no wrap yet
	store.Spawn(components.Position{X: 100, Y: 640}, components.Drift{BaseY: 640}, still(), glowAt(0.2, 0.4))

	sim.Advance(step, b)

	pos, drift, _, _ := store.At(0)
	if pos.Y != -50 || drift.BaseY != -50 {
		t.Errorf("bottom exit: Y=%v BaseY=%v, want -50", pos.Y, drift.BaseY)
	}
	pos, drift, _, _ = store.At(1)
	if pos.Y != 650 || drift.BaseY != 650 {
		t.Errorf("top exit: Y=%v BaseY=%v, want 650", pos.Y, drift.BaseY)
	}
	pos, _, _, _ = store.At(2)
	if pos.Y != 640 {
		t.Errorf("buffered: Y=%v, want 640", pos.Y)
	}
}

func TestAdvanceDampedDrift(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))
	sim := NewSimulation(store, &cfg.Scene, cfg.Theme(true))

	store.Spawn(components.Position{X: 100, Y: 200}, components.Drift{VY: 0.1, BaseY: 200}, still(), glowAt(0.2, 0.4))
	sim.Advance(step, Bounds{Width: 800, Height: 600})

	pos, drift, _, _ := store.At(0)
	// Y is computed from the anchor before it drifts
	if pos.Y != 200 {
		t.Errorf("Y = %v, want 200", pos.Y)
	}
	if math.Abs(drift.BaseY-200.03) > 1e-9 {
		t.Errorf("BaseY = %v, want 200.03", drift.BaseY)
	}
}

func TestAdvanceWaveTerms(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))
	sim := NewSimulation(store, &cfg.Scene, cfg.Theme(true))

	wave := components.Wave{Offset: 0.5, Speed: 0.03, Amplitude: 20}
	store.Spawn(components.Position{X: 10, Y: 300}, components.Drift{BaseY: 300}, wave, glowAt(0.2, 0.4))
	store.Spawn(components.Position{X: 10, Y: 300}, components.Drift{BaseY: 300}, wave, glowAt(0.2, 0.4))

	sim.Advance(step, Bounds{Width: 800, Height: 600})

	tt := step * wave.Speed
	for i := 0; i < 2; i++ {
		want := 300 +
			math.Sin(tt+0.5)*20 +
			math.Cos(tt*0.7+0.75)*10 +
			math.Sin(tt*1.3+float64(i)*0.1)*6
		pos, _, _, _ := store.At(i)
		if math.Abs(pos.Y-want) > 1e-9 {
			t.Errorf("particle %d: Y = %v, want %v", i, pos.Y, want)
		}
	}
}

func TestAdvanceOpacitySmoothing(t *testing.T) {
	cfg := loadConfig(t)
	b := Bounds{Width: 800, Height: 600}

	tests := []struct {
		name   string
		isDark bool
		want   float64
	}{
		{"dark", true, 0.5 * 0.01},
		{"light", false, 0.5 * 0.02},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewParticleStore(rand.New(rand.NewSource(1)))
			sim := NewSimulation(store, &cfg.Scene, cfg.Theme(tc.isDark))
			store.Spawn(components.Position{X: 10, Y: 10}, components.Drift{BaseY: 10}, still(), glowAt(0, 0.5))

			sim.Advance(step, b)

			_, _, _, glow := store.At(0)
			if math.Abs(glow.Opacity-tc.want) > 1e-12 {
				t.Errorf("opacity = %v, want %v", glow.Opacity, tc.want)
			}
			if glow.TargetOpacity != 0.5 {
				t.Errorf("target changed to %v without reaching it", glow.TargetOpacity)
			}
		})
	}
}

func TestAdvanceRetargetsNearTarget(t *testing.T) {
	cfg := loadConfig(t)
	th := cfg.Theme(false)
	store := NewParticleStore(rand.New(rand.NewSource(3)))
	sim := NewSimulation(store, &cfg.Scene, th)

	store.Spawn(components.Position{X: 10, Y: 10}, components.Drift{BaseY: 10}, still(), glowAt(0.300, 0.305))
	sim.Advance(step, Bounds{Width: 800, Height: 600})

	_, _, _, glow := store.At(0)
	if glow.TargetOpacity == 0.305 {
		t.Error("expected a new target once opacity is within epsilon")
	}
	if !th.Retarget.Contains(glow.TargetOpacity) {
		t.Errorf("new target %v outside [%v, %v)", glow.TargetOpacity, th.Retarget.Min, th.Retarget.Max)
	}
}

func TestAdvanceInvariantsLongRun(t *testing.T) {
	cfg := loadConfig(t)
	b := Bounds{Width: 1024, Height: 768}

	for _, isDark := range []bool{true, false} {
		th := cfg.Theme(isDark)
		store := NewParticleStore(rand.New(rand.NewSource(11)))
		count := ParticleCount(b.Width, b.Height, cfg.Scene.AreaPerParticle, th.CountMultiplier)
		store.Seed(count, b.Width, b.Height, th)
		sim := NewSimulation(store, &cfg.Scene, th)

		for tick := 0; tick < 3000; tick++ {
			sim.Advance(step, b)
			store.Each(func(pos *components.Position, drift *components.Drift, _ *components.Wave, glow *components.Glow) {
				if glow.Opacity < 0 || glow.Opacity > 1 {
					t.Fatalf("dark=%v tick %d: opacity %v outside [0, 1]", isDark, tick, glow.Opacity)
				}
				if glow.Radius <= 0 || glow.DrawRadius <= 0 {
					t.Fatalf("dark=%v tick %d: radius %v / draw %v not positive", isDark, tick, glow.Radius, glow.DrawRadius)
				}
				for _, v := range []float64{pos.X, pos.Y, drift.BaseY, glow.Opacity, glow.DrawRadius} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("dark=%v tick %d: non-finite value", isDark, tick)
					}
				}
				if pos.X < 0 || pos.X > b.Width {
					t.Fatalf("dark=%v tick %d: X %v escaped", isDark, tick, pos.X)
				}
			})
		}
		if store.Len() != count {
			t.Errorf("population changed from %d to %d", count, store.Len())
		}
	}
}

func TestAdvanceLogicalTime(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))
	sim := NewSimulation(store, &cfg.Scene, cfg.Theme(true))

	for i := 0; i < 10; i++ {
		sim.Advance(step, Bounds{Width: 100, Height: 100})
	}
	if math.Abs(sim.Time()-0.16) > 1e-12 {
		t.Errorf("Time() = %v, want 0.16", sim.Time())
	}
}

func TestPulsedRadius(t *testing.T) {
	if got := PulsedRadius(3, 1, 5, 2, false); got != 3 {
		t.Errorf("unpulsed radius = %v, want 3", got)
	}

	for i := 0; i < 1000; i++ {
		tt := float64(i) * 0.037
		r := PulsedRadius(4, 0.3, tt, 2, true)
		if r < 2-1e-9 || r > 6+1e-9 {
			t.Fatalf("pulsed radius %v outside [2, 6] at t=%v", r, tt)
		}
	}

	// sin(pi/2) = 1 gives the 1.5x peak
	if got := PulsedRadius(2, math.Pi/2, 0, 2, true); math.Abs(got-3) > 1e-12 {
		t.Errorf("peak radius = %v, want 3", got)
	}
}
