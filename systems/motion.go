package systems

import (
	"math"

	"github.com/pthm-cable/aura/components"
	"github.com/pthm-cable/aura/config"
)

// Bounds is the logical drawing area in CSS-style pixels.
type Bounds struct {
	Width, Height float64
}

// Simulation advances the particle population using logical time.
// Time only moves by the step handed to Advance, never by wall-clock.
type Simulation struct {
	store *ParticleStore
	scene *config.SceneConfig
	theme *config.ThemeConfig
	time  float64
}

// NewSimulation binds a store to the scene and theme tuning.
func NewSimulation(store *ParticleStore, scene *config.SceneConfig, theme *config.ThemeConfig) *Simulation {
	return &Simulation{store: store, scene: scene, theme: theme}
}

// Time returns the accumulated logical time.
func (m *Simulation) Time() float64 {
	return m.time
}

// Advance moves logical time forward by dt and steps every particle once.
func (m *Simulation) Advance(dt float64, b Bounds) {
	m.time += dt
	t := m.time
	rng := m.store.Rand()
	scene := m.scene
	th := m.theme
	margin := scene.WrapMargin

	m.store.Each(func(pos *components.Position, drift *components.Drift, wave *components.Wave, glow *components.Glow) {
		pos.X += drift.VX

		// Three layered frequencies read as fluid motion without a noise field
		ts := t * wave.Speed
		w1 := math.Sin(ts+wave.Offset) * wave.Amplitude
		w2 := math.Cos(ts*0.7+wave.Offset*1.5) * (wave.Amplitude * 0.5)
		w3 := math.Sin(ts*1.3+float64(wave.Index)*0.1) * (wave.Amplitude * 0.3)

		pos.Y = drift.BaseY + w1 + w2 + w3
		drift.BaseY += drift.VY * scene.DriftDamping

		if pos.X < 0 {
			pos.X = b.Width
		}
		if pos.X > b.Width {
			pos.X = 0
		}
		if pos.Y < -margin {
			pos.Y = b.Height + margin
			drift.BaseY = b.Height + margin
		}
		if pos.Y > b.Height+margin {
			pos.Y = -margin
			drift.BaseY = -margin
		}

		if math.Abs(glow.Opacity-glow.TargetOpacity) < scene.RetargetEpsilon {
			glow.TargetOpacity = th.Retarget.Lerp(rng.Float64())
		}
		glow.Opacity += (glow.TargetOpacity - glow.Opacity) * th.Smoothing

		glow.DrawRadius = PulsedRadius(glow.Radius, glow.PulsePhase, t, scene.PulseFreq, th.Pulse)
	})
}

// PulsedRadius returns the draw radius for time t. With pulsing enabled the
// radius swings between 0.5x and 1.5x of base.
func PulsedRadius(radius, phase, t, freq float64, pulse bool) float64 {
	if !pulse {
		return radius
	}
	return radius * (math.Sin(t*freq+phase)*0.5 + 1)
}
