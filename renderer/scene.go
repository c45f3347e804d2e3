package renderer

import (
	"math"

	"github.com/pthm-cable/aura/components"
	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/systems"
)

// FrameStats counts what the last Render call drew.
type FrameStats struct {
	Particles    int
	Edges        int
	Orbs         int
	PairsScanned int
}

// node is a per-frame snapshot of a particle for the pair scan.
type node struct {
	x, y float64
}

// SceneRenderer draws orbs, particles and connections for one tick.
// It only reads simulation state.
type SceneRenderer struct {
	canvas  Canvas
	scene   *config.SceneConfig
	theme   *config.ThemeConfig
	palette *Palette

	nodes []node
	stops []GradientStop

	last FrameStats
}

// NewSceneRenderer creates a renderer for one theme.
func NewSceneRenderer(canvas Canvas, scene *config.SceneConfig, theme *config.ThemeConfig) *SceneRenderer {
	return &SceneRenderer{
		canvas:  canvas,
		scene:   scene,
		theme:   theme,
		palette: NewPalette(theme),
		stops:   make([]GradientStop, 0, len(theme.ParticleStops)),
	}
}

// Stats returns the counts from the most recent Render.
func (r *SceneRenderer) Stats() FrameStats {
	return r.last
}

// Render clears the surface and draws the full scene at logical time t.
func (r *SceneRenderer) Render(store *systems.ParticleStore, t float64, b systems.Bounds, compact bool) {
	r.last = FrameStats{}

	r.canvas.Begin()
	r.canvas.Clear(b.Width, b.Height)
	if b.Width <= 0 || b.Height <= 0 {
		r.canvas.End()
		return
	}
	r.drawOrbs(t, b)
	r.drawParticles(store)
	r.drawConnections(t, compact)
	r.canvas.End()
}

func (r *SceneRenderer) drawOrbs(t float64, b systems.Bounds) {
	stops := r.palette.OrbStops()
	for i := 0; i < r.theme.OrbCount; i++ {
		x, y, radius := OrbAt(&r.scene.Orbs, i, t, b)
		r.canvas.FillCircle(x, y, radius, Gradient{X: x, Y: y, Radius: radius, Stops: stops})
		r.last.Orbs++
	}
}

func (r *SceneRenderer) drawParticles(store *systems.ParticleStore) {
	th := r.theme
	r.nodes = r.nodes[:0]

	store.Each(func(pos *components.Position, _ *components.Drift, _ *components.Wave, glow *components.Glow) {
		r.nodes = append(r.nodes, node{x: pos.X, y: pos.Y})

		r.stops = r.palette.ParticleStops(r.stops, glow.Opacity*th.OpacityBoost)
		g := Gradient{
			X:      pos.X,
			Y:      pos.Y,
			Radius: glow.DrawRadius * th.GradientExtent,
			Stops:  r.stops,
		}
		r.canvas.FillCircle(pos.X, pos.Y, glow.DrawRadius, g)
		r.last.Particles++
	})
}

func (r *SceneRenderer) drawConnections(t float64, compact bool) {
	scene := r.scene
	threshold := r.theme.ConnectionDistance
	capFactor := r.theme.ConnectionCap

	stride := 1
	if compact {
		stride = scene.CompactStride
	}

	n := len(r.nodes)
	for i := 0; i < n; i += stride {
		p1 := r.nodes[i]
		for j := i + 1; j < n; j += stride {
			p2 := r.nodes[j]
			r.last.PairsScanned++

			dx := p1.x - p2.x
			dy := p1.y - p2.y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= threshold {
				continue
			}

			midX := (p1.x + p2.x) / 2
			midY := (p1.y + p2.y) / 2
			bend := math.Sin(t*scene.CurveTimeFreq+midX*scene.CurveSpaceFreq) * scene.CurveAmplitude

			paint := r.palette.Edge(ConnectionOpacity(dist, threshold, capFactor))
			r.canvas.StrokeQuadratic(p1.x, p1.y, midX, midY+bend, p2.x, p2.y, scene.StrokeWidth, paint)
			r.last.Edges++
		}
	}
}

// ConnectionOpacity returns the stroke opacity of an edge: capFactor at
// distance zero, falling linearly to zero at the threshold.
func ConnectionOpacity(dist, threshold, capFactor float64) float64 {
	if dist >= threshold {
		return 0
	}
	return (1 - dist/threshold) * capFactor
}

// OrbAt returns the centre and radius of orb i at logical time t.
func OrbAt(o *config.OrbConfig, i int, t float64, b systems.Bounds) (x, y, radius float64) {
	fi := float64(i)
	x = b.Width * (o.BaseX + fi*o.SpacingX)
	y = b.Height/2 + math.Sin(t*o.TimeFreqY+fi*o.PhaseY)*(b.Height*o.SwingY)
	radius = o.BaseRadius + math.Sin(t*o.TimeFreqRadius+fi)*o.RadiusSwing
	return x, y, radius
}
