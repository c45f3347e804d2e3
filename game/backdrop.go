// Package game mounts the particle backdrop on a host: surface sizing, frame
// scheduling and the reinitialise/teardown lifecycle.
package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/systems"
	"github.com/pthm-cable/aura/telemetry"
)

// ErrNoSurface is returned when there is nothing to draw on.
var ErrNoSurface = errors.New("backdrop: no drawing surface")

// Backdrop owns one running instance of the animated background. A theme
// change tears the instance down and builds a fresh one.
type Backdrop struct {
	cfg    *config.Config
	host   Host
	canvas renderer.Canvas
	rng    *rand.Rand
	perf   *telemetry.PerfCollector

	isDark       bool
	surface      *SurfaceManager
	store        *systems.ParticleStore
	sim          *systems.Simulation
	scene        *renderer.SceneRenderer
	sched        *Scheduler
	removeResize func()
}

// NewBackdrop creates an unmounted backdrop. canvas may be nil when the host
// has no drawable surface; Reinitialize then reports ErrNoSurface.
func NewBackdrop(cfg *config.Config, host Host, canvas renderer.Canvas, rng *rand.Rand) *Backdrop {
	return &Backdrop{cfg: cfg, host: host, canvas: canvas, rng: rng}
}

// SetPerf attaches a perf collector timing every executed tick.
func (b *Backdrop) SetPerf(perf *telemetry.PerfCollector) {
	b.perf = perf
}

// Reinitialize tears down any running instance, then sizes the surface,
// reseeds the population for the theme and starts a fresh scheduler.
func (b *Backdrop) Reinitialize(isDark bool) error {
	b.Teardown()

	if b.canvas == nil || b.host == nil {
		slog.Warn("surface unavailable, backdrop disabled")
		return ErrNoSurface
	}

	b.isDark = isDark
	th := b.cfg.Theme(isDark)

	b.surface = NewSurfaceManager(b.host, b.canvas, &b.cfg.Screen)
	b.surface.Resize()
	b.removeResize = b.host.AddResizeListener(b.surface.Resize)

	bounds := b.surface.Bounds()
	count := systems.ParticleCount(bounds.Width, bounds.Height, b.cfg.Scene.AreaPerParticle, th.CountMultiplier)

	b.store = systems.NewParticleStore(b.rng)
	b.store.Seed(count, bounds.Width, bounds.Height, th)
	b.sim = systems.NewSimulation(b.store, &b.cfg.Scene, th)
	b.scene = renderer.NewSceneRenderer(b.canvas, &b.cfg.Scene, th)

	// The interval is fixed for this instance; stride follows live resizes
	b.sched = NewScheduler(b.cfg.FrameInterval(b.surface.Compact()), b.tick)
	b.sched.Observe(b.recordFrame)
	b.sched.Start()

	slog.Info("backdrop initialised",
		"is_dark", isDark,
		"particles", count,
		"width", bounds.Width,
		"height", bounds.Height,
		"pixel_ratio", b.surface.PixelRatio(),
		"compact", b.surface.Compact(),
		"interval_ms", b.sched.Interval(),
	)
	return nil
}

// tick runs one simulation step then one render.
func (b *Backdrop) tick() {
	if b.perf != nil {
		b.perf.StartTick()
		b.perf.StartPhase(telemetry.PhaseSimulate)
	}

	bounds := b.surface.Bounds()
	b.sim.Advance(b.cfg.Scheduler.TimeStep, bounds)

	if b.perf != nil {
		b.perf.StartPhase(telemetry.PhaseRender)
	}

	b.scene.Render(b.store, b.sim.Time(), bounds, b.surface.Compact())

	if b.perf != nil {
		b.perf.EndTick()
	}
}

func (b *Backdrop) recordFrame(now float64, executed bool) {
	if b.perf != nil {
		b.perf.RecordFrame(now, executed)
	}
}

// Frame forwards a display refresh at host time now (ms) to the scheduler.
func (b *Backdrop) Frame(now float64) bool {
	if b.sched == nil {
		return false
	}
	return b.sched.Frame(now)
}

// Run drives the backdrop from pacer until ctx ends or Teardown is called.
// A Reinitialize during the run hands the pacer to the new scheduler.
func (b *Backdrop) Run(ctx context.Context, pacer Pacer) error {
	if b.sched == nil {
		return ErrNoSurface
	}
	for {
		sched := b.sched
		if sched == nil {
			return nil
		}
		if err := sched.Run(ctx, pacer); err != nil {
			return err
		}
		if b.sched == sched {
			return nil
		}
	}
}

// Pause suspends ticks, e.g. while the host window is hidden.
func (b *Backdrop) Pause() {
	if b.sched != nil {
		b.sched.Pause()
	}
}

// Resume continues after Pause.
func (b *Backdrop) Resume() {
	if b.sched != nil {
		b.sched.Resume()
	}
}

// Teardown cancels the scheduler, detaches the resize listener and drops the
// population. It is a no-op when nothing is running.
func (b *Backdrop) Teardown() {
	if b.sched == nil {
		return
	}

	b.sched.Cancel()
	if b.removeResize != nil {
		b.removeResize()
	}
	b.store.Clear()

	slog.Info("backdrop torn down", "is_dark", b.isDark, "executed", b.sched.Executed(), "dropped", b.sched.Dropped())

	b.sched = nil
	b.removeResize = nil
	b.store = nil
	b.sim = nil
	b.scene = nil
	b.surface = nil
}

// Active reports whether an instance is mounted.
func (b *Backdrop) Active() bool {
	return b.sched != nil
}

// IsDark returns the theme of the current instance.
func (b *Backdrop) IsDark() bool {
	return b.isDark
}

// Particles returns the current population size.
func (b *Backdrop) Particles() int {
	if b.store == nil {
		return 0
	}
	return b.store.Len()
}

// Scheduler returns the current scheduler, or nil when torn down.
func (b *Backdrop) Scheduler() *Scheduler {
	return b.sched
}

// Surface returns the current surface manager, or nil when torn down.
func (b *Backdrop) Surface() *SurfaceManager {
	return b.surface
}

// Store returns the current particle store, or nil when torn down.
func (b *Backdrop) Store() *systems.ParticleStore {
	return b.store
}

// Stats returns the draw counts of the last executed tick.
func (b *Backdrop) Stats() renderer.FrameStats {
	if b.scene == nil {
		return renderer.FrameStats{}
	}
	return b.scene.Stats()
}

// LayerOpacity returns the opacity the host should present the layer with.
func (b *Backdrop) LayerOpacity() float64 {
	return b.cfg.Theme(b.isDark).LayerOpacity
}
