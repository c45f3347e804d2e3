package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/telemetry"
)

// Headless runs the backdrop against a Recorder canvas with no window.
type Headless struct {
	cfg      *config.Config
	opts     Options
	host     *StaticHost
	canvas   *renderer.Recorder
	backdrop *Backdrop
	perf     *telemetry.PerfCollector
	output   *telemetry.OutputManager
}

// NewHeadless builds and mounts a headless backdrop.
func NewHeadless(cfg *config.Config, opts Options) (*Headless, error) {
	vp := opts.Viewport
	if vp.Width == 0 && vp.Height == 0 {
		vp = Viewport{Width: float64(cfg.Screen.Width), Height: float64(cfg.Screen.Height), PixelRatio: 1}
	}
	vp.Touch = vp.Touch || cfg.Screen.Touch

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot failed", "error", err)
	}

	h := &Headless{
		cfg:    cfg,
		opts:   opts,
		host:   NewStaticHost(vp),
		canvas: renderer.NewRecorder(),
		perf:   telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output: output,
	}
	h.backdrop = NewBackdrop(cfg, h.host, h.canvas, rand.New(rand.NewSource(opts.Seed)))
	h.backdrop.SetPerf(h.perf)

	isDark := initialTheme(opts.Theme, nil, cfg.Preference.DefaultDark)
	if err := h.backdrop.Reinitialize(isDark); err != nil {
		output.Close()
		return nil, err
	}
	return h, nil
}

// Run paces the backdrop until ctx ends or MaxFrames frames have executed.
// Reaching MaxFrames returns nil.
func (h *Headless) Run(ctx context.Context, pacer Pacer) error {
	window := h.cfg.Telemetry.PerfWindow
	if window < 1 {
		window = 1
	}

	// Stop and flush perf windows from inside the pacing loop
	flushed := 0
	counting := &countingPacer{Pacer: pacer, after: func() {
		n := h.perf.Executed()
		if n > flushed && n%window == 0 {
			flushed = n
			h.flushPerf(n)
		}
		if h.opts.MaxFrames > 0 && n >= h.opts.MaxFrames {
			slog.Info("max frames reached", "frames", n)
			h.backdrop.Teardown()
		}
	}}

	err := h.backdrop.Run(ctx, counting)
	if errors.Is(err, context.Canceled) {
		slog.Info("headless run cancelled", "frames", h.perf.Executed())
		return nil
	}
	return err
}

func (h *Headless) flushPerf(executed int) {
	stats := h.perf.Stats()
	if h.opts.LogStats {
		stats.LogStats()
	}
	if err := h.output.WritePerf(stats, executed, h.backdrop.Particles()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Backdrop returns the mounted backdrop.
func (h *Headless) Backdrop() *Backdrop {
	return h.backdrop
}

// Host returns the static host, e.g. to simulate resizes.
func (h *Headless) Host() *StaticHost {
	return h.host
}

// Canvas returns the recording canvas.
func (h *Headless) Canvas() *renderer.Recorder {
	return h.canvas
}

// Frames returns the number of executed frames.
func (h *Headless) Frames() int {
	return h.perf.Executed()
}

// Unload tears the backdrop down and closes output files.
func (h *Headless) Unload() {
	h.backdrop.Teardown()
	if err := h.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// countingPacer calls after ahead of every refresh but the first, so after
// sees the state left by the previous frame.
type countingPacer struct {
	Pacer
	after   func()
	started bool
}

func (p *countingPacer) Next(ctx context.Context) (float64, error) {
	if p.started {
		p.after()
	}
	p.started = true
	return p.Pacer.Next(ctx)
}
