package game

import (
	"errors"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/telemetry"
	"github.com/pthm-cable/aura/theme"
	"github.com/pthm-cable/aura/ui"
)

// App runs the backdrop in a raylib window with the theme toggle on top.
type App struct {
	cfg  *config.Config
	opts Options

	host     *WindowHost
	canvas   *renderer.RaylibCanvas
	backdrop *Backdrop
	prefs    *theme.Store

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	controls *ui.Controls
	panel    *ui.PerfPanel
	showPerf bool
	isDark   bool

	lastLog   float64
	lastPerf  int
	minimized bool
}

// NewApp mounts the backdrop on the open window. A missing surface is logged
// and the app keeps running without a backdrop.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("config snapshot failed", "error", err)
	}

	prefs, err := theme.NewStore(&cfg.Preference)
	if err != nil {
		slog.Warn("theme preference disabled", "error", err)
		prefs = nil
	}

	a := &App{
		cfg:      cfg,
		opts:     opts,
		host:     NewWindowHost(&cfg.Screen),
		prefs:    prefs,
		perf:     telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:   output,
		controls: ui.NewControls(),
		showPerf: opts.LogStats,
	}
	a.isDark = initialTheme(opts.Theme, prefs, cfg.Preference.DefaultDark)
	a.panel = ui.NewPerfPanel(10, 10, 240, a.isDark)

	var canvas renderer.Canvas
	if rl.IsWindowReady() {
		a.canvas = renderer.NewRaylibCanvas()
		canvas = a.canvas
	}

	a.backdrop = NewBackdrop(cfg, a.host, canvas, rand.New(rand.NewSource(opts.Seed)))
	a.backdrop.SetPerf(a.perf)
	if err := a.backdrop.Reinitialize(a.isDark); err != nil && !errors.Is(err, ErrNoSurface) {
		return nil, err
	}
	return a, nil
}

// SetTheme switches theme, rebuilding the backdrop and storing the choice.
func (a *App) SetTheme(isDark bool) {
	if isDark == a.isDark && a.backdrop.Active() {
		return
	}
	a.isDark = isDark
	a.panel.SetTheme(isDark)

	if err := a.backdrop.Reinitialize(isDark); err != nil {
		slog.Warn("backdrop not restarted", "error", err)
	}
	if a.prefs != nil {
		if err := a.prefs.Save(isDark); err != nil {
			slog.Warn("theme preference not saved", "error", err)
		}
	}
}

// Update handles input, window state and one display refresh.
func (a *App) Update() {
	a.host.Poll()

	minimized := a.host.Minimized()
	if minimized != a.minimized {
		a.minimized = minimized
		if minimized {
			a.backdrop.Pause()
		} else {
			a.backdrop.Resume()
		}
		slog.Info("window visibility changed", "minimized", minimized)
	}

	if rl.IsKeyPressed(rl.KeyT) {
		a.SetTheme(!a.isDark)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.showPerf = !a.showPerf
	}

	now := a.host.Now()
	a.backdrop.Frame(now)
	a.logPerf(now)
}

// logPerf emits a perf window every log interval.
func (a *App) logPerf(now float64) {
	if now-a.lastLog < a.cfg.Telemetry.LogInterval*1000 {
		return
	}
	a.lastLog = now

	executed := a.perf.Executed()
	if executed == a.lastPerf {
		return
	}
	a.lastPerf = executed

	stats := a.perf.Stats()
	if a.opts.LogStats {
		stats.LogStats()
	}
	if err := a.output.WritePerf(stats, executed, a.backdrop.Particles()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Draw presents the backdrop layer and the chrome.
func (a *App) Draw() {
	th := a.cfg.Theme(a.isDark)

	rl.BeginDrawing()
	rl.ClearBackground(renderer.RaylibColor(renderer.Solid(th.Background)))

	if a.canvas != nil && a.backdrop.Active() {
		a.canvas.Present(a.backdrop.LayerOpacity())
	}

	actions := a.controls.Draw(int32(rl.GetScreenWidth()), a.isDark, a.showPerf)
	if a.showPerf {
		a.panel.Draw(a.hudData())
	}
	ui.DrawHint(int32(rl.GetScreenHeight()), a.isDark, "[T] theme  [P] perf")

	rl.EndDrawing()

	if actions.ToggleTheme {
		a.SetTheme(!a.isDark)
	}
	if actions.TogglePerf {
		a.showPerf = !a.showPerf
	}
}

func (a *App) hudData() *ui.HUDData {
	stats := a.perf.Stats()
	scene := a.backdrop.Stats()
	d := &ui.HUDData{
		IsDark:         a.isDark,
		State:          "none",
		Particles:      a.backdrop.Particles(),
		Edges:          scene.Edges,
		Orbs:           scene.Orbs,
		PairsScanned:   scene.PairsScanned,
		FPS:            stats.FPS,
		IntervalMeanMs: stats.IntervalMeanMs,
		IntervalP95Ms:  stats.IntervalP95Ms,
		AvgTickUS:      stats.AvgTickDuration.Microseconds(),
		Executed:       stats.Executed,
		Dropped:        stats.Dropped,
	}
	if s := a.backdrop.Scheduler(); s != nil {
		d.State = s.State().String()
		d.TargetFPS = 1000 / s.Interval()
	}
	if m := a.backdrop.Surface(); m != nil {
		b := m.Bounds()
		d.Width, d.Height = b.Width, b.Height
		d.PixelRatio = m.PixelRatio()
		d.Compact = m.Compact()
	}
	return d
}

// Frames returns the number of executed frames.
func (a *App) Frames() int {
	return a.perf.Executed()
}

// Unload tears the backdrop down and releases GPU and file resources.
func (a *App) Unload() {
	a.backdrop.Teardown()
	if a.canvas != nil {
		a.canvas.Unload()
	}
	if err := a.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
