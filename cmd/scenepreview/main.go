// Scene preview tool - tune the backdrop live with sliders.
//
// Usage: go run ./cmd/scenepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/game"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/theme"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	panelWidth   = 300
)

// slider is one tunable value bound to a config field.
type slider struct {
	label    string
	min, max float32
	format   string
	get      func(*config.Config, *config.ThemeConfig) float32
	set      func(*config.Config, *config.ThemeConfig, float32)
	reseed   bool // change needs a fresh population
}

func sliders() []slider {
	return []slider{
		{
			label: "Area per particle", min: 3000, max: 40000, format: "%.0f", reseed: true,
			get: func(c *config.Config, _ *config.ThemeConfig) float32 { return float32(c.Scene.AreaPerParticle) },
			set: func(c *config.Config, _ *config.ThemeConfig, v float32) { c.Scene.AreaPerParticle = float64(v) },
		},
		{
			label: "Count multiplier", min: 0.2, max: 3, format: "%.2f", reseed: true,
			get: func(_ *config.Config, th *config.ThemeConfig) float32 { return float32(th.CountMultiplier) },
			set: func(_ *config.Config, th *config.ThemeConfig, v float32) { th.CountMultiplier = float64(v) },
		},
		{
			label: "Connection distance", min: 40, max: 260, format: "%.0f",
			get: func(_ *config.Config, th *config.ThemeConfig) float32 { return float32(th.ConnectionDistance) },
			set: func(_ *config.Config, th *config.ThemeConfig, v float32) { th.ConnectionDistance = float64(v) },
		},
		{
			label: "Connection cap", min: 0, max: 0.6, format: "%.2f",
			get: func(_ *config.Config, th *config.ThemeConfig) float32 { return float32(th.ConnectionCap) },
			set: func(_ *config.Config, th *config.ThemeConfig, v float32) { th.ConnectionCap = float64(v) },
		},
		{
			label: "Opacity smoothing", min: 0.002, max: 0.1, format: "%.3f",
			get: func(_ *config.Config, th *config.ThemeConfig) float32 { return float32(th.Smoothing) },
			set: func(_ *config.Config, th *config.ThemeConfig, v float32) { th.Smoothing = float64(v) },
		},
		{
			label: "Curve amplitude", min: 0, max: 40, format: "%.1f",
			get: func(c *config.Config, _ *config.ThemeConfig) float32 { return float32(c.Scene.CurveAmplitude) },
			set: func(c *config.Config, _ *config.ThemeConfig, v float32) { c.Scene.CurveAmplitude = float64(v) },
		},
		{
			label: "Layer opacity", min: 0.1, max: 1, format: "%.2f",
			get: func(_ *config.Config, th *config.ThemeConfig) float32 { return float32(th.LayerOpacity) },
			set: func(_ *config.Config, th *config.ThemeConfig, v float32) { th.LayerOpacity = float64(v) },
		},
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "Scene Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	host := game.NewWindowHost(&cfg.Screen)
	canvas := renderer.NewRaylibCanvas()
	defer canvas.Unload()

	seed := int64(12345)
	isDark := true
	backdrop := game.NewBackdrop(cfg, host, canvas, rand.New(rand.NewSource(seed)))
	defer func() { backdrop.Teardown() }()

	needsRegen := true
	controls := sliders()

	for !rl.WindowShouldClose() {
		host.Poll()

		if needsRegen {
			if err := backdrop.Reinitialize(isDark); err != nil {
				slog.Error("reinitialise failed", "error", err)
			}
			needsRegen = false
		}
		backdrop.Frame(host.Now())

		th := cfg.Theme(isDark)

		rl.BeginDrawing()
		rl.ClearBackground(renderer.RaylibColor(renderer.Solid(th.Background)))
		canvas.Present(th.LayerOpacity)

		// Control panel
		panelX := float32(rl.GetScreenWidth() - panelWidth - 10)
		panelY := float32(10)
		rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+20, int32(rl.GetScreenHeight()), rl.Fade(rl.RayWhite, 0.85))

		rl.DrawText(fmt.Sprintf("Scene (%s)", theme.Name(isDark)), int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30
		stats := backdrop.Stats()
		rl.DrawText(fmt.Sprintf("Particles: %d  Edges: %d", backdrop.Particles(), stats.Edges), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 28

		for _, s := range controls {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18

			cur := s.get(cfg, th)
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
				"", "",
				cur, s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, cur), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
			if next != cur {
				s.set(cfg, th, next)
				if s.reseed {
					needsRegen = true
				}
			}
			panelY += 35
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, toggleText(isDark, "Light theme", "Dark theme")) {
			isDark = !isDark
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Reseed") {
			seed++
			backdrop = reseeded(backdrop, cfg, host, canvas, seed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, "Reset All") {
			if fresh, err := config.Load(*configPath); err == nil {
				*cfg = *fresh
				needsRegen = true
			}
		}

		rl.DrawText("Press C to copy theme YAML to clipboard", int32(panelX), int32(rl.GetScreenHeight()-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			if text, err := themeYAML(isDark, th); err == nil {
				rl.SetClipboardText(text)
			} else {
				slog.Error("marshaling theme", "error", err)
			}
		}

		rl.EndDrawing()
	}
}

// reseeded replaces the backdrop so the next Reinitialize draws from a new seed.
func reseeded(old *game.Backdrop, cfg *config.Config, host game.Host, canvas renderer.Canvas, seed int64) *game.Backdrop {
	old.Teardown()
	return game.NewBackdrop(cfg, host, canvas, rand.New(rand.NewSource(seed)))
}

// themeYAML renders the current theme as a config overlay.
func themeYAML(isDark bool, th *config.ThemeConfig) (string, error) {
	overlay := map[string]map[string]*config.ThemeConfig{
		"themes": {theme.Name(isDark): th},
	}
	data, err := yaml.Marshal(overlay)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
