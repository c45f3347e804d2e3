package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window, drawing into a recorder")
	logStats := flag.Bool("log-stats", false, "Output perf windows via slog")
	outputDir := flag.String("output-dir", "", "Output directory for perf.csv and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N executed frames (0 = unlimited)")
	themeName := flag.String("theme", "", "dark or light (empty = stored preference)")
	width := flag.Int("width", 0, "Viewport width (0 = config)")
	height := flag.Int("height", 0, "Viewport height (0 = config)")
	pixelRatio := flag.Float64("pixel-ratio", 1, "Headless device pixel ratio")
	touch := flag.Bool("touch", false, "Treat the host as touch-capable")
	refresh := flag.Float64("refresh", 60, "Headless display refresh rate in Hz")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *width > 0 {
		cfg.Screen.Width = *width
	}
	if *height > 0 {
		cfg.Screen.Height = *height
	}
	if *touch {
		cfg.Screen.Touch = true
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		MaxFrames: *maxFrames,
		Theme:     *themeName,
		Viewport: game.Viewport{
			Width:      float64(cfg.Screen.Width),
			Height:     float64(cfg.Screen.Height),
			PixelRatio: *pixelRatio,
		},
		RefreshHz: *refresh,
	}

	if *headless {
		runHeadless(cfg, opts)
		return
	}
	runWindowed(cfg, opts)
}

func runHeadless(cfg *config.Config, opts game.Options) {
	h, err := game.NewHeadless(cfg, opts)
	if err != nil {
		slog.Error("failed to start headless backdrop", "error", err)
		os.Exit(1)
	}
	defer h.Unload()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pacer := game.NewTickerPacer(opts.RefreshHz)
	defer pacer.Stop()

	slog.Info("starting headless backdrop",
		"seed", opts.Seed,
		"max_frames", opts.MaxFrames,
		"refresh_hz", opts.RefreshHz,
	)

	if err := h.Run(ctx, pacer); err != nil {
		slog.Error("headless run failed", "error", err)
		return
	}
	slog.Info("headless backdrop finished", "frames", h.Frames())
}

func runWindowed(cfg *config.Config, opts game.Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Aura")
	defer rl.CloseWindow()

	app, err := game.NewApp(cfg, opts)
	if err != nil {
		slog.Error("failed to start backdrop", "error", err)
		return
	}
	defer app.Unload()

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()

		if opts.MaxFrames > 0 && app.Frames() >= opts.MaxFrames {
			slog.Info("max frames reached", "frames", app.Frames())
			break
		}
	}
}
