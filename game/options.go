package game

import (
	"log/slog"

	"github.com/pthm-cable/aura/theme"
)

// Options configures a windowed or headless run.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
	MaxFrames int    // Stop after N executed frames (0 = unlimited)
	Theme     string // "dark", "light" or empty for the stored preference

	// Headless only
	Viewport  Viewport
	RefreshHz float64 // Simulated display refresh rate
}

// initialTheme resolves the starting theme: an explicit option wins, then the
// stored preference, then the configured default.
func initialTheme(opt string, prefs *theme.Store, def bool) bool {
	if opt != "" {
		return theme.Parse(opt, def)
	}
	if prefs == nil {
		return def
	}
	isDark, err := prefs.Load()
	if err != nil {
		slog.Warn("theme preference unreadable", "path", prefs.Path(), "error", err)
	}
	return isDark
}
