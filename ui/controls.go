package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Actions reports which controls were used this frame.
type Actions struct {
	ToggleTheme bool
	TogglePerf  bool
}

// Controls renders the top-right buttons.
type Controls struct {
	width, height float32
	margin        float32
}

// NewControls creates the button strip.
func NewControls() *Controls {
	return &Controls{width: 110, height: 28, margin: 10}
}

// ThemeLabel returns the toggle caption for the current theme.
func ThemeLabel(isDark bool) string {
	if isDark {
		return "Light mode"
	}
	return "Dark mode"
}

// PerfLabel returns the perf button caption.
func PerfLabel(showing bool) string {
	if showing {
		return "Hide perf"
	}
	return "Show perf"
}

// Draw renders the buttons anchored to the top-right corner.
func (c *Controls) Draw(screenWidth int32, isDark, perfShowing bool) Actions {
	x := float32(screenWidth) - c.width - c.margin
	var a Actions

	if gui.Button(rl.Rectangle{X: x, Y: c.margin, Width: c.width, Height: c.height}, ThemeLabel(isDark)) {
		a.ToggleTheme = true
	}
	if gui.Button(rl.Rectangle{X: x, Y: c.margin*2 + c.height, Width: c.width, Height: c.height}, PerfLabel(perfShowing)) {
		a.TogglePerf = true
	}
	return a
}
