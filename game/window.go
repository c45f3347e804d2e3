package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aura/config"
)

// WindowHost adapts a raylib window to Host. raylib has no resize callback,
// so Poll must be called once per loop iteration to dispatch resizes.
type WindowHost struct {
	screen    *config.ScreenConfig
	listeners listenerSet

	width, height int32
}

// NewWindowHost creates a host for the already open raylib window.
func NewWindowHost(screen *config.ScreenConfig) *WindowHost {
	return &WindowHost{
		screen: screen,
		width:  int32(rl.GetScreenWidth()),
		height: int32(rl.GetScreenHeight()),
	}
}

// Viewport reads the window size, DPI scale and touch state.
func (h *WindowHost) Viewport() Viewport {
	dpi := rl.GetWindowScaleDPI()
	return Viewport{
		Width:      float64(rl.GetScreenWidth()),
		Height:     float64(rl.GetScreenHeight()),
		PixelRatio: float64(dpi.X),
		Touch:      h.screen.Touch || rl.GetTouchPointCount() > 0,
	}
}

// AddResizeListener registers fn for window size changes.
func (h *WindowHost) AddResizeListener(fn func()) func() {
	return h.listeners.add(fn)
}

// Poll dispatches resize listeners when the window size changed since the
// last call.
func (h *WindowHost) Poll() {
	w, ht := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if !rl.IsWindowResized() && w == h.width && ht == h.height {
		return
	}
	h.width, h.height = w, ht
	h.listeners.dispatch()
}

// Minimized reports whether the window is minimised.
func (h *WindowHost) Minimized() bool {
	return rl.IsWindowMinimized()
}

// Now returns host time in ms.
func (h *WindowHost) Now() float64 {
	return rl.GetTime() * 1000
}
