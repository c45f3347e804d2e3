package game

import (
	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/renderer"
	"github.com/pthm-cable/aura/systems"
)

// Viewport describes the host display area.
type Viewport struct {
	Width, Height float64 // logical pixels
	PixelRatio    float64 // physical pixels per logical pixel
	Touch         bool
}

// Host is the environment the backdrop is mounted in.
type Host interface {
	Viewport() Viewport
	// AddResizeListener registers fn for viewport changes. The returned
	// func unregisters it and may be called more than once.
	AddResizeListener(fn func()) (remove func())
}

// SurfaceManager keeps the canvas backing store matched to the viewport.
type SurfaceManager struct {
	host   Host
	canvas renderer.Canvas
	screen *config.ScreenConfig

	bounds     systems.Bounds
	pixelRatio float64
	compact    bool
}

// NewSurfaceManager binds a canvas to a host. Call Resize to size it.
func NewSurfaceManager(host Host, canvas renderer.Canvas, screen *config.ScreenConfig) *SurfaceManager {
	return &SurfaceManager{host: host, canvas: canvas, screen: screen, pixelRatio: 1}
}

// Resize reads the viewport, resizes the backing store to logical size times
// the capped pixel ratio and scales drawing so callers use logical units.
func (m *SurfaceManager) Resize() {
	vp := m.host.Viewport()

	dpr := vp.PixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	if dpr > m.screen.MaxPixelRatio {
		dpr = m.screen.MaxPixelRatio
	}

	width, height := vp.Width, vp.Height
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	m.canvas.Resize(int(width*dpr), int(height*dpr), width, height)
	m.canvas.SetScale(dpr)

	m.bounds = systems.Bounds{Width: width, Height: height}
	m.pixelRatio = dpr
	m.compact = width < m.screen.CompactWidth || vp.Touch || m.screen.Touch
}

// Bounds returns the logical drawing area.
func (m *SurfaceManager) Bounds() systems.Bounds {
	return m.bounds
}

// PixelRatio returns the applied (capped) pixel ratio.
func (m *SurfaceManager) PixelRatio() float64 {
	return m.pixelRatio
}

// Compact reports whether the viewport is narrow or touch driven.
func (m *SurfaceManager) Compact() bool {
	return m.compact
}

// listenerSet is a resize listener registry shared by the hosts.
type listenerSet struct {
	nextID  int
	entries []listenerEntry
}

type listenerEntry struct {
	id int
	fn func()
}

func (l *listenerSet) add(fn func()) func() {
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listenerSet) len() int {
	return len(l.entries)
}

func (l *listenerSet) dispatch() {
	// Listeners may remove themselves while running
	snapshot := make([]listenerEntry, len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		e.fn()
	}
}
