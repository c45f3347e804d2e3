package game

// StaticHost is a host with a fixed viewport that only changes when told to.
// Headless runs and tests use it.
type StaticHost struct {
	vp        Viewport
	listeners listenerSet
}

// NewStaticHost creates a host reporting vp.
func NewStaticHost(vp Viewport) *StaticHost {
	return &StaticHost{vp: vp}
}

// Viewport returns the current viewport.
func (h *StaticHost) Viewport() Viewport {
	return h.vp
}

// AddResizeListener registers fn for SetViewport calls.
func (h *StaticHost) AddResizeListener(fn func()) func() {
	return h.listeners.add(fn)
}

// SetViewport changes the viewport and notifies listeners.
func (h *StaticHost) SetViewport(vp Viewport) {
	h.vp = vp
	h.listeners.dispatch()
}

// Listeners returns the number of registered resize listeners.
func (h *StaticHost) Listeners() int {
	return h.listeners.len()
}
