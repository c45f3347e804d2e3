// Package components defines ECS components for backdrop particles.
package components

// Wave holds the procedural motion parameters, fixed at creation.
// Index is the particle's seeding order and feeds the third wave term.
type Wave struct {
	Offset    float64
	Speed     float64
	Amplitude float64
	Index     int
}

// Glow holds size and brightness state.
type Glow struct {
	Radius        float64 // Base radius, always > 0
	DrawRadius    float64 // Radius for the current tick (pulsed in the light theme)
	Opacity       float64 // Smoothed toward TargetOpacity, stays in [0, 1]
	TargetOpacity float64
	PulsePhase    float64
}
