package components

// Position is a particle's drawn location in logical pixels.
type Position struct {
	X, Y float64
}

// Drift holds per-tick velocity. VX moves X directly; VY moves the vertical
// anchor BaseY, onto which the wave terms are added to produce Y.
type Drift struct {
	VX, VY float64
	BaseY  float64
}
