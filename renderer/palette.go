package renderer

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/aura/config"
)

// HSL converts a configured colour to RGB, ignoring its alpha.
func HSL(c config.HSLA) colorful.Color {
	return colorful.Hsl(c.H, c.S, c.L)
}

// Solid returns the configured colour with its own alpha.
func Solid(c config.HSLA) Paint {
	return Paint{Color: HSL(c), Alpha: c.A}
}

// Palette holds a theme's colours converted once per reinitialisation.
type Palette struct {
	particle []GradientStop // alpha holds the stop factor, scaled per particle
	orb      []GradientStop
	edge     colorful.Color
}

// NewPalette converts the theme's HSLA stops.
func NewPalette(th *config.ThemeConfig) *Palette {
	p := &Palette{
		particle: make([]GradientStop, len(th.ParticleStops)),
		orb:      make([]GradientStop, len(th.OrbStops)),
		edge:     HSL(th.EdgeColor),
	}
	for i, s := range th.ParticleStops {
		p.particle[i] = GradientStop{Offset: s.Offset, Paint: Solid(s.Color)}
	}
	for i, s := range th.OrbStops {
		p.orb[i] = GradientStop{Offset: s.Offset, Paint: Solid(s.Color)}
	}
	return p
}

// ParticleStops writes the particle stops for the given opacity into dst.
func (p *Palette) ParticleStops(dst []GradientStop, opacity float64) []GradientStop {
	dst = dst[:0]
	for _, s := range p.particle {
		s.Paint.Alpha *= opacity
		dst = append(dst, s)
	}
	return dst
}

// OrbStops returns the fixed orb stops.
func (p *Palette) OrbStops() []GradientStop {
	return p.orb
}

// Edge returns the connection paint at the given opacity.
func (p *Palette) Edge(opacity float64) Paint {
	return Paint{Color: p.edge, Alpha: opacity}
}
