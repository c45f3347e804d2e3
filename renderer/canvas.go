// Package renderer draws the backdrop scene onto an immediate-mode 2D canvas.
package renderer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is an immediate-mode 2D drawing surface. After SetScale every
// drawing call is issued in logical pixels.
type Canvas interface {
	// Resize sets the backing store to backingW x backingH physical pixels,
	// displayed at displayW x displayH logical pixels.
	Resize(backingW, backingH int, displayW, displayH float64)
	// SetScale sets the uniform transform for subsequent drawing calls.
	SetScale(s float64)

	Begin()
	End()

	Clear(width, height float64)
	FillCircle(x, y, r float64, g Gradient)
	StrokeQuadratic(x0, y0, cx, cy, x1, y1, width float64, p Paint)
}

// Paint is a colour with a straight (non-premultiplied) alpha.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// NRGBA converts the paint to 8-bit channels, clamping alpha to [0, 1].
func (p Paint) NRGBA() color.NRGBA {
	r, g, b := p.Color.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(p.Alpha)*255 + 0.5)}
}

// GradientStop is a colour at an offset in [0, 1] along a radial gradient.
type GradientStop struct {
	Offset float64
	Paint  Paint
}

// Gradient is a radial gradient centred on (X, Y) reaching Radius.
type Gradient struct {
	X, Y   float64
	Radius float64
	Stops  []GradientStop
}

// At returns the interpolated paint at offset f, holding the end stops
// beyond either end.
func (g Gradient) At(f float64) Paint {
	stops := g.Stops
	if len(stops) == 0 {
		return Paint{}
	}
	if f <= stops[0].Offset {
		return stops[0].Paint
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if f > hi.Offset {
			continue
		}
		lo := stops[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Paint
		}
		k := (f - lo.Offset) / span
		return Paint{
			Color: lo.Paint.Color.BlendRgb(hi.Paint.Color, k),
			Alpha: lo.Paint.Alpha + (hi.Paint.Alpha-lo.Paint.Alpha)*k,
		}
	}
	return stops[len(stops)-1].Paint
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
