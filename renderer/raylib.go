package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// curveSegments is the tessellation of a quadratic edge.
const curveSegments = 12

// RaylibCanvas draws into an off-screen render texture sized in physical
// pixels; a Camera2D zoom maps logical coordinates onto it.
// Must be used after the raylib window is created.
type RaylibCanvas struct {
	target rl.RenderTexture2D
	loaded bool

	displayW, displayH float32
	camera             rl.Camera2D
}

// NewRaylibCanvas creates a canvas with no backing store yet.
func NewRaylibCanvas() *RaylibCanvas {
	return &RaylibCanvas{camera: rl.Camera2D{Zoom: 1}}
}

// Resize reallocates the backing texture. Contents are lost, as with an HTML canvas.
func (c *RaylibCanvas) Resize(backingW, backingH int, displayW, displayH float64) {
	c.Unload()
	c.displayW = float32(displayW)
	c.displayH = float32(displayH)
	if backingW <= 0 || backingH <= 0 {
		return
	}
	c.target = rl.LoadRenderTexture(int32(backingW), int32(backingH))
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.loaded = true
}

func (c *RaylibCanvas) SetScale(s float64) {
	c.camera = rl.Camera2D{Zoom: float32(s)}
}

func (c *RaylibCanvas) Begin() {
	if !c.loaded {
		return
	}
	rl.BeginTextureMode(c.target)
	rl.BeginMode2D(c.camera)
}

func (c *RaylibCanvas) End() {
	if !c.loaded {
		return
	}
	rl.EndMode2D()
	rl.EndTextureMode()
}

func (c *RaylibCanvas) Clear(width, height float64) {
	if !c.loaded {
		return
	}
	rl.ClearBackground(rl.Blank)
}

// FillCircle fills a disc with a radial gradient approximated by concentric
// solid bands, each coloured at its mid radius.
func (c *RaylibCanvas) FillCircle(x, y, r float64, g Gradient) {
	if !c.loaded || r <= 0 || g.Radius <= 0 {
		return
	}
	center := rl.Vector2{X: float32(x), Y: float32(y)}
	bands := int(r/1.5) + 1
	if bands > 32 {
		bands = 32
	}
	segments := int32(math.Max(12, math.Min(64, r*2)))

	dx, dy := x-g.X, y-g.Y
	offset := math.Sqrt(dx*dx + dy*dy)
	for k := 0; k < bands; k++ {
		inner := r * float64(k) / float64(bands)
		outer := r * float64(k+1) / float64(bands)
		col := rlColor(g.At((offset + (inner+outer)/2) / g.Radius).NRGBA())
		if col.A == 0 {
			continue
		}
		if k == 0 {
			rl.DrawCircleV(center, float32(outer), col)
			continue
		}
		rl.DrawRing(center, float32(inner), float32(outer), 0, 360, segments, col)
	}
}

// StrokeQuadratic tessellates the curve into line segments.
func (c *RaylibCanvas) StrokeQuadratic(x0, y0, cx, cy, x1, y1, width float64, p Paint) {
	if !c.loaded {
		return
	}
	col := rlColor(p.NRGBA())
	if col.A == 0 {
		return
	}
	prev := rl.Vector2{X: float32(x0), Y: float32(y0)}
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		next := rl.Vector2{
			X: float32(u*u*x0 + 2*u*t*cx + t*t*x1),
			Y: float32(u*u*y0 + 2*u*t*cy + t*t*y1),
		}
		rl.DrawLineEx(prev, next, float32(width), col)
		prev = next
	}
}

// Present draws the backing texture onto the screen at its display size.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (c *RaylibCanvas) Present(opacity float64) {
	if !c.loaded {
		return
	}
	tex := c.target.Texture
	srcRect := rl.Rectangle{
		X:      0,
		Y:      float32(tex.Height),
		Width:  float32(tex.Width),
		Height: -float32(tex.Height), // Negative to flip
	}
	dstRect := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  c.displayW,
		Height: c.displayH,
	}
	rl.DrawTexturePro(tex, srcRect, dstRect, rl.Vector2{}, 0, rl.Fade(rl.White, float32(opacity)))
}

// Unload frees the backing texture.
func (c *RaylibCanvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

func rlColor(c color.NRGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RaylibColor converts a paint to a raylib colour.
func RaylibColor(p Paint) rl.Color {
	return rlColor(p.NRGBA())
}
