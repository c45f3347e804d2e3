package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/aura/components"
	"github.com/pthm-cable/aura/config"
	"github.com/pthm-cable/aura/systems"
)

var bounds = systems.Bounds{Width: 1000, Height: 800}

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

func spawnAt(store *systems.ParticleStore, x, y, opacity float64) {
	store.Spawn(
		components.Position{X: x, Y: y},
		components.Drift{BaseY: y},
		components.Wave{},
		components.Glow{Radius: 3, DrawRadius: 3, Opacity: opacity, TargetOpacity: opacity},
	)
}

func newScene(t *testing.T, isDark bool) (*config.Config, *systems.ParticleStore, *Recorder, *SceneRenderer) {
	t.Helper()
	cfg := loadConfig(t)
	store := systems.NewParticleStore(rand.New(rand.NewSource(1)))
	rec := NewRecorder()
	return cfg, store, rec, NewSceneRenderer(rec, &cfg.Scene, cfg.Theme(isDark))
}

func TestConnectionThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name      string
		isDark    bool
		distance  float64
		wantEdges int
	}{
		{"dark at threshold", true, 140, 0},
		{"dark just inside", true, 139.99, 1},
		{"light at threshold", false, 150, 0},
		{"light just inside", false, 149.99, 1},
		{"light beyond dark threshold", false, 145, 1},
		{"dark beyond", true, 145, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, store, rec, r := newScene(t, tc.isDark)
			spawnAt(store, 100, 400, 0.3)
			spawnAt(store, 100+tc.distance, 400, 0.3)

			r.Render(store, 0, bounds, false)

			if len(rec.Strokes) != tc.wantEdges {
				t.Errorf("strokes = %d, want %d", len(rec.Strokes), tc.wantEdges)
			}
		})
	}
}

func TestConnectionOpacity(t *testing.T) {
	tests := []struct {
		dist, threshold, capFactor, want float64
	}{
		{0, 140, 0.2, 0.2},
		{0, 150, 0.25, 0.25},
		{70, 140, 0.2, 0.1},
		{140, 140, 0.2, 0},
		{200, 140, 0.2, 0},
	}
	for _, tc := range tests {
		got := ConnectionOpacity(tc.dist, tc.threshold, tc.capFactor)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("ConnectionOpacity(%v, %v, %v) = %v, want %v", tc.dist, tc.threshold, tc.capFactor, got, tc.want)
		}
	}
}

func TestCoincidentParticlesUseCap(t *testing.T) {
	for _, isDark := range []bool{true, false} {
		cfg, store, rec, r := newScene(t, isDark)
		spawnAt(store, 300, 300, 0.3)
		spawnAt(store, 300, 300, 0.3)

		r.Render(store, 1.5, bounds, false)

		if len(rec.Strokes) != 1 {
			t.Fatalf("dark=%v: strokes = %d, want 1", isDark, len(rec.Strokes))
		}
		want := cfg.Theme(isDark).ConnectionCap
		if got := rec.Strokes[0].Paint.Alpha; math.Abs(got-want) > 1e-12 {
			t.Errorf("dark=%v: stroke alpha = %v, want %v", isDark, got, want)
		}
	}
}

func TestConnectionsVisitEachPairOnce(t *testing.T) {
	_, store, rec, r := newScene(t, true)
	spawnAt(store, 100, 100, 0.3)
	spawnAt(store, 130, 100, 0.3)
	spawnAt(store, 115, 130, 0.3)

	r.Render(store, 0, bounds, false)

	if len(rec.Strokes) != 3 {
		t.Errorf("strokes = %d, want 3 for a mutually close triple", len(rec.Strokes))
	}
	if r.Stats().PairsScanned != 3 {
		t.Errorf("pairs scanned = %d, want 3", r.Stats().PairsScanned)
	}
}

func TestCompactStrideReducesPairs(t *testing.T) {
	_, store, rec, r := newScene(t, true)
	for i := 0; i < 6; i++ {
		spawnAt(store, 100+float64(i)*5, 200, 0.3)
	}

	r.Render(store, 0, bounds, false)
	if len(rec.Strokes) != 15 {
		t.Errorf("full scan strokes = %d, want 15", len(rec.Strokes))
	}

	r.Render(store, 0, bounds, true)
	if len(rec.Strokes) != 6 {
		t.Errorf("compact scan strokes = %d, want 6", len(rec.Strokes))
	}
	// The population itself is untouched
	if got := r.Stats().Particles; got != 6 {
		t.Errorf("compact particles drawn = %d, want 6", got)
	}
}

func TestCurveControlPoint(t *testing.T) {
	cfg, store, rec, r := newScene(t, true)
	spawnAt(store, 100, 200, 0.3)
	spawnAt(store, 200, 260, 0.3)

	const tt = 2.5
	r.Render(store, tt, bounds, false)

	if len(rec.Strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(rec.Strokes))
	}
	s := rec.Strokes[0]
	wantCY := 230 + math.Sin(tt*2+150*0.01)*12
	if s.CX != 150 || math.Abs(s.CY-wantCY) > 1e-9 {
		t.Errorf("control point = (%v, %v), want (150, %v)", s.CX, s.CY, wantCY)
	}
	if s.X0 != 100 || s.Y0 != 200 || s.X1 != 200 || s.Y1 != 260 {
		t.Errorf("endpoints = (%v,%v)-(%v,%v)", s.X0, s.Y0, s.X1, s.Y1)
	}
	if s.Width != cfg.Scene.StrokeWidth {
		t.Errorf("stroke width = %v, want %v", s.Width, cfg.Scene.StrokeWidth)
	}
}

func TestOrbsDrawnBeneathParticles(t *testing.T) {
	tests := []struct {
		isDark   bool
		wantOrbs int
	}{
		{true, 4},
		{false, 5},
	}

	for _, tc := range tests {
		_, store, rec, r := newScene(t, tc.isDark)
		spawnAt(store, 500, 500, 0.3)

		r.Render(store, 0.8, bounds, false)

		if r.Stats().Orbs != tc.wantOrbs {
			t.Errorf("dark=%v: orbs = %d, want %d", tc.isDark, r.Stats().Orbs, tc.wantOrbs)
		}
		if len(rec.Fills) != tc.wantOrbs+1 {
			t.Fatalf("dark=%v: fills = %d, want %d", tc.isDark, len(rec.Fills), tc.wantOrbs+1)
		}
		last := rec.Fills[len(rec.Fills)-1]
		if last.X != 500 || last.Y != 500 {
			t.Errorf("dark=%v: particle should be drawn after the orbs", tc.isDark)
		}
	}
}

func TestOrbTrajectory(t *testing.T) {
	cfg := loadConfig(t)
	o := &cfg.Scene.Orbs

	x, y, radius := OrbAt(o, 2, 0, bounds)
	if math.Abs(x-1000*(0.15+2*0.18)) > 1e-9 {
		t.Errorf("x = %v, want %v", x, 1000*(0.15+2*0.18))
	}
	if math.Abs(y-(400+math.Sin(2.4)*200)) > 1e-9 {
		t.Errorf("y = %v", y)
	}
	if math.Abs(radius-(70+math.Sin(2)*25)) > 1e-9 {
		t.Errorf("radius = %v", radius)
	}

	for i := 0; i < 5; i++ {
		for step := 0; step < 500; step++ {
			_, y, radius := OrbAt(o, i, float64(step)*0.1, bounds)
			if radius < 45-1e-9 || radius > 95+1e-9 {
				t.Fatalf("orb %d radius %v outside [45, 95]", i, radius)
			}
			if y < 200-1e-9 || y > 600+1e-9 {
				t.Fatalf("orb %d y %v outside [200, 600]", i, y)
			}
		}
	}
}

func TestParticleGradient(t *testing.T) {
	t.Run("dark", func(t *testing.T) {
		_, store, rec, r := newScene(t, true)
		spawnAt(store, 10, 10, 0.4)
		r.Render(store, 0, bounds, false)

		fill := rec.Fills[len(rec.Fills)-1]
		if fill.R != 3 || fill.Gradient.Radius != 9 {
			t.Errorf("radius = %v, gradient radius = %v, want 3 and 9", fill.R, fill.Gradient.Radius)
		}
		stops := fill.Gradient.Stops
		if len(stops) != 2 {
			t.Fatalf("stops = %d, want 2", len(stops))
		}
		if math.Abs(stops[0].Paint.Alpha-0.4) > 1e-12 || math.Abs(stops[1].Paint.Alpha-0.12) > 1e-12 {
			t.Errorf("alphas = %v/%v, want 0.4/0.12", stops[0].Paint.Alpha, stops[1].Paint.Alpha)
		}
	})

	t.Run("light boost", func(t *testing.T) {
		_, store, rec, r := newScene(t, false)
		spawnAt(store, 10, 10, 0.4)
		r.Render(store, 0, bounds, false)

		fill := rec.Fills[len(rec.Fills)-1]
		if fill.Gradient.Radius != 18 {
			t.Errorf("gradient radius = %v, want 18", fill.Gradient.Radius)
		}
		want := []float64{0.6, 0.48, 0.3, 0.06}
		stops := fill.Gradient.Stops
		if len(stops) != len(want) {
			t.Fatalf("stops = %d, want %d", len(stops), len(want))
		}
		for i, w := range want {
			if math.Abs(stops[i].Paint.Alpha-w) > 1e-12 {
				t.Errorf("stop %d alpha = %v, want %v", i, stops[i].Paint.Alpha, w)
			}
		}
	})
}

func TestRenderFrameStructure(t *testing.T) {
	_, store, rec, r := newScene(t, true)

	r.Render(store, 0, bounds, false)
	r.Render(store, 0.016, bounds, false)

	if rec.Frames != 2 || rec.Clears != 2 {
		t.Errorf("frames = %d, clears = %d, want 2 each", rec.Frames, rec.Clears)
	}
	if rec.Unbalanced != 0 {
		t.Errorf("unbalanced Begin/End = %d", rec.Unbalanced)
	}
	// Empty population draws only the orbs
	if len(rec.Strokes) != 0 || len(rec.Fills) != 4 {
		t.Errorf("empty scene: strokes = %d, fills = %d", len(rec.Strokes), len(rec.Fills))
	}
}

func TestRenderEmptyBoundsDrawsNothing(t *testing.T) {
	_, store, rec, r := newScene(t, false)

	r.Render(store, 1, systems.Bounds{}, false)

	if rec.Frames != 1 || rec.Clears != 1 {
		t.Errorf("frames = %d, clears = %d, want 1 each", rec.Frames, rec.Clears)
	}
	if rec.DrawCalls() != 0 {
		t.Errorf("draw calls = %d, want 0", rec.DrawCalls())
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	cfg, store, _, r := newScene(t, false)
	store.Seed(60, bounds.Width, bounds.Height, cfg.Theme(false))

	type snap struct {
		pos  components.Position
		glow components.Glow
	}
	before := make([]snap, store.Len())
	for i := range before {
		pos, _, _, glow := store.At(i)
		before[i] = snap{*pos, *glow}
	}

	r.Render(store, 3.2, bounds, false)

	for i := range before {
		pos, _, _, glow := store.At(i)
		if (snap{*pos, *glow}) != before[i] {
			t.Fatalf("particle %d changed during Render", i)
		}
	}
}

func TestGradientAt(t *testing.T) {
	g := Gradient{Radius: 10, Stops: []GradientStop{
		{Offset: 0, Paint: Paint{Alpha: 1}},
		{Offset: 0.5, Paint: Paint{Alpha: 0.5}},
		{Offset: 1, Paint: Paint{Alpha: 0}},
	}}

	tests := []struct{ f, want float64 }{
		{-1, 1},
		{0, 1},
		{0.25, 0.75},
		{0.5, 0.5},
		{0.75, 0.25},
		{2, 0},
	}
	for _, tc := range tests {
		if got := g.At(tc.f).Alpha; math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("At(%v).Alpha = %v, want %v", tc.f, got, tc.want)
		}
	}

	if (Gradient{}).At(0.5) != (Paint{}) {
		t.Error("empty gradient should yield a zero paint")
	}
}

func TestPaintNRGBAClampsAlpha(t *testing.T) {
	p := Paint{Color: HSL(config.HSLA{H: 270, S: 0.85, L: 0.5}), Alpha: 1.4}
	if got := p.NRGBA().A; got != 255 {
		t.Errorf("alpha = %d, want 255", got)
	}
	p.Alpha = -0.2
	if got := p.NRGBA().A; got != 0 {
		t.Errorf("alpha = %d, want 0", got)
	}
}

func TestPaletteHues(t *testing.T) {
	cfg := loadConfig(t)

	dark := NewPalette(cfg.Theme(true))
	r, g, b := dark.Edge(1).Color.RGB255()
	if r <= g || r <= b {
		t.Errorf("dark edge colour (%d,%d,%d) should be red-dominant", r, g, b)
	}

	light := NewPalette(cfg.Theme(false))
	r, g, b = light.Edge(1).Color.RGB255()
	if b <= g || r <= g {
		t.Errorf("light edge colour (%d,%d,%d) should be violet", r, g, b)
	}
}
