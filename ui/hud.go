package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds what the perf panel shows about the running backdrop.
type HUDData struct {
	IsDark     bool
	State      string
	Compact    bool
	PixelRatio float64
	Width      float64
	Height     float64

	Particles    int
	Edges        int
	Orbs         int
	PairsScanned int

	FPS            float64
	TargetFPS      float64
	IntervalMeanMs float64
	IntervalP95Ms  float64
	AvgTickUS      int64
	Executed       int
	Dropped        int
}

func hud(data any) *HUDData {
	return data.(*HUDData)
}

// PerfSections describes the perf panel layout.
func PerfSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "surface",
			Title: "Surface",
			Fields: []FieldDescriptor{
				{ID: "theme", Label: "Theme", Widget: WidgetText, TextGetter: func(d any) string {
					if hud(d).IsDark {
						return "dark"
					}
					return "light"
				}},
				{ID: "state", Label: "Scheduler", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).State }},
				{ID: "size", Label: "Viewport", Widget: WidgetText, TextGetter: func(d any) string {
					h := hud(d)
					return fmt.Sprintf("%.0fx%.0f @%.2gx", h.Width, h.Height, h.PixelRatio)
				}},
				{ID: "compact", Label: "Compact", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprint(hud(d).Compact) }},
			},
		},
		{
			ID:    "scene",
			Title: "Scene",
			Fields: []FieldDescriptor{
				{ID: "particles", Label: "Particles", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).Particles) }},
				{ID: "edges", Label: "Edges", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).Edges) }},
				{ID: "pairs", Label: "Pairs", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).PairsScanned) }},
				{ID: "orbs", Label: "Orbs", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).Orbs) }},
			},
		},
		{
			ID:    "pacing",
			Title: "Pacing",
			Fields: []FieldDescriptor{
				{ID: "fps", Label: "FPS", Widget: WidgetBar, Getter: func(d any) float32 { return float32(hud(d).FPS) },
					Range: FieldRange{Min: 0, Max: 60}},
				{ID: "target", Label: "Target", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 { return float32(hud(d).TargetFPS) }},
				{ID: "interval", Label: "Interval", Widget: WidgetText, TextGetter: func(d any) string {
					h := hud(d)
					return fmt.Sprintf("%.1fms (p95 %.1f)", h.IntervalMeanMs, h.IntervalP95Ms)
				}},
				{ID: "tick", Label: "Tick", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%dus", hud(d).AvgTickUS) }},
				{ID: "dropped", Label: "Dropped", Widget: WidgetText, TextGetter: func(d any) string {
					h := hud(d)
					return fmt.Sprintf("%d / %d", h.Dropped, h.Dropped+h.Executed)
				}},
			},
		},
	}
}

// PerfPanel renders the perf sections in a panel.
type PerfPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new perf panel.
func NewPerfPanel(x, y, width int32, isDark bool) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(isDark),
		sections: PerfSections(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetTheme restyles the panel for the backdrop theme.
func (p *PerfPanel) SetTheme(isDark bool) {
	p.renderer.Style = StyleFor(isDark)
	p.sections = PerfSections()
}

// Draw renders the panel.
func (p *PerfPanel) Draw(data *HUDData) {
	r := p.renderer
	pad := r.Style.Padding

	height := pad * 2
	for _, sd := range p.sections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + pad
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+pad, y, sd, data, p.width-pad*2)
	}
}

// DrawHint draws the key legend at the bottom of the screen.
func DrawHint(screenHeight int32, isDark bool, text string) {
	rl.DrawText(text, 10, screenHeight-25, 14, StyleFor(isDark).LabelColor)
}
