// Package ui draws the host chrome over the backdrop: the theme toggle and a
// descriptor-driven perf panel. Panels are defined through field metadata so
// new stats only need a descriptor, not layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText    WidgetType = iota // Plain text with format string
	WidgetBar                       // Progress bar over Range
	WidgetSection                   // Section header
	WidgetSpacer                    // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for numeric text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// Style holds UI styling constants.
type Style struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// StyleFor returns the chrome style matching the backdrop theme.
func StyleFor(isDark bool) Style {
	if isDark {
		return DarkStyle()
	}
	return LightStyle()
}

// DarkStyle returns the chrome style used over the dark backdrop.
func DarkStyle() Style {
	return Style{
		PanelBg:        rl.Color{R: 20, G: 12, B: 16, A: 220},
		PanelBorder:    rl.Color{R: 90, G: 40, B: 50, A: 255},
		SectionHeader:  rl.Color{R: 230, G: 90, B: 100, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 200, G: 60, B: 80, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// LightStyle returns the chrome style used over the light backdrop.
func LightStyle() Style {
	return Style{
		PanelBg:        rl.Color{R: 248, G: 245, B: 252, A: 220},
		PanelBorder:    rl.Color{R: 180, G: 160, B: 210, A: 255},
		SectionHeader:  rl.Color{R: 120, G: 60, B: 180, A: 255},
		LabelColor:     rl.DarkGray,
		ValueColor:     rl.Black,
		BarBg:          rl.Color{R: 225, G: 220, B: 235, A: 255},
		BarFill:        rl.Color{R: 150, G: 90, B: 220, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
