// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all backdrop configuration parameters.
type Config struct {
	Screen     ScreenConfig    `yaml:"screen"`
	Scheduler  SchedulerConfig `yaml:"scheduler"`
	Scene      SceneConfig     `yaml:"scene"`
	Themes     ThemesConfig    `yaml:"themes"`
	Telemetry  TelemetryConfig `yaml:"telemetry"`
	Preference ThemeFileConfig `yaml:"theme"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window and viewport classification settings.
type ScreenConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"` // Backing store scale cap
	CompactWidth  float64 `yaml:"compact_width"`   // Viewports narrower than this are compact
	Touch         bool    `yaml:"touch"`           // Treat the host as touch-capable
}

// SchedulerConfig holds frame pacing parameters.
type SchedulerConfig struct {
	TargetFPS  float64 `yaml:"target_fps"`
	CompactFPS float64 `yaml:"compact_fps"`
	TimeStep   float64 `yaml:"time_step"` // Logical time added per executed tick
}

// SceneConfig holds theme-independent scene tuning.
type SceneConfig struct {
	AreaPerParticle float64   `yaml:"area_per_particle"`
	WrapMargin      float64   `yaml:"wrap_margin"`
	RetargetEpsilon float64   `yaml:"retarget_epsilon"`
	DriftDamping    float64   `yaml:"drift_damping"`
	CompactStride   int       `yaml:"compact_stride"`
	StrokeWidth     float64   `yaml:"stroke_width"`
	CurveAmplitude  float64   `yaml:"curve_amplitude"`
	CurveTimeFreq   float64   `yaml:"curve_time_freq"`
	CurveSpaceFreq  float64   `yaml:"curve_space_freq"`
	PulseFreq       float64   `yaml:"pulse_freq"`
	Orbs            OrbConfig `yaml:"orbs"`
}

// OrbConfig holds the closed-form orb trajectory coefficients.
type OrbConfig struct {
	BaseX          float64 `yaml:"base_x"`    // Fraction of width for the first orb
	SpacingX       float64 `yaml:"spacing_x"` // Fraction of width between orbs
	SwingY         float64 `yaml:"swing_y"`   // Fraction of height for vertical oscillation
	TimeFreqY      float64 `yaml:"time_freq_y"`
	PhaseY         float64 `yaml:"phase_y"` // Per-orb phase step
	BaseRadius     float64 `yaml:"base_radius"`
	RadiusSwing    float64 `yaml:"radius_swing"`
	TimeFreqRadius float64 `yaml:"time_freq_radius"`
}

// ThemesConfig holds the two theme variants.
type ThemesConfig struct {
	Dark  ThemeConfig `yaml:"dark"`
	Light ThemeConfig `yaml:"light"`
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps f in [0, 1) onto the range.
func (r Range) Lerp(f float64) float64 {
	return r.Min + f*(r.Max-r.Min)
}

// Contains reports whether v lies in [Min, Max).
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v < r.Max
}

// HSLA is a colour in hue (degrees), saturation and lightness (0-1), plus alpha.
// For gradient stops A is a factor applied to the particle opacity.
type HSLA struct {
	H float64 `yaml:"h"`
	S float64 `yaml:"s"`
	L float64 `yaml:"l"`
	A float64 `yaml:"a"`
}

// Stop is a gradient colour stop.
type Stop struct {
	Offset float64 `yaml:"offset"`
	Color  HSLA    `yaml:"color"`
}

// ThemeConfig holds everything that differs between the dark and light scenes.
type ThemeConfig struct {
	CountMultiplier float64 `yaml:"count_multiplier"`

	// Seeding ranges
	Radius         Range `yaml:"radius"`
	VelocityX      Range `yaml:"velocity_x"`
	VelocityY      Range `yaml:"velocity_y"`
	WaveAmplitude  Range `yaml:"wave_amplitude"`
	WaveSpeed      Range `yaml:"wave_speed"`
	InitialOpacity Range `yaml:"initial_opacity"`
	InitialTarget  Range `yaml:"initial_target"`

	// Opacity breathing
	Retarget  Range   `yaml:"retarget"`
	Smoothing float64 `yaml:"smoothing"`
	Pulse     bool    `yaml:"pulse"`

	// Particle fill
	GradientExtent float64 `yaml:"gradient_extent"` // Gradient radius as a multiple of the draw radius
	OpacityBoost   float64 `yaml:"opacity_boost"`
	ParticleStops  []Stop  `yaml:"particle_stops"`

	// Connections
	ConnectionDistance float64 `yaml:"connection_distance"`
	ConnectionCap      float64 `yaml:"connection_cap"`
	EdgeColor          HSLA    `yaml:"edge_color"`

	// Orbs
	OrbCount int    `yaml:"orb_count"`
	OrbStops []Stop `yaml:"orb_stops"`

	LayerOpacity float64 `yaml:"layer_opacity"`
	Background   HSLA    `yaml:"background"`
}

// TelemetryConfig holds perf collection parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`  // Executed frames per perf window
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines
}

// ThemeFileConfig holds theme preference settings.
type ThemeFileConfig struct {
	File        string `yaml:"file"` // Preference file (empty = user config dir)
	DefaultDark bool   `yaml:"default_dark"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameInterval        float64 // ms between executed ticks
	CompactFrameInterval float64 // ms between executed ticks on compact devices
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Theme returns the scene tuning for the given theme.
func (c *Config) Theme(isDark bool) *ThemeConfig {
	if isDark {
		return &c.Themes.Dark
	}
	return &c.Themes.Light
}

// FrameInterval returns the minimum ms between executed ticks.
func (c *Config) FrameInterval(compact bool) float64 {
	if compact {
		return c.Derived.CompactFrameInterval
	}
	return c.Derived.FrameInterval
}

func (c *Config) validate() error {
	if c.Scene.AreaPerParticle <= 0 {
		return fmt.Errorf("scene.area_per_particle must be positive, got %v", c.Scene.AreaPerParticle)
	}
	if c.Scheduler.TargetFPS <= 0 || c.Scheduler.CompactFPS <= 0 {
		return fmt.Errorf("scheduler fps must be positive, got %v/%v", c.Scheduler.TargetFPS, c.Scheduler.CompactFPS)
	}
	for name, th := range map[string]*ThemeConfig{"dark": &c.Themes.Dark, "light": &c.Themes.Light} {
		ranges := map[string]Range{
			"radius":          th.Radius,
			"velocity_x":      th.VelocityX,
			"velocity_y":      th.VelocityY,
			"wave_amplitude":  th.WaveAmplitude,
			"wave_speed":      th.WaveSpeed,
			"initial_opacity": th.InitialOpacity,
			"initial_target":  th.InitialTarget,
			"retarget":        th.Retarget,
		}
		for field, r := range ranges {
			if r.Max < r.Min {
				return fmt.Errorf("themes.%s.%s: max %v is below min %v", name, field, r.Max, r.Min)
			}
		}
		if th.Radius.Min <= 0 || th.Radius.Max <= 0 {
			return fmt.Errorf("themes.%s.radius must be positive, got [%v, %v)", name, th.Radius.Min, th.Radius.Max)
		}
		if th.Smoothing <= 0 || th.Smoothing > 1 {
			return fmt.Errorf("themes.%s.smoothing must be in (0, 1], got %v", name, th.Smoothing)
		}
		for field, r := range map[string]Range{"initial_opacity": th.InitialOpacity, "initial_target": th.InitialTarget, "retarget": th.Retarget} {
			if r.Min < 0 || r.Max > 1 {
				return fmt.Errorf("themes.%s.%s must lie in [0, 1], got [%v, %v)", name, field, r.Min, r.Max)
			}
		}
		if len(th.ParticleStops) == 0 || len(th.OrbStops) == 0 {
			return fmt.Errorf("themes.%s needs particle and orb stops", name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FrameInterval = 1000 / c.Scheduler.TargetFPS
	c.Derived.CompactFrameInterval = 1000 / c.Scheduler.CompactFPS

	if c.Screen.MaxPixelRatio <= 0 {
		c.Screen.MaxPixelRatio = 1
	}
	if c.Scene.CompactStride < 1 {
		c.Scene.CompactStride = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
