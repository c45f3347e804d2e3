package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/aura/components"
	"github.com/pthm-cable/aura/config"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

func TestParticleCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		multiplier    float64
		want          int
	}{
		{"dark 1200x800", 1200, 800, 1.2, 96},
		{"light 1200x800", 1200, 800, 1.8, 144},
		{"dark 1920x1080", 1920, 1080, 1.2, 206},
		{"tiny viewport", 100, 100, 1.8, 0},
		{"zero width", 0, 800, 1.2, 0},
		{"negative height", 800, -10, 1.2, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParticleCount(tc.width, tc.height, 12000, tc.multiplier)
			if got != tc.want {
				t.Errorf("ParticleCount(%v, %v) = %d, want %d", tc.width, tc.height, got, tc.want)
			}
		})
	}
}

func TestSeedRanges(t *testing.T) {
	cfg := loadConfig(t)

	for _, isDark := range []bool{true, false} {
		th := cfg.Theme(isDark)
		store := NewParticleStore(rand.New(rand.NewSource(7)))
		store.Seed(500, 1200, 800, th)

		if store.Len() != 500 {
			t.Fatalf("Len() = %d, want 500", store.Len())
		}

		idx := 0
		store.Each(func(pos *components.Position, drift *components.Drift, wave *components.Wave, glow *components.Glow) {
			if wave.Index != idx {
				t.Errorf("particle %d has index %d", idx, wave.Index)
			}
			idx++

			if pos.X < 0 || pos.X >= 1200 || pos.Y < 0 || pos.Y >= 800 {
				t.Errorf("position (%v, %v) outside viewport", pos.X, pos.Y)
			}
			if drift.BaseY != pos.Y {
				t.Errorf("BaseY %v != Y %v at seed", drift.BaseY, pos.Y)
			}
			checks := []struct {
				name string
				r    config.Range
				v    float64
			}{
				{"radius", th.Radius, glow.Radius},
				{"vx", th.VelocityX, drift.VX},
				{"vy", th.VelocityY, drift.VY},
				{"wave amplitude", th.WaveAmplitude, wave.Amplitude},
				{"wave speed", th.WaveSpeed, wave.Speed},
				{"opacity", th.InitialOpacity, glow.Opacity},
				{"target opacity", th.InitialTarget, glow.TargetOpacity},
			}
			for _, c := range checks {
				if !c.r.Contains(c.v) {
					t.Errorf("dark=%v %s = %v outside [%v, %v)", isDark, c.name, c.v, c.r.Min, c.r.Max)
				}
			}
			if glow.DrawRadius != glow.Radius {
				t.Errorf("DrawRadius %v != Radius %v at seed", glow.DrawRadius, glow.Radius)
			}
		})
		if idx != 500 {
			t.Errorf("Each visited %d particles, want 500", idx)
		}
	}
}

func TestSeedRangesMatchReference(t *testing.T) {
	cfg := loadConfig(t)

	dark, light := cfg.Theme(true), cfg.Theme(false)
	if dark.Radius != (config.Range{Min: 2, Max: 5}) {
		t.Errorf("dark radius = %+v", dark.Radius)
	}
	if light.Radius != (config.Range{Min: 1.5, Max: 4.5}) {
		t.Errorf("light radius = %+v", light.Radius)
	}
	if dark.VelocityX != (config.Range{Min: -0.2, Max: 0.2}) || dark.VelocityY != (config.Range{Min: -0.1, Max: 0.1}) {
		t.Errorf("dark velocity = %+v / %+v", dark.VelocityX, dark.VelocityY)
	}
	if dark.WaveAmplitude != (config.Range{Min: 15, Max: 50}) || dark.WaveSpeed != (config.Range{Min: 0.015, Max: 0.04}) {
		t.Errorf("dark wave = %+v / %+v", dark.WaveAmplitude, dark.WaveSpeed)
	}
}

func TestSeedDeterministic(t *testing.T) {
	cfg := loadConfig(t)
	th := cfg.Theme(true)

	a := NewParticleStore(rand.New(rand.NewSource(42)))
	b := NewParticleStore(rand.New(rand.NewSource(42)))
	a.Seed(50, 800, 600, th)
	b.Seed(50, 800, 600, th)

	for i := 0; i < 50; i++ {
		pa, _, _, ga := a.At(i)
		pb, _, _, gb := b.At(i)
		if *pa != *pb || *ga != *gb {
			t.Fatalf("particle %d differs between equally seeded stores", i)
		}
	}
}

func TestReseedReplacesPopulation(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))

	darkCount := ParticleCount(1200, 800, cfg.Scene.AreaPerParticle, cfg.Theme(true).CountMultiplier)
	store.Seed(darkCount, 1200, 800, cfg.Theme(true))
	if store.Len() != 96 {
		t.Fatalf("dark Len() = %d, want 96", store.Len())
	}

	lightCount := ParticleCount(1200, 800, cfg.Scene.AreaPerParticle, cfg.Theme(false).CountMultiplier)
	store.Seed(lightCount, 1200, 800, cfg.Theme(false))
	if store.Len() != 144 {
		t.Fatalf("light Len() = %d, want 144", store.Len())
	}

	visited := 0
	store.Each(func(_ *components.Position, _ *components.Drift, _ *components.Wave, glow *components.Glow) {
		visited++
		if !cfg.Theme(false).Radius.Contains(glow.Radius) {
			t.Errorf("radius %v not from the light range", glow.Radius)
		}
	})
	if visited != 144 {
		t.Errorf("Each visited %d particles, want 144", visited)
	}
}

func TestSeedZeroAndClear(t *testing.T) {
	cfg := loadConfig(t)
	store := NewParticleStore(rand.New(rand.NewSource(1)))

	store.Seed(0, 10, 10, cfg.Theme(true))
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}

	store.Seed(10, 100, 100, cfg.Theme(true))
	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", store.Len())
	}
	store.Each(func(*components.Position, *components.Drift, *components.Wave, *components.Glow) {
		t.Error("Each visited a particle after Clear")
	})
}
