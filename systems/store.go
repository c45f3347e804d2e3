// Package systems provides the particle store and simulation step for the backdrop.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aura/components"
	"github.com/pthm-cable/aura/config"
)

// ParticleCount returns the population size for a viewport: one base particle
// per areaPerParticle square pixels, scaled by the theme multiplier.
// Degenerate viewports yield zero.
func ParticleCount(width, height, areaPerParticle, multiplier float64) int {
	if width <= 0 || height <= 0 || areaPerParticle <= 0 {
		return 0
	}
	base := math.Floor(width * height / areaPerParticle)
	n := math.Floor(base * multiplier)
	if n <= 0 {
		return 0
	}
	return int(n)
}

// ParticleStore owns the particle population as entities of a private ECS world.
// The whole world is replaced on every Seed so no particle survives a reseed.
type ParticleStore struct {
	rng *rand.Rand

	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Drift, components.Wave, components.Glow]
	filter *ecs.Filter4[components.Position, components.Drift, components.Wave, components.Glow]

	posMap   *ecs.Map1[components.Position]
	driftMap *ecs.Map1[components.Drift]
	waveMap  *ecs.Map1[components.Wave]
	glowMap  *ecs.Map1[components.Glow]

	// Seeding order; Wave.Index points into this slice.
	entities []ecs.Entity
}

// NewParticleStore creates an empty store drawing randomness from rng.
func NewParticleStore(rng *rand.Rand) *ParticleStore {
	s := &ParticleStore{rng: rng}
	s.reset()
	return s
}

// reset discards the current world and builds an empty one.
func (s *ParticleStore) reset() {
	world := ecs.NewWorld()
	s.world = world
	s.mapper = ecs.NewMap4[components.Position, components.Drift, components.Wave, components.Glow](world)
	s.filter = ecs.NewFilter4[components.Position, components.Drift, components.Wave, components.Glow](world)
	s.posMap = ecs.NewMap1[components.Position](world)
	s.driftMap = ecs.NewMap1[components.Drift](world)
	s.waveMap = ecs.NewMap1[components.Wave](world)
	s.glowMap = ecs.NewMap1[components.Glow](world)
	s.entities = s.entities[:0]
}

// Rand returns the store's random source.
func (s *ParticleStore) Rand() *rand.Rand {
	return s.rng
}

// Seed replaces the entire population with count freshly randomised particles
// spread uniformly over a width x height viewport.
func (s *ParticleStore) Seed(count int, width, height float64, th *config.ThemeConfig) {
	s.reset()
	if count <= 0 {
		return
	}
	s.entities = make([]ecs.Entity, 0, count)

	rng := s.rng
	for i := 0; i < count; i++ {
		y := rng.Float64() * height
		pos := components.Position{X: rng.Float64() * width, Y: y}
		drift := components.Drift{
			VX:    th.VelocityX.Lerp(rng.Float64()),
			VY:    th.VelocityY.Lerp(rng.Float64()),
			BaseY: y,
		}
		radius := th.Radius.Lerp(rng.Float64())
		glow := components.Glow{
			Radius:        radius,
			DrawRadius:    radius,
			Opacity:       th.InitialOpacity.Lerp(rng.Float64()),
			TargetOpacity: th.InitialTarget.Lerp(rng.Float64()),
		}
		wave := components.Wave{
			Offset:    rng.Float64() * 2 * math.Pi,
			Speed:     th.WaveSpeed.Lerp(rng.Float64()),
			Amplitude: th.WaveAmplitude.Lerp(rng.Float64()),
		}
		glow.PulsePhase = rng.Float64() * 2 * math.Pi

		s.Spawn(pos, drift, wave, glow)
	}
}

// Spawn appends a single particle. Its Wave.Index is set to its seeding order.
func (s *ParticleStore) Spawn(pos components.Position, drift components.Drift, wave components.Wave, glow components.Glow) ecs.Entity {
	wave.Index = len(s.entities)
	e := s.mapper.NewEntity(&pos, &drift, &wave, &glow)
	s.entities = append(s.entities, e)
	return e
}

// Clear drops the population.
func (s *ParticleStore) Clear() {
	s.reset()
}

// Len returns the number of particles.
func (s *ParticleStore) Len() int {
	return len(s.entities)
}

// Each calls fn for every particle in seeding order.
func (s *ParticleStore) Each(fn func(pos *components.Position, drift *components.Drift, wave *components.Wave, glow *components.Glow)) {
	query := s.filter.Query()
	for query.Next() {
		pos, drift, wave, glow := query.Get()
		fn(pos, drift, wave, glow)
	}
}

// At returns the components of the i-th seeded particle.
func (s *ParticleStore) At(i int) (*components.Position, *components.Drift, *components.Wave, *components.Glow) {
	e := s.entities[i]
	return s.posMap.Get(e), s.driftMap.Get(e), s.waveMap.Get(e), s.glowMap.Get(e)
}
