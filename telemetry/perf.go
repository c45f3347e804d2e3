// Package telemetry collects frame performance data for the backdrop.
package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for an executed tick.
const (
	PhaseSimulate = "simulate"
	PhaseRender   = "render"
)

// PerfSample holds timing data for a single executed tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing and frame pacing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame pacing, in host milliseconds
	intervals     []float64
	intervalIndex int
	intervalCount int
	lastExecuted  float64
	haveExecuted  bool
	executed      int
	dropped       int
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of executed ticks to aggregate over (e.g., 120 for 2 seconds at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		intervals:     make([]float64, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new executed tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records one display refresh at host time nowMs. Executed
// frames contribute an interval since the previous executed frame; the rest
// count as dropped.
func (p *PerfCollector) RecordFrame(nowMs float64, executed bool) {
	if !executed {
		p.dropped++
		return
	}
	p.executed++
	if p.haveExecuted {
		p.intervals[p.intervalIndex] = nowMs - p.lastExecuted
		p.intervalIndex = (p.intervalIndex + 1) % p.windowSize
		if p.intervalCount < p.windowSize {
			p.intervalCount++
		}
	}
	p.lastExecuted = nowMs
	p.haveExecuted = true
}

// Executed returns the number of executed frames recorded so far.
func (p *PerfCollector) Executed() int {
	return p.executed
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Tick timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total tick time
	PhasePct map[string]float64

	// Throughput if ticks ran back to back
	TicksPerSecond float64

	// Pacing between executed frames
	IntervalMeanMs float64
	IntervalStdMs  float64
	IntervalP95Ms  float64
	FPS            float64

	Executed int
	Dropped  int
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		Executed: p.executed,
		Dropped:  p.dropped,
	}

	if p.intervalCount > 0 {
		window := make([]float64, p.intervalCount)
		copy(window, p.intervals[:p.intervalCount])
		sort.Float64s(window)

		s.IntervalMeanMs, s.IntervalStdMs = stat.MeanStdDev(window, nil)
		if p.intervalCount == 1 {
			s.IntervalStdMs = 0
		}
		s.IntervalP95Ms = stat.Quantile(0.95, stat.Empirical, window, nil)
		if s.IntervalMeanMs > 0 {
			s.FPS = 1000 / s.IntervalMeanMs
		}
	}

	if p.sampleCount == 0 {
		return s
	}

	var totalTick, minTick, maxTick time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		sample := p.samples[i]
		totalTick += sample.TickDuration

		if i == 0 || sample.TickDuration < minTick {
			minTick = sample.TickDuration
		}
		if sample.TickDuration > maxTick {
			maxTick = sample.TickDuration
		}
		for phase, dur := range sample.Phases {
			phaseSum[phase] += dur
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		s.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	s.AvgTickDuration = avgTick
	s.MinTickDuration = minTick
	s.MaxTickDuration = maxTick
	if avgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(avgTick)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("interval_mean_ms", s.IntervalMeanMs),
		slog.Float64("interval_std_ms", s.IntervalStdMs),
		slog.Float64("interval_p95_ms", s.IntervalP95Ms),
		slog.Int("executed", s.Executed),
		slog.Int("dropped", s.Dropped),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range []string{PhaseSimulate, PhaseRender} {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      int     `csv:"window_end"`
	Particles      int     `csv:"particles"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	IntervalMeanMs float64 `csv:"interval_mean_ms"`
	IntervalStdMs  float64 `csv:"interval_std_ms"`
	IntervalP95Ms  float64 `csv:"interval_p95_ms"`
	FPS            float64 `csv:"fps"`
	Executed       int     `csv:"executed"`
	Dropped        int     `csv:"dropped"`
	SimulatePct    float64 `csv:"simulate_pct"`
	RenderPct      float64 `csv:"render_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd, particles int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Particles:      particles,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		IntervalMeanMs: s.IntervalMeanMs,
		IntervalStdMs:  s.IntervalStdMs,
		IntervalP95Ms:  s.IntervalP95Ms,
		FPS:            s.FPS,
		Executed:       s.Executed,
		Dropped:        s.Dropped,
		SimulatePct:    s.PhasePct[PhaseSimulate],
		RenderPct:      s.PhasePct[PhaseRender],
	}
}
