package game

import (
	"context"
	"math"
	"time"
)

// State is the scheduler lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Scheduler throttles display refreshes down to a target tick rate.
// Each refresh either runs one tick or is dropped; the remainder of the
// elapsed time is carried so the average rate does not drift.
type Scheduler struct {
	interval float64 // ms
	tick     func()
	observe  func(now float64, executed bool)

	state    State
	last     float64
	executed int
	dropped  int
}

// frameEpsilon absorbs float rounding when refreshes land exactly one
// interval apart, e.g. a 60 Hz display driving a 60 fps target.
const frameEpsilon = 1e-6 // ms

// NewScheduler creates an idle scheduler running tick at most once per interval ms.
func NewScheduler(interval float64, tick func()) *Scheduler {
	return &Scheduler{interval: interval, tick: tick}
}

// Observe registers fn to see every refresh handled while running.
func (s *Scheduler) Observe(fn func(now float64, executed bool)) {
	s.observe = fn
}

// Start moves an idle scheduler to Running. The first refresh at or after
// one interval from time zero executes.
func (s *Scheduler) Start() {
	if s.state == Idle {
		s.state = Running
	}
}

// Frame handles one display refresh at host time now (ms). It reports
// whether a tick ran.
func (s *Scheduler) Frame(now float64) bool {
	if s.state != Running {
		return false
	}

	delta := now - s.last
	if delta+frameEpsilon < s.interval {
		s.dropped++
		s.notify(now, false)
		return false
	}

	rem := math.Mod(delta, s.interval)
	if rem > s.interval-frameEpsilon {
		rem = 0
	}
	s.last = now - rem
	s.executed++
	s.tick()
	s.notify(now, true)
	return true
}

func (s *Scheduler) notify(now float64, executed bool) {
	if s.observe != nil {
		s.observe(now, executed)
	}
}

// Pause stops ticks without tearing anything down.
func (s *Scheduler) Pause() {
	if s.state == Running {
		s.state = Paused
	}
}

// Resume continues a paused scheduler. Elapsed pause time is not replayed:
// the next refresh runs one tick at most.
func (s *Scheduler) Resume() {
	if s.state == Paused {
		s.state = Running
	}
}

// Cancel stops the scheduler for good. Safe to call repeatedly.
func (s *Scheduler) Cancel() {
	s.state = Stopped
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Interval returns the target interval in ms.
func (s *Scheduler) Interval() float64 {
	return s.interval
}

// Executed returns the number of ticks run.
func (s *Scheduler) Executed() int {
	return s.executed
}

// Dropped returns the number of refreshes skipped.
func (s *Scheduler) Dropped() int {
	return s.dropped
}

// Pacer delivers display refresh timestamps in ms.
type Pacer interface {
	Next(ctx context.Context) (float64, error)
}

// Run starts the scheduler and feeds it refreshes from pacer until Cancel.
// It returns nil after Cancel, otherwise the context or pacer error.
func (s *Scheduler) Run(ctx context.Context, pacer Pacer) error {
	s.Start()
	for s.state != Stopped {
		now, err := pacer.Next(ctx)
		if err != nil {
			if s.state == Stopped {
				return nil
			}
			return err
		}
		s.Frame(now)
	}
	return nil
}

// TickerPacer emits refreshes at a fixed rate from a time.Ticker.
type TickerPacer struct {
	ticker *time.Ticker
	start  time.Time
}

// NewTickerPacer creates a pacer refreshing hz times per second.
func NewTickerPacer(hz float64) *TickerPacer {
	if hz <= 0 {
		hz = 60
	}
	period := time.Duration(float64(time.Second) / hz)
	return &TickerPacer{ticker: time.NewTicker(period), start: time.Now()}
}

// Next blocks until the next refresh and returns ms since the pacer started.
func (p *TickerPacer) Next(ctx context.Context) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case t := <-p.ticker.C:
		return float64(t.Sub(p.start)) / float64(time.Millisecond), nil
	}
}

// Stop releases the ticker.
func (p *TickerPacer) Stop() {
	p.ticker.Stop()
}
