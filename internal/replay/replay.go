// Package replay records the calls a frame driver makes into a runner
// simulation and plays them back. Because the simulation is deterministic,
// replaying a trace reproduces the recorded run exactly.
package replay

import (
	"fmt"
	"time"

	"github.com/vovakirdan/neon-runner/internal/config"
	"github.com/vovakirdan/neon-runner/internal/runner"
)

// Kind identifies a recorded call.
type Kind string

const (
	KindAdvance Kind = "advance"
	KindJump    Kind = "jump"
	KindReset   Kind = "reset"
	KindResize  Kind = "resize"
)

// Event is one recorded call. Delta is set for advance events, Field for resize events.
type Event struct {
	Kind  Kind
	Delta time.Duration
	Field runner.Field
}

// Trace is everything needed to rebuild a run.
type Trace struct {
	Config config.RunnerConfig
	Field  runner.Field // Field at the start of the recording
	Events []Event
}

// Duration returns the wall-clock time covered by the recorded advance events.
func (t Trace) Duration() time.Duration {
	var total time.Duration
	for _, e := range t.Events {
		if e.Kind == KindAdvance && e.Delta > 0 {
			total += e.Delta
		}
	}
	return total
}

// Recorder forwards driver calls to a simulation and records them.
type Recorder struct {
	sim   *runner.Sim
	trace Trace
}

// NewRecorder creates a fresh simulation and starts recording it.
func NewRecorder(cfg config.RunnerConfig, field runner.Field) (*Recorder, error) {
	sim, err := runner.New(cfg, field)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		sim: sim,
		trace: Trace{
			Config: cfg,
			Field:  field,
			Events: make([]Event, 0, 1024),
		},
	}, nil
}

// Sim returns the recorded simulation for read access.
func (r *Recorder) Sim() *runner.Sim {
	return r.sim
}

// Advance records and forwards an advance. Calls that cannot change state
// (non-positive delta, or the run is over) are forwarded but not recorded.
func (r *Recorder) Advance(dt time.Duration) {
	if dt > 0 && !r.sim.GameOver() {
		r.trace.Events = append(r.trace.Events, Event{Kind: KindAdvance, Delta: dt})
	}
	r.sim.Advance(dt)
}

// Jump records and forwards a jump.
func (r *Recorder) Jump() {
	r.trace.Events = append(r.trace.Events, Event{Kind: KindJump})
	r.sim.Jump()
}

// Reset records and forwards a reset.
func (r *Recorder) Reset() {
	r.trace.Events = append(r.trace.Events, Event{Kind: KindReset})
	r.sim.Reset()
}

// Resize forwards a resize and records it if the simulation accepted it.
func (r *Recorder) Resize(field runner.Field) error {
	if err := r.sim.Resize(field); err != nil {
		return err
	}
	r.trace.Events = append(r.trace.Events, Event{Kind: KindResize, Field: field})
	return nil
}

// Trace returns a copy of the recording so far.
func (r *Recorder) Trace() Trace {
	t := r.trace
	t.Events = append([]Event(nil), r.trace.Events...)
	return t
}

// Play rebuilds a simulation from a trace.
func Play(t Trace) (*runner.Sim, error) {
	sim, err := runner.New(t.Config, t.Field)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	for i, e := range t.Events {
		if err := apply(sim, e); err != nil {
			return nil, fmt.Errorf("replay: event %d: %w", i, err)
		}
	}
	return sim, nil
}

// apply performs one recorded call.
func apply(sim *runner.Sim, e Event) error {
	switch e.Kind {
	case KindAdvance:
		sim.Advance(e.Delta)
	case KindJump:
		sim.Jump()
	case KindReset:
		sim.Reset()
	case KindResize:
		return sim.Resize(e.Field)
	default:
		return fmt.Errorf("unknown kind %q", e.Kind)
	}
	return nil
}

// Summary describes the outcome of a replayed trace.
type Summary struct {
	Phase    runner.Phase
	Score    int // Score of the final run
	Best     int // Highest score reached by any run in the trace
	Speed    float64
	Elapsed  time.Duration // Simulated time of the final run
	Duration time.Duration // Wall-clock time covered by the trace
	Events   int
	Jumps    int // Jumps that left the ground
	Runs     int // Runs in the trace, counting restarts
}

// Summarize replays a trace and reports its final state.
func Summarize(t Trace) (Summary, error) {
	sim, err := runner.New(t.Config, t.Field)
	if err != nil {
		return Summary{}, fmt.Errorf("replay: %w", err)
	}

	sum := Summary{Runs: 1, Events: len(t.Events), Duration: t.Duration()}
	for i, e := range t.Events {
		sum.Best = max(sum.Best, sim.Score())
		switch {
		case e.Kind == KindReset, e.Kind == KindResize:
			sum.Runs++
		case e.Kind == KindJump && sim.GameOver():
			sum.Runs++
		case e.Kind == KindJump && !sim.Character().Airborne:
			sum.Jumps++
		}
		if err := apply(sim, e); err != nil {
			return Summary{}, fmt.Errorf("replay: event %d: %w", i, err)
		}
	}

	sum.Phase = sim.Phase()
	sum.Score = sim.Score()
	sum.Best = max(sum.Best, sim.Score())
	sum.Speed = sim.Speed()
	sum.Elapsed = sim.Elapsed()
	return sum, nil
}
