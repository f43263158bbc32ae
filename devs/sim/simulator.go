// Package sim implements the Simulator Facade and Discrete Scheduler Step
// Algorithm (spec §4.3, §4.4): the single entry point host code drives a
// model tree through, built the same way the teacher's graph.Engine drives
// a workflow graph — functional options, a buffered listener surface, and
// optional Prometheus instrumentation — generalized to DEVS's atomic/
// coupled/network model contracts instead of node/edge workflow state.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/devs-go/devs"
	"github.com/dshills/devs-go/devs/emit"
	"github.com/dshills/devs-go/devs/model"
)

// Simulator is the facade of spec §4.3, driving a model tree rooted at an
// atomic or coupled model through the discrete scheduler step algorithm.
// A Simulator is not safe for concurrent use (spec §5 "Scheduling model").
type Simulator[V any, T any] struct {
	sched *scheduler[V, T]
}

// New constructs a Simulator over the given root model (atomic or coupled),
// using domain for all time arithmetic and comparisons.
func New[V any, T any](domain devs.Domain[T], root model.Component[V, T], opts ...Option) *Simulator[V, T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	runID := cfg.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Simulator[V, T]{sched: newScheduler[V, T](domain, root, cfg, runID)}
}

// RunID returns the identifier used to label this run's metrics and events.
func (s *Simulator[V, T]) RunID() string { return s.sched.runID }

// AddEventListener registers a listener, invoked synchronously after every
// step in registration order (spec §4.10).
func (s *Simulator[V, T]) AddEventListener(l emit.Listener[V, T]) {
	s.sched.addListener(l)
}

// RemoveEventListener unregisters a previously added listener.
func (s *Simulator[V, T]) RemoveEventListener(l emit.Listener[V, T]) {
	s.sched.removeListener(l)
}

// NextEventTime returns the minimum t_next across all alive atomic leaves,
// or the domain's Inf value if none are pending (spec §4.3).
func (s *Simulator[V, T]) NextEventTime() T {
	return s.sched.nextEventTime()
}

// ExecNextEvent advances the clock to NextEventTime and runs one full
// scheduler step there, returning the new clock value.
func (s *Simulator[V, T]) ExecNextEvent() T {
	t := s.sched.nextEventTime()
	s.sched.step(t, nil)
	s.sched.flushEvents()
	return t
}

// ComputeNextOutput runs only the output phase (step 2 of spec §4.4) of the
// upcoming step at NextEventTime, without committing any transition or
// re-keying the queue — used by callers that need to inspect outputs
// before deciding whether to let the step commit.
func (s *Simulator[V, T]) ComputeNextOutput() map[string][]devs.PinValue[V] {
	t := s.sched.nextEventTime()
	imminents := s.sched.queue.Imminent(t, s.sched.domain)
	deliveries := make(map[string][]devs.PinValue[V])
	for _, id := range imminents {
		ms := s.sched.atomics[id]
		ms.outBag.Clear()
		ms.atomic.Lambda(ms.outBag)
		for _, pv := range ms.outBag.Values() {
			s.sched.route(pv, deliveries)
		}
	}
	return deliveries
}

// ComputeNextState advances to tInject, treating injected as externally
// delivered input that fires external/confluent transitions at tInject
// (spec §4.3 compute_next_state(injected, t_inject)). tInject must be
// <= NextEventTime(), else ErrLateInjection is returned.
func (s *Simulator[V, T]) ComputeNextState(injected map[string][]devs.PinValue[V], tInject T) (T, error) {
	next := s.sched.nextEventTime()
	if s.sched.domain.Less(next, tInject) {
		return s.sched.domain.Zero(), newSimError(ErrLateInjection, "", s.sched.step, formatTime(tInject))
	}
	s.sched.step(tInject, injected)
	s.sched.flushEvents()
	return tInject, nil
}

// InjectInput delivers a single value to a pin as externally-injected
// input, immediately committing the step it causes at t (the incremental
// interface used by co-simulation, spec §4.3). It is equivalent to calling
// ComputeNextState with a single-entry injected bag resolved through the
// Router's closure.
func (s *Simulator[V, T]) InjectInput(pv devs.PinValue[V], t T) error {
	next := s.sched.nextEventTime()
	if s.sched.domain.Less(next, t) {
		return newSimError(ErrLateInjection, "", s.sched.step, formatTime(t))
	}
	injected := make(map[string][]devs.PinValue[V])
	s.sched.route(pv, injected)
	s.sched.step(t, injected)
	s.sched.flushEvents()
	return nil
}

// SetNextTime forces a model's queue entry to a specific next time,
// bypassing its own TA() for one scheduling round — part of the
// incremental co-simulation interface (spec §4.3).
func (s *Simulator[V, T]) SetNextTime(modelID string, t T) {
	if s.sched.queue.Has(modelID) {
		s.sched.queue.Upsert(modelID, t)
	}
}

// ExecUntil repeatedly calls ExecNextEvent until NextEventTime() exceeds
// tStop, returning the clock value of the last event executed (spec §5
// "Cancellation and timeouts": no in-flight step is aborted). It honors
// WithMaxCascadeSteps to guard against an unbounded zero-duration cascade
// and WithWallClockBudget to bound real time spent, independent of
// simulated time.
func (s *Simulator[V, T]) ExecUntil(ctx context.Context, tStop T) (T, error) {
	start := time.Now()
	cascadeRun := 0
	lastT := s.sched.domain.Zero()
	haveLast := false

	for {
		if err := ctx.Err(); err != nil {
			return lastT, err
		}
		next := s.sched.nextEventTime()
		if s.sched.domain.Equal(next, s.sched.domain.Inf()) || s.sched.domain.Less(tStop, next) {
			break
		}
		if s.sched.cfg.wallClockBudget > 0 && time.Since(start) > s.sched.cfg.wallClockBudget {
			return lastT, ErrWallClockBudgetExceeded
		}

		if haveLast && s.sched.domain.Equal(next, lastT) {
			cascadeRun++
			if cascadeRun > s.sched.cfg.maxCascadeSteps {
				return lastT, newSimError(ErrCascadeLimitExceeded, "", s.sched.step, formatTime(next))
			}
		} else {
			cascadeRun = 0
		}

		t := s.ExecNextEvent()
		lastT = t
		haveLast = true
	}
	return lastT, nil
}

// Metrics returns the in-process scheduler metrics snapshot attached via
// WithMetrics, or nil if none was configured.
func (s *Simulator[V, T]) Metrics() *SchedulerMetrics {
	return s.sched.metrics
}

func formatTime[T any](t T) string {
	return fmt.Sprintf("%v", t)
}
