package sim

import "time"

// Option configures a Simulator at construction, the same functional-option
// shape as the teacher's graph.Option / engineConfig.
type Option func(*config)

// config collects options before they're applied to a Simulator. The
// indirection lets New validate and compose options before committing them.
type config struct {
	maxCascadeSteps   int
	wallClockBudget   time.Duration
	eventQueueCap     int
	metrics           *SchedulerMetrics
	prometheusMetrics *PrometheusMetrics
	runID             string
}

func defaultConfig() config {
	return config{
		maxCascadeSteps: 10000,
		eventQueueCap:   256,
	}
}

// WithMaxCascadeSteps bounds how many consecutive steps at an identical
// simulated time value (as judged by the domain's Equal) ExecUntil runs
// before it gives up with ErrCascadeLimitExceeded. ExecNextEvent does not
// check this bound. In a superdense domain successive micro-steps differ in
// their sequence component, so a cascade that advances only that component
// is not counted.
//
// Default: 10000. A coupling cycle that never lets ta() return a strictly
// positive advance is a model bug (spec §4.4 "Tie-breaking"); this option
// turns that bug into a reported error instead of a hang.
func WithMaxCascadeSteps(n int) Option {
	return func(c *config) { c.maxCascadeSteps = n }
}

// WithWallClockBudget bounds the real (wall-clock) time ExecUntil is allowed
// to spend before returning ErrWallClockBudgetExceeded, independent of how
// far simulated time has advanced. Zero (the default) means no bound.
func WithWallClockBudget(d time.Duration) Option {
	return func(c *config) { c.wallClockBudget = d }
}

// WithEventQueueCapacity sets the initial capacity of every atomic model's
// input and output bags. The imminent-event frontier itself is not
// pre-sized by it.
//
// Default: 256.
func WithEventQueueCapacity(n int) Option {
	return func(c *config) { c.eventQueueCap = n }
}

// WithMetrics attaches a SchedulerMetrics snapshot collector, updated after
// every step.
func WithMetrics(m *SchedulerMetrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithPrometheusMetrics attaches Prometheus-backed metrics collection,
// registered with the given PrometheusMetrics instance.
func WithPrometheusMetrics(pm *PrometheusMetrics) Option {
	return func(c *config) { c.prometheusMetrics = pm }
}

// WithRunID sets the run identifier used as the Prometheus/OTel run_id
// label and the emit.Event.RunID field. If not set, New generates one with
// uuid.NewString().
func WithRunID(id string) Option {
	return func(c *config) { c.runID = id }
}
