package sim

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SchedulerMetrics is a plain in-process snapshot of scheduler activity,
// mirroring the teacher's SchedulerMetrics/Frontier.Metrics() shape. It has
// no external dependency and is always safe to attach via WithMetrics.
type SchedulerMetrics struct {
	mu sync.RWMutex

	Steps              int64
	ImminentCount      int64
	CascadeSteps       int64
	StructuralMutations int64
	LastStepLatency    time.Duration
}

func (m *SchedulerMetrics) recordStep(imminents int, latency time.Duration, cascaded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Steps++
	m.ImminentCount = int64(imminents)
	m.LastStepLatency = latency
	if cascaded {
		m.CascadeSteps++
	}
}

func (m *SchedulerMetrics) recordMutation(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StructuralMutations += int64(n)
}

// Snapshot returns a copy of the current counters, safe for concurrent read
// while the simulator (which is otherwise single-threaded per spec §5) is
// between calls.
func (m *SchedulerMetrics) Snapshot() SchedulerMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return SchedulerMetrics{
		Steps:               m.Steps,
		ImminentCount:       m.ImminentCount,
		CascadeSteps:        m.CascadeSteps,
		StructuralMutations: m.StructuralMutations,
		LastStepLatency:     m.LastStepLatency,
	}
}

// PrometheusMetrics registers and maintains Prometheus-compatible gauges,
// histograms, and counters for scheduler activity, the same way the
// teacher's graph.PrometheusMetrics instruments workflow execution.
//
// Metrics exposed (all namespaced with "devs_"):
//
//  1. queue_depth (gauge): number of models currently enqueued in the
//     event frontier. Labels: run_id.
//  2. imminent_set_size (gauge): size of the imminent set in the most
//     recent step. Labels: run_id.
//  3. step_latency_seconds (histogram): wall-clock duration of a single
//     scheduler step. Labels: run_id.
//  4. structural_mutations_total (counter): cumulative add/remove
//     operations applied between steps. Labels: run_id.
//  5. cascade_steps_total (counter): cumulative steps after which the next
//     event falls at the very same simulated time value (a superdense
//     micro-step, which differs in its sequence component, is not counted).
//     Labels: run_id.
type PrometheusMetrics struct {
	queueDepth      *prometheus.GaugeVec
	imminentSetSize *prometheus.GaugeVec
	stepLatency     *prometheus.HistogramVec
	mutations       *prometheus.CounterVec
	cascadeSteps    *prometheus.CounterVec

	registry prometheus.Registerer
}

// NewPrometheusMetrics creates and registers every scheduler metric with
// the given registry. Pass prometheus.DefaultRegisterer for the global
// registry, or a fresh prometheus.NewRegistry() for test isolation.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	pm := &PrometheusMetrics{registry: registry}

	pm.queueDepth = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "devs",
		Name:      "queue_depth",
		Help:      "Number of models currently enqueued in the event frontier.",
	}, []string{"run_id"})

	pm.imminentSetSize = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "devs",
		Name:      "imminent_set_size",
		Help:      "Size of the imminent set in the most recent scheduler step.",
	}, []string{"run_id"})

	pm.stepLatency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "devs",
		Name:      "step_latency_seconds",
		Help:      "Wall-clock duration of a single scheduler step.",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"run_id"})

	pm.mutations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devs",
		Name:      "structural_mutations_total",
		Help:      "Cumulative structural mutations (add/remove) applied between steps.",
	}, []string{"run_id"})

	pm.cascadeSteps = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "devs",
		Name:      "cascade_steps_total",
		Help:      "Cumulative zero-duration re-steps at the same real simulated time.",
	}, []string{"run_id"})

	return pm
}

func (pm *PrometheusMetrics) recordStep(runID string, queueDepth, imminents int, latency time.Duration, cascaded bool) {
	pm.queueDepth.WithLabelValues(runID).Set(float64(queueDepth))
	pm.imminentSetSize.WithLabelValues(runID).Set(float64(imminents))
	pm.stepLatency.WithLabelValues(runID).Observe(latency.Seconds())
	if cascaded {
		pm.cascadeSteps.WithLabelValues(runID).Inc()
	}
}

func (pm *PrometheusMetrics) recordMutation(runID string, n int) {
	pm.mutations.WithLabelValues(runID).Add(float64(n))
}
