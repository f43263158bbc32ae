package sim

import (
	"time"

	"github.com/dshills/devs-go/devs"
	"github.com/dshills/devs-go/devs/emit"
	"github.com/dshills/devs-go/devs/model"
	"github.com/dshills/devs-go/devs/queue"
	"github.com/dshills/devs-go/devs/route"
)

// modelState tracks per-atomic bookkeeping the scheduler needs between
// steps: its reusable input/output bags (spec §4.4 "Bag discipline") and
// the simulated time its last transition committed at, used to compute the
// elapsed argument to DeltaExt.
type modelState[V any, T any] struct {
	atomic   model.Atomic[V, T]
	inBag    *devs.Bag[V]
	outBag   *devs.Bag[V]
	lastTime T
}

// scheduler implements the step algorithm of spec §4.4 over a flattened
// view of the model tree: a Frontier keyed by model ID, a Router giving the
// coupling closure, and a flat index of every atomic leaf and coupled
// Digraph currently in the tree.
type scheduler[V any, T any] struct {
	domain devs.Domain[T]
	root   model.Component[V, T]
	router *route.Router[V, T]
	queue  *queue.Frontier[T]

	atomics  map[string]*modelState[V, T]
	mutables []model.MutableComponent[V, T]

	listeners []emit.Listener[V, T]
	events    []emit.Event[V, T]

	cfg   config
	runID string
	step  int

	metrics *SchedulerMetrics
	prom    *PrometheusMetrics
}

func newScheduler[V any, T any](domain devs.Domain[T], root model.Component[V, T], cfg config, runID string) *scheduler[V, T] {
	s := &scheduler[V, T]{
		domain:  domain,
		root:    root,
		queue:   queue.New[T](domain),
		atomics: make(map[string]*modelState[V, T]),
		cfg:     cfg,
		runID:   runID,
		metrics: cfg.metrics,
		prom:    cfg.prometheusMetrics,
	}

	coupledRoot, ok := root.(model.Coupled[V, T])
	if !ok {
		// A bare atomic root (spec §6: "Hand the root model (atomic or
		// coupled) to a simulator constructor") is wrapped in a synthetic
		// top-level Digraph so the Router always has a Coupled to walk.
		wrapper := model.NewDigraph[V, T]("root")
		atomicRoot := root.(model.Atomic[V, T])
		wrapper.AddAtomicNow(atomicRoot)
		coupledRoot = wrapper
		s.root = wrapper
	}

	s.router = route.NewRouter[V, T](coupledRoot)
	s.collect(s.root)
	s.enqueueAll()
	return s
}

// collect walks the (possibly just-mutated) model tree, populating the flat
// atomic index and the list of mutable coupled components (Digraphs, or a
// Network that also buffers its own structural mutations) the scheduler
// dispatches through. MutableComponent is checked before Network because a
// self-mutating Network satisfies both.
func (s *scheduler[V, T]) collect(c model.Component[V, T]) {
	switch n := c.(type) {
	case model.MutableComponent[V, T]:
		s.mutables = append(s.mutables, n)
		for _, child := range n.Children() {
			s.collect(child)
		}
	case model.Network[V, T]:
		for _, child := range n.Children() {
			s.collect(child)
		}
	case model.Atomic[V, T]:
		if _, ok := s.atomics[n.ID()]; ok {
			return
		}
		s.atomics[n.ID()] = &modelState[V, T]{
			atomic: n,
			inBag:  devs.NewBag[V](s.cfg.eventQueueCap),
			outBag: devs.NewBag[V](s.cfg.eventQueueCap),
		}
	}
}

func (s *scheduler[V, T]) enqueueAll() {
	for id, ms := range s.atomics {
		ms.lastTime = s.domain.Zero()
		s.queue.Upsert(id, ms.atomic.TA())
	}
}

// nextEventTime implements spec §4.3 next_event_time().
func (s *scheduler[V, T]) nextEventTime() T {
	return s.queue.NextEventTime(s.domain)
}

// stepOutcome carries the observable result of one scheduler step, for the
// Simulator facade to report back to the caller and for the listener
// notification pass.
type stepOutcome[V any, T any] struct {
	time       T
	imminents  []string
	deliveries map[string][]devs.PinValue[V]
	mutations  int
	cascaded   bool
}

// step runs one full step of the algorithm in spec §4.4, at time t, treating
// injected as additional externally-delivered input merged into the step's
// receiver classification (step 4). injected may be nil for a pure internal
// step driven by ExecNextEvent.
func (s *scheduler[V, T]) step(t T, injected map[string][]devs.PinValue[V]) stepOutcome[V, T] {
	start := time.Now()
	s.step++

	imminents := s.queue.Imminent(t, s.domain)
	deliveries := make(map[string][]devs.PinValue[V])
	for id, vs := range injected {
		deliveries[id] = append(deliveries[id], vs...)
	}

	// Step 2: generate outputs, and step 3: route them.
	for _, id := range imminents {
		ms := s.atomics[id]
		ms.outBag.Clear()
		ms.atomic.Lambda(ms.outBag)
		for _, pv := range ms.outBag.Values() {
			s.notify(emit.Event[V, T]{Kind: emit.Output, ModelID: id, Pin: pv.Pin, Value: pv.Value, Time: t})
			s.route(pv, deliveries)
		}
	}

	imminentSet := make(map[string]bool, len(imminents))
	for _, id := range imminents {
		imminentSet[id] = true
	}

	// Step 4 + 5: classify and fire transitions.
	confluent := make(map[string]bool)
	for id, vs := range deliveries {
		ms, ok := s.atomics[id]
		if !ok {
			continue
		}
		ms.inBag.Clear()
		for _, pv := range vs {
			ms.inBag.Append(pv)
			s.notify(emit.Event[V, T]{Kind: emit.Input, ModelID: id, Pin: pv.Pin, Value: pv.Value, Time: t})
		}
		if imminentSet[id] {
			ms.atomic.DeltaConf(ms.inBag)
			confluent[id] = true
		} else {
			elapsed := s.domain.Sub(t, ms.lastTime)
			ms.atomic.DeltaExt(elapsed, ms.inBag)
		}
		s.notify(emit.Event[V, T]{Kind: emit.StateChange, ModelID: id, Time: t})
		ms.lastTime = t
	}
	for _, id := range imminents {
		if confluent[id] {
			continue
		}
		ms := s.atomics[id]
		ms.atomic.DeltaInt()
		s.notify(emit.Event[V, T]{Kind: emit.StateChange, ModelID: id, Time: t})
		ms.lastTime = t
	}

	// Step 6: re-key the queue for every model that transitioned.
	for id := range deliveries {
		if ms, ok := s.atomics[id]; ok {
			s.queue.Upsert(id, s.domain.Add(ms.lastTime, ms.atomic.TA()))
		}
	}
	for _, id := range imminents {
		ms := s.atomics[id]
		s.queue.Upsert(id, s.domain.Add(ms.lastTime, ms.atomic.TA()))
	}

	// Step 8: structural mutation, applied atomically between steps.
	mutations := s.applyMutations(t)

	latency := time.Since(start)
	cascaded := s.domain.Equal(s.domain.Sub(s.nextEventTime(), t), s.domain.Zero())
	if s.metrics != nil {
		s.metrics.recordStep(len(imminents), latency, cascaded)
		if mutations > 0 {
			s.metrics.recordMutation(mutations)
		}
	}
	if s.prom != nil {
		s.prom.recordStep(s.runID, s.queue.Len(), len(imminents), latency, cascaded)
		if mutations > 0 {
			s.prom.recordMutation(s.runID, mutations)
		}
	}

	return stepOutcome[V, T]{time: t, imminents: imminents, deliveries: deliveries, mutations: mutations, cascaded: cascaded}
}

// route resolves one produced (pin, value) to its terminal receivers via
// the Router's coupling closure, merging into per-receiver delivery lists.
func (s *scheduler[V, T]) route(pv devs.PinValue[V], deliveries map[string][]devs.PinValue[V]) {
	targets := s.router.Fanout(pv.Pin)
	for _, target := range targets {
		if target.IsNetwork {
			network, ok := target.Owner.(model.Network[V, T])
			if !ok {
				continue
			}
			for _, d := range network.Route(pv.Value, target.Pin, network) {
				deliveries[d.Child.ID()] = append(deliveries[d.Child.ID()], d.Value)
			}
			continue
		}
		if atom, ok := target.Owner.(model.Atomic[V, T]); ok {
			deliveries[atom.ID()] = append(deliveries[atom.ID()], devs.PinValue[V]{Pin: target.Pin, Value: pv.Value})
		}
	}
}

// applyMutations runs step 8: every Digraph's buffered mutations are
// applied in the single quiescent phase between steps (spec §4.6). Added
// atomics are enqueued at t + ta(); removed atomics are purged from the
// queue and the flat index. Any structural change invalidates the Router's
// memoized closure.
func (s *scheduler[V, T]) applyMutations(t T) int {
	changed := false
	count := 0
	for _, d := range s.mutables {
		if !d.HasPendingMutations() {
			continue
		}
		added, removed := d.ApplyMutations()
		changed = changed || len(added) > 0 || len(removed) > 0
		count += len(added) + len(removed)

		for _, c := range added {
			s.collect(c)
			s.initAdded(c, t)
		}
		for _, c := range removed {
			s.removeSubtree(c)
		}
	}
	if changed {
		s.router.Rebuild()
	}
	return count
}

// initAdded recursively enqueues every atomic leaf within a newly added
// subtree at t + ta(), with t_last set to the mutation time (spec §4.6
// "Added sub-trees").
func (s *scheduler[V, T]) initAdded(c model.Component[V, T], t T) {
	switch n := c.(type) {
	case model.MutableComponent[V, T]:
		for _, child := range n.Children() {
			s.initAdded(child, t)
		}
	case model.Network[V, T]:
		for _, child := range n.Children() {
			s.initAdded(child, t)
		}
	case model.Atomic[V, T]:
		ms := s.atomics[n.ID()]
		ms.lastTime = t
		s.queue.Upsert(n.ID(), s.domain.Add(t, n.TA()))
	}
}

// removeSubtree purges every atomic leaf within a removed subtree from the
// queue and the flat index (spec §4.6 "Removed sub-trees").
func (s *scheduler[V, T]) removeSubtree(c model.Component[V, T]) {
	switch n := c.(type) {
	case model.MutableComponent[V, T]:
		for i, d := range s.mutables {
			if d == n {
				s.mutables = append(s.mutables[:i], s.mutables[i+1:]...)
				break
			}
		}
		for _, child := range n.Children() {
			s.removeSubtree(child)
		}
	case model.Network[V, T]:
		for _, child := range n.Children() {
			s.removeSubtree(child)
		}
	case model.Atomic[V, T]:
		s.queue.Remove(n.ID())
		delete(s.atomics, n.ID())
	}
}

func (s *scheduler[V, T]) notify(e emit.Event[V, T]) {
	e.RunID = s.runID
	e.Step = s.step
	s.events = append(s.events, e)
}

// flushEvents delivers every event buffered during the most recent step to
// every registered listener, in registration order, then clears the
// buffer (spec §4.10 "invoked synchronously within the step after all
// transitions complete").
func (s *scheduler[V, T]) flushEvents() {
	if len(s.events) == 0 {
		return
	}
	for _, l := range s.listeners {
		for _, e := range s.events {
			l.Notify(e)
		}
	}
	s.events = s.events[:0]
}

func (s *scheduler[V, T]) addListener(l emit.Listener[V, T]) {
	s.listeners = append(s.listeners, l)
}

func (s *scheduler[V, T]) removeListener(l emit.Listener[V, T]) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}
