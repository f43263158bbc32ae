package sim

import (
	"testing"
	"time"

	"github.com/dshills/devs-go/devs"
	"github.com/dshills/devs-go/devs/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.maxCascadeSteps != 10000 {
		t.Errorf("default maxCascadeSteps = %d, want 10000", cfg.maxCascadeSteps)
	}
	if cfg.eventQueueCap != 256 {
		t.Errorf("default eventQueueCap = %d, want 256", cfg.eventQueueCap)
	}
	if cfg.wallClockBudget != 0 {
		t.Errorf("default wallClockBudget = %v, want 0", cfg.wallClockBudget)
	}
}

func TestOptionsApplyOverDefaults(t *testing.T) {
	cfg := defaultConfig()
	opts := []Option{
		WithMaxCascadeSteps(5),
		WithWallClockBudget(2 * time.Second),
		WithEventQueueCapacity(64),
		WithRunID("fixed-run"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.maxCascadeSteps != 5 {
		t.Errorf("maxCascadeSteps = %d, want 5", cfg.maxCascadeSteps)
	}
	if cfg.wallClockBudget != 2*time.Second {
		t.Errorf("wallClockBudget = %v, want 2s", cfg.wallClockBudget)
	}
	if cfg.eventQueueCap != 64 {
		t.Errorf("eventQueueCap = %d, want 64", cfg.eventQueueCap)
	}
	if cfg.runID != "fixed-run" {
		t.Errorf("runID = %q, want %q", cfg.runID, "fixed-run")
	}
}

func TestWithRunIDIsHonoredByNew(t *testing.T) {
	domain := devs.NewDoubleDomain()
	a := &pinger[float64]{id: "A", domain: domain, oneUnit: 1, active: true}
	root := model.NewDigraph[string, float64]("opts")
	root.AddAtomicNow(a)

	s := New[string, float64](domain, root, WithRunID("explicit-id"))
	if s.RunID() != "explicit-id" {
		t.Errorf("RunID() = %q, want %q", s.RunID(), "explicit-id")
	}
}

func TestNewGeneratesRunIDWhenUnset(t *testing.T) {
	domain := devs.NewDoubleDomain()
	a := &pinger[float64]{id: "A", domain: domain, oneUnit: 1, active: true}
	root := model.NewDigraph[string, float64]("opts-auto")
	root.AddAtomicNow(a)

	s := New[string, float64](domain, root)
	if s.RunID() == "" {
		t.Error("RunID() is empty, want a generated identifier")
	}
}
