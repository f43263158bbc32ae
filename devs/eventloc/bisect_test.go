package eventloc

import (
	"math"
	"testing"
)

// linearZero is z(q) = q[0] - threshold, a single watched condition whose
// crossing fraction is exactly known for a linear interpolation between two
// samples.
func linearZero(threshold float64) ZeroFunc {
	return func(q, out []float64) { out[0] = q[0] - threshold }
}

func TestBisectLocatesSingleCrossing(t *testing.T) {
	b := NewBisect(1e-9, 64)
	qStart := []float64{0}
	qEnd := []float64{10}

	crossings, err := b.Locate(linearZero(4), qStart, qEnd)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(crossings) != 1 {
		t.Fatalf("Locate found %d crossings, want 1", len(crossings))
	}
	if diff := math.Abs(crossings[0].Fraction - 0.4); diff > 1e-6 {
		t.Fatalf("Fraction = %v, want near 0.4 (diff %v)", crossings[0].Fraction, diff)
	}
}

func TestBisectNoCrossingWhenNoSignChange(t *testing.T) {
	b := NewBisect(1e-6, 64)
	qStart := []float64{5}
	qEnd := []float64{10}

	crossings, err := b.Locate(linearZero(1), qStart, qEnd)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(crossings) != 0 {
		t.Fatalf("Locate found %d crossings, want 0 (no sign change)", len(crossings))
	}
}

func TestBisectMultipleComponentsSortedByFraction(t *testing.T) {
	b := NewBisect(1e-9, 64)
	z := func(q, out []float64) {
		out[0] = q[0] - 8 // crosses late
		out[1] = q[0] - 2 // crosses early
	}
	qStart := []float64{0, 0}
	qEnd := []float64{10, 10}

	crossings, err := b.Locate(z, qStart, qEnd)
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if len(crossings) != 2 {
		t.Fatalf("Locate found %d crossings, want 2", len(crossings))
	}
	if crossings[0].Index != 1 || crossings[1].Index != 0 {
		t.Fatalf("crossings not sorted by ascending fraction: %+v", crossings)
	}
}

func TestBisectEventTolAccessor(t *testing.T) {
	b := NewBisect(1e-5, 0)
	if b.EventTol() != 1e-5 {
		t.Errorf("EventTol() = %v, want 1e-5", b.EventTol())
	}
}

func TestBisectDefaultMaxIter(t *testing.T) {
	b := NewBisect(1e-9, 0)
	if b.maxIter != 64 {
		t.Errorf("non-positive maxIter did not default to 64, got %d", b.maxIter)
	}
}
