package ode

import (
	"math"
	"testing"
)

// decay is dq/dt = -q, whose analytic solution from q0=1 is e^-t.
func decay(q, out []float64) { out[0] = -q[0] }

func TestEulerIntegrateWithinTolerance(t *testing.T) {
	e := NewEuler(1e-4, 0.1)
	state := []float64{1}

	hActual, err := e.Integrate(decay, state, 0.1)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if hActual <= 0 || hActual > 0.1 {
		t.Fatalf("hActual = %v, want in (0, 0.1]", hActual)
	}

	want := math.Exp(-hActual)
	if diff := math.Abs(state[0] - want); diff > 1e-3 {
		t.Fatalf("integrated state = %v, want near %v (diff %v)", state[0], want, diff)
	}
}

func TestEulerClampsToMaxStep(t *testing.T) {
	e := NewEuler(10, 0.05) // generous tolerance so the proposed step is accepted outright
	state := []float64{1}

	hActual, err := e.Integrate(decay, state, 1.0)
	if err != nil {
		t.Fatalf("Integrate returned error: %v", err)
	}
	if hActual != 0.05 {
		t.Fatalf("hActual = %v, want clamped to maxStep 0.05", hActual)
	}
}

func TestEulerReturnsErrStepTolUnmet(t *testing.T) {
	e := NewEuler(0, 0.1) // a tolerance of exactly 0 cannot plausibly be met
	state := []float64{1}

	_, err := e.Integrate(decay, state, 0.1)
	if err != ErrStepTolUnmet {
		t.Fatalf("Integrate error = %v, want ErrStepTolUnmet", err)
	}
}

func TestEulerAccessors(t *testing.T) {
	e := NewEuler(1e-3, 0.2)
	if e.StepTol() != 1e-3 {
		t.Errorf("StepTol() = %v, want 1e-3", e.StepTol())
	}
	if e.MaxStep() != 0.2 {
		t.Errorf("MaxStep() = %v, want 0.2", e.MaxStep())
	}
}
