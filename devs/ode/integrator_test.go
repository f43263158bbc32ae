package ode

import "testing"

func TestNorm2(t *testing.T) {
	if got := norm2([]float64{3, 4}); got != 5 {
		t.Errorf("norm2({3,4}) = %v, want 5", got)
	}
	if got := norm2(nil); got != 0 {
		t.Errorf("norm2(nil) = %v, want 0", got)
	}
}
