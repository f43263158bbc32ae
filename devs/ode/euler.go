package ode

// Euler is a corrected (predictor-corrector) Euler integrator, order 2:
// a forward-Euler predictor followed by a trapezoidal corrector, with the
// difference between predictor and corrector used as the local error
// estimate. On failure to meet stepTol the step is halved and retried,
// down to a minimum step of hPropose*minStepFraction; if the tolerance is
// still unmet at that step, integration fails with ErrStepTolUnmet.
type Euler struct {
	stepTol float64
	maxStep float64
}

// NewEuler constructs a corrected Euler integrator with the given per-step
// tolerance and maximum single-step size.
func NewEuler(stepTol, maxStep float64) *Euler {
	return &Euler{stepTol: stepTol, maxStep: maxStep}
}

func (e *Euler) StepTol() float64 { return e.stepTol }
func (e *Euler) MaxStep() float64 { return e.maxStep }

func (e *Euler) Integrate(der DerivFunc, state []float64, hPropose float64) (float64, error) {
	h := hPropose
	if h > e.maxStep {
		h = e.maxStep
	}
	minStep := hPropose * minStepFraction

	n := len(state)
	k1 := make([]float64, n)
	predicted := make([]float64, n)
	k2 := make([]float64, n)
	corrected := make([]float64, n)
	errVec := make([]float64, n)

	for {
		der(state, k1)
		for i := range state {
			predicted[i] = state[i] + h*k1[i]
		}
		der(predicted, k2)
		for i := range state {
			corrected[i] = state[i] + h*0.5*(k1[i]+k2[i])
			errVec[i] = corrected[i] - predicted[i]
		}

		if norm2(errVec) <= e.stepTol {
			copy(state, corrected)
			return h, nil
		}
		if h <= minStep {
			return 0, ErrStepTolUnmet
		}
		h *= 0.5
	}
}
