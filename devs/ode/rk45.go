package ode

import "math"

// rk45 is the classic Fehlberg 4(5) Butcher tableau: six stages producing
// both a 4th- and a 5th-order estimate, whose difference is the embedded
// local error estimate.
var (
	rk45C = [6]float64{0, 1.0 / 4, 3.0 / 8, 12.0 / 13, 1, 1.0 / 2}
	rk45A = [6][5]float64{
		{},
		{1.0 / 4},
		{3.0 / 32, 9.0 / 32},
		{1932.0 / 2197, -7200.0 / 2197, 7296.0 / 2197},
		{439.0 / 216, -8, 3680.0 / 513, -845.0 / 4104},
		{-8.0 / 27, 2, -3544.0 / 2565, 1859.0 / 4104, -11.0 / 40},
	}
	rk45B4 = [6]float64{25.0 / 216, 0, 1408.0 / 2565, 2197.0 / 4104, -1.0 / 5, 0}
	rk45B5 = [6]float64{16.0 / 135, 0, 6656.0 / 12825, 28561.0 / 56430, -9.0 / 50, 2.0 / 55}
)

// RK45 is a Runge-Kutta-Fehlberg embedded 4(5) pair integrator: step
// acceptance is decided by the estimated error norm between the 4th- and
// 5th-order solutions against stepTol. A rejected step is shrunk by
// (stepTol/err)^(1/5), at most tenfold, and retried within the same call;
// no step-size state is carried over to the next call.
type RK45 struct {
	stepTol float64
	maxStep float64
}

// NewRK45 constructs an RK45 integrator with the given per-step tolerance
// and maximum single-step size.
func NewRK45(stepTol, maxStep float64) *RK45 {
	return &RK45{stepTol: stepTol, maxStep: maxStep}
}

func (r *RK45) StepTol() float64 { return r.stepTol }
func (r *RK45) MaxStep() float64 { return r.maxStep }

func (r *RK45) Integrate(der DerivFunc, state []float64, hPropose float64) (float64, error) {
	h := hPropose
	if h > r.maxStep {
		h = r.maxStep
	}
	minStep := hPropose * minStepFraction

	n := len(state)
	k := make([][]float64, 6)
	for i := range k {
		k[i] = make([]float64, n)
	}
	work := make([]float64, n)
	sol4 := make([]float64, n)
	sol5 := make([]float64, n)
	errVec := make([]float64, n)

	for {
		for stage := 0; stage < 6; stage++ {
			for i := 0; i < n; i++ {
				work[i] = state[i]
				for j := 0; j < stage; j++ {
					work[i] += h * rk45A[stage][j] * k[j][i]
				}
			}
			der(work, k[stage])
		}

		for i := 0; i < n; i++ {
			sol4[i] = state[i]
			sol5[i] = state[i]
			for stage := 0; stage < 6; stage++ {
				sol4[i] += h * rk45B4[stage] * k[stage][i]
				sol5[i] += h * rk45B5[stage] * k[stage][i]
			}
			errVec[i] = sol5[i] - sol4[i]
		}

		estErr := norm2(errVec)
		if estErr <= r.stepTol {
			copy(state, sol5)
			return h, nil
		}
		if h <= minStep {
			return 0, ErrStepTolUnmet
		}
		// Standard embedded-pair step shrink: scale by (tol/err)^(1/5),
		// clamped so a single rejected step never shrinks h by more than
		// a factor of 10.
		scale := math.Pow(r.stepTol/estErr, 0.2)
		if scale < 0.1 {
			scale = 0.1
		}
		h *= scale
	}
}
