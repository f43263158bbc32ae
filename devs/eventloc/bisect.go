package eventloc

import "sort"

// Bisect locates zero-crossings by linear interpolation between the start
// and end samples followed by bisection refinement: an initial fraction
// guess from linear interpolation of the two endpoint values, narrowed by
// bisection until the interval width is within eventTol or maxIter is
// exhausted.
type Bisect struct {
	eventTol float64
	maxIter  int
}

// NewBisect constructs a Bisect locator with the given time-error tolerance
// and iteration budget. A non-positive maxIter defaults to 64, comfortably
// enough to reach double-precision resolution from any [0,1] bracket.
func NewBisect(eventTol float64, maxIter int) *Bisect {
	if maxIter <= 0 {
		maxIter = 64
	}
	return &Bisect{eventTol: eventTol, maxIter: maxIter}
}

func (b *Bisect) EventTol() float64 { return b.eventTol }

func (b *Bisect) Locate(z ZeroFunc, qStart, qEnd []float64) ([]Crossing, error) {
	n := len(qStart)
	zStart := make([]float64, n)
	zEnd := make([]float64, n)
	z(qStart, zStart)
	z(qEnd, zEnd)

	var crossings []Crossing
	for i := 0; i < n; i++ {
		if !signChanged(zStart[i], zEnd[i]) {
			continue
		}
		frac, err := b.bisectOne(z, qStart, qEnd, i, zStart[i], zEnd[i])
		if err != nil {
			return nil, err
		}
		crossings = append(crossings, Crossing{Index: i, Fraction: frac})
	}

	sort.Slice(crossings, func(i, j int) bool { return crossings[i].Fraction < crossings[j].Fraction })
	return crossings, nil
}

func (b *Bisect) bisectOne(z ZeroFunc, qStart, qEnd []float64, idx int, zLo, zHi float64) (float64, error) {
	n := len(qStart)
	q := make([]float64, n)
	zv := make([]float64, n)

	lo, hi := 0.0, 1.0
	for iter := 0; iter < b.maxIter; iter++ {
		if hi-lo < b.eventTol {
			return (lo + hi) / 2, nil
		}
		// Linear-interpolation guess (regula falsi) rather than a plain
		// midpoint, converging faster when z is close to linear over the
		// bracket, with a midpoint fallback if the guess lands outside
		// (lo, hi) due to a poorly conditioned zLo/zHi ratio.
		mid := lo - zLo*(hi-lo)/(zHi-zLo)
		if mid <= lo || mid >= hi {
			mid = (lo + hi) / 2
		}

		interpolate(q, qStart, qEnd, mid)
		z(q, zv)
		zMid := zv[idx]

		if signChanged(zLo, zMid) {
			hi, zHi = mid, zMid
		} else {
			lo, zLo = mid, zMid
		}
	}
	return 0, ErrNoBracket
}

func interpolate(dst, qStart, qEnd []float64, frac float64) {
	for i := range dst {
		dst[i] = qStart[i] + frac*(qEnd[i]-qStart[i])
	}
}

func signChanged(a, b float64) bool {
	if a == 0 || b == 0 {
		return a != b
	}
	return (a < 0) != (b < 0)
}
