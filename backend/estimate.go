package backend

import (
	"sort"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

// The estimates below assume samples are in ascending x order, which is how
// evaluators write traces. They let the UI fill in tangent and integral
// parameters the user leaves empty.

// bracket returns the index i of the sample interval [i, i+1] containing x.
// ok is false if x is outside the trace's domain.
func (t Trace) bracket(x float64) (i int, ok bool) {
	s := t.Samples
	if len(s) < 2 || x < s[0].X || x > s[len(s)-1].X {
		return 0, false
	}
	i = sort.Search(len(s), func(i int) bool {
		return s[i].X >= x
	})
	if i > 0 {
		i--
	}
	return min(i, len(s)-2), true
}

// At linearly interpolates the traced function at x. ok is false if x is
// outside the domain or next to an undefined sample.
func (t Trace) At(x float64) (y float64, ok bool) {
	i, ok := t.bracket(x)
	if !ok {
		return 0, false
	}
	s0, s1 := t.Samples[i], t.Samples[i+1]
	switch {
	case x == s0.X:
		return s0.Y, s0.Finite()
	case x == s1.X:
		return s1.Y, s1.Finite()
	case !s0.Finite() || !s1.Finite():
		return 0, false
	}
	return s0.Y + (s1.Y-s0.Y)*(x-s0.X)/(s1.X-s0.X), true
}

// Slope estimates the derivative at x from neighbouring samples. At an
// interior sample the central difference is used.
func (t Trace) Slope(x float64) (slope float64, ok bool) {
	i, ok := t.bracket(x)
	if !ok {
		return 0, false
	}
	a, b := t.Samples[i], t.Samples[i+1]
	if x == b.X && i+2 < len(t.Samples) {
		a, b = t.Samples[i], t.Samples[i+2]
	} else if x == a.X && i > 0 {
		a = t.Samples[i-1]
	}
	if !a.Finite() || !b.Finite() || b.X == a.X {
		return 0, false
	}
	return (b.Y - a.Y) / (b.X - a.X), true
}

// Integrate estimates the integral of the traced function over the interval
// between a and b with the trapezoid rule. If b is less than a the interval
// [b, a] is used. Intervals that reach beyond the domain or contain an
// undefined sample cannot be integrated and ok will be false.
func (t Trace) Integrate(a, b float64) (area float64, ok bool) {
	if b < a {
		a, b = b, a
	}
	ia, okA := t.bracket(a)
	ib, okB := t.bracket(b)
	if !okA || !okB {
		return 0, false
	}
	ya, okA := t.At(a)
	yb, okB := t.At(b)
	if !okA || !okB {
		return 0, false
	}
	prev := plot.Pt(a, ya)
	for _, s := range t.Samples[ia+1 : ib+1] {
		if s.X <= prev.X {
			continue
		}
		if s.X >= b {
			break
		}
		if !s.Finite() {
			return 0, false
		}
		area += (s.X - prev.X) * (s.Y + prev.Y) / 2
		prev = s
	}
	area += (b - prev.X) * (yb + prev.Y) / 2
	return area, true
}
