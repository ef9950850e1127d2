package plot

import (
	"math"

	"golang.org/x/exp/constraints"
)

// maxTicks bounds the ticks returned for a single axis.
const maxTicks = 1000

// Tick is a labelled position along an axis.
type Tick struct {
	Value float64
	Major bool
}

// Ticks returns tick marks covering [lo, hi] with roughly target major
// ticks spaced at 1, 2 or 5 times a power of ten. Each major interval is
// split by minor ticks. A degenerate range yields a single major tick, and a
// range too wide to represent yields none.
func Ticks(lo, hi float64, target int) []Tick {
	if hi < lo {
		lo, hi = hi, lo
	}
	if !finite(lo) || !finite(hi) || !finite(hi-lo) {
		return nil
	}
	if hi-lo < flatEpsilon || target < 1 {
		return []Tick{{Value: lo, Major: true}}
	}
	step := niceStep((hi - lo) / float64(target))
	minor := step / minorDivisions(step)
	first := ceil(lo/minor) * minor
	if !finite(step) || !finite(minor) || minor <= 0 || !finite(first) {
		return nil
	}

	var out []Tick
	for i := 0; i < maxTicks; i++ {
		v := first + float64(i)*minor
		if v > hi+minor*1e-9 {
			break
		}
		// Snap values like 0.30000000000000004 and -0 back onto the grid.
		v = math.Round(v/minor) * minor
		if v == 0 {
			v = 0
		}
		major := math.Abs(math.Remainder(v, step)) < minor*1e-6
		out = append(out, Tick{Value: v, Major: major})
	}
	return out
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	exp := floor(math.Log10(raw))
	base := math.Pow(10, exp)
	frac := raw / base
	switch {
	case frac <= 1:
		return base
	case frac <= 2:
		return 2 * base
	case frac <= 5:
		return 5 * base
	default:
		return 10 * base
	}
}

func minorDivisions(step float64) float64 {
	frac := step / math.Pow(10, floor(math.Log10(step)))
	if math.Abs(frac-2) < 1e-9 {
		return 4
	}
	return 5
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
