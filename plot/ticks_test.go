package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func majors(ticks []Tick) []float64 {
	var out []float64
	for _, t := range ticks {
		if t.Major {
			out = append(out, t.Value)
		}
	}
	return out
}

func TestTicks(t *testing.T) {
	type testcase struct {
		name   string
		lo, hi float64
		target int
		major  []float64
		total  int
	}
	for _, tc := range []testcase{
		{
			name:   "unit steps",
			lo:     -5,
			hi:     5,
			target: 10,
			major:  []float64{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5},
			total:  51,
		},
		{
			name:   "steps of two",
			lo:     0,
			hi:     10,
			target: 5,
			major:  []float64{0, 2, 4, 6, 8, 10},
			total:  21,
		},
		{
			name:   "fractional steps",
			lo:     -0.1,
			hi:     1.1,
			target: 5,
			major:  []float64{0, 0.5, 1},
			total:  13,
		},
		{
			name:   "overflowing range",
			lo:     -1e308,
			hi:     1e308,
			target: 5,
		},
		{
			name:   "reversed range",
			lo:     10,
			hi:     0,
			target: 5,
			major:  []float64{0, 2, 4, 6, 8, 10},
			total:  21,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ticks := Ticks(tc.lo, tc.hi, tc.target)
			got := majors(ticks)
			assert.Len(t, got, len(tc.major))
			for i := range got {
				assert.InDelta(t, tc.major[i], got[i], 1e-9)
			}
			assert.Len(t, ticks, tc.total)
		})
	}
}

func TestTicksDegenerate(t *testing.T) {
	assert.Equal(t, []Tick{{Value: 3, Major: true}}, Ticks(3, 3, 5))
	assert.Nil(t, Ticks(math.NaN(), 1, 5))
	assert.Nil(t, Ticks(0, math.Inf(1), 5))
	assert.LessOrEqual(t, len(Ticks(-math.MaxFloat64, math.MaxFloat64/2, 5)), maxTicks)
	assert.LessOrEqual(t, len(Ticks(1e300, 1e300+1e290, 1<<30)), maxTicks)
}
