package backend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

// makeTestTrace samples f at the integers in [lo, hi].
func makeTestTrace(lo, hi int, f func(x float64) float64) Trace {
	var t Trace
	for x := lo; x <= hi; x++ {
		t.Samples = append(t.Samples, plot.Pt(float64(x), f(float64(x))))
	}
	return t
}

func TestTraceAt(t *testing.T) {
	trace := makeTestTrace(0, 4, func(x float64) float64 { return 2*x + 1 })
	type testcase struct {
		x        float64
		expected float64
		ok       bool
	}
	for _, tc := range []testcase{
		{x: 0, expected: 1, ok: true},
		{x: 2.5, expected: 6, ok: true},
		{x: 3, expected: 7, ok: true},
		{x: 4, expected: 9, ok: true},
		{x: -0.5},
		{x: 4.5},
	} {
		y, ok := trace.At(tc.x)
		assert.Equal(t, tc.ok, ok, "x=%v", tc.x)
		if tc.ok {
			assert.InDelta(t, tc.expected, y, 1e-12, "x=%v", tc.x)
		}
	}
}

func TestTraceSlope(t *testing.T) {
	trace := makeTestTrace(0, 4, func(x float64) float64 { return x * x })
	for x, expected := range map[float64]float64{
		0:   1, // one sided
		0.5: 1,
		2:   4, // central
		2.5: 5,
		4:   7, // one sided
	} {
		slope, ok := trace.Slope(x)
		assert.True(t, ok, "x=%v", x)
		assert.InDelta(t, expected, slope, 1e-12, "x=%v", x)
	}
	_, ok := trace.Slope(5)
	assert.False(t, ok)
}

func TestTraceIntegrate(t *testing.T) {
	trace := makeTestTrace(0, 4, func(x float64) float64 { return 2*x + 1 })
	type testcase struct {
		name     string
		a, b     float64
		expected float64
	}
	for _, tc := range []testcase{
		{name: "whole domain", a: 0, b: 4, expected: 20},
		{name: "partial ends", a: 0.5, b: 3.5, expected: 15},
		{name: "inside one interval", a: 1.25, b: 1.75, expected: 2},
		{name: "reversed", a: 3.5, b: 0.5, expected: 15},
		{name: "empty", a: 2, b: 2, expected: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			area, ok := trace.Integrate(tc.a, tc.b)
			assert.True(t, ok)
			assert.InDelta(t, tc.expected, area, 1e-12)
		})
	}
}

func TestTraceIntegrateUndefined(t *testing.T) {
	trace := makeTestTrace(-2, 2, func(x float64) float64 { return 1 / x })
	assert.True(t, math.IsInf(trace.Samples[2].Y, 1))

	_, ok := trace.Integrate(-1.5, 1.5)
	assert.False(t, ok, "pole inside the interval")
	_, ok = trace.Integrate(0.5, 1.5)
	assert.False(t, ok, "interval ends next to the pole")
	area, ok := trace.Integrate(1, 2)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, area, 1e-12)
	_, ok = trace.Integrate(-3, 1)
	assert.False(t, ok, "outside the domain")
}
