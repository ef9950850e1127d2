package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flat(y float64, xMin, xMax float64, n int) []Sample {
	out := make([]Sample, 0, n)
	step := (xMax - xMin) / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, Pt(xMin+float64(i)*step, y))
	}
	return out
}

func TestScale(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	type testcase struct {
		name     string
		segments []Segment
		xMin     float64
		xMax     float64
		opts     ScaleOptions
		expected Bounds
	}
	for _, tc := range []testcase{
		{
			name:     "flat function is expanded by one",
			segments: []Segment{flat(5, 0, 10, 11)},
			xMin:     0,
			xMax:     10,
			opts:     ScaleOptions{YVisualLimit: DefaultYVisualLimit},
			expected: Bounds{XMin: 0, XMax: 10, YMin: 4, YMax: 6},
		},
		{
			name:     "range is padded by ten percent",
			segments: []Segment{{Pt(0, 0), Pt(1, 1)}},
			xMin:     -2,
			xMax:     3,
			opts:     ScaleOptions{YVisualLimit: DefaultYVisualLimit},
			expected: Bounds{XMin: -2, XMax: 3, YMin: -0.1, YMax: 1.1},
		},
		{
			name:     "values beyond the visual limit are ignored",
			segments: []Segment{{Pt(0, -2), Pt(1, 2)}, {Pt(2, 100)}},
			xMin:     0,
			xMax:     2,
			opts:     ScaleOptions{YVisualLimit: DefaultYVisualLimit},
			expected: Bounds{XMin: 0, XMax: 2, YMin: -2.4, YMax: 2.4},
		},
		{
			name:     "no usable values defaults to unit range",
			segments: []Segment{{Pt(0, 50), Pt(1, 55)}},
			xMin:     0,
			xMax:     1,
			opts:     ScaleOptions{YVisualLimit: DefaultYVisualLimit},
			expected: Bounds{XMin: 0, XMax: 1, YMin: -1, YMax: 1},
		},
		{
			name:     "no segments defaults to unit range",
			xMin:     -1,
			xMax:     1,
			opts:     ScaleOptions{YVisualLimit: DefaultYVisualLimit},
			expected: Bounds{XMin: -1, XMax: 1, YMin: -1, YMax: 1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			b := Scale(tc.segments, tc.xMin, tc.xMax, vp, tc.opts)
			assert.Equal(t, tc.expected.XMin, b.XMin)
			assert.Equal(t, tc.expected.XMax, b.XMax)
			assert.InDelta(t, tc.expected.YMin, b.YMin, 1e-9)
			assert.InDelta(t, tc.expected.YMax, b.YMax, 1e-9)
		})
	}
}

func TestScaleAspectLock(t *testing.T) {
	segments := []Segment{flat(5, 0, 10, 11)}
	opts := ScaleOptions{YVisualLimit: DefaultYVisualLimit, AspectLocked: true}

	// xRange 10, yRange 2, plot aspect 2: the data is wider than the plot
	// so y grows to 10/2 around its midpoint of 5.
	b := Scale(segments, 0, 10, Viewport{Width: 800, Height: 400}, opts)
	assert.Equal(t, Bounds{XMin: 0, XMax: 10, YMin: 2.5, YMax: 7.5}, b)

	// Plot aspect 10 exceeds the data aspect of 5; nothing changes.
	b = Scale(segments, 0, 10, Viewport{Width: 1000, Height: 100}, opts)
	assert.Equal(t, Bounds{XMin: 0, XMax: 10, YMin: 4, YMax: 6}, b)

	// An unsized viewport falls back to 800x600.
	b = Scale(segments, 0, 10, Viewport{}, opts)
	assert.InDelta(t, 7.5, b.YRange(), 1e-9)
	assert.InDelta(t, 5, (b.YMin+b.YMax)/2, 1e-9)
}

func TestAxesFreeze(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	opts := ScaleOptions{YVisualLimit: DefaultYVisualLimit}
	var axes Axes

	_, ok := axes.Bounds()
	assert.False(t, ok)
	assert.Equal(t, Unscaled, axes.State())

	assert.True(t, axes.Fit([]Segment{flat(1, 0, 1, 2)}, 0, 1, vp, opts))
	first, ok := axes.Bounds()
	assert.True(t, ok)
	assert.Equal(t, Scaled, axes.State())

	assert.False(t, axes.Fit([]Segment{flat(-3, 5, 6, 2)}, 5, 6, vp, opts))
	second, _ := axes.Bounds()
	assert.Equal(t, first, second)

	axes.Reset()
	assert.Equal(t, Unscaled, axes.State())
	kept, ok := axes.Bounds()
	assert.True(t, ok)
	assert.Equal(t, first, kept)

	assert.True(t, axes.Fit([]Segment{flat(-3, 5, 6, 2)}, 5, 6, vp, opts))
	third, _ := axes.Bounds()
	assert.Equal(t, Bounds{XMin: 5, XMax: 6, YMin: -4, YMax: -2}, third)
}
