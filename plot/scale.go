package plot

import "math"

const (
	// DefaultJumpThreshold is the largest change in Y between neighbouring
	// samples that is still drawn as a connected line.
	DefaultJumpThreshold = 10.0
	// DefaultYVisualLimit bounds the Y values that participate in automatic
	// scaling, keeping spikes near asymptotes from flattening the curve.
	DefaultYVisualLimit = 10.0

	flatEpsilon = 1e-6
	paddingFrac = 0.1
)

// fallbackViewport is used for aspect computations when the surface has
// not been laid out.
var fallbackViewport = Viewport{Width: 800, Height: 600}

// Viewport is the pixel size of a drawing surface.
type Viewport struct {
	Width, Height float64
}

// Ready reports whether the viewport is large enough to plot into.
func (v Viewport) Ready() bool {
	return v.Width > 1 && v.Height > 1
}

// Aspect returns width/height, substituting 800x600 for a non-positive size.
func (v Viewport) Aspect() float64 {
	if v.Width <= 0 || v.Height <= 0 {
		v = fallbackViewport
	}
	return v.Width / v.Height
}

// Bounds is the visible data rectangle of a chart.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// XRange returns XMax-XMin.
func (b Bounds) XRange() float64 { return b.XMax - b.XMin }

// YRange returns YMax-YMin.
func (b Bounds) YRange() float64 { return b.YMax - b.YMin }

// ContainsX reports whether x lies within [XMin, XMax].
func (b Bounds) ContainsX(x float64) bool {
	return x >= b.XMin && x <= b.XMax
}

// ScaleOptions controls automatic axis scaling.
type ScaleOptions struct {
	YVisualLimit float64
	AspectLocked bool
}

// Scale computes bounds for the given segments. The x bounds are exactly
// [xMin, xMax]. The y bounds cover every sample with |y| <= YVisualLimit,
// padded by 10% of their range, or ±1 around a flat function. With no
// usable samples the y bounds default to [-1, 1].
//
// When AspectLocked is set and the data is wider than the viewport, the y
// range grows around its midpoint until one unit on each axis covers the
// same number of pixels. The x bounds are never changed.
func Scale(segments []Segment, xMin, xMax float64, vp Viewport, opts ScaleOptions) Bounds {
	b := Bounds{XMin: xMin, XMax: xMax, YMin: -1, YMax: 1}

	found := false
	for _, seg := range segments {
		for _, s := range seg {
			if math.Abs(s.Y) > opts.YVisualLimit {
				continue
			}
			if !found {
				b.YMin, b.YMax = s.Y, s.Y
				found = true
				continue
			}
			b.YMin = min(b.YMin, s.Y)
			b.YMax = max(b.YMax, s.Y)
		}
	}
	if found {
		if span := b.YMax - b.YMin; span < flatEpsilon {
			b.YMin--
			b.YMax++
		} else {
			pad := span * paddingFrac
			b.YMin -= pad
			b.YMax += pad
		}
	}

	if opts.AspectLocked {
		b = lockAspect(b, vp)
	}
	return b
}

func lockAspect(b Bounds, vp Viewport) Bounds {
	xRange := b.XRange()
	yRange := b.YRange()
	if yRange <= 0 {
		yRange = 1
	}
	plotAspect := vp.Aspect()
	if xRange/yRange <= plotAspect {
		return b
	}
	newYRange := xRange / plotAspect
	mid := (b.YMin + b.YMax) / 2
	b.YMin = mid - newYRange/2
	b.YMax = mid + newYRange/2
	return b
}

// AxisState is the scaling state of a chart's axes.
type AxisState uint8

const (
	// Unscaled axes are recomputed on the next plot.
	Unscaled AxisState = iota
	// Scaled axes are frozen until reset.
	Scaled
)

func (a AxisState) String() string {
	switch a {
	case Unscaled:
		return "unscaled"
	case Scaled:
		return "scaled"
	default:
		return "unknown"
	}
}

// Axes holds the bounds of a chart. Bounds are computed once, on the first
// plot after construction or Reset, and are reused until the next Reset.
type Axes struct {
	state  AxisState
	bounds Bounds
	valid  bool
}

// State returns the current scaling state.
func (a *Axes) State() AxisState {
	return a.state
}

// Bounds returns the most recently computed bounds. ok is false if the
// axes have never been fitted. A reset does not discard the bounds.
func (a *Axes) Bounds() (b Bounds, ok bool) {
	return a.bounds, a.valid
}

// Fit scales the axes to the segments if they are unscaled and freezes the
// result. It reports whether the bounds changed.
func (a *Axes) Fit(segments []Segment, xMin, xMax float64, vp Viewport, opts ScaleOptions) bool {
	if a.state == Scaled {
		return false
	}
	a.bounds = Scale(segments, xMin, xMax, vp, opts)
	a.state = Scaled
	a.valid = true
	return true
}

// Reset unfreezes the axes so that the next Fit recomputes them.
func (a *Axes) Reset() {
	a.state = Unscaled
}
