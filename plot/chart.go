package plot

import (
	"fmt"
	"strings"
)

// Interpolation selects how the points of a segment are joined.
type Interpolation uint8

const (
	// Linear joins samples with straight lines.
	Linear Interpolation = iota
	// Smoothed joins samples with a canonical spline. It only applies to
	// curves without discontinuities.
	Smoothed
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Smoothed:
		return "smoothed"
	default:
		return "unknown"
	}
}

// ParseInterpolation accepts the names produced by String, ignoring case.
// "spline" is accepted as an alias for smoothed.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return Linear, nil
	case "smoothed", "smooth", "spline":
		return Smoothed, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation mode %q", s)
	}
}

// Options configures a Chart.
type Options struct {
	JumpThreshold float64
	YVisualLimit  float64
	AspectLocked  bool
	Interpolation Interpolation
	AreaPrecision int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		JumpThreshold: DefaultJumpThreshold,
		YVisualLimit:  DefaultYVisualLimit,
		Interpolation: Linear,
		AreaPrecision: DefaultAreaPrecision,
	}
}

// Frame is everything a surface needs to draw one chart. Overlays are drawn
// after all segments, in order.
type Frame struct {
	Segments []Segment
	Bounds   Bounds
	// Scaled is false until the chart has been scaled once.
	Scaled bool
	// Smooth is set when segments may be drawn as splines.
	Smooth   bool
	Overlays []Overlay
}

// Surface is where a chart draws. Viewport reports the current size of the
// plot area; a size of 1 pixel or less in either dimension means the
// surface is not ready.
type Surface interface {
	Viewport() Viewport
	Render(Frame)
}

// Chart turns sample streams into frames for a Surface. It is not safe for
// concurrent use; all methods must be called from the goroutine that owns
// the surface.
type Chart struct {
	surface  Surface
	opts     Options
	axes     Axes
	overlays Overlays

	segments      []Segment
	discontinuous bool
	smooth        bool
}

// NewChart returns a chart drawing onto surface.
func NewChart(surface Surface, opts Options) *Chart {
	return &Chart{
		surface: surface,
		opts:    opts,
	}
}

// Plot replaces the base curve with samples and redraws. The axes are
// scaled to [xMin, xMax] only if they are not frozen. Overlays are kept.
// If the surface is not ready nothing happens and Plot returns false.
func (c *Chart) Plot(samples []Sample, xMin, xMax float64) bool {
	vp := c.surface.Viewport()
	if !vp.Ready() {
		return false
	}
	seg := Split(samples, c.opts.JumpThreshold)
	c.segments = seg.Segments
	c.discontinuous = seg.Discontinuous
	c.axes.Fit(c.segments, xMin, xMax, vp, ScaleOptions{
		YVisualLimit: c.opts.YVisualLimit,
		AspectLocked: c.opts.AspectLocked,
	})
	// Splines would join across deliberately broken segment boundaries,
	// so any discontinuity disables smoothing for the whole redraw.
	c.smooth = c.opts.Interpolation == Smoothed && !c.discontinuous
	c.render()
	return true
}

// ResetAxes forces the next Plot to recompute the axis bounds.
func (c *Chart) ResetAxes() {
	c.axes.Reset()
}

// SetAspectLocked sets whether future scaling matches the viewport aspect.
// It takes effect on the next Plot after ResetAxes.
func (c *Chart) SetAspectLocked(locked bool) {
	c.opts.AspectLocked = locked
}

// SetInterpolation sets the curve joining mode used by the next Plot.
func (c *Chart) SetInterpolation(mode Interpolation) {
	c.opts.Interpolation = mode
}

// AddTangent draws the tangent at (x0, fx0) with the given slope across
// [xMin, xMax].
func (c *Chart) AddTangent(x0, fx0, slope, xMin, xMax float64) {
	c.overlays.Add(NewTangent(x0, fx0, slope, xMin, xMax))
	c.render()
}

// ClearTangents removes all tangent overlays.
func (c *Chart) ClearTangents() {
	c.clear(KindTangent)
}

// AddIntegralArea shades the region between samples and y=0 over [a, b],
// labelled with the integral's value. The caller must ensure a <= b.
func (c *Chart) AddIntegralArea(samples []Sample, a, b, area float64, label string) {
	c.overlays.Add(NewIntegral(samples, a, b, area, label, c.opts.AreaPrecision))
	c.render()
}

// ClearIntegrals removes all integral overlays.
func (c *Chart) ClearIntegrals() {
	c.clear(KindIntegral)
}

func (c *Chart) clear(kind Kind) {
	if c.overlays.Clear(kind) > 0 {
		c.render()
	}
}

// Options returns the chart's current options.
func (c *Chart) Options() Options {
	return c.opts
}

// Segments returns the segments of the last successful Plot.
func (c *Chart) Segments() []Segment {
	return c.segments
}

// Discontinuous reports whether the last plotted samples contained a
// discontinuity.
func (c *Chart) Discontinuous() bool {
	return c.discontinuous
}

// Smooth reports whether the last Plot allowed spline interpolation.
func (c *Chart) Smooth() bool {
	return c.smooth
}

// Bounds returns the current axis bounds; ok is false if the chart has
// never been scaled.
func (c *Chart) Bounds() (b Bounds, ok bool) {
	return c.axes.Bounds()
}

// AxisState returns whether the axes are frozen.
func (c *Chart) AxisState() AxisState {
	return c.axes.State()
}

// Overlays returns the current overlays in drawing order.
func (c *Chart) Overlays() []Overlay {
	return c.overlays.All()
}

// Frame returns the frame the chart would currently render.
func (c *Chart) Frame() Frame {
	b, ok := c.axes.Bounds()
	return Frame{
		Segments: c.segments,
		Bounds:   b,
		Scaled:   ok,
		Smooth:   c.smooth,
		Overlays: c.overlays.All(),
	}
}

func (c *Chart) render() {
	c.surface.Render(c.Frame())
}
