package plot

import (
	"fmt"
	"slices"
)

// DefaultAreaPrecision is the number of decimals shown for integral results.
const DefaultAreaPrecision = 6

// Kind discriminates overlays.
type Kind uint8

const (
	// KindTangent is a tangent line with its point marker.
	KindTangent Kind = iota + 1
	// KindIntegral is a shaded integral region with its area label.
	KindIntegral
)

func (k Kind) String() string {
	switch k {
	case KindTangent:
		return "tangent"
	case KindIntegral:
		return "integral"
	default:
		return "unknown"
	}
}

// Overlay is an annotation drawn above the base curve. The only
// implementations are Tangent and Integral.
type Overlay interface {
	Kind() Kind
	isOverlay()
}

// Tangent is a line through Marker with a given slope, spanning an x range.
type Tangent struct {
	From, To Sample
	Marker   Sample
	Slope    float64
}

var _ Overlay = Tangent{}

// NewTangent builds the tangent to f at x0 across [xMin, xMax].
func NewTangent(x0, fx0, slope, xMin, xMax float64) Tangent {
	return Tangent{
		From:   Pt(xMin, fx0+slope*(xMin-x0)),
		To:     Pt(xMax, fx0+slope*(xMax-x0)),
		Marker: Pt(x0, fx0),
		Slope:  slope,
	}
}

func (Tangent) Kind() Kind { return KindTangent }
func (Tangent) isOverlay() {}

// Integral is a shaded region between a curve and y=0 over [A, B].
type Integral struct {
	// Region holds the finite samples of the curve within [A, B], in order.
	Region []Sample
	A, B   float64
	Area   float64
	Label  string
	// Summary is the human readable annotation, e.g. "∫[0, 1] x^2 dx\n≈ 0.333333".
	Summary string
}

var _ Overlay = Integral{}

// NewIntegral clips samples to [a, b] and drops undefined samples. The
// caller must ensure a <= b.
func NewIntegral(samples []Sample, a, b, area float64, label string, precision int) Integral {
	region := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.X < a || s.X > b || !s.Finite() {
			continue
		}
		region = append(region, s)
	}
	return Integral{
		Region:  region,
		A:       a,
		B:       b,
		Area:    area,
		Label:   label,
		Summary: fmt.Sprintf("∫[%g, %g] %s dx\n≈ %.*f", a, b, label, precision, area),
	}
}

func (Integral) Kind() Kind { return KindIntegral }
func (Integral) isOverlay() {}

// Overlays is an ordered list of annotations. Order of insertion is
// preserved so that later overlays draw above earlier ones.
type Overlays struct {
	items []Overlay
}

// Add appends an overlay.
func (o *Overlays) Add(ov Overlay) {
	o.items = append(o.items, ov)
}

// Clear removes every overlay of the given kind and returns how many were
// removed.
func (o *Overlays) Clear(kind Kind) int {
	before := len(o.items)
	o.items = slices.DeleteFunc(o.items, func(ov Overlay) bool {
		return ov.Kind() == kind
	})
	return before - len(o.items)
}

// Len returns the number of overlays.
func (o *Overlays) Len() int {
	return len(o.items)
}

// Count returns the number of overlays of the given kind.
func (o *Overlays) Count(kind Kind) int {
	n := 0
	for _, ov := range o.items {
		if ov.Kind() == kind {
			n++
		}
	}
	return n
}

// All returns a copy of the overlays in insertion order.
func (o *Overlays) All() []Overlay {
	return slices.Clone(o.items)
}
