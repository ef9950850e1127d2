package plot

import "math"

// Sample is a single evaluation of a function at X. A Y of NaN or ±Inf
// means the function is undefined at X.
type Sample struct {
	X, Y float64
}

// Pt is shorthand for constructing a Sample.
func Pt(x, y float64) Sample {
	return Sample{X: x, Y: y}
}

// Finite reports whether the sample can be drawn.
func (s Sample) Finite() bool {
	return !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}

// Segment is a run of finite samples with no jump between neighbours larger
// than the threshold it was split with. Segments are never empty.
type Segment []Sample

// Segmentation is the result of splitting a sample stream.
type Segmentation struct {
	Segments []Segment
	// Discontinuous is set if any sample was undefined or any jump
	// exceeded the threshold.
	Discontinuous bool
}

// Len returns the total number of samples kept across all segments.
func (s Segmentation) Len() int {
	n := 0
	for _, seg := range s.Segments {
		n += len(seg)
	}
	return n
}

// segmenter is the accumulator folded over a sample stream. It is a value
// type; push returns the next state.
type segmenter struct {
	threshold     float64
	done          []Segment
	current       Segment
	last          Sample
	hasLast       bool
	discontinuous bool
}

func (s segmenter) push(sample Sample) segmenter {
	if !sample.Finite() {
		s.discontinuous = true
		s = s.cut()
		s.hasLast = false
		return s
	}
	if s.hasLast && math.Abs(sample.Y-s.last.Y) > s.threshold {
		s.discontinuous = true
		s = s.cut()
	}
	s.current = append(s.current, sample)
	s.last = sample
	s.hasLast = true
	return s
}

// cut closes the current segment. Empty segments are dropped here rather
// than in the final result.
func (s segmenter) cut() segmenter {
	if len(s.current) > 0 {
		s.done = append(s.done, s.current)
	}
	s.current = nil
	return s
}

func (s segmenter) result() Segmentation {
	s = s.cut()
	return Segmentation{
		Segments:      s.done,
		Discontinuous: s.discontinuous,
	}
}

// Split breaks samples into drawable segments. A new segment starts after
// every undefined sample and before every sample whose Y differs from the
// previously kept sample by more than jumpThreshold. Undefined samples are
// dropped; every other sample appears exactly once, in input order.
func Split(samples []Sample, jumpThreshold float64) Segmentation {
	s := segmenter{threshold: jumpThreshold}
	for _, sample := range samples {
		s = s.push(sample)
	}
	return s.result()
}
