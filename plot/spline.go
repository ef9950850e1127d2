package plot

// DefaultTension is the cardinal spline tension used for smoothed curves.
const DefaultTension = 0.5

// Cubic is a cubic Bézier piece from From to To with control points C1, C2.
type Cubic struct {
	From, C1, C2, To Sample
}

// CanonicalSpline converts a segment into cubic pieces of a cardinal spline
// that passes through every sample. The ends are clamped by repeating the
// first and last sample. Segments shorter than three samples produce
// straight pieces.
func CanonicalSpline(seg Segment, tension float64) []Cubic {
	if len(seg) < 2 {
		return nil
	}
	out := make([]Cubic, 0, len(seg)-1)
	if len(seg) == 2 {
		return append(out, line(seg[0], seg[1]))
	}
	at := func(i int) Sample {
		return seg[clamp(i, 0, len(seg)-1)]
	}
	k := tension / 3
	for i := 0; i < len(seg)-1; i++ {
		p0, p1, p2, p3 := at(i-1), at(i), at(i+1), at(i+2)
		out = append(out, Cubic{
			From: p1,
			C1:   Pt(p1.X+k*(p2.X-p0.X), p1.Y+k*(p2.Y-p0.Y)),
			C2:   Pt(p2.X-k*(p3.X-p1.X), p2.Y-k*(p3.Y-p1.Y)),
			To:   p2,
		})
	}
	return out
}

func line(a, b Sample) Cubic {
	return Cubic{
		From: a,
		C1:   Pt(a.X+(b.X-a.X)/3, a.Y+(b.Y-a.Y)/3),
		C2:   Pt(a.X+2*(b.X-a.X)/3, a.Y+2*(b.Y-a.Y)/3),
		To:   b,
	}
}

// Eval returns the point on the curve at parameter t in [0, 1].
func (c Cubic) Eval(t float64) Sample {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	d := 3 * u * t * t
	e := t * t * t
	return Pt(
		a*c.From.X+b*c.C1.X+d*c.C2.X+e*c.To.X,
		a*c.From.Y+b*c.C1.Y+d*c.C2.Y+e*c.To.Y,
	)
}
