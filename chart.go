package main

import (
	"image"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"golang.org/x/exp/constraints"

	"git.sr.ht/~whereswaldon/fnplot/plot"
)

// maxPx bounds projected coordinates. Samples far outside the visible
// bounds would otherwise project to values the stroker cannot handle.
const maxPx = 1e5

// ChartView draws plot frames. It is the Gio surface of a plot.Chart.
type ChartView struct {
	invalidate func()
	viewport   plot.Viewport
	frame      plot.Frame

	// hover gesture state
	pos       f32.Point
	isHovered bool

	// scratch slices reused across frames
	curve []stroke.Segment
	grid  []stroke.Segment
}

var _ plot.Surface = (*ChartView)(nil)

func NewChartView(invalidate func()) *ChartView {
	return &ChartView{
		invalidate: invalidate,
	}
}

// Viewport returns the size of the plot area at the last layout, which is
// zero until the view has been laid out once.
func (c *ChartView) Viewport() plot.Viewport {
	return c.viewport
}

// Render replaces the displayed frame.
func (c *ChartView) Render(frame plot.Frame) {
	c.frame = frame
	c.invalidate()
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

func pt(x, y float64) f32.Point {
	return f32.Pt(
		float32(max(-maxPx, min(maxPx, x))),
		float32(max(-maxPx, min(maxPx, y))),
	)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func (c *ChartView) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move,
		})
		if !ok {
			break
		}
		switch ev := ev.(type) {
		case pointer.Event:
			switch ev.Kind {
			case pointer.Enter:
				c.isHovered = true
				c.pos = ev.Position
			case pointer.Leave, pointer.Cancel:
				c.isHovered = false
			case pointer.Move:
				c.pos = ev.Position
			}
		}
	}
}

func (c *ChartView) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	size := gtx.Constraints.Max
	gtx.Constraints.Min = image.Point{}

	title := material.H6(th, "Function Plot")
	title.Alignment = text.Middle
	titleGtx := gtx
	titleGtx.Constraints.Min.X = size.X
	titleDims, titleCall := rec(titleGtx, title.Layout)
	titleCall.Add(gtx.Ops)

	// Reserve room for the widest plausible tick label.
	labelDims, _ := rec(gtx, material.Caption(th, "-0.00000").Layout)
	area := image.Rectangle{
		Min: image.Pt(labelDims.Size.X+gtx.Dp(6), titleDims.Size.Y+gtx.Dp(4)),
		Max: size.Sub(image.Pt(gtx.Dp(12), labelDims.Size.Y+gtx.Dp(6))),
	}
	if area.Empty() {
		area = image.Rectangle{}
	}
	vp := plot.Viewport{Width: float64(area.Dx()), Height: float64(area.Dy())}
	if vp != c.viewport {
		c.viewport = vp
		c.invalidate()
	}
	if !c.frame.Scaled || !vp.Ready() {
		return D{Size: size}
	}

	b := c.frame.Bounds
	proj := plot.NewProjection(b, vp.Width, vp.Height)
	xTicks := plot.Ticks(b.XMin, b.XMax, max(area.Dx()/gtx.Dp(90), 2))
	yTicks := plot.Ticks(b.YMin, b.YMax, max(area.Dy()/gtx.Dp(60), 2))
	c.layoutTickLabels(gtx, th, area, proj, xTicks, yTicks)

	defer op.Offset(area.Min).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: area.Size()}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)

	c.layoutGrid(gtx, area.Size(), proj, xTicks, yTicks)
	c.layoutCurve(gtx, proj)
	for _, ov := range c.frame.Overlays {
		switch ov := ov.(type) {
		case plot.Integral:
			layoutIntegral(gtx, proj, ov)
		case plot.Tangent:
			layoutTangent(gtx, proj, ov)
		}
	}
	if c.isHovered {
		c.layoutHover(gtx, th, area.Size(), proj)
	}
	return D{Size: size}
}

func (c *ChartView) layoutTickLabels(gtx C, th *material.Theme, area image.Rectangle, proj plot.Projection, xTicks, yTicks []plot.Tick) {
	gap := gtx.Dp(4)
	label := material.Caption(th, "")
	label.MaxLines = 1

	usedX := math.MinInt
	for _, t := range xTicks {
		if !t.Major {
			continue
		}
		x := area.Min.X + int(math.Round(proj.X(t.Value)))
		if x < area.Min.X-1 || x > area.Max.X+1 {
			continue
		}
		label.Text = formatTick(t.Value)
		dims, call := rec(gtx, label.Layout)
		left := x - dims.Size.X/2
		if left < usedX+gap {
			continue
		}
		stack := op.Offset(image.Pt(left, area.Max.Y+gap/2)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
		usedX = left + dims.Size.X
	}

	for _, t := range yTicks {
		if !t.Major {
			continue
		}
		y := area.Min.Y + int(math.Round(proj.Y(t.Value)))
		if y < area.Min.Y-1 || y > area.Max.Y+1 {
			continue
		}
		label.Text = formatTick(t.Value)
		dims, call := rec(gtx, label.Layout)
		stack := op.Offset(image.Pt(area.Min.X-dims.Size.X-gap, y-dims.Size.Y/2)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

// layoutGrid draws solid major and dotted minor grid lines, then the zero
// axes if they are in view.
func (c *ChartView) layoutGrid(gtx C, size image.Point, proj plot.Projection, xTicks, yTicks []plot.Tick) {
	w, h := float64(size.X), float64(size.Y)
	oneDp := float32(gtx.Dp(1))
	for _, major := range []bool{false, true} {
		var path stroke.Path
		path.Segments = c.grid[:0]
		for _, t := range xTicks {
			if t.Major == major {
				x := proj.X(t.Value)
				path.Segments = append(path.Segments, stroke.MoveTo(pt(x, 0)), stroke.LineTo(pt(x, h)))
			}
		}
		for _, t := range yTicks {
			if t.Major == major {
				y := proj.Y(t.Value)
				path.Segments = append(path.Segments, stroke.MoveTo(pt(0, y)), stroke.LineTo(pt(w, y)))
			}
		}
		c.grid = path.Segments
		if len(path.Segments) == 0 {
			continue
		}
		s := stroke.Stroke{Path: path, Width: oneDp}
		col := majorGridColor
		if !major {
			s.Dashes = stroke.Dashes{Dashes: []float32{oneDp, 3 * oneDp}}
			col = minorGridColor
		}
		paint.FillShape(gtx.Ops, col, s.Op(gtx.Ops))
	}

	b := c.frame.Bounds
	var axes stroke.Path
	if b.ContainsX(0) {
		x := proj.X(0)
		axes.Segments = append(axes.Segments, stroke.MoveTo(pt(x, 0)), stroke.LineTo(pt(x, h)))
	}
	if b.YMin <= 0 && b.YMax >= 0 {
		y := proj.Y(0)
		axes.Segments = append(axes.Segments, stroke.MoveTo(pt(0, y)), stroke.LineTo(pt(w, y)))
	}
	if len(axes.Segments) > 0 {
		paint.FillShape(gtx.Ops, axisColor, stroke.Stroke{Path: axes, Width: oneDp}.Op(gtx.Ops))
	}
}

// layoutCurve strokes every segment of the base curve as its own subpath
// so that no line is drawn across a discontinuity.
func (c *ChartView) layoutCurve(gtx C, proj plot.Projection) {
	var path stroke.Path
	path.Segments = c.curve[:0]
	for _, seg := range c.frame.Segments {
		if len(seg) == 0 {
			continue
		}
		path.Segments = append(path.Segments, stroke.MoveTo(pt(proj.Point(seg[0]))))
		switch {
		case len(seg) == 1:
			// The default round cap draws a zero length line as a dot.
			path.Segments = append(path.Segments, stroke.LineTo(pt(proj.Point(seg[0]))))
		case c.frame.Smooth:
			for _, cb := range plot.CanonicalSpline(seg, plot.DefaultTension) {
				path.Segments = append(path.Segments, stroke.CubeTo(
					pt(proj.Point(cb.C1)),
					pt(proj.Point(cb.C2)),
					pt(proj.Point(cb.To)),
				))
			}
		default:
			for _, s := range seg[1:] {
				path.Segments = append(path.Segments, stroke.LineTo(pt(proj.Point(s))))
			}
		}
	}
	c.curve = path.Segments
	if len(path.Segments) == 0 {
		return
	}
	paint.FillShape(gtx.Ops, curveColor, stroke.Stroke{
		Path:  path,
		Width: float32(gtx.Dp(2)),
	}.Op(gtx.Ops))
}

func layoutIntegral(gtx C, proj plot.Projection, ov plot.Integral) {
	if len(ov.Region) == 0 {
		return
	}
	first, last := ov.Region[0], ov.Region[len(ov.Region)-1]
	zero := proj.Y(0)

	var p clip.Path
	p.Begin(gtx.Ops)
	p.MoveTo(pt(proj.X(first.X), zero))
	for _, s := range ov.Region {
		p.LineTo(pt(proj.Point(s)))
	}
	p.LineTo(pt(proj.X(last.X), zero))
	p.Close()
	paint.FillShape(gtx.Ops, integralColor, clip.Outline{Path: p.End()}.Op())

	var edge stroke.Path
	edge.Segments = make([]stroke.Segment, 0, len(ov.Region)+3)
	edge.Segments = append(edge.Segments, stroke.MoveTo(pt(proj.X(first.X), zero)))
	for _, s := range ov.Region {
		edge.Segments = append(edge.Segments, stroke.LineTo(pt(proj.Point(s))))
	}
	edge.Segments = append(edge.Segments,
		stroke.LineTo(pt(proj.X(last.X), zero)),
		stroke.LineTo(pt(proj.X(first.X), zero)),
	)
	paint.FillShape(gtx.Ops, integralEdge, stroke.Stroke{Path: edge, Width: float32(gtx.Dp(1))}.Op(gtx.Ops))
}

func layoutTangent(gtx C, proj plot.Projection, ov plot.Tangent) {
	oneDp := float32(gtx.Dp(1))
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(pt(proj.Point(ov.From))),
		stroke.LineTo(pt(proj.Point(ov.To))),
	}
	paint.FillShape(gtx.Ops, tangentColor, stroke.Stroke{
		Path:   path,
		Width:  2 * oneDp,
		Dashes: stroke.Dashes{Dashes: []float32{6 * oneDp, 4 * oneDp}},
	}.Op(gtx.Ops))

	center := pt(proj.Point(ov.Marker)).Round()
	r := gtx.Dp(5)
	paint.FillShape(gtx.Ops, tangentColor, clip.Ellipse{
		Min: center.Sub(image.Pt(r, r)),
		Max: center.Add(image.Pt(r, r)),
	}.Op(gtx.Ops))
}

// layoutHover shows the summary of the topmost integral under the cursor.
func (c *ChartView) layoutHover(gtx C, th *material.Theme, size image.Point, proj plot.Projection) {
	at := proj.Sample(float64(c.pos.X), float64(c.pos.Y))
	var summary string
	for i := len(c.frame.Overlays) - 1; i >= 0; i-- {
		if ov, ok := c.frame.Overlays[i].(plot.Integral); ok && at.X >= ov.A && at.X <= ov.B {
			summary = ov.Summary
			break
		}
	}
	if summary == "" {
		return
	}

	xR := ceil(c.pos.X)
	xL := xR - float32(gtx.Dp(1))
	paint.FillShape(gtx.Ops, axisColor, clip.Rect{
		Min: image.Point{X: int(xL)},
		Max: image.Point{X: int(xR), Y: size.Y},
	}.Op())

	gtx.Constraints.Min = image.Point{}
	hoverInfoDims, hoverInfoCall := rec(gtx, func(gtx C) D {
		return layout.Background{}.Layout(gtx,
			func(gtx C) D {
				paint.FillShape(gtx.Ops, hoverColor, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			},
			func(gtx C) D {
				return layout.UniformInset(10).Layout(gtx, material.Body2(th, summary).Layout)
			},
		)
	})

	pos := image.Point{}
	if int(xL) > size.X-int(xR) {
		pos.X = max(int(xL)-hoverInfoDims.Size.X, 0)
	} else {
		pos.X = min(int(xR), size.X-hoverInfoDims.Size.X)
	}
	pos.Y = min(int(floor(c.pos.Y)), size.Y-hoverInfoDims.Size.Y)
	pos.Y = max(pos.Y, 0)
	defer op.Offset(pos).Push(gtx.Ops).Pop()
	hoverInfoCall.Add(gtx.Ops)
}
