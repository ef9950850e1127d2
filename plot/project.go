package plot

// Projection maps data coordinates onto a pixel rectangle of the given size
// with the origin at the top left. Y grows downward in pixel space.
type Projection struct {
	mX, bX float64
	mY, bY float64
}

// NewProjection returns the projection of b onto a width x height area.
// Empty ranges are widened to one unit so the projection stays finite.
func NewProjection(b Bounds, width, height float64) Projection {
	xRange := b.XRange()
	if xRange == 0 {
		xRange = 1
	}
	yRange := b.YRange()
	if yRange == 0 {
		yRange = 1
	}
	mX := width / xRange
	mY := -height / yRange
	return Projection{
		mX: mX,
		bX: -b.XMin * mX,
		mY: mY,
		bY: -b.YMax * mY,
	}
}

// X returns the pixel column of x.
func (p Projection) X(x float64) float64 {
	return p.mX*x + p.bX
}

// Y returns the pixel row of y.
func (p Projection) Y(y float64) float64 {
	return p.mY*y + p.bY
}

// Point returns the pixel position of s.
func (p Projection) Point(s Sample) (x, y float64) {
	return p.X(s.X), p.Y(s.Y)
}

// Sample returns the data coordinates of a pixel position.
func (p Projection) Sample(px, py float64) Sample {
	return Pt((px-p.bX)/p.mX, (py-p.bY)/p.mY)
}
