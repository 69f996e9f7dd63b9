package pixmap

// SpanInterpolatorLinear maps the pixels of a horizontal destination span to
// source coordinates. Only the two end points of a span are transformed;
// the coordinates in between are interpolated linearly, which is exact for
// affine transformations.
type SpanInterpolatorLinear struct {
	mtx Affine

	x0, y0 float64
	dx, dy float64
	step   int
}

// NewSpanInterpolatorLinear creates an interpolator for the destination to
// source transformation mtx.
func NewSpanInterpolatorLinear(mtx Affine) *SpanInterpolatorLinear {
	return &SpanInterpolatorLinear{mtx: mtx}
}

// Transformer returns the destination to source transformation.
func (i *SpanInterpolatorLinear) Transformer() Affine {
	return i.mtx
}

// SetTransformer replaces the destination to source transformation.
func (i *SpanInterpolatorLinear) SetTransformer(mtx Affine) {
	i.mtx = mtx
}

// Begin starts a span of length pixels whose first pixel is at (x, y).
func (i *SpanInterpolatorLinear) Begin(x, y float64, length int) {
	i.x0, i.y0 = i.mtx.Transform(x, y)
	i.dx, i.dy = 0, 0
	if length > 0 {
		x1, y1 := i.mtx.Transform(x+float64(length), y)
		i.dx = (x1 - i.x0) / float64(length)
		i.dy = (y1 - i.y0) / float64(length)
	}
	i.step = 0
}

// Coordinates returns the source coordinates of the current pixel.
func (i *SpanInterpolatorLinear) Coordinates() (float64, float64) {
	k := float64(i.step)
	return i.x0 + k*i.dx, i.y0 + k*i.dy
}

// Next advances to the next pixel of the span.
func (i *SpanInterpolatorLinear) Next() {
	i.step++
}
