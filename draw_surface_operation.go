package pixmap

type drawSurfaceOperation struct {
	x       int
	y       int
	scale   float64
	surface *Surface
}

func (o *drawSurfaceOperation) Draw(paintEngine PaintEngine) error {
	if o.surface.engine != paintEngine {
		log.Warn("Surface is drawn with a paint engine it was not created for")
	}
	return o.surface.Draw(o.x, o.y, o.scale)
}

// NewDrawSurfaceOperation creates an operation to draw the system buffer of
// the surface at (x, y) scaled by scale.
func NewDrawSurfaceOperation(x int, y int, scale float64, surface *Surface) DrawOperation {
	return &drawSurfaceOperation{
		x:       x,
		y:       y,
		scale:   scale,
		surface: surface,
	}
}
