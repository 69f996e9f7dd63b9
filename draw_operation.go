package pixmap

import "image"

// DrawOperation is a single step of a Frame played against a paint engine.
type DrawOperation interface {
	Draw(paintEngine PaintEngine) error
}

type clearRectOperation struct {
	rect image.Rectangle
}

func (o clearRectOperation) Draw(paintEngine PaintEngine) error {
	return paintEngine.Clear(o.rect)
}

// NewClearDrawOperation creates an operation clearing rect on the device.
func NewClearDrawOperation(rect image.Rectangle) DrawOperation {
	return clearRectOperation{rect: rect}
}
