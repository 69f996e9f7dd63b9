package pixmap

import "image"

type drawPixmapOperation struct {
	dst    image.Rectangle
	pixmap *Pixmap
}

func (o *drawPixmapOperation) Draw(paintEngine PaintEngine) error {
	return paintEngine.DrawPixmap(o.dst, o.pixmap)
}

// NewDrawPixmapOperation creates an operation to draw the pixmap unscaled at top.
func NewDrawPixmapOperation(top image.Point, pixmap *Pixmap) DrawOperation {
	return &drawPixmapOperation{
		dst:    image.Rect(top.X, top.Y, top.X+pixmap.Width, top.Y+pixmap.Height),
		pixmap: pixmap,
	}
}
