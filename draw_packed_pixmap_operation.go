package pixmap

import "image"

type drawPackedPixmapOperation struct {
	top    image.Point
	pixmap *PackedPixmap
}

func (o *drawPackedPixmapOperation) Draw(paintEngine PaintEngine) error {
	pixmap, err := o.pixmap.Unpack()
	if err != nil {
		return err
	}

	dst := image.Rect(o.top.X, o.top.Y, o.top.X+pixmap.Width, o.top.Y+pixmap.Height)
	return paintEngine.DrawPixmap(dst, pixmap)
}

// NewDrawPackedPixmapOperation creates an operation to draw the packed pixmap.
func NewDrawPackedPixmapOperation(top image.Point, pixmap *PackedPixmap) DrawOperation {
	return &drawPackedPixmapOperation{
		top:    top,
		pixmap: pixmap,
	}
}
