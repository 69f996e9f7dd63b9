package pixmap

import (
	"image"
)

type nullPaintEngine struct {
}

// NullPaintEngine returns null paint engine
func NullPaintEngine() PaintEngine {
	return nullPaintEngine{}
}

func (nullPaintEngine) NativeFormat() PixelFormat {
	return Undefined
}

func (nullPaintEngine) GetWidth() int {
	return 0
}

func (nullPaintEngine) GetHeight() int {
	return 0
}

func (nullPaintEngine) Begin() error {
	return nil
}

func (nullPaintEngine) Clear(rect image.Rectangle) error {
	return nil
}

func (nullPaintEngine) DrawPixmap(dst image.Rectangle, pixmap *Pixmap) error {
	return nil
}

func (nullPaintEngine) End() error {
	return nil
}
