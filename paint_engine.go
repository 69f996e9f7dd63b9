package pixmap

import (
	"image"
)

// PaintEngine is the interface definition for drawing onto an output device
type PaintEngine interface {
	// NativeFormat returns the pixel format the device consumes without
	// conversion, or Undefined if it has no preference.
	NativeFormat() PixelFormat
	GetWidth() int
	GetHeight() int

	Begin() error
	Clear(rect image.Rectangle) error
	// DrawPixmap draws pixmap scaled into dst. BottomUp pixmaps are
	// flipped so that they appear right side up.
	DrawPixmap(dst image.Rectangle, pixmap *Pixmap) error
	End() error
}
