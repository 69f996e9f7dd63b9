package pixmap

import "image/color"

// ImageAccessorClip reads pixels of format F from a rendering buffer.
// Coordinates outside the image yield the background color, so filters
// never need special handling at the edges. For formats without alpha the
// background is opaque.
type ImageAccessorClip[F PixFmt] struct {
	rb         *RenderingBuffer
	background color.NRGBA
	width      int
	height     int
	pixFmt     F
}

// NewImageAccessorClip creates an accessor over rb. It fails with
// ErrFormatMismatch when rb does not hold pixels of format F.
func NewImageAccessorClip[F PixFmt](rb *RenderingBuffer, background color.NRGBA) (*ImageAccessorClip[F], error) {
	var pixFmt F
	if rb.PixFormat() != pixFmt.Format() {
		return nil, ErrFormatMismatch
	}
	if !pixFmt.Format().HasAlpha() {
		background.A = 0xFF
	}
	return &ImageAccessorClip[F]{
		rb:         rb,
		background: background,
		width:      rb.Width(),
		height:     rb.Height(),
	}, nil
}

// Background returns the color returned for out of range coordinates.
func (a *ImageAccessorClip[F]) Background() color.NRGBA {
	return a.background
}

// Width returns the width of the source image.
func (a *ImageAccessorClip[F]) Width() int { return a.width }

// Height returns the height of the source image.
func (a *ImageAccessorClip[F]) Height() int { return a.height }

// Pixel returns the pixel at (x, y) or the background color.
func (a *ImageAccessorClip[F]) Pixel(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= a.width || y >= a.height {
		return a.background
	}
	row := a.rb.Row(y)
	return a.pixFmt.Get(row[x*a.pixFmt.PixelSize():])
}
