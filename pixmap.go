package pixmap

import "fmt"

// Pixmap describes a raw pixel buffer handed to a paint engine.
// It does not own Data.
type Pixmap struct {
	Data        []byte
	Width       int
	Height      int
	BytePerLine int
	PixFormat   PixelFormat
	// BottomUp is set when the first row in Data is the visually lowest one.
	BottomUp bool
}

// NewPixmap allocates a top-down pixmap with rows aligned to RowAlignment.
func NewPixmap(width int, height int, pixFormat PixelFormat) (*Pixmap, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !pixFormat.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, pixFormat)
	}

	bytePerLine := CalcRowLen(width, pixFormat.BitsPerPixel())
	return &Pixmap{
		Data:        make([]byte, bytePerLine*height),
		Width:       width,
		Height:      height,
		BytePerLine: bytePerLine,
		PixFormat:   pixFormat,
	}, nil
}

// RowSize returns the number of meaningful bytes in a row.
func (pixmap *Pixmap) RowSize() int {
	return pixmap.Width * GetPixelSize(pixmap.PixFormat)
}

// Row returns the pixels of the visual row y, without padding.
func (pixmap *Pixmap) Row(y int) []byte {
	if pixmap.BottomUp {
		y = pixmap.Height - 1 - y
	}
	offset := y * pixmap.BytePerLine
	return pixmap.Data[offset : offset+pixmap.RowSize()]
}
