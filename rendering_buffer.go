package pixmap

// RenderingBuffer is a row addressable view over one of the buffers of a
// Surface. It does not own the memory: it keeps a reference to the Surface
// and resolves the buffer on every access, so a view used after the Surface
// has been destroyed panics with ErrSurfaceDestroyed instead of touching
// released memory.
//
// Row 0 is always the visually top row. For bottom-up surfaces the stride is
// negative and row 0 is the last row stored in memory.
type RenderingBuffer struct {
	owner  *Surface
	system bool
}

func (rb *RenderingBuffer) geometry() (buf []byte, pixFormat PixelFormat, absStride int) {
	s := rb.owner
	if s == nil || s.destroyed {
		panic(ErrSurfaceDestroyed)
	}
	if rb.system {
		return s.buf2, s.sysFormat, s.sysStride
	}
	return s.buf, s.format, s.stride
}

func (rb *RenderingBuffer) bottomUp() bool {
	if rb.system {
		return rb.owner.sysBottomUp
	}
	return rb.owner.bottomUp
}

// Width returns the width in pixels.
func (rb *RenderingBuffer) Width() int {
	rb.geometry()
	return rb.owner.width
}

// Height returns the height in pixels.
func (rb *RenderingBuffer) Height() int {
	rb.geometry()
	return rb.owner.height
}

// PixFormat returns the pixel format of the viewed buffer.
func (rb *RenderingBuffer) PixFormat() PixelFormat {
	_, pixFormat, _ := rb.geometry()
	return pixFormat
}

// Stride returns the signed distance in bytes from row y to row y+1.
func (rb *RenderingBuffer) Stride() int {
	_, _, absStride := rb.geometry()
	if rb.bottomUp() {
		return -absStride
	}
	return absStride
}

// StrideAbs returns the row length in bytes, padding included.
func (rb *RenderingBuffer) StrideAbs() int {
	_, _, absStride := rb.geometry()
	return absStride
}

// RowOffset returns the offset in the underlying buffer of the first byte of row y.
func (rb *RenderingBuffer) RowOffset(y int) int {
	_, _, absStride := rb.geometry()
	if rb.bottomUp() {
		return (rb.owner.height - 1 - y) * absStride
	}
	return y * absStride
}

// Row returns the bytes of row y, padding included.
// It panics if y is outside [0, Height()).
func (rb *RenderingBuffer) Row(y int) []byte {
	buf, _, absStride := rb.geometry()
	if y < 0 || y >= rb.owner.height {
		panic("pixmap: row index out of range")
	}
	offset := rb.RowOffset(y)
	return buf[offset : offset+absStride : offset+absStride]
}

// PixelBytes returns the bytes of pixel (x, y) or nil when out of range.
func (rb *RenderingBuffer) PixelBytes(x, y int) []byte {
	_, pixFormat, _ := rb.geometry()
	if x < 0 || y < 0 || x >= rb.owner.width || y >= rb.owner.height {
		return nil
	}
	pixSize := GetPixelSize(pixFormat)
	row := rb.Row(y)
	return row[x*pixSize : (x+1)*pixSize]
}
