package pixmap

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// RowAlignment is the byte alignment of every row of a Surface buffer.
	RowAlignment = 4

	// MaxDimension is the largest accepted width or height.
	MaxDimension = 32000
)

// CalcRowLen returns the length in bytes of a row of width pixels of
// bitsPerPixel bits, rounded up to RowAlignment.
func CalcRowLen(width int, bitsPerPixel int) int {
	n := (width*bitsPerPixel + 7) / 8
	return (n + RowAlignment - 1) / RowAlignment * RowAlignment
}

// Surface is an in-memory image in a declared pixel format together with a
// copy of it converted to the format the paint engine consumes natively.
//
// The two buffers are not synchronised on every write: the system buffer is
// refreshed by Publish (and once by InitPlatform). Draw presents whatever the
// system buffer holds.
//
// A Surface is not safe for concurrent use.
type Surface struct {
	width    int
	height   int
	bottomUp bool

	format PixelFormat
	bpp    int
	stride int
	buf    []byte
	rbuf   RenderingBuffer

	sysFormat   PixelFormat
	sysBottomUp bool
	sysBpp      int
	sysStride   int
	buf2        []byte
	rbuf2       RenderingBuffer

	engine    PaintEngine
	destroyed bool
}

// NewSurface creates a surface of width x height pixels in pixFormat, fills
// it with clearVal (0xAARRGGBB) and allocates the system buffer for engine.
// A nil engine is replaced by NullPaintEngine.
func NewSurface(width int, height int, pixFormat PixelFormat, clearVal uint32, bottomUp bool,
	engine PaintEngine) (*Surface, error) {

	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !pixFormat.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, pixFormat)
	}
	if engine == nil {
		engine = NullPaintEngine()
	}

	s := &Surface{
		width:    width,
		height:   height,
		bottomUp: bottomUp,
		format:   pixFormat,
		bpp:      pixFormat.BitsPerPixel(),
		engine:   engine,
	}
	s.rbuf = RenderingBuffer{owner: s}
	s.rbuf2 = RenderingBuffer{owner: s, system: true}

	s.stride = CalcRowLen(width, s.bpp)
	s.buf = make([]byte, s.stride*height)
	s.Clear(clearVal)

	if err := s.InitPlatform(pixFormat, bottomUp); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"width":      width,
		"height":     height,
		"format":     pixFormat,
		"sys_format": s.sysFormat,
		"bottom_up":  bottomUp,
	}).Debug("Surface created")
	return s, nil
}

// NewSurfaceFromImage creates a surface in pixFormat holding a copy of img.
func NewSurfaceFromImage(img image.Image, pixFormat PixelFormat, bottomUp bool, engine PaintEngine) (*Surface, error) {
	bounds := img.Bounds()
	s, err := NewSurface(bounds.Dx(), bounds.Dy(), pixFormat, 0, bottomUp, engine)
	if err != nil {
		return nil, err
	}

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			s.SetPixel(x, y, c)
		}
	}
	s.Publish()
	return s, nil
}

// InitPlatform picks the system format from the paint engine and allocates
// the system buffer. pixFormat is used when the engine has no native format.
// bottomUp sets the orientation of the system buffer only. The
// declared-format buffer is left untouched; the new system buffer is
// filled with a conversion of it.
func (s *Surface) InitPlatform(pixFormat PixelFormat, bottomUp bool) error {
	if s.destroyed {
		return ErrSurfaceDestroyed
	}

	sysFormat := s.engine.NativeFormat()
	if sysFormat == Undefined {
		sysFormat = pixFormat
	}
	if !sysFormat.IsValid() {
		return fmt.Errorf("%w: system format %v", ErrUnsupportedFormat, sysFormat)
	}

	s.sysBottomUp = bottomUp
	s.sysFormat = sysFormat
	s.sysBpp = sysFormat.BitsPerPixel()
	s.sysStride = CalcRowLen(s.width, s.sysBpp)
	s.buf2 = make([]byte, s.sysStride*s.height)
	s.Publish()
	return nil
}

// Buf returns the declared-format buffer. The caller must respect Stride
// and orientation and must not keep the slice past Destroy.
func (s *Surface) Buf() []byte { return s.buf }

// Buf2 returns the system-format buffer.
func (s *Surface) Buf2() []byte { return s.buf2 }

// Rbuf returns the row view over the declared-format buffer.
func (s *Surface) Rbuf() *RenderingBuffer { return &s.rbuf }

// Rbuf2 returns the row view over the system-format buffer.
func (s *Surface) Rbuf2() *RenderingBuffer { return &s.rbuf2 }

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// Stride returns the row length of the declared-format buffer in bytes.
func (s *Surface) Stride() int { return s.stride }

// Stride2 returns the row length of the system-format buffer in bytes.
func (s *Surface) Stride2() int { return s.sysStride }

// BPP returns the bits per pixel of the declared format.
func (s *Surface) BPP() int { return s.bpp }

// SysBPP returns the bits per pixel of the system format.
func (s *Surface) SysBPP() int { return s.sysBpp }

// PixFormat returns the declared pixel format.
func (s *Surface) PixFormat() PixelFormat { return s.format }

// SysFormat returns the pixel format of the system buffer.
func (s *Surface) SysFormat() PixelFormat { return s.sysFormat }

// BottomUp reports whether row 0 of the declared-format buffer is stored
// last in memory.
func (s *Surface) BottomUp() bool { return s.bottomUp }

// SysBottomUp reports the orientation of the system buffer.
func (s *Surface) SysBottomUp() bool { return s.sysBottomUp }

// Clear fills the declared-format buffer with clearVal (0xAARRGGBB).
func (s *Surface) Clear(clearVal uint32) {
	if s.destroyed {
		return
	}
	c := ColorFromClearValue(clearVal)
	for y := 0; y < s.height; y++ {
		fillRow(s.buf[y*s.stride:], s.format, s.width, c)
	}
}

// Pixel returns the color at logical (x, y), or the zero color when out of range.
func (s *Surface) Pixel(x, y int) color.NRGBA {
	if s.destroyed {
		return color.NRGBA{}
	}
	p := s.rbuf.PixelBytes(x, y)
	if p == nil {
		return color.NRGBA{}
	}
	return pixelReaders[s.format](p)
}

// SetPixel stores c at logical (x, y). Out of range coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c color.NRGBA) {
	if s.destroyed {
		return
	}
	p := s.rbuf.PixelBytes(x, y)
	if p == nil {
		return
	}
	pixelWriters[s.format](p, c)
}

// Publish converts the declared-format buffer into the system buffer.
func (s *Surface) Publish() {
	if s.destroyed {
		return
	}
	for y := 0; y < s.height; y++ {
		convertRow(s.rbuf2.Row(y), s.sysFormat, s.rbuf.Row(y), s.format, s.width)
	}
}

// ConvertToARGB32 returns a new buffer of Width*Height*4 bytes holding the
// image as A-R-G-B pixels, rows top-down, without padding.
// It returns nil for a destroyed surface.
func (s *Surface) ConvertToARGB32() []byte {
	if s.destroyed {
		return nil
	}
	rowLen := s.width * 4
	out := make([]byte, rowLen*s.height)
	for y := 0; y < s.height; y++ {
		convertRow(out[y*rowLen:], ARGB32, s.rbuf.Row(y), s.format, s.width)
	}
	return out
}

// NRGBA returns a copy of the surface as an *image.NRGBA.
func (s *Surface) NRGBA() *image.NRGBA {
	argb := s.ConvertToARGB32()
	if argb == nil {
		return nil
	}
	img := image.NewNRGBA(image.Rect(0, 0, s.width, s.height))
	for i := 0; i < len(argb); i += 4 {
		img.Pix[i+0] = argb[i+1]
		img.Pix[i+1] = argb[i+2]
		img.Pix[i+2] = argb[i+3]
		img.Pix[i+3] = argb[i+0]
	}
	return img
}

// Pixmap describes the system buffer for a paint engine. The descriptor
// shares memory with the surface.
func (s *Surface) Pixmap() *Pixmap {
	if s.destroyed {
		return nil
	}
	return &Pixmap{
		Data:        s.buf2,
		Width:       s.width,
		Height:      s.height,
		BytePerLine: s.sysStride,
		PixFormat:   s.sysFormat,
		BottomUp:    s.sysBottomUp,
	}
}

// Draw draws the system buffer with the paint engine at (x, y), scaled by scale.
// Scale 1 maps one pixel to one device pixel. The engine must be between
// Begin and End.
func (s *Surface) Draw(x int, y int, scale float64) error {
	if s.destroyed {
		return ErrSurfaceDestroyed
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}

	w := int(math.Round(float64(s.width) * scale))
	h := int(math.Round(float64(s.height) * scale))
	if w == 0 || h == 0 {
		return nil
	}
	return s.engine.DrawPixmap(image.Rect(x, y, x+w, y+h), s.Pixmap())
}

// Destroy releases both buffers. Rendering buffers obtained from the surface
// must not be used afterwards. Calling Destroy again has no effect.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.buf = nil
	s.buf2 = nil
	log.WithField("format", s.format).Debug("Surface destroyed")
}
