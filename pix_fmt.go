package pixmap

import "image/color"

// PixFmt is a pixel layout known at compile time. Each implementation fixes
// the channel offsets of one format, so generic code instantiated with it
// reads and writes pixels without branching on the format.
//
// Only the formats that can be resampled implement PixFmt. There is
// deliberately no implementation for Gray8, RGB555 and RGB565.
type PixFmt interface {
	Format() PixelFormat
	PixelSize() int
	Get(p []byte) color.NRGBA
	Set(p []byte, c color.NRGBA)
}

// PixFmtRGB24 is the R-G-B layout.
type PixFmtRGB24 struct{}

func (PixFmtRGB24) Format() PixelFormat { return RGB24 }
func (PixFmtRGB24) PixelSize() int      { return 3 }

func (PixFmtRGB24) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xFF}
}

func (PixFmtRGB24) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2] = c.R, c.G, c.B
}

// PixFmtBGR24 is the B-G-R layout.
type PixFmtBGR24 struct{}

func (PixFmtBGR24) Format() PixelFormat { return BGR24 }
func (PixFmtBGR24) PixelSize() int      { return 3 }

func (PixFmtBGR24) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xFF}
}

func (PixFmtBGR24) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2] = c.B, c.G, c.R
}

// PixFmtRGBA32 is the R-G-B-A layout.
type PixFmtRGBA32 struct{}

func (PixFmtRGBA32) Format() PixelFormat { return RGBA32 }
func (PixFmtRGBA32) PixelSize() int      { return 4 }

func (PixFmtRGBA32) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (PixFmtRGBA32) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// PixFmtARGB32 is the A-R-G-B layout.
type PixFmtARGB32 struct{}

func (PixFmtARGB32) Format() PixelFormat { return ARGB32 }
func (PixFmtARGB32) PixelSize() int      { return 4 }

func (PixFmtARGB32) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[1], G: p[2], B: p[3], A: p[0]}
}

func (PixFmtARGB32) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2], p[3] = c.A, c.R, c.G, c.B
}

// PixFmtABGR32 is the A-B-G-R layout.
type PixFmtABGR32 struct{}

func (PixFmtABGR32) Format() PixelFormat { return ABGR32 }
func (PixFmtABGR32) PixelSize() int      { return 4 }

func (PixFmtABGR32) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[3], G: p[2], B: p[1], A: p[0]}
}

func (PixFmtABGR32) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2], p[3] = c.A, c.B, c.G, c.R
}

// PixFmtBGRA32 is the B-G-R-A layout.
type PixFmtBGRA32 struct{}

func (PixFmtBGRA32) Format() PixelFormat { return BGRA32 }
func (PixFmtBGRA32) PixelSize() int      { return 4 }

func (PixFmtBGRA32) Get(p []byte) color.NRGBA {
	return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
}

func (PixFmtBGRA32) Set(p []byte, c color.NRGBA) {
	p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
}
