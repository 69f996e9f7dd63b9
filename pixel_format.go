package pixmap

// PixelFormat is an enumeration of pixel formats
type PixelFormat int

const (
	// Undefined is the zero format. No conversions are applied to it.
	Undefined PixelFormat = iota
	// Gray8 is 256 level grayscale, one byte per pixel
	Gray8
	// RGB555 is 15-bit RGB stored in a little-endian 16-bit word (0rrrrrgg gggbbbbb)
	RGB555
	// RGB565 is 16-bit RGB stored in a little-endian 16-bit word (rrrrrggg gggbbbbb)
	RGB565
	// RGB24 is R-G-B, one byte per component
	RGB24
	// BGR24 is B-G-R, one byte per component (win32 BMP order)
	BGR24
	// RGBA32 is R-G-B-A, one byte per component
	RGBA32
	// ARGB32 is A-R-G-B, one byte per component
	ARGB32
	// ABGR32 is A-B-G-R, one byte per component
	ABGR32
	// BGRA32 is B-G-R-A, one byte per component (win32 BMP order)
	BGRA32

	pixelFormatCount
)

type pixelFormatInfo struct {
	name     string
	size     int
	bits     int
	depth    int
	hasAlpha bool
}

var pixelFormatTable = [pixelFormatCount]pixelFormatInfo{
	Undefined: {name: "Undefined"},
	Gray8:     {name: "Gray8", size: 1, bits: 8, depth: 8},
	RGB555:    {name: "RGB555", size: 2, bits: 16, depth: 15},
	RGB565:    {name: "RGB565", size: 2, bits: 16, depth: 16},
	RGB24:     {name: "RGB24", size: 3, bits: 24, depth: 24},
	BGR24:     {name: "BGR24", size: 3, bits: 24, depth: 24},
	RGBA32:    {name: "RGBA32", size: 4, bits: 32, depth: 32, hasAlpha: true},
	ARGB32:    {name: "ARGB32", size: 4, bits: 32, depth: 32, hasAlpha: true},
	ABGR32:    {name: "ABGR32", size: 4, bits: 32, depth: 32, hasAlpha: true},
	BGRA32:    {name: "BGRA32", size: 4, bits: 32, depth: 32, hasAlpha: true},
}

func (pixFormat PixelFormat) info() pixelFormatInfo {
	if pixFormat < 0 || pixFormat >= pixelFormatCount {
		return pixelFormatInfo{name: "Unknown"}
	}
	return pixelFormatTable[pixFormat]
}

// IsValid reports whether the format describes a concrete memory layout.
func (pixFormat PixelFormat) IsValid() bool {
	return pixFormat > Undefined && pixFormat < pixelFormatCount
}

// HasAlpha reports whether the format stores an alpha channel.
func (pixFormat PixelFormat) HasAlpha() bool {
	return pixFormat.info().hasAlpha
}

// BitsPerPixel returns the number of storage bits of one pixel.
func (pixFormat PixelFormat) BitsPerPixel() int {
	return pixFormat.info().bits
}

func (pixFormat PixelFormat) String() string {
	return pixFormat.info().name
}

// GetPixelSize returns the size of one pixel in bytes
func GetPixelSize(pixFormat PixelFormat) int {
	return pixFormat.info().size
}

// GetPixelDepth returns the color depth of the format in bits
func GetPixelDepth(pixFormat PixelFormat) int {
	return pixFormat.info().depth
}

// ParsePixelFormat returns the format with the given name.
func ParsePixelFormat(name string) (PixelFormat, error) {
	for pixFormat := Gray8; pixFormat < pixelFormatCount; pixFormat++ {
		if pixelFormatTable[pixFormat].name == name {
			return pixFormat, nil
		}
	}
	return Undefined, ErrUnsupportedFormat
}
