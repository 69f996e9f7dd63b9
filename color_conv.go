package pixmap

import "image/color"

type pixelReader func(p []byte) color.NRGBA
type pixelWriter func(p []byte, c color.NRGBA)

var pixelReaders = [pixelFormatCount]pixelReader{
	Gray8:  readGray8,
	RGB555: readRGB555,
	RGB565: readRGB565,
	RGB24:  PixFmtRGB24{}.Get,
	BGR24:  PixFmtBGR24{}.Get,
	RGBA32: PixFmtRGBA32{}.Get,
	ARGB32: PixFmtARGB32{}.Get,
	ABGR32: PixFmtABGR32{}.Get,
	BGRA32: PixFmtBGRA32{}.Get,
}

var pixelWriters = [pixelFormatCount]pixelWriter{
	Gray8:  writeGray8,
	RGB555: writeRGB555,
	RGB565: writeRGB565,
	RGB24:  PixFmtRGB24{}.Set,
	BGR24:  PixFmtBGR24{}.Set,
	RGBA32: PixFmtRGBA32{}.Set,
	ARGB32: PixFmtARGB32{}.Set,
	ABGR32: PixFmtABGR32{}.Set,
	BGRA32: PixFmtBGRA32{}.Set,
}

func readGray8(p []byte) color.NRGBA {
	return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 0xFF}
}

func writeGray8(p []byte, c color.NRGBA) {
	// Rec.601 luma
	p[0] = byte((int(c.R)*299 + int(c.G)*587 + int(c.B)*114 + 500) / 1000)
}

// expand5 and expand6 widen a channel by replicating its high bits so that
// full intensity maps to 0xFF.
func expand5(v uint16) uint8 { return uint8(v<<3 | v>>2) }
func expand6(v uint16) uint8 { return uint8(v<<2 | v>>4) }

func readRGB555(p []byte) color.NRGBA {
	v := uint16(p[0]) | uint16(p[1])<<8
	return color.NRGBA{
		R: expand5(v >> 10 & 0x1F),
		G: expand5(v >> 5 & 0x1F),
		B: expand5(v & 0x1F),
		A: 0xFF,
	}
}

func writeRGB555(p []byte, c color.NRGBA) {
	v := uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
	p[0], p[1] = byte(v), byte(v>>8)
}

func readRGB565(p []byte) color.NRGBA {
	v := uint16(p[0]) | uint16(p[1])<<8
	return color.NRGBA{
		R: expand5(v >> 11 & 0x1F),
		G: expand6(v >> 5 & 0x3F),
		B: expand5(v & 0x1F),
		A: 0xFF,
	}
}

func writeRGB565(p []byte, c color.NRGBA) {
	v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
	p[0], p[1] = byte(v), byte(v>>8)
}

// ColorFromClearValue decodes a 0xAARRGGBB clear value.
func ColorFromClearValue(clearVal uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(clearVal >> 24),
		R: uint8(clearVal >> 16),
		G: uint8(clearVal >> 8),
		B: uint8(clearVal),
	}
}

// fillRow writes the packed representation of c into every pixel of row.
func fillRow(row []byte, pixFormat PixelFormat, width int, c color.NRGBA) {
	pixSize := GetPixelSize(pixFormat)
	pixel := make([]byte, pixSize)
	pixelWriters[pixFormat](pixel, c)
	for x := 0; x < width; x++ {
		copy(row[x*pixSize:], pixel)
	}
}

// convertRow converts width pixels of src (in srcFormat) into dst (in dstFormat).
func convertRow(dst []byte, dstFormat PixelFormat, src []byte, srcFormat PixelFormat, width int) {
	if dstFormat == srcFormat {
		copy(dst, src[:width*GetPixelSize(srcFormat)])
		return
	}

	read := pixelReaders[srcFormat]
	write := pixelWriters[dstFormat]
	srcSize := GetPixelSize(srcFormat)
	dstSize := GetPixelSize(dstFormat)
	for x := 0; x < width; x++ {
		write(dst[x*dstSize:], read(src[x*srcSize:]))
	}
}
