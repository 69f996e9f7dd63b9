package pixmap

import (
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// SpanGenerator produces a horizontal span of destination pixels.
type SpanGenerator interface {
	// Generate fills span with the pixels of the destination row y,
	// starting at column x.
	Generate(span []color.NRGBA, x, y int)
}

// SpanImageFilterNN picks the source pixel containing the mapped center of
// every destination pixel.
type SpanImageFilterNN[F PixFmt] struct {
	src    *ImageAccessorClip[F]
	interp *SpanInterpolatorLinear
}

// NewSpanImageFilterNN creates a nearest neighbour filter.
func NewSpanImageFilterNN[F PixFmt](src *ImageAccessorClip[F], interp *SpanInterpolatorLinear) *SpanImageFilterNN[F] {
	return &SpanImageFilterNN[F]{src: src, interp: interp}
}

func (f *SpanImageFilterNN[F]) Generate(span []color.NRGBA, x, y int) {
	f.interp.Begin(float64(x)+0.5, float64(y)+0.5, len(span))
	for i := range span {
		sx, sy := f.interp.Coordinates()
		span[i] = f.src.Pixel(int(math.Floor(sx)), int(math.Floor(sy)))
		f.interp.Next()
	}
}

// SpanImageFilterBilinear blends the four source pixels around the mapped
// center of every destination pixel.
type SpanImageFilterBilinear[F PixFmt] struct {
	src    *ImageAccessorClip[F]
	interp *SpanInterpolatorLinear
}

// NewSpanImageFilterBilinear creates a bilinear filter.
func NewSpanImageFilterBilinear[F PixFmt](src *ImageAccessorClip[F], interp *SpanInterpolatorLinear) *SpanImageFilterBilinear[F] {
	return &SpanImageFilterBilinear[F]{src: src, interp: interp}
}

func (f *SpanImageFilterBilinear[F]) Generate(span []color.NRGBA, x, y int) {
	f.interp.Begin(float64(x)+0.5, float64(y)+0.5, len(span))
	for i := range span {
		sx, sy := f.interp.Coordinates()
		sx -= 0.5
		sy -= 0.5
		fx, fy := math.Floor(sx), math.Floor(sy)
		tx, ty := sx-fx, sy-fy
		ix, iy := int(fx), int(fy)

		var acc accumulator
		acc.add(f.src.Pixel(ix, iy), (1-tx)*(1-ty))
		acc.add(f.src.Pixel(ix+1, iy), tx*(1-ty))
		acc.add(f.src.Pixel(ix, iy+1), (1-tx)*ty)
		acc.add(f.src.Pixel(ix+1, iy+1), tx*ty)
		span[i] = acc.color(1)
		f.interp.Next()
	}
}

// SpanImageFilterGeneral convolves the source with a separable kernel
// centered on the mapped center of every destination pixel. The kernel is
// not stretched when the transformation scales down.
type SpanImageFilterGeneral[F PixFmt] struct {
	src     *ImageAccessorClip[F]
	interp  *SpanInterpolatorLinear
	kernel  *draw.Kernel
	weights []float64
}

// NewSpanImageFilterGeneral creates a filter using kernel, for example
// draw.BiLinear, draw.CatmullRom or Lanczos3.
func NewSpanImageFilterGeneral[F PixFmt](src *ImageAccessorClip[F], interp *SpanInterpolatorLinear,
	kernel *draw.Kernel) *SpanImageFilterGeneral[F] {

	return &SpanImageFilterGeneral[F]{src: src, interp: interp, kernel: kernel}
}

// Kernel returns the filter kernel.
func (f *SpanImageFilterGeneral[F]) Kernel() *draw.Kernel {
	return f.kernel
}

func (f *SpanImageFilterGeneral[F]) Generate(span []color.NRGBA, x, y int) {
	support := f.kernel.Support
	f.interp.Begin(float64(x)+0.5, float64(y)+0.5, len(span))
	for i := range span {
		sx, sy := f.interp.Coordinates()
		sx -= 0.5
		sy -= 0.5

		x0, x1 := int(math.Ceil(sx-support)), int(math.Floor(sx+support))
		y0, y1 := int(math.Ceil(sy-support)), int(math.Floor(sy+support))

		f.weights = f.weights[:0]
		for ix := x0; ix <= x1; ix++ {
			f.weights = append(f.weights, kernelAt(f.kernel, float64(ix)-sx))
		}

		var acc accumulator
		var total float64
		for iy := y0; iy <= y1; iy++ {
			wy := kernelAt(f.kernel, float64(iy)-sy)
			if wy == 0 {
				continue
			}
			for j, wx := range f.weights {
				w := wx * wy
				if w == 0 {
					continue
				}
				acc.add(f.src.Pixel(x0+j, iy), w)
				total += w
			}
		}
		span[i] = acc.color(total)
		f.interp.Next()
	}
}

// kernelAt evaluates kernel at offset t. draw.Kernel functions are only
// defined on [0, Support).
func kernelAt(kernel *draw.Kernel, t float64) float64 {
	t = math.Abs(t)
	if t >= kernel.Support {
		return 0
	}
	return kernel.At(t)
}

type accumulator struct {
	r, g, b, a float64
}

func (acc *accumulator) add(c color.NRGBA, w float64) {
	acc.r += float64(c.R) * w
	acc.g += float64(c.G) * w
	acc.b += float64(c.B) * w
	acc.a += float64(c.A) * w
}

func (acc *accumulator) color(total float64) color.NRGBA {
	if total == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: clampChannel(acc.r / total),
		G: clampChannel(acc.g / total),
		B: clampChannel(acc.b / total),
		A: clampChannel(acc.a / total),
	}
}

func clampChannel(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}
