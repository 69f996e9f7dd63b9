package pixmap

import (
	"fmt"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ImageFilters binds the accessor and the span filters of pixel format F.
// All members of one bundle share F, so a source of one channel order can
// never be combined with a filter of another. The bundle only exists for
// formats implementing PixFmt; Gray8, RGB555 and RGB565 must be converted
// before resampling.
type ImageFilters[F PixFmt] struct{}

// Source creates the clipping accessor over rb.
func (ImageFilters[F]) Source(rb *RenderingBuffer, background color.NRGBA) (*ImageAccessorClip[F], error) {
	return NewImageAccessorClip[F](rb, background)
}

// Nearest creates the nearest neighbour filter.
func (ImageFilters[F]) Nearest(src *ImageAccessorClip[F], interp *SpanInterpolatorLinear) *SpanImageFilterNN[F] {
	return NewSpanImageFilterNN(src, interp)
}

// Bilinear creates the bilinear filter.
func (ImageFilters[F]) Bilinear(src *ImageAccessorClip[F], interp *SpanInterpolatorLinear) *SpanImageFilterBilinear[F] {
	return NewSpanImageFilterBilinear(src, interp)
}

// General creates the kernel filter.
func (ImageFilters[F]) General(src *ImageAccessorClip[F], interp *SpanInterpolatorLinear,
	kernel *draw.Kernel) *SpanImageFilterGeneral[F] {

	return NewSpanImageFilterGeneral(src, interp, kernel)
}

// FilterMode selects one of the filters of a FilterSet.
type FilterMode int

const (
	// FilterNearest selects the nearest neighbour filter
	FilterNearest FilterMode = iota
	// FilterBilinear selects the bilinear filter
	FilterBilinear
	// FilterGeneral selects the kernel filter
	FilterGeneral
)

func (mode FilterMode) String() string {
	switch mode {
	case FilterNearest:
		return "nearest"
	case FilterBilinear:
		return "bilinear"
	case FilterGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// FilterSet is the format-erased form of ImageFilters, for callers that
// learn the pixel format of a source image at run time.
type FilterSet struct {
	format   PixelFormat
	nearest  func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error)
	bilinear func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error)
	general  func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear, kernel *draw.Kernel) (SpanGenerator, error)
}

// newFilterSet is the only way a FilterSet is built, which keeps the
// members of a set on the same pixel format.
func newFilterSet[F PixFmt]() *FilterSet {
	var filters ImageFilters[F]
	var pixFmt F
	return &FilterSet{
		format: pixFmt.Format(),
		nearest: func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error) {
			src, err := filters.Source(rb, background)
			if err != nil {
				return nil, err
			}
			return filters.Nearest(src, interp), nil
		},
		bilinear: func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error) {
			src, err := filters.Source(rb, background)
			if err != nil {
				return nil, err
			}
			return filters.Bilinear(src, interp), nil
		},
		general: func(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear, kernel *draw.Kernel) (SpanGenerator, error) {
			src, err := filters.Source(rb, background)
			if err != nil {
				return nil, err
			}
			return filters.General(src, interp, kernel), nil
		},
	}
}

var filterSets = map[PixelFormat]*FilterSet{
	RGBA32: newFilterSet[PixFmtRGBA32](),
	BGRA32: newFilterSet[PixFmtBGRA32](),
	ARGB32: newFilterSet[PixFmtARGB32](),
	ABGR32: newFilterSet[PixFmtABGR32](),
	RGB24:  newFilterSet[PixFmtRGB24](),
	BGR24:  newFilterSet[PixFmtBGR24](),
}

// LookupImageFilters returns the filter set of pixFormat, or
// ErrUnsupportedFilterFormat when the format has none.
func LookupImageFilters(pixFormat PixelFormat) (*FilterSet, error) {
	set, ok := filterSets[pixFormat]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFilterFormat, pixFormat)
	}
	return set, nil
}

// Format returns the pixel format the set was built for.
func (set *FilterSet) Format() PixelFormat {
	return set.format
}

// Nearest creates a nearest neighbour span generator reading rb.
func (set *FilterSet) Nearest(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error) {
	return set.nearest(rb, background, interp)
}

// Bilinear creates a bilinear span generator reading rb.
func (set *FilterSet) Bilinear(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear) (SpanGenerator, error) {
	return set.bilinear(rb, background, interp)
}

// General creates a kernel span generator reading rb.
func (set *FilterSet) General(rb *RenderingBuffer, background color.NRGBA, interp *SpanInterpolatorLinear,
	kernel *draw.Kernel) (SpanGenerator, error) {

	return set.general(rb, background, interp, kernel)
}

// Filter creates the span generator selected by mode. A nil kernel stands
// for draw.CatmullRom.
func (set *FilterSet) Filter(mode FilterMode, rb *RenderingBuffer, background color.NRGBA,
	interp *SpanInterpolatorLinear, kernel *draw.Kernel) (SpanGenerator, error) {

	switch mode {
	case FilterNearest:
		return set.Nearest(rb, background, interp)
	case FilterBilinear:
		return set.Bilinear(rb, background, interp)
	case FilterGeneral:
		if kernel == nil {
			kernel = draw.CatmullRom
		}
		return set.General(rb, background, interp, kernel)
	default:
		return nil, fmt.Errorf("pixmap: unknown filter mode %d", mode)
	}
}

// Lanczos3 is the Lanczos windowed sinc kernel with three lobes.
var Lanczos3 = &draw.Kernel{
	Support: 3,
	At:      lanczos3,
}

func lanczos3(t float64) float64 {
	t = math.Abs(t)
	if t < 1e-12 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	return sinc(t) * sinc(t/3)
}

func sinc(x float64) float64 {
	x *= math.Pi
	return math.Sin(x) / x
}
