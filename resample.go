package pixmap

import (
	"fmt"
	"image/color"

	"golang.org/x/image/draw"
)

// ResampleOptions configures Resample.
type ResampleOptions struct {
	Filter FilterMode
	// Kernel is used by FilterGeneral; nil means draw.CatmullRom.
	Kernel *draw.Kernel
	// Background is returned for source coordinates outside the image.
	Background color.NRGBA
}

// Resample fills dst with src transformed by srcToDst. The filter set is
// chosen by the pixel format of src; dst may be in any format. dst and src
// must be distinct surfaces, otherwise ErrSameSurface is returned. The
// system buffer of dst is not refreshed.
func Resample(dst *Surface, src *Surface, srcToDst Affine, opts *ResampleOptions) error {
	if dst.destroyed || src.destroyed {
		return ErrSurfaceDestroyed
	}
	if dst == src {
		return ErrSameSurface
	}
	if opts == nil {
		opts = &ResampleOptions{}
	}

	set, err := LookupImageFilters(src.PixFormat())
	if err != nil {
		return err
	}

	dstToSrc, ok := srcToDst.Invert()
	if !ok {
		return fmt.Errorf("pixmap: transformation %v is not invertible", srcToDst)
	}

	interp := NewSpanInterpolatorLinear(dstToSrc)
	gen, err := set.Filter(opts.Filter, src.Rbuf(), opts.Background, interp, opts.Kernel)
	if err != nil {
		return err
	}

	write := pixelWriters[dst.format]
	pixSize := GetPixelSize(dst.format)
	span := make([]color.NRGBA, dst.width)
	for y := 0; y < dst.height; y++ {
		gen.Generate(span, 0, y)
		row := dst.rbuf.Row(y)
		for x, c := range span {
			write(row[x*pixSize:], c)
		}
	}

	log.WithField("filter", opts.Filter).Debugf("Resampled %dx%d %v into %dx%d %v",
		src.width, src.height, src.format, dst.width, dst.height, dst.format)
	return nil
}
