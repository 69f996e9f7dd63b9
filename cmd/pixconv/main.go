package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rmcsoft/pixmap"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type options struct {
	Input      string  `short:"i" long:"input"      description:"The input image (png, bmp, tiff or webp)" required:"true"`
	Output     string  `short:"o" long:"output"     description:"The output image (png, bmp or tiff)" required:"true"`
	Format     string  `short:"f" long:"format"     description:"Pixel format of the working surface" default:"BGRA32"`
	BottomUp   bool    `short:"u" long:"bottom-up"  description:"Store the working surface bottom-up"`
	Scale      float64 `short:"s" long:"scale"      description:"Scale factor" default:"1"`
	Angle      float64 `short:"a" long:"angle"      description:"Rotation angle in degrees, clockwise" default:"0"`
	Filter     string  `short:"F" long:"filter"     description:"Filter" choice:"nearest" choice:"bilinear" choice:"general" default:"bilinear"`
	Kernel     string  `short:"k" long:"kernel"     description:"Kernel of the general filter" choice:"bilinear" choice:"catmullrom" choice:"lanczos3" default:"catmullrom"`
	Background string  `short:"b" long:"background" description:"Background color as AARRGGBB" default:"00000000"`
	Verbose    bool    `short:"v" long:"verbose"    description:"Verbose output"`
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)

	if _, err := cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	return opts
}

func parseFilter(name string) pixmap.FilterMode {
	switch name {
	case "nearest":
		return pixmap.FilterNearest
	case "general":
		return pixmap.FilterGeneral
	default:
		return pixmap.FilterBilinear
	}
}

func parseKernel(name string) *draw.Kernel {
	switch name {
	case "bilinear":
		return draw.BiLinear
	case "lanczos3":
		return pixmap.Lanczos3
	default:
		return draw.CatmullRom
	}
}

func parseBackground(s string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid background %q: %w", s, err)
	}
	return pixmap.ColorFromClearValue(uint32(v)), nil
}

func decodeImage(fileName string) (image.Image, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	logrus.WithField("format", format).Debugf("Decoded %s", fileName)
	return img, nil
}

func encodeImage(fileName string, img image.Image) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".tif", ".tiff":
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return err
	}
	return file.Sync()
}

// transform returns the source to destination transformation and the size
// of the destination holding the whole transformed source.
func transform(width, height int, scale, angle float64) (pixmap.Affine, int, int) {
	mtx := pixmap.Rotate(angle * math.Pi / 180).Multiply(pixmap.Scale(scale, scale))

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, corner := range [][2]float64{{0, 0}, {float64(width), 0}, {0, float64(height)}, {float64(width), float64(height)}} {
		x, y := mtx.Transform(corner[0], corner[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	mtx = pixmap.Translate(-minX, -minY).Multiply(mtx)
	return mtx, int(math.Ceil(maxX - minX - 1e-9)), int(math.Ceil(maxY - minY - 1e-9))
}

func convert(opts options) error {
	pixFormat, err := pixmap.ParsePixelFormat(opts.Format)
	if err != nil {
		return err
	}
	background, err := parseBackground(opts.Background)
	if err != nil {
		return err
	}

	img, err := decodeImage(opts.Input)
	if err != nil {
		return err
	}

	src, err := pixmap.NewSurfaceFromImage(img, pixFormat, opts.BottomUp, nil)
	if err != nil {
		return err
	}
	defer src.Destroy()

	mtx, width, height := transform(src.Width(), src.Height(), opts.Scale, opts.Angle)
	dst, err := pixmap.NewSurface(width, height, pixFormat, 0, opts.BottomUp, nil)
	if err != nil {
		return err
	}
	defer dst.Destroy()

	resampleOpts := &pixmap.ResampleOptions{
		Filter:     parseFilter(opts.Filter),
		Kernel:     parseKernel(opts.Kernel),
		Background: background,
	}
	if err = pixmap.Resample(dst, src, mtx, resampleOpts); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"width":  dst.Width(),
		"height": dst.Height(),
		"filter": resampleOpts.Filter,
	}).Info("Resampled")

	return encodeImage(opts.Output, dst.NRGBA())
}

func main() {
	opts := parseCmd()
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
		pixmap.SetLogger(logrus.WithField("pkg", "pixmap"))
	}

	if err := convert(opts); err != nil {
		logrus.WithError(err).Fatal("Conversion failed")
	}
}
