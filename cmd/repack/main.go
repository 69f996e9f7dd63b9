package main

import (
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/rmcsoft/pixmap"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
)

type options struct {
	InputDir  string `short:"i" long:"input-dir"  description:"The input directory" required:"true"`
	OutputDir string `short:"o" long:"output-dir" description:"The output directory" required:"true"`
	Format    string `short:"f" long:"format"     description:"Pixel format of the packed pixmaps" default:"RGB565"`
	NotRotate bool   `short:"n" long:"not-rotate" description:"Disable image rotate"`
	Verbose   bool   `short:"v" long:"verbose"    description:"Verbose output"`
}

func images(opts options) chan string {
	ch := make(chan string, 512)
	go func() {
		defer close(ch)

		walkFn := func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				switch strings.ToLower(filepath.Ext(info.Name())) {
				case ".png", ".bmp":
					ch <- path
				}
			}
			return err
		}

		err := filepath.Walk(opts.InputDir, walkFn)
		if err != nil {
			logrus.WithError(err).Fatal("Can't walk the input directory")
		}
	}()
	return ch
}

func parseCmd() options {
	var opts options
	var cmdParser = flags.NewParser(&opts, flags.Default)
	var err error

	if _, err = cmdParser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.InputDir, err = filepath.Abs(opts.InputDir); err != nil {
		logrus.WithError(err).Fatal("Invalid input directory")
	}

	if opts.OutputDir, err = filepath.Abs(opts.OutputDir); err != nil {
		logrus.WithError(err).Fatal("Invalid output directory")
	}

	return opts
}

func loadSurface(fileName string, pixFormat pixmap.PixelFormat) (*pixmap.Surface, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	return pixmap.NewSurfaceFromImage(img, pixFormat, false, nil)
}

// rotateSurface rotates the surface by 90 degrees clockwise.
func rotateSurface(surface *pixmap.Surface) (*pixmap.Surface, error) {
	// RGB565 and the other formats without filters are resampled through RGB24.
	src := surface
	if _, err := pixmap.LookupImageFilters(surface.PixFormat()); err != nil {
		if src, err = pixmap.NewSurface(surface.Width(), surface.Height(), pixmap.RGB24, 0, false, nil); err != nil {
			return nil, err
		}
		defer src.Destroy()
		for y := 0; y < surface.Height(); y++ {
			for x := 0; x < surface.Width(); x++ {
				src.SetPixel(x, y, surface.Pixel(x, y))
			}
		}
	}

	rotated, err := pixmap.NewSurface(surface.Height(), surface.Width(), surface.PixFormat(), 0, false, nil)
	if err != nil {
		return nil, err
	}

	mtx := pixmap.Translate(float64(surface.Height()), 0).Multiply(pixmap.Rotate(math.Pi / 2))
	if err = pixmap.Resample(rotated, src, mtx, &pixmap.ResampleOptions{Filter: pixmap.FilterNearest}); err != nil {
		rotated.Destroy()
		return nil, err
	}
	rotated.Publish()
	return rotated, nil
}

func savePackedPixmap(opts *options, inputImageFile string, packedPixmap *pixmap.PackedPixmap) error {
	relInputPath, err := filepath.Rel(opts.InputDir, inputImageFile)
	if err != nil {
		return err
	}
	relImageDir := filepath.Dir(relInputPath)

	outputImageDir := filepath.Join(opts.OutputDir, relImageDir)
	err = os.MkdirAll(outputImageDir, 0755)
	if err != nil {
		return err
	}

	inputImageExt := filepath.Ext(inputImageFile)
	relOutputPath := strings.TrimSuffix(relInputPath, inputImageExt) + ".ppixmap"
	outputFile := filepath.Join(opts.OutputDir, relOutputPath)
	return packedPixmap.Save(outputFile)
}

func removeOutputDir(opts *options) {
	if err := os.RemoveAll(opts.OutputDir); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Fatal("Can't remove the output directory")
		}
	}
}

func repack(opts *options, imageFile string, pixFormat pixmap.PixelFormat) (unpacked int64, packed int64, err error) {
	surface, err := loadSurface(imageFile, pixFormat)
	if err != nil {
		return 0, 0, err
	}
	defer surface.Destroy()
	unpacked = int64(surface.Stride() * surface.Height())

	if !opts.NotRotate {
		rotated, err := rotateSurface(surface)
		if err != nil {
			return 0, 0, err
		}
		defer rotated.Destroy()
		surface = rotated
	}

	packedPixmap, err := pixmap.PackPixmap(surface.Pixmap())
	if err != nil {
		return 0, 0, err
	}
	packed = int64(len(packedPixmap.Data))

	return unpacked, packed, savePackedPixmap(opts, imageFile, packedPixmap)
}

func main() {
	opts := parseCmd()
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	pixFormat, err := pixmap.ParsePixelFormat(opts.Format)
	if err != nil {
		logrus.WithError(err).Fatalf("Unknown pixel format %q", opts.Format)
	}

	removeOutputDir(&opts)

	var packedSize int64
	var unpackedSize int64
	for imageFile := range images(opts) {
		logrus.Infof("Processing %s", imageFile)

		unpacked, packed, err := repack(&opts, imageFile, pixFormat)
		if err != nil {
			logrus.WithError(err).Fatalf("Can't repack %s", imageFile)
		}
		unpackedSize += unpacked
		packedSize += packed
	}

	if packedSize == 0 {
		logrus.Warn("No images found")
		return
	}

	logrus.WithFields(logrus.Fields{
		"unpackedSizeM": float32(unpackedSize) / float32(1024*1024),
		"packedSizeM":   float32(packedSize) / float32(1024*1024),
		"ratio":         float32(unpackedSize) / float32(packedSize),
	}).Info("Done")
}
