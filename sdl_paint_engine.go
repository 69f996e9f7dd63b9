package pixmap

import (
	"fmt"
	"image"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

var mutexSdlInit = sync.Mutex{}
var sdlInited = false

func initSdl() error {
	mutexSdlInit.Lock()
	defer mutexSdlInit.Unlock()

	if !sdlInited {
		if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
			return err
		}
		img.Init(img.INIT_JPG | img.INIT_PNG)
		sdlInited = true
	}
	return nil
}

// SDL packed formats are defined on a native-endian word; the mapping
// below assumes a little-endian host, so byte order R,G,B,A is ABGR8888.
var sdlPixelFormats = map[PixelFormat]uint32{
	RGB555: sdl.PIXELFORMAT_RGB555,
	RGB565: sdl.PIXELFORMAT_RGB565,
	RGB24:  sdl.PIXELFORMAT_RGB24,
	BGR24:  sdl.PIXELFORMAT_BGR24,
	RGBA32: sdl.PIXELFORMAT_ABGR8888,
	ARGB32: sdl.PIXELFORMAT_BGRA8888,
	ABGR32: sdl.PIXELFORMAT_RGBA8888,
	BGRA32: sdl.PIXELFORMAT_ARGB8888,
}

func pixelFormatToSDL(pixelFormat PixelFormat) (uint32, error) {
	if sdlPixFormat, ok := sdlPixelFormats[pixelFormat]; ok {
		return sdlPixFormat, nil
	}
	return 0, fmt.Errorf("%w: no SDL pixel format for %v", ErrUnsupportedFormat, pixelFormat)
}

func pixelFormatFromSDL(sdlPixFormat uint32) PixelFormat {
	switch sdlPixFormat {
	case sdl.PIXELFORMAT_RGB888, sdl.PIXELFORMAT_ARGB8888:
		return BGRA32
	case sdl.PIXELFORMAT_BGR888, sdl.PIXELFORMAT_ABGR8888:
		return RGBA32
	case sdl.PIXELFORMAT_RGBX8888, sdl.PIXELFORMAT_RGBA8888:
		return ABGR32
	case sdl.PIXELFORMAT_BGRX8888, sdl.PIXELFORMAT_BGRA8888:
		return ARGB32
	}
	for pixFormat, f := range sdlPixelFormats {
		if f == sdlPixFormat {
			return pixFormat
		}
	}
	return Undefined
}

// sdlFallbackFormat is used when the window format is unknown. It maps to
// ARGB8888, which every SDL renderer accepts for streaming textures.
const sdlFallbackFormat = BGRA32

// sdlNativeFormat picks the format surfaces are converted to for a window
// reporting sdlPixFormat. It never returns Undefined, so surfaces in formats
// SDL cannot upload (Gray8) are always converted.
func sdlNativeFormat(sdlPixFormat uint32, err error) PixelFormat {
	if err != nil {
		log.WithError(err).Warn("Can't query the SDL window pixel format")
		return sdlFallbackFormat
	}
	pixFormat := pixelFormatFromSDL(sdlPixFormat)
	if pixFormat == Undefined {
		log.WithField("sdl_format", sdlPixFormat).Warn("Unknown SDL window pixel format")
		return sdlFallbackFormat
	}
	return pixFormat
}

type sdlPaintEngine struct {
	window    *sdl.Window
	renderer  *sdl.Renderer
	pixFormat PixelFormat
}

// NewSDLPaintEngine creates a paint engine drawing into a new SDL window
// of width x height pixels.
func NewSDLPaintEngine(width int, height int) (PaintEngine, error) {
	if err := initSdl(); err != nil {
		return nil, err
	}

	window, renderer, err := sdl.CreateWindowAndRenderer(int32(width), int32(height), 0)
	if err != nil {
		return nil, err
	}

	pixFormat := sdlNativeFormat(window.GetPixelFormat())

	log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"format": pixFormat,
	}).Debug("SDLPaintEngine created")
	return &sdlPaintEngine{window, renderer, pixFormat}, nil
}

func (p *sdlPaintEngine) NativeFormat() PixelFormat {
	return p.pixFormat
}

func (p *sdlPaintEngine) GetWidth() int {
	w, _ := p.window.GetSize()
	return int(w)
}

func (p *sdlPaintEngine) GetHeight() int {
	_, h := p.window.GetSize()
	return int(h)
}

func (p *sdlPaintEngine) Begin() error {
	return p.renderer.Clear()
}

func (p *sdlPaintEngine) Clear(rect image.Rectangle) error {
	sdlRect := sdl.Rect{
		X: int32(rect.Min.X),
		Y: int32(rect.Min.Y),
		W: int32(rect.Dx()),
		H: int32(rect.Dy()),
	}
	return p.renderer.FillRect(&sdlRect)
}

func (p *sdlPaintEngine) DrawPixmap(dst image.Rectangle, pixmap *Pixmap) error {
	sdlPixFormat, err := pixelFormatToSDL(pixmap.PixFormat)
	if err != nil {
		return err
	}

	texture, err := p.renderer.CreateTexture(sdlPixFormat, sdl.TEXTUREACCESS_STREAMING,
		int32(pixmap.Width), int32(pixmap.Height))
	if err != nil {
		return err
	}
	defer texture.Destroy()

	texturePixels, textureBytePerLine, err := texture.Lock(nil)
	if err != nil {
		return err
	}

	// Rows are uploaded in storage order; bottom-up pixmaps are flipped
	// by the renderer instead.
	rowSize := pixmap.RowSize()
	for rowNum := 0; rowNum < pixmap.Height; rowNum++ {
		pixmapOffset := rowNum * pixmap.BytePerLine
		pixmapRow := pixmap.Data[pixmapOffset : pixmapOffset+rowSize]
		textureOffset := rowNum * textureBytePerLine
		textureRow := texturePixels[textureOffset : textureOffset+rowSize]
		copy(textureRow, pixmapRow)
	}
	texture.Unlock()

	sdlRect := sdl.Rect{
		X: int32(dst.Min.X),
		Y: int32(dst.Min.Y),
		W: int32(dst.Dx()),
		H: int32(dst.Dy()),
	}
	flip := sdl.RendererFlip(sdl.FLIP_NONE)
	if pixmap.BottomUp {
		flip = sdl.FLIP_VERTICAL
	}
	return p.renderer.CopyEx(texture, nil, &sdlRect, 0, nil, flip)
}

func (p *sdlPaintEngine) End() error {
	p.renderer.Present()
	return nil
}

// LoadSurface loads an image file with SDL_image into a new Surface in
// pixFormat.
func LoadSurface(fileName string, pixFormat PixelFormat, bottomUp bool, engine PaintEngine) (*Surface, error) {
	if err := initSdl(); err != nil {
		return nil, err
	}

	loadedImage, err := img.Load(fileName)
	if err != nil {
		return nil, err
	}
	defer loadedImage.Free()

	sdlPixFormat, err := pixelFormatToSDL(pixFormat)
	if err != nil {
		return nil, err
	}

	convertedImage, err := loadedImage.ConvertFormat(sdlPixFormat, 0)
	if err != nil {
		return nil, err
	}
	defer convertedImage.Free()

	surface, err := NewSurface(int(convertedImage.W), int(convertedImage.H), pixFormat, 0, bottomUp, engine)
	if err != nil {
		return nil, err
	}

	pixels := convertedImage.Pixels()
	pitch := int(convertedImage.Pitch)
	rowSize := surface.Width() * GetPixelSize(pixFormat)
	for y := 0; y < surface.Height(); y++ {
		copy(surface.Rbuf().Row(y), pixels[y*pitch:y*pitch+rowSize])
	}
	surface.Publish()
	return surface, nil
}
