package pixmap

import (
	"errors"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestPixelFormatSDL(t *testing.T) {
	for pixFormat := range sdlPixelFormats {
		sdlPixFormat, err := pixelFormatToSDL(pixFormat)
		if err != nil {
			t.Errorf("pixelFormatToSDL(%v) error = %v", pixFormat, err)
			continue
		}
		if got := pixelFormatFromSDL(sdlPixFormat); got != pixFormat {
			t.Errorf("pixelFormatFromSDL(pixelFormatToSDL(%v)) = %v", pixFormat, got)
		}
	}

	if _, err := pixelFormatToSDL(Gray8); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("pixelFormatToSDL(Gray8) error = %v, want ErrUnsupportedFormat", err)
	}
	if got := pixelFormatFromSDL(sdl.PIXELFORMAT_RGB888); got != BGRA32 {
		t.Errorf("pixelFormatFromSDL(RGB888) = %v, want BGRA32", got)
	}
	if got := pixelFormatFromSDL(sdl.PIXELFORMAT_UNKNOWN); got != Undefined {
		t.Errorf("pixelFormatFromSDL(UNKNOWN) = %v, want Undefined", got)
	}
}

func TestSDLNativeFormat(t *testing.T) {
	tests := []struct {
		name         string
		sdlPixFormat uint32
		err          error
		want         PixelFormat
	}{
		{"window RGB888", sdl.PIXELFORMAT_RGB888, nil, BGRA32},
		{"window RGB565", sdl.PIXELFORMAT_RGB565, nil, RGB565},
		{"query failed", 0, errors.New("no window format"), BGRA32},
		{"unknown format", sdl.PIXELFORMAT_UNKNOWN, nil, BGRA32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sdlNativeFormat(tt.sdlPixFormat, tt.err); got != tt.want {
				t.Errorf("sdlNativeFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSDLNativeFormat_ConvertsGray8(t *testing.T) {
	engine := &recordingPaintEngine{format: sdlNativeFormat(0, errors.New("no window format"))}
	s, err := NewSurface(2, 2, Gray8, 0xFFFFFFFF, false, engine)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	if s.SysFormat() != BGRA32 {
		t.Fatalf("SysFormat() = %v, want BGRA32", s.SysFormat())
	}
	if _, err = pixelFormatToSDL(s.Pixmap().PixFormat); err != nil {
		t.Errorf("pixelFormatToSDL(%v) error = %v", s.Pixmap().PixFormat, err)
	}
}
