package pixmap

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

var filterableFormats = []PixelFormat{RGB24, BGR24, RGBA32, ARGB32, ABGR32, BGRA32}

func TestCalcRowLen(t *testing.T) {
	tests := []struct {
		width int
		bpp   int
		want  int
	}{
		{0, 32, 0},
		{1, 8, 4},
		{3, 8, 4},
		{5, 8, 8},
		{1, 16, 4},
		{3, 16, 8},
		{1, 24, 4},
		{2, 24, 8},
		{3, 24, 12},
		{5, 24, 16},
		{2, 32, 8},
		{7, 32, 28},
	}

	for _, tt := range tests {
		if got := CalcRowLen(tt.width, tt.bpp); got != tt.want {
			t.Errorf("CalcRowLen(%d, %d) = %d, want %d", tt.width, tt.bpp, got, tt.want)
		}
	}
}

func TestCalcRowLen_Monotonic(t *testing.T) {
	for _, bpp := range []int{8, 16, 24, 32} {
		prev := 0
		for width := 1; width < 100; width++ {
			got := CalcRowLen(width, bpp)
			if got%RowAlignment != 0 {
				t.Errorf("CalcRowLen(%d, %d) = %d is not aligned", width, bpp, got)
			}
			if got < width*bpp/8 {
				t.Errorf("CalcRowLen(%d, %d) = %d is shorter than the pixels", width, bpp, got)
			}
			if got < prev {
				t.Errorf("CalcRowLen(%d, %d) = %d < %d", width, bpp, got, prev)
			}
			prev = got
		}
	}
}

func TestNewSurface_Errors(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		format PixelFormat
		want   error
	}{
		{"zero width", 0, 10, RGB24, ErrInvalidDimensions},
		{"zero height", 10, 0, RGB24, ErrInvalidDimensions},
		{"negative", -1, 10, RGB24, ErrInvalidDimensions},
		{"too wide", MaxDimension + 1, 1, RGB24, ErrInvalidDimensions},
		{"undefined format", 10, 10, Undefined, ErrUnsupportedFormat},
		{"unknown format", 10, 10, PixelFormat(99), ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSurface(tt.width, tt.height, tt.format, 0, false, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewSurface() error = %v, want %v", err, tt.want)
			}
			if s != nil {
				t.Errorf("NewSurface() returned a surface on error")
			}
		})
	}
}

func TestSurface_Geometry(t *testing.T) {
	for pixFormat := Gray8; pixFormat < pixelFormatCount; pixFormat++ {
		for _, bottomUp := range []bool{false, true} {
			for width := 1; width <= 9; width++ {
				s, err := NewSurface(width, 3, pixFormat, 0, bottomUp, nil)
				if err != nil {
					t.Fatalf("NewSurface(%d, 3, %v) error = %v", width, pixFormat, err)
				}

				if s.Stride() < width*GetPixelSize(pixFormat) || s.Stride()%RowAlignment != 0 {
					t.Errorf("%v width %d: Stride() = %d", pixFormat, width, s.Stride())
				}
				if len(s.Buf()) != s.Stride()*3 {
					t.Errorf("%v width %d: len(Buf()) = %d, want %d", pixFormat, width, len(s.Buf()), s.Stride()*3)
				}
				if s.BPP() != pixFormat.BitsPerPixel() {
					t.Errorf("%v: BPP() = %d, want %d", pixFormat, s.BPP(), pixFormat.BitsPerPixel())
				}
				if s.SysFormat() != pixFormat || s.Stride2() != s.Stride() {
					t.Errorf("%v: system buffer is %v with stride %d", pixFormat, s.SysFormat(), s.Stride2())
				}

				wantStride := s.Stride()
				wantOffset := 0
				if bottomUp {
					wantStride = -wantStride
					wantOffset = 2 * s.Stride()
				}
				if got := s.Rbuf().Stride(); got != wantStride {
					t.Errorf("%v bottomUp=%v: Rbuf().Stride() = %d, want %d", pixFormat, bottomUp, got, wantStride)
				}
				if got := s.Rbuf().RowOffset(0); got != wantOffset {
					t.Errorf("%v bottomUp=%v: RowOffset(0) = %d, want %d", pixFormat, bottomUp, got, wantOffset)
				}
				if got := s.Rbuf().StrideAbs(); got != s.Stride() {
					t.Errorf("%v: StrideAbs() = %d, want %d", pixFormat, got, s.Stride())
				}
				s.Destroy()
			}
		}
	}
}

func TestSurface_ClearRGB24(t *testing.T) {
	s, err := NewSurface(3, 2, RGB24, 0xFF112233, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	if s.Stride() != 12 {
		t.Fatalf("Stride() = %d, want 12", s.Stride())
	}
	row := []byte{0x11, 0x22, 0x33, 0x11, 0x22, 0x33, 0x11, 0x22, 0x33}
	for y := 0; y < 2; y++ {
		if got := s.Buf()[y*12 : y*12+9]; !bytes.Equal(got, row) {
			t.Errorf("row %d = %x, want %x", y, got, row)
		}
	}

	argb := s.ConvertToARGB32()
	if len(argb) != 3*2*4 {
		t.Fatalf("len(ConvertToARGB32()) = %d, want 24", len(argb))
	}
	for i := 0; i < len(argb); i += 4 {
		if got := argb[i : i+4]; !bytes.Equal(got, []byte{0xFF, 0x11, 0x22, 0x33}) {
			t.Errorf("pixel %d = %x, want ff112233", i/4, got)
		}
	}
}

func TestSurface_BottomUpBGRA32(t *testing.T) {
	s, err := NewSurface(2, 2, BGRA32, 0, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	s.SetPixel(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	want := []byte{30, 20, 10, 40}
	if got := s.Rbuf().Row(0)[:4]; !bytes.Equal(got, want) {
		t.Errorf("Rbuf().Row(0) = %v, want %v", got, want)
	}
	// Row 0 is the last row in memory.
	if got := s.Buf()[8:12]; !bytes.Equal(got, want) {
		t.Errorf("Buf()[8:12] = %v, want %v", got, want)
	}
	if got := s.Buf()[0:4]; !bytes.Equal(got, []byte{0, 0, 0, 0}) {
		t.Errorf("Buf()[0:4] = %v, want zeros", got)
	}

	argb := s.ConvertToARGB32()
	if got := argb[0:4]; !bytes.Equal(got, []byte{40, 10, 20, 30}) {
		t.Errorf("ConvertToARGB32()[0:4] = %v, want [40 10 20 30]", got)
	}
}

func TestSurface_ARGB32RoundTrip(t *testing.T) {
	for _, pixFormat := range filterableFormats {
		for _, bottomUp := range []bool{false, true} {
			s, err := NewSurface(5, 3, pixFormat, 0, bottomUp, nil)
			if err != nil {
				t.Fatal(err)
			}

			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					s.SetPixel(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 70), B: uint8(x + y), A: uint8(100 + x)})
				}
			}

			argb := s.ConvertToARGB32()
			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					wantA := byte(100 + x)
					if !pixFormat.HasAlpha() {
						wantA = 0xFF
					}
					want := []byte{wantA, byte(x * 40), byte(y * 70), byte(x + y)}
					i := (y*5 + x) * 4
					if got := argb[i : i+4]; !bytes.Equal(got, want) {
						t.Errorf("%v bottomUp=%v (%d,%d) = %v, want %v", pixFormat, bottomUp, x, y, got, want)
					}
				}
			}
			s.Destroy()
		}
	}
}

func TestSurface_PixelOutOfRange(t *testing.T) {
	s, err := NewSurface(2, 2, RGBA32, 0xFFFFFFFF, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	s.SetPixel(-1, 0, color.NRGBA{})
	s.SetPixel(2, 0, color.NRGBA{})
	if got := s.Pixel(0, 0); got != (color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("Pixel(0, 0) = %v", got)
	}
	if got := s.Pixel(5, 5); got != (color.NRGBA{}) {
		t.Errorf("Pixel(5, 5) = %v, want zero", got)
	}
	if s.Rbuf().PixelBytes(0, 2) != nil {
		t.Errorf("PixelBytes(0, 2) != nil")
	}
}

func TestSurface_RowPanicsOutOfRange(t *testing.T) {
	s, err := NewSurface(2, 2, RGBA32, 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	defer func() {
		if recover() == nil {
			t.Errorf("Row(2) did not panic")
		}
	}()
	s.Rbuf().Row(2)
}

func TestSurface_PublishStaleness(t *testing.T) {
	engine, err := NewImagePaintEngine(4, 4, ARGB32)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSurface(2, 2, RGB24, 0xFF010203, false, engine)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	if s.SysFormat() != ARGB32 || s.SysBPP() != 32 {
		t.Fatalf("SysFormat() = %v, SysBPP() = %d", s.SysFormat(), s.SysBPP())
	}
	if got := s.Rbuf2().PixelBytes(1, 1); !bytes.Equal(got, []byte{0xFF, 1, 2, 3}) {
		t.Fatalf("system pixel after creation = %v", got)
	}

	s.SetPixel(1, 1, color.NRGBA{R: 9, G: 8, B: 7, A: 0xFF})
	if got := s.Rbuf2().PixelBytes(1, 1); !bytes.Equal(got, []byte{0xFF, 1, 2, 3}) {
		t.Errorf("system pixel changed before Publish: %v", got)
	}

	s.Publish()
	if got := s.Rbuf2().PixelBytes(1, 1); !bytes.Equal(got, []byte{0xFF, 9, 8, 7}) {
		t.Errorf("system pixel after Publish = %v", got)
	}
}

func TestSurface_InitPlatform(t *testing.T) {
	s, err := NewSurface(3, 2, RGB24, 0xFF102030, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	if err = s.InitPlatform(RGB24, true); err != nil {
		t.Fatal(err)
	}
	if !s.SysBottomUp() || s.Rbuf2().Stride() != -s.Stride2() {
		t.Errorf("SysBottomUp() = %v, Rbuf2().Stride() = %d", s.SysBottomUp(), s.Rbuf2().Stride())
	}
	if s.BottomUp() || s.Rbuf().Stride() != s.Stride() {
		t.Errorf("BottomUp() = %v, Rbuf().Stride() = %d", s.BottomUp(), s.Rbuf().Stride())
	}
	if got := s.Rbuf2().PixelBytes(2, 1); !bytes.Equal(got, []byte{0x10, 0x20, 0x30}) {
		t.Errorf("system pixel = %v", got)
	}
}

func TestSurface_InitPlatformKeepsDeclaredBuffer(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	black := color.NRGBA{A: 0xFF}

	for _, bottomUp := range []bool{false, true} {
		s, err := NewSurface(1, 2, RGB24, 0xFF000000, bottomUp, nil)
		if err != nil {
			t.Fatal(err)
		}
		s.SetPixel(0, 0, red)
		before := s.ConvertToARGB32()
		declared := append([]byte(nil), s.Buf()...)

		if err = s.InitPlatform(RGB24, !bottomUp); err != nil {
			t.Fatal(err)
		}

		if got := s.ConvertToARGB32(); !bytes.Equal(got, before) {
			t.Errorf("bottomUp=%v: ConvertToARGB32() = %v, want %v", bottomUp, got, before)
		}
		if !bytes.Equal(s.Buf(), declared) {
			t.Errorf("bottomUp=%v: declared buffer changed", bottomUp)
		}
		if s.BottomUp() != bottomUp || s.SysBottomUp() != !bottomUp {
			t.Errorf("bottomUp=%v: BottomUp() = %v, SysBottomUp() = %v", bottomUp, s.BottomUp(), s.SysBottomUp())
		}
		if got := s.Pixel(0, 0); got != red {
			t.Errorf("bottomUp=%v: Pixel(0, 0) = %v, want %v", bottomUp, got, red)
		}
		if got := s.Pixel(0, 1); got != black {
			t.Errorf("bottomUp=%v: Pixel(0, 1) = %v, want %v", bottomUp, got, black)
		}

		// The system buffer holds the same logical image in the new orientation.
		if got := s.Rbuf2().PixelBytes(0, 0); !bytes.Equal(got, []byte{0xFF, 0, 0}) {
			t.Errorf("bottomUp=%v: system pixel (0,0) = %v", bottomUp, got)
		}
		pixmap := s.Pixmap()
		if pixmap.BottomUp != !bottomUp {
			t.Errorf("bottomUp=%v: Pixmap().BottomUp = %v", bottomUp, pixmap.BottomUp)
		}
		if got := pixmap.Row(0); !bytes.Equal(got, []byte{0xFF, 0, 0}) {
			t.Errorf("bottomUp=%v: Pixmap().Row(0) = %v", bottomUp, got)
		}
		s.Destroy()
	}
}

func TestSurface_Destroy(t *testing.T) {
	s, err := NewSurface(2, 2, BGRA32, 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	rb := s.Rbuf()
	s.Destroy()
	s.Destroy()

	if s.ConvertToARGB32() != nil {
		t.Errorf("ConvertToARGB32() on a destroyed surface != nil")
	}
	if s.Pixmap() != nil {
		t.Errorf("Pixmap() on a destroyed surface != nil")
	}
	if err = s.Draw(0, 0, 1); !errors.Is(err, ErrSurfaceDestroyed) {
		t.Errorf("Draw() error = %v, want ErrSurfaceDestroyed", err)
	}
	if err = s.InitPlatform(BGRA32, false); !errors.Is(err, ErrSurfaceDestroyed) {
		t.Errorf("InitPlatform() error = %v, want ErrSurfaceDestroyed", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrSurfaceDestroyed) {
			t.Errorf("Row() on a destroyed surface panicked with %v", r)
		}
	}()
	rb.Row(0)
}

func TestSurface_FromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	img.SetNRGBA(10, 20, color.NRGBA{1, 2, 3, 4})
	img.SetNRGBA(11, 20, color.NRGBA{5, 6, 7, 8})

	s, err := NewSurfaceFromImage(img, ABGR32, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	if s.Width() != 2 || s.Height() != 1 {
		t.Fatalf("size = %dx%d, want 2x1", s.Width(), s.Height())
	}
	if got := s.Pixel(1, 0); got != (color.NRGBA{5, 6, 7, 8}) {
		t.Errorf("Pixel(1, 0) = %v", got)
	}

	out := s.NRGBA()
	if !bytes.Equal(out.Pix, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("NRGBA().Pix = %v", out.Pix)
	}
	if got := s.Pixmap().Row(0); !bytes.Equal(got, []byte{4, 3, 2, 1, 8, 7, 6, 5}) {
		t.Errorf("Pixmap().Row(0) = %v", got)
	}
}

func TestSurface_Draw(t *testing.T) {
	colors := [2][2]color.NRGBA{
		{{R: 1, A: 0xFF}, {R: 2, A: 0xFF}},
		{{R: 3, A: 0xFF}, {R: 4, A: 0xFF}},
	}

	tests := []struct {
		name     string
		bottomUp bool
		x, y     int
		scale    float64
		// want[y][x] is the R channel of the framebuffer, 0 for background
		want [4][4]uint8
	}{
		{
			name: "unscaled", x: 1, y: 1, scale: 1,
			want: [4][4]uint8{{0, 0, 0, 0}, {0, 1, 2, 0}, {0, 3, 4, 0}, {0, 0, 0, 0}},
		},
		{
			name: "unscaled bottom-up", bottomUp: true, x: 1, y: 1, scale: 1,
			want: [4][4]uint8{{0, 0, 0, 0}, {0, 1, 2, 0}, {0, 3, 4, 0}, {0, 0, 0, 0}},
		},
		{
			name: "scaled", x: 0, y: 0, scale: 2,
			want: [4][4]uint8{{1, 1, 2, 2}, {1, 1, 2, 2}, {3, 3, 4, 4}, {3, 3, 4, 4}},
		},
		{
			name: "scaled bottom-up", bottomUp: true, x: 0, y: 0, scale: 2,
			want: [4][4]uint8{{1, 1, 2, 2}, {1, 1, 2, 2}, {3, 3, 4, 4}, {3, 3, 4, 4}},
		},
		{
			name: "clipped", x: 3, y: -1, scale: 1,
			want: [4][4]uint8{{0, 0, 0, 3}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewImagePaintEngine(4, 4, ARGB32)
			if err != nil {
				t.Fatal(err)
			}
			s, err := NewSurface(2, 2, RGB24, 0, tt.bottomUp, engine)
			if err != nil {
				t.Fatal(err)
			}
			defer s.Destroy()

			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					s.SetPixel(x, y, colors[y][x])
				}
			}
			s.Publish()

			if err = engine.Begin(); err != nil {
				t.Fatal(err)
			}
			if err = s.Draw(tt.x, tt.y, tt.scale); err != nil {
				t.Fatal(err)
			}
			if err = engine.End(); err != nil {
				t.Fatal(err)
			}

			fb := engine.Framebuffer()
			for y := 0; y < 4; y++ {
				row := fb.Row(y)
				for x := 0; x < 4; x++ {
					if got := row[x*4+1]; got != tt.want[y][x] {
						t.Errorf("framebuffer (%d,%d) R = %d, want %d", x, y, got, tt.want[y][x])
					}
				}
			}
		})
	}
}

func TestSurface_DrawInvalidScale(t *testing.T) {
	s, err := NewSurface(2, 2, RGB24, 0, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Destroy()

	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err = s.Draw(0, 0, scale); !errors.Is(err, ErrInvalidScale) {
			t.Errorf("Draw(scale=%v) error = %v, want ErrInvalidScale", scale, err)
		}
	}

	// Rounds to an empty rectangle
	if err = s.Draw(0, 0, 0.1); err != nil {
		t.Errorf("Draw(scale=0.1) error = %v", err)
	}
}
