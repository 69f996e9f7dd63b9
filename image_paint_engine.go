package pixmap

import (
	"image"
)

// ImagePaintEngine is a paint engine that draws into a pixmap in memory.
// It is useful for off-screen rendering and for tests.
type ImagePaintEngine struct {
	canvas      softwareCanvas
	framebuffer *Pixmap
}

// NewImagePaintEngine creates an ImagePaintEngine with a width x height
// framebuffer in pixFormat.
func NewImagePaintEngine(width int, height int, pixFormat PixelFormat) (*ImagePaintEngine, error) {
	framebuffer, err := NewPixmap(width, height, pixFormat)
	if err != nil {
		return nil, err
	}

	return &ImagePaintEngine{
		canvas:      newSoftwareCanvas("ImagePaintEngine", pixFormat),
		framebuffer: framebuffer,
	}, nil
}

// Framebuffer returns the pixmap the engine draws into.
func (p *ImagePaintEngine) Framebuffer() *Pixmap {
	return p.framebuffer
}

func (p *ImagePaintEngine) NativeFormat() PixelFormat {
	return p.framebuffer.PixFormat
}

func (p *ImagePaintEngine) GetWidth() int {
	return p.framebuffer.Width
}

func (p *ImagePaintEngine) GetHeight() int {
	return p.framebuffer.Height
}

func (p *ImagePaintEngine) Begin() error {
	return p.canvas.begin()
}

func (p *ImagePaintEngine) Clear(rect image.Rectangle) error {
	return p.canvas.clear(rect)
}

func (p *ImagePaintEngine) DrawPixmap(dst image.Rectangle, pixmap *Pixmap) error {
	return p.canvas.drawPixmap(dst, pixmap)
}

func (p *ImagePaintEngine) End() error {
	return p.canvas.end(p.framebuffer)
}
