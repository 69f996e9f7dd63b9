package pixmap

import (
	"errors"
	"fmt"
	"image"
	"os"
	"syscall"

	drm "github.com/rmcsoft/godrm"
	"github.com/rmcsoft/godrm/mode"
	"github.com/sirupsen/logrus"
)

type framebuffer struct {
	handle uint32
	id     uint32
	buf    []byte

	pixmap Pixmap
}

type kmsdrmPaintEngine struct {
	card    *os.File
	modeset mode.Modeset

	canvas softwareCanvas

	framebuffers        []*framebuffer
	frontFrameBufferNum int
}

func (p *kmsdrmPaintEngine) NativeFormat() PixelFormat {
	return p.canvas.pixFormat
}

func (p *kmsdrmPaintEngine) GetWidth() int {
	return p.framebuffers[0].pixmap.Width
}

func (p *kmsdrmPaintEngine) GetHeight() int {
	return p.framebuffers[0].pixmap.Height
}

func (p *kmsdrmPaintEngine) Begin() error {
	return p.canvas.begin()
}

func (p *kmsdrmPaintEngine) Clear(rect image.Rectangle) error {
	return p.canvas.clear(rect)
}

func (p *kmsdrmPaintEngine) DrawPixmap(dst image.Rectangle, pixmap *Pixmap) error {
	return p.canvas.drawPixmap(dst, pixmap)
}

func (p *kmsdrmPaintEngine) End() error {
	frontFrameBuffer := p.framebuffers[p.frontFrameBufferNum]
	if err := p.canvas.end(&frontFrameBuffer.pixmap); err != nil {
		return err
	}

	err := mode.SetCrtc(p.card, p.modeset.Crtc, frontFrameBuffer.id,
		0, 0, &p.modeset.Conn, 1, &p.modeset.Mode)

	p.frontFrameBufferNum = (p.frontFrameBufferNum + 1) % len(p.framebuffers)
	return err
}

// NewKMSDRMPaintEngine creates KMSDRMPaintEngine. The framebuffers use
// pixFormat, which must be BGRA32 (XRGB8888) or RGB565.
func NewKMSDRMPaintEngine(cardNum int, pixFormat PixelFormat) (PaintEngine, error) {
	if pixFormat != BGRA32 && pixFormat != RGB565 {
		return nil, fmt.Errorf("%w: KMSDRMPaintEngine supports BGRA32 and RGB565, got %v",
			ErrUnsupportedFormat, pixFormat)
	}

	card, err := drm.OpenCard(cardNum)
	if err != nil {
		return nil, err
	}

	if !drm.HasDumbBuffer(card) {
		card.Close()
		return nil, fmt.Errorf("drm device %v does not support dumb buffers", cardNum)
	}

	paintEngine := kmsdrmPaintEngine{
		card:   card,
		canvas: newSoftwareCanvas("KMSDRMPaintEngine", pixFormat),
	}

	simpleMSet, err := mode.NewSimpleModeset(card)
	if err != nil {
		card.Close()
		return nil, err
	}

	if len(simpleMSet.Modesets) == 0 {
		card.Close()
		return nil, errors.New("Modesets is empty")
	}

	paintEngine.modeset = simpleMSet.Modesets[0]
	paintEngine.framebuffers = []*framebuffer{}
	for i := 0; i < 2; i++ {
		framebuffer, err := paintEngine.createFramebuffer()
		if err != nil {
			paintEngine.destroy()
			return nil, err
		}
		paintEngine.framebuffers = append(paintEngine.framebuffers, framebuffer)
	}

	log.WithFields(logrus.Fields{
		"card":   cardNum,
		"width":  paintEngine.modeset.Width,
		"height": paintEngine.modeset.Height,
		"format": pixFormat,
	}).Debug("KMSDRMPaintEngine created")
	return &paintEngine, nil
}

func (p *kmsdrmPaintEngine) createFramebuffer() (*framebuffer, error) {

	fb := &framebuffer{}
	var err error

	defer func() {
		if err != nil {
			p.destroyFramebuffer(fb)
		}
	}()

	width := p.modeset.Width
	height := p.modeset.Height
	bpp := p.canvas.pixFormat.BitsPerPixel()
	depth := GetPixelDepth(p.canvas.pixFormat)
	if bpp == 32 {
		// XRGB8888: the fourth byte is padding for the scanout
		depth = 24
	}

	fbInfo, err := mode.CreateFB(p.card, uint16(width), uint16(height), uint32(bpp))
	if err != nil {
		return nil, err
	}

	fb.handle = fbInfo.Handle
	fb.id, err = mode.AddFB(p.card, uint16(width), uint16(height),
		uint8(depth), uint8(bpp), fbInfo.Pitch, fb.handle)
	if err != nil {
		return nil, err
	}

	offset, err := mode.MapDumb(p.card, fb.handle)
	if err != nil {
		return nil, err
	}

	fb.buf, err = syscall.Mmap(int(p.card.Fd()), int64(offset), int(fbInfo.Size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	fb.pixmap = Pixmap{
		Data:        fb.buf,
		Width:       int(width),
		Height:      int(height),
		BytePerLine: int(fbInfo.Pitch),
		PixFormat:   p.canvas.pixFormat,
	}

	return fb, err
}

func (p *kmsdrmPaintEngine) destroy() {
	for _, fb := range p.framebuffers {
		p.destroyFramebuffer(fb)
	}
	p.framebuffers = nil
	if p.card != nil {
		p.card.Close()
		p.card = nil
	}
}

func (p *kmsdrmPaintEngine) destroyFramebuffer(fb *framebuffer) {
	if fb != nil && p.card != nil {
		if fb.id != 0 {
			mode.RmFB(p.card, fb.id)
			fb.id = 0
		}

		if fb.handle != 0 {
			mode.DestroyDumb(p.card, fb.handle)
			fb.handle = 0
		}

		if fb.buf != nil {
			syscall.Munmap(fb.buf)
			fb.buf = nil
		}
	}
}
