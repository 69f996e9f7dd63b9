package pixmap

import (
	"fmt"
	"image"
)

const (
	startCmdCapacity = 256
)

type cmdCode int

const (
	ccClearRect cmdCode = iota
	ccDrawPixmap
)

type paintCmd struct {
	code   cmdCode
	rect   image.Rectangle
	pixmap *Pixmap
}

// softwareCanvas queues paint commands between Begin and End and plays them
// into a framebuffer in memory.
type softwareCanvas struct {
	name      string
	pixFormat PixelFormat
	isActive  bool
	cmds      []paintCmd
}

func newSoftwareCanvas(name string, pixFormat PixelFormat) softwareCanvas {
	return softwareCanvas{
		name:      name,
		pixFormat: pixFormat,
		cmds:      make([]paintCmd, 0, startCmdCapacity),
	}
}

func (c *softwareCanvas) begin() error {
	if c.isActive {
		return fmt.Errorf("%s: %w", c.name, ErrEngineActive)
	}
	c.isActive = true
	return nil
}

func (c *softwareCanvas) clear(rect image.Rectangle) error {
	if !c.isActive {
		return fmt.Errorf("%s: %w", c.name, ErrEngineNotActive)
	}
	c.cmds = append(c.cmds, paintCmd{code: ccClearRect, rect: rect})
	return nil
}

func (c *softwareCanvas) drawPixmap(dst image.Rectangle, pixmap *Pixmap) error {
	if !c.isActive {
		return fmt.Errorf("%s: %w", c.name, ErrEngineNotActive)
	}
	if pixmap.PixFormat != c.pixFormat {
		return fmt.Errorf("%s: %w: pixmap is %v, framebuffer is %v",
			c.name, ErrFormatMismatch, pixmap.PixFormat, c.pixFormat)
	}
	c.cmds = append(c.cmds, paintCmd{code: ccDrawPixmap, rect: dst, pixmap: pixmap})
	return nil
}

func (c *softwareCanvas) end(fb *Pixmap) error {
	if !c.isActive {
		return fmt.Errorf("%s: %w", c.name, ErrEngineNotActive)
	}
	playCmds(fb, c.cmds)
	c.cmds = c.cmds[:0]
	c.isActive = false
	return nil
}

func playCmds(fb *Pixmap, cmds []paintCmd) {
	for i := range cmds {
		switch cmds[i].code {
		case ccClearRect:
			clearRect(fb, cmds[i].rect)
		case ccDrawPixmap:
			drawPixmap(fb, cmds[i].rect, cmds[i].pixmap)
		}
	}
}

func pixmapBounds(pixmap *Pixmap) image.Rectangle {
	return image.Rect(0, 0, pixmap.Width, pixmap.Height)
}

func clearRect(fb *Pixmap, rect image.Rectangle) {
	r := rect.Intersect(pixmapBounds(fb))
	pixSize := GetPixelSize(fb.PixFormat)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := fb.Row(y)
		clear(row[r.Min.X*pixSize : r.Max.X*pixSize])
	}
}

// drawPixmap copies pixmap into dst of fb, clipped to fb. A destination of
// another size than the pixmap is filled by nearest neighbour sampling.
func drawPixmap(fb *Pixmap, dst image.Rectangle, pixmap *Pixmap) {
	r := dst.Intersect(pixmapBounds(fb))
	if r.Empty() {
		return
	}
	pixSize := GetPixelSize(fb.PixFormat)

	if dst.Dx() == pixmap.Width && dst.Dy() == pixmap.Height {
		srcOffset := (r.Min.X - dst.Min.X) * pixSize
		copySize := r.Dx() * pixSize
		for y := r.Min.Y; y < r.Max.Y; y++ {
			srcRow := pixmap.Row(y - dst.Min.Y)
			dstRow := fb.Row(y)
			copy(dstRow[r.Min.X*pixSize:], srcRow[srcOffset:srcOffset+copySize])
		}
		return
	}

	dw, dh := dst.Dx(), dst.Dy()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sy := (2*(y-dst.Min.Y) + 1) * pixmap.Height / (2 * dh)
		srcRow := pixmap.Row(sy)
		dstRow := fb.Row(y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sx := (2*(x-dst.Min.X) + 1) * pixmap.Width / (2 * dw)
			copy(dstRow[x*pixSize:(x+1)*pixSize], srcRow[sx*pixSize:])
		}
	}
}
