//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyterm"
)

// console renders UART traffic into a framebuffer through a VT100 terminal,
// the way a serial monitor attached to the board would show it.
type console struct {
	mu    sync.Mutex
	fb    *hostFramebuffer
	d     *fbDisplay
	t     *tinyterm.Terminal
	dirty bool
	echo  bool
}

func newConsole(width, height int, echo bool) *console {
	fb := newHostFramebuffer(width, height)
	c := &console{fb: fb, d: &fbDisplay{fb: fb}, echo: echo}
	c.reset()
	return c
}

func (c *console) reset() {
	c.t = tinyterm.NewTerminal(c.d)
	c.t.Configure(&tinyterm.Config{
		Font:       &tinyfont.TomThumb,
		FontHeight: 6,
		FontOffset: 5,
	})
	c.fb.setTop(0)
	c.fb.fill(0, 0, c.fb.width, c.fb.height, 0)
	c.dirty = true
}

// RX echoes typed input locally when enabled.
func (c *console) RX(b byte) {
	if c.echo {
		c.TX(b)
	}
}

func (c *console) TX(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.t.WriteByte(b)
	c.dirty = true
}

// snapshot copies the framebuffer into dst as RGBA if anything changed
// since the last call.
func (c *console) snapshot(dst []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return false
	}
	c.fb.toRGBA(dst)
	c.dirty = false
	return true
}

// fbDisplay adapts hostFramebuffer to the tinyterm display contract.
type fbDisplay struct {
	fb *hostFramebuffer
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.set(int(x), int(y), pack565(c.R, c.G, c.B))
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fb.fill(int(x), int(y), int(x)+int(width), int(y)+int(height), pack565(c.R, c.G, c.B))
	return nil
}

// SetScroll is how tinyterm scrolls: it keeps drawing into a ring of rows
// and moves the row shown at the top.
func (d *fbDisplay) SetScroll(line int16) { d.fb.setTop(int(line)) }

func (d *fbDisplay) SetRotation(rotation drivers.Rotation) error { return nil }
