//go:build !tinygo

package hal

// rgb565 is the pixel format of the console framebuffer, stored little endian.
type rgb565 uint16

func pack565(r, g, b uint8) rgb565 {
	return rgb565(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

func (p rgb565) rgb() (r, g, b uint8) {
	r = uint8(uint32(p>>11&0x1F) * 255 / 31)
	g = uint8(uint32(p>>5&0x3F) * 255 / 63)
	b = uint8(uint32(p&0x1F) * 255 / 31)
	return r, g, b
}

// hostFramebuffer has no locking of its own; the console serializes access.
type hostFramebuffer struct {
	width  int
	height int
	top    int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{width: width, height: height, buf: make([]byte, width*height*2)}
}

func (f *hostFramebuffer) stride() int { return f.width * 2 }

func (f *hostFramebuffer) at(x, y int) rgb565 {
	off := y*f.stride() + x*2
	return rgb565(f.buf[off]) | rgb565(f.buf[off+1])<<8
}

func (f *hostFramebuffer) set(x, y int, p rgb565) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	off := y*f.stride() + x*2
	f.buf[off] = byte(p)
	f.buf[off+1] = byte(p >> 8)
}

// fill paints the half-open rectangle [x0,x1)x[y0,y1), clipped to the buffer.
func (f *hostFramebuffer) fill(x0, y0, x1, y1 int, p rgb565) {
	x0, x1 = clampInt(x0, 0, f.width), clampInt(x1, 0, f.width)
	y0, y1 = clampInt(y0, 0, f.height), clampInt(y1, 0, f.height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			f.set(x, y, p)
		}
	}
}

// setTop selects the buffer row shown at the top of the screen, the way a
// panel's vertical scroll register does. Rows below wrap around.
func (f *hostFramebuffer) setTop(row int) {
	if f.height == 0 {
		return
	}
	f.top = ((row % f.height) + f.height) % f.height
}

// toRGBA expands the visible screen into dst, which holds width*height RGBA
// pixels, starting from the row chosen by setTop.
func (f *hostFramebuffer) toRGBA(dst []byte) {
	for y := 0; y < f.height; y++ {
		src := (y + f.top) % f.height
		for x := 0; x < f.width; x++ {
			j := (y*f.width + x) * 4
			if j+3 >= len(dst) {
				return
			}
			dst[j], dst[j+1], dst[j+2] = f.at(x, src).rgb()
			dst[j+3] = 0xFF
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
