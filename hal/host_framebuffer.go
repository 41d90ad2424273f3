//go:build !tinygo

package hal

import "sync"

// hostFramebuffer is the RGB565 surface the dashboard is drawn into.
type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) clearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *hostFramebuffer) setPixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	pixel := rgb565(r, g, b)
	off := y*f.stride + x*2
	f.mu.Lock()
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
	f.mu.Unlock()
}

func (f *hostFramebuffer) pixel(x, y int) uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func (f *hostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}
