package ink

import "fmt"

// Pixmap is a 2D pixel buffer with a known stride and format, always 4
// bytes per pixel, always top-left origin (spec §3, §4.5).
//
// A Pixmap is either owning (its buffer was allocated by [AllocPixmap] and
// is freed when the Pixmap is discarded) or borrowing ([WrapPixmap], whose
// buffer is supplied by the caller and outlives the Pixmap). Pixmap values
// are not meant to be copied once owning; pass a pointer.
type Pixmap struct {
	width  int
	height int
	stride int
	format PixelFormat
	pixels []byte
	owned  bool
}

// AllocPixmap allocates a new owning Pixmap. Stride is always 4*width for
// owned pixmaps (spec §3 invariant).
func AllocPixmap(width, height int, format PixelFormat) *Pixmap {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	stride := 4 * width
	return &Pixmap{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		pixels: make([]byte, stride*height),
		owned:  true,
	}
}

// WrapPixmap borrows an externally-owned buffer. The caller must keep buf
// alive and unmodified by others for the lifetime of the returned Pixmap;
// WrapPixmap never frees buf.
//
// stride must be at least 4*width (spec §3 invariant); WrapPixmap panics
// otherwise, since a violated stride invariant corrupts every subsequent
// read.
func WrapPixmap(width, height, stride int, format PixelFormat, buf []byte) *Pixmap {
	if stride < 4*width {
		panic(fmt.Sprintf("ink: WrapPixmap stride %d smaller than 4*width %d", stride, 4*width))
	}
	return &Pixmap{
		width:  width,
		height: height,
		stride: stride,
		format: format,
		pixels: buf,
		owned:  false,
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Stride returns the row stride in bytes.
func (p *Pixmap) Stride() int { return p.stride }

// Format returns the pixel format.
func (p *Pixmap) Format() PixelFormat { return p.format }

// Owned reports whether this Pixmap owns (and will free) its buffer.
func (p *Pixmap) Owned() bool { return p.owned }

// Pixels returns the raw pixel buffer. Callers must respect Stride when
// indexing rows.
func (p *Pixmap) Pixels() []byte { return p.pixels }

// Clear writes c to every pixel, packed in the pixmap's own format.
func (p *Pixmap) Clear(c Color) {
	word := c.packedWord(p.format)
	for y := 0; y < p.height; y++ {
		row := p.pixels[y*p.stride : y*p.stride+4*p.width]
		for x := 0; x < len(row); x += 4 {
			row[x+0] = byte(word)
			row[x+1] = byte(word >> 8)
			row[x+2] = byte(word >> 16)
			row[x+3] = byte(word >> 24)
		}
	}
}

// Reallocate drops the current buffer (if owned) and allocates a fresh one
// at the new dimensions. Existing contents are not preserved (spec §4.5).
func (p *Pixmap) Reallocate(width, height int, format PixelFormat) {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	p.width = width
	p.height = height
	p.stride = 4 * width
	p.format = format
	p.pixels = make([]byte, p.stride*height)
	p.owned = true
}

// At returns the color of the pixel at (x, y), or Transparent if out of
// bounds.
func (p *Pixmap) At(x, y int) Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := y*p.stride + x*4
	b0, b1, b2, b3 := p.pixels[i], p.pixels[i+1], p.pixels[i+2], p.pixels[i+3]
	if p.format == BGRA8888 {
		return Color{R: b2, G: b1, B: b0, A: b3}
	}
	return Color{R: b0, G: b1, B: b2, A: b3}
}

// Set writes a single pixel, converting c into the pixmap's format. Out of
// bounds writes are silently ignored.
func (p *Pixmap) Set(x, y int, c Color) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := y*p.stride + x*4
	if p.format == BGRA8888 {
		p.pixels[i], p.pixels[i+1], p.pixels[i+2], p.pixels[i+3] = c.B, c.G, c.R, c.A
	} else {
		p.pixels[i], p.pixels[i+1], p.pixels[i+2], p.pixels[i+3] = c.R, c.G, c.B, c.A
	}
}
