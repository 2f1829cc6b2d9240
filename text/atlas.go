package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ink"
)

const (
	initialAtlasWidth  = 512
	initialAtlasHeight = 256
	glyphPadding       = 1
)

// GlyphMetrics is the per-glyph data recorded on first use (spec §4.7):
// its pixel-space bounding box relative to the drawing origin, its
// horizontal advance, and its UV rectangle into the atlas bitmap.
type GlyphMetrics struct {
	BoundsMinX, BoundsMinY int
	BoundsMaxX, BoundsMaxY int
	Advance                float32

	U0, V0, U1, V1 float32

	atlasX, atlasY, w, h int
}

// Atlas rasterizes and packs greyscale glyphs for a single font face at a
// fixed pixel size, shared by CpuBackend and GpuBackend for Text ops
// (spec §4.7). It is backed by a single-channel 8-bit bitmap that starts
// at 512×256 and grows by doubling whenever a new glyph no longer fits.
//
// Atlas is not safe for concurrent use: both backends must serialize
// access to a shared Atlas, matching the single-threaded recording
// contract elsewhere in this module.
type Atlas struct {
	face       font.Face
	size       float64
	ascent     float32
	descent    float32
	lineHeight float32

	width, height int
	bitmap        []byte // width*height, one byte per pixel (coverage)
	dirty         bool

	packer  *shelfAllocator
	glyphs  map[byte]GlyphMetrics
}

// NewAtlas parses fontData (TTF/OTF) and builds an Atlas rasterizing
// glyphs at the given pixel size.
func NewAtlas(fontData []byte, size float64) (*Atlas, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: build face: %w", err)
	}

	metrics := face.Metrics()
	a := &Atlas{
		face:       face,
		size:       size,
		ascent:     fixedToFloat32(metrics.Ascent),
		descent:    fixedToFloat32(metrics.Descent),
		lineHeight: fixedToFloat32(metrics.Height),
		width:      initialAtlasWidth,
		height:     initialAtlasHeight,
		bitmap:     make([]byte, initialAtlasWidth*initialAtlasHeight),
		packer:     newShelfAllocator(initialAtlasWidth, initialAtlasHeight, glyphPadding),
		glyphs:     make(map[byte]GlyphMetrics, 128),
	}
	return a, nil
}

// Ascent returns the distance from the baseline to the top of the font.
func (a *Atlas) Ascent() float32 { return a.ascent }

// Descent returns the distance from the baseline to the bottom of the font.
func (a *Atlas) Descent() float32 { return a.descent }

// LineHeight reports the typographic line height (spec §4.7).
func (a *Atlas) LineHeight() float32 { return a.lineHeight }

// Width and Height report the current bitmap dimensions.
func (a *Atlas) Width() int  { return a.width }
func (a *Atlas) Height() int { return a.height }

// Bitmap returns the packed single-channel coverage buffer, row-major,
// one byte per pixel.
func (a *Atlas) Bitmap() []byte { return a.bitmap }

// Dirty reports whether the bitmap has changed since the last
// ClearDirty call. Neither backend reads it: GpuBackend uploads each text
// run through its own scratch texture instead of the atlas bitmap.
func (a *Atlas) Dirty() bool { return a.dirty }

// ClearDirty resets the dirty flag.
func (a *Atlas) ClearDirty() { a.dirty = false }

// asciiKey normalizes s defensively (NFC) and returns it as a byte
// sequence; multi-byte runes degrade to their constituent bytes rather
// than being shaped, matching spec §4.7's ASCII-cache simplification.
func asciiKey(s string) []byte {
	return []byte(norm.NFC.String(s))
}

// glyph returns the (possibly freshly rasterized) metrics for byte b,
// growing the atlas bitmap if the glyph doesn't currently fit.
func (a *Atlas) glyph(b byte) GlyphMetrics {
	if m, ok := a.glyphs[b]; ok {
		return m
	}
	m := a.rasterize(b)
	a.glyphs[b] = m
	return m
}

func (a *Atlas) rasterize(b byte) GlyphMetrics {
	r := rune(b)
	bounds, advance, ok := a.face.GlyphBounds(r)
	if !ok {
		return GlyphMetrics{Advance: fixedToFloat32(advance)}
	}

	minX := bounds.Min.X.Floor()
	minY := bounds.Min.Y.Floor()
	maxX := bounds.Max.X.Ceil()
	maxY := bounds.Max.Y.Ceil()
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		return GlyphMetrics{Advance: fixedToFloat32(advance)}
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	drawer := &font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: a.face,
		Dot:  fixed.Point26_6{X: -bounds.Min.X, Y: -bounds.Min.Y},
	}
	drawer.DrawString(string(r))

	x, y, ok := a.packer.allocate(w, h)
	if !ok {
		a.grow()
		x, y, ok = a.packer.allocate(w, h)
		if !ok {
			// Glyph still does not fit after one grow; skip packing
			// but still report metrics so layout stays consistent.
			return GlyphMetrics{
				BoundsMinX: minX, BoundsMinY: minY,
				BoundsMaxX: maxX, BoundsMaxY: maxY,
				Advance: fixedToFloat32(advance),
			}
		}
	}

	for row := 0; row < h; row++ {
		dstOff := (y+row)*a.width + x
		srcOff := row * mask.Stride
		copy(a.bitmap[dstOff:dstOff+w], mask.Pix[srcOff:srcOff+w])
	}
	a.dirty = true

	m := GlyphMetrics{
		BoundsMinX: minX, BoundsMinY: minY,
		BoundsMaxX: maxX, BoundsMaxY: maxY,
		Advance: fixedToFloat32(advance),
		atlasX:  x, atlasY: y, w: w, h: h,
	}
	a.setUV(&m)
	return m
}

func (a *Atlas) setUV(m *GlyphMetrics) {
	m.U0 = float32(m.atlasX) / float32(a.width)
	m.V0 = float32(m.atlasY) / float32(a.height)
	m.U1 = float32(m.atlasX+m.w) / float32(a.width)
	m.V1 = float32(m.atlasY+m.h) / float32(a.height)
}

// grow doubles only the smaller dimension (spec §4.7) and recomputes
// every previously cached glyph's UV rectangle against the new
// dimensions — their pixel placement in the bitmap never moves, only the
// normalized UV denominator changes.
func (a *Atlas) grow() {
	newWidth, newHeight := a.width, a.height
	if a.width <= a.height {
		newWidth = a.width * 2
	} else {
		newHeight = a.height * 2
	}
	newBitmap := make([]byte, newWidth*newHeight)
	for row := 0; row < a.height; row++ {
		copy(newBitmap[row*newWidth:row*newWidth+a.width], a.bitmap[row*a.width:(row+1)*a.width])
	}
	a.bitmap = newBitmap
	a.width = newWidth
	a.height = newHeight
	a.packer.resize(newWidth, newHeight)
	a.dirty = true

	for b, m := range a.glyphs {
		a.setUV(&m)
		a.glyphs[b] = m
	}
}

// MeasureText sums glyph advances for s (spec §4.7).
func (a *Atlas) MeasureText(s string) float32 {
	var total float32
	for _, b := range asciiKey(s) {
		total += a.glyph(b).Advance
	}
	return total
}

// DrawTextCPU composites s into buf (a width*height format pixel buffer
// with the given stride, in bytes) at baseline position (x, y), using
// each glyph's coverage mask as alpha blended with color (spec §4.7).
func (a *Atlas) DrawTextCPU(buf []byte, stride, height int, x, y float32, s string, color ink.Color, format ink.PixelFormat) {
	cursor := x
	baseline := y
	for _, b := range asciiKey(s) {
		m := a.glyph(b)
		if m.w > 0 && m.h > 0 {
			drawGlyphCPU(buf, stride, height, cursor, baseline, m, a, color, format)
		}
		cursor += m.Advance
	}
}

func drawGlyphCPU(buf []byte, stride, bufHeight int, x, baseline float32, m GlyphMetrics, a *Atlas, color ink.Color, format ink.PixelFormat) {
	originX := int(x) + m.BoundsMinX
	originY := int(baseline) + m.BoundsMinY

	for row := 0; row < m.h; row++ {
		py := originY + row
		if py < 0 || py >= bufHeight {
			continue
		}
		srcRow := (m.atlasY + row) * a.width
		for col := 0; col < m.w; col++ {
			px := originX + col
			if px < 0 {
				continue
			}
			rowStart := py * stride
			if rowStart+(px+1)*4 > len(buf) {
				continue
			}
			coverage := a.bitmap[srcRow+m.atlasX+col]
			if coverage == 0 {
				continue
			}
			blendGlyphPixel(buf, rowStart+px*4, format, color, coverage)
		}
	}
}

func blendGlyphPixel(buf []byte, off int, format ink.PixelFormat, c ink.Color, coverage uint8) {
	srcA := uint32(c.A) * uint32(coverage) / 255
	if srcA == 0 {
		return
	}

	var ri, gi, bi, ai int
	switch format {
	case ink.BGRA8888:
		ri, gi, bi, ai = 2, 1, 0, 3
	default:
		ri, gi, bi, ai = 0, 1, 2, 3
	}

	if srcA == 255 {
		buf[off+ri] = c.R
		buf[off+gi] = c.G
		buf[off+bi] = c.B
		buf[off+ai] = 255
		return
	}

	invA := 255 - srcA
	buf[off+ri] = uint8((uint32(c.R)*srcA + uint32(buf[off+ri])*invA) / 255)
	buf[off+gi] = uint8((uint32(c.G)*srcA + uint32(buf[off+gi])*invA) / 255)
	buf[off+bi] = uint8((uint32(c.B)*srcA + uint32(buf[off+bi])*invA) / 255)
	buf[off+ai] = uint8(srcA + uint32(buf[off+ai])*invA/255)
}

func fixedToFloat32(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
