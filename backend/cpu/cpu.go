// Package cpu implements the software rasterizer backend (spec §4.9):
// a [Backend] that replays a [recording.Recording] directly onto a
// [ink.Pixmap] using scalar per-pixel fills, Bresenham lines, and the
// shared glyph atlas for text.
package cpu

import (
	"github.com/gogpu/ink"
	"github.com/gogpu/ink/backend"
	"github.com/gogpu/ink/recording"
	"github.com/gogpu/ink/text"
)

var (
	_ backend.Backend         = (*Backend)(nil)
	_ recording.DrawOpVisitor = (*Backend)(nil)
)

// Backend is the CPU rasterizer. Its target Pixmap is owned by whatever
// Surface constructed it; Backend only ever mutates it, never reallocates
// it behind the Surface's back except via Resize.
type Backend struct {
	target  *ink.Pixmap
	hasClip bool
	clip    ink.Rect
	atlas   *text.Atlas
}

// New creates a CpuBackend rendering onto target.
func New(target *ink.Pixmap) *Backend {
	return &Backend{target: target}
}

// BeginFrame fills the target with clearColor and resets clip state.
func (b *Backend) BeginFrame(clearColor ink.Color) {
	b.target.Clear(clearColor)
	b.hasClip = false
}

// EndFrame is a no-op on the CPU backend (spec §4.8).
func (b *Backend) EndFrame() {}

// Resize reallocates the target Pixmap at the new dimensions, dropping
// its previous contents (spec §4.5, §4.8).
func (b *Backend) Resize(width, height int) {
	b.target.Reallocate(width, height, b.target.Format())
}

// SetGlyphAtlas installs the atlas used to rasterize Text ops.
func (b *Backend) SetGlyphAtlas(atlas *text.Atlas) {
	b.atlas = atlas
}

// MakeSnapshot copies the target's current pixels into a fresh,
// independent Image (spec §7: snapshot isolation).
func (b *Backend) MakeSnapshot() *ink.Image {
	return ink.FromPixmap(b.target)
}

// Close is a no-op: the CPU backend owns no resources beyond the target
// Pixmap, which belongs to whatever Surface constructed it.
func (b *Backend) Close() {}

// Execute replays rec in the order given by pass, dispatching each op to
// the corresponding Visit method.
func (b *Backend) Execute(rec *recording.Recording, pass *recording.DrawPass) {
	rec.Dispatch(b, pass)
}

// effectiveClip intersects the active clip (if any) with the target
// bounds, so every per-op rasterizer only ever needs one clamp.
func (b *Backend) effectiveClip() ink.Rect {
	bounds := ink.Rect{X: 0, Y: 0, W: float32(b.target.Width()), H: float32(b.target.Height())}
	if !b.hasClip {
		return bounds
	}
	return b.clip.Intersect(bounds)
}

// VisitFillRect implements recording.DrawOpVisitor.
func (b *Backend) VisitFillRect(r ink.Rect, c ink.Color) {
	clip := r.Intersect(b.effectiveClip())
	b.fillRect(clip, c)
}

// VisitStrokeRect implements recording.DrawOpVisitor by emitting four
// fill rectangles, one per edge (spec §4.9).
func (b *Backend) VisitStrokeRect(r ink.Rect, c ink.Color, width float32) {
	if width <= 0 {
		width = 1
	}
	clip := b.effectiveClip()

	top := ink.Rect{X: r.X, Y: r.Y, W: r.W, H: width}
	bottom := ink.Rect{X: r.X, Y: r.Y + r.H - width, W: r.W, H: width}
	left := ink.Rect{X: r.X, Y: r.Y, W: width, H: r.H}
	right := ink.Rect{X: r.X + r.W - width, Y: r.Y, W: width, H: r.H}

	for _, edge := range [...]ink.Rect{top, bottom, left, right} {
		b.fillRect(edge.Intersect(clip), c)
	}
}

// VisitLine implements recording.DrawOpVisitor with integer-coordinate
// Bresenham blending. width is accepted but ignored, matching the CPU
// backend's current policy (spec §4.9).
func (b *Backend) VisitLine(p1, p2 ink.Point, c ink.Color, width float32) {
	b.bresenham(p1, p2, c)
}

// VisitPolyline implements recording.DrawOpVisitor by drawing a line
// between each consecutive pair of points. width is accepted but ignored,
// as in VisitLine.
func (b *Backend) VisitPolyline(pts []ink.Point, c ink.Color, width float32) {
	for i := 0; i+1 < len(pts); i++ {
		b.bresenham(pts[i], pts[i+1], c)
	}
}

// VisitText implements recording.DrawOpVisitor. A Text op with no atlas
// installed is skipped and a warning is logged (spec §7: GlyphAtlasMissing).
func (b *Backend) VisitText(pos ink.Point, s string, c ink.Color) {
	if b.atlas == nil {
		ink.Logger().Warn("cpu: text op with no glyph atlas installed")
		return
	}
	b.atlas.DrawTextCPU(b.target.Pixels(), b.target.Stride(), b.target.Height(), pos.X, pos.Y, s, c, b.target.Format())
}

// VisitDrawImage implements recording.DrawOpVisitor, blending img's
// pixels (format-converted as needed) into the clipped destination
// rectangle (spec §4.9).
func (b *Backend) VisitDrawImage(img *ink.Image, x, y float32) {
	if img == nil || img.IsGPU() {
		return
	}
	src := img.Pixmap()
	if src == nil {
		return
	}

	dst := ink.Rect{X: x, Y: y, W: float32(src.Width()), H: float32(src.Height())}
	clip := dst.Intersect(b.effectiveClip())
	if clip.Empty() {
		return
	}

	x0, y0 := int(clip.X), int(clip.Y)
	x1, y1 := int(clip.X+clip.W), int(clip.Y+clip.H)

	for py := y0; py < y1; py++ {
		sy := py - int(y)
		for px := x0; px < x1; px++ {
			sx := px - int(x)
			sc := src.At(sx, sy)
			switch sc.A {
			case 0:
				continue
			case 255:
				b.target.Set(px, py, sc)
			default:
				dc := b.target.At(px, py)
				b.target.Set(px, py, blend(sc, dc))
			}
		}
	}
}

// VisitSetClip implements recording.DrawOpVisitor.
func (b *Backend) VisitSetClip(r ink.Rect) {
	b.hasClip = true
	b.clip = r
}

// VisitClearClip implements recording.DrawOpVisitor.
func (b *Backend) VisitClearClip() {
	b.hasClip = false
}

func (b *Backend) fillRect(r ink.Rect, c ink.Color) {
	if r.Empty() {
		return
	}
	x0, y0 := int(r.X), int(r.Y)
	x1, y1 := int(r.X+r.W), int(r.Y+r.H)

	if c.A == 255 {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				b.target.Set(x, y, c)
			}
		}
		return
	}
	if c.A == 0 {
		return
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dc := b.target.At(x, y)
			b.target.Set(x, y, blend(c, dc))
		}
	}
}

// bresenham draws an integer-coordinate line from p1 to p2, blending
// each stepped pixel against the effective clip.
func (b *Backend) bresenham(p1, p2 ink.Point, c ink.Color) {
	clip := b.effectiveClip()

	x0, y0 := int(p1.X), int(p1.Y)
	x1, y1 := int(p2.X), int(p2.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if clip.Contains(float32(x0), float32(y0)) {
			b.plot(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (b *Backend) plot(x, y int, c ink.Color) {
	switch c.A {
	case 0:
		return
	case 255:
		b.target.Set(x, y, c)
	default:
		dc := b.target.At(x, y)
		b.target.Set(x, y, blend(c, dc))
	}
}

// blend applies the spec's integer SRC-OVER formula:
// out = (src*a + dst*(255-a)) / 255 per channel, output alpha clamped to
// 255 (spec §8, property "Alpha identity").
func blend(src, dst ink.Color) ink.Color {
	a := uint32(src.A)
	inv := 255 - a
	return ink.Color{
		R: uint8((uint32(src.R)*a + uint32(dst.R)*inv) / 255),
		G: uint8((uint32(src.G)*a + uint32(dst.G)*inv) / 255),
		B: uint8((uint32(src.B)*a + uint32(dst.B)*inv) / 255),
		A: 255,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
