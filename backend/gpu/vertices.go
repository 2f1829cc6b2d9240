package gpu

import (
	"math"

	"github.com/gogpu/ink"
)

// colorVertexSize and texVertexSize are each vertex's byte footprint:
// position (2×float32) plus either an RGBA color or a UV pair
// (2×float32), matching the layouts in shaders.go.
const (
	colorVertexSize = 4 * 6
	texVertexSize   = 4 * 4
)

func appendFloat32(buf []byte, v float32) []byte {
	bits := math.Float32bits(v)
	return append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

func (b *Backend) appendColorVertex(x, y float32, c ink.Color) {
	buf := b.colorVerts
	buf = appendFloat32(buf, x)
	buf = appendFloat32(buf, y)
	buf = appendFloat32(buf, float32(c.R)/255)
	buf = appendFloat32(buf, float32(c.G)/255)
	buf = appendFloat32(buf, float32(c.B)/255)
	buf = appendFloat32(buf, float32(c.A)/255)
	b.colorVerts = buf
}

func (b *Backend) appendTexVertex(x, y, u, v float32) {
	buf := b.texVerts
	buf = appendFloat32(buf, x)
	buf = appendFloat32(buf, y)
	buf = appendFloat32(buf, u)
	buf = appendFloat32(buf, v)
	b.texVerts = buf
}

// pushRectColor appends two triangles (triangle-list order) covering r,
// each vertex carrying c (spec §4.10: FillRect/StrokeRect edges).
func (b *Backend) pushRectColor(r ink.Rect, c ink.Color) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H

	b.appendColorVertex(x0, y0, c)
	b.appendColorVertex(x1, y0, c)
	b.appendColorVertex(x1, y1, c)

	b.appendColorVertex(x0, y0, c)
	b.appendColorVertex(x1, y1, c)
	b.appendColorVertex(x0, y1, c)
}

// pushQuadTex appends two triangles covering r with the given UV
// rectangle (spec §4.10: Text/DrawImage).
func (b *Backend) pushQuadTex(r ink.Rect, u0, v0, u1, v1 float32) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H

	b.appendTexVertex(x0, y0, u0, v0)
	b.appendTexVertex(x1, y0, u1, v0)
	b.appendTexVertex(x1, y1, u1, v1)

	b.appendTexVertex(x0, y0, u0, v0)
	b.appendTexVertex(x1, y1, u1, v1)
	b.appendTexVertex(x0, y1, u0, v1)
}

// pushLine expands a segment into a quad along its perpendicular normal
// (spec §4.10): dropped entirely if the segment is degenerate.
func (b *Backend) pushLine(p1, p2 ink.Point, c ink.Color, width float32) {
	if width <= 0 {
		width = 1
	}
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 1e-4 {
		return
	}
	half := width / 2
	nx := -dy / length * half
	ny := dx / length * half

	a := ink.Point{X: p1.X + nx, Y: p1.Y + ny}
	d := ink.Point{X: p1.X - nx, Y: p1.Y - ny}
	bb := ink.Point{X: p2.X + nx, Y: p2.Y + ny}
	e := ink.Point{X: p2.X - nx, Y: p2.Y - ny}

	b.appendColorVertex(a.X, a.Y, c)
	b.appendColorVertex(bb.X, bb.Y, c)
	b.appendColorVertex(e.X, e.Y, c)

	b.appendColorVertex(a.X, a.Y, c)
	b.appendColorVertex(e.X, e.Y, c)
	b.appendColorVertex(d.X, d.Y, c)
}
