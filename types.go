package ink

import "math"

// Point is a 2D coordinate or vector, in pixels.
type Point struct {
	X, Y float32
}

// Pt is a convenience constructor for Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum of two points.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector difference of two points.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Length returns the Euclidean length of the vector.
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

// Rect is an axis-aligned rectangle, top-left origin, W/H may be zero but
// never negative (negative width/height is always clamped to zero by the
// constructors and operations that produce one; see [Rect.Intersect]).
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies within the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has zero or negative area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the intersection of r and o. A disjoint pair of
// rectangles produces a zero-size rect rather than a nonsensical negative
// one (spec §4.4, testable property 5).
func (r Rect) Intersect(o Rect) Rect {
	x0 := max32(r.X, o.X)
	y0 := max32(r.Y, o.Y)
	x1 := min32(r.X+r.W, o.X+o.W)
	y1 := min32(r.Y+r.H, o.Y+o.H)
	w := x1 - x0
	h := y1 - y0
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x0, Y: y0, W: w, H: h}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// PixelFormat identifies the byte order of a 4-byte-per-pixel buffer.
type PixelFormat uint8

const (
	// RGBA8888 stores bytes in R, G, B, A order.
	RGBA8888 PixelFormat = iota
	// BGRA8888 stores bytes in B, G, R, A order.
	BGRA8888
)

// String returns the canonical name of the format.
func (f PixelFormat) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case BGRA8888:
		return "BGRA8888"
	default:
		return "Unknown"
	}
}

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color (A = 255).
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors, matching the teacher's gg.Black/White/... convention.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Transparent = RGBA(0, 0, 0, 0)
)

// packedWord packs the color into a single little-endian machine word whose
// byte layout (low byte first) matches the given pixel format, for the
// CpuBackend's fast opaque-fill path.
func (c Color) packedWord(format PixelFormat) uint32 {
	switch format {
	case BGRA8888:
		return uint32(c.B) | uint32(c.G)<<8 | uint32(c.R)<<16 | uint32(c.A)<<24
	default: // RGBA8888
		return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
	}
}
