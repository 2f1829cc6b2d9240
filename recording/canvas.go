package recording

// clipFrame is one entry of the Canvas clip stack (spec §3).
type clipFrame struct {
	hasClip bool
	clip    Rect
}

// Canvas is the client-facing drawing API: it translates draw calls into
// [Recorder] ops while maintaining a clip stack that is collapsed into
// SetClip/ClearClip ops only when it actually changes (spec §4.4).
//
// Canvas is not safe for concurrent use, matching [Recorder].
type Canvas struct {
	rec     *Recorder
	current clipFrame
	stack   []clipFrame
}

// NewCanvas creates a Canvas writing into rec.
func NewCanvas(rec *Recorder) *Canvas {
	return &Canvas{rec: rec}
}

// FillRect records a filled rectangle.
func (c *Canvas) FillRect(r Rect, color Color) {
	c.rec.FillRect(r, color)
}

// StrokeRect records a stroked rectangle. width defaults to 1.
func (c *Canvas) StrokeRect(r Rect, color Color, width float32) {
	c.rec.StrokeRect(r, color, width)
}

// DrawLine records a line segment. width defaults to 1.
func (c *Canvas) DrawLine(p1, p2 Point, color Color, width float32) {
	c.rec.DrawLine(p1, p2, color, width)
}

// DrawPolyline records a connected sequence of line segments. width
// defaults to 1.
func (c *Canvas) DrawPolyline(pts []Point, color Color, width float32) {
	c.rec.DrawPolyline(pts, color, width)
}

// DrawText records a text run at the given baseline position. Rendering
// requires a glyph atlas to be installed on the executing backend; a
// Recording with Text ops is still valid without one (spec §7:
// GlyphAtlasMissing is a backend-execution concern, not a recording-time
// one).
func (c *Canvas) DrawText(baseline Point, s string, color Color) {
	c.rec.DrawText(baseline, s, color)
}

// DrawImage records an image draw at (x, y) in destination coordinates,
// using the image's own dimensions.
func (c *Canvas) DrawImage(img *Image, x, y float32) {
	c.rec.DrawImage(img, x, y)
}

// Save pushes the current clip frame onto the stack.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.current)
}

// Restore pops the most recently saved clip frame and, only if the
// effective clip actually changes, re-issues the appropriate SetClip or
// ClearClip op (spec §4.4, testable property 6: a no-op save/restore pair
// emits nothing beyond what's needed to re-assert the prior state).
//
// Restore on an empty stack is a no-op, matching the teacher's
// defensive-no-op convention for state-stack underflow.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	prev := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	if prev == c.current {
		return
	}
	c.current = prev
	if c.current.hasClip {
		c.rec.SetClip(c.current.clip)
	} else {
		c.rec.ClearClip()
	}
}

// ClipRect intersects r with the current clip and records the result as
// the new clip (spec §4.4, testable property 5). A disjoint intersection
// is representable as a zero-size rect, not a removed clip.
func (c *Canvas) ClipRect(r Rect) {
	var next Rect
	if c.current.hasClip {
		next = c.current.clip.Intersect(r)
	} else {
		next = r
		if next.W < 0 {
			next.W = 0
		}
		if next.H < 0 {
			next.H = 0
		}
	}
	c.current = clipFrame{hasClip: true, clip: next}
	c.rec.SetClip(next)
}

// ClipRectValue returns the current effective clip rectangle and whether a
// clip is active. Exposed mainly for tests.
func (c *Canvas) ClipRectValue() (Rect, bool) {
	return c.current.clip, c.current.hasClip
}
