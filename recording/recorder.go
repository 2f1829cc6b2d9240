package recording

// Recorder is the append-only builder behind [Canvas]: each draw method
// appends exactly one [DrawOp] (except DrawPolyline with no points, which
// appends none), and Polyline/Text additionally reserve bytes in the
// embedded [Arena] (spec §4.2).
//
// Recorder is NOT safe for concurrent use, matching the teacher's own
// recording.Recorder contract (gogpu-gg/recording/doc.go): each goroutine
// recording a frame should use its own Recorder.
type Recorder struct {
	ops    []DrawOp
	arena  *Arena
	images []*Image
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		ops:   make([]DrawOp, 0, 64),
		arena: NewArena(),
	}
}

// FillRect appends a FillRect op.
func (rec *Recorder) FillRect(r Rect, c Color) {
	rec.ops = append(rec.ops, DrawOp{Type: OpFillRect, Rect: r, Color: c})
}

// StrokeRect appends a StrokeRect op. width defaults to 1 if <= 0.
func (rec *Recorder) StrokeRect(r Rect, c Color, width float32) {
	if width <= 0 {
		width = 1
	}
	rec.ops = append(rec.ops, DrawOp{Type: OpStrokeRect, Rect: r, Color: c, Width: width})
}

// DrawLine appends a Line op. width defaults to 1 if <= 0.
func (rec *Recorder) DrawLine(p1, p2 Point, c Color, width float32) {
	if width <= 0 {
		width = 1
	}
	rec.ops = append(rec.ops, DrawOp{Type: OpLine, P1: p1, P2: p2, Color: c, Width: width})
}

// DrawPolyline appends a Polyline op, copying pts into the arena. width
// defaults to 1 if <= 0. An empty pts records no op.
func (rec *Recorder) DrawPolyline(pts []Point, c Color, width float32) {
	if width <= 0 {
		width = 1
	}
	if len(pts) == 0 {
		return
	}
	off := rec.arena.StorePoints(pts)
	rec.ops = append(rec.ops, DrawOp{
		Type:        OpPolyline,
		Color:       c,
		Width:       width,
		ArenaOffset: off,
		Count:       uint32(len(pts)),
	})
}

// DrawText appends a Text op at the given baseline position, copying s
// into the arena.
func (rec *Recorder) DrawText(baseline Point, s string, c Color) {
	off := rec.arena.StoreString(s)
	rec.ops = append(rec.ops, DrawOp{
		Type:        OpText,
		Color:       c,
		Pos:         baseline,
		ArenaOffset: off,
		Count:       uint32(len(s)),
	})
}

// DrawImage appends a DrawImage op referencing img, assigning it the next
// free slot in the recording's image table (images are deduplicated by
// identity is intentionally not done here — the original doesn't, and
// repeated draws of the same image are rare enough not to matter).
func (rec *Recorder) DrawImage(img *Image, x, y float32) {
	idx := uint32(len(rec.images))
	rec.images = append(rec.images, img)
	rec.ops = append(rec.ops, DrawOp{
		Type:       OpDrawImage,
		Pos:        Point{X: x, Y: y},
		ImageIndex: idx,
	})
}

// SetClip appends a SetClip op.
func (rec *Recorder) SetClip(r Rect) {
	rec.ops = append(rec.ops, DrawOp{Type: OpSetClip, Rect: r})
}

// ClearClip appends a ClearClip op.
func (rec *Recorder) ClearClip() {
	rec.ops = append(rec.ops, DrawOp{Type: OpClearClip})
}

// Finish consumes the Recorder's state and returns an immutable Recording.
// The Recorder is left empty and ready to record the next frame (spec
// §3's Surface.flush resets the Recorder after finishing a Recording).
func (rec *Recorder) Finish() *Recording {
	r := &Recording{
		ops:    rec.ops,
		arena:  rec.arena,
		images: rec.images,
	}
	rec.ops = make([]DrawOp, 0, 64)
	rec.arena = NewArena()
	rec.images = nil
	return r
}

// Reset discards any recorded state without producing a Recording.
func (rec *Recorder) Reset() {
	rec.ops = rec.ops[:0]
	rec.arena.Reset()
	rec.images = rec.images[:0]
}
