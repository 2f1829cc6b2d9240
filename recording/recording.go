package recording

// Recording is the immutable, self-contained result of a [Recorder]
// finishing a frame: a sequence of compact [DrawOp] values, the [Arena]
// backing their variable-length payloads, and the table of images they
// reference by index (spec §3).
//
// A Recording is safe to replay any number of times, from any number of
// backends, including concurrently, as long as no replay mutates the
// images it references (spec §5 — images are immutable by contract).
type Recording struct {
	ops    []DrawOp
	arena  *Arena
	images []*Image
}

// Ops returns the recorded ops in original (insertion) order.
func (r *Recording) Ops() []DrawOp { return r.ops }

// Arena returns the byte arena backing polyline/text payloads.
func (r *Recording) Arena() *Arena { return r.arena }

// Image resolves an image_index against the recording's image table. It
// panics on an out-of-range index, since every DrawImage op recorded by
// [Recorder.DrawImage] is constructed with a valid index — an invalid one
// here means the Recording itself is malformed (spec §3 invariant).
func (r *Recording) Image(index uint32) *Image {
	return r.images[index]
}

// Accept dispatches every op to visitor in insertion (original) order.
func (r *Recording) Accept(visitor DrawOpVisitor) {
	for i := range r.ops {
		r.dispatchOp(&r.ops[i], visitor)
	}
}

// Dispatch dispatches ops to visitor in the order given by pass
// (spec §4.2 — this is the choke point every backend uses to execute a
// sorted [DrawPass]).
func (r *Recording) Dispatch(visitor DrawOpVisitor, pass *DrawPass) {
	for _, idx := range pass.SortedIndices {
		r.dispatchOp(&r.ops[idx], visitor)
	}
}

func (r *Recording) dispatchOp(op *DrawOp, visitor DrawOpVisitor) {
	switch op.Type {
	case OpFillRect:
		visitor.VisitFillRect(op.Rect, op.Color)
	case OpStrokeRect:
		visitor.VisitStrokeRect(op.Rect, op.Color, op.Width)
	case OpLine:
		visitor.VisitLine(op.P1, op.P2, op.Color, op.Width)
	case OpPolyline:
		pts := r.arena.GetPoints(op.ArenaOffset, op.Count)
		visitor.VisitPolyline(pts, op.Color, op.Width)
	case OpText:
		s := r.arena.GetString(op.ArenaOffset, op.Count)
		visitor.VisitText(op.Pos, s, op.Color)
	case OpDrawImage:
		visitor.VisitDrawImage(r.images[op.ImageIndex], op.Pos.X, op.Pos.Y)
	case OpSetClip:
		visitor.VisitSetClip(op.Rect)
	case OpClearClip:
		visitor.VisitClearClip()
	}
}
