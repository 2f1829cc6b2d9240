package recording

// OpType identifies the kind of a recorded DrawOp. Order matters: the
// DrawPass sort key embeds OpType directly, and spec §4.3/testable
// property 3 requires ops within a clip group to batch "first all
// FillRect, then StrokeRect, etc., per the type enum order" — so this
// order is part of the contract, not just a convenience.
type OpType uint8

const (
	OpFillRect OpType = iota
	OpStrokeRect
	OpLine
	OpPolyline
	OpText
	OpDrawImage
	OpSetClip
	OpClearClip
)

// String returns the op type's name, used in debug dumps.
func (t OpType) String() string {
	switch t {
	case OpFillRect:
		return "FillRect"
	case OpStrokeRect:
		return "StrokeRect"
	case OpLine:
		return "Line"
	case OpPolyline:
		return "Polyline"
	case OpText:
		return "Text"
	case OpDrawImage:
		return "DrawImage"
	case OpSetClip:
		return "SetClip"
	case OpClearClip:
		return "ClearClip"
	default:
		return "Unknown"
	}
}

// DrawOp is a single recorded drawing command.
//
// Per spec §9's Design Notes, this is a closed tagged variant dispatched by
// an exhaustive switch (see [Recording.Accept] / [Recording.Dispatch]),
// deliberately not an interface-per-op-type: the set of ops never grows at
// runtime and every backend visits every op on every frame, so a flat
// struct keeps the hot loop allocation-free and branch-predictable. This is
// the one place this module departs from the teacher's own
// recording/command.go, which uses a Command interface — that shape is
// right for a pluggable multi-format export registry, but wrong for a
// per-frame rasterization hot path (see DESIGN.md).
//
// Variant payloads, by Type:
//
//	FillRect, StrokeRect, SetClip: Rect, Color (Width for StrokeRect)
//	Line:                          P1, P2, Color, Width
//	Polyline:                      ArenaOffset, Count (points), Color, Width
//	Text:                          Pos (baseline), ArenaOffset, Count (bytes), Color
//	DrawImage:                     Pos (x,y), ImageIndex
//	ClearClip:                     no payload
type DrawOp struct {
	Type  OpType
	Color Color
	Width float32

	Rect Rect // FillRect, StrokeRect, SetClip

	P1, P2 Point // Line

	ArenaOffset uint32 // Polyline point data / Text byte data
	Count       uint32 // Polyline point count / Text byte length

	Pos Point // Text baseline / DrawImage (x, y)

	ImageIndex uint32 // DrawImage
}

// DrawOpVisitor is the single dispatch point every backend implements to
// execute a Recording (spec §4.2: "polymorphism is by visitor method, not
// by op subtype").
type DrawOpVisitor interface {
	VisitFillRect(r Rect, c Color)
	VisitStrokeRect(r Rect, c Color, width float32)
	VisitLine(p1, p2 Point, c Color, width float32)
	VisitPolyline(pts []Point, c Color, width float32)
	VisitText(pos Point, s string, c Color)
	VisitDrawImage(img *Image, x, y float32)
	VisitSetClip(r Rect)
	VisitClearClip()
}
