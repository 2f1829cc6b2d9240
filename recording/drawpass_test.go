package recording

import "testing"

func TestCreateBatchesByOpTypeThenColorWithinAClipGroup(t *testing.T) {
	rec := NewRecorder()
	red := Color{R: 255, A: 255}
	blue := Color{B: 255, A: 255}

	rec.FillRect(Rect{W: 1, H: 1}, blue) // 0
	rec.FillRect(Rect{W: 1, H: 1}, red)  // 1
	rec.DrawLine(Point{}, Point{X: 1}, red, 1) // 2
	rec.FillRect(Rect{W: 1, H: 1}, red)  // 3

	rn := rec.Finish()
	pass := Create(rn)
	ops := rn.Ops()

	// All FillRect ops (type rank 0) must precede the Line op (type rank 2)
	// within the single implicit clip group.
	lastFillPos, linePos := -1, -1
	for i, idx := range pass.SortedIndices {
		switch ops[idx].Type {
		case OpFillRect:
			lastFillPos = i
		case OpLine:
			linePos = i
		}
	}
	if linePos < lastFillPos {
		t.Fatalf("Line op (pos %d) sorted before a FillRect op (pos %d)", linePos, lastFillPos)
	}

	// The two red FillRect ops (indices 1 and 3) share type and color, so
	// they must sort next to each other, in insertion order.
	var redFills []int
	for i, idx := range pass.SortedIndices {
		if ops[idx].Type == OpFillRect && ops[idx].Color == red {
			redFills = append(redFills, i)
		}
	}
	if len(redFills) != 2 || redFills[1] != redFills[0]+1 || pass.SortedIndices[redFills[0]] != 1 {
		t.Fatalf("red FillRect ops at positions %v of %v, want indices 1 then 3 adjacent", redFills, pass.SortedIndices)
	}
}

func TestCreateIsDeterministicForIdenticalRecordings(t *testing.T) {
	build := func() *Recording {
		rec := NewRecorder()
		rec.FillRect(Rect{W: 1, H: 1}, Color{R: 1})
		rec.FillRect(Rect{W: 2, H: 2}, Color{G: 1})
		rec.SetClip(Rect{W: 5, H: 5})
		rec.DrawLine(Point{}, Point{X: 1}, Color{B: 1}, 1)
		return rec.Finish()
	}

	a := Create(build())
	b := Create(build())
	if len(a.SortedIndices) != len(b.SortedIndices) {
		t.Fatalf("different lengths: %d vs %d", len(a.SortedIndices), len(b.SortedIndices))
	}
	for i := range a.SortedIndices {
		if a.SortedIndices[i] != b.SortedIndices[i] {
			t.Fatalf("index %d differs: %d vs %d", i, a.SortedIndices[i], b.SortedIndices[i])
		}
	}
}

func TestCreateOrdersSetClipAheadOfTheGroupItOpens(t *testing.T) {
	rec := NewRecorder()
	rec.FillRect(Rect{W: 1, H: 1}, Color{R: 1}) // group 0
	rec.SetClip(Rect{W: 5, H: 5})                // group 0 (opens group 1)
	rec.FillRect(Rect{W: 1, H: 1}, Color{G: 1})  // group 1

	rn := rec.Finish()
	pass := Create(rn)

	setClipPos := -1
	secondFillPos := -1
	for i, idx := range pass.SortedIndices {
		if rn.Ops()[idx].Type == OpSetClip {
			setClipPos = i
		}
	}
	for i, idx := range pass.SortedIndices {
		if i != setClipPos && rn.Ops()[idx].Type == OpFillRect && rn.Ops()[idx].Color == (Color{G: 1}) {
			secondFillPos = i
		}
	}
	if setClipPos >= secondFillPos {
		t.Fatalf("expected SetClip (pos %d) to precede the post-clip fill (pos %d)", setClipPos, secondFillPos)
	}
}

func TestCreateEmptyRecordingProducesEmptyPass(t *testing.T) {
	rn := NewRecorder().Finish()
	pass := Create(rn)
	if len(pass.SortedIndices) != 0 {
		t.Fatalf("expected an empty SortedIndices, got %d entries", len(pass.SortedIndices))
	}
}
