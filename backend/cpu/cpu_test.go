package cpu

import (
	"testing"

	"github.com/gogpu/ink"
	"github.com/gogpu/ink/recording"
)

func newTestBackend(w, h int) (*Backend, *ink.Pixmap) {
	pm := ink.AllocPixmap(w, h, ink.RGBA8888)
	return New(pm), pm
}

func TestBeginFrameClears(t *testing.T) {
	b, pm := newTestBackend(4, 4)
	b.BeginFrame(ink.RGB(10, 20, 30))

	if got := pm.At(0, 0); got != ink.RGB(10, 20, 30) {
		t.Fatalf("pixel = %+v, want RGB(10,20,30)", got)
	}
}

func TestFillRectOpaque(t *testing.T) {
	b, pm := newTestBackend(8, 8)
	b.BeginFrame(ink.Black)

	rec := recording.NewRecorder()
	rec.FillRect(ink.Rect{X: 1, Y: 1, W: 2, H: 2}, ink.RGB(255, 0, 0))
	rn := rec.Finish()
	pass := recording.Create(rn)

	b.Execute(rn, pass)

	if got := pm.At(1, 1); got != ink.RGB(255, 0, 0) {
		t.Fatalf("pixel (1,1) = %+v, want red", got)
	}
	if got := pm.At(0, 0); got != ink.Black {
		t.Fatalf("pixel (0,0) = %+v, want black (unaffected)", got)
	}
}

func TestFillRectClippedToTarget(t *testing.T) {
	b, pm := newTestBackend(4, 4)
	b.BeginFrame(ink.Black)

	rec := recording.NewRecorder()
	rec.FillRect(ink.Rect{X: -2, Y: -2, W: 6, H: 6}, ink.White)
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	if got := pm.At(3, 3); got != ink.White {
		t.Fatalf("corner pixel = %+v, want white", got)
	}
}

func TestSetClipRestrictsFill(t *testing.T) {
	b, pm := newTestBackend(6, 6)
	b.BeginFrame(ink.Black)

	rec := recording.NewRecorder()
	rec.SetClip(ink.Rect{X: 0, Y: 0, W: 3, H: 6})
	rec.FillRect(ink.Rect{X: 0, Y: 0, W: 6, H: 6}, ink.White)
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	if got := pm.At(0, 0); got != ink.White {
		t.Fatalf("inside clip = %+v, want white", got)
	}
	if got := pm.At(4, 0); got != ink.Black {
		t.Fatalf("outside clip = %+v, want untouched black", got)
	}
}

func TestAlphaIdentity(t *testing.T) {
	b, pm := newTestBackend(2, 2)
	b.BeginFrame(ink.RGB(50, 60, 70))

	rec := recording.NewRecorder()
	rec.FillRect(ink.Rect{X: 0, Y: 0, W: 2, H: 2}, ink.RGBA(200, 0, 0, 0))
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	if got := pm.At(0, 0); got != ink.RGB(50, 60, 70) {
		t.Fatalf("src.a==0 changed destination: got %+v", got)
	}
}

func TestFillRectHalfAlphaBlendsToMidGray(t *testing.T) {
	b, pm := newTestBackend(2, 2)
	b.BeginFrame(ink.Black)

	rec := recording.NewRecorder()
	rec.FillRect(ink.Rect{X: 0, Y: 0, W: 2, H: 2}, ink.RGBA(255, 255, 255, 128))
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	got := pm.At(0, 0)
	for _, ch := range [...]uint8{got.R, got.G, got.B} {
		if ch < 127 || ch > 129 {
			t.Fatalf("half-alpha white over black = %+v, want each channel 128±1", got)
		}
	}
}

func TestPolylineDrawsEverySegment(t *testing.T) {
	b, pm := newTestBackend(8, 8)
	b.BeginFrame(ink.Black)

	pts := []ink.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	rec := recording.NewRecorder()
	rec.DrawPolyline(pts, ink.White, 1)
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	for _, p := range pts {
		if got := pm.At(int(p.X), int(p.Y)); got != ink.White {
			t.Fatalf("endpoint (%v,%v) = %+v, want white", p.X, p.Y, got)
		}
	}
	// A midpoint on each of the three segments should also be drawn.
	mids := []ink.Point{{X: 2, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 4}}
	for _, p := range mids {
		if got := pm.At(int(p.X), int(p.Y)); got != ink.White {
			t.Fatalf("segment midpoint (%v,%v) = %+v, want white", p.X, p.Y, got)
		}
	}
}

func TestDrawImageCopiesOpaquePixelsAndConvertsFormat(t *testing.T) {
	b, pm := newTestBackend(4, 4)
	b.BeginFrame(ink.Black)

	src := ink.AllocPixmap(2, 2, ink.BGRA8888)
	src.Clear(ink.RGBA(10, 20, 30, 255))
	img := ink.FromPixmap(src)

	rec := recording.NewRecorder()
	rec.DrawImage(img, 1, 1)
	r := rec.Finish()
	b.Execute(r, recording.Create(r))

	if got := pm.At(1, 1); got != ink.RGB(10, 20, 30) {
		t.Fatalf("copied pixel = %+v, want RGB(10,20,30)", got)
	}
}

func TestMakeSnapshotIsolatesFutureMutation(t *testing.T) {
	b, _ := newTestBackend(2, 2)
	b.BeginFrame(ink.RGB(255, 0, 0))

	snap := b.MakeSnapshot()
	b.BeginFrame(ink.RGB(0, 255, 0))

	if got := snap.Pixmap().At(0, 0); got != ink.RGB(255, 0, 0) {
		t.Fatalf("snapshot mutated after new BeginFrame: got %+v", got)
	}
}
