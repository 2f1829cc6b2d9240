package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ink"
)

// newTestAtlas builds an Atlas from the embedded Go font, matching the
// teacher's loadTestFont helper in face_test.go.
func newTestAtlas(t *testing.T, size float64) *Atlas {
	t.Helper()
	a, err := NewAtlas(goregular.TTF, size)
	if err != nil {
		t.Fatalf("NewAtlas: %v", err)
	}
	return a
}

func TestNewAtlasReportsPositiveMetrics(t *testing.T) {
	a := newTestAtlas(t, 16)
	if a.Ascent() <= 0 {
		t.Errorf("Ascent() = %v, want > 0", a.Ascent())
	}
	if a.LineHeight() <= 0 {
		t.Errorf("LineHeight() = %v, want > 0", a.LineHeight())
	}
	if a.Width() != initialAtlasWidth || a.Height() != initialAtlasHeight {
		t.Errorf("initial size = %dx%d, want %dx%d", a.Width(), a.Height(), initialAtlasWidth, initialAtlasHeight)
	}
}

func TestAtlasRasterizeCachesAndMarksDirty(t *testing.T) {
	a := newTestAtlas(t, 16)
	a.ClearDirty()

	m1 := a.glyph('A')
	if !a.Dirty() {
		t.Fatal("rasterizing a new glyph should mark the atlas dirty")
	}
	if m1.Advance <= 0 {
		t.Errorf("Advance for 'A' = %v, want > 0", m1.Advance)
	}

	a.ClearDirty()
	m2 := a.glyph('A')
	if a.Dirty() {
		t.Fatal("re-requesting a cached glyph should not mark the atlas dirty again")
	}
	if m1 != m2 {
		t.Fatalf("cached glyph metrics changed between calls: %+v vs %+v", m1, m2)
	}
}

func TestAtlasMeasureTextSumsAdvances(t *testing.T) {
	a := newTestAtlas(t, 16)
	single := a.glyph('i').Advance
	if got := a.MeasureText("iii"); got <= single {
		t.Errorf("MeasureText(%q) = %v, want more than a single glyph advance %v", "iii", got, single)
	}
}

func TestAtlasGrowRecomputesUVsWithoutMovingPixels(t *testing.T) {
	a := newTestAtlas(t, 16)
	m := a.glyph('W')
	beforeX, beforeY := m.atlasX, m.atlasY
	widthBefore, heightBefore := a.width, a.height

	a.grow()

	// The initial atlas is wider than tall (512x256), so grow (spec §4.7:
	// "doubling the smaller dimension") only doubles height here.
	if a.width != widthBefore {
		t.Fatalf("grow changed width from %d to %d, want unchanged (smaller dimension is height)", widthBefore, a.width)
	}
	if a.height != heightBefore*2 {
		t.Fatalf("grow height = %d, want %d", a.height, heightBefore*2)
	}

	after := a.glyphs['W']
	if after.atlasX != beforeX || after.atlasY != beforeY {
		t.Fatalf("grow moved a glyph's packed pixels: before (%d,%d) after (%d,%d)", beforeX, beforeY, after.atlasX, after.atlasY)
	}
	if got := float32(after.atlasX) / float32(a.width); got != after.U0 {
		t.Fatalf("U0 = %v, want %v", after.U0, got)
	}
	if after.V1 == m.V1 {
		t.Fatal("grow should rescale V1 against the doubled height, but V1 is unchanged")
	}
	if got := float32(after.atlasY+after.h) / float32(a.height); got != after.V1 {
		t.Fatalf("V1 = %v, want %v", after.V1, got)
	}
	if got := float32(after.atlasY) / float32(a.height); got != after.V0 {
		t.Fatalf("V0 = %v, want %v", after.V0, got)
	}
}

func TestAtlasDrawTextCPUBlendsCoverageIntoBuffer(t *testing.T) {
	a := newTestAtlas(t, 24)
	const w, h, stride = 64, 32, 64 * 4
	buf := make([]byte, stride*h)

	a.DrawTextCPU(buf, stride, h, 2, 24, "I", ink.RGB(200, 10, 10), ink.RGBA8888)

	opaque := false
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0 {
			opaque = true
			break
		}
	}
	if !opaque {
		t.Fatal("DrawTextCPU left every alpha byte at zero; expected glyph coverage to blend in")
	}
}

func TestAtlasDrawTextCPUSkipsRowsOutsideBuffer(t *testing.T) {
	a := newTestAtlas(t, 16)
	const w, h, stride = 8, 8, 8 * 4
	buf := make([]byte, stride*h)

	// A baseline far below the buffer must not panic or corrupt memory.
	a.DrawTextCPU(buf, stride, h, 0, 1000, "A", ink.RGB(255, 255, 255), ink.RGBA8888)
}

func TestBlendGlyphPixelFullCoverageOverwritesAndPartialBlends(t *testing.T) {
	buf := make([]byte, 4)
	blendGlyphPixel(buf, 0, ink.RGBA8888, ink.Color{R: 10, G: 20, B: 30, A: 255}, 255)
	if buf[0] != 10 || buf[1] != 20 || buf[2] != 30 || buf[3] != 255 {
		t.Fatalf("full coverage result = %v, want [10 20 30 255]", buf)
	}

	buf2 := make([]byte, 4)
	blendGlyphPixel(buf2, 0, ink.BGRA8888, ink.Color{R: 255, G: 0, B: 0, A: 255}, 128)
	if buf2[2] == 0 {
		t.Fatalf("BGRA8888 blend did not write the red channel to the B-ordered slot: %v", buf2)
	}
	if buf2[3] == 0 {
		t.Fatal("partial coverage should still raise alpha above zero")
	}
}
