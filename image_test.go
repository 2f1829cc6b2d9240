package ink

import "testing"

func TestFromPixmapIsolatesFutureMutation(t *testing.T) {
	pm := AllocPixmap(2, 2, RGBA8888)
	pm.Clear(RGB(1, 1, 1))
	img := FromPixmap(pm)

	pm.Clear(RGB(255, 255, 255))

	if got := img.Pixmap().At(0, 0); got != RGB(1, 1, 1) {
		t.Fatalf("snapshot observed the source mutation: %+v", got)
	}
}

func TestWrapPixmapImageAliasesSource(t *testing.T) {
	pm := AllocPixmap(2, 2, RGBA8888)
	pm.Clear(RGB(1, 1, 1))
	img := WrapPixmapImage(pm)

	pm.Clear(RGB(2, 2, 2))
	if got := img.Pixmap().At(0, 0); got != RGB(2, 2, 2) {
		t.Fatal("WrapPixmapImage should alias the source pixmap, not copy it")
	}
}

func TestImageUniqueIDsAreDistinct(t *testing.T) {
	pm := AllocPixmap(1, 1, RGBA8888)
	a := FromPixmap(pm)
	b := FromPixmap(pm)
	if a.UniqueID() == b.UniqueID() {
		t.Fatal("expected distinct UniqueIDs for separately created images")
	}
}

func TestFromGPUTextureReleaseTokenRunsOnce(t *testing.T) {
	calls := 0
	token := NewReleaseToken(func() { calls++ })
	img := FromGPUTexture(42, 4, 4, RGBA8888, token)

	if !img.IsGPU() || img.GPUHandle() != 42 {
		t.Fatalf("expected a GPU-variant image with handle 42, got IsGPU=%v handle=%d", img.IsGPU(), img.GPUHandle())
	}

	img.Release()
	img.Release()
	if calls != 1 {
		t.Fatalf("release token ran %d times, want 1", calls)
	}
}

func TestImageValid(t *testing.T) {
	pm := AllocPixmap(1, 1, RGBA8888)
	img := FromPixmap(pm)
	if !img.Valid() {
		t.Fatal("expected a freshly created CPU image to be valid")
	}

	gpuImg := FromGPUTexture(0, 1, 1, RGBA8888, nil)
	if gpuImg.Valid() {
		t.Fatal("expected a zero GPU handle to be invalid")
	}
}
