package recording

import "testing"

func TestArenaStoreStringRoundTrips(t *testing.T) {
	a := NewArena()
	off := a.StoreString("hello")
	if got := a.GetString(off, 5); got != "hello" {
		t.Fatalf("GetString = %q, want %q", got, "hello")
	}
}

func TestArenaStorePointsRoundTrips(t *testing.T) {
	a := NewArena()
	pts := []Point{{X: 1, Y: 2}, {X: 3.5, Y: -4.5}}
	off := a.StorePoints(pts)
	got := a.GetPoints(off, uint32(len(pts)))
	for i := range pts {
		if got[i] != pts[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got[i], pts[i])
		}
	}
}

func TestArenaMultipleStoresAreIndependentlyAddressable(t *testing.T) {
	a := NewArena()
	off1 := a.StoreString("abc")
	off2 := a.StoreString("defgh")
	if got := a.GetString(off1, 3); got != "abc" {
		t.Fatalf("first string = %q", got)
	}
	if got := a.GetString(off2, 5); got != "defgh" {
		t.Fatalf("second string = %q", got)
	}
}

func TestArenaResetTruncatesWithoutShrinkingCapacity(t *testing.T) {
	a := NewArena()
	a.StoreString("some data that occupies space")
	lenBefore := a.Len()
	if lenBefore == 0 {
		t.Fatal("expected non-zero length before reset")
	}
	capBefore := cap(a.data)
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", a.Len())
	}
	if cap(a.data) != capBefore {
		t.Fatalf("cap after Reset = %d, want %d", cap(a.data), capBefore)
	}
}
