package ink

import "testing"

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		want     Rect
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}},
		{"disjoint", Rect{0, 0, 5, 5}, Rect{10, 10, 5, 5}, Rect{10, 10, 0, 0}},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 3}, Rect{2, 2, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Fatalf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{W: 0, H: 5}).Empty() {
		t.Fatal("zero-width rect should be empty")
	}
	if (Rect{W: 1, H: 1}).Empty() {
		t.Fatal("positive-area rect should not be empty")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(5, 5) {
		t.Fatal("expected (5,5) inside rect")
	}
	if r.Contains(10, 10) {
		t.Fatal("far edge should be exclusive")
	}
}

func TestColorPackedWordRoundTrips(t *testing.T) {
	c := RGBA(10, 20, 30, 40)
	pm := AllocPixmap(1, 1, RGBA8888)
	pm.Clear(c)
	if got := pm.At(0, 0); got != c {
		t.Fatalf("RGBA8888 round trip = %+v, want %+v", got, c)
	}

	pmB := AllocPixmap(1, 1, BGRA8888)
	pmB.Clear(c)
	if got := pmB.At(0, 0); got != c {
		t.Fatalf("BGRA8888 round trip = %+v, want %+v", got, c)
	}
	if pmB.Pixels()[0] != c.B || pmB.Pixels()[2] != c.R {
		t.Fatalf("BGRA8888 byte order not as expected: %v", pmB.Pixels()[:4])
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	if p.Length() != 5 {
		t.Fatalf("Length() = %v, want 5", p.Length())
	}
	sum := p.Add(Pt(1, 1))
	if sum != (Point{X: 4, Y: 5}) {
		t.Fatalf("Add = %+v", sum)
	}
	diff := p.Sub(Pt(1, 1))
	if diff != (Point{X: 2, Y: 3}) {
		t.Fatalf("Sub = %+v", diff)
	}
}

func TestPixelFormatString(t *testing.T) {
	if RGBA8888.String() != "RGBA8888" || BGRA8888.String() != "BGRA8888" {
		t.Fatal("unexpected PixelFormat.String() values")
	}
}
