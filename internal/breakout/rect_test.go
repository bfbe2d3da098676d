package breakout

import "testing"

func TestRectOverlap(t *testing.T) {
	a := Rect{Left: 0, Right: 2, Bottom: 0, Top: 1}
	tests := []struct {
		name       string
		b          Rect
		intersects bool
		touches    bool
	}{
		{"apart", Rect{Left: 3, Right: 4, Bottom: 0, Top: 1}, false, false},
		{"shared vertical edge", Rect{Left: 2, Right: 3, Bottom: 0, Top: 1}, false, true},
		{"shared horizontal edge", Rect{Left: 0, Right: 2, Bottom: 1, Top: 2}, false, true},
		{"shared corner", Rect{Left: 2, Right: 3, Bottom: 1, Top: 2}, false, true},
		{"overlapping", Rect{Left: 1, Right: 3, Bottom: 0.5, Top: 2}, true, true},
		{"contained", Rect{Left: 0.5, Right: 1, Bottom: 0.25, Top: 0.75}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.intersects {
				t.Fatalf("Intersects = %v, want %v", got, tt.intersects)
			}
			if got := a.Touches(tt.b); got != tt.touches {
				t.Fatalf("Touches = %v, want %v", got, tt.touches)
			}
		})
	}
}

func TestRectOverlapDepth(t *testing.T) {
	a := Rect{Left: 0, Right: 2, Bottom: 0, Top: 1}
	b := Rect{Left: 1.5, Right: 4, Bottom: 0.75, Top: 3}
	x, y := a.Overlap(b)
	if x != 0.5 || y != 0.25 {
		t.Fatalf("Overlap = (%v, %v), want (0.5, 0.25)", x, y)
	}
}

func TestExtentsAt(t *testing.T) {
	e := ExtentsOf(3.5, 1)
	r := e.At(Vector{X: 1, Y: -4})
	want := Rect{Left: -0.75, Right: 2.75, Bottom: -4.5, Top: -3.5}
	if r != want {
		t.Fatalf("At = %+v, want %+v", r, want)
	}
	if e.Width() != 3.5 || e.Height() != 1 {
		t.Fatalf("size = %vx%v, want 3.5x1", e.Width(), e.Height())
	}
}

func TestBoundsForAspect(t *testing.T) {
	b := BoundsForAspect(2)
	want := Bounds{Bottom: -5, Upper: 5, Left: -10, Right: 10}
	if b != want {
		t.Fatalf("BoundsForAspect(2) = %+v, want %+v", b, want)
	}
}
