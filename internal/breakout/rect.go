package breakout

type Rect struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Overlap returns the intersection depth on each axis. Either value is <= 0
// when the boxes are apart on that axis.
func (r Rect) Overlap(o Rect) (x, y float64) {
	x = min(r.Right, o.Right) - max(r.Left, o.Left)
	y = min(r.Top, o.Top) - max(r.Bottom, o.Bottom)
	return x, y
}

// Intersects is the strict test: touching edges do not count.
func (r Rect) Intersects(o Rect) bool {
	x, y := r.Overlap(o)
	return x > 0 && y > 0
}

// Touches is the inclusive test, edges in contact count as a hit.
func (r Rect) Touches(o Rect) bool {
	return r.Right >= o.Left && r.Left <= o.Right && r.Bottom <= o.Top && r.Top >= o.Bottom
}
