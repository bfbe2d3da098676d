package ansii

import (
	"math"

	"breakout/internal/breakout"
)

// Viewport maps world coordinates onto a grid of terminal cells, y up in
// the world and down on screen.
type Viewport struct {
	Bounds breakout.Bounds
	Cols   int
	Rows   int
}

// CellRect is an inclusive range of cells.
type CellRect struct {
	X0, Y0, X1, Y1 int
}

func (c CellRect) Width() int  { return c.X1 - c.X0 + 1 }
func (c CellRect) Height() int { return c.Y1 - c.Y0 + 1 }

func (v Viewport) col(x float64) float64 {
	return (x - v.Bounds.Left) / v.Bounds.Width() * float64(v.Cols)
}

func (v Viewport) row(y float64) float64 {
	return (v.Bounds.Upper - y) / v.Bounds.Height() * float64(v.Rows)
}

// Cells returns the cells covered by an instance, clipped to the viewport.
// Every on-screen instance covers at least one cell.
func (v Viewport) Cells(in breakout.Instance) (CellRect, bool) {
	if v.Cols <= 0 || v.Rows <= 0 {
		return CellRect{}, false
	}
	hx, hy := in.ScaleX/2, in.ScaleY/2
	c := CellRect{
		X0: int(math.Floor(v.col(in.X - hx))),
		X1: int(math.Ceil(v.col(in.X+hx))) - 1,
		Y0: int(math.Floor(v.row(in.Y + hy))),
		Y1: int(math.Ceil(v.row(in.Y-hy))) - 1,
	}
	c.X1 = max(c.X1, c.X0)
	c.Y1 = max(c.Y1, c.Y0)
	if c.X1 < 0 || c.Y1 < 0 || c.X0 >= v.Cols || c.Y0 >= v.Rows {
		return CellRect{}, false
	}
	c.X0, c.Y0 = max(c.X0, 0), max(c.Y0, 0)
	c.X1, c.Y1 = min(c.X1, v.Cols-1), min(c.Y1, v.Rows-1)
	return c, true
}
