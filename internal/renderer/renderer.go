// Package renderer draws simulation snapshots on a tcell screen.
package renderer

import (
	"github.com/gdamore/tcell/v2"

	"breakout/internal/ansii"
	"breakout/internal/breakout"
)

const helpText = "←/→ move  space pause  r reset  q quit"

var (
	blockStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(51, 204, 51))
	ballStyle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 51, 51))
	paddleStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(51, 102, 255))
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = statusStyle.Bold(true).Reverse(true)
)

type Renderer struct {
	screen tcell.Screen
	bounds breakout.Bounds
}

func New(screen tcell.Screen, bounds breakout.Bounds) *Renderer {
	return &Renderer{screen: screen, bounds: bounds}
}

func styleFor(k breakout.Kind) tcell.Style {
	switch k {
	case breakout.KindBall:
		return ballStyle
	case breakout.KindPaddle:
		return paddleStyle
	default:
		return blockStyle
	}
}

// Render draws the playfield in all rows but the last, which holds the
// status line, then shows the screen.
func (r *Renderer) Render(snap breakout.Snapshot) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 1 {
		r.screen.Show()
		return
	}

	vp := ansii.Viewport{Bounds: r.bounds, Cols: w, Rows: h - 1}
	for _, in := range snap.Instances {
		if !in.Visible {
			continue
		}
		cells, ok := vp.Cells(in)
		if !ok {
			continue
		}
		style := styleFor(in.Kind)
		for y := cells.Y0; y <= cells.Y1; y++ {
			for x := cells.X0; x <= cells.X1; x++ {
				r.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	r.drawStatus(snap, w, h-1)
	r.screen.Show()
}

func (r *Renderer) drawStatus(snap breakout.Snapshot, w, y int) {
	style := statusStyle
	if snap.Paused || snap.Phase.Terminal() {
		style = alertStyle
	}
	x := drawText(r.screen, 0, y, w, ansii.StatusLine(snap), style)
	drawText(r.screen, x+2, y, w, helpText, statusStyle)
}

// drawText writes s from column x and returns the column after it.
func drawText(screen tcell.Screen, x, y, w int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= w {
			break
		}
		screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
