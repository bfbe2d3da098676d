// Package canvas rasterises snapshots offscreen with gogpu/gg. Every
// instance is a unit square scaled and translated into place, and an
// orthographic transform maps the world bounds onto the image.
package canvas

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/gg"

	"breakout/internal/breakout"
)

var ErrSize = errors.New("canvas size must be positive")

// Backgrounds are the selectable clear colours.
var Backgrounds = []gg.RGBA{
	gg.RGB(1, 0.8, 0.8),
	gg.RGB(0.7, 0.9, 0.7),
	gg.RGB(0.8, 0.8, 1),
	gg.RGB(0.8, 0.8, 0.8),
	gg.RGB(0, 0, 0),
}

const DefaultBackground = 4

var (
	BlockColor  = gg.RGB(0.2, 0.8, 0.2)
	BallColor   = gg.RGB(1, 0.2, 0.2)
	PaddleColor = gg.RGB(0.2, 0.4, 1)
)

func colorOf(k breakout.Kind) gg.RGBA {
	switch k {
	case breakout.KindBall:
		return BallColor
	case breakout.KindPaddle:
		return PaddleColor
	default:
		return BlockColor
	}
}

type Canvas struct {
	width      int
	height     int
	bounds     breakout.Bounds
	background gg.RGBA
}

// New returns a canvas of the given pixel size. An out of range background
// index falls back to DefaultBackground.
func New(width, height int, bounds breakout.Bounds, background int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	if background < 0 || background >= len(Backgrounds) {
		background = DefaultBackground
	}
	return &Canvas{
		width:      width,
		height:     height,
		bounds:     bounds,
		background: Backgrounds[background],
	}, nil
}

// Render draws a snapshot into a new context. The caller closes it.
func (c *Canvas) Render(snap breakout.Snapshot) (*gg.Context, error) {
	dc := gg.NewContext(c.width, c.height)
	dc.ClearWithColor(c.background)

	sx := float64(c.width) / c.bounds.Width()
	sy := float64(c.height) / c.bounds.Height()
	dc.Translate(-c.bounds.Left*sx, c.bounds.Upper*sy)
	dc.Scale(sx, -sy)

	for _, in := range snap.Instances {
		if !in.Visible {
			continue
		}
		col := colorOf(in.Kind)
		dc.SetRGB(col.R, col.G, col.B)

		dc.Push()
		dc.Translate(in.X, in.Y)
		dc.Scale(in.ScaleX, in.ScaleY)
		dc.DrawRectangle(-0.5, -0.5, 1, 1)
		err := dc.Fill()
		dc.Pop()
		if err != nil {
			dc.Close()
			return nil, fmt.Errorf("fill %s: %w", in.Kind, err)
		}
	}
	return dc, nil
}

// WritePNG renders a snapshot and encodes it as PNG.
func (c *Canvas) WritePNG(w io.Writer, snap breakout.Snapshot) error {
	dc, err := c.Render(snap)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (c *Canvas) SavePNG(path string, snap breakout.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WritePNG(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
