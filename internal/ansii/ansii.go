package ansii

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"breakout/internal/breakout"
)

type ANSI string

const (
	reset       ANSI = "\033[0m"
	bold        ANSI = "\033[1m"
	red         ANSI = "\033[31m"
	green       ANSI = "\033[32m"
	blue        ANSI = "\033[34m"
	white       ANSI = "\033[37m"
	clearScreen ANSI = "\033[2J"
	home        ANSI = "\033[H"
	hideCursor  ANSI = "\033[?25l"
	showCursor  ANSI = "\033[?25h"
)

// Fallback terminal size when stdout is not a terminal.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Offset is a zero-based terminal cell.
type Offset struct {
	X int
	Y int
}

type style struct {
	Reset ANSI
	Bold  ANSI
}

type color struct {
	Red   ANSI
	Green ANSI
	Blue  ANSI
	White ANSI
}

type screen struct {
	ClearScreen ANSI
	Home        ANSI
	HideCursor  ANSI
	ShowCursor  ANSI
}

type ascii struct {
	Block string
}

var (
	Styles = style{Bold: bold, Reset: reset}
	Colors = color{Red: red, Green: green, Blue: blue, White: white}
	Screen = screen{ClearScreen: clearScreen, Home: home, HideCursor: hideCursor, ShowCursor: showCursor}
	Blocks = ascii{Block: "█"}
)

// GetTermSize reports the size of the terminal on stdout.
func GetTermSize() (width int, height int, err error) {
	fd := int(os.Stdout.Fd())
	width, height, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return width, height, nil
}

// TermSize is GetTermSize with the 80x24 fallback.
func TermSize() (width int, height int) {
	width, height, err := GetTermSize()
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PlaceCursor moves to a zero-based cell.
func (s screen) PlaceCursor(o Offset) ANSI {
	return ANSI(fmt.Sprintf("\033[%d;%dH", o.Y+1, o.X+1))
}

// KindColor is the foreground used for an instance kind.
func KindColor(k breakout.Kind) ANSI {
	switch k {
	case breakout.KindBlock:
		return Colors.Green
	case breakout.KindBall:
		return Colors.Red
	case breakout.KindPaddle:
		return Colors.Blue
	}
	return Colors.White
}

// Draws a filled box of dimensions `height` and `width` at `offset`.
// The `offset` is the top left cell of the box.
func DrawBox(builder *strings.Builder, offset Offset, height int, width int, style ANSI) {
	builder.WriteString(string(style))
	row := strings.Repeat(Blocks.Block, width)
	for hIdx := range height {
		builder.WriteString(string(Screen.PlaceCursor(Offset{X: offset.X, Y: offset.Y + hIdx})))
		builder.WriteString(row)
	}
	builder.WriteString(string(Styles.Reset))
}

// DrawFrame renders a snapshot into a cols x rows terminal area. The last
// row holds the status line.
func DrawFrame(builder *strings.Builder, snap breakout.Snapshot, bounds breakout.Bounds, cols, rows int) {
	builder.WriteString(string(Screen.ClearScreen))
	builder.WriteString(string(Screen.Home))
	if cols <= 0 || rows <= 1 {
		return
	}

	vp := Viewport{Bounds: bounds, Cols: cols, Rows: rows - 1}
	for _, in := range snap.Instances {
		if !in.Visible {
			continue
		}
		cells, ok := vp.Cells(in)
		if !ok {
			continue
		}
		DrawBox(builder, Offset{X: cells.X0, Y: cells.Y0}, cells.Height(), cells.Width(), KindColor(in.Kind))
	}

	status := StatusLine(snap)
	if len(status) > cols {
		status = status[:cols]
	}
	builder.WriteString(string(Screen.PlaceCursor(Offset{X: 0, Y: rows - 1})))
	if snap.Phase.Terminal() || snap.Paused {
		builder.WriteString(string(Styles.Bold))
	}
	builder.WriteString(status)
	builder.WriteString(string(Styles.Reset))
}

// StatusLine summarises a snapshot on one line.
func StatusLine(snap breakout.Snapshot) string {
	s := fmt.Sprintf("strikes %d/%d  blocks %d", snap.Strikes, snap.MaxStrikes, snap.BlocksLeft)
	switch {
	case snap.Message != "":
		s += "  " + snap.Message + "  r to restart"
	case snap.Paused:
		s += "  PAUSED"
	}
	return s
}
