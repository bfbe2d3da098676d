package renderer

import "github.com/gdamore/tcell/v2"

type UiAction int

const (
	Unknown UiAction = iota
	Quit
	Left
	Right
	Pause
	Reset
)

func (a UiAction) String() string {
	switch a {
	case Quit:
		return "quit"
	case Left:
		return "left"
	case Right:
		return "right"
	case Pause:
		return "pause"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

func ProcessKey(ev *tcell.EventKey) UiAction {
	return KeyAction(ev.Key(), ev.Rune())
}

// KeyAction maps a key, or a rune when key is tcell.KeyRune, to an action.
// Letters are case-insensitive.
func KeyAction(key tcell.Key, ch rune) UiAction {
	switch key {
	case tcell.KeyLeft:
		return Left
	case tcell.KeyRight:
		return Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
	default:
		return Unknown
	}

	// Convert to lower case
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	switch ch {
	case 'a':
		return Left
	case 'd':
		return Right
	case ' ':
		return Pause
	case 'r':
		return Reset
	case 'q':
		return Quit
	}
	return Unknown
}
