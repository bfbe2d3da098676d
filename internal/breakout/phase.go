package breakout

type Phase int

const (
	Playing Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Message is the status line shown to the player for the phase.
func (p Phase) Message() string {
	switch p {
	case Won:
		return "You Win!"
	case Lost:
		return "You Lose!"
	default:
		return ""
	}
}

func (p Phase) Terminal() bool { return p == Won || p == Lost }

type Events uint16

const (
	EventPaddle Events = 1 << iota
	EventWall
	EventBlock
	EventStrike
	EventWin
	EventLose
	EventPause
	EventResume
)

func (e Events) Has(f Events) bool { return e&f != 0 }

var eventNames = []struct {
	e    Events
	name string
}{
	{EventPaddle, "paddle"},
	{EventWall, "wall"},
	{EventBlock, "block"},
	{EventStrike, "strike"},
	{EventWin, "win"},
	{EventLose, "lose"},
	{EventPause, "pause"},
	{EventResume, "resume"},
}

func (e Events) String() string {
	if e == 0 {
		return "none"
	}
	s := ""
	for _, n := range eventNames {
		if e.Has(n.e) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}
