package breakout

type Kind int

const (
	KindBlock Kind = iota
	KindBall
	KindPaddle
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindBall:
		return "ball"
	case KindPaddle:
		return "paddle"
	default:
		return "unknown"
	}
}

// Instance is one drawable rectangle: a centre, a size and a visibility flag.
type Instance struct {
	Kind    Kind
	X       float64
	Y       float64
	ScaleX  float64
	ScaleY  float64
	Visible bool
}

// Snapshot is a read-only copy of a tick's result for presenters.
// Instances are the blocks in grid order, then the ball, then the paddle.
type Snapshot struct {
	Tick       uint64
	Session    string
	Phase      Phase
	Paused     bool
	Strikes    int
	MaxStrikes int
	Message    string
	BlocksLeft int
	Instances  []Instance
}

func (s *Simulation) Snapshot() Snapshot {
	st := &s.state
	snap := Snapshot{
		Tick:       s.tick,
		Session:    s.session,
		Phase:      st.Phase,
		Paused:     st.Paused,
		Strikes:    st.Strikes,
		MaxStrikes: s.settings.MaxStrikes,
		Message:    st.Phase.Message(),
		BlocksLeft: st.VisibleBlocks(),
		Instances:  make([]Instance, 0, len(st.Blocks)+2),
	}
	for _, b := range st.Blocks {
		snap.Instances = append(snap.Instances, instanceOf(KindBlock, b.Pos, b.Shape, b.Visible))
	}
	snap.Instances = append(snap.Instances,
		instanceOf(KindBall, st.Ball.Pos, st.Ball.Shape, true),
		instanceOf(KindPaddle, st.Paddle.Pos, st.Paddle.Shape, true),
	)
	return snap
}

func instanceOf(k Kind, pos Vector, shape Extents, visible bool) Instance {
	return Instance{
		Kind:    k,
		X:       pos.X,
		Y:       pos.Y,
		ScaleX:  shape.Width(),
		ScaleY:  shape.Height(),
		Visible: visible,
	}
}

// Ball returns the ball instance, or false if the snapshot has none.
func (s Snapshot) Ball() (Instance, bool) { return s.find(KindBall) }

// Paddle returns the paddle instance, or false if the snapshot has none.
func (s Snapshot) Paddle() (Instance, bool) { return s.find(KindPaddle) }

func (s Snapshot) find(k Kind) (Instance, bool) {
	for i := len(s.Instances) - 1; i >= 0; i-- {
		if s.Instances[i].Kind == k {
			return s.Instances[i], true
		}
	}
	return Instance{}, false
}
