package breakout

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// Input is what the input layer hands the engine once per tick.
type Input struct {
	Left        bool
	Right       bool
	TogglePause bool
}

// SignSource picks the horizontal direction of a serve.
type SignSource interface {
	Intn(n int) int
}

func NewSignSource(seed uint64) SignSource {
	return rand.New(rand.NewSource(seed))
}

type Option func(*Simulation)

func WithSignSource(src SignSource) Option {
	return func(s *Simulation) { s.rng = src }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// Simulation owns the game state and advances it one tick at a time.
// It is not safe for concurrent use; callers serialise Advance, Reset and
// Snapshot on one goroutine.
type Simulation struct {
	settings Settings
	bounds   Bounds
	state    GameState
	rng      SignSource
	log      *slog.Logger
	tick     uint64
	session  string
}

// NewSimulation lays out a fresh game. The first serve goes up and to the
// right; later serves pick a random side.
func NewSimulation(settings Settings, opts ...Option) *Simulation {
	s := &Simulation{
		settings: settings,
		bounds:   BoundsForAspect(settings.Aspect),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewSignSource(uint64(time.Now().UnixNano()))
	}

	s.state = GameState{
		Ball: Ball{
			Shape: ExtentsOf(settings.BallSize, settings.BallSize),
			Vel:   Vector{X: settings.BallSpeed, Y: settings.BallSpeed},
		},
		Paddle: Paddle{
			Shape: ExtentsOf(settings.PaddleWidth, settings.PaddleHeight),
			Pos:   Vector{Y: settings.PaddleY},
			Speed: settings.PaddleSpeed,
		},
		Blocks: make([]Block, 0, settings.Rows*settings.Cols),
	}
	shape := ExtentsOf(settings.BlockWidth, settings.BlockHeight)
	for r := 0; r < settings.Rows; r++ {
		for c := 0; c < settings.Cols; c++ {
			s.state.Blocks = append(s.state.Blocks, Block{
				Shape:   shape,
				Hit:     shape.Scaled(settings.HitScale()),
				Pos:     settings.BlockPosition(r, c),
				Visible: true,
			})
		}
	}
	s.session = uuid.NewString()
	s.log.Debug("new game", slog.String("session", s.session), slog.Int("blocks", len(s.state.Blocks)))
	return s
}

func (s *Simulation) Settings() Settings { return s.settings }
func (s *Simulation) Bounds() Bounds     { return s.bounds }
func (s *Simulation) Tick() uint64       { return s.tick }
func (s *Simulation) Session() string    { return s.session }

// State exposes the live state. Presenters should prefer Snapshot.
func (s *Simulation) State() *GameState { return &s.state }

// Advance runs one tick. It does nothing while paused or once the game is
// won or lost, except for honouring a pause toggle.
func (s *Simulation) Advance(in Input) Events {
	var ev Events
	if in.TogglePause {
		ev |= s.TogglePause()
	}
	if s.state.Paused || s.state.Phase != Playing {
		return ev
	}
	s.tick++

	ball := &s.state.Ball
	ball.Pos.X += ball.Vel.X
	ball.Pos.Y += ball.Vel.Y

	s.movePaddle(in)

	if s.collidePaddle() {
		ev |= EventPaddle
	}

	bounced, struck := s.collideWalls()
	if bounced {
		ev |= EventWall
	}
	if struck {
		ev |= s.strike()
		if s.state.Phase != Playing {
			// Lost ends the tick: no block scan, so no Won in the same tick.
			return ev
		}
	}

	if s.collideBlocks() {
		ev |= EventBlock
	}

	if s.state.VisibleBlocks() == 0 {
		s.state.Phase = Won
		ev |= EventWin
		s.log.Info("game won", slog.String("session", s.session), slog.Uint64("tick", s.tick))
	}
	return ev
}

func (s *Simulation) strike() Events {
	s.state.Strikes++
	if s.state.Strikes >= s.settings.MaxStrikes {
		s.state.Phase = Lost
		s.log.Info("game lost", slog.String("session", s.session), slog.Uint64("tick", s.tick))
		return EventStrike | EventLose
	}
	s.log.Debug("strike", slog.String("session", s.session), slog.Int("strikes", s.state.Strikes))
	s.state.Ball.Pos = Vector{}
	s.state.Paddle.Pos.X = 0
	s.serve()
	return EventStrike
}

func (s *Simulation) serve() {
	dir := float64(s.rng.Intn(2)*2 - 1)
	s.state.Ball.Vel = ensureMinimumVertical(
		Vector{X: s.settings.BallSpeed * dir, Y: s.settings.BallSpeed},
		s.settings.MinVerticalRatio,
		s.settings.BallSpeed,
	)
}

// TogglePause flips the pause flag. Only a game in progress can be paused.
func (s *Simulation) TogglePause() Events {
	if s.state.Phase != Playing {
		return 0
	}
	s.state.Paused = !s.state.Paused
	if s.state.Paused {
		return EventPause
	}
	return EventResume
}

// Reset puts every object back where the game started and serves again.
// It is the only way out of a won or lost game.
func (s *Simulation) Reset() {
	s.state.Strikes = 0
	s.state.Phase = Playing
	s.state.Paused = false
	i := 0
	for r := 0; r < s.settings.Rows; r++ {
		for c := 0; c < s.settings.Cols; c++ {
			s.state.Blocks[i].Visible = true
			s.state.Blocks[i].Pos = s.settings.BlockPosition(r, c)
			i++
		}
	}
	s.state.Ball.Pos = Vector{}
	s.state.Paddle.Pos = Vector{Y: s.settings.PaddleY}
	s.serve()

	s.tick = 0
	s.session = uuid.NewString()
	s.log.Info("game reset", slog.String("session", s.session))
}
