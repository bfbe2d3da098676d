package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"breakout/internal/breakout"
	"breakout/internal/renderer"
)

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixedSign int

func (f fixedSign) Intn(int) int { return int(f) }

func newSim(edit func(*breakout.Settings)) *breakout.Simulation {
	settings := breakout.DefaultSettings()
	if edit != nil {
		edit(&settings)
	}
	return breakout.NewSimulation(settings,
		breakout.WithSignSource(fixedSign(1)),
		breakout.WithLogger(quietLog),
	)
}

type recorder struct {
	mu     sync.Mutex
	frames []breakout.Snapshot
	events []breakout.Events
}

func (r *recorder) Render(s breakout.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, s)
}

func (r *recorder) Play(e breakout.Events) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func TestIntentsHoldDirection(t *testing.T) {
	in := NewIntents(3)
	in.Apply(renderer.Left)

	for i := 0; i < 3; i++ {
		got, _ := in.Sample()
		if !got.Left || got.Right {
			t.Fatalf("sample %d = %+v, want left held", i, got)
		}
	}
	if got, _ := in.Sample(); got.Left {
		t.Error("left should decay after the hold")
	}
}

func TestIntentsOppositeDirectionCancels(t *testing.T) {
	in := NewIntents(5)
	in.Apply(renderer.Left)
	in.Apply(renderer.Right)
	got, _ := in.Sample()
	if got.Left || !got.Right {
		t.Errorf("got %+v, want only right", got)
	}
}

func TestIntentsEdgesClearOnSample(t *testing.T) {
	in := NewIntents(0)
	in.Apply(renderer.Pause)
	in.Apply(renderer.Reset)

	got, reset := in.Sample()
	if !got.TogglePause || !reset {
		t.Fatalf("first sample = %+v, reset %v", got, reset)
	}
	got, reset = in.Sample()
	if got.TogglePause || reset {
		t.Errorf("edges not cleared: %+v, reset %v", got, reset)
	}
}

func TestIntentsDoublePauseCancels(t *testing.T) {
	in := NewIntents(0)
	in.Apply(renderer.Pause)
	in.Apply(renderer.Pause)
	if got, _ := in.Sample(); got.TogglePause {
		t.Error("two presses within a tick should leave the pause state alone")
	}
}

func TestIntentsIgnoreQuit(t *testing.T) {
	in := NewIntents(0)
	in.Apply(renderer.Quit)
	in.Apply(renderer.Unknown)
	if got, reset := in.Sample(); got != (breakout.Input{}) || reset {
		t.Errorf("got %+v, reset %v", got, reset)
	}
}

func TestAutopilot(t *testing.T) {
	snap := func(ballX, paddleX float64) breakout.Snapshot {
		return breakout.Snapshot{Instances: []breakout.Instance{
			{Kind: breakout.KindBall, X: ballX},
			{Kind: breakout.KindPaddle, X: paddleX},
		}}
	}
	tests := []struct {
		name string
		snap breakout.Snapshot
		want breakout.Input
	}{
		{"ball left", snap(-3, 0), breakout.Input{Left: true}},
		{"ball right", snap(2, -1), breakout.Input{Right: true}},
		{"under ball", snap(0.1, 0), breakout.Input{}},
		{"no instances", breakout.Snapshot{}, breakout.Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Autopilot(tt.snap); got != tt.want {
				t.Errorf("Autopilot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAutopilotKeepsRallyGoing(t *testing.T) {
	sim := newSim(func(s *breakout.Settings) { s.Rows = 1 })
	for i := 0; i < 5000; i++ {
		sim.Advance(Autopilot(sim.Snapshot()))
		if sim.State().Phase == breakout.Won {
			return
		}
	}
	if sim.State().Strikes > 0 {
		t.Errorf("autopilot missed the ball %d times", sim.State().Strikes)
	}
}

func TestStepAppliesIntents(t *testing.T) {
	rec := &recorder{}
	sim := newSim(nil)
	g := NewGame(sim, nil, rec, Options{HoldTicks: 2, Sounder: rec, Logger: quietLog})

	x0 := sim.State().Paddle.Pos.X
	g.Intents().Apply(renderer.Left)
	g.Step()
	if got := sim.State().Paddle.Pos.X; got >= x0 {
		t.Errorf("paddle x = %v, want it to move left of %v", got, x0)
	}
	if rec.frameCount() != 1 {
		t.Errorf("rendered %d frames, want 1", rec.frameCount())
	}
}

func TestStepReset(t *testing.T) {
	rec := &recorder{}
	sim := newSim(nil)
	g := NewGame(sim, nil, rec, Options{Logger: quietLog})
	for i := 0; i < 10; i++ {
		g.Step()
	}
	session := sim.Session()

	g.Intents().Apply(renderer.Reset)
	g.Step()
	if sim.Session() == session {
		t.Error("reset should start a new session")
	}
	if sim.Tick() != 1 {
		t.Errorf("tick after reset step = %d, want 1", sim.Tick())
	}
}

func TestStepPlaysEvents(t *testing.T) {
	rec := &recorder{}
	sim := newSim(nil)
	g := NewGame(sim, nil, rec, Options{Sounder: rec, Logger: quietLog})

	g.Intents().Apply(renderer.Pause)
	if ev := g.Step(); !ev.Has(breakout.EventPause) {
		t.Fatalf("events = %v, want pause", ev)
	}
	if len(rec.events) != 1 || !rec.events[0].Has(breakout.EventPause) {
		t.Errorf("sounder got %v", rec.events)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	rec := &recorder{}
	g := NewGame(newSim(nil), nil, rec, Options{TickRate: 1000, Logger: quietLog})

	done := make(chan error, 1)
	go func() { done <- g.Run(context.Background()) }()

	deadline := time.After(5 * time.Second)
	for rec.frameCount() < 3 {
		select {
		case <-deadline:
			t.Fatal("loop did not render")
		case <-time.After(time.Millisecond):
		}
	}
	g.Quit()
	g.Quit()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGame(newSim(nil), nil, &recorder{}, Options{Logger: quietLog})
	if err := g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{1000, time.Millisecond},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
		{2_000_000_000, time.Millisecond},
	}
	for _, tt := range tests {
		if got := TickInterval(tt.rate); got != tt.want {
			t.Errorf("TickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestNewGameClampsTickRate(t *testing.T) {
	g := NewGame(newSim(nil), nil, &recorder{}, Options{TickRate: 2_000_000_000, Logger: quietLog})
	if g.tickRate != MaxTickRate {
		t.Errorf("tickRate = %d, want %d", g.tickRate, MaxTickRate)
	}
}
