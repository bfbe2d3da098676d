package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"breakout/internal/breakout"
	"breakout/internal/renderer"
)

const (
	DefaultTickRate = 60
	MaxTickRate     = 1000
)

// TickInterval is the ticker period for a rate in ticks per second. Rates
// outside 1..MaxTickRate use DefaultTickRate or MaxTickRate.
func TickInterval(rate int) time.Duration {
	return time.Second / time.Duration(clampTickRate(rate))
}

func clampTickRate(rate int) int {
	switch {
	case rate <= 0:
		return DefaultTickRate
	case rate > MaxTickRate:
		return MaxTickRate
	}
	return rate
}

type Presenter interface {
	Render(breakout.Snapshot)
}

type Sounder interface {
	Play(breakout.Events)
}

type Options struct {
	TickRate  int
	HoldTicks int
	Sounder   Sounder
	Logger    *slog.Logger
}

// Game runs the frame loop for one simulation. Only the loop goroutine
// touches the simulation.
type Game struct {
	sim       *breakout.Simulation
	screen    tcell.Screen
	presenter Presenter
	sounder   Sounder
	intents   *Intents
	tickRate  int
	log       *slog.Logger

	quit     chan struct{}
	quitOnce sync.Once
}

func NewGame(sim *breakout.Simulation, screen tcell.Screen, presenter Presenter, opts Options) *Game {
	g := &Game{
		sim:       sim,
		screen:    screen,
		presenter: presenter,
		sounder:   opts.Sounder,
		intents:   NewIntents(opts.HoldTicks),
		tickRate:  clampTickRate(opts.TickRate),
		log:       opts.Logger,
		quit:      make(chan struct{}),
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	return g
}

func (g *Game) Intents() *Intents { return g.intents }

// Quit stops Run. It is safe to call more than once.
func (g *Game) Quit() {
	g.quitOnce.Do(func() { close(g.quit) })
}

// Run draws the first frame and then steps the simulation once per tick
// until ctx is done or the player quits.
func (g *Game) Run(ctx context.Context) error {
	if g.screen != nil {
		go g.pollInput()
	}

	g.presenter.Render(g.sim.Snapshot())
	ticker := time.NewTicker(TickInterval(g.tickRate))
	defer ticker.Stop()

	g.log.Info("game started", slog.String("session", g.sim.Session()), slog.Int("tickRate", g.tickRate))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.quit:
			g.log.Info("game quit", slog.String("session", g.sim.Session()), slog.Uint64("tick", g.sim.Tick()))
			return nil
		case <-ticker.C:
			g.Step()
		}
	}
}

// Step advances one tick with the latched input and renders the result.
func (g *Game) Step() breakout.Events {
	in, reset := g.intents.Sample()
	if reset {
		g.sim.Reset()
	}
	events := g.sim.Advance(in)
	if events != 0 {
		g.log.Debug("tick events",
			slog.String("session", g.sim.Session()),
			slog.Uint64("tick", g.sim.Tick()),
			slog.String("events", events.String()),
		)
		if g.sounder != nil {
			g.sounder.Play(events)
		}
	}
	g.presenter.Render(g.sim.Snapshot())
	return events
}

// pollInput returns once the screen is finalised.
func (g *Game) pollInput() {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			action := renderer.ProcessKey(ev)
			if action == renderer.Quit {
				g.Quit()
				return
			}
			g.intents.Apply(action)
		case *tcell.EventResize:
			g.screen.Sync()
		}
	}
}
