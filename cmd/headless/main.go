// Command headless runs the simulation under the autopilot without a
// screen. It can stream every tick as protobuf frames, print the final
// frame as ANSI text or save it as a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gogpu/gg"

	"breakout/internal/ansii"
	"breakout/internal/breakout"
	"breakout/internal/canvas"
	"breakout/internal/client"
	"breakout/internal/config"
	"breakout/internal/wire"
)

var errTerminal = errors.New("refusing to write binary frames to a terminal, redirect stdout")

type options struct {
	configPath string
	ticks      int
	seed       uint64
	stream     bool
	frames     bool
	pngPath    string
	realtime   bool
}

func main() {
	os.Exit(Main())
}

func Main() int {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.DefaultPath, "configuration file")
	flag.IntVar(&opts.ticks, "ticks", 3600, "number of ticks to simulate")
	flag.Uint64Var(&opts.seed, "seed", 1, "serve direction seed")
	flag.BoolVar(&opts.stream, "stream", false, "write every tick to stdout as length-delimited protobuf frames")
	flag.BoolVar(&opts.frames, "frames", false, "draw every tick to stdout as ANSI text")
	flag.StringVar(&opts.pngPath, "png", "", "save the final frame as a PNG `file`")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace ticks at the configured tick rate")
	flag.Parse()

	if opts.stream && ansii.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stderr, errTerminal)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "headless:", err)
		return 1
	}
	return 0
}

// run simulates opts.ticks ticks, writing frames to out and logs to logOut.
func run(ctx context.Context, opts options, out, logOut io.Writer) error {
	if opts.stream && opts.frames {
		return errors.New("-stream and -frames both write to stdout, pick one")
	}
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Level()}))
	gg.SetLogger(log)

	sim := breakout.NewSimulation(cfg.Settings(),
		breakout.WithSignSource(breakout.NewSignSource(opts.seed)),
		breakout.WithLogger(log),
	)

	var frames *wire.Writer
	if opts.stream {
		frames = wire.NewWriter(out)
	}
	var pace <-chan time.Time
	if opts.realtime {
		ticker := time.NewTicker(client.TickInterval(cfg.TickRate))
		defer ticker.Stop()
		pace = ticker.C
	}

	if opts.frames {
		if _, err := io.WriteString(out, string(ansii.Screen.HideCursor)); err != nil {
			return err
		}
		defer io.WriteString(out, string(ansii.Screen.ShowCursor))
	}

	games := 0
	for i := 0; i < opts.ticks; i++ {
		if pace != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		snap := sim.Snapshot()
		if snap.Phase.Terminal() {
			games++
			log.Info("game over",
				slog.String("session", snap.Session),
				slog.String("result", snap.Phase.String()),
				slog.Uint64("tick", snap.Tick),
			)
			sim.Reset()
			snap = sim.Snapshot()
		}
		sim.Advance(client.Autopilot(snap))

		switch {
		case frames != nil:
			if err := frames.WriteFrame(sim.Snapshot()); err != nil {
				return err
			}
		case opts.frames:
			if err := drawANSI(out, sim); err != nil {
				return err
			}
		}
	}

	final := sim.Snapshot()
	log.Info("run finished",
		slog.Int("ticks", opts.ticks),
		slog.Int("gamesFinished", games),
		slog.String("phase", final.Phase.String()),
		slog.Int("blocksLeft", final.BlocksLeft),
	)

	if opts.pngPath != "" {
		c, err := canvas.New(cfg.CanvasWidth, cfg.CanvasHeight, sim.Bounds(), cfg.Background)
		if err != nil {
			return err
		}
		if err := c.SavePNG(opts.pngPath, final); err != nil {
			return fmt.Errorf("saving %s: %w", opts.pngPath, err)
		}
	}
	if frames == nil && !opts.frames {
		return drawANSI(out, sim)
	}
	return nil
}

func drawANSI(out io.Writer, sim *breakout.Simulation) error {
	cols, rows := ansii.TermSize()
	var b strings.Builder
	ansii.DrawFrame(&b, sim.Snapshot(), sim.Bounds(), cols, rows)
	b.WriteString("\n")
	_, err := io.WriteString(out, b.String())
	return err
}
