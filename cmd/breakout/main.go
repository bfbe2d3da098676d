// Command breakout plays Breakout in the terminal.
//
//	breakout [config.json]
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"breakout/internal/audio"
	"breakout/internal/breakout"
	"breakout/internal/client"
	"breakout/internal/config"
	"breakout/internal/renderer"
)

func main() {
	os.Exit(Main())
}

func Main() int {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The screen owns the terminal, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), "breakout.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening log:", err)
		return 1
	}
	defer logFile.Close()
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(log)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "creating screen:", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "initialising screen:", err)
		return 1
	}
	defer screen.Fini()
	screen.HideCursor()

	var player *audio.Player
	if cfg.Sound {
		sink, closeSpeaker, err := audio.OpenSpeaker(audio.DefaultSampleRate)
		if err != nil {
			log.Warn("sound disabled", slog.Any("error", err))
		} else {
			defer closeSpeaker()
			player = audio.NewPlayer(sink, audio.DefaultSampleRate, log)
		}
	}

	sim := breakout.NewSimulation(cfg.Settings(), breakout.WithLogger(log))
	game := client.NewGame(sim, screen, renderer.New(screen, sim.Bounds()), client.Options{
		TickRate:  cfg.TickRate,
		HoldTicks: cfg.HoldTicks,
		Sounder:   player,
		Logger:    log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("game stopped", slog.Any("error", err))
		return 1
	}
	return 0
}
