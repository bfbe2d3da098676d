package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"breakout/internal/breakout"
	"breakout/internal/client"
)

const DefaultPath = "config.json"

var Config = Default()

type Configuration struct {
	LogLevel int `json:"logLevel"`

	CanvasWidth  int `json:"canvasWidth"`
	CanvasHeight int `json:"canvasHeight"`

	BallSpeed        float64 `json:"ballSpeed"`
	PaddleSpeed      float64 `json:"paddleSpeed"`
	MinVerticalRatio float64 `json:"minVerticalRatio"`
	MaxStrikes       int     `json:"maxStrikes"`

	Rows        int     `json:"rows"`
	Cols        int     `json:"cols"`
	BlockWidth  float64 `json:"blockWidth"`
	BlockHeight float64 `json:"blockHeight"`
	GapX        float64 `json:"gapX"`
	GapY        float64 `json:"gapY"`
	StartY      float64 `json:"startY"`
	PaddleY     float64 `json:"paddleY"`

	// Zero keeps the block size as the hit scale.
	BlockHitScaleX float64 `json:"blockHitScaleX"`
	BlockHitScaleY float64 `json:"blockHitScaleY"`

	// Frame loop
	TickRate  int `json:"tickRate"`
	HoldTicks int `json:"holdTicks"`

	Background int  `json:"background"`
	Sound      bool `json:"sound"`
}

func Default() Configuration {
	s := breakout.DefaultSettings()
	return Configuration{
		LogLevel:         int(slog.LevelInfo),
		CanvasWidth:      800,
		CanvasHeight:     400,
		BallSpeed:        s.BallSpeed,
		PaddleSpeed:      s.PaddleSpeed,
		MinVerticalRatio: s.MinVerticalRatio,
		MaxStrikes:       s.MaxStrikes,
		Rows:             s.Rows,
		Cols:             s.Cols,
		BlockWidth:       s.BlockWidth,
		BlockHeight:      s.BlockHeight,
		GapX:             s.GapX,
		GapY:             s.GapY,
		StartY:           s.StartY,
		PaddleY:          s.PaddleY,
		TickRate:         60,
		HoldTicks:        8,
		Background:       4,
		Sound:            true,
	}
}

// LoadConfig reads the JSON file at path (config.json when empty) over the
// defaults and stores the result in Config. A missing file is not an error.
func LoadConfig(path string) (Configuration, error) {
	if path == "" {
		path = DefaultPath
	}

	c := Default()
	cf, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no config file found, using default config instead", slog.String("path", path))
		Config = c
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("reading config %s: %w", path, err)
	}

	c, err = Parse(cf)
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	Config = c
	return c, nil
}

// Parse decodes a JSON document over the defaults and validates it.
func Parse(b []byte) (Configuration, error) {
	c := Default()
	if err := json.Unmarshal(b, &c); err != nil {
		return Default(), fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

func (c Configuration) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.TickRate <= 0 || c.TickRate > client.MaxTickRate {
		return fmt.Errorf("tickRate must be 1-%d, got %d", client.MaxTickRate, c.TickRate)
	}
	if c.HoldTicks < 1 {
		return fmt.Errorf("holdTicks must be at least 1, got %d", c.HoldTicks)
	}
	if c.Background < 0 || c.Background > 4 {
		return fmt.Errorf("background must be 0-4, got %d", c.Background)
	}
	return c.Settings().Validate()
}

func (c Configuration) Settings() breakout.Settings {
	s := breakout.DefaultSettings()
	s.Aspect = float64(c.CanvasWidth) / float64(c.CanvasHeight)
	s.BallSpeed = c.BallSpeed
	s.PaddleSpeed = c.PaddleSpeed
	s.MinVerticalRatio = c.MinVerticalRatio
	s.MaxStrikes = c.MaxStrikes
	s.Rows = c.Rows
	s.Cols = c.Cols
	s.BlockWidth = c.BlockWidth
	s.BlockHeight = c.BlockHeight
	s.GapX = c.GapX
	s.GapY = c.GapY
	s.StartY = c.StartY
	s.PaddleY = c.PaddleY
	s.BlockHitScale = breakout.Vector{X: c.BlockHitScaleX, Y: c.BlockHitScaleY}
	return s
}

func (c Configuration) Level() slog.Level { return slog.Level(c.LogLevel) }
