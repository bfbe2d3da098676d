package breakout

import (
	"io"
	"log/slog"
	"math"
	"testing"
)

// fixedSign always returns the same index, 0 serves left and 1 serves right.
type fixedSign int

func (f fixedSign) Intn(int) int { return int(f) }

func newTestSim(t *testing.T, edit func(*Settings)) *Simulation {
	t.Helper()
	settings := DefaultSettings()
	if edit != nil {
		edit(&settings)
	}
	if err := settings.Validate(); err != nil {
		t.Fatalf("test settings invalid: %v", err)
	}
	return NewSimulation(settings,
		WithSignSource(fixedSign(1)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

// oneRow keeps the block grid well above the serve point.
func oneRow(s *Settings) { s.Rows = 1 }

func approx(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func speed(v Vector) float64 { return math.Hypot(v.X, v.Y) }
