package breakout

import (
	"errors"
	"fmt"
)

// Settings holds every tunable of a game. Speeds are world units per tick.
type Settings struct {
	Aspect           float64
	BallSpeed        float64
	BallSize         float64
	MinVerticalRatio float64
	PaddleSpeed      float64
	PaddleWidth      float64
	PaddleHeight     float64
	PaddleY          float64
	MaxStrikes       int
	Rows             int
	Cols             int
	BlockWidth       float64
	BlockHeight      float64
	GapX             float64
	GapY             float64
	StartY           float64

	// BlockHitScale multiplies block extents for collisions. Zero means
	// (BlockWidth, BlockHeight); {1, 1} collides with the drawn box.
	BlockHitScale Vector
}

func DefaultSettings() Settings {
	return Settings{
		Aspect:           2,
		BallSpeed:        0.04,
		BallSize:         1,
		MinVerticalRatio: 0.25,
		PaddleSpeed:      0.1,
		PaddleWidth:      3.5,
		PaddleHeight:     1,
		PaddleY:          -4,
		MaxStrikes:       3,
		Rows:             4,
		Cols:             5,
		BlockWidth:       3.5,
		BlockHeight:      1,
		GapX:             0.2,
		GapY:             0.15,
		StartY:           3.5,
	}
}

var ErrInvalidSettings = errors.New("invalid settings")

func (s Settings) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"aspect", s.Aspect},
		{"ballSpeed", s.BallSpeed},
		{"ballSize", s.BallSize},
		{"paddleSpeed", s.PaddleSpeed},
		{"paddleWidth", s.PaddleWidth},
		{"paddleHeight", s.PaddleHeight},
		{"blockWidth", s.BlockWidth},
		{"blockHeight", s.BlockHeight},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSettings, p.name, p.v)
		}
	}
	if !(s.MinVerticalRatio > 0 && s.MinVerticalRatio < 1) {
		return fmt.Errorf("%w: minVerticalRatio must be in (0,1), got %v", ErrInvalidSettings, s.MinVerticalRatio)
	}
	if s.GapX < 0 || s.GapY < 0 {
		return fmt.Errorf("%w: gaps must not be negative", ErrInvalidSettings)
	}
	if h := s.BlockHitScale; h != (Vector{}) && !(h.X > 0 && h.Y > 0) {
		return fmt.Errorf("%w: blockHitScale must be unset or positive on both axes, got %+v", ErrInvalidSettings, h)
	}
	if field := BoundsForAspect(s.Aspect).Width(); s.PaddleWidth > field {
		return fmt.Errorf("%w: paddleWidth %v is wider than the field (%v)", ErrInvalidSettings, s.PaddleWidth, field)
	}
	if s.MaxStrikes < 1 {
		return fmt.Errorf("%w: maxStrikes must be at least 1, got %d", ErrInvalidSettings, s.MaxStrikes)
	}
	if s.Rows < 1 || s.Cols < 1 {
		return fmt.Errorf("%w: block grid %dx%d is empty", ErrInvalidSettings, s.Rows, s.Cols)
	}
	return nil
}

// HitScale is the instance scale applied to block extents for collisions.
func (s Settings) HitScale() Vector {
	if s.BlockHitScale == (Vector{}) {
		return Vector{X: s.BlockWidth, Y: s.BlockHeight}
	}
	return s.BlockHitScale
}

// BlockPosition is the grid placement of the block at row r, column c.
func (s Settings) BlockPosition(r, c int) Vector {
	return Vector{
		X: (float64(c) - float64(s.Cols-1)/2) * (s.BlockWidth + s.GapX),
		Y: s.StartY - float64(r)*(s.BlockHeight+s.GapY),
	}
}
