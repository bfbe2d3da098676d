package breakout

import "math"

// nudge keeps a resolved ball clear of the surface it bounced off so the
// same contact does not fire again next tick.
const nudge = 0.01

// paddleBias scales how much the hit offset bends the ball sideways.
const paddleBias = 0.5

// renormalizeEpsilon is the shortest direction vector that can still be rescaled.
const renormalizeEpsilon = 1e-6

func speedOf(v Vector, fallback float64) float64 {
	s := math.Hypot(v.X, v.Y)
	if s == 0 {
		return fallback
	}
	return s
}

// withSpeed rescales v to length speed. Degenerate vectors are returned as is.
func withSpeed(v Vector, speed float64) Vector {
	l := math.Hypot(v.X, v.Y)
	if l <= renormalizeEpsilon {
		return v
	}
	return Vector{X: v.X / l * speed, Y: v.Y / l * speed}
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// ensureMinimumVertical lifts |v.Y| to at least ratio of the speed, keeping
// the speed and the horizontal direction. A zero v.Y is pushed upward.
func ensureMinimumVertical(v Vector, ratio, fallback float64) Vector {
	speed := speedOf(v, fallback)
	minV := speed * ratio
	if math.Abs(v.Y) >= minV {
		return v
	}
	sy := sign(v.Y)
	if sy == 0 {
		sy = 1
	}
	v.Y = sy * minV
	v.X = sign(v.X) * math.Sqrt(math.Max(0, speed*speed-v.Y*v.Y))
	return v
}

// movePaddle applies the input intents and keeps the paddle inside the field.
func (s *Simulation) movePaddle(in Input) {
	p := &s.state.Paddle
	if in.Right {
		p.Pos.X += p.Speed
	}
	if in.Left {
		p.Pos.X -= p.Speed
	}
	if p.Pos.X+p.Shape.X1 < s.bounds.Left {
		p.Pos.X = s.bounds.Left - p.Shape.X1
	}
	if p.Pos.X+p.Shape.X2 > s.bounds.Right {
		p.Pos.X = s.bounds.Right - p.Shape.X2
	}
}

func (s *Simulation) collidePaddle() bool {
	ball := &s.state.Ball
	paddle := s.state.Paddle
	pbox := paddle.Box()
	if !ball.Box().Touches(pbox) {
		return false
	}

	speed := speedOf(ball.Vel, s.settings.BallSpeed)

	// Not clamped: a ball centred past the paddle edge bends further.
	offset := (ball.Pos.X - paddle.Pos.X) / (paddle.Shape.Width() * 0.5)
	bent := Vector{
		X: ball.Vel.X + offset*paddleBias,
		Y: math.Abs(ball.Vel.Y),
	}
	ball.Vel = withSpeed(bent, speed)

	ball.Pos.Y = pbox.Top - ball.Shape.Y1 + nudge
	ball.Vel = ensureMinimumVertical(ball.Vel, s.settings.MinVerticalRatio, s.settings.BallSpeed)
	return true
}

// collideWalls bounces the ball off the left, right and upper bounds and
// reports a strike when it reaches the bottom.
func (s *Simulation) collideWalls() (bounced, struck bool) {
	ball := &s.state.Ball
	box := ball.Box()

	if box.Left <= s.bounds.Left {
		ball.Vel.X = math.Abs(ball.Vel.X)
		bounced = true
	}
	if box.Right >= s.bounds.Right {
		ball.Vel.X = -math.Abs(ball.Vel.X)
		bounced = true
	}
	if box.Top >= s.bounds.Upper {
		ball.Vel.Y = -math.Abs(ball.Vel.Y)
		bounced = true
	}
	return bounced, box.Bottom <= s.bounds.Bottom
}

// collideBlocks hides the first visible block, in grid order, that the ball
// overlaps and bounces the ball off it. At most one block per tick.
func (s *Simulation) collideBlocks() bool {
	ball := &s.state.Ball
	for i := range s.state.Blocks {
		b := &s.state.Blocks[i]
		if !b.Visible {
			continue
		}
		if s.bounceOffBlock(ball, b) {
			b.Visible = false
			return true
		}
	}
	return false
}

func (s *Simulation) bounceOffBlock(ball *Ball, b *Block) bool {
	bbox := b.Box()
	if !ball.Box().Intersects(bbox) {
		return false
	}
	overlapX, overlapY := ball.Box().Overlap(bbox)

	speed := speedOf(ball.Vel, s.settings.BallSpeed)

	// Shallower penetration is the side the ball came in from. Ties go vertical.
	if overlapX < overlapY {
		ball.Vel.X = -ball.Vel.X
		if ball.Pos.X < b.Pos.X {
			ball.Pos.X = bbox.Left - ball.Shape.X2 - nudge
		} else {
			ball.Pos.X = bbox.Right - ball.Shape.X1 + nudge
		}
	} else {
		ball.Vel.Y = -ball.Vel.Y
		if ball.Pos.Y < b.Pos.Y {
			ball.Pos.Y = bbox.Bottom - ball.Shape.Y2 - nudge
		} else {
			ball.Pos.Y = bbox.Top - ball.Shape.Y1 + nudge
		}
	}

	ball.Vel = withSpeed(ball.Vel, speed)
	ball.Vel = ensureMinimumVertical(ball.Vel, s.settings.MinVerticalRatio, s.settings.BallSpeed)
	return true
}
