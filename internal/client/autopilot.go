package client

import "breakout/internal/breakout"

// deadband keeps the autopilot from jittering once the paddle is under the ball.
const deadband = 0.25

// Autopilot steers the paddle under the ball.
func Autopilot(snap breakout.Snapshot) breakout.Input {
	ball, ok := snap.Ball()
	if !ok {
		return breakout.Input{}
	}
	paddle, ok := snap.Paddle()
	if !ok {
		return breakout.Input{}
	}
	switch d := ball.X - paddle.X; {
	case d < -deadband:
		return breakout.Input{Left: true}
	case d > deadband:
		return breakout.Input{Right: true}
	}
	return breakout.Input{}
}
