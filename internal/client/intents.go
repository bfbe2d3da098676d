package client

import (
	"sync"

	"breakout/internal/breakout"
	"breakout/internal/renderer"
)

const DefaultHoldTicks = 8

// Intents latches keyboard actions between ticks. Terminals send no key
// release, so a direction is held for a fixed number of ticks after each
// press. Pause and reset are edges consumed by Sample.
type Intents struct {
	mu        sync.Mutex
	holdTicks int
	left      int
	right     int
	pause     bool
	reset     bool
}

func NewIntents(holdTicks int) *Intents {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &Intents{holdTicks: holdTicks}
}

// Apply records an action. Quit and unknown actions are ignored.
func (i *Intents) Apply(a renderer.UiAction) {
	i.mu.Lock()
	defer i.mu.Unlock()

	switch a {
	case renderer.Left:
		i.left, i.right = i.holdTicks, 0
	case renderer.Right:
		i.right, i.left = i.holdTicks, 0
	case renderer.Pause:
		i.pause = !i.pause
	case renderer.Reset:
		i.reset = true
	}
}

// Sample returns the input for the next tick and whether a reset was
// requested, and clears the edge latches.
func (i *Intents) Sample() (breakout.Input, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	in := breakout.Input{
		Left:        i.left > 0,
		Right:       i.right > 0,
		TogglePause: i.pause,
	}
	if i.left > 0 {
		i.left--
	}
	if i.right > 0 {
		i.right--
	}
	reset := i.reset
	i.pause, i.reset = false, false
	return in, reset
}
