// Package audio plays short tones for simulation events through beep.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"breakout/internal/breakout"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Sink accepts streamers for playback.
type Sink interface {
	Play(s ...beep.Streamer)
}

type speakerSink struct{}

func (speakerSink) Play(s ...beep.Streamer) { speaker.Play(s...) }

// OpenSpeaker initialises the system speaker. The returned func releases it.
func OpenSpeaker(rate beep.SampleRate) (Sink, func(), error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, nil, fmt.Errorf("init speaker: %w", err)
	}
	return speakerSink{}, speaker.Close, nil
}

// Player turns per-tick events into sounds. A nil *Player is silent.
type Player struct {
	mu    sync.Mutex
	sink  Sink
	rate  beep.SampleRate
	log   *slog.Logger
	muted bool
}

func NewPlayer(sink Sink, rate beep.SampleRate, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	return &Player{sink: sink, rate: rate, log: log}
}

func (p *Player) SetMuted(m bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = m
}

// Play sounds the most significant event of a tick.
func (p *Player) Play(ev breakout.Events) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.muted || p.sink == nil {
		return
	}
	s, ok := Effect(ev, p.rate)
	if !ok {
		return
	}
	p.log.Debug("sound", slog.String("events", ev.String()))
	p.sink.Play(s)
}
