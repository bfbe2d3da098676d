package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"breakout/internal/breakout"
)

const volume = 0.3

type note struct {
	freq float64
	dur  time.Duration
}

// Sounds in priority order, one per tick.
var sounds = []struct {
	ev    breakout.Events
	notes []note
}{
	{breakout.EventLose, []note{{392, 180 * time.Millisecond}, {330, 180 * time.Millisecond}, {262, 360 * time.Millisecond}}},
	{breakout.EventWin, []note{{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 240 * time.Millisecond}}},
	{breakout.EventStrike, []note{{330, 90 * time.Millisecond}, {220, 150 * time.Millisecond}}},
	{breakout.EventBlock, []note{{660, 80 * time.Millisecond}}},
	{breakout.EventPaddle, []note{{440, 60 * time.Millisecond}}},
	{breakout.EventWall, []note{{330, 40 * time.Millisecond}}},
}

// Effect builds the sound for a tick's events. Pause and resume are silent.
func Effect(ev breakout.Events, rate beep.SampleRate) (beep.Streamer, bool) {
	for _, s := range sounds {
		if !ev.Has(s.ev) {
			continue
		}
		parts := make([]beep.Streamer, len(s.notes))
		for i, n := range s.notes {
			parts[i] = tone(rate, n.freq, n.dur)
		}
		return newVolume(beep.Seq(parts...), volume), true
	}
	return nil, false
}

// Length is the duration of an event's sound.
func Length(ev breakout.Events) time.Duration {
	for _, s := range sounds {
		if ev.Has(s.ev) {
			var d time.Duration
			for _, n := range s.notes {
				d += n.dur
			}
			return d
		}
	}
	return 0
}

func tone(rate beep.SampleRate, freq float64, dur time.Duration) beep.Streamer {
	n := rate.N(dur)
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return newEnvelope(beep.Take(n, sine), n, rate.N(5*time.Millisecond), n/2)
}

func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// envelope ramps a stream up over attack samples and down over the last
// release samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func newEnvelope(s beep.Streamer, total, attack, release int) beep.Streamer {
	return &envelope{streamer: s, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			vol = math.Max(0, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
