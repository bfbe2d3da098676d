package wire

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"breakout/internal/breakout"
)

func newSim() *breakout.Simulation {
	return breakout.NewSimulation(breakout.DefaultSettings(),
		breakout.WithSignSource(breakout.NewSignSource(1)),
		breakout.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func testSnapshot(t *testing.T) breakout.Snapshot {
	t.Helper()
	sim := newSim()
	for i := 0; i < 30; i++ {
		sim.Advance(breakout.Input{Left: true})
	}
	return sim.Snapshot()
}

func TestFrameRoundTrip(t *testing.T) {
	snap := testSnapshot(t)
	got, err := DecodeFrame(EncodeFrame(snap))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Errorf("decoded frame differs\n got %+v\nwant %+v", got, snap)
	}
}

func TestTerminalFrameKeepsMessage(t *testing.T) {
	snap := breakout.Snapshot{
		Tick:       7,
		Phase:      breakout.Lost,
		Strikes:    3,
		MaxStrikes: 3,
		Message:    breakout.Lost.Message(),
		Instances: []breakout.Instance{
			{Kind: breakout.KindBall, ScaleX: 1, ScaleY: 1, Visible: true},
		},
	}
	got, err := DecodeFrame(EncodeFrame(snap))
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != "You Lose!" || got.Phase != breakout.Lost {
		t.Errorf("got phase %v message %q", got.Phase, got.Message)
	}
	// Ball at the origin still decodes with zero coordinates.
	if b, ok := got.Ball(); !ok || b.X != 0 || b.Y != 0 || !b.Visible {
		t.Errorf("ball = %+v, %v", b, ok)
	}
}

func TestUnknownFieldsAreSkipped(t *testing.T) {
	b := EncodeFrame(breakout.Snapshot{Tick: 3, Strikes: 1})
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "future")
	b = protowire.AppendTag(b, 100, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, 1)

	got, err := DecodeFrame(b)
	if err != nil {
		t.Fatal(err)
	}
	if got.Tick != 3 || got.Strikes != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestMalformed(t *testing.T) {
	whole := EncodeFrame(testSnapshot(t))
	tests := map[string][]byte{
		"truncated":   whole[:len(whole)-3],
		"bad tag":     {0x00},
		"bad varint":  {0x08, 0xff, 0xff},
		"short bytes": {0x42, 0x10, 0x01},
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeFrame(b); !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestStream(t *testing.T) {
	sim := newSim()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	var want []breakout.Snapshot
	for i := 0; i < 5; i++ {
		sim.Advance(breakout.Input{Right: true})
		snap := sim.Snapshot()
		want = append(want, snap)
		if err := w.WriteFrame(snap); err != nil {
			t.Fatal(err)
		}
	}

	r := NewReader(&buf)
	for i, exp := range want {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, exp) {
			t.Fatalf("frame %d differs", i)
		}
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestStreamTornFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter(&buf).WriteFrame(testSnapshot(t)); err != nil {
		t.Fatal(err)
	}
	torn := buf.Bytes()[:buf.Len()-5]

	_, err := NewReader(bytes.NewReader(torn)).ReadFrame()
	if err != io.ErrUnexpectedEOF {
		t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestStreamRejectsHugeFrame(t *testing.T) {
	b := protowire.AppendVarint(nil, MaxFrameSize+1)
	_, err := NewReader(bytes.NewReader(b)).ReadFrame()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
