// Package wire encodes simulation snapshots in the protobuf wire format
// described by frame.proto, so a presenter in another process can draw them.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"breakout/internal/breakout"
)

var ErrMalformed = errors.New("malformed frame")

// Frame fields
const (
	fieldTick       protowire.Number = 1
	fieldSession    protowire.Number = 2
	fieldPhase      protowire.Number = 3
	fieldPaused     protowire.Number = 4
	fieldStrikes    protowire.Number = 5
	fieldMaxStrikes protowire.Number = 6
	fieldMessage    protowire.Number = 7
	fieldInstances  protowire.Number = 8
	fieldBlocksLeft protowire.Number = 9
)

// Instance fields
const (
	fieldKind    protowire.Number = 1
	fieldX       protowire.Number = 2
	fieldY       protowire.Number = 3
	fieldScaleX  protowire.Number = 4
	fieldScaleY  protowire.Number = 5
	fieldVisible protowire.Number = 6
)

// AppendFrame appends the encoded snapshot to b. Zero values are omitted
// like proto3 does.
func AppendFrame(b []byte, s breakout.Snapshot) []byte {
	b = appendVarint(b, fieldTick, s.Tick)
	if s.Session != "" {
		b = protowire.AppendTag(b, fieldSession, protowire.BytesType)
		b = protowire.AppendString(b, s.Session)
	}
	b = appendVarint(b, fieldPhase, uint64(s.Phase))
	b = appendVarint(b, fieldPaused, protowire.EncodeBool(s.Paused))
	b = appendVarint(b, fieldStrikes, uint64(s.Strikes))
	b = appendVarint(b, fieldMaxStrikes, uint64(s.MaxStrikes))
	if s.Message != "" {
		b = protowire.AppendTag(b, fieldMessage, protowire.BytesType)
		b = protowire.AppendString(b, s.Message)
	}
	var inst []byte
	for _, in := range s.Instances {
		inst = appendInstance(inst[:0], in)
		b = protowire.AppendTag(b, fieldInstances, protowire.BytesType)
		b = protowire.AppendBytes(b, inst)
	}
	b = appendVarint(b, fieldBlocksLeft, uint64(s.BlocksLeft))
	return b
}

func EncodeFrame(s breakout.Snapshot) []byte {
	return AppendFrame(nil, s)
}

func appendInstance(b []byte, in breakout.Instance) []byte {
	b = appendVarint(b, fieldKind, uint64(in.Kind))
	b = appendDouble(b, fieldX, in.X)
	b = appendDouble(b, fieldY, in.Y)
	b = appendDouble(b, fieldScaleX, in.ScaleX)
	b = appendDouble(b, fieldScaleY, in.ScaleY)
	b = appendVarint(b, fieldVisible, protowire.EncodeBool(in.Visible))
	return b
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

// DecodeFrame parses one encoded frame. Unknown fields are skipped.
func DecodeFrame(b []byte) (breakout.Snapshot, error) {
	var s breakout.Snapshot
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, fmt.Errorf("%w: tag: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && isFrameVarint(num):
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			setFrameVarint(&s, num, v)
		case typ == protowire.BytesType && (num == fieldSession || num == fieldMessage || num == fieldInstances):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case fieldSession:
				s.Session = string(v)
			case fieldMessage:
				s.Message = string(v)
			case fieldInstances:
				in, err := decodeInstance(v)
				if err != nil {
					return s, err
				}
				s.Instances = append(s.Instances, in)
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return s, fmt.Errorf("%w: field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return s, nil
}

func isFrameVarint(num protowire.Number) bool {
	switch num {
	case fieldTick, fieldPhase, fieldPaused, fieldStrikes, fieldMaxStrikes, fieldBlocksLeft:
		return true
	}
	return false
}

func setFrameVarint(s *breakout.Snapshot, num protowire.Number, v uint64) {
	switch num {
	case fieldTick:
		s.Tick = v
	case fieldPhase:
		s.Phase = breakout.Phase(v)
	case fieldPaused:
		s.Paused = protowire.DecodeBool(v)
	case fieldStrikes:
		s.Strikes = int(v)
	case fieldMaxStrikes:
		s.MaxStrikes = int(v)
	case fieldBlocksLeft:
		s.BlocksLeft = int(v)
	}
}

func decodeInstance(b []byte) (breakout.Instance, error) {
	var in breakout.Instance
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return in, fmt.Errorf("%w: instance tag: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && (num == fieldKind || num == fieldVisible):
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return in, fmt.Errorf("%w: instance field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			if num == fieldKind {
				in.Kind = breakout.Kind(v)
			} else {
				in.Visible = protowire.DecodeBool(v)
			}
		case typ == protowire.Fixed64Type && num >= fieldX && num <= fieldScaleY:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return in, fmt.Errorf("%w: instance field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
			f := math.Float64frombits(v)
			switch num {
			case fieldX:
				in.X = f
			case fieldY:
				in.Y = f
			case fieldScaleX:
				in.ScaleX = f
			case fieldScaleY:
				in.ScaleY = f
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return in, fmt.Errorf("%w: instance field %d: %v", ErrMalformed, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return in, nil
}
