package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"google.golang.org/protobuf/encoding/protowire"

	"breakout/internal/breakout"
)

// MaxFrameSize bounds a single length-prefixed frame on a stream.
const MaxFrameSize = 1 << 20

// Writer writes length-delimited frames. It is safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteFrame(s breakout.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	body := AppendFrame(nil, s)
	w.buf = protowire.AppendVarint(w.buf[:0], uint64(len(body)))
	w.buf = append(w.buf, body...)
	if _, err := w.w.Write(w.buf); err != nil {
		return fmt.Errorf("write frame %d: %w", s.Tick, err)
	}
	return nil
}

// Reader reads frames written by Writer.
type Reader struct {
	r   *bufio.Reader
	buf []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadFrame returns io.EOF when the stream ends between frames and
// io.ErrUnexpectedEOF when it ends inside one.
func (r *Reader) ReadFrame() (breakout.Snapshot, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return breakout.Snapshot{}, err
		}
		return breakout.Snapshot{}, fmt.Errorf("%w: length: %v", ErrMalformed, err)
	}
	if size > MaxFrameSize {
		return breakout.Snapshot{}, fmt.Errorf("%w: frame of %d bytes", ErrMalformed, size)
	}
	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return breakout.Snapshot{}, err
	}
	return DecodeFrame(r.buf)
}
