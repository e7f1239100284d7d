package stream

import (
	"errors"
	"io"

	"github.com/coregx/acstream/automaton"
)

// ErrWriterClosed is returned by Write after Close has completed.
var ErrWriterClosed = errors.New("stream: writer is closed")

// writerChunkSize bounds how much input is transformed between sink
// flushes, which in turn bounds the pending-output buffer.
const writerChunkSize = 32 * 1024

// Writer is the push-mode adapter: callers push raw bytes, the matcher
// transforms them, and the transformed stream is pushed to a wrapped
// sink.
//
// The reported write count is the number of source bytes consumed by the
// matcher, not the number of transformed bytes delivered. When the sink
// accepts a write only partially or fails, the undelivered transformed
// output is retained and drained before any further input is accepted, so
// a failed Write may be retried without data loss.
type Writer struct {
	dst  io.Writer
	sess *Session

	out    []byte // transformed output not yet accepted by dst
	closed bool
}

// NewWriter returns a Writer pushing the transformation of its input to
// dst through a fresh session over a.
func NewWriter(a *automaton.Automaton, dst io.Writer) *Writer {
	return &Writer{dst: dst, sess: NewSession(a)}
}

// Session exposes the writer's session, mainly so callers can attach
// stats or inspect retention.
func (w *Writer) Session() *Session {
	return w.sess
}

// Write transforms p and pushes the result to the sink. It returns the
// number of bytes of p consumed by the matcher; on error the remaining
// transformed output stays buffered for the next attempt.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	if err := w.flush(); err != nil {
		return 0, err
	}
	consumed := 0
	for consumed < len(p) {
		chunk := p[consumed:]
		if len(chunk) > writerChunkSize {
			chunk = chunk[:writerChunkSize]
		}
		w.out = w.sess.Transform(chunk, w.out)
		consumed += len(chunk)
		if err := w.flush(); err != nil {
			return consumed, err
		}
	}
	return consumed, nil
}

// Close finishes the stream: retained input bytes are released through
// the matcher, all pending output is drained, and the sink is closed if
// it implements io.Closer. Close may be retried after an error. Every
// attempt runs Finish; the first one releases the retained input and
// resets the session, so a retry only drains the output the sink has not
// yet accepted.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.out = w.sess.Finish(w.out)
	if err := w.flush(); err != nil {
		return err
	}
	w.closed = true
	if c, ok := w.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// flush drains the pending-output buffer into the sink, retaining
// whatever the sink does not accept.
func (w *Writer) flush() error {
	for len(w.out) > 0 {
		n, err := w.dst.Write(w.out)
		if n > 0 {
			w.out = append(w.out[:0], w.out[n:]...)
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}
