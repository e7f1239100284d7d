package stream

import (
	"io"

	"github.com/coregx/acstream/automaton"
)

// readerChunkSize is how much raw input one refill pulls from the source.
const readerChunkSize = 32 * 1024

// Reader is the pull-mode adapter: it reads raw bytes from a wrapped
// source and surfaces the transformed stream as an io.Reader.
//
// Source errors are propagated verbatim with the matcher state intact, so
// a read may be retried after a transient failure. Transformed bytes
// staged before the failure are delivered alongside or ahead of the error
// and are never rolled back.
type Reader struct {
	src     io.Reader
	sess    *Session
	scratch []byte

	staged []byte
	pos    int
	done   bool
}

// NewReader returns a Reader transforming src through a fresh session
// over a.
func NewReader(a *automaton.Automaton, src io.Reader) *Reader {
	return &Reader{
		src:     src,
		sess:    NewSession(a),
		scratch: make([]byte, readerChunkSize),
	}
}

// Session exposes the reader's session, mainly so callers can attach
// stats or inspect retention.
func (r *Reader) Session() *Session {
	return r.sess
}

// Read fills p with up to len(p) transformed bytes.
//
// Staged output from an earlier refill is drained first. Otherwise one
// chunk is pulled from the source and pushed through the matcher; source
// EOF finishes the session, releasing any retained bytes, after which
// Read reports io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for r.pos == len(r.staged) {
		if r.done {
			return 0, io.EOF
		}
		r.staged = r.staged[:0]
		r.pos = 0
		n, err := r.src.Read(r.scratch)
		if n > 0 {
			r.staged = r.sess.Transform(r.scratch[:n], r.staged)
		}
		if err == io.EOF {
			r.staged = r.sess.Finish(r.staged)
			r.done = true
			if len(r.staged) == 0 {
				return 0, io.EOF
			}
		} else if err != nil {
			n := copy(p, r.staged)
			r.pos = n
			return n, err
		}
	}
	n := copy(p, r.staged[r.pos:])
	r.pos += n
	return n, nil
}
