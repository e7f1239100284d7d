package stream

import (
	"io"

	"github.com/coregx/acstream/automaton"
)

// DefaultBufferSize is the read chunk size used by Copy when the caller
// does not choose one.
const DefaultBufferSize = 32 * 1024

// Copy pulls raw bytes from src in chunks of bufSize, transforms them
// through a fresh session over a, and pushes the output to dst until the
// source is exhausted. Source EOF finishes the session before the final
// flush. The first I/O error from either endpoint is returned; bufSize
// values below 1 select DefaultBufferSize.
func Copy(a *automaton.Automaton, src io.Reader, dst io.Writer, bufSize int) error {
	sess := NewSession(a)
	return CopySession(sess, src, dst, bufSize)
}

// CopySession is Copy over a caller-supplied session, so the caller can
// attach stats beforehand. Source EOF still finishes the session; a reused
// session starts the next copy fresh.
func CopySession(sess *Session, src io.Reader, dst io.Writer, bufSize int) error {
	if bufSize < 1 {
		bufSize = DefaultBufferSize
	}
	buf := make([]byte, bufSize)
	var out []byte
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			out = sess.Transform(buf[:n], out[:0])
			if err := writeAll(dst, out); err != nil {
				return err
			}
		}
		if rerr == io.EOF {
			out = sess.Finish(out[:0])
			return writeAll(dst, out)
		}
		if rerr != nil {
			return rerr
		}
	}
}

func writeAll(dst io.Writer, p []byte) error {
	for len(p) > 0 {
		n, err := dst.Write(p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
