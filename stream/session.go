// Package stream drives an automaton over chunked byte streams.
//
// The core is Session, a pure synchronous transformer: one byte in, zero
// or more bytes out, with a well-defined policy for releasing prefix bytes
// that can no longer participate in a match while retaining the minimal
// suffix that still might. Reader, Writer and Copy wrap a Session behind
// the standard io contracts; they decide when bytes are supplied and when
// output is delivered, never how matching works.
package stream

import (
	"github.com/coregx/acstream/automaton"
	"github.com/coregx/acstream/internal/bytescan"
)

// Session is one independent transformation in progress. It owns the only
// mutable state of a stream: the cursor node and the pending buffer
// holding the bytes on the root path to the cursor (so the buffer length
// always equals the cursor depth). The automaton itself is shared and
// never written.
//
// A Session is not safe for concurrent use; create one per stream.
type Session struct {
	a       *automaton.Automaton
	scan    bytescan.Scanner
	cur     automaton.NodeID
	pending []byte

	stats   *Stats
	matches uint64 // commits since the last stats flush
}

// NewSession creates a fresh session over a.
func NewSession(a *automaton.Automaton) *Session {
	pendingCap := a.MaxPatternLen()
	if pendingCap == 0 {
		pendingCap = 1
	}
	return &Session{
		a:       a,
		scan:    bytescan.NewScanner(a.RootEdges()),
		cur:     automaton.Root,
		pending: make([]byte, 0, pendingCap),
	}
}

// SetStats attaches a stats collector. Counters are flushed to it at
// Transform and Finish granularity. A nil collector disables recording.
func (s *Session) SetStats(st *Stats) {
	s.stats = st
}

// Pending returns the number of retained input bytes. Never exceeds the
// longest pattern length minus one between steps.
func (s *Session) Pending() int {
	return len(s.pending)
}

// Reset returns the session to its initial state: cursor at the root,
// nothing pending. The retained bytes are discarded, not emitted; use
// Finish to release them.
func (s *Session) Reset() {
	s.cur = automaton.Root
	s.pending = s.pending[:0]
}

// Step feeds one input byte through the automaton and appends any output
// bytes to out, returning the extended slice.
//
// While the cursor has no goto edge for b, the failure link is followed.
// Each failure transition from depth d to depth d' releases the first
// d−d' pending bytes: the failure link retains exactly the longest suffix
// that is still a viable match prefix, so everything in front of it is
// known to start no match and is safe to emit. A goto move appends b to
// the pending buffer; landing on a payload node commits the match at once
// (shortest-prefix-wins): the replacement is emitted — or nothing, for an
// eliding needle — and the cursor restarts at the root, so neither
// replacement bytes nor any suffix of the matched span are rescanned.
func (s *Session) Step(b byte, out []byte) []byte {
	for {
		if next, ok := s.a.Goto(s.cur, b); ok {
			s.cur = next
			s.pending = append(s.pending, b)
			if pay := s.a.Payload(next); pay != nil {
				if !pay.Elide {
					out = append(out, pay.Replacement...)
				}
				s.cur = automaton.Root
				s.pending = s.pending[:0]
				s.matches++
			}
			return out
		}
		if s.cur == automaton.Root {
			return append(out, b)
		}
		fail := s.a.Fail(s.cur)
		release := len(s.pending) - s.a.Depth(fail)
		out = append(out, s.pending[:release]...)
		s.pending = append(s.pending[:0], s.pending[release:]...)
		s.cur = fail
	}
}

// Transform feeds a whole chunk through Step and appends the output to
// out. Chunk boundaries are invisible to the matcher: any split of the
// input into Transform calls produces identical output.
//
// While the cursor is at the root, input up to the next byte with a root
// goto edge cannot start a match and is released in one copy.
func (s *Session) Transform(p, out []byte) []byte {
	base := len(out)
	i := 0
	for i < len(p) {
		if s.cur == automaton.Root {
			j := s.scan.Index(p[i:])
			if j < 0 {
				out = append(out, p[i:]...)
				i = len(p)
				break
			}
			out = append(out, p[i:i+j]...)
			i += j
		}
		out = s.Step(p[i], out)
		i++
	}
	s.flushStats(len(p), len(out)-base)
	return out
}

// Finish ends the input stream: the pending bytes were retained only for
// potential match extension, so with no byte left to extend them they are
// released verbatim. The session is reset and may be reused.
func (s *Session) Finish(out []byte) []byte {
	base := len(out)
	out = append(out, s.pending...)
	s.Reset()
	s.flushStats(0, len(out)-base)
	return out
}

func (s *Session) flushStats(in, outn int) {
	if s.stats == nil {
		s.matches = 0
		return
	}
	s.stats.record(uint64(in), uint64(outn), s.matches)
	s.matches = 0
}
