package stream

import "sync/atomic"

// Stats collects transformation counters across all sessions attached to
// it. All methods are safe for concurrent use; sessions flush their
// counts at chunk granularity, so readings lag in-flight chunks.
type Stats struct {
	inputBytes  atomic.Uint64
	outputBytes atomic.Uint64
	matches     atomic.Uint64
}

// InputBytes returns the total number of source bytes consumed.
func (s *Stats) InputBytes() uint64 { return s.inputBytes.Load() }

// OutputBytes returns the total number of transformed bytes produced.
func (s *Stats) OutputBytes() uint64 { return s.outputBytes.Load() }

// Matches returns the total number of committed matches.
func (s *Stats) Matches() uint64 { return s.matches.Load() }

// Reset zeroes all counters.
func (s *Stats) Reset() {
	s.inputBytes.Store(0)
	s.outputBytes.Store(0)
	s.matches.Store(0)
}

func (s *Stats) record(in, out, matches uint64) {
	if in > 0 {
		s.inputBytes.Add(in)
	}
	if out > 0 {
		s.outputBytes.Add(out)
	}
	if matches > 0 {
		s.matches.Add(matches)
	}
}
