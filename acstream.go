// Package acstream provides streaming multi-pattern search-and-replace
// over byte streams, built on an Aho-Corasick automaton.
//
// acstream consumes a byte stream in arbitrarily split chunks and emits
// the same stream with every matched needle substituted by its
// replacement (or dropped entirely for eliding needles). Chunk boundaries
// are invisible: the matcher retains exactly the suffix of consumed input
// that might still participate in a match and releases everything else
// downstream immediately.
//
// Basic usage:
//
//	// Build an automaton (once)
//	a, err := acstream.Build([]acstream.Needle{
//	    acstream.Replace([]byte("cat"), []byte("dog")),
//	    acstream.Elide([]byte("secret")),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Transform a stream
//	if err := a.StreamReplaceAll(src, dst, 0); err != nil {
//	    log.Fatal(err)
//	}
//
// Pull and push adapters wrap standard io endpoints:
//
//	r := a.NewReader(src)          // io.Reader of the transformed stream
//	w := a.NewWriter(dst)          // io.Writer; Close() flushes the tail
//
// Match policy, fixed: the matcher walks the deepest live trie branch
// (longest-branch-wins across overlapping suffixes, so "she" beats "he"
// in "ushers") and commits the first complete pattern reached on that
// descent (shortest-prefix-wins across overlapping prefixes, so "he"
// beats "her" in "hers"). A committed match restarts scanning after the
// matched span; replacement bytes are never rescanned.
//
// An Automaton is immutable and safe for concurrent use: every adapter
// and pump invocation runs its own session over the shared node graph.
package acstream

import (
	"io"

	"github.com/coregx/acstream/automaton"
	"github.com/coregx/acstream/stream"
)

// Needle pairs a pattern with its replacement action.
// Construct with Replace or Elide.
type Needle = automaton.Needle

// Replace returns a needle substituting replacement for every match of
// pattern. An empty replacement deletes matches.
func Replace(pattern, replacement []byte) Needle {
	return Needle{Pattern: pattern, Replacement: replacement}
}

// ReplaceString is Replace for string arguments.
func ReplaceString(pattern, replacement string) Needle {
	return Replace([]byte(pattern), []byte(replacement))
}

// Elide returns a needle that drops every match of pattern from the
// stream. Like an empty replacement it emits nothing; the distinct
// constructor records that suppression, not substitution, is intended.
func Elide(pattern []byte) Needle {
	return Needle{Pattern: pattern, Elide: true}
}

// ElideString is Elide for string arguments.
func ElideString(pattern string) Needle {
	return Elide([]byte(pattern))
}

// Automaton is a compiled, immutable needle set.
//
// All methods are safe for concurrent use. Adapters and pumps created
// from the same Automaton share the node graph but are otherwise
// independent sessions.
type Automaton struct {
	auto  *automaton.Automaton
	stats *stream.Stats
}

// Build compiles a needle set.
//
// Needles with empty patterns and duplicate patterns are rejected with an
// error unwrapping to automaton.ErrEmptyPattern or
// automaton.ErrDuplicatePattern. An empty needle set is valid and yields
// an identity transformer.
//
// Example:
//
//	a, err := acstream.Build([]acstream.Needle{
//	    acstream.ReplaceString("he", "HE"),
//	    acstream.ReplaceString("she", "SHE"),
//	})
func Build(needles []Needle) (*Automaton, error) {
	auto, err := automaton.Build(needles)
	if err != nil {
		return nil, err
	}
	return &Automaton{auto: auto, stats: new(stream.Stats)}, nil
}

// MustBuild is Build for needle sets known to be valid; it panics on a
// build error.
func MustBuild(needles []Needle) *Automaton {
	a, err := Build(needles)
	if err != nil {
		panic("acstream: Build: " + err.Error())
	}
	return a
}

// Clone returns a new handle sharing this automaton's node graph. The
// clone allocates no node storage of its own, only fresh stats, so
// handing independent handles to independent components is cheap.
func (a *Automaton) Clone() *Automaton {
	return &Automaton{auto: a.auto, stats: new(stream.Stats)}
}

// NewReader returns a pull-mode adapter: reads from it yield the
// transformation of src.
func (a *Automaton) NewReader(src io.Reader) *stream.Reader {
	r := stream.NewReader(a.auto, src)
	r.Session().SetStats(a.stats)
	return r
}

// NewWriter returns a push-mode adapter: bytes written to it are
// transformed and pushed to dst. Close it to release the retained tail.
func (a *Automaton) NewWriter(dst io.Writer) *stream.Writer {
	w := stream.NewWriter(a.auto, dst)
	w.Session().SetStats(a.stats)
	return w
}

// StreamReplaceAll copies src to dst through the matcher in chunks of
// bufSize until the source is exhausted, then flushes the retained tail.
// Output is byte-identical for every bufSize; values below 1 select
// stream.DefaultBufferSize. The first I/O error from either endpoint is
// returned.
func (a *Automaton) StreamReplaceAll(src io.Reader, dst io.Writer, bufSize int) error {
	sess := stream.NewSession(a.auto)
	sess.SetStats(a.stats)
	return stream.CopySession(sess, src, dst, bufSize)
}

// ReplaceAll returns the transformation of b as a new slice, the batch
// convenience over the same streaming engine.
func (a *Automaton) ReplaceAll(b []byte) []byte {
	sess := stream.NewSession(a.auto)
	sess.SetStats(a.stats)
	out := sess.Transform(b, make([]byte, 0, len(b)))
	return sess.Finish(out)
}

// ReplaceAllString is ReplaceAll for strings.
func (a *Automaton) ReplaceAllString(s string) string {
	return string(a.ReplaceAll([]byte(s)))
}

// Match reports whether any needle pattern occurs in b.
//
// Match detects every occurrence, including ones the replace policy would
// pass over after committing an overlapping match: it answers "would
// anything change", not "what would change".
func (a *Automaton) Match(b []byte) bool {
	return a.auto.Contains(b)
}

// MatchString is Match for strings.
func (a *Automaton) MatchString(s string) bool {
	return a.auto.Contains([]byte(s))
}

// Stats returns the handle's transformation counters, aggregated across
// all sessions created from it. Clones collect separately.
func (a *Automaton) Stats() *stream.Stats {
	return a.stats
}

// ResetStats zeroes the handle's transformation counters.
func (a *Automaton) ResetStats() {
	a.stats.Reset()
}

// MaxPatternLen returns the length of the longest needle pattern, which
// bounds per-session input retention at MaxPatternLen()-1 bytes.
func (a *Automaton) MaxPatternLen() int {
	return a.auto.MaxPatternLen()
}
