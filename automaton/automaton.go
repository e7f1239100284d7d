// Package automaton implements the shared, immutable Aho-Corasick automaton
// that drives streaming search-and-replace.
//
// An Automaton is a trie over the needle patterns extended with failure
// links (longest proper suffix that is itself a prefix of some pattern) and
// dictionary links (nearest payload-bearing proper suffix). Nodes live in a
// flat arena addressed by NodeID, so links are plain indices and the whole
// graph can be shared across any number of concurrent stream sessions
// without synchronization or deep copies.
//
// The automaton is built once by Build and never mutated afterwards. All
// per-stream mutable state (cursor, pending bytes) lives in the stream
// package.
package automaton

// NodeID uniquely identifies a node in the automaton's arena.
// This is a 32-bit unsigned integer for compact link storage.
type NodeID uint32

// Special node constants
const (
	// Root is the arena index of the root node.
	Root NodeID = 0

	// NoNode represents an absent node reference, used for unset
	// dictionary links.
	NoNode NodeID = 0xFFFFFFFF
)

// Payload marks a node whose root path spells a complete needle pattern,
// and records what to emit when the pattern is committed.
type Payload struct {
	// PatternLen is the length of the matched pattern. It always equals
	// the depth of the node carrying the payload.
	PatternLen int

	// Replacement is emitted in place of the matched pattern.
	// Ignored when Elide is set.
	Replacement []byte

	// Elide suppresses all output for the match. The matched bytes are
	// dropped and no suffix of them can seed a new match.
	Elide bool
}

// node is a single vertex of the automaton.
type node struct {
	// edges is the sparse goto table. A nil map means no transitions.
	edges map[byte]NodeID

	// fail points to the node for the longest proper suffix of this
	// node's path that is also a path in the trie. Root for most
	// shallow nodes.
	fail NodeID

	// dict points to the nearest proper suffix of this node's path that
	// carries a payload, or NoNode. Used by batch containment checks;
	// the streaming commit policy never consults it.
	dict NodeID

	// depth is the distance from the root, which equals the length of
	// the matched prefix at this node.
	depth uint32

	pay *Payload
}

// Automaton is the immutable node graph. Safe for concurrent use by any
// number of sessions; a handle copy shares the arena.
type Automaton struct {
	nodes []node

	// rootEdges holds the bytes with a goto edge out of the root, in
	// ascending order. These are the only bytes that can start a match.
	rootEdges []byte

	maxPatternLen int
}

// Goto returns the goto-edge target of id on byte b, if one is defined.
func (a *Automaton) Goto(id NodeID, b byte) (NodeID, bool) {
	next, ok := a.nodes[id].edges[b]
	return next, ok
}

// Fail returns the failure link of id. The root's failure link is the root.
func (a *Automaton) Fail(id NodeID) NodeID {
	return a.nodes[id].fail
}

// Dict returns the dictionary link of id, or NoNode.
func (a *Automaton) Dict(id NodeID) NodeID {
	return a.nodes[id].dict
}

// Depth returns the root distance of id.
func (a *Automaton) Depth(id NodeID) int {
	return int(a.nodes[id].depth)
}

// Payload returns the payload attached to id, or nil.
func (a *Automaton) Payload(id NodeID) *Payload {
	return a.nodes[id].pay
}

// Len returns the number of nodes in the arena, including the root.
func (a *Automaton) Len() int {
	return len(a.nodes)
}

// MaxPatternLen returns the length of the longest needle pattern.
// Zero for an empty needle set.
func (a *Automaton) MaxPatternLen() int {
	return a.maxPatternLen
}

// RootEdges returns the bytes that can start a match, in ascending order.
// Callers must not modify the returned slice.
func (a *Automaton) RootEdges() []byte {
	return a.rootEdges
}

// Contains reports whether any needle pattern occurs anywhere in p.
//
// Unlike the streaming transformer, which commits to one match per descent,
// Contains detects every occurrence by also following dictionary links, so
// it reports true for patterns that the replace policy would pass over.
func (a *Automaton) Contains(p []byte) bool {
	cur := Root
	for _, b := range p {
		for {
			if next, ok := a.nodes[cur].edges[b]; ok {
				cur = next
				break
			}
			if cur == Root {
				break
			}
			cur = a.nodes[cur].fail
		}
		if a.nodes[cur].pay != nil || a.nodes[cur].dict != NoNode {
			return true
		}
	}
	return false
}
