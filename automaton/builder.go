package automaton

import "sort"

// Needle pairs a pattern with the action to take when it matches.
// Construct needles with the acstream package's Replace and Elide helpers.
type Needle struct {
	// Pattern is the byte sequence to find. Must be non-empty.
	Pattern []byte

	// Replacement is emitted in place of Pattern. May be empty.
	// Ignored when Elide is set.
	Replacement []byte

	// Elide drops the matched bytes without emitting anything.
	Elide bool
}

// Build constructs the automaton for the given needle set.
//
// Construction happens in two phases. Phase one inserts every pattern into
// the trie and attaches its payload at the terminal node. Phase two walks
// the trie breadth-first and computes failure and dictionary links, so
// every link points to a node of strictly smaller depth.
//
// An empty needle set is valid and yields an identity transformer.
// An empty pattern or a duplicate pattern is rejected with a *BuildError
// wrapping ErrEmptyPattern or ErrDuplicatePattern.
func Build(needles []Needle) (*Automaton, error) {
	// Seed the arena with the root. Pattern bytes give an upper bound on
	// the node count.
	capHint := 1
	for _, nd := range needles {
		capHint += len(nd.Pattern)
	}
	a := &Automaton{nodes: make([]node, 1, capHint)}
	a.nodes[Root] = node{fail: Root, dict: NoNode}

	for i, nd := range needles {
		if len(nd.Pattern) == 0 {
			return nil, &BuildError{Index: i, Err: ErrEmptyPattern}
		}
		cur := Root
		for _, b := range nd.Pattern {
			next, ok := a.nodes[cur].edges[b]
			if !ok {
				next = NodeID(len(a.nodes))
				a.nodes = append(a.nodes, node{
					fail:  Root,
					dict:  NoNode,
					depth: a.nodes[cur].depth + 1,
				})
				if a.nodes[cur].edges == nil {
					a.nodes[cur].edges = make(map[byte]NodeID)
				}
				a.nodes[cur].edges[b] = next
			}
			cur = next
		}
		if a.nodes[cur].pay != nil {
			return nil, &BuildError{Index: i, Pattern: nd.Pattern, Err: ErrDuplicatePattern}
		}
		a.nodes[cur].pay = &Payload{
			PatternLen:  len(nd.Pattern),
			Replacement: append([]byte(nil), nd.Replacement...),
			Elide:       nd.Elide,
		}
		if len(nd.Pattern) > a.maxPatternLen {
			a.maxPatternLen = len(nd.Pattern)
		}
	}

	a.linkFailures()

	a.rootEdges = make([]byte, 0, len(a.nodes[Root].edges))
	for b := range a.nodes[Root].edges {
		a.rootEdges = append(a.rootEdges, b)
	}
	sort.Slice(a.rootEdges, func(i, j int) bool { return a.rootEdges[i] < a.rootEdges[j] })

	return a, nil
}

// linkFailures computes failure and dictionary links breadth-first.
//
// The root fails to itself and direct children of the root fail to the
// root. For a deeper node v reached from u on byte b, the failure target
// is found by walking u's failure chain until a node with a b-edge turns
// up, falling back to the root. The dictionary link of v is its failure
// target when that target carries a payload, else the target's own
// dictionary link; failure targets have strictly smaller depth, so the
// queue order guarantees they are fully linked before v needs them.
func (a *Automaton) linkFailures() {
	queue := make([]NodeID, 0, len(a.nodes)-1)
	for _, child := range a.nodes[Root].edges {
		queue = append(queue, child)
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for b, v := range a.nodes[u].edges {
			f := a.nodes[u].fail
			target := Root
			for {
				if next, ok := a.nodes[f].edges[b]; ok {
					target = next
					break
				}
				if f == Root {
					break
				}
				f = a.nodes[f].fail
			}
			a.nodes[v].fail = target
			if a.nodes[target].pay != nil {
				a.nodes[v].dict = target
			} else {
				a.nodes[v].dict = a.nodes[target].dict
			}
			queue = append(queue, v)
		}
	}
}
