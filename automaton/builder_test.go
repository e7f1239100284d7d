package automaton

import (
	"errors"
	"testing"
)

func mustBuild(t *testing.T, needles []Needle) *Automaton {
	t.Helper()
	a, err := Build(needles)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return a
}

func replace(pattern, replacement string) Needle {
	return Needle{Pattern: []byte(pattern), Replacement: []byte(replacement)}
}

func TestBuildEmptyNeedleSet(t *testing.T) {
	a := mustBuild(t, nil)
	if a.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (root only)", a.Len())
	}
	if a.MaxPatternLen() != 0 {
		t.Errorf("MaxPatternLen() = %d, want 0", a.MaxPatternLen())
	}
	if len(a.RootEdges()) != 0 {
		t.Errorf("RootEdges() = %v, want none", a.RootEdges())
	}
}

func TestBuildStructuralInvariants(t *testing.T) {
	a := mustBuild(t, []Needle{
		replace("he", "HE"),
		replace("she", "SHE"),
		replace("his", "HIS"),
		replace("hers", "HERS"),
	})

	if a.Depth(Root) != 0 {
		t.Errorf("root depth = %d, want 0", a.Depth(Root))
	}
	if a.Payload(Root) != nil {
		t.Error("root has a payload")
	}
	if a.Fail(Root) != Root {
		t.Errorf("root failure link = %d, want root", a.Fail(Root))
	}

	// Walk every node reachable over goto edges.
	seen := map[NodeID]bool{Root: true}
	queue := []NodeID{Root}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for b, v := range a.nodes[u].edges {
			if seen[v] {
				t.Fatalf("node %d reached twice over goto edges", v)
			}
			seen[v] = true
			queue = append(queue, v)

			if got, want := a.Depth(v), a.Depth(u)+1; got != want {
				t.Errorf("goto(%d, %q) target depth = %d, want %d", u, b, got, want)
			}
			if f := a.Fail(v); a.Depth(f) >= a.Depth(v) {
				t.Errorf("failure link of node %d does not decrease depth: %d -> %d",
					v, a.Depth(v), a.Depth(f))
			}
			if pay := a.Payload(v); pay != nil && pay.PatternLen != a.Depth(v) {
				t.Errorf("payload at node %d: PatternLen = %d, want depth %d",
					v, pay.PatternLen, a.Depth(v))
			}
			if d := a.Dict(v); d != NoNode && a.Payload(d) == nil {
				t.Errorf("dictionary link of node %d points to payload-free node %d", v, d)
			}
		}
	}
	if len(seen) != a.Len() {
		t.Errorf("reached %d nodes over goto edges, arena holds %d", len(seen), a.Len())
	}
}

func TestBuildFailureLinks(t *testing.T) {
	a := mustBuild(t, []Needle{
		replace("he", "1"),
		replace("she", "2"),
		replace("hers", "3"),
	})

	walk := func(path string) NodeID {
		cur := Root
		for i := 0; i < len(path); i++ {
			next, ok := a.Goto(cur, path[i])
			if !ok {
				t.Fatalf("no path for %q at byte %d", path, i)
			}
			cur = next
		}
		return cur
	}

	// failure("she") is the longest proper suffix that is a trie path.
	if got, want := a.Fail(walk("she")), walk("he"); got != want {
		t.Errorf("failure(she) = node %d, want node %d (he)", got, want)
	}
	if got, want := a.Fail(walk("sh")), walk("h"); got != want {
		t.Errorf("failure(sh) = node %d, want node %d (h)", got, want)
	}
	if got, want := a.Fail(walk("hers")), walk("s"); got != want {
		t.Errorf("failure(hers) = node %d, want node %d (s)", got, want)
	}
	if got := a.Fail(walk("h")); got != Root {
		t.Errorf("failure(h) = node %d, want root", got)
	}

	// dict("she") shortcuts to the "he" payload; "hers" has no
	// payload-bearing suffix.
	if got, want := a.Dict(walk("she")), walk("he"); got != want {
		t.Errorf("dict(she) = node %d, want node %d (he)", got, want)
	}
	if got := a.Dict(walk("hers")); got != NoNode {
		t.Errorf("dict(hers) = node %d, want NoNode", got)
	}
}

func TestBuildRootEdges(t *testing.T) {
	a := mustBuild(t, []Needle{
		replace("she", ""),
		replace("he", ""),
		replace("his", ""),
		replace("abc", ""),
	})
	got := a.RootEdges()
	want := []byte{'a', 'h', 's'}
	if string(got) != string(want) {
		t.Errorf("RootEdges() = %q, want %q", got, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		needles []Needle
		wantErr error
		wantIdx int
	}{
		{
			name:    "empty pattern",
			needles: []Needle{replace("ok", "x"), replace("", "y")},
			wantErr: ErrEmptyPattern,
			wantIdx: 1,
		},
		{
			name:    "duplicate pattern",
			needles: []Needle{replace("dup", "x"), replace("other", "y"), replace("dup", "z")},
			wantErr: ErrDuplicatePattern,
			wantIdx: 2,
		},
		{
			name:    "duplicate across actions",
			needles: []Needle{replace("dup", "x"), {Pattern: []byte("dup"), Elide: true}},
			wantErr: ErrDuplicatePattern,
			wantIdx: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.needles)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build error = %v, want %v", err, tt.wantErr)
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("Build error %v is not a *BuildError", err)
			}
			if be.Index != tt.wantIdx {
				t.Errorf("BuildError.Index = %d, want %d", be.Index, tt.wantIdx)
			}
		})
	}
}

func TestBuildCopiesReplacement(t *testing.T) {
	repl := []byte("XY")
	a := mustBuild(t, []Needle{{Pattern: []byte("ab"), Replacement: repl}})
	repl[0] = '!'

	id, _ := a.Goto(Root, 'a')
	id, _ = a.Goto(id, 'b')
	if got := string(a.Payload(id).Replacement); got != "XY" {
		t.Errorf("payload aliases caller slice: replacement = %q, want %q", got, "XY")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		input    string
		want     bool
	}{
		{"suffix needle", []string{"he", "she", "his", "hers"}, "ushers", true},
		{"no needle", []string{"he", "she"}, "usx", false},
		{"mid-haystack", []string{"abc"}, "xxabcxx", true},
		{"needle split by overlap", []string{"abcd", "bc"}, "abcx", true},
		{"empty haystack", []string{"abc"}, "", false},
		{"needle at end", []string{"end"}, "the end", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			needles := make([]Needle, len(tt.patterns))
			for i, p := range tt.patterns {
				needles[i] = replace(p, "")
			}
			a := mustBuild(t, needles)
			if got := a.Contains([]byte(tt.input)); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
