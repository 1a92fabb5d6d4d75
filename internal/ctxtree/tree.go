// Package ctxtree implements the per-plane context tree ("forest"): a
// binary decision tree over a pixel's property vector whose leaves own
// the bit-chance state the symbol coder reads and updates. The tree is
// grown during a cheap learn pass (Simple bit-chance, no bytes emitted),
// frozen, serialized, then used read-only — with fresh Multiscale
// bit-chance state — during the real emit pass.
package ctxtree

import "github.com/jsneyers/go-flif/internal/symbol"

// PropRange is the admissible [Min,Max] of one property, used both to
// initialize a tree and as the split-candidate domain during learning.
type PropRange struct {
	Min, Max int
}

// Node is either an inner split or a leaf owning chance state.
type Node struct {
	Leaf  bool
	Table *symbol.ChanceTable

	PropIndex int
	Threshold int
	Left      *Node
	Right     *Node

	stats *leafStats
}

func newLeaf(numProps int, f symbol.Factory) *Node {
	return &Node{Leaf: true, Table: symbol.NewChanceTable(f), stats: newLeafStats(numProps)}
}

// Tree is one plane's context tree together with the property ranges it
// was initialized with.
type Tree struct {
	Root    *Node
	Ranges  []PropRange
	factory symbol.Factory
}

// NewTree returns a single-leaf tree over the given property ranges,
// whose leaves are built with f (symbol.SimpleFactory during learning,
// symbol.MultiscaleFactory for the final frozen tree).
func NewTree(ranges []PropRange, f symbol.Factory) *Tree {
	return &Tree{Root: newLeaf(len(ranges), f), Ranges: ranges, factory: f}
}

// Leaf walks properties down to the owning leaf without recording an
// observation. Used by the final (frozen) coder.
func (t *Tree) Leaf(properties []int) *Node {
	n := t.Root
	for !n.Leaf {
		if properties[n.PropIndex] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n
}

// Observe walks properties down to the owning leaf, recording v into its
// learn-time split statistics, and returns that leaf. Used by the
// learning coder.
func (t *Tree) Observe(properties []int, v int) *Node {
	n := t.Root
	ranges := t.Ranges
	for !n.Leaf {
		goLeft := properties[n.PropIndex] <= n.Threshold
		ranges = narrow(ranges, n.PropIndex, n.Threshold, goLeft)
		if goLeft {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	if n.stats != nil {
		n.stats.observe(properties, ranges, v)
	}
	return n
}

func narrow(ranges []PropRange, idx, threshold int, left bool) []PropRange {
	out := make([]PropRange, len(ranges))
	copy(out, ranges)
	if left {
		if threshold < out[idx].Max {
			out[idx].Max = threshold
		}
	} else if threshold+1 > out[idx].Min {
		out[idx].Min = threshold + 1
	}
	return out
}
