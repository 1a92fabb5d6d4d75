package ctxtree

import "github.com/jsneyers/go-flif/internal/symbol"

// leafStats accumulates, for the values observed while routed to a given
// leaf, the overall variance and the variance after splitting on each
// candidate property at that property's current range midpoint. Variance
// reduction is used as a proxy for code-length reduction (a tighter
// residual distribution codes shorter under the zero/sign/magnitude
// scheme), avoiding the need to run the full symbol coder just to
// evaluate a candidate split.
type leafStats struct {
	count      int64
	sum, sumSq float64

	splitCount [][2]int64
	splitSum   [][2]float64
	splitSumSq [][2]float64
}

func newLeafStats(numProps int) *leafStats {
	return &leafStats{
		splitCount: make([][2]int64, numProps),
		splitSum:   make([][2]float64, numProps),
		splitSumSq: make([][2]float64, numProps),
	}
}

func (s *leafStats) observe(properties []int, ranges []PropRange, v int) {
	s.count++
	fv := float64(v)
	s.sum += fv
	s.sumSq += fv * fv
	for i, pv := range properties {
		mid := (ranges[i].Min + ranges[i].Max) / 2
		side := 0
		if pv > mid {
			side = 1
		}
		s.splitCount[i][side]++
		s.splitSum[i][side] += fv
		s.splitSumSq[i][side] += fv * fv
	}
}

func variance(count int64, sum, sumSq float64) float64 {
	if count == 0 {
		return 0
	}
	mean := sum / float64(count)
	v := sumSq/float64(count) - mean*mean
	if v < 0 {
		return 0
	}
	return v
}

// splitMargin is the minimum fractional variance reduction a candidate
// split must achieve to be worth the extra leaf (and the extra bits
// needed to serialize the split itself).
const splitMargin = 0.02

// minSplitCount is the minimum observation count required on each side of
// a candidate split before it is trusted.
const minSplitCount = 8

// GrowStep applies, to every current leaf with enough observations, the
// best-scoring candidate split (one per property, evaluated at that
// property's range midpoint at this node), replacing qualifying leaves
// with an inner node and two fresh leaves. Called once per learn-pass
// repeat, so a tree can deepen by one level per repeat.
func (t *Tree) GrowStep() {
	t.growNode(t.Root, t.Ranges)
}

func (t *Tree) growNode(n *Node, ranges []PropRange) {
	if !n.Leaf {
		t.growNode(n.Left, narrow(ranges, n.PropIndex, n.Threshold, true))
		t.growNode(n.Right, narrow(ranges, n.PropIndex, n.Threshold, false))
		return
	}

	s := n.stats
	if s == nil || s.count < minSplitCount*2 {
		return
	}
	totalVar := variance(s.count, s.sum, s.sumSq)
	bestProp := -1
	bestVar := totalVar
	for i := range ranges {
		if ranges[i].Min >= ranges[i].Max {
			continue
		}
		cl, cr := s.splitCount[i][0], s.splitCount[i][1]
		if cl < minSplitCount || cr < minSplitCount {
			continue
		}
		vl := variance(cl, s.splitSum[i][0], s.splitSumSq[i][0])
		vr := variance(cr, s.splitSum[i][1], s.splitSumSq[i][1])
		weighted := (float64(cl)*vl + float64(cr)*vr) / float64(s.count)
		if weighted < bestVar {
			bestVar = weighted
			bestProp = i
		}
	}
	if bestProp < 0 || totalVar <= 0 || (totalVar-bestVar)/totalVar < splitMargin {
		n.stats = nil
		return
	}

	threshold := (ranges[bestProp].Min + ranges[bestProp].Max) / 2
	n.Leaf = false
	n.PropIndex = bestProp
	n.Threshold = threshold
	n.Left = newLeaf(len(ranges), t.factory)
	n.Right = newLeaf(len(ranges), t.factory)
	n.Table = nil
	n.stats = nil
}

// Simplify discards any remaining per-leaf learning statistics and, for
// every leaf, replaces its chance table with a fresh one built from f —
// committing the tree's shape as final while resetting all adaptive
// state so the emit pass starts from the same unbiased priors the
// decoder will also start from.
func (t *Tree) Simplify(f symbol.Factory) {
	t.factory = f
	simplifyNode(t.Root, f)
}

func simplifyNode(n *Node, f symbol.Factory) {
	if n.Leaf {
		n.stats = nil
		n.Table = symbol.NewChanceTable(f)
		return
	}
	simplifyNode(n.Left, f)
	simplifyNode(n.Right, f)
}
