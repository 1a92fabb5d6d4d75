package ctxtree

import (
	"github.com/jsneyers/go-flif/internal/bitchance"
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/symbol"
)

// MetaCoder serializes a tree's shape over whatever range coder it is
// given (the codec writes trees inline on its 40-bit payload coder): in
// pre-order, an is-inner bit; if inner, a property index (pure
// uniform — the index has no learnable skew worth modeling) and a
// threshold (adaptive, shared across properties), then both subtrees.
type MetaCoder struct {
	isInner   bitchance.Chance
	threshold *symbol.ChanceTable
}

// NewMetaCoder returns a MetaCoder with fresh adaptive state.
func NewMetaCoder() *MetaCoder {
	return &MetaCoder{
		isInner:   bitchance.NewMultiscale(),
		threshold: symbol.NewChanceTable(symbol.MultiscaleFactory),
	}
}

// WriteTree serializes t's current shape.
func (mc *MetaCoder) WriteTree(w rac.Writer, t *Tree) {
	mc.writeNode(w, t.Root, t.Ranges)
}

func (mc *MetaCoder) writeNode(w rac.Writer, n *Node, ranges []PropRange) {
	inner := !n.Leaf
	w.Write16(mc.isInner.P16(), inner)
	mc.isInner.Update(inner)
	if !inner {
		return
	}
	rac.WriteUniformInt(w, 0, len(ranges)-1, n.PropIndex)
	pr := ranges[n.PropIndex]
	symbol.WriteInt(w, mc.threshold, pr.Min, pr.Max, n.Threshold)
	mc.writeNode(w, n.Left, narrow(ranges, n.PropIndex, n.Threshold, true))
	mc.writeNode(w, n.Right, narrow(ranges, n.PropIndex, n.Threshold, false))
}

// ReadTree deserializes a tree over ranges, whose leaves are built with f
// (ordinarily symbol.MultiscaleFactory, since a deserialized tree is
// always used for the real emit/decode pass).
func (mc *MetaCoder) ReadTree(r *rac.Decoder, ranges []PropRange, f symbol.Factory) *Tree {
	t := &Tree{Ranges: ranges, factory: f}
	t.Root = mc.readNode(r, ranges, f)
	return t
}

func (mc *MetaCoder) readNode(r *rac.Decoder, ranges []PropRange, f symbol.Factory) *Node {
	inner := r.Read16(mc.isInner.P16())
	mc.isInner.Update(inner)
	if !inner {
		return newLeaf(len(ranges), f)
	}
	propIndex := rac.ReadUniformInt(r, 0, len(ranges)-1)
	pr := ranges[propIndex]
	threshold := symbol.ReadInt(r, mc.threshold, pr.Min, pr.Max)
	n := &Node{
		Leaf:      false,
		PropIndex: propIndex,
		Threshold: threshold,
		Left:      mc.readNode(r, narrow(ranges, propIndex, threshold, true), f),
		Right:     nil,
	}
	n.Right = mc.readNode(r, narrow(ranges, propIndex, threshold, false), f)
	return n
}
