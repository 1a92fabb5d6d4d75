package ctxtree

import (
	"github.com/jsneyers/go-flif/internal/rac"
	"github.com/jsneyers/go-flif/internal/symbol"
)

// WriteLearn routes v through the tree's current shape, recording it into
// the visited leaf's split statistics, and also codes it (through w,
// ordinarily a rac.Dummy) against that leaf's — Simple-backed, during
// learning — chance table. Used by the learn pass.
func (t *Tree) WriteLearn(w rac.Writer, properties []int, lo, hi, v int) {
	leaf := t.Observe(properties, v)
	symbol.WriteInt(w, leaf.Table, lo, hi, v)
}

// WriteFinal routes v through the frozen tree and codes it against the
// owning leaf's chance table. Used by the real emit pass.
func (t *Tree) WriteFinal(w rac.Writer, properties []int, lo, hi, v int) {
	leaf := t.Leaf(properties)
	symbol.WriteInt(w, leaf.Table, lo, hi, v)
}

// ReadFinal mirrors WriteFinal.
func (t *Tree) ReadFinal(r *rac.Decoder, properties []int, lo, hi int) int {
	leaf := t.Leaf(properties)
	return symbol.ReadInt(r, leaf.Table, lo, hi)
}
