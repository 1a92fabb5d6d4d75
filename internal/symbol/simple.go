package symbol

import "github.com/jsneyers/go-flif/internal/rac"

// SimpleCoder codes integers against one fixed ChanceTable, not keyed by
// any per-pixel property. The file header fields and the checksum halves
// are not coded through it; they use rac.WriteUniformInt.
type SimpleCoder struct {
	table *ChanceTable
}

// NewSimpleCoder returns a SimpleCoder with a fresh, Multiscale-backed
// ChanceTable.
func NewSimpleCoder() *SimpleCoder {
	return &SimpleCoder{table: NewChanceTable(MultiscaleFactory)}
}

// WriteInt codes v in [lo,hi].
func (c *SimpleCoder) WriteInt(w rac.Writer, lo, hi, v int) {
	WriteInt(w, c.table, lo, hi, v)
}

// ReadInt decodes a value in [lo,hi].
func (c *SimpleCoder) ReadInt(r *rac.Decoder, lo, hi int) int {
	return ReadInt(r, c.table, lo, hi)
}
