package rac

import "io"

// Writer is satisfied by both Encoder and Dummy, letting the symbol coders
// run an identical code path during the tree-learning pass (against Dummy,
// which discards bytes but still drives the bit-chance updates) and the
// real emit pass (against an Encoder).
type Writer interface {
	Write16(b16 uint16, bit bool)
	WriteFrac(num, denom int, bit bool)
	WriteUniformBit(bit bool)
}

// Encoder is a carry-propagating binary arithmetic coder. Carry resolution
// follows the classic delayed-byte scheme: at most one byte is held back
// pending knowledge of whether a future carry will bump it, plus a run
// count of bytes whose value (0xFF or 0x00) depends on that same carry.
type Encoder struct {
	cfg Config
	w   io.Writer

	rng uint64
	low uint64

	delayedByte  int // -1 means nothing pending yet
	delayedCount int64

	err error
}

// NewEncoder returns an Encoder writing to w under cfg.
func NewEncoder(w io.Writer, cfg Config) *Encoder {
	return &Encoder{cfg: cfg, w: w, rng: cfg.BaseRange, delayedByte: -1}
}

// Err returns the first underlying write error encountered, if any. Every
// subsequent write is a no-op once an error has occurred.
func (e *Encoder) Err() error {
	return e.err
}

// Put codes bit under an absolute chance, 0 < chance < current range.
func (e *Encoder) Put(chance uint64, bit bool) {
	if bit {
		e.low += e.rng - chance
		e.rng = chance
	} else {
		e.rng -= chance
	}
	for e.rng <= e.cfg.MinRange {
		e.output()
		e.low = (e.low & (e.cfg.MinRange - 1)) << 8
		e.rng <<= 8
	}
}

// Write16 codes bit under a 16-bit fixed-point chance (as produced by a
// bit-chance model's P16).
func (e *Encoder) Write16(b16 uint16, bit bool) {
	chance := (e.rng*uint64(b16) + 0x8000) >> 16
	e.Put(clampChance(chance, e.rng), bit)
}

// WriteFrac codes bit with chance num/denom of being true.
func (e *Encoder) WriteFrac(num, denom int, bit bool) {
	chance := (e.rng*uint64(num) + uint64(denom)/2) / uint64(denom)
	e.Put(clampChance(chance, e.rng), bit)
}

// WriteUniformBit codes bit at chance 1/2, with no adaptive state.
func (e *Encoder) WriteUniformBit(bit bool) {
	e.Put(e.rng/2, bit)
}

// output resolves one normalization step's worth of carry ambiguity.
// low is examined against the current byte-granular window: values below
// the window guarantee no future carry can reach this byte; values at or
// above BaseRange mean a carry already happened; values in between are
// still ambiguous and are folded into the pending run.
func (e *Encoder) output() {
	noCarryBoundary := e.cfg.BaseRange - e.cfg.MinRange
	switch {
	case e.low < noCarryBoundary:
		e.flushRun(0)
	case e.low >= e.cfg.BaseRange:
		e.flushRun(1)
	default:
		e.delayedCount++
		return
	}
}

func (e *Encoder) flushRun(carry byte) {
	if e.delayedByte >= 0 {
		e.writeByte(byte(e.delayedByte) + carry)
	}
	fill := byte(0xFF)
	if carry == 1 {
		fill = 0x00
	}
	for ; e.delayedCount > 0; e.delayedCount-- {
		e.writeByte(fill)
	}
	e.delayedByte = int((e.low >> e.cfg.MinRangeBits) & 0xFF)
}

func (e *Encoder) writeByte(b byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write([]byte{b})
}

// Flush drains all pending coder state so the decoder can recover every
// coded bit: it moves low up by MinRange-1 once, then runs two forced
// normalizations with range at its minimal ambiguous value (enough to
// resolve any outstanding carry run) before writing the final pending
// byte and run.
func (e *Encoder) Flush() error {
	e.low += e.cfg.MinRange - 1
	for i := 0; i < 2; i++ {
		e.rng = e.cfg.MinRange - 1
		e.output()
		e.low = (e.low & (e.cfg.MinRange - 1)) << 8
	}
	if e.delayedByte >= 0 {
		e.writeByte(byte(e.delayedByte))
		e.delayedByte = -1
	}
	for ; e.delayedCount > 0; e.delayedCount-- {
		e.writeByte(0xFF)
	}
	return e.err
}
