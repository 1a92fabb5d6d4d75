// Package symbol encodes bounded signed integers — pixel residuals, header
// fields, tree thresholds — as a zero bit, an optional sign bit, a unary
// exponent prefix, and binary magnitude bits, each routed through its own
// adaptive bit-chance context.
package symbol

import "github.com/jsneyers/go-flif/internal/bitchance"

// maxBits bounds the unary/magnitude role arrays, so WriteInt/ReadInt
// handle magnitudes below 1<<maxBits; nothing in the codec checks plane
// ranges against this limit.
const maxBits = 20

// Factory builds one fresh bit-chance estimator. Use MultiscaleFactory for
// payload and tree-metadata contexts; use SimpleFactory for the
// throwaway contexts a tree's learn pass uses to estimate split quality.
type Factory func() bitchance.Chance

// MultiscaleFactory builds bitchance.Multiscale estimators.
func MultiscaleFactory() bitchance.Chance { return bitchance.NewMultiscale() }

// SimpleFactory builds bitchance.Simple estimators at a moderate, general
// purpose adaptation rate — cheap enough to discard after every
// tree-learning repeat.
func SimpleFactory() bitchance.Chance { return bitchance.NewSimple(5) }

// ChanceTable holds one bit-chance model per coded role: "is zero", sign,
// one per unary-exponent position, one per binary-magnitude position.
// SimpleCoder keeps a single ChanceTable for every value it ever codes;
// package ctxtree gives every tree leaf
// its own ChanceTable so the model can depend on local pixel context
// instead of being shared globally.
type ChanceTable struct {
	Zero bitchance.Chance
	Sign bitchance.Chance
	Exp  [maxBits]bitchance.Chance
	Mag  [maxBits]bitchance.Chance
}

// NewChanceTable returns a ChanceTable with every role built from f.
func NewChanceTable(f Factory) *ChanceTable {
	t := &ChanceTable{Zero: f(), Sign: f()}
	for i := range t.Exp {
		t.Exp[i] = f()
	}
	for i := range t.Mag {
		t.Mag[i] = f()
	}
	return t
}
