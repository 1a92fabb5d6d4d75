package symbol

import (
	"math/bits"

	"github.com/jsneyers/go-flif/internal/rac"
)

// WriteInt codes v, lo <= v <= hi, against t.
//
// Ranges that don't naturally contain zero (header fields such as
// numPlanes in [1,16]) are handled by shifting v by -lo before recursing;
// the shifted interval [0, hi-lo] trivially satisfies the zero-containing
// precondition the core scheme needs, and its lower bound is never
// negative so the sign step is skipped automatically. This keeps one
// algorithm for both payload residuals (which already satisfy
// lo <= 0 <= hi because the guess is clamped into range before the
// residual is formed) and metadata integers.
func WriteInt(w rac.Writer, t *ChanceTable, lo, hi, v int) {
	if lo == hi {
		return
	}
	if lo > 0 {
		WriteInt(w, t, 0, hi-lo, v-lo)
		return
	}

	isZero := v == 0
	w.Write16(t.Zero.P16(), isZero)
	t.Zero.Update(isZero)
	if isZero {
		return
	}

	hasBothSigns := lo < 0 && hi > 0
	neg := v < 0
	if hasBothSigns {
		w.Write16(t.Sign.P16(), neg)
		t.Sign.Update(neg)
	}

	bound := hi
	if -lo > bound {
		bound = -lo
	}
	n := v
	if neg {
		n = -v
	}
	writeMagnitude(w, t, bound, n)
}

// ReadInt mirrors WriteInt.
func ReadInt(r *rac.Decoder, t *ChanceTable, lo, hi int) int {
	if lo == hi {
		return lo
	}
	if lo > 0 {
		return ReadInt(r, t, 0, hi-lo) + lo
	}

	isZero := r.Read16(t.Zero.P16())
	t.Zero.Update(isZero)
	if isZero {
		return 0
	}

	hasBothSigns := lo < 0 && hi > 0
	neg := false
	if hasBothSigns {
		neg = r.Read16(t.Sign.P16())
		t.Sign.Update(neg)
	} else if hi <= 0 {
		neg = true
	}

	bound := hi
	if -lo > bound {
		bound = -lo
	}
	n := readMagnitude(r, t, bound)
	if neg {
		return -n
	}
	return n
}

func expOf(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}

// writeMagnitude codes n, 1 <= n <= bound: a unary prefix of its exponent
// class (how many bits n needs), then the mantissa bits below the
// implicit leading 1.
func writeMagnitude(w rac.Writer, t *ChanceTable, bound, n int) {
	maxE := expOf(bound)
	e := expOf(n)
	for i := 0; i <= maxE; i++ {
		cont := i < e
		w.Write16(t.Exp[i].P16(), cont)
		t.Exp[i].Update(cont)
		if !cont {
			break
		}
	}
	for i := e - 1; i >= 0; i-- {
		bit := (n>>uint(i))&1 == 1
		w.Write16(t.Mag[i].P16(), bit)
		t.Mag[i].Update(bit)
	}
}

func readMagnitude(r *rac.Decoder, t *ChanceTable, bound int) int {
	maxE := expOf(bound)
	e := 0
	for i := 0; i <= maxE; i++ {
		cont := r.Read16(t.Exp[i].P16())
		t.Exp[i].Update(cont)
		if !cont {
			e = i
			break
		}
		e = i + 1
	}
	n := 1
	for i := e - 1; i >= 0; i-- {
		bit := r.Read16(t.Mag[i].P16())
		t.Mag[i].Update(bit)
		if bit {
			n = (n << 1) | 1
		} else {
			n = n << 1
		}
	}
	return n
}
