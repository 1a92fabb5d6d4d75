// Package bitchance implements the adaptive probability estimators that
// feed the range coder (internal/rac). Every bit the codec writes or
// reads — pixel residual bits, tree-structure bits, header bits — is
// routed through one of these.
package bitchance

// pscale is the fixed-point precision of a chance: P16 returns a value in
// [1, pscale-1], never 0 or pscale, so the range coder always has
// positive probability mass on both outcomes.
const pscale = 1 << 16

// Chance is satisfied by both Simple and Multiscale. Contexts that are
// only ever used during the cheap tree-learning pass take a Simple;
// contexts used for the real payload and tree metadata take a
// Multiscale — the same split the reference design draws between
// its "Pass1" and "Pass2/Meta/Tree" bit-chance types.
type Chance interface {
	P16() uint16
	Update(bit bool)
}

// Simple is a single adaptive probability estimate for "next bit is 1",
// updated by moving a fixed fraction of the way toward the observed bit.
type Simple struct {
	p     uint32 // current chance scaled to [1, pscale-1]
	shift uint   // learning rate: larger shift = slower, steadier adaptation
}

// NewSimple returns a Simple estimator starting at chance 1/2 with the
// given adaptation shift (typical range 4-7; smaller adapts faster).
func NewSimple(shift uint) *Simple {
	return &Simple{p: pscale / 2, shift: shift}
}

// P16 returns the current 16-bit chance of the next bit being 1.
func (s *Simple) P16() uint16 {
	return uint16(s.p)
}

// Update adjusts the estimate toward the observed bit.
func (s *Simple) Update(bit bool) {
	if bit {
		s.p += (pscale - s.p) >> s.shift
	} else {
		s.p -= s.p >> s.shift
	}
	if s.p < 1 {
		s.p = 1
	}
	if s.p > pscale-1 {
		s.p = pscale - 1
	}
}

// NumScales is the number of component estimators a Multiscale runs.
const NumScales = 6

// multiscaleShifts spans fast-adapting (noisy, reacts quickly to local
// runs) to slow-adapting (stable, reflects the long-run bit frequency).
var multiscaleShifts = [NumScales]uint{2, 3, 4, 6, 8, 10}

// Multiscale runs NumScales Simple estimators at different learning rates
// and tracks, via a decayed estimate of each scale's recent miscoding
// cost, which one has been predicting best lately; P16 always returns
// that scale's estimate. All scales observe and update on every bit
// regardless of which is currently selected, so a scale that falls behind
// (e.g. during a locally noisy run) can still recover and be reselected
// once the local statistics favor it again.
type Multiscale struct {
	scales [NumScales]*Simple
	cost   [NumScales]uint32
	best   int
}

// NewMultiscale returns a Multiscale estimator with all scales at 1/2.
func NewMultiscale() *Multiscale {
	m := &Multiscale{}
	for i := range m.scales {
		m.scales[i] = NewSimple(multiscaleShifts[i])
	}
	return m
}

// P16 returns the current best scale's chance.
func (m *Multiscale) P16() uint16 {
	return m.scales[m.best].P16()
}

// Update feeds the observed bit to every scale, then re-evaluates which
// scale has the lowest decayed miscoding cost. Cost is a squared-error
// proxy for -log2(p): a scale that confidently predicted the observed bit
// accrues near-zero cost, one that confidently predicted the other bit
// accrues cost near the maximum.
func (m *Multiscale) Update(bit bool) {
	for i, s := range m.scales {
		p := uint32(s.P16())
		var miss uint32
		if bit {
			miss = pscale - p
		} else {
			miss = p
		}
		err := (miss * miss) >> 16 // in [0, pscale]
		// exponential decay: new cost = old*3/4 + err/4
		m.cost[i] = (m.cost[i]*3 + err) >> 2
		s.Update(bit)
	}
	best := 0
	for i := 1; i < NumScales; i++ {
		if m.cost[i] < m.cost[best] {
			best = i
		}
	}
	m.best = best
}
