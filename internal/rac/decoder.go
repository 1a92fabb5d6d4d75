package rac

import "io"

// byteSource reads single bytes from r, silently returning 0 past EOF.
// This is what lets a truncated stream still decode: once the underlying
// reader is exhausted, every further bit reads as if the coder's state
// continued with zero bytes, which is exactly the degraded-but-plausible
// continuation a lossy truncated decode wants.
type byteSource struct {
	r       io.Reader
	buf     [1]byte
	overrun int // zero bytes synthesized past EOF
}

func (s *byteSource) next() byte {
	n, err := s.r.Read(s.buf[:])
	if n == 0 || err != nil {
		s.overrun++
		return 0
	}
	return s.buf[0]
}

// Decoder is the mirror of Encoder: same range/low arithmetic, no carry
// bookkeeping (only the writer side needs to resolve carries ahead of
// knowing future bits).
type Decoder struct {
	cfg Config
	src *byteSource

	rng uint64
	low uint64
}

// NewDecoder returns a Decoder reading from r under cfg, after priming low
// with the coder's initial window of MaxRangeBits/8 bytes.
func NewDecoder(r io.Reader, cfg Config) *Decoder {
	d := &Decoder{cfg: cfg, src: &byteSource{r: r}, rng: cfg.BaseRange}
	for i := uint(0); i < cfg.MaxRangeBits/8; i++ {
		d.low = (d.low << 8) | uint64(d.src.next())
	}
	return d
}

// Get decodes one bit under an absolute chance, mirroring Encoder.Put.
func (d *Decoder) Get(chance uint64) bool {
	bit := d.low >= d.rng-chance
	if bit {
		d.low -= d.rng - chance
		d.rng = chance
	} else {
		d.rng -= chance
	}
	for d.rng <= d.cfg.MinRange {
		d.low = ((d.low & (d.cfg.MinRange - 1)) << 8) | uint64(d.src.next())
		d.rng <<= 8
	}
	return bit
}

// Read16 mirrors Encoder.Write16.
func (d *Decoder) Read16(b16 uint16) bool {
	chance := (d.rng*uint64(b16) + 0x8000) >> 16
	return d.Get(clampChance(chance, d.rng))
}

// ReadFrac mirrors Encoder.WriteFrac.
func (d *Decoder) ReadFrac(num, denom int) bool {
	chance := (d.rng*uint64(num) + uint64(denom)/2) / uint64(denom)
	return d.Get(clampChance(chance, d.rng))
}

// ReadUniformBit mirrors Encoder.WriteUniformBit.
func (d *Decoder) ReadUniformBit() bool {
	return d.Get(d.rng / 2)
}

// Truncated reports whether any decoded bit was synthesized from the
// silent zero-fill rather than real coded data. The decoder reads ahead
// of the bits it has decoded, so even a complete stream, once decoded to
// its end, has had MaxRangeBits/8-2 zero bytes synthesized past EOF;
// only an overrun beyond that counts as truncation.
func (d *Decoder) Truncated() bool {
	return d.src.overrun > int(d.cfg.MaxRangeBits/8)-2
}
