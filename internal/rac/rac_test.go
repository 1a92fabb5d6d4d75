package rac

import (
	"bytes"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		bits   []bool
		chance uint64 // absolute chance out of cfg.BaseRange, rescaled per Put
	}{
		{"rc24 mostly zero", Config24, []bool{false, false, false, true, false, false, false, false}, 0},
		{"rc40 mostly one", Config40, []bool{true, true, true, false, true, true, true, true}, 0},
		{"rc40 alternating", Config40, []bool{true, false, true, false, true, false, true, false}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, tc.cfg)
			for _, b := range tc.bits {
				enc.Write16(16384, b) // chance 0.25 of true, fixed
			}
			if err := enc.Flush(); err != nil {
				t.Fatalf("flush: %v", err)
			}

			dec := NewDecoder(bytes.NewReader(buf.Bytes()), tc.cfg)
			for i, want := range tc.bits {
				got := dec.Read16(16384)
				if got != want {
					t.Fatalf("bit %d: got %v want %v", i, got, want)
				}
			}
		})
	}
}

func TestWriteFracRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config40)
	bits := []struct {
		num, denom int
		bit        bool
	}{
		{1, 3, true}, {2, 3, false}, {1, 2, true}, {7, 8, false}, {1, 100, true},
	}
	for _, b := range bits {
		enc.WriteFrac(b.num, b.denom, b.bit)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	dec := NewDecoder(bytes.NewReader(buf.Bytes()), Config40)
	for i, b := range bits {
		got := dec.ReadFrac(b.num, b.denom)
		if got != b.bit {
			t.Fatalf("bit %d: got %v want %v", i, got, b.bit)
		}
	}
}

func TestUniformIntRoundTrip(t *testing.T) {
	tests := []struct {
		lo, hi int
		values []int
	}{
		{0, 1, []int{0, 1, 0, 1}},
		{0, 35, []int{0, 35, 17, 1, 34}},
		{3, 8, []int{3, 8, 5}},
		{-10, 10, []int{-10, 10, 0, -1, 1}},
	}
	for _, tc := range tests {
		var buf bytes.Buffer
		enc := NewEncoder(&buf, Config40)
		for _, v := range tc.values {
			WriteUniformInt(enc, tc.lo, tc.hi, v)
		}
		if err := enc.Flush(); err != nil {
			t.Fatalf("flush: %v", err)
		}

		dec := NewDecoder(bytes.NewReader(buf.Bytes()), Config40)
		for i, want := range tc.values {
			got := ReadUniformInt(dec, tc.lo, tc.hi)
			if got != want {
				t.Fatalf("range [%d,%d] value %d: got %d want %d", tc.lo, tc.hi, i, got, want)
			}
		}
	}
}

func TestRangeInvariant(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, Config40)
	if enc.rng != Config40.BaseRange {
		t.Fatalf("initial range = %d, want %d", enc.rng, Config40.BaseRange)
	}
	for i := 0; i < 1000; i++ {
		enc.Write16(uint16(1+i%60000), i%3 == 0)
		if enc.rng <= Config40.MinRange || enc.rng > Config40.BaseRange {
			t.Fatalf("range invariant violated at step %d: rng=%d", i, enc.rng)
		}
	}
}

func TestDummyIsNoop(t *testing.T) {
	var d Dummy
	d.Write16(1234, true)
	d.WriteFrac(1, 2, false)
	d.WriteUniformBit(true)
}
