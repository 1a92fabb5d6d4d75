package symbol

import (
	"bytes"
	"testing"

	"github.com/jsneyers/go-flif/internal/rac"
)

func TestWriteIntReadIntCoverage(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
	}{
		{"zero centered small", -4, 4},
		{"zero centered asymmetric", -3, 10},
		{"all non-negative", 0, 16},
		{"shifted positive", 1, 16},
		{"all non-positive", -16, 0},
		{"wide", -1023, 1023},
		{"single value", 7, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := rac.NewEncoder(&buf, rac.Config40)
			table := NewChanceTable(MultiscaleFactory)
			for v := tc.lo; v <= tc.hi; v++ {
				WriteInt(enc, table, tc.lo, tc.hi, v)
			}
			if err := enc.Flush(); err != nil {
				t.Fatalf("flush: %v", err)
			}

			dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config40)
			table2 := NewChanceTable(MultiscaleFactory)
			for v := tc.lo; v <= tc.hi; v++ {
				got := ReadInt(dec, table2, tc.lo, tc.hi)
				if got != v {
					t.Fatalf("value %d: got %d", v, got)
				}
			}
		})
	}
}

func TestSimpleCoderRoundTrip(t *testing.T) {
	values := []int{1, 16, 1, 8, 640, 480, 10}
	var buf bytes.Buffer
	enc := rac.NewEncoder(&buf, rac.Config40)
	c := NewSimpleCoder()
	for _, v := range values {
		c.WriteInt(enc, 1, 65536, v)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	dec := rac.NewDecoder(bytes.NewReader(buf.Bytes()), rac.Config40)
	c2 := NewSimpleCoder()
	for _, want := range values {
		if got := c2.ReadInt(dec, 1, 65536); got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	}
}
