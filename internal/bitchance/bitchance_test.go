package bitchance

import "testing"

func TestSimpleConverges(t *testing.T) {
	s := NewSimple(4)
	for i := 0; i < 500; i++ {
		s.Update(true)
	}
	if p := s.P16(); p < 60000 {
		t.Fatalf("expected chance to converge high after many 1-bits, got %d", p)
	}
	for i := 0; i < 500; i++ {
		s.Update(false)
	}
	if p := s.P16(); p > 5000 {
		t.Fatalf("expected chance to converge low after many 0-bits, got %d", p)
	}
}

func TestSimpleStaysInBounds(t *testing.T) {
	s := NewSimple(2)
	for i := 0; i < 10000; i++ {
		s.Update(i%7 == 0)
		if p := s.P16(); p < 1 || p > 65534 {
			t.Fatalf("chance out of bounds: %d", p)
		}
	}
}

func TestMultiscaleConvergesOnConstantBit(t *testing.T) {
	m := NewMultiscale()
	for i := 0; i < 2000; i++ {
		m.Update(false)
	}
	if p := m.P16(); p > 2000 {
		t.Fatalf("expected low chance after many 0-bits, got %d", p)
	}
}

func TestMultiscaleAdaptsAfterRegimeChange(t *testing.T) {
	m := NewMultiscale()
	for i := 0; i < 1000; i++ {
		m.Update(false)
	}
	for i := 0; i < 1000; i++ {
		m.Update(true)
	}
	if p := m.P16(); p < 40000 {
		t.Fatalf("expected chance to recover toward 1 after regime change, got %d", p)
	}
}
