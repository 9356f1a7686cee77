package rngx

import "testing"

func TestDeterministicSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		va := a.Uniform01()
		vb := b.Uniform01()
		if va != vb {
			t.Fatalf("draw %d diverged: %v != %v", i, va, vb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Uniform01() != b.Uniform01() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected seeds 1 and 2 to diverge within 8 draws")
	}
}

func TestUniform01Bounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		v := s.Uniform01()
		if v < 0 || v >= 1 {
			t.Fatalf("uniform01 out of range: %v", v)
		}
	}
}

func TestRollAlwaysFalseForZero(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		if s.Roll(0) {
			t.Fatal("roll(0) returned true")
		}
	}
}

func TestRollAlwaysTrueForOne(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		if !s.Roll(1) {
			t.Fatal("roll(1) returned false")
		}
	}
}

func TestIntRangeBounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
	}
}

func TestChoiceBounds(t *testing.T) {
	s := New(5)
	for i := 0; i < 1000; i++ {
		v := s.Choice(4)
		if v < 0 || v >= 4 {
			t.Fatalf("Choice out of bounds: %d", v)
		}
	}
}
