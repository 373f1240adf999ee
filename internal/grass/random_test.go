package grass

import "testing"

func TestRandomServiceRange(t *testing.T) {
	s := NewRandomService(1)
	for i := 0; i < 10000; i++ {
		v := s.Float(1.0, 1.5)
		if v < 1.0 || v >= 1.5 {
			t.Fatalf("Float(1.0, 1.5) = %g", v)
		}
	}
}

func TestRandomServiceReseed(t *testing.T) {
	s := NewRandomService(99)
	first := []float32{s.Float(0, 1), s.Float(0, 1), s.Float(0, 1)}

	s.Seed(99)
	for i, want := range first {
		if got := s.Float(0, 1); got != want {
			t.Errorf("draw %d after reseed = %g, want %g", i, got, want)
		}
	}
}

func TestRandomServiceEmptyRange(t *testing.T) {
	s := NewRandomService(0)
	if got := s.Float(2, 2); got != 2 {
		t.Errorf("Float(2, 2) = %g, want 2", got)
	}
	if got := s.Float(3, 1); got != 3 {
		t.Errorf("Float(3, 1) = %g, want 3", got)
	}
}

func TestBelowKeepsPatchEdgeOpen(t *testing.T) {
	if got := below(255, 255); got >= 255 {
		t.Errorf("below(255, 255) = %g, want < 255", got)
	}
	if got := below(0.5, 1); got != 0.5 {
		t.Errorf("below(0.5, 1) = %g, want 0.5", got)
	}
}
