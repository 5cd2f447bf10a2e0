package sat

import "testing"

func TestStampSet(t *testing.T) {
	ss := newStampSet()
	for i := 0; i < 4; i++ {
		ss.Grow()
	}

	ss.Add(1)
	ss.Add(3)
	if !ss.Contains(1) || !ss.Contains(3) || ss.Contains(0) || ss.Contains(2) {
		t.Fatalf("Contains(): wrong membership after Add")
	}

	ss.Clear()
	for v := 0; v < 4; v++ {
		if ss.Contains(v) {
			t.Errorf("Contains(%d): want false after Clear", v)
		}
	}
}

func TestStampSet_ClearWrapAround(t *testing.T) {
	ss := newStampSet()
	ss.Grow()
	ss.Grow()
	ss.gen = ^uint32(0)
	ss.Add(0)

	ss.Clear()

	if ss.gen != 1 {
		t.Errorf("gen: want 1 after wrap around, got %d", ss.gen)
	}
	if ss.Contains(0) || ss.Contains(1) {
		t.Errorf("Contains(): want empty set after wrap around")
	}
}
