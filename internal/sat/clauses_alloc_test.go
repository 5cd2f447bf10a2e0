package sat

import "testing"

func TestAllocSlice_capacity(t *testing.T) {
	for _, capa := range []int{0, 1, 2, 3, 7, 8, 15, 16, 31, 32, 100, 1000} {
		s := allocSlice(capa)
		if len(*s) != 0 {
			t.Errorf("allocSlice(%d): want empty slice, got length %d", capa, len(*s))
		}
		if cap(*s) < capa {
			t.Errorf("allocSlice(%d): capacity %d is too small", capa, cap(*s))
		}
		*s = append(*s, PositiveLiteral(1))
		freeSlice(s)
	}
}

func TestPoolID(t *testing.T) {
	testCases := map[int]int{0: 0, 1: 0, 2: 1, 3: 1, 4: 2, 7: 2, 8: 3, 1 << 20: 3}
	for capa, want := range testCases {
		if got := poolID(capa); got != want {
			t.Errorf("poolID(%d): want %d, got %d", capa, want, got)
		}
	}
}
