package sat

import "testing"

func TestLiteral_DIMACSRoundTrip(t *testing.T) {
	for _, d := range []int{1, -1, 2, -2, 17, -42} {
		l := FromDIMACS(d)
		if got := l.DIMACS(); got != d {
			t.Errorf("FromDIMACS(%d).DIMACS(): want %d, got %d", d, d, got)
		}
	}
}

func TestLiteral(t *testing.T) {
	testCases := []struct {
		lit      Literal
		varID    int
		positive bool
		str      string
	}{
		{PositiveLiteral(0), 0, true, "0"},
		{NegativeLiteral(0), 0, false, "!0"},
		{PositiveLiteral(5), 5, true, "5"},
		{NegativeLiteral(5), 5, false, "!5"},
		{FromDIMACS(-3), 2, false, "!2"},
	}

	for _, tc := range testCases {
		if got := tc.lit.VarID(); got != tc.varID {
			t.Errorf("%s.VarID(): want %d, got %d", tc.str, tc.varID, got)
		}
		if got := tc.lit.IsPositive(); got != tc.positive {
			t.Errorf("%s.IsPositive(): want %t, got %t", tc.str, tc.positive, got)
		}
		if got := tc.lit.String(); got != tc.str {
			t.Errorf("String(): want %q, got %q", tc.str, got)
		}
		if got := tc.lit.Opposite().Opposite(); got != tc.lit {
			t.Errorf("%s.Opposite().Opposite(): want %s, got %s", tc.str, tc.lit, got)
		}
	}
}

func TestLBool(t *testing.T) {
	if Lift(true) != True || Lift(false) != False {
		t.Errorf("Lift(): wrong mapping")
	}
	if True.Opposite() != False || False.Opposite() != True || Unknown.Opposite() != Unknown {
		t.Errorf("Opposite(): wrong mapping")
	}
}
