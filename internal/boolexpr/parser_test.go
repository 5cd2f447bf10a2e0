package boolexpr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"A", "A"},
		{"  True  |  A ", "True | A"},
		{"A & B & ~(~A | B & C)", "A & B & ~(~A | B & C)"},
		{"(A | B) & (A | C)", "(A | B) & (A | C)"},
		{"A | (B & C)", "A | B & C"},
		{"A | B ^ C & D", "A | B ^ C & D"},
		{"(A | B) ^ C", "(A | B) ^ C"},
		{"A >> B >> C", "A >> B >> C"},
		{"A >> (B >> C)", "A >> (B >> C)"},
		{"A << B", "B >> A"},
		{"A >> B & C", "A >> B & C"},
		{"~A >> B", "~A >> B"},
		{"~(A >> B)", "~(A >> B)"},
		{"~~A", "~~A"},
		{"Xor(A, B) & C", "(A ^ B) & C"},
		{"Nand(A, B)", "~(A & B)"},
		{"Nor(A, B)", "~(A | B)"},
		{"Not(A & B)", "~(A & B)"},
		{"Implies(A, B | C)", "A >> (B | C)"},
		{"ITE(A, B, C)", "ITE(A, B, C)"},
		{"Equivalent(A, B | C)", "Equivalent(A, B | C)"},
		{"And()", "True"},
		{"Or()", "False"},
		{"Or(A)", "A"},
		{"x_1 & y2", "x_1 & y2"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			e, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q): want no error, got %s", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, e.String()); diff != "" {
				t.Errorf("Parse(%q): mismatch (-want, +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestParse_printedFormReparses(t *testing.T) {
	inputs := []string{
		"A & B & ~(~A | B & C)",
		"(A >> B) >> ~(C ^ D)",
		"A >> (B >> C) | D",
		"Equivalent(A ^ B, ~C) & ITE(A, B >> C, D)",
		"~(A | B) ^ (C & (D | E))",
	}

	for _, input := range inputs {
		first := MustParse(input)
		second, err := Parse(first.String())
		if err != nil {
			t.Fatalf("Parse(%q): want no error, got %s", first.String(), err)
		}
		if diff := cmp.Diff(first.String(), second.String()); diff != "" {
			t.Errorf("printed form of %q is not stable (-first, +second):\n%s", input, diff)
		}
	}
}

func TestParse_invalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"A & (",
		"A B",
		"A && B",
		"& A",
		"(A | B",
		"A | B)",
		"1 & A",
		"A $ B",
		"Foo(A)",
		"Not(A, B)",
		"Implies(A)",
		"ITE(A, B)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			e, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q): want error, got %s", input, e)
			}
			if !errors.Is(err, ErrInvalidExpression) {
				t.Errorf("Parse(%q): want ErrInvalidExpression, got %s", input, err)
			}
			var invalid *InvalidExpressionError
			if !errors.As(err, &invalid) {
				t.Fatalf("Parse(%q): want *InvalidExpressionError, got %T", input, err)
			}
			if invalid.Input != input {
				t.Errorf("Parse(%q): error names %q", input, invalid.Input)
			}
		})
	}
}

func TestMustParse_panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustParse(): want panic, got none")
		}
	}()
	MustParse("A & (")
}

func TestVariables(t *testing.T) {
	testCases := []struct {
		input string
		want  []string
	}{
		{"True", []string{}},
		{"A & ~A", []string{"A"}},
		{"C | (B & A) | C", []string{"A", "B", "C"}},
		{"ITE(z, y, x) ^ Equivalent(w, v)", []string{"v", "w", "x", "y", "z"}},
	}

	for _, tc := range testCases {
		got := Variables(MustParse(tc.input))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Variables(%q): mismatch (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestConstructors(t *testing.T) {
	args := []Expr{Var("A"), Var("B")}
	e := And(args...)
	args[0] = Var("Z")

	if got := e.String(); got != "A & B" {
		t.Errorf("And(): operands are shared with the caller, got %q", got)
	}
	if got := Xor(Var("A")).String(); got != "A" {
		t.Errorf("Xor(A): want %q, got %q", "A", got)
	}
	if got := Equiv(Var("A")).String(); got != "True" {
		t.Errorf("Equiv(A): want %q, got %q", "True", got)
	}
}
