package cnf

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/sat"
)

// This suite checks the encoding against the truth table: the set of models
// enumerated by the solver must be exactly the set of rows on which the
// expression evaluates to true.

var testExpressions = []string{
	"A",
	"~A",
	"A & ~A",
	"A | ~A",
	"A & B & ~(~A | B & C)",
	"(A | B) & (A | C)",
	"A ^ B ^ C",
	"A >> B",
	"A << B",
	"Equivalent(A, B, C)",
	"ITE(A, B, C)",
	"Nand(A, B) | Nor(B, C)",
	"(A & True) | (B & False)",
	"Xor(A, B) & Implies(C, A)",
}

// toString returns a binary string representation of an assignment over
// vars. For example, {A: true, B: false} over [A B] results in "10".
func toString(a boolexpr.Assignment, vars []string) string {
	s := make([]byte, len(vars))
	for i, v := range vars {
		s[i] = '0'
		if a[v] {
			s[i] = '1'
		}
	}
	return string(s)
}

// toSet converts assignments into a set of binary strings (see toString).
func toSet(models []boolexpr.Assignment, vars []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range models {
		set[toString(m, vars)] = struct{}{}
	}
	return set
}

// truthTableModels returns the rows of the truth table of e on which e holds.
func truthTableModels(t *testing.T, e boolexpr.Expr, vars []string) []boolexpr.Assignment {
	t.Helper()
	b, err := boolexpr.Bind(e, vars)
	if err != nil {
		t.Fatalf("Bind(): want no error, got %s", err)
	}
	models := []boolexpr.Assignment{}
	for row := uint64(0); row < b.Rows(); row++ {
		if b.EvalBits(row) {
			models = append(models, b.Assignment(row))
		}
	}
	return models
}

func TestModels(t *testing.T) {
	vars := []string{"A", "B", "C"}

	for _, s := range testExpressions {
		s := s
		t.Run(s, func(t *testing.T) {
			t.Parallel()
			e := boolexpr.MustParse(s)
			want := truthTableModels(t, e, vars)

			got, err := Models(context.Background(), e, vars, 0, sat.DefaultOptions)

			if err != nil {
				t.Fatalf("Models(): want no error, got %s", err)
			}
			if len(got) != len(want) {
				t.Errorf("Models(): incorrect number of models: want %d, got %d", len(want), len(got))
			}
			if diff := cmp.Diff(toSet(want, vars), toSet(got, vars)); diff != "" {
				t.Errorf("Models(): mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestModels_limit(t *testing.T) {
	e := boolexpr.MustParse("A | B")

	got, err := Models(context.Background(), e, []string{"A", "B"}, 2, sat.DefaultOptions)

	if err != nil {
		t.Fatalf("Models(): want no error, got %s", err)
	}
	if len(got) != 2 {
		t.Errorf("Models(): want 2 models, got %d", len(got))
	}
}

func TestModels_noVariables(t *testing.T) {
	testCases := []struct {
		expr string
		want int
	}{
		{"True", 1},
		{"False", 0},
		{"True & ~False", 1},
	}

	for _, tc := range testCases {
		got, err := Models(context.Background(), boolexpr.MustParse(tc.expr), nil, 0, sat.DefaultOptions)

		if err != nil {
			t.Fatalf("Models(%q): want no error, got %s", tc.expr, err)
		}
		if len(got) != tc.want {
			t.Errorf("Models(%q): want %d models, got %d", tc.expr, tc.want, len(got))
		}
	}
}

func TestEncode_declaredVariablesFirst(t *testing.T) {
	f, err := Encode(boolexpr.MustParse("B & ~A"), []string{"A", "B"})

	if err != nil {
		t.Fatalf("Encode(): want no error, got %s", err)
	}
	want := &Formula{
		Vars:      []string{"A", "B"},
		Variables: 3,
		Clauses: [][]int{
			{-3, 2},
			{-3, -1},
			{3, -2, 1},
			{3},
		},
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("Encode(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestEncode_errors(t *testing.T) {
	testCases := []struct {
		desc string
		expr string
		vars []string
		want error
	}{
		{"undeclared", "A & B", []string{"A"}, boolexpr.ErrUndeclaredVariable},
		{"duplicate", "A", []string{"A", "A"}, boolexpr.ErrDuplicateVariable},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Encode(boolexpr.MustParse(tc.expr), tc.vars)

			if !errors.Is(err, tc.want) {
				t.Errorf("Encode(): want error %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSatisfiable(t *testing.T) {
	ok, a, err := Satisfiable(context.Background(), boolexpr.MustParse("A & ~B"), []string{"A", "B"}, sat.DefaultOptions)

	if err != nil {
		t.Fatalf("Satisfiable(): want no error, got %s", err)
	}
	if !ok {
		t.Fatalf("Satisfiable(): want true, got false")
	}
	want := boolexpr.Assignment{"A": true, "B": false}
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("Satisfiable(): mismatch (-want, +got):\n%s", diff)
	}

	ok, _, err = Satisfiable(context.Background(), boolexpr.MustParse("A & ~A"), []string{"A"}, sat.DefaultOptions)
	if err != nil || ok {
		t.Errorf("Satisfiable(A & ~A): want false and no error, got %t, %v", ok, err)
	}
}
