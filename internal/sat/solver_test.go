package sat

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSolver(t *testing.T, nVars int, clauses [][]int) *Solver {
	t.Helper()
	s := NewDefaultSolver()
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		clause := make([]Literal, len(c))
		for i, l := range c {
			clause[i] = FromDIMACS(l)
		}
		if err := s.AddClause(clause); err != nil {
			t.Fatalf("AddClause(%v): want no error, got %s", c, err)
		}
	}
	return s
}

// solveAll returns all the models of s, each one forbidden by a blocking
// clause once found.
func solveAll(t *testing.T, s *Solver) [][]bool {
	t.Helper()
	for s.Solve() == True {
		model := s.LastModel()
		block := make([]Literal, len(model))
		for i, b := range model {
			if b {
				block[i] = NegativeLiteral(i)
			} else {
				block[i] = PositiveLiteral(i)
			}
		}
		if err := s.AddClause(block); err != nil {
			t.Fatalf("AddClause(): want no error, got %s", err)
		}
	}
	return s.Models
}

func modelStrings(models [][]bool) []string {
	out := make([]string, len(models))
	for i, m := range models {
		b := make([]byte, len(m))
		for j, v := range m {
			b[j] = '0'
			if v {
				b[j] = '1'
			}
		}
		out[i] = string(b)
	}
	sort.Strings(out)
	return out
}

// pigeonhole returns the clauses stating that n+1 pigeons fit in n holes.
// Variable p*n+h means pigeon p sits in hole h.
func pigeonhole(n int) (int, [][]int) {
	v := func(p, h int) int { return p*n + h + 1 }
	var clauses [][]int
	for p := 0; p <= n; p++ {
		c := make([]int, n)
		for h := 0; h < n; h++ {
			c[h] = v(p, h)
		}
		clauses = append(clauses, c)
	}
	for h := 0; h < n; h++ {
		for p := 0; p <= n; p++ {
			for q := p + 1; q <= n; q++ {
				clauses = append(clauses, []int{-v(p, h), -v(q, h)})
			}
		}
	}
	return (n + 1) * n, clauses
}

func TestSolve(t *testing.T) {
	testCases := []struct {
		desc    string
		nVars   int
		clauses [][]int
		want    LBool
	}{
		{
			desc: "no variables",
			want: True,
		},
		{
			desc:    "single unit",
			nVars:   1,
			clauses: [][]int{{-1}},
			want:    True,
		},
		{
			desc:    "contradicting units",
			nVars:   1,
			clauses: [][]int{{1}, {-1}},
			want:    False,
		},
		{
			desc:  "all clauses over three variables",
			nVars: 3,
			clauses: [][]int{
				{1, 2, 3}, {1, 2, -3}, {1, -2, 3}, {-1, 2, 3},
				{-1, -2, 3}, {-1, 2, -3}, {1, -2, -3}, {-1, -2, -3},
			},
			want: False,
		},
		{
			desc:    "tautological clause",
			nVars:   2,
			clauses: [][]int{{1, -1, 2}, {-2}},
			want:    True,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			s := newTestSolver(t, tc.nVars, tc.clauses)

			got := s.Solve()

			if got != tc.want {
				t.Errorf("Solve(): want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSolve_pigeonhole(t *testing.T) {
	for n := 1; n <= 5; n++ {
		nVars, clauses := pigeonhole(n)
		s := newTestSolver(t, nVars, clauses)

		if got := s.Solve(); got != False {
			t.Errorf("Solve() with %d holes: want %s, got %s", n, False, got)
		}
	}
}

func TestSolve_model(t *testing.T) {
	s := newTestSolver(t, 3, [][]int{{1, 2}, {-1}, {-2, 3}})

	if got := s.Solve(); got != True {
		t.Fatalf("Solve(): want %s, got %s", True, got)
	}

	want := []bool{false, true, true}
	if diff := cmp.Diff(want, s.LastModel()); diff != "" {
		t.Errorf("LastModel(): mismatch (-want, +got):\n%s", diff)
	}
}

func TestSolveAll(t *testing.T) {
	testCases := []struct {
		desc    string
		nVars   int
		clauses [][]int
		want    []string
	}{
		{
			desc:    "disjunction",
			nVars:   2,
			clauses: [][]int{{1, 2}},
			want:    []string{"01", "10", "11"},
		},
		{
			desc:    "xor",
			nVars:   2,
			clauses: [][]int{{1, 2}, {-1, -2}},
			want:    []string{"01", "10"},
		},
		{
			desc:    "unconstrained",
			nVars:   3,
			clauses: nil,
			want:    []string{"000", "001", "010", "011", "100", "101", "110", "111"},
		},
		{
			desc:    "unsat",
			nVars:   1,
			clauses: [][]int{{1}, {-1}},
			want:    []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			s := newTestSolver(t, tc.nVars, tc.clauses)

			got := modelStrings(solveAll(t, s))

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("solveAll(): mismatch (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestAddClause_unknownVariable(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()

	if err := s.AddClause([]Literal{PositiveLiteral(1)}); err == nil {
		t.Errorf("AddClause(): want error, got none")
	}
}

func TestSolve_maxConflicts(t *testing.T) {
	nVars, clauses := pigeonhole(6)
	s := NewSolver(Options{
		ClauseDecay:   DefaultOptions.ClauseDecay,
		VariableDecay: DefaultOptions.VariableDecay,
		MaxConflicts:  0,
		Timeout:       -1,
	})
	for i := 0; i < nVars; i++ {
		s.AddVariable()
	}
	for _, c := range clauses {
		clause := make([]Literal, len(c))
		for i, l := range c {
			clause[i] = FromDIMACS(l)
		}
		s.AddClause(clause)
	}

	if got := s.Solve(); got != Unknown {
		t.Errorf("Solve(): want %s, got %s", Unknown, got)
	}
}

func TestSolveContext_canceled(t *testing.T) {
	nVars, clauses := pigeonhole(6)
	s := newTestSolver(t, nVars, clauses)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := s.SolveContext(ctx); got != Unknown {
		t.Errorf("SolveContext(): want %s, got %s", Unknown, got)
	}
	if s.NumAssigns() != 0 {
		t.Errorf("NumAssigns(): want 0 after an interrupted search, got %d", s.NumAssigns())
	}
}
