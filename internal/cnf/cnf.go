// Package cnf turns expressions into clauses for the SAT solver using the
// Tseitin transformation: every gate gets a fresh variable constrained to be
// equivalent to its output.
package cnf

import (
	"context"
	"errors"
	"fmt"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/sat"
)

// Formula is a CNF formula in DIMACS form: variables are numbered from 1 and a
// negative integer is a negated variable. Variables 1 to len(Vars) are the
// declared variables, in order. The remaining ones are gate outputs.
type Formula struct {
	Vars      []string
	Variables int
	Clauses   [][]int
}

type encoder struct {
	f     *Formula
	index map[string]int
	top   int // variable fixed to true, 0 until needed
}

// Encode returns a formula that is satisfiable exactly by the assignments of
// vars under which e is true. Every free variable of e must be in vars.
func Encode(e boolexpr.Expr, vars []string) (*Formula, error) {
	if err := boolexpr.CheckVariables(vars); err != nil {
		return nil, err
	}
	enc := &encoder{
		f:     &Formula{Vars: vars, Variables: len(vars)},
		index: make(map[string]int, len(vars)),
	}
	for i, v := range vars {
		enc.index[v] = i + 1
	}
	root, err := enc.encode(e)
	if err != nil {
		var undeclared *boolexpr.UndeclaredVariableError
		if errors.As(err, &undeclared) {
			undeclared.Expr = e.String()
		}
		return nil, err
	}
	enc.clause(root)
	return enc.f, nil
}

func (enc *encoder) fresh() int {
	enc.f.Variables++
	return enc.f.Variables
}

func (enc *encoder) clause(lits ...int) {
	enc.f.Clauses = append(enc.f.Clauses, lits)
}

func (enc *encoder) constant(val bool) int {
	if enc.top == 0 {
		enc.top = enc.fresh()
		enc.clause(enc.top)
	}
	if val {
		return enc.top
	}
	return -enc.top
}

func (enc *encoder) operands(e boolexpr.Expr) ([]int, error) {
	ops := boolexpr.Operands(e)
	lits := make([]int, len(ops))
	for i, o := range ops {
		l, err := enc.encode(o)
		if err != nil {
			return nil, err
		}
		lits[i] = l
	}
	return lits, nil
}

// encode returns the literal equivalent to e.
func (enc *encoder) encode(e boolexpr.Expr) (int, error) {
	switch e := e.(type) {
	case boolexpr.Constant:
		return enc.constant(e.Val), nil
	case boolexpr.Variable:
		v, ok := enc.index[e.Name]
		if !ok {
			return 0, &boolexpr.UndeclaredVariableError{Name: e.Name}
		}
		return v, nil
	}

	lits, err := enc.operands(e)
	if err != nil {
		return 0, err
	}

	switch e.(type) {
	case boolexpr.NotExpr:
		return -lits[0], nil
	case boolexpr.AndExpr:
		return enc.and(lits), nil
	case boolexpr.OrExpr:
		return enc.or(lits), nil
	case boolexpr.XorExpr:
		if len(lits) == 0 {
			return enc.constant(false), nil
		}
		acc := lits[0]
		for _, l := range lits[1:] {
			acc = enc.xor(acc, l)
		}
		return acc, nil
	case boolexpr.ImpliesExpr:
		return enc.or([]int{-lits[0], lits[1]}), nil
	case boolexpr.EquivExpr:
		if len(lits) < 2 {
			return enc.constant(true), nil
		}
		same := make([]int, 0, len(lits)-1)
		for _, l := range lits[1:] {
			same = append(same, -enc.xor(lits[0], l))
		}
		return enc.and(same), nil
	case boolexpr.ITEExpr:
		return enc.ite(lits[0], lits[1], lits[2]), nil
	}
	return 0, fmt.Errorf("unsupported expression %T", e)
}

func (enc *encoder) and(lits []int) int {
	g := enc.fresh()
	long := make([]int, 0, len(lits)+1)
	long = append(long, g)
	for _, l := range lits {
		enc.clause(-g, l)
		long = append(long, -l)
	}
	enc.clause(long...)
	return g
}

func (enc *encoder) or(lits []int) int {
	g := enc.fresh()
	long := make([]int, 0, len(lits)+1)
	long = append(long, -g)
	for _, l := range lits {
		enc.clause(g, -l)
		long = append(long, l)
	}
	enc.clause(long...)
	return g
}

func (enc *encoder) xor(a, b int) int {
	g := enc.fresh()
	enc.clause(-g, a, b)
	enc.clause(-g, -a, -b)
	enc.clause(g, -a, b)
	enc.clause(g, a, -b)
	return g
}

func (enc *encoder) ite(c, t, e int) int {
	g := enc.fresh()
	enc.clause(-g, -c, t)
	enc.clause(-g, c, e)
	enc.clause(g, -c, -t)
	enc.clause(g, c, -e)
	return g
}

// Load adds the formula's variables and clauses to s. The formula's variable
// i is the solver's variable i-1 when s starts empty.
func (f *Formula) Load(s *sat.Solver) error {
	for s.NumVariables() < f.Variables {
		s.AddVariable()
	}
	for _, c := range f.Clauses {
		clause := make([]sat.Literal, len(c))
		for i, l := range c {
			clause[i] = sat.FromDIMACS(l)
		}
		if err := s.AddClause(clause); err != nil {
			return fmt.Errorf("could not load clause %v: %w", c, err)
		}
	}
	return nil
}

// Assignment projects a solver model onto the declared variables.
func (f *Formula) Assignment(model []bool) boolexpr.Assignment {
	a := make(boolexpr.Assignment, len(f.Vars))
	for i, v := range f.Vars {
		a[v] = model[i]
	}
	return a
}

// blockingClause forbids the projection of model on the declared variables.
func (f *Formula) blockingClause(model []bool) []sat.Literal {
	clause := make([]sat.Literal, len(f.Vars))
	for i := range f.Vars {
		if model[i] {
			clause[i] = sat.NegativeLiteral(i)
		} else {
			clause[i] = sat.PositiveLiteral(i)
		}
	}
	return clause
}

// Models returns the assignments of vars under which e is true, at most limit
// of them if limit is positive. Models are found in no particular order.
func Models(ctx context.Context, e boolexpr.Expr, vars []string, limit int, opts sat.Options) ([]boolexpr.Assignment, error) {
	f, err := Encode(e, vars)
	if err != nil {
		return nil, err
	}
	s := sat.NewSolver(opts)
	if err := f.Load(s); err != nil {
		return nil, err
	}

	models := []boolexpr.Assignment{}
	for limit <= 0 || len(models) < limit {
		switch s.SolveContext(ctx) {
		case sat.False:
			return models, nil
		case sat.Unknown:
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("search stopped after %d models", len(models))
		}
		model := s.LastModel()
		models = append(models, f.Assignment(model))
		// Gate variables are functionally determined by the declared ones,
		// so blocking the projection blocks exactly one model.
		if err := s.AddClause(f.blockingClause(model)); err != nil {
			return nil, err
		}
	}
	return models, nil
}

// Satisfiable reports whether some assignment of vars makes e true, and
// returns one if so.
func Satisfiable(ctx context.Context, e boolexpr.Expr, vars []string, opts sat.Options) (bool, boolexpr.Assignment, error) {
	models, err := Models(ctx, e, vars, 1, opts)
	if err != nil {
		return false, nil, err
	}
	if len(models) == 0 {
		return false, nil, nil
	}
	return true, models[0], nil
}
