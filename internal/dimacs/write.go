package dimacs

import (
	"fmt"
	"io"

	"github.com/crillab/gophersat/bf"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/simplify"
)

// Write writes the CNF of e on w in DIMACS format. Variable names are listed
// in "c name=index" comment lines. The CNF is equivalent to e, without
// auxiliary variables; variables e does not depend on are dropped.
func Write(w io.Writer, e boolexpr.Expr) error {
	cnf, err := simplify.ToCNF(e)
	if err != nil {
		return err
	}
	f, err := formula(cnf)
	if err != nil {
		return err
	}
	return bf.Dimacs(f, w)
}

// formula converts a CNF expression: a constant, a clause or a conjunction of
// clauses.
func formula(e boolexpr.Expr) (bf.Formula, error) {
	switch e := e.(type) {
	case boolexpr.Constant:
		if e.Val {
			return bf.True, nil
		}
		return bf.False, nil
	case boolexpr.AndExpr:
		clauses := make([]bf.Formula, len(e.Args))
		for i, c := range e.Args {
			f, err := clause(c)
			if err != nil {
				return nil, err
			}
			clauses[i] = f
		}
		return bf.And(clauses...), nil
	}
	return clause(e)
}

func clause(e boolexpr.Expr) (bf.Formula, error) {
	if o, ok := e.(boolexpr.OrExpr); ok {
		lits := make([]bf.Formula, len(o.Args))
		for i, l := range o.Args {
			f, err := literal(l)
			if err != nil {
				return nil, err
			}
			lits[i] = f
		}
		return bf.Or(lits...), nil
	}
	return literal(e)
}

func literal(e boolexpr.Expr) (bf.Formula, error) {
	switch e := e.(type) {
	case boolexpr.Variable:
		return bf.Var(e.Name), nil
	case boolexpr.NotExpr:
		if v, ok := e.X.(boolexpr.Variable); ok {
			return bf.Not(bf.Var(v.Name)), nil
		}
	}
	return nil, fmt.Errorf("%s is not a literal", e)
}
