// Package simplify rewrites expressions into compact disjunctive or
// conjunctive normal form. The function of an expression is first reduced to
// its canonical BDD; the normal forms are read back from the diagram paths.
package simplify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dalzilio/rudd"
	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/bdd"
	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
)

// Form selects the shape of a simplified expression.
type Form int

const (
	// FormAuto picks the shorter of the DNF and CNF renderings, DNF on ties.
	FormAuto Form = iota
	FormDNF
	FormCNF
)

func (f Form) String() string {
	switch f {
	case FormDNF:
		return "dnf"
	case FormCNF:
		return "cnf"
	default:
		return "auto"
	}
}

// ParseForm parses "auto", "dnf" or "cnf". The empty string is FormAuto.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormAuto, nil
	case "dnf":
		return FormDNF, nil
	case "cnf":
		return FormCNF, nil
	}
	return FormAuto, fmt.Errorf("unknown form %q, want auto, dnf or cnf", s)
}

// BooleanSimplifier simplifies expressions given as strings. The zero value
// is ready to use.
type BooleanSimplifier struct {
	Logger *zap.Logger
}

func NewBooleanSimplifier(logger *zap.Logger) *BooleanSimplifier {
	return &BooleanSimplifier{Logger: logger}
}

func (s *BooleanSimplifier) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Simplify parses expression and returns its simplified rendering in the
// requested form. Constants print as True and False.
func (s *BooleanSimplifier) Simplify(expression string, form Form) (string, error) {
	e, err := boolexpr.Parse(expression)
	if err != nil {
		return "", err
	}
	var out boolexpr.Expr
	switch form {
	case FormDNF:
		out, err = ToDNF(e)
	case FormCNF:
		out, err = ToCNF(e)
	case FormAuto:
		out, err = Shortest(e)
	default:
		return "", fmt.Errorf("unknown form %d", form)
	}
	if err != nil {
		return "", err
	}
	s.logger().Debug("simplified expression",
		zap.String("input", expression),
		zap.Stringer("form", form),
		zap.Stringer("output", out))
	return out.String(), nil
}

// ExtractVariables returns the sorted free variables of expression.
func (s *BooleanSimplifier) ExtractVariables(expression string) ([]string, error) {
	e, err := boolexpr.Parse(expression)
	if err != nil {
		return nil, err
	}
	return boolexpr.Variables(e), nil
}

// Shortest returns the shorter of the DNF and CNF of e, the DNF on ties.
func Shortest(e boolexpr.Expr) (boolexpr.Expr, error) {
	dnf, err := ToDNF(e)
	if err != nil {
		return nil, err
	}
	cnf, err := ToCNF(e)
	if err != nil {
		return nil, err
	}
	if len(cnf.String()) < len(dnf.String()) {
		return cnf, nil
	}
	return dnf, nil
}

// ToDNF returns a disjunction of conjunctions of literals equivalent to e.
func ToDNF(e boolexpr.Expr) (boolexpr.Expr, error) {
	d, f, err := compile(e)
	if err != nil {
		return nil, err
	}
	cubes, err := cover(d, f)
	if err != nil {
		return nil, err
	}
	terms := make([]boolexpr.Expr, len(cubes))
	for i, c := range cubes {
		terms[i] = d.Expr(c)
	}
	return boolexpr.Or(terms...), nil
}

// ToCNF returns a conjunction of disjunctions of literals equivalent to e. The
// clauses are the negated cubes of the complement of e.
func ToCNF(e boolexpr.Expr) (boolexpr.Expr, error) {
	d, f, err := compile(e)
	if err != nil {
		return nil, err
	}
	cubes, err := cover(d, d.Not(f))
	if err != nil {
		return nil, err
	}
	clauses := make([]boolexpr.Expr, len(cubes))
	for i, c := range cubes {
		clauses[i] = clause(d, c)
	}
	return boolexpr.And(clauses...), nil
}

func compile(e boolexpr.Expr) (*bdd.Diagram, rudd.Node, error) {
	d, err := bdd.New(boolexpr.Variables(e))
	if err != nil {
		return nil, nil, err
	}
	f, err := d.Build(e)
	if err != nil {
		return nil, nil, err
	}
	return d, f, nil
}

// clause returns the disjunction of the negated literals of c.
func clause(d *bdd.Diagram, c bdd.Cube) boolexpr.Expr {
	vars := d.Variables()
	lits := make([]boolexpr.Expr, 0, len(c))
	for i, v := range c {
		switch v {
		case bdd.CubeTrue:
			lits = append(lits, boolexpr.Not(boolexpr.Var(vars[i])))
		case bdd.CubeFalse:
			lits = append(lits, boolexpr.Var(vars[i]))
		}
	}
	return boolexpr.Or(lits...)
}

// cover returns cubes whose disjunction is f. The diagram paths are widened
// by dropping every literal that is not needed for the cube to imply f, then
// cubes covered by the remaining ones are removed.
func cover(d *bdd.Diagram, f rudd.Node) ([]bdd.Cube, error) {
	cubes, err := d.Cubes(f)
	if err != nil {
		return nil, err
	}
	for _, c := range cubes {
		for i, v := range c {
			if v == bdd.CubeDontCare {
				continue
			}
			c[i] = bdd.CubeDontCare
			if !d.Implies(d.CubeNode(c), f) {
				c[i] = v
			}
		}
	}
	sort.SliceStable(cubes, func(i, j int) bool {
		return lessCube(cubes[i], cubes[j])
	})

	kept := cubes[:0:0]
	for i, c := range cubes {
		rest := make([]rudd.Node, 0, len(kept)+len(cubes)-i-1)
		for _, k := range kept {
			rest = append(rest, d.CubeNode(k))
		}
		for _, o := range cubes[i+1:] {
			rest = append(rest, d.CubeNode(o))
		}
		if len(rest) > 0 && d.Implies(d.CubeNode(c), d.Or(rest...)) {
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}

// lessCube orders cubes variable by variable, positive literals first and
// free variables last.
func lessCube(a, b bdd.Cube) bool {
	rank := func(v int) int {
		switch v {
		case bdd.CubeTrue:
			return 0
		case bdd.CubeFalse:
			return 1
		}
		return 2
	}
	for i := range a {
		if ra, rb := rank(a[i]), rank(b[i]); ra != rb {
			return ra < rb
		}
	}
	return false
}
