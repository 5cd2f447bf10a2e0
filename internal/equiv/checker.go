package equiv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/bdd"
	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/cnf"
	"github.com/sleepypower/circuit-simplifier/internal/sat"
)

// DefaultMaxVariables bounds the truth table to 2^24 rows unless configured
// otherwise.
const DefaultMaxVariables = 24

type Options struct {
	Strategy Strategy

	// MaxVariables bounds the variable count of the truth-table strategy.
	// Zero means DefaultMaxVariables. Values above boolexpr.MaxBoundVariables
	// are lowered to it.
	MaxVariables int

	// Workers is the number of goroutines enumerating the truth table. Values
	// below 2 enumerate sequentially.
	Workers int

	Logger *zap.Logger
}

type Checker struct {
	opts   Options
	logger *zap.Logger
}

func NewChecker(opts Options) *Checker {
	if opts.MaxVariables <= 0 {
		opts.MaxVariables = DefaultMaxVariables
	}
	if opts.MaxVariables > boolexpr.MaxBoundVariables {
		opts.MaxVariables = boolexpr.MaxBoundVariables
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{opts: opts, logger: logger}
}

func (c *Checker) Options() Options {
	return c.opts
}

// CheckStrings parses both expressions and checks them with Check.
func (c *Checker) CheckStrings(ctx context.Context, expr1, expr2 string, vars []string) (Report, error) {
	e1, err := boolexpr.Parse(expr1)
	if err != nil {
		return Report{}, err
	}
	e2, err := boolexpr.Parse(expr2)
	if err != nil {
		return Report{}, err
	}
	return c.Check(ctx, e1, e2, vars)
}

// Check decides whether e1 and e2 are equivalent over vars.
func (c *Checker) Check(ctx context.Context, e1, e2 boolexpr.Expr, vars []string) (Report, error) {
	if err := boolexpr.CheckVariables(vars); err != nil {
		return Report{}, err
	}
	declared := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		declared[v] = struct{}{}
	}
	if err := checkDeclared(e1, declared); err != nil {
		return Report{}, err
	}
	if err := checkDeclared(e2, declared); err != nil {
		return Report{}, err
	}

	var (
		r   Report
		err error
	)
	switch c.opts.Strategy {
	case TruthTable:
		r, err = c.truthTable(ctx, e1, e2, vars)
	case SAT:
		r, err = c.satisfiability(ctx, e1, e2, vars)
	case BDD:
		r, err = c.decisionDiagram(e1, e2, vars)
	default:
		return Report{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, c.opts.Strategy)
	}
	if err != nil {
		return Report{}, err
	}

	r.Strategy = c.opts.Strategy
	r.Variables = vars
	if r.Counterexample != nil {
		if r.Left, err = boolexpr.Eval(e1, r.Counterexample); err != nil {
			return Report{}, err
		}
		if r.Right, err = boolexpr.Eval(e2, r.Counterexample); err != nil {
			return Report{}, err
		}
	}

	c.logger.Debug("equivalence checked",
		zap.Stringer("strategy", r.Strategy),
		zap.Int("variables", len(vars)),
		zap.Stringer("result", r.Result),
		zap.Uint64("rows", r.Rows))

	return r, nil
}

// satisfiability looks for a model of e1 XOR e2.
func (c *Checker) satisfiability(ctx context.Context, e1, e2 boolexpr.Expr, vars []string) (Report, error) {
	opts := sat.DefaultOptions
	opts.Logger = c.logger
	differ, a, err := cnf.Satisfiable(ctx, boolexpr.Xor(e1, e2), vars, opts)
	if err != nil {
		return Report{}, err
	}
	if !differ {
		return Report{Result: Equivalent}, nil
	}
	return Report{Result: NotEquivalent, Counterexample: a}, nil
}

// decisionDiagram compares the canonical BDDs of e1 and e2.
func (c *Checker) decisionDiagram(e1, e2 boolexpr.Expr, vars []string) (Report, error) {
	d, err := bdd.New(vars)
	if err != nil {
		return Report{}, err
	}
	n1, err := d.Build(e1)
	if err != nil {
		return Report{}, err
	}
	n2, err := d.Build(e2)
	if err != nil {
		return Report{}, err
	}
	if d.Equal(n1, n2) {
		return Report{Result: Equivalent}, nil
	}
	cubes, err := d.Cubes(d.Xor(n1, n2))
	if err != nil {
		return Report{}, err
	}
	if len(cubes) == 0 {
		return Report{}, fmt.Errorf("distinct diagrams without a differing assignment")
	}
	return Report{Result: NotEquivalent, Counterexample: d.Assignment(cubes[0])}, nil
}
