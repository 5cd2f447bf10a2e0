// Package equiv decides whether two Boolean expressions are semantically
// equivalent over a declared list of variables.
//
// The reference procedure enumerates the whole truth table: row i assigns to
// the k-th declared variable the k-th bit of i, so row 0 sets every variable
// to false and row 1 sets only the first one to true. The first differing row
// ends the search. Two alternative strategies reach the same verdict without
// enumeration: a SAT query on the miter of the expressions and a comparison of
// their canonical BDDs.
package equiv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
)

var (
	// ErrTooManyVariables is returned when the truth table would have more
	// rows than the configured limit allows.
	ErrTooManyVariables = errors.New("too many variables")

	// ErrUnknownStrategy is returned for a strategy name or value that does
	// not exist.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy selects the decision procedure.
type Strategy int

const (
	TruthTable Strategy = iota
	SAT
	BDD
)

func (s Strategy) String() string {
	switch s {
	case TruthTable:
		return "truth-table"
	case SAT:
		return "sat"
	case BDD:
		return "bdd"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy parses the names returned by Strategy.String. The empty string
// is TruthTable.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "truth-table", "truthtable", "tt":
		return TruthTable, nil
	case "sat":
		return SAT, nil
	case "bdd":
		return BDD, nil
	}
	return TruthTable, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Result is the verdict of a check.
type Result int

const (
	// Equivalent indicates the expressions agree on every assignment.
	Equivalent Result = iota
	// NotEquivalent indicates an assignment on which they differ exists.
	NotEquivalent
)

func (r Result) String() string {
	if r == Equivalent {
		return "equivalent"
	}
	return "not equivalent"
}

// Report describes the outcome of a check.
type Report struct {
	Result    Result
	Strategy  Strategy
	Variables []string

	// Counterexample assigns every declared variable. It is nil when the
	// expressions are equivalent. The truth-table strategy always reports
	// the lowest differing row.
	Counterexample boolexpr.Assignment

	// Values of the first and second expression under Counterexample.
	Left, Right bool

	// Rows is the number of truth-table rows evaluated, 0 for the other
	// strategies.
	Rows uint64
}

func (r Report) Equivalent() bool {
	return r.Result == Equivalent
}

// AreEquivalent reports whether expr1 and expr2 take the same value under
// every assignment of variables, using truth-table enumeration.
//
// Parse failures are *boolexpr.InvalidExpressionError and a free variable
// missing from variables is a *boolexpr.UndeclaredVariableError. An empty
// variable list yields a single row, comparing constant expressions.
func AreEquivalent(expr1, expr2 string, variables []string) (bool, error) {
	r, err := NewChecker(Options{}).CheckStrings(context.Background(), expr1, expr2, variables)
	if err != nil {
		return false, err
	}
	return r.Equivalent(), nil
}

// checkDeclared returns an error naming the first free variable of e missing
// from declared.
func checkDeclared(e boolexpr.Expr, declared map[string]struct{}) error {
	for _, v := range boolexpr.Variables(e) {
		if _, ok := declared[v]; !ok {
			return &boolexpr.UndeclaredVariableError{Name: v, Expr: e.String()}
		}
	}
	return nil
}
