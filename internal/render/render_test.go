package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/equiv"
)

func init() {
	NoColor = true
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "The expressions are equivalent.", Verdict(true))
	assert.Equal(t, "The expressions are not equivalent.", Verdict(false))
	assert.Contains(t, StyledVerdict(true), Verdict(true))
	assert.Contains(t, StyledVerdict(false), Verdict(false))
}

func TestAssignment(t *testing.T) {
	a := boolexpr.Assignment{"A": true, "B": false, "C": true}

	assert.Equal(t, "A=1 B=0 C=1", Assignment(a, []string{"A", "B", "C"}))
	assert.Equal(t, "C=1 A=1", Assignment(a, []string{"C", "A"}))
	assert.Equal(t, "", Assignment(a, nil))
}

func TestReport(t *testing.T) {
	c := equiv.NewChecker(equiv.Options{})

	r, err := c.CheckStrings(context.Background(), "A & ~B", "False", []string{"A", "B"})
	require.NoError(t, err)
	out := Report(r, "A & ~B", "False")

	assert.Contains(t, out, NotEquivalentMessage)
	assert.Contains(t, out, "A=1 B=0")
	assert.Contains(t, out, "A & ~B = 1")
	assert.Contains(t, out, "False = 0")
	assert.Contains(t, out, "rows: 2")

	r, err = c.CheckStrings(context.Background(), "A | B", "B | A", []string{"A", "B"})
	require.NoError(t, err)
	out = Report(r, "A | B", "B | A")

	assert.Contains(t, out, EquivalentMessage)
	assert.NotContains(t, out, "counterexample")
}

func TestTruthTable(t *testing.T) {
	exprs := []boolexpr.Expr{boolexpr.MustParse("A & B"), boolexpr.MustParse("A | B")}

	out, err := TruthTable([]string{"A", "B"}, exprs)

	require.NoError(t, err)
	assert.Contains(t, out, "A & B")
	assert.Contains(t, out, "A | B")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.GreaterOrEqual(t, len(lines), 5, "header and four rows")
}

func TestTruthTable_undeclared(t *testing.T) {
	_, err := TruthTable([]string{"A"}, []boolexpr.Expr{boolexpr.MustParse("A & B")})

	assert.ErrorIs(t, err, boolexpr.ErrUndeclaredVariable)
}

func TestPanel(t *testing.T) {
	out := Panel([]string{"first", "second"})

	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}
