// Package bdd compiles expressions into reduced ordered binary decision
// diagrams backed by rudd. Variable i of a Diagram is the i-th name of its
// variable list, the first one being at the top.
package bdd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/dalzilio/rudd"
	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
)

// ops is the subset of the rudd BDD API used here.
type ops interface {
	Ithvar(i int) rudd.Node
	NIthvar(i int) rudd.Node
	Not(n rudd.Node) rudd.Node
	And(n ...rudd.Node) rudd.Node
	Or(n ...rudd.Node) rudd.Node
	Imp(n1, n2 rudd.Node) rudd.Node
	Equiv(n1, n2 rudd.Node) rudd.Node
	Equal(n1, n2 rudd.Node) bool
	True() rudd.Node
	False() rudd.Node
	Allsat(f func([]int) error, n rudd.Node) error
	Satcount(n rudd.Node) *big.Int
}

// Cube values: a variable is either fixed to false or true, or free.
const (
	CubeFalse    = 0
	CubeTrue     = 1
	CubeDontCare = -1
)

// Cube is a conjunction of literals, one entry per variable of the Diagram.
type Cube []int

// Diagram builds nodes over a fixed variable list.
type Diagram struct {
	b     ops
	vars  []string
	index map[string]int
}

// New returns a diagram over vars. vars must not contain duplicates.
func New(vars []string) (*Diagram, error) {
	if err := boolexpr.CheckVariables(vars); err != nil {
		return nil, err
	}
	// rudd needs at least one variable.
	b, err := rudd.New(max(len(vars), 1))
	if err != nil {
		return nil, fmt.Errorf("could not create BDD: %w", err)
	}
	d := &Diagram{
		b:     b,
		vars:  vars,
		index: make(map[string]int, len(vars)),
	}
	for i, v := range vars {
		d.index[v] = i
	}
	return d, nil
}

func (d *Diagram) Variables() []string {
	return d.vars
}

// Build returns the node of e. Every free variable of e must belong to the
// diagram's variables.
func (d *Diagram) Build(e boolexpr.Expr) (rudd.Node, error) {
	n, err := d.build(e)
	if err != nil {
		var undeclared *boolexpr.UndeclaredVariableError
		if errors.As(err, &undeclared) {
			undeclared.Expr = e.String()
		}
		return nil, err
	}
	return n, nil
}

func (d *Diagram) build(e boolexpr.Expr) (rudd.Node, error) {
	switch e := e.(type) {
	case boolexpr.Constant:
		if e.Val {
			return d.b.True(), nil
		}
		return d.b.False(), nil
	case boolexpr.Variable:
		i, ok := d.index[e.Name]
		if !ok {
			return nil, &boolexpr.UndeclaredVariableError{Name: e.Name}
		}
		return d.b.Ithvar(i), nil
	}

	operands := boolexpr.Operands(e)
	args := make([]rudd.Node, len(operands))
	for i, o := range operands {
		n, err := d.build(o)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}

	switch e.(type) {
	case boolexpr.NotExpr:
		return d.b.Not(args[0]), nil
	case boolexpr.AndExpr:
		return d.b.And(args...), nil
	case boolexpr.OrExpr:
		return d.b.Or(args...), nil
	case boolexpr.XorExpr:
		acc := d.b.False()
		for _, a := range args {
			acc = d.Xor(acc, a)
		}
		return acc, nil
	case boolexpr.ImpliesExpr:
		return d.b.Imp(args[0], args[1]), nil
	case boolexpr.EquivExpr:
		acc := d.b.True()
		for _, a := range args[1:] {
			acc = d.b.And(acc, d.b.Equiv(args[0], a))
		}
		return acc, nil
	case boolexpr.ITEExpr:
		return d.b.Or(
			d.b.And(args[0], args[1]),
			d.b.And(d.b.Not(args[0]), args[2]),
		), nil
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

func (d *Diagram) Not(n rudd.Node) rudd.Node {
	return d.b.Not(n)
}

func (d *Diagram) And(n ...rudd.Node) rudd.Node {
	return d.b.And(n...)
}

func (d *Diagram) Or(n ...rudd.Node) rudd.Node {
	return d.b.Or(n...)
}

func (d *Diagram) Xor(n1, n2 rudd.Node) rudd.Node {
	return d.b.Not(d.b.Equiv(n1, n2))
}

// Equal reports whether n1 and n2 denote the same function. Nodes are
// canonical, so this is a constant time check.
func (d *Diagram) Equal(n1, n2 rudd.Node) bool {
	return d.b.Equal(n1, n2)
}

func (d *Diagram) IsTrue(n rudd.Node) bool {
	return d.b.Equal(n, d.b.True())
}

func (d *Diagram) IsFalse(n rudd.Node) bool {
	return d.b.Equal(n, d.b.False())
}

// Count returns the number of assignments of the diagram's variables that
// satisfy n.
func (d *Diagram) Count(n rudd.Node) *big.Int {
	c := d.b.Satcount(n)
	if len(d.vars) == 0 {
		// The placeholder variable doubles every count.
		c = new(big.Int).Rsh(c, 1)
	}
	return c
}

// Cubes returns the disjoint cubes of the paths of n leading to true, in
// diagram order. The cubes of True are a single all don't-care cube and False
// has none.
func (d *Diagram) Cubes(n rudd.Node) ([]Cube, error) {
	var cubes []Cube
	err := d.b.Allsat(func(varset []int) error {
		c := make(Cube, len(d.vars))
		copy(c, varset)
		cubes = append(cubes, c)
		return nil
	}, n)
	if err != nil {
		return nil, err
	}
	return cubes, nil
}

// CubeNode returns the node of the conjunction c.
func (d *Diagram) CubeNode(c Cube) rudd.Node {
	lits := make([]rudd.Node, 0, len(c))
	for i, v := range c {
		switch v {
		case CubeTrue:
			lits = append(lits, d.b.Ithvar(i))
		case CubeFalse:
			lits = append(lits, d.b.NIthvar(i))
		}
	}
	return d.b.And(lits...)
}

// Implies reports whether every model of n1 is a model of n2.
func (d *Diagram) Implies(n1, n2 rudd.Node) bool {
	return d.IsTrue(d.b.Imp(n1, n2))
}

// Assignment turns a cube into a full assignment, free variables being false.
func (d *Diagram) Assignment(c Cube) boolexpr.Assignment {
	a := make(boolexpr.Assignment, len(d.vars))
	for i, v := range d.vars {
		a[v] = c[i] == CubeTrue
	}
	return a
}

// Expr returns the conjunction of literals of c.
func (d *Diagram) Expr(c Cube) boolexpr.Expr {
	lits := make([]boolexpr.Expr, 0, len(c))
	for i, v := range c {
		switch v {
		case CubeTrue:
			lits = append(lits, boolexpr.Var(d.vars[i]))
		case CubeFalse:
			lits = append(lits, boolexpr.Not(boolexpr.Var(d.vars[i])))
		}
	}
	return boolexpr.And(lits...)
}
