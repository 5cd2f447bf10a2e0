package boolexpr

import (
	"errors"
	"fmt"
)

// Assignment maps variable names to truth values.
type Assignment map[string]bool

// MaxBoundVariables is the largest variable list Bind accepts. Rows are
// indexed with a uint64 and row counts must stay representable.
const MaxBoundVariables = 62

// Bound is an expression whose variables have been resolved to positions in
// an ordered variable list. It is read-only and safe for concurrent use.
type Bound struct {
	vars []string
	root node
}

type opcode uint8

const (
	opConst opcode = iota
	opVar
	opNot
	opAnd
	opOr
	opXor
	opImplies
	opEquiv
	opITE
)

type node struct {
	op   opcode
	val  bool
	bit  uint64
	args []node
}

// CheckVariables returns ErrDuplicateVariable if vars names a variable twice.
func CheckVariables(vars []string) error {
	seen := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		if _, ok := seen[v]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateVariable, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Bind resolves every free variable of e to its index in vars. Variable k is
// read from bit k of the row passed to EvalBits.
func Bind(e Expr, vars []string) (*Bound, error) {
	if len(vars) > MaxBoundVariables {
		return nil, fmt.Errorf("cannot bind %d variables, at most %d are supported", len(vars), MaxBoundVariables)
	}
	if err := CheckVariables(vars); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		index[v] = i
	}
	root, err := compile(e, index)
	if err != nil {
		var undeclared *UndeclaredVariableError
		if errors.As(err, &undeclared) {
			undeclared.Expr = e.String()
		}
		return nil, err
	}
	return &Bound{vars: vars, root: root}, nil
}

// Variables returns the variable list b was bound to.
func (b *Bound) Variables() []string {
	return b.vars
}

// Rows returns the number of rows of the truth table of b.
func (b *Bound) Rows() uint64 {
	return uint64(1) << len(b.vars)
}

// EvalBits evaluates b under the assignment encoded by row: bit k set means
// variable k is true.
func (b *Bound) EvalBits(row uint64) bool {
	return b.root.eval(row)
}

// Assignment decodes row into a named assignment.
func (b *Bound) Assignment(row uint64) Assignment {
	return RowAssignment(b.vars, row)
}

// RowAssignment decodes row over vars: variable k takes bit k of row.
func RowAssignment(vars []string, row uint64) Assignment {
	a := make(Assignment, len(vars))
	for k, v := range vars {
		a[v] = row>>uint(k)&1 == 1
	}
	return a
}

func compile(e Expr, index map[string]int) (node, error) {
	switch e := e.(type) {
	case Constant:
		return node{op: opConst, val: e.Val}, nil
	case Variable:
		k, ok := index[e.Name]
		if !ok {
			return node{}, &UndeclaredVariableError{Name: e.Name}
		}
		return node{op: opVar, bit: uint64(1) << uint(k)}, nil
	}

	var op opcode
	switch e.(type) {
	case NotExpr:
		op = opNot
	case AndExpr:
		op = opAnd
	case OrExpr:
		op = opOr
	case XorExpr:
		op = opXor
	case ImpliesExpr:
		op = opImplies
	case EquivExpr:
		op = opEquiv
	case ITEExpr:
		op = opITE
	default:
		return node{}, fmt.Errorf("unsupported expression %T", e)
	}
	operands := Operands(e)
	args := make([]node, len(operands))
	for i, o := range operands {
		n, err := compile(o, index)
		if err != nil {
			return node{}, err
		}
		args[i] = n
	}
	return node{op: op, args: args}, nil
}

func (n *node) eval(row uint64) bool {
	switch n.op {
	case opConst:
		return n.val
	case opVar:
		return row&n.bit != 0
	case opNot:
		return !n.args[0].eval(row)
	case opAnd:
		for i := range n.args {
			if !n.args[i].eval(row) {
				return false
			}
		}
		return true
	case opOr:
		for i := range n.args {
			if n.args[i].eval(row) {
				return true
			}
		}
		return false
	case opXor:
		res := false
		for i := range n.args {
			res = res != n.args[i].eval(row)
		}
		return res
	case opImplies:
		return !n.args[0].eval(row) || n.args[1].eval(row)
	case opEquiv:
		first := n.args[0].eval(row)
		for i := 1; i < len(n.args); i++ {
			if n.args[i].eval(row) != first {
				return false
			}
		}
		return true
	case opITE:
		if n.args[0].eval(row) {
			return n.args[1].eval(row)
		}
		return n.args[2].eval(row)
	}
	panic("invalid opcode")
}

// Eval reduces e to a truth value under a. Every free variable of e must be
// bound by a.
func Eval(e Expr, a Assignment) (bool, error) {
	r := Substitute(e, a)
	c, ok := r.(Constant)
	if !ok {
		names := Variables(r)
		return false, &UndeclaredVariableError{Name: names[0], Expr: e.String()}
	}
	return c.Val, nil
}

// Substitute replaces the variables bound by a with constants and folds the
// result. Variables missing from a are left in place.
func Substitute(e Expr, a Assignment) Expr {
	switch e := e.(type) {
	case Constant:
		return e
	case Variable:
		if v, ok := a[e.Name]; ok {
			return Const(v)
		}
		return e
	case NotExpr:
		x := Substitute(e.X, a)
		if c, ok := x.(Constant); ok {
			return Const(!c.Val)
		}
		return Not(x)
	case AndExpr:
		var rest []Expr
		for _, arg := range e.Args {
			x := Substitute(arg, a)
			if c, ok := x.(Constant); ok {
				if !c.Val {
					return False
				}
				continue
			}
			rest = append(rest, x)
		}
		return And(rest...)
	case OrExpr:
		var rest []Expr
		for _, arg := range e.Args {
			x := Substitute(arg, a)
			if c, ok := x.(Constant); ok {
				if c.Val {
					return True
				}
				continue
			}
			rest = append(rest, x)
		}
		return Or(rest...)
	case XorExpr:
		var rest []Expr
		parity := false
		for _, arg := range e.Args {
			x := Substitute(arg, a)
			if c, ok := x.(Constant); ok {
				parity = parity != c.Val
				continue
			}
			rest = append(rest, x)
		}
		if len(rest) == 0 {
			return Const(parity)
		}
		if parity {
			return Not(Xor(rest...))
		}
		return Xor(rest...)
	case ImpliesExpr:
		l := Substitute(e.L, a)
		r := Substitute(e.R, a)
		if c, ok := l.(Constant); ok {
			if !c.Val {
				return True
			}
			return r
		}
		if c, ok := r.(Constant); ok {
			if c.Val {
				return True
			}
			return Not(l)
		}
		return Implies(l, r)
	case EquivExpr:
		args := make([]Expr, len(e.Args))
		allConst := true
		for i, arg := range e.Args {
			args[i] = Substitute(arg, a)
			if _, ok := args[i].(Constant); !ok {
				allConst = false
			}
		}
		if allConst {
			first := args[0].(Constant).Val
			for _, x := range args[1:] {
				if x.(Constant).Val != first {
					return False
				}
			}
			return True
		}
		return Equiv(args...)
	case ITEExpr:
		cond := Substitute(e.Cond, a)
		if c, ok := cond.(Constant); ok {
			if c.Val {
				return Substitute(e.Then, a)
			}
			return Substitute(e.Else, a)
		}
		return ITE(cond, Substitute(e.Then, a), Substitute(e.Else, a))
	}
	return e
}
