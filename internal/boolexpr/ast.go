package boolexpr

import (
	"sort"
	"strings"
)

// Expr is a parsed Boolean formula. Values are immutable once built: the
// constructors copy their operands and nothing in this package mutates a node
// after it has been returned.
type Expr interface {
	isExpr()
	String() string
	prec() int
}

// Operator precedence levels used by the printer, from lowest to highest.
const (
	precOr = iota + 1
	precXor
	precAnd
	precImplies
	precNot
	precAtom
)

// Constant is one of the two truth values.
type Constant struct {
	Val bool
}

// True is the constant denoting a tautology.
var True Expr = Constant{Val: true}

// False is the constant denoting a contradiction.
var False Expr = Constant{Val: false}

// Const returns the constant expression for v.
func Const(v bool) Expr {
	if v {
		return True
	}
	return False
}

func (Constant) isExpr()   {}
func (Constant) prec() int { return precAtom }
func (c Constant) String() string {
	if c.Val {
		return "True"
	}
	return "False"
}

// Variable is a named free variable.
type Variable struct {
	Name string
}

// Var returns the variable with the given name.
func Var(name string) Expr {
	return Variable{Name: name}
}

func (Variable) isExpr()          {}
func (Variable) prec() int        { return precAtom }
func (v Variable) String() string { return v.Name }

// NotExpr is a negation.
type NotExpr struct {
	X Expr
}

// Not negates x.
func Not(x Expr) Expr {
	return NotExpr{X: x}
}

func (NotExpr) isExpr()   {}
func (NotExpr) prec() int { return precNot }
func (n NotExpr) String() string {
	return "~" + wrap(n.X, precNot)
}

// AndExpr is a conjunction of at least two operands.
type AndExpr struct {
	Args []Expr
}

// And returns the conjunction of xs. The empty conjunction is True.
func And(xs ...Expr) Expr {
	switch len(xs) {
	case 0:
		return True
	case 1:
		return xs[0]
	}
	return AndExpr{Args: clone(xs)}
}

func (AndExpr) isExpr()          {}
func (AndExpr) prec() int        { return precAnd }
func (a AndExpr) String() string { return join(a.Args, " & ", precAnd) }

// OrExpr is a disjunction of at least two operands.
type OrExpr struct {
	Args []Expr
}

// Or returns the disjunction of xs. The empty disjunction is False.
func Or(xs ...Expr) Expr {
	switch len(xs) {
	case 0:
		return False
	case 1:
		return xs[0]
	}
	return OrExpr{Args: clone(xs)}
}

func (OrExpr) isExpr()          {}
func (OrExpr) prec() int        { return precOr }
func (o OrExpr) String() string { return join(o.Args, " | ", precOr) }

// XorExpr is true when an odd number of its operands are true.
type XorExpr struct {
	Args []Expr
}

// Xor returns the parity of xs. The empty parity is False.
func Xor(xs ...Expr) Expr {
	switch len(xs) {
	case 0:
		return False
	case 1:
		return xs[0]
	}
	return XorExpr{Args: clone(xs)}
}

func (XorExpr) isExpr()          {}
func (XorExpr) prec() int        { return precXor }
func (x XorExpr) String() string { return join(x.Args, " ^ ", precXor) }

// ImpliesExpr is the material implication L -> R.
type ImpliesExpr struct {
	L, R Expr
}

// Implies returns l -> r.
func Implies(l, r Expr) Expr {
	return ImpliesExpr{L: l, R: r}
}

func (ImpliesExpr) isExpr()   {}
func (ImpliesExpr) prec() int { return precImplies }

// The left operand binds like the chain it came from, the right one needs
// parentheses as soon as it is itself an implication.
func (i ImpliesExpr) String() string {
	return wrap(i.L, precImplies) + " >> " + wrap(i.R, precImplies+1)
}

// EquivExpr is true when all its operands have the same value.
type EquivExpr struct {
	Args []Expr
}

// Equiv returns the equivalence of xs. With fewer than two operands it is True.
func Equiv(xs ...Expr) Expr {
	if len(xs) < 2 {
		return True
	}
	return EquivExpr{Args: clone(xs)}
}

func (EquivExpr) isExpr()          {}
func (EquivExpr) prec() int        { return precAtom }
func (e EquivExpr) String() string { return call("Equivalent", e.Args...) }

// ITEExpr is the if-then-else connective.
type ITEExpr struct {
	Cond, Then, Else Expr
}

// ITE returns "if cond then t else e".
func ITE(cond, t, e Expr) Expr {
	return ITEExpr{Cond: cond, Then: t, Else: e}
}

func (ITEExpr) isExpr()          {}
func (ITEExpr) prec() int        { return precAtom }
func (i ITEExpr) String() string { return call("ITE", i.Cond, i.Then, i.Else) }

// Variables returns the sorted names of the free variables of e.
func Variables(e Expr) []string {
	seen := map[string]struct{}{}
	Walk(e, func(x Expr) {
		if v, ok := x.(Variable); ok {
			seen[v.Name] = struct{}{}
		}
	})
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Walk calls fn on e and on every sub-expression of e, parents first.
func Walk(e Expr, fn func(Expr)) {
	fn(e)
	for _, c := range Operands(e) {
		Walk(c, fn)
	}
}

// Operands returns the direct sub-expressions of e.
func Operands(e Expr) []Expr {
	switch e := e.(type) {
	case NotExpr:
		return []Expr{e.X}
	case AndExpr:
		return e.Args
	case OrExpr:
		return e.Args
	case XorExpr:
		return e.Args
	case EquivExpr:
		return e.Args
	case ImpliesExpr:
		return []Expr{e.L, e.R}
	case ITEExpr:
		return []Expr{e.Cond, e.Then, e.Else}
	default:
		return nil
	}
}

func clone(xs []Expr) []Expr {
	c := make([]Expr, len(xs))
	copy(c, xs)
	return c
}

func wrap(e Expr, min int) string {
	if e.prec() < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func join(args []Expr, sep string, p int) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = wrap(a, p)
	}
	return strings.Join(parts, sep)
}

func call(name string, args ...Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
