package boolexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The grammar mirrors the precedence of the bitwise operators it borrows its
// syntax from, lowest first: "|", "^", "&", then the implication arrows
// ">>" and "<<", then the prefix "~".

type orNode struct {
	Terms []*xorNode `@@ ( "|" @@ )*`
}

type xorNode struct {
	Terms []*andNode `@@ ( "^" @@ )*`
}

type andNode struct {
	Terms []*arrowNode `@@ ( "&" @@ )*`
}

type arrowNode struct {
	Head *unaryNode `@@`
	Tail []*arrowOp `@@*`
}

type arrowOp struct {
	Op      string     `@( ">>" | "<<" )`
	Operand *unaryNode `@@`
}

type unaryNode struct {
	Not  *unaryNode `  "~" @@`
	Atom *atomNode  `| @@`
}

type atomNode struct {
	Const *string  `  @( "True" | "False" )`
	Ref   *refNode `| @@`
	Group *orNode  `| "(" @@ ")"`
}

// refNode is either a variable or, when followed by an argument list, a call
// to one of the named connectives.
type refNode struct {
	Name string    `@Ident`
	Call *callNode `@@?`
}

type callNode struct {
	Open string    `@"("`
	Args []*orNode `( @@ ( "," @@ )* )? ")"`
}

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Arrow", Pattern: `>>|<<`},
	{Name: "Punct", Pattern: `[~&|^(),]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[orNode](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses s into an expression. Any failure is an
// *InvalidExpressionError naming s.
func Parse(s string) (Expr, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &InvalidExpressionError{Input: s, Err: errors.New("empty expression")}
	}
	tree, err := exprParser.ParseString("", s)
	if err != nil {
		return nil, &InvalidExpressionError{Input: s, Err: err}
	}
	e, err := tree.build()
	if err != nil {
		return nil, &InvalidExpressionError{Input: s, Err: err}
	}
	return e, nil
}

// MustParse is like Parse but panics on error. It is meant for fixed inputs.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (n *orNode) build() (Expr, error) {
	args := make([]Expr, len(n.Terms))
	for i, t := range n.Terms {
		e, err := t.build()
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return Or(args...), nil
}

func (n *xorNode) build() (Expr, error) {
	args := make([]Expr, len(n.Terms))
	for i, t := range n.Terms {
		e, err := t.build()
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return Xor(args...), nil
}

func (n *andNode) build() (Expr, error) {
	args := make([]Expr, len(n.Terms))
	for i, t := range n.Terms {
		e, err := t.build()
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return And(args...), nil
}

func (n *arrowNode) build() (Expr, error) {
	acc, err := n.Head.build()
	if err != nil {
		return nil, err
	}
	for _, op := range n.Tail {
		rhs, err := op.Operand.build()
		if err != nil {
			return nil, err
		}
		if op.Op == ">>" {
			acc = Implies(acc, rhs)
		} else {
			acc = Implies(rhs, acc)
		}
	}
	return acc, nil
}

func (n *unaryNode) build() (Expr, error) {
	if n.Not != nil {
		x, err := n.Not.build()
		if err != nil {
			return nil, err
		}
		return Not(x), nil
	}
	return n.Atom.build()
}

func (n *atomNode) build() (Expr, error) {
	switch {
	case n.Const != nil:
		return Const(*n.Const == "True"), nil
	case n.Ref != nil:
		return n.Ref.build()
	case n.Group != nil:
		return n.Group.build()
	}
	return nil, errors.New("empty atom")
}

func (n *refNode) build() (Expr, error) {
	if n.Call == nil {
		return Var(n.Name), nil
	}
	args := make([]Expr, len(n.Call.Args))
	for i, a := range n.Call.Args {
		e, err := a.build()
		if err != nil {
			return nil, err
		}
		args[i] = e
	}
	return connective(n.Name, args)
}

// connective resolves the function-call spelling of an operator.
func connective(name string, args []Expr) (Expr, error) {
	arity := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", name, n, len(args))
		}
		return nil
	}
	switch name {
	case "And":
		return And(args...), nil
	case "Or":
		return Or(args...), nil
	case "Xor":
		return Xor(args...), nil
	case "Nand":
		return Not(And(args...)), nil
	case "Nor":
		return Not(Or(args...)), nil
	case "Equivalent":
		return Equiv(args...), nil
	case "Not":
		if err := arity(1); err != nil {
			return nil, err
		}
		return Not(args[0]), nil
	case "Implies":
		if err := arity(2); err != nil {
			return nil, err
		}
		return Implies(args[0], args[1]), nil
	case "ITE":
		if err := arity(3); err != nil {
			return nil, err
		}
		return ITE(args[0], args[1], args[2]), nil
	}
	return nil, fmt.Errorf("unknown function %q", name)
}
