package sat

import "strconv"

// LBool is a lifted boolean: True, False, or Unknown when the variable has
// not been assigned yet.
type LBool int8

const (
	Unknown LBool = 0
	True    LBool = 1
	False   LBool = -1
)

// Lift returns the LBool corresponding to b.
func Lift(b bool) LBool {
	if b {
		return True
	}
	return False
}

// Opposite maps True to False, False to True and Unknown to itself.
func (l LBool) Opposite() LBool {
	return -l
}

func (l LBool) String() string {
	switch l {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Literal is a variable or its negation. Variable v is encoded as 2v and its
// negation as 2v+1, so that literals can directly index per-literal slices.
type Literal int

// PositiveLiteral returns the literal asserting variable varID.
func PositiveLiteral(varID int) Literal {
	return Literal(varID * 2)
}

// NegativeLiteral returns the literal negating variable varID.
func NegativeLiteral(varID int) Literal {
	return PositiveLiteral(varID).Opposite()
}

// FromDIMACS converts a signed, 1-based DIMACS literal.
func FromDIMACS(l int) Literal {
	if l < 0 {
		return NegativeLiteral(-l - 1)
	}
	return PositiveLiteral(l - 1)
}

// DIMACS returns the signed, 1-based DIMACS form of the literal.
func (l Literal) DIMACS() int {
	if l.IsPositive() {
		return l.VarID() + 1
	}
	return -(l.VarID() + 1)
}

// VarID returns the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether l asserts its variable rather than its negation.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return strconv.Itoa(l.VarID())
	}
	return "!" + strconv.Itoa(l.VarID())
}
