package boolexpr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExpression is matched by every parse failure.
	ErrInvalidExpression = errors.New("invalid boolean expression")

	// ErrUndeclaredVariable is matched when an expression mentions a variable
	// that has no binding.
	ErrUndeclaredVariable = errors.New("undeclared variable")

	// ErrDuplicateVariable is returned when a variable list names the same
	// variable twice.
	ErrDuplicateVariable = errors.New("duplicate variable")
)

// InvalidExpressionError reports an input that could not be parsed.
type InvalidExpressionError struct {
	Input string
	Err   error
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("invalid boolean expression %q: %v", e.Input, e.Err)
}

func (e *InvalidExpressionError) Unwrap() error {
	return e.Err
}

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

// UndeclaredVariableError reports a free variable missing from a variable
// list or an assignment.
type UndeclaredVariableError struct {
	Name string
	Expr string
}

func (e *UndeclaredVariableError) Error() string {
	if e.Expr == "" {
		return fmt.Sprintf("undeclared variable %q", e.Name)
	}
	return fmt.Sprintf("undeclared variable %q in %q", e.Name, e.Expr)
}

func (e *UndeclaredVariableError) Is(target error) bool {
	return target == ErrUndeclaredVariable
}
