// Package boolexpr parses, prints and evaluates Boolean expressions.
//
// Expressions use the operators of the symbolic-algebra syntax they are
// usually written in: "~" for negation, "&" for conjunction, "|" for
// disjunction, "^" for exclusive or, ">>" and "<<" for implication, plus the
// constants True and False and the function spellings And, Or, Not, Xor,
// Nand, Nor, Implies, Equivalent and ITE.
//
// Parsed expressions are immutable. Bind resolves an expression against an
// ordered variable list so that it can be evaluated directly on truth-table
// rows, where variable k is bit k of the row index.
package boolexpr
