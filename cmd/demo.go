package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleepypower/circuit-simplifier/internal/equiv"
	"github.com/sleepypower/circuit-simplifier/internal/render"
	"github.com/sleepypower/circuit-simplifier/internal/simplify"
)

var demoExpressions = []string{
	"A & B & ~(~A | B & C)",
	"A & ~A",
	"A | ~A",
	"A & (B | C) & (B | ~C)",
	"~(~(A & B))",
	"(A | B) & (A | C)",
	"A & B & ~(~A | B & C)",
	"(A & B) | (A & ~B) | (~A & B)",
}

var demoEquivalences = []struct {
	expr1, expr2 string
	vars         []string
}{
	{"A & B & ~(~A | B & C)", "A & B & ~C", []string{"A", "B", "C"}},
	{"A & ~A", "A | ~A", []string{"A"}},
	{"(A | B) & (A | C)", "A | (B & C)", []string{"A", "B", "C"}},
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Simplify and compare a fixed list of example expressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := simplify.NewBooleanSimplifier(logger)

			fmt.Fprintln(out, render.Title("Boolean Expression Simplification Examples:"))
			fmt.Fprintln(out, strings.Repeat("-", 50))
			for _, expr := range demoExpressions {
				simplified, err := s.Simplify(expr, simplify.FormAuto)
				if err != nil {
					fmt.Fprintf(out, "\nOriginal:   %s\nError:      %s\n", expr, err)
					continue
				}
				vars, err := s.ExtractVariables(expr)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "\nOriginal:   %s\nSimplified: %s\nVariables:  %s\n",
					expr, simplified, strings.Join(vars, ", "))
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, render.Title("Equivalence Examples:"))
			fmt.Fprintln(out, strings.Repeat("-", 50))
			for _, tc := range demoEquivalences {
				ok, err := equiv.AreEquivalent(tc.expr1, tc.expr2, tc.vars)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render.Panel([]string{
					tc.expr1,
					tc.expr2,
					render.StyledVerdict(ok),
				}))
			}
			return nil
		},
	}
}
