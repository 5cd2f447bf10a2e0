package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sleepypower/circuit-simplifier/internal/simplify"
)

var simplifyForm string

func newSimplifyCmd() *cobra.Command {
	simplifyCmd := &cobra.Command{
		Use:   "simplify EXPR...",
		Short: "Print the simplified form of each expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := conf.Form
			if cmd.Flags().Changed("form") {
				name = simplifyForm
			}
			form, err := simplify.ParseForm(name)
			if err != nil {
				return err
			}

			s := simplify.NewBooleanSimplifier(logger)
			for _, expr := range args {
				out, err := s.Simplify(expr, form)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	simplifyCmd.Flags().StringVar(&simplifyForm, "form", "", "Output form: auto, dnf or cnf")
	return simplifyCmd
}

func newVarsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vars EXPR",
		Short: "Print the variables of an expression in alphabetical order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := simplify.NewBooleanSimplifier(logger).ExtractVariables(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(vars, ","))
			return nil
		},
	}
}
