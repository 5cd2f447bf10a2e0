package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sleepypower/circuit-simplifier/internal/render"
)

// maxTableVariables bounds the printed table to 65536 rows.
const maxTableVariables = 16

var tableVars []string

func newTableCmd() *cobra.Command {
	tableCmd := &cobra.Command{
		Use:   "table EXPR...",
		Short: "Print the truth table of one or more expressions",
		Long: `Prints one row per assignment of the variables, with variable k set to bit k
of the row number. Rows where the expressions disagree are highlighted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := parseExprs(args)
			if err != nil {
				return err
			}
			vars := variables(cmd, tableVars, exprs)
			if len(vars) > maxTableVariables {
				return fmt.Errorf("table of %d variables: at most %d can be printed", len(vars), maxTableVariables)
			}

			out, err := render.TruthTable(vars, exprs)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	tableCmd.Flags().StringSliceVar(&tableVars, "vars", nil, "Comma-separated list of declared variables")
	return tableCmd
}
