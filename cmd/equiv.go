package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/equiv"
	"github.com/sleepypower/circuit-simplifier/internal/render"
)

// variable for flags
var (
	equivVars         []string
	equivStrategy     string
	equivWorkers      int
	equivMaxVariables int
	equivTimeout      time.Duration
)

func newEquivCmd() *cobra.Command {
	equivCmd := &cobra.Command{
		Use:   "equiv EXPR1 EXPR2",
		Short: "Check whether two expressions are equivalent",
		Long: `Checks that two expressions take the same value under every assignment of
the declared variables. When --vars is omitted, the variables of both expressions
are used in alphabetical order.
Example) circuit-simplifier equiv "(A | B) & (A | C)" "A | B & C"`,
		Args: cobra.ExactArgs(2),
		RunE: runEquiv,
	}

	equivCmd.Flags().StringSliceVar(&equivVars, "vars", nil, "Comma-separated list of declared variables")
	equivCmd.Flags().StringVar(&equivStrategy, "strategy", "", "Strategy: truth-table, sat or bdd")
	equivCmd.Flags().IntVar(&equivWorkers, "workers", 0, "Goroutines enumerating the truth table")
	equivCmd.Flags().IntVar(&equivMaxVariables, "max-variables", 0, "Maximum number of variables of the truth table")
	equivCmd.Flags().DurationVar(&equivTimeout, "timeout", 0, "Abort the check after this duration (0 = no limit)")
	return equivCmd
}

func checkerOptions(cmd *cobra.Command) (equiv.Options, error) {
	cfg := conf
	if cmd.Flags().Changed("strategy") {
		cfg.Strategy = equivStrategy
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = equivWorkers
	}
	if cmd.Flags().Changed("max-variables") {
		cfg.MaxVariables = equivMaxVariables
	}
	if err := cfg.Validate(); err != nil {
		return equiv.Options{}, err
	}
	return cfg.CheckerOptions(logger)
}

func runEquiv(cmd *cobra.Command, args []string) error {
	exprs, err := parseExprs(args)
	if err != nil {
		return err
	}
	vars := variables(cmd, equivVars, exprs)

	opts, err := checkerOptions(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if equivTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, equivTimeout)
		defer cancel()
	}

	report, err := equiv.NewChecker(opts).Check(ctx, exprs[0], exprs[1], vars)
	if err != nil {
		return err
	}
	logger.Debug("equivalence checked",
		zap.Stringer("strategy", report.Strategy),
		zap.Stringer("result", report.Result),
		zap.Strings("variables", vars))

	fmt.Fprint(cmd.OutOrStdout(), render.Report(report, args[0], args[1]))
	return nil
}
