package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/config"
	"github.com/sleepypower/circuit-simplifier/internal/render"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	logger *zap.Logger
	conf   config.Config
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "circuit-simplifier",
		Short:         "Simplify Boolean expressions and check their equivalence",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			render.NoColor = noColor

			// init creates the file.
			if cmd.Name() == "init" {
				conf = config.Default()
				return nil
			}
			conf, err = config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger.Debug("configuration loaded",
				zap.String("strategy", conf.Strategy),
				zap.Int("max_variables", conf.MaxVariables),
				zap.Int("workers", conf.Workers),
				zap.String("form", conf.Form))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default "+config.DefaultFile+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newEquivCmd())
	rootCmd.AddCommand(newSimplifyCmd())
	rootCmd.AddCommand(newVarsCmd())
	rootCmd.AddCommand(newTableCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newInitCmd())
	return rootCmd
}

func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "error: %s\n", err)
	}
	return err
}

// parseExprs parses every argument as an expression.
func parseExprs(args []string) ([]boolexpr.Expr, error) {
	exprs := make([]boolexpr.Expr, len(args))
	for i, a := range args {
		e, err := boolexpr.Parse(a)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

// variables returns the declared variables when the flag was set, and the
// sorted union of the free variables of exprs otherwise.
func variables(cmd *cobra.Command, declared []string, exprs []boolexpr.Expr) []string {
	if cmd.Flags().Changed("vars") {
		vars := make([]string, 0, len(declared))
		for _, v := range declared {
			if v = strings.TrimSpace(v); v != "" {
				vars = append(vars, v)
			}
		}
		return vars
	}

	seen := map[string]struct{}{}
	for _, e := range exprs {
		for _, v := range boolexpr.Variables(e) {
			seen[v] = struct{}{}
		}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}
