package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/dimacs"
	"github.com/sleepypower/circuit-simplifier/internal/sat"
)

// variable for flags
var (
	solveGzip         bool
	solveMaxConflicts int64
	solveTimeout      time.Duration
	solveAll          bool
	solveCPUProfile   bool
	solveMemProfile   bool
)

func newSolveCmd() *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a DIMACS CNF instance",
		Long: `Solves a DIMACS CNF instance and prints search statistics as "c" lines,
followed by the models found, one per line.
Example) circuit-simplifier solve --all instance.cnf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if solveCPUProfile {
				f, err := os.Create("cpuprof")
				if err != nil {
					return err
				}
				defer f.Close()
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer pprof.StopCPUProfile()
			}

			if err := runSolve(cmd, args[0]); err != nil {
				return err
			}

			if solveMemProfile {
				f, err := os.Create("memprof")
				if err != nil {
					return err
				}
				defer f.Close()
				return pprof.WriteHeapProfile(f)
			}
			return nil
		},
	}

	solveCmd.Flags().BoolVar(&solveGzip, "gzip", false, "Read a gzipped instance")
	solveCmd.Flags().Int64Var(&solveMaxConflicts, "max-conflicts", -1, "Maximum number of conflicts per search (-1 = no maximum)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Maximum duration of each search (0 = no limit)")
	solveCmd.Flags().BoolVar(&solveAll, "all", false, "Enumerate every model")
	solveCmd.Flags().BoolVar(&solveCPUProfile, "cpuprof", false, "Save pprof CPU profile in cpuprof")
	solveCmd.Flags().BoolVar(&solveMemProfile, "memprof", false, "Save pprof memory profile in memprof")
	return solveCmd
}

func solverOptions() sat.Options {
	options := sat.DefaultOptions
	if solveMaxConflicts >= 0 {
		options.MaxConflicts = solveMaxConflicts
	}
	if solveTimeout > 0 {
		options.Timeout = solveTimeout
	}
	options.Logger = logger
	return options
}

func runSolve(cmd *cobra.Command, filename string) error {
	instance, err := dimacs.ParseDIMACS(filename, solveGzip)
	if err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	s := sat.NewSolver(solverOptions())
	if err := dimacs.Instantiate(s, instance); err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "c variables:  %d\n", instance.Variables)
	fmt.Fprintf(out, "c clauses:    %d\n", len(instance.Clauses))

	t := time.Now()
	status, err := search(cmd, s)
	if err != nil {
		return err
	}
	elapsed := time.Since(t)

	fmt.Fprintf(out, "c time (sec): %f\n", elapsed.Seconds())
	fmt.Fprintf(out, "c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Fprintf(out, "c models:     %d\n", len(s.Models))
	fmt.Fprintf(out, "c status:     %s\n", status.String())
	logger.Debug("instance solved",
		zap.String("file", filename),
		zap.Stringer("status", status),
		zap.Int("models", len(s.Models)))

	return printModels(out, instance, s.Models)
}

// search runs the solver once, or until every model is found with --all.
// The returned status is the one of the first search.
func search(cmd *cobra.Command, s *sat.Solver) (sat.LBool, error) {
	status := s.SolveContext(cmd.Context())
	if !solveAll {
		return status, nil
	}

	for r := status; r == sat.True; r = s.SolveContext(cmd.Context()) {
		// Forbid the last model: !(a & b & c) is (!a | !b | !c).
		model := s.LastModel()
		block := make([]sat.Literal, len(model))
		for i, b := range model {
			if b {
				block[i] = s.NegativeLiteral(i)
			} else {
				block[i] = s.PositiveLiteral(i)
			}
		}
		if err := s.AddClause(block); err != nil {
			return status, err
		}
	}
	return status, nil
}

func printModels(w io.Writer, instance *dimacs.Instance, models [][]bool) error {
	if len(instance.Names) > 0 {
		for i, name := range instance.VariableNames() {
			fmt.Fprintf(w, "c %s=%d\n", name, i+1)
		}
	}
	return dimacs.WriteModels(w, models)
}
