package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sleepypower/circuit-simplifier/internal/boolexpr"
	"github.com/sleepypower/circuit-simplifier/internal/dimacs"
)

var exportOutput string

func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export EXPR",
		Short: "Write an expression as a DIMACS CNF instance",
		Long: `Writes the CNF of the expression in DIMACS format. Variable names are kept in
"c name=index" comment lines, which the solve command reads back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := boolexpr.Parse(args[0])
			if err != nil {
				return err
			}

			if exportOutput == "" {
				return dimacs.Write(cmd.OutOrStdout(), e)
			}
			if err := writeFile(exportOutput, func(w io.Writer) error { return dimacs.Write(w, e) }); err != nil {
				return err
			}
			logger.Debug("instance exported", zap.String("path", exportOutput))
			fmt.Fprintf(cmd.OutOrStdout(), "DIMACS file created: %s\n", exportOutput)
			return nil
		},
	}

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output path (default stdout)")
	return exportCmd
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
