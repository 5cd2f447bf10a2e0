package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sleepypower/circuit-simplifier/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultFile
			}
			if err := config.Write(path, config.Default()); err != nil {
				return fmt.Errorf("initializing config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
			return nil
		},
	}
}
