package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sir-ca/internal/config"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sir",
		Short: "Probabilistic SIR cellular automaton",
		Long: `sir simulates epidemic spread on a toroidal grid. Every cell is
susceptible, infected or recovered, and changes state at random depending on
how many cells in the 3x3 window around it are infected.

Settings come from defaults, an optional YAML file (--config or $SIR_CONFIG),
SIR_* environment variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML config file (default $SIR_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: info, debug or trace")

	rootCmd.AddCommand(
		newRunCmd(),
		newViewCmd(),
		newParamsCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the effective configuration for cmd: defaults, the
// config file, SIR_* variables and finally any flags the user passed.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("SIR_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// bindSimFlags declares the full set of config flags on cmd.
func bindSimFlags(cmd *cobra.Command) {
	config.Default().Bind(cmd.Flags())
}
