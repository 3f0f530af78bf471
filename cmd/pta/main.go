package main

import (
	"fmt"
	"os"

	"pta/internal/cli"
	"pta/internal/cli/commands"
	"pta/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "pta",
		Short:   "Pytest test suite analyzer",
		Long:    `Scans a pytest suite, extracts every test function with its line number and markers, classifies tests by module and priority, and writes a summary report.`,
		Version: version,
		// Errors are printed once below
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Register all commands
	cmds := commands.NewCommands(cfg, os.Stdout)
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
