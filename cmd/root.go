// =============================================================================
// Openings Book Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every subcommand is
// attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (openbook)
//   ├── convertCmd  (openbook convert)
//   ├── validateCmd (openbook validate)
//   ├── lookupCmd   (openbook lookup)
//   └── versionCmd  (openbook version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). The
//   configuration file is optional unless --config is given explicitly.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/othello-tools/openbook/internal/config"
	"github.com/othello-tools/openbook/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "openbook",
	Short: "Openings Book Converter - Translate Othello opening catalogs into engine books",
	Long: `Openings Book Converter reads a catalog of named Othello openings
(one opening per line, moves in coordinate notation such as "f5d6c3") and
writes an opening book of board indices for a game engine.

Openings whose last token is the reversal tag (default "(t3)") are written
twice: once in play order and once with their first three moves reversed.

Example Usage:
  openbook convert                        # openings.dat -> openings.csv
  openbook convert --format engine -o book.txt
  openbook validate --input openings.dat  # report every bad line
  openbook lookup f5d6                    # next book move after f5 d6`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main(). An interrupt
// cancels the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// HELPERS
// =============================================================================

// loadConfig reads the configuration file, applies the command-line
// overrides and validates the result. A missing config.yaml is
// only an error when --config was set explicitly.
func loadConfig(cmd *cobra.Command, apply func(*config.Config)) (*config.Config, error) {
	required := cmd.Flags().Changed("config")

	cfg, err := config.Load(cfgFile, required)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if apply != nil {
		apply(cfg)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns the logger for a command, writing to its error stream.
func newLogger(cmd *cobra.Command, cfg *config.Config) converter.Logger {
	return converter.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
}
