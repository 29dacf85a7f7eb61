// =============================================================================
// Openings Book Converter - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   openbook validate [--input FILE] [--error-log FILE]
//
// Checks the whole catalog without writing a book and prints every problem.
// Exits non-zero when a line would make 'convert' fail. Warnings alone do
// not fail the command.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/othello-tools/openbook/internal/catalog"
	"github.com/othello-tools/openbook/internal/config"
	"github.com/othello-tools/openbook/internal/validation"
)

var (
	validateInput string
	errorLogFile  string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the openings catalog without converting it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, func(cfg *config.Config) {
			if cmd.Flags().Changed("input") {
				cfg.InputFile = validateInput
			}
		})
		if err != nil {
			return err
		}
		log := newLogger(cmd, cfg)

		reader, err := catalog.Open(cfg.InputFile, cfg.Encoding)
		if err != nil {
			return err
		}
		defer reader.Close()

		log.Debug("Validating %s (encoding %s, tag %s)", cfg.InputFile, cfg.Encoding, cfg.ReverseTag)

		result, err := validation.Validate(reader, cfg.ReverseTag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, validation.FormatErrors(result.Errors))
		fmt.Fprintf(out, "%d line(s) checked, %d tagged, %d error(s), %d warning(s)\n",
			result.LinesValidated, result.TaggedLines, result.ErrorCount, result.WarningCount)

		if errorLogFile != "" && len(result.Errors) > 0 {
			if err := validation.WriteErrorLog(result.Errors, errorLogFile); err != nil {
				return err
			}
			log.Info("Error log written to %s", errorLogFile)
		}

		if !result.IsValid() {
			return fmt.Errorf("%s: %d invalid line(s)", cfg.InputFile, result.ErrorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Openings catalog to check")
	validateCmd.Flags().StringVar(&errorLogFile, "error-log", "", "Also write the problems to this file")
}
