// =============================================================================
// Openings Book Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool. It
// reads the openings catalog and writes the book.
//
// COMMAND USAGE:
//   openbook convert [flags]
//
// FLAGS:
//   --input, -i   : Catalog to read (default openings.dat)
//   --output, -o  : Book to write (default openings.csv)
//   --format, -f  : csv, engine, xlsx or sqlite
//   --encoding    : Character encoding of the catalog
//   --tag         : Reversal tag literal
//   --summary     : Append a run summary to this file
//
// Flags override config.yaml, which overrides the defaults.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/othello-tools/openbook/internal/config"
	"github.com/othello-tools/openbook/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	inputFile   string
	outputFile  string
	format      string
	encoding    string
	reverseTag  string
	summaryFile string
)

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the openings catalog into a book",
	Long: `The convert command translates every opening of the catalog into
board indices (8*row + column, a1 = 0) and writes one record per opening.
Openings tagged for reversal produce a second record with their first three
moves reversed.

The book is replaced only when the whole catalog converts. On the first
malformed line the run stops, the error names the line and the offending
character, and any existing book is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, applyConvertFlags(cmd))
		if err != nil {
			return err
		}

		result := converter.New(cfg, newLogger(cmd, cfg)).Run(cmd.Context())
		if !result.Success {
			return result.Error
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sequence(s) from %d opening(s) to %s\n",
			result.Stats.SequencesWritten, result.Stats.LinesRead, result.OutputFile)
		return nil
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Openings catalog to read")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Book file to write")
	convertCmd.Flags().StringVarP(&format, "format", "f", "", "Book format: csv, engine, xlsx or sqlite")
	convertCmd.Flags().StringVar(&encoding, "encoding", "", "Character encoding of the catalog")
	convertCmd.Flags().StringVar(&reverseTag, "tag", "", "Last-token literal marking reversed openings")
	convertCmd.Flags().StringVar(&summaryFile, "summary", "", "Append a run summary to this file")
}

// applyConvertFlags returns the overrides for the flags the user set.
func applyConvertFlags(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("input") {
			cfg.InputFile = inputFile
		}
		if flags.Changed("output") {
			cfg.OutputFile = outputFile
		}
		if flags.Changed("format") {
			cfg.Format = format
		}
		if flags.Changed("encoding") {
			cfg.Encoding = encoding
		}
		if flags.Changed("tag") {
			cfg.ReverseTag = reverseTag
		}
		if flags.Changed("summary") {
			cfg.SummaryFile = summaryFile
		}
	}
}
