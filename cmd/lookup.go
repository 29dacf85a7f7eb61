// =============================================================================
// Openings Book Converter - Lookup Command
// =============================================================================
//
// COMMAND USAGE:
//   openbook lookup [--book FILE] [MOVES]
//
// Loads a book the way the game engine does and prints the book move that
// follows MOVES (coordinate notation, e.g. "f5d6"). Without MOVES it prints
// the first move of the book. The format is taken from --format or guessed
// from the file extension.
//
// OUTPUT:
//   f5d6 -> 18 (c3)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/othello-tools/openbook/internal/book"
	"github.com/othello-tools/openbook/internal/notation"
)

var (
	bookFile   string
	bookFormat string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [moves]",
	Short: "Print the next book move after a move history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var moves string
		var history []int
		if len(args) == 1 {
			moves = args[0]
			var err error
			if history, err = notation.Indices(moves, false); err != nil {
				return err
			}
		}

		format := book.FormatFromPath(bookFile)
		if bookFormat != "" {
			var err error
			if format, err = book.ParseFormat(bookFormat); err != nil {
				return err
			}
		}

		b, err := book.Load(cmd.Context(), format, bookFile)
		if err != nil {
			return fmt.Errorf("%s: %w", bookFile, err)
		}

		next, ok := b.Next(history)
		if !ok {
			return fmt.Errorf("no book move after %q", moves)
		}
		square, err := notation.Square(next)
		if err != nil {
			return err
		}

		if moves == "" {
			moves = "start"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d (%s)\n", moves, next, square)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVarP(&bookFile, "book", "b", "openings.csv", "Book to search")
	lookupCmd.Flags().StringVarP(&bookFormat, "format", "f", "", "Book format (default: from the file extension)")
}
