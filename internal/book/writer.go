// =============================================================================
// Openings Book Converter - Book Writers
// =============================================================================
//
// This module writes translated opening sequences to the book file. The
// default "csv" format is the openings book consumed by the game engine's
// build tooling; the other formats carry the same sequences for other
// consumers.
//
// FORMATS:
//   csv     - one line per sequence: "19,34,44,45"
//   engine  - history/next-move pairs loaded directly by the engine
//   xlsx    - one worksheet row per sequence (excelize)
//   sqlite  - one table row per sequence (sqlx + modernc.org/sqlite)
//
// Writers do not manage file replacement; callers hand them a temporary
// path (see utils.AtomicFile) and move it into place after Close.
//
// =============================================================================

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/othello-tools/openbook/internal/types"
)

// Format identifies a book encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatEngine Format = "engine"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatEngine, FormatXLSX, FormatSQLite:
		return f, nil
	default:
		return "", fmt.Errorf("unknown book format %q", name)
	}
}

// Writer receives sequences in output order.
type Writer interface {
	// Write appends one sequence to the book.
	Write(seq types.Sequence) error

	// Close flushes buffered data and releases the file. It must be called
	// exactly once, also after a failed Write.
	Close() error
}

// Options carries format-specific settings.
type Options struct {
	// SheetName is the worksheet name for FormatXLSX.
	SheetName string
}

// NewWriter creates a writer for the given format at path.
//
// PARAMETERS:
//   - ctx: Used by formats backed by a database connection.
//   - format: The book encoding.
//   - path: The file to create. An existing file is truncated.
//   - opts: Format-specific settings.
//
// RETURNS:
//   - The Writer.
//   - An error if the file cannot be created.
func NewWriter(ctx context.Context, format Format, path string, opts Options) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(path)
	case FormatEngine:
		return NewEngineWriter(path)
	case FormatXLSX:
		return NewXLSXWriter(path, opts.SheetName)
	case FormatSQLite:
		return NewSQLiteWriter(ctx, path)
	default:
		return nil, fmt.Errorf("unknown book format %q", format)
	}
}
