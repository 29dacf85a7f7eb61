// =============================================================================
// Openings Book Converter - Shared Types
// =============================================================================
//
// This package contains types shared by the converter pipeline and the book
// writers, kept apart to avoid import cycles. Types defined here are used by:
//   - converter
//   - book
//
// =============================================================================

package types

// =============================================================================
// SEQUENCE
// =============================================================================

// Sequence is one output record of the book: the board indices of an
// opening in play order.
type Sequence struct {
	// Line is the 1-based line number of the opening in the catalog.
	// Useful for error reporting and for the XLSX/SQLite encodings.
	Line int

	// Moves is the move string as it appeared in the catalog.
	Moves string

	// Reversed is true for the second record of a "(t3)" opening, whose
	// first three moves are played in reverse order.
	Reversed bool

	// Indices contains the board index (0-63) of every move.
	Indices []int
}
