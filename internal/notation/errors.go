package notation

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (wrapped in *MoveError) by the translator.
// Use errors.Is to check for them.
var (
	// ErrEmptyMoves indicates an empty move string.
	ErrEmptyMoves = errors.New("empty move string")

	// ErrOddLength indicates a move string whose length does not split
	// into whole two-character moves.
	ErrOddLength = errors.New("move string length mismatch")

	// ErrMalformedMove indicates a character outside a-h / 1-8.
	ErrMalformedMove = errors.New("malformed move")
)

// MoveError carries the move string and the offending character of a
// failed translation.
type MoveError struct {
	Moves string // the move string as given
	Pos   int    // 0-based byte offset of Char in Moves, -1 if not applicable
	Char  byte   // the offending character
	Err   error  // one of the sentinel errors above
}

func (e *MoveError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%v: %q (length %d)", e.Err, e.Moves, len(e.Moves))
	}
	return fmt.Sprintf("%v: %q has invalid character %q at position %d", e.Err, e.Moves, e.Char, e.Pos)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// IndexError reports a board index outside [0, 63].
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("board index %d out of range [0, %d]", e.Index, SquareCount-1)
}
