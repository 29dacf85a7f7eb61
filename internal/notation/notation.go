// =============================================================================
// Openings Book Converter - Move Notation Module
// =============================================================================
//
// This module translates opening move strings written in algebraic notation
// into flat board indices. It is the core of the converter: every other
// module either feeds move strings in or writes the resulting indices out.
//
// NOTATION:
//   A move is two characters: a column letter followed by a row digit.
//   Columns run "a" to "h" and rows run "1" to "8". Letters are accepted in
//   either case. A move string is a concatenation of moves in play order,
//   for example "f5d6c3d3c4".
//
// BOARD INDEX:
//   index = 8*row + col, where row 0 is rank "1" and col 0 is column "a".
//
//     a1 -> 0    h1 -> 7    d4 -> 27    e4 -> 28    a8 -> 56    h8 -> 63
//
// =============================================================================

package notation

import (
	"strconv"
	"strings"
)

// =============================================================================
// BOARD GEOMETRY
// =============================================================================

const (
	// BoardSize is the number of rows and columns on the board.
	BoardSize = 8

	// SquareCount is the number of cells on the board.
	SquareCount = BoardSize * BoardSize

	// columns and rows are the lookup tables used to decode a move.
	// The position of a character in the string is its zero-based value.
	columns = "abcdefgh"
	rows    = "12345678"
)

// =============================================================================
// TRANSLATION
// =============================================================================

// Translate converts a move string into its book record: the board index of
// every move, joined by commas and terminated by a newline.
//
// PARAMETERS:
//   - moves: The move string, e.g. "d3c5e6f6". Case-insensitive.
//   - reverseFirstThree: Reverse the order of the first three moves before
//     decoding. Used for openings carrying the "(t3)" tag.
//
// RETURNS:
//   - The record, e.g. "19,34,44,45\n".
//   - An error if the move string is empty, has odd length, or contains a
//     character outside the board coordinates.
func Translate(moves string, reverseFirstThree bool) (string, error) {
	indices, err := Indices(moves, reverseFirstThree)
	if err != nil {
		return "", err
	}
	return Format(indices), nil
}

// Indices converts a move string into the board index of every move, in
// play order (after the optional first-three reversal).
func Indices(moves string, reverseFirstThree bool) ([]int, error) {
	chunks, err := split(moves)
	if err != nil {
		return nil, err
	}

	if reverseFirstThree {
		chunks = reverseOpening(chunks)
	}

	indices := make([]int, len(chunks))
	for i, chunk := range chunks {
		index, err := decode(chunk.text)
		if err != nil {
			return nil, &MoveError{
				Moves: moves,
				Pos:   chunk.pos + err.offset,
				Char:  moves[chunk.pos+err.offset],
				Err:   ErrMalformedMove,
			}
		}
		indices[i] = index
	}

	return indices, nil
}

// Format renders board indices as a book record: decimal values joined by
// commas, no trailing comma, newline-terminated.
func Format(indices []int) string {
	var sb strings.Builder
	for i, index := range indices {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(index))
	}
	sb.WriteByte('\n')
	return sb.String()
}

// DecodeMove converts a single two-character move into its board index.
func DecodeMove(move string) (int, error) {
	if len(move) != 2 {
		return 0, &MoveError{Moves: move, Pos: -1, Err: ErrOddLength}
	}
	index, err := decode(normalize(move))
	if err != nil {
		return 0, &MoveError{Moves: move, Pos: err.offset, Char: move[err.offset], Err: ErrMalformedMove}
	}
	return index, nil
}

// Square converts a board index back into its lowercase move notation.
// It is the inverse of DecodeMove.
func Square(index int) (string, error) {
	if index < 0 || index >= SquareCount {
		return "", &IndexError{Index: index}
	}
	row, col := index/BoardSize, index%BoardSize
	return string([]byte{columns[col], rows[row]}), nil
}

// =============================================================================
// DECOMPOSITION
// =============================================================================

// chunk is one two-character move together with its offset in the
// original move string, kept for error reporting after reordering.
type chunk struct {
	text string
	pos  int
}

// split normalizes the move string and cuts it into two-character chunks.
func split(moves string) ([]chunk, error) {
	if moves == "" {
		return nil, &MoveError{Moves: moves, Pos: -1, Err: ErrEmptyMoves}
	}
	if len(moves)%2 != 0 {
		return nil, &MoveError{Moves: moves, Pos: -1, Err: ErrOddLength}
	}

	normalized := normalize(moves)
	chunks := make([]chunk, 0, len(normalized)/2)
	for i := 0; i < len(normalized); i += 2 {
		chunks = append(chunks, chunk{text: normalized[i : i+2], pos: i})
	}
	return chunks, nil
}

// reverseOpening applies the "(t3)" convention: the first three moves are
// played in reverse order. When fewer than three moves exist the whole
// prefix is reversed. Moves after the third keep their position.
func reverseOpening(chunks []chunk) []chunk {
	n := min(3, len(chunks))
	out := make([]chunk, len(chunks))
	copy(out, chunks)
	for i := 0; i < n/2; i++ {
		out[i], out[n-1-i] = out[n-1-i], out[i]
	}
	return out
}

// normalize lowercases ASCII letters only, so the byte length (and with it
// every error position) matches the input.
func normalize(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// decodeFailure records the offset of the first bad character of a chunk.
type decodeFailure struct {
	offset int
}

// decode maps a normalized two-character chunk to its board index.
func decode(move string) (int, *decodeFailure) {
	col := strings.IndexByte(columns, move[0])
	if col < 0 {
		return 0, &decodeFailure{offset: 0}
	}
	row := strings.IndexByte(rows, move[1])
	if row < 0 {
		return 0, &decodeFailure{offset: 1}
	}
	return BoardSize*row + col, nil
}
