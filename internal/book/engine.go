package book

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/othello-tools/openbook/internal/types"
)

// =============================================================================
// ENGINE BOOK
// =============================================================================

// Book maps a move history to the next book move, the lookup structure the
// game engine builds from its openings file. A history key is every index
// followed by a comma ("19,34,"); the empty history is "".
//
// The first sequence to reach a history decides its next move; later
// sequences sharing the history do not override it.
type Book struct {
	next  map[string]int
	order []string
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{next: make(map[string]int)}
}

// HistoryKey renders a move history as a Book key.
func HistoryKey(history []int) string {
	var sb strings.Builder
	for _, index := range history {
		sb.WriteString(strconv.Itoa(index))
		sb.WriteByte(',')
	}
	return sb.String()
}

// Add records every prefix of a sequence. It returns the keys that were
// new to the book, in sequence order.
func (b *Book) Add(indices []int) []string {
	var added []string
	for k := range indices {
		key := HistoryKey(indices[:k])
		if _, ok := b.next[key]; ok {
			continue
		}
		b.next[key] = indices[k]
		b.order = append(b.order, key)
		added = append(added, key)
	}
	return added
}

// Next returns the book move after history.
func (b *Book) Next(history []int) (int, bool) {
	n, ok := b.next[HistoryKey(history)]
	return n, ok
}

// Len returns the number of histories in the book.
func (b *Book) Len() int {
	return len(b.order)
}

// LoadCSV builds a Book from a csv book.
func LoadCSV(r io.Reader) (*Book, error) {
	sequences, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	b := NewBook()
	for _, seq := range sequences {
		b.Add(seq)
	}
	return b, nil
}

// =============================================================================
// ENGINE WRITER
// =============================================================================

// EngineWriter writes the engine's openings file: for every new history, a
// line with the history key followed by a line with the next move.
//
//   (empty line for the first move)
//   19
//   19,
//   34
type EngineWriter struct {
	file *os.File
	buf  *bufio.Writer
	book *Book
}

// NewEngineWriter creates (or truncates) path and returns an EngineWriter.
func NewEngineWriter(path string) (*EngineWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine book: %w", err)
	}
	return &EngineWriter{
		file: file,
		buf:  bufio.NewWriter(file),
		book: NewBook(),
	}, nil
}

// Write adds the sequence's histories that are not yet in the book.
func (w *EngineWriter) Write(seq types.Sequence) error {
	for _, key := range w.book.Add(seq.Indices) {
		next := w.book.next[key]
		if _, err := fmt.Fprintf(w.buf, "%s\n%d\n", key, next); err != nil {
			return fmt.Errorf("failed to write line %d: %w", seq.Line, err)
		}
	}
	return nil
}

// Close flushes and closes the file.
func (w *EngineWriter) Close() error {
	err := w.buf.Flush()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to close engine book: %w", err)
	}
	return nil
}
