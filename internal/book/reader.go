package book

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// =============================================================================
// BOOK LOADING
// =============================================================================

// FormatFromPath guesses a book format from the file extension. Unknown
// extensions mean FormatCSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	case ".txt", ".book":
		return FormatEngine
	default:
		return FormatCSV
	}
}

// Load reads a book written in any format back into a Book.
func Load(ctx context.Context, format Format, path string) (*Book, error) {
	var sequences [][]int
	var err error

	switch format {
	case FormatCSV:
		var file *os.File
		if file, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("failed to open book: %w", err)
		}
		defer file.Close()
		return LoadCSV(file)
	case FormatEngine:
		return loadEngine(path)
	case FormatXLSX:
		sequences, err = ReadXLSX(path, "")
	case FormatSQLite:
		sequences, err = readSQLiteSequences(ctx, path)
	default:
		return nil, fmt.Errorf("unknown book format %q", format)
	}
	if err != nil {
		return nil, err
	}

	b := NewBook()
	for _, seq := range sequences {
		b.Add(seq)
	}
	return b, nil
}

func readSQLiteSequences(ctx context.Context, path string) ([][]int, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}
	rows, err := ReadSQLite(ctx, path)
	if err != nil {
		return nil, err
	}

	sequences := make([][]int, 0, len(rows))
	for _, row := range rows {
		seq, err := parseIndices(row.Indices)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.ID, err)
		}
		sequences = append(sequences, seq)
	}
	return sequences, nil
}

// loadEngine reads the history/next-move line pairs written by
// EngineWriter.
func loadEngine(path string) (*Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}
	defer file.Close()

	b := NewBook()
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		key := strings.TrimRight(scanner.Text(), "\r")
		if !scanner.Scan() {
			return nil, fmt.Errorf("line %d: history %q has no next move", line, key)
		}
		line++
		next, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || next < 0 || next > 63 {
			return nil, fmt.Errorf("line %d: %q is not a board index", line, scanner.Text())
		}
		if _, ok := b.next[key]; !ok {
			b.next[key] = next
			b.order = append(b.order, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read engine book: %w", err)
	}
	return b, nil
}

func parseIndices(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	seq := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 || n > 63 {
			return nil, fmt.Errorf("%q is not a board index", field)
		}
		seq[i] = n
	}
	return seq, nil
}
