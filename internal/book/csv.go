package book

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/othello-tools/openbook/internal/types"
)

// CSVWriter writes one comma-separated record of board indices per
// sequence, newline-terminated, no trailing comma.
type CSVWriter struct {
	file   *os.File
	buf    *bufio.Writer
	writer *csv.Writer
	record []string
}

// NewCSVWriter creates (or truncates) path and returns a CSVWriter on it.
func NewCSVWriter(path string) (*CSVWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create csv book: %w", err)
	}

	buf := bufio.NewWriter(file)
	return &CSVWriter{
		file:   file,
		buf:    buf,
		writer: csv.NewWriter(buf),
	}, nil
}

// Write appends one record.
func (w *CSVWriter) Write(seq types.Sequence) error {
	w.record = w.record[:0]
	for _, index := range seq.Indices {
		w.record = append(w.record, strconv.Itoa(index))
	}
	if err := w.writer.Write(w.record); err != nil {
		return fmt.Errorf("failed to write line %d: %w", seq.Line, err)
	}
	return nil
}

// Close flushes and closes the file.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	err := w.writer.Error()
	if err == nil {
		err = w.buf.Flush()
	}
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to close csv book: %w", err)
	}
	return nil
}

// ReadCSV parses a csv book into its index sequences.
func ReadCSV(r io.Reader) ([][]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	var sequences [][]int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return sequences, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv book: %w", err)
		}

		line, _ := reader.FieldPos(0)
		seq := make([]int, len(record))
		for i, field := range record {
			n, err := strconv.Atoi(field)
			if err != nil || n < 0 || n > 63 {
				return nil, fmt.Errorf("line %d: field %d %q is not a board index", line, i+1, field)
			}
			seq[i] = n
		}
		sequences = append(sequences, seq)
	}
}
