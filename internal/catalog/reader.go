// =============================================================================
// Openings Book Converter - Catalog Reader
// =============================================================================
//
// This module reads the openings catalog line by line. Each non-empty line
// has the form:
//
//   <moves> <tag1> <tag2> ... <tagN>
//
// for example:
//
//   f5d6c3d3c4f4f6f3e6e7 Tiger (t3)
//
// Only the first token (the move string) and the last token (possibly the
// reversal tag) carry meaning; middle tokens are kept but not interpreted.
//
// FEATURES:
//   - Streaming: one record at a time (Next / Record / Err / Close)
//   - Character encoding conversion (UTF-8, ISO-8859-1, Windows-1252, ...)
//   - Blank and whitespace-only lines are skipped
//   - Line numbers are 1-based and count skipped lines
//
// =============================================================================

package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineLength bounds a single catalog line.
const maxLineLength = 1 << 20

// =============================================================================
// RECORD STRUCTURE
// =============================================================================

// Record is one opening from the catalog.
type Record struct {
	// Line is the 1-based line number in the catalog.
	Line int

	// Moves is the first whitespace-separated token: the move string.
	Moves string

	// Tags contains the remaining tokens, in order.
	Tags []string
}

// LastToken returns the last whitespace-separated token of the line. For a
// line with no tags this is the move string itself.
func (r Record) LastToken() string {
	if len(r.Tags) == 0 {
		return r.Moves
	}
	return r.Tags[len(r.Tags)-1]
}

// HasTag reports whether the last token of the line equals tag exactly.
func (r Record) HasTag(tag string) bool {
	return r.LastToken() == tag
}

// ParseLine splits a catalog line into a Record. It returns false for a
// blank or whitespace-only line.
func ParseLine(lineNumber int, line string) (Record, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, false
	}
	return Record{
		Line:  lineNumber,
		Moves: fields[0],
		Tags:  fields[1:],
	}, true
}

// =============================================================================
// STREAMING READER
// =============================================================================

// Reader provides record-at-a-time access to a catalog.
//
// USAGE:
//   reader, err := catalog.Open("openings.dat", "UTF-8")
//   if err != nil {
//       return err
//   }
//   defer reader.Close()
//
//   for reader.Next() {
//       record := reader.Record()
//       // Process the record...
//   }
//
//   if err := reader.Err(); err != nil {
//       return err
//   }
type Reader struct {
	name    string
	closer  io.Closer
	scanner *bufio.Scanner
	record  Record
	line    int
	err     error
}

// Open opens a catalog file for reading.
//
// PARAMETERS:
//   - path: The path to the catalog file.
//   - encoding: The character encoding label of the file.
//
// RETURNS:
//   - A pointer to the Reader.
//   - An error if the file cannot be opened or the encoding is unknown.
//     A missing file yields an error that matches fs.ErrNotExist.
func Open(path, encoding string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	reader, err := NewReader(file, encoding)
	if err != nil {
		file.Close()
		return nil, err
	}

	reader.name = path
	reader.closer = file
	return reader, nil
}

// NewReader creates a Reader over any io.Reader. The caller keeps ownership
// of r; Close on the returned Reader does not close it.
func NewReader(r io.Reader, encoding string) (*Reader, error) {
	decoded, err := decode(r, encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	return &Reader{scanner: scanner}, nil
}

// decode wraps r with a decoder for the named encoding. A leading UTF-8
// byte order mark is removed in every case.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	if encoding == "" {
		encoding = "UTF-8"
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported catalog encoding %q: %w", encoding, err)
	}

	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// Next advances to the next non-blank line. Returns false at end of input
// or on a read error (see Err).
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.line++
		if record, ok := ParseLine(r.line, r.scanner.Text()); ok {
			r.record = record
			return true
		}
	}

	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("error reading line %d: %w", r.line+1, err)
	}
	return false
}

// Record returns the current record.
func (r *Reader) Record() Record {
	return r.record
}

// Name returns the path the reader was opened from, or "" for readers
// created with NewReader.
func (r *Reader) Name() string {
	return r.name
}

// Err returns any error that occurred while reading.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file, if the reader owns one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// =============================================================================
// ERRORS
// =============================================================================

// LineError wraps an error with the catalog position it came from.
type LineError struct {
	File string // catalog path, "" if unknown
	Line int    // 1-based line number
	Err  error
}

func (e *LineError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
