// =============================================================================
// Openings Book Converter - Catalog Validation
// =============================================================================
//
// This module checks a whole openings catalog without writing a book. The
// converter stops at the first bad line; the validator keeps going and
// reports every problem at once, so a catalog can be repaired in one pass.
//
// CHECKS:
//   error   - move string is malformed or has odd length
//   warning - reversal tag on an opening with fewer than three moves
//             (the converter still reverses whatever prefix exists)
//   warning - move string already seen on an earlier line
//
// =============================================================================

package validation

import (
	"fmt"
	"os"
	"strings"

	"github.com/othello-tools/openbook/internal/catalog"
	"github.com/othello-tools/openbook/internal/notation"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Severity levels of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity is SeverityError (the converter would fail on this line)
	// or SeverityWarning (the converter accepts it).
	Severity string

	// Line is the 1-based catalog line number.
	Line int

	// Moves is the move string of the line.
	Moves string

	// Message is a human-readable description.
	Message string

	// Err is the underlying translation error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] line %d, moves '%s': %s",
		strings.ToUpper(e.Severity),
		e.Line,
		e.Moves,
		e.Message,
	)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// Errors contains all problems, warnings included, in line order.
	Errors []*ValidationError

	// ErrorCount is the number of fatal problems.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int

	// LinesValidated is the number of non-blank lines checked.
	LinesValidated int

	// TaggedLines is the number of lines carrying the reversal tag.
	TaggedLines int
}

// IsValid is true when the converter would accept the catalog.
func (r *ValidationResult) IsValid() bool {
	return r.ErrorCount == 0
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks every record of the catalog.
//
// PARAMETERS:
//   - reader: The catalog to check. It is read to the end but not closed.
//   - reverseTag: The last-token literal marking reversed openings.
//
// RETURNS:
//   - The validation result.
//   - An error only if the catalog itself cannot be read.
func Validate(reader *catalog.Reader, reverseTag string) (*ValidationResult, error) {
	result := &ValidationResult{}
	firstSeen := make(map[string]int)

	for reader.Next() {
		record := reader.Record()
		result.LinesValidated++

		for _, problem := range ValidateRecord(record, reverseTag) {
			result.add(problem)
		}
		if record.HasTag(reverseTag) {
			result.TaggedLines++
		}

		key := strings.ToLower(record.Moves)
		if first, dup := firstSeen[key]; dup {
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Line:     record.Line,
				Moves:    record.Moves,
				Message:  fmt.Sprintf("duplicate of line %d", first),
			})
		} else {
			firstSeen[key] = record.Line
		}
	}

	if err := reader.Err(); err != nil {
		return result, fmt.Errorf("failed to read catalog: %w", err)
	}
	return result, nil
}

// ValidateRecord returns the problems of a single record.
func ValidateRecord(record catalog.Record, reverseTag string) []*ValidationError {
	var problems []*ValidationError

	indices, err := notation.Indices(record.Moves, false)
	if err != nil {
		return append(problems, &ValidationError{
			Severity: SeverityError,
			Line:     record.Line,
			Moves:    record.Moves,
			Message:  err.Error(),
			Err:      err,
		})
	}

	if record.HasTag(reverseTag) && len(indices) < 3 {
		problems = append(problems, &ValidationError{
			Severity: SeverityWarning,
			Line:     record.Line,
			Moves:    record.Moves,
			Message:  fmt.Sprintf("%s tag on an opening of %d move(s)", reverseTag, len(indices)),
		})
	}

	return problems
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors.\n"
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Validation completed with %d problem(s):\n\n", len(errors)))

	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}

	return builder.String()
}

// WriteErrorLog writes validation errors to a file.
func WriteErrorLog(errors []*ValidationError, filePath string) error {
	if err := os.WriteFile(filePath, []byte(FormatErrors(errors)), 0644); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
