// =============================================================================
// Openings Book Converter - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline. It reads the openings
// catalog, translates every opening into board indices and writes the book.
//
// CONVERSION PIPELINE:
//   1. Open the catalog
//   2. Reserve a temporary output next to the book
//   3. For every catalog line:
//      a. Translate the move string in play order
//      b. If the last token is the reversal tag, translate it again with
//         the first three moves reversed
//      c. Write the resulting sequence(s)
//   4. Close the writer and move the book into place
//
// FAILURE:
//   The first malformed line aborts the run. The temporary output is
//   removed and an existing book is left untouched.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/othello-tools/openbook/internal/book"
	"github.com/othello-tools/openbook/internal/catalog"
	"github.com/othello-tools/openbook/internal/config"
	"github.com/othello-tools/openbook/internal/notation"
	"github.com/othello-tools/openbook/internal/types"
	"github.com/othello-tools/openbook/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a conversion run.
type Result struct {
	// RunID identifies the run in logs and in the summary file.
	RunID string

	// InputFile is the catalog that was read.
	InputFile string

	// OutputFile is the book that was written.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// LinesRead is the number of non-blank catalog lines processed.
	LinesRead int

	// TaggedLines is the number of lines carrying the reversal tag.
	TaggedLines int

	// SequencesWritten is the number of records written to the book.
	SequencesWritten int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts one catalog into one book.
type Converter struct {
	cfg    *config.Config
	logger Logger
}

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The application configuration (input, output, format, ...).
//   - logger: Receives progress messages. Nil discards them.
func New(cfg *config.Config, logger Logger) *Converter {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Converter{cfg: cfg, logger: logger}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{
		RunID:     uuid.New().String(),
		InputFile: c.cfg.InputFile,
	}
	log := With(c.logger, "run", result.RunID)

	log.Info("Converting %s to %s (%s)", c.cfg.InputFile, c.cfg.OutputFile, c.cfg.Format)

	err := c.convert(ctx, log, &result.Stats)
	result.Stats.ProcessingTime = time.Since(startTime)

	if err != nil {
		result.Error = err
		log.Error("Conversion failed: %v", err)
	} else {
		result.Success = true
		result.OutputFile = c.cfg.OutputFile
		log.Info("Wrote %d sequence(s) from %d line(s) to %s in %s",
			result.Stats.SequencesWritten, result.Stats.LinesRead, result.OutputFile, result.Stats.ProcessingTime)
	}

	if c.cfg.SummaryFile != "" {
		if err := c.writeSummary(result, startTime); err != nil {
			log.Warn("Failed to write summary: %v", err)
		}
	}

	return result
}

// convert performs the pipeline and fills stats as it goes.
func (c *Converter) convert(ctx context.Context, log Logger, stats *ProcessingStats) error {
	// =========================================================================
	// STEP 1: OPEN THE CATALOG
	// =========================================================================

	format, err := book.ParseFormat(c.cfg.Format)
	if err != nil {
		return err
	}

	reader, err := catalog.Open(c.cfg.InputFile, c.cfg.Encoding)
	if err != nil {
		return err
	}
	defer reader.Close()

	// =========================================================================
	// STEP 2: PREPARE THE OUTPUT
	// =========================================================================
	// The writer fills a temporary sibling of the book. It only replaces the
	// book once every line has been converted.

	output, err := utils.NewAtomicFile(c.cfg.OutputFile)
	if err != nil {
		return err
	}
	defer func() {
		if derr := output.Discard(); derr != nil {
			log.Warn("%v", derr)
		}
	}()

	writer, err := book.NewWriter(ctx, format, output.TempPath(), book.Options{SheetName: c.cfg.SheetName})
	if err != nil {
		return err
	}
	log.Debug("Writing to temporary file %s", output.TempPath())

	// =========================================================================
	// STEP 3: TRANSLATE EVERY LINE
	// =========================================================================

	if err := c.translateAll(ctx, log, reader, writer, stats); err != nil {
		writer.Close()
		return err
	}

	// =========================================================================
	// STEP 4: FINALIZE
	// =========================================================================

	if err := writer.Close(); err != nil {
		return err
	}
	return output.Commit()
}

func (c *Converter) translateAll(ctx context.Context, log Logger, reader *catalog.Reader, writer book.Writer, stats *ProcessingStats) error {
	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := reader.Record()
		stats.LinesRead++

		sequences, err := Sequences(record, c.cfg.ReverseTag)
		if err != nil {
			return &catalog.LineError{File: reader.Name(), Line: record.Line, Err: err}
		}
		if len(sequences) > 1 {
			stats.TaggedLines++
			log.Debug("Line %d: %s tagged %s, emitting reversed sequence", record.Line, record.Moves, c.cfg.ReverseTag)
		}

		for _, seq := range sequences {
			if err := writer.Write(seq); err != nil {
				return err
			}
			stats.SequencesWritten++
		}
	}

	if err := reader.Err(); err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	return nil
}

// Sequences translates one catalog record into its output sequences: the
// moves in play order, followed by the reversed variant when the record's
// last token equals reverseTag.
func Sequences(record catalog.Record, reverseTag string) ([]types.Sequence, error) {
	indices, err := notation.Indices(record.Moves, false)
	if err != nil {
		return nil, err
	}
	sequences := []types.Sequence{{
		Line:    record.Line,
		Moves:   record.Moves,
		Indices: indices,
	}}

	if record.HasTag(reverseTag) {
		reversed, err := notation.Indices(record.Moves, true)
		if err != nil {
			return nil, err
		}
		sequences = append(sequences, types.Sequence{
			Line:     record.Line,
			Moves:    record.Moves,
			Reversed: true,
			Indices:  reversed,
		})
	}

	return sequences, nil
}

// writeSummary appends the run to the configured summary file.
func (c *Converter) writeSummary(result Result, start time.Time) error {
	summary := utils.ProcessingSummary{
		RunID:            result.RunID,
		StartTime:        start,
		EndTime:          start.Add(result.Stats.ProcessingTime),
		InputFile:        c.cfg.InputFile,
		OutputFile:       c.cfg.OutputFile,
		Format:           c.cfg.Format,
		LinesRead:        result.Stats.LinesRead,
		TaggedLines:      result.Stats.TaggedLines,
		SequencesWritten: result.Stats.SequencesWritten,
		Success:          result.Success,
	}
	if result.Error != nil {
		summary.ErrorMessage = result.Error.Error()
	}
	return utils.WriteSummaryLog(summary, c.cfg.SummaryFile)
}

// =============================================================================
// NO-OP LOGGER
// =============================================================================

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
