// =============================================================================
// Openings Book Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Atomic output files (write to a temporary sibling, rename on success)
//   - Run summary log generation
//
// OUTPUT STRATEGY:
//   - The book is written to ".<name>-<uuid><ext>" next to the target
//   - On success the temporary file is renamed over the target
//   - On failure the temporary file is removed and the previous book, if
//     any, is left untouched
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ATOMIC OUTPUT FILE
// =============================================================================

// AtomicFile reserves a temporary path next to a target file. Writers fill
// the temporary path; Commit moves it into place.
//
// USAGE:
//   af, err := utils.NewAtomicFile("openings.csv")
//   if err != nil {
//       return err
//   }
//   defer af.Discard()
//
//   // write to af.TempPath() ...
//
//   return af.Commit()
type AtomicFile struct {
	target    string
	temp      string
	committed bool
}

// NewAtomicFile prepares an atomic replacement of target. The parent
// directory is created if it does not exist.
//
// The temporary name keeps the target's extension, so libraries that infer
// the format from the file name (excelize) accept it.
func NewAtomicFile(target string) (*AtomicFile, error) {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	base := filepath.Base(target)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	temp := filepath.Join(dir, fmt.Sprintf(".%s-%s%s", stem, uuid.New().String(), ext))

	return &AtomicFile{target: target, temp: temp}, nil
}

// TempPath returns the path writers should write to.
func (a *AtomicFile) TempPath() string {
	return a.temp
}

// Target returns the final path.
func (a *AtomicFile) Target() string {
	return a.target
}

// Commit renames the temporary file over the target. If nothing was
// written to the temporary path an empty target is created.
func (a *AtomicFile) Commit() error {
	if a.committed {
		return nil
	}

	if !FileExists(a.temp) {
		f, err := os.Create(a.temp)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
	}

	if err := os.Rename(a.temp, a.target); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	a.committed = true
	return nil
}

// Discard removes the temporary file unless Commit succeeded. It is safe
// to call more than once and after Commit.
func (a *AtomicFile) Discard() error {
	if a.committed {
		return nil
	}
	if err := os.Remove(a.temp); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary output: %w", err)
	}
	return nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a conversion run.
type ProcessingSummary struct {
	RunID            string
	StartTime        time.Time
	EndTime          time.Time
	InputFile        string
	OutputFile       string
	Format           string
	LinesRead        int
	TaggedLines      int
	SequencesWritten int
	Success          bool
	ErrorMessage     string
}

// WriteSummaryLog appends a run summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - path: The summary log file. It is created if missing.
//
// RETURNS:
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	status := "success"
	if !summary.Success {
		status = "failed"
	}

	fmt.Fprintf(writer, "Openings Book Converter - Processing Summary\n"+
		"================================================================================\n"+
		"  Run ID:             %s\n"+
		"  Start Time:         %s\n"+
		"  Duration:           %s\n"+
		"  Status:             %s\n"+
		"  Input:              %s\n"+
		"  Output:             %s (%s)\n"+
		"  Lines Read:         %d\n"+
		"  Tagged Lines:       %d\n"+
		"  Sequences Written:  %d\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		status,
		summary.InputFile,
		summary.OutputFile,
		summary.Format,
		summary.LinesRead,
		summary.TaggedLines,
		summary.SequencesWritten)

	if summary.ErrorMessage != "" {
		fmt.Fprintf(writer, "  Error:              %s\n", summary.ErrorMessage)
	}
	writer.WriteString("\n")

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary file: %w", err)
	}

	return file.Close()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
