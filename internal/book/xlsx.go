package book

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/othello-tools/openbook/internal/types"
	"github.com/xuri/excelize/v2"
)

// xlsxHeader is the first row of the worksheet. Indices start in column D
// and run one per cell.
var xlsxHeader = []interface{}{"Line", "Moves", "Reversed", "Indices"}

// XLSXWriter writes one worksheet row per sequence:
//
//   | Line | Moves    | Reversed | Indices                 |
//   | 1    | d3c5e6f6 | false    | 19 | 34 | 44 | 45       |
//   | 1    | d3c5e6f6 | true     | 44 | 34 | 19 | 45       |
//
// The workbook is built in memory and saved on Close.
type XLSXWriter struct {
	path  string
	sheet string
	file  *excelize.File
	row   int
}

// NewXLSXWriter creates a workbook that will be saved to path. The path
// must carry an .xlsx extension.
func NewXLSXWriter(path, sheet string) (*XLSXWriter, error) {
	if sheet == "" {
		sheet = "Openings"
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name worksheet: %w", err)
	}

	w := &XLSXWriter{path: path, sheet: sheet, file: f, row: 1}
	if err := w.setRow(xlsxHeader); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// Write appends one row.
func (w *XLSXWriter) Write(seq types.Sequence) error {
	row := make([]interface{}, 0, 3+len(seq.Indices))
	row = append(row, seq.Line, seq.Moves, strconv.FormatBool(seq.Reversed))
	for _, index := range seq.Indices {
		row = append(row, index)
	}
	if err := w.setRow(row); err != nil {
		return fmt.Errorf("failed to write line %d: %w", seq.Line, err)
	}
	return nil
}

func (w *XLSXWriter) setRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(w.sheet, cell, &values); err != nil {
		return err
	}
	w.row++
	return nil
}

// Close saves the workbook to disk and releases it.
func (w *XLSXWriter) Close() error {
	err := w.file.SaveAs(w.path)
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to save xlsx book: %w", err)
	}
	return nil
}

// ReadXLSX returns the index sequences stored in an xlsx book. An empty
// sheet name selects the first worksheet. The header row and empty rows are
// skipped.
func ReadXLSX(path, sheet string) ([][]int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx book: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var sequences [][]int
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		if len(row) <= len(xlsxHeader)-1 {
			return nil, fmt.Errorf("row %d: no indices", i+1)
		}

		cells := row[len(xlsxHeader)-1:]
		seq := make([]int, 0, len(cells))
		for j, cell := range cells {
			n, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil || n < 0 || n > 63 {
				return nil, fmt.Errorf("row %d: cell %d %q is not a board index", i+1, len(xlsxHeader)+j, cell)
			}
			seq = append(seq, n)
		}
		sequences = append(sequences, seq)
	}
	return sequences, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
