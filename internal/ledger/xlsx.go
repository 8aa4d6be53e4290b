package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kbirkholm/kollekt/internal/common"
)

// WorkbookStore backs Store with a worksheet inside an xlsx workbook. The
// workbook is opened once, mutated in memory, and written back by a single
// Save at the end of the run.
type WorkbookStore struct {
	file  *excelize.File
	path  string
	sheet string
}

// OpenWorkbook opens an existing workbook and selects the named sheet.
func OpenWorkbook(path, sheet string) (*WorkbookStore, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	if idx, err := file.GetSheetIndex(sheet); err != nil || idx < 0 {
		closeFile(file)
		return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}
	return &WorkbookStore{file: file, path: path, sheet: sheet}, nil
}

// LastRow implements Store.
func (w *WorkbookStore) LastRow() int {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0
	}
	return len(rows)
}

// LastColumn implements Store.
func (w *WorkbookStore) LastColumn() int {
	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return 0
	}
	widest := 0
	for _, row := range rows {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// Cell implements Store.
func (w *WorkbookStore) Cell(row, col int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := w.file.GetCellValue(w.sheet, name)
	if err != nil {
		return ""
	}
	return value
}

// SetCell implements Store.
func (w *WorkbookStore) SetCell(row, col int, value string) {
	w.setValue(row, col, value)
}

// SetAmount implements Store. The cell is written as a number so the sheet's
// own formulas keep working; precision loss at this boundary is bounded by
// the dedup epsilon.
func (w *WorkbookStore) SetAmount(row, col int, value decimal.Decimal) {
	f, _ := value.Float64()
	w.setValue(row, col, f)
}

func (w *WorkbookStore) setValue(row, col int, value any) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		slog.Error("invalid cell coordinates", "row", row, "col", col, "error", err)
		return
	}
	if err := w.file.SetCellValue(w.sheet, name, value); err != nil {
		slog.Error("writing cell", "cell", name, "sheet", w.sheet, "error", err)
	}
}

// InsertRowBefore implements Store.
func (w *WorkbookStore) InsertRowBefore(row int) {
	if err := w.file.InsertRows(w.sheet, row, 1); err != nil {
		slog.Error("inserting row", "row", row, "sheet", w.sheet, "error", err)
	}
}

// Save implements Store.
func (w *WorkbookStore) Save() error {
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the open workbook without saving.
func (w *WorkbookStore) Close() error {
	return w.file.Close()
}

func closeFile(file *excelize.File) {
	if err := file.Close(); err != nil {
		slog.Warn("closing workbook", "error", err)
	}
}
