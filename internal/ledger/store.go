// Package ledger implements the spreadsheet-shaped stores and the idempotent
// merge engine that writes reconciliation results into them.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/ingest"
)

// Store is a grid of cells addressed by 1-based row and column, with column
// headers in row 1. All lookups go through header text, never fixed column
// numbers: the sheets are hand-edited and columns shift.
type Store interface {
	// LastRow returns the highest row number in use, 0 for an empty sheet.
	LastRow() int
	// LastColumn returns the highest column number in use.
	LastColumn() int
	// Cell returns the cell's text, empty outside the used range.
	Cell(row, col int) string
	// SetCell writes text into a cell, growing the sheet as needed.
	SetCell(row, col int, value string)
	// SetAmount writes a numeric cell.
	SetAmount(row, col int, value decimal.Decimal)
	// InsertRowBefore shifts the given row and everything below it down by
	// one, leaving a fresh empty row.
	InsertRowBefore(row int)
	// Save persists the sheet. Called once per run.
	Save() error
}

// ColumnIndex returns the 1-based column whose header cell matches the label
// after trimming, case-insensitively. Zero means no such column.
func ColumnIndex(s Store, label string) int {
	label = strings.TrimSpace(label)
	for col := 1; col <= s.LastColumn(); col++ {
		if strings.EqualFold(strings.TrimSpace(s.Cell(1, col)), label) {
			return col
		}
	}
	return 0
}

// FindRow returns the first row for which pred returns true, or 0.
func FindRow(s Store, pred func(row int) bool) int {
	for row := 1; row <= s.LastRow(); row++ {
		if pred(row) {
			return row
		}
	}
	return 0
}

// CellDecimal reads a cell as a decimal amount, tolerating both plain and
// Danish-locale number formats.
func CellDecimal(s Store, row, col int) (decimal.Decimal, bool) {
	text := strings.TrimSpace(s.Cell(row, col))
	if text == "" {
		return decimal.Zero, false
	}
	value, err := ingest.ParseAmount(text)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// epsilon is the float tolerance inherited from the historical sheets, whose
// amount cells were written as doubles.
var epsilon = decimal.NewFromFloat(0.005)

func amountsEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(epsilon)
}
