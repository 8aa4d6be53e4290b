package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/kbirkholm/kollekt/internal/aggregate"
)

const daySheet = "Sheet1"

// WriteXLSX renders one day file as a spreadsheet in dir and returns the
// written path. The amount column carries a number format and the last row
// holds a SUM formula over it.
func WriteXLSX(dir string, file aggregate.DayFile) (string, error) {
	book := excelize.NewFile()
	defer book.Close()

	for i, header := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("naming header cell: %w", err)
		}
		if err := book.SetCellValue(daySheet, cell, header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	for i, txn := range file.Transactions {
		row := i + 2
		values := []any{
			txn.Date.Format("2006-01-02"),
			txn.Date.Format("15:04:05"),
			txn.Name,
			txn.PhoneSuffix,
			txn.Kind,
			txn.Amount.InexactFloat64(),
			txn.Message,
			txn.ExternalID,
			giftMarker(txn),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", fmt.Errorf("naming cell: %w", err)
			}
			if err := book.SetCellValue(daySheet, cell, value); err != nil {
				return "", fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	totalRow := len(file.Transactions) + 2
	if err := book.SetCellValue(daySheet, fmt.Sprintf("E%d", totalRow), "Total"); err != nil {
		return "", fmt.Errorf("writing total label: %w", err)
	}
	formula := fmt.Sprintf("SUM(F2:F%d)", totalRow-1)
	if err := book.SetCellFormula(daySheet, fmt.Sprintf("F%d", totalRow), formula); err != nil {
		return "", fmt.Errorf("writing total formula: %w", err)
	}

	// NumFmt 4 is the builtin "#,##0.00".
	amountStyle, err := book.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return "", fmt.Errorf("creating amount style: %w", err)
	}
	if err := book.SetCellStyle(daySheet, "F2", fmt.Sprintf("F%d", totalRow), amountStyle); err != nil {
		return "", fmt.Errorf("styling amount column: %w", err)
	}
	if err := book.SetColWidth(daySheet, "A", "I", 18); err != nil {
		return "", fmt.Errorf("setting column widths: %w", err)
	}

	path := filepath.Join(dir, BaseName(file)+".xlsx")
	if err := book.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving day report: %w", err)
	}
	return path, nil
}
