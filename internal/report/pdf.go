package report

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/kbirkholm/kollekt/internal/aggregate"
)

var pdfWidths = []float64{22, 18, 42, 16, 20, 22, 70, 42, 14}

// WritePDF renders one day file as a paginated PDF in dir and returns the
// written path. The column header repeats on every page.
func WritePDF(dir string, file aggregate.DayFile) (string, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	// The core fonts are cp1252; the translator covers the Danish letters.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr("Mobilepay "+file.PostingDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 8)
		for i, header := range columns {
			pdf.CellFormat(pdfWidths[i], 6, header, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 8)
	for _, txn := range file.Transactions {
		cells := []string{
			txn.Date.Format("2006-01-02"),
			txn.Date.Format("15:04:05"),
			txn.Name,
			txn.PhoneSuffix,
			txn.Kind,
			txn.Amount.StringFixed(2),
			txn.Message,
			txn.ExternalID,
			giftMarker(txn),
		}
		for i, cell := range cells {
			align := "L"
			if i == 5 {
				align = "R"
			}
			pdf.CellFormat(pdfWidths[i], 5, tr(cell), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(pdfWidths[0]+pdfWidths[1]+pdfWidths[2]+pdfWidths[3], 6, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(pdfWidths[4]+pdfWidths[5], 6, file.Total().StringFixed(2), "T", 0, "R", false, 0, "")
	pdf.CellFormat(pdfWidths[6]+pdfWidths[7]+pdfWidths[8], 6, "", "T", 1, "L", false, 0, "")

	path := filepath.Join(dir, BaseName(file)+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("saving day report pdf: %w", err)
	}
	return path, nil
}
