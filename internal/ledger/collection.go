package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/common"
)

// CollectionColumns names the headers of the daily collection ledger.
type CollectionColumns struct {
	Date   string
	Amount string
	Note   string
}

// DefaultCollectionColumns returns the live collection ledger's labels.
func DefaultCollectionColumns() CollectionColumns {
	return CollectionColumns{Date: "Dato", Amount: "Beløb", Note: "Bemærkning"}
}

// collectionDateLayouts are accepted when reading a date cell: the sheet
// mixes native date cells (rendered by the store) and hand-typed text.
var collectionDateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02-01-06",
	"2/1/2006",
	"02-01-2006 15:04:05",
}

// Collection upserts day totals into the collection ledger. Rows written by
// hand sit interleaved with machine-written ones, so the engine fills gaps
// in place and never shifts rows.
type Collection struct {
	store Store
	cols  CollectionColumns
}

// NewCollection creates a collection-ledger engine over the given store.
func NewCollection(store Store, cols CollectionColumns) *Collection {
	return &Collection{store: store, cols: cols}
}

// UpsertDay records one day's total. A row matching both the date and the
// amount (within epsilon) already covers the day and is left alone.
// Otherwise the first row with an empty date cell at or after row 2 is
// filled in place; with no gap, the entry is appended after the last used
// row.
func (c *Collection) UpsertDay(date time.Time, amount decimal.Decimal, note string) error {
	dateCol := ColumnIndex(c.store, c.cols.Date)
	if dateCol == 0 {
		return fmt.Errorf("%w: %q", common.ErrMissingColumn, c.cols.Date)
	}
	amountCol := ColumnIndex(c.store, c.cols.Amount)
	if amountCol == 0 {
		return fmt.Errorf("%w: %q", common.ErrMissingColumn, c.cols.Amount)
	}
	noteCol := ColumnIndex(c.store, c.cols.Note)

	for row := 2; row <= c.store.LastRow(); row++ {
		if !sameDay(c.store.Cell(row, dateCol), date) {
			continue
		}
		existing, ok := CellDecimal(c.store, row, amountCol)
		if ok && amountsEqual(existing, amount) {
			return nil
		}
	}

	row := 0
	for r := 2; r <= c.store.LastRow(); r++ {
		if strings.TrimSpace(c.store.Cell(r, dateCol)) == "" {
			row = r
			break
		}
	}
	if row == 0 {
		row = c.store.LastRow() + 1
		if row < 2 {
			row = 2
		}
	}

	c.store.SetCell(row, dateCol, date.Format("02-01-2006"))
	c.store.SetAmount(row, amountCol, amount)
	if noteCol != 0 && note != "" {
		c.store.SetCell(row, noteCol, note)
	}
	return nil
}

func sameDay(cellText string, date time.Time) bool {
	cellText = strings.TrimSpace(cellText)
	if cellText == "" {
		return false
	}
	for _, layout := range collectionDateLayouts {
		parsed, err := time.ParseInLocation(layout, cellText, date.Location())
		if err != nil {
			continue
		}
		y1, m1, d1 := parsed.Date()
		y2, m2, d2 := date.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	}
	return false
}
