package ledger

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/common"
	"github.com/kbirkholm/kollekt/internal/match"
	"github.com/kbirkholm/kollekt/internal/model"
)

// Columns names the roster headers and the sentinel label the merge engine
// keys on. The sheets are in Danish; the defaults match the live ledger.
type Columns struct {
	Name     string
	Phone    string
	Excluded string
	Sentinel string
}

// DefaultColumns returns the live ledger's labels.
func DefaultColumns() Columns {
	return Columns{
		Name:     "Fornavne",
		Phone:    "Mobil nummer",
		Excluded: "Arrangementer",
		Sentinel: "I alt",
	}
}

// Engine performs the idempotent upserts into the roster sheet. Every
// operation either succeeds, or fails alone: an ambiguity or a missing
// column aborts the single write, never the batch.
type Engine struct {
	store Store
	cols  Columns
}

// NewEngine creates a merge engine over the given store.
func NewEngine(store Store, cols Columns) *Engine {
	return &Engine{store: store, cols: cols}
}

// UpsertMonthlyTotal writes one identity's cumulative total into its month
// column. The identity row is located with the matcher's phone-first rules
// restricted to the rows already in the sheet; an unknown identity gets a
// fresh row. The cell is overwritten, so re-running a month is idempotent.
func (e *Engine) UpsertMonthlyTotal(name, phoneSuffix, monthLabel string, amount decimal.Decimal) error {
	nameCol := ColumnIndex(e.store, e.cols.Name)
	phoneCol := ColumnIndex(e.store, e.cols.Phone)
	if nameCol == 0 || phoneCol == 0 {
		return fmt.Errorf("%w: %q or %q", common.ErrMissingColumn, e.cols.Name, e.cols.Phone)
	}
	monthCol := ColumnIndex(e.store, monthLabel)
	if monthCol == 0 {
		return fmt.Errorf("%w: month %q", common.ErrMissingColumn, monthLabel)
	}

	result := match.Resolve(e.rosterEntries(nameCol, phoneCol), name, phoneSuffix)

	var row int
	switch result.Outcome {
	case match.Resolved:
		row = result.Entry.Row
		if result.BackfillPhone {
			// Write-through learning: the roster heals its missing numbers.
			e.store.SetCell(row, phoneCol, phoneSuffix)
			slog.Info("backfilled phone suffix", "name", name, "phone", phoneSuffix, "row", row)
		}
	case match.Ambiguous:
		return fmt.Errorf("%w: %s", common.ErrAmbiguousIdentity, result.Reason)
	default:
		row = e.insertRosterRow(nameCol, phoneCol, name, phoneSuffix)
	}

	e.store.SetAmount(row, monthCol, amount)
	return nil
}

// rosterEntries projects the sheet's data rows into matcher candidates.
func (e *Engine) rosterEntries(nameCol, phoneCol int) []match.Entry {
	entries := make([]match.Entry, 0, e.store.LastRow())
	for row := 2; row <= e.store.LastRow(); row++ {
		entries = append(entries, match.Entry{
			Row:         row,
			Name:        strings.TrimSpace(e.store.Cell(row, nameCol)),
			PhoneSuffix: model.PhoneSuffix(e.store.Cell(row, phoneCol)),
		})
	}
	return entries
}

// insertRosterRow places a new identity after the last row that has a phone
// value, keeping the roster's trailing unphoned rows together at the bottom.
func (e *Engine) insertRosterRow(nameCol, phoneCol int, name, phoneSuffix string) int {
	lastPhoned := 0
	for row := 2; row <= e.store.LastRow(); row++ {
		if strings.TrimSpace(e.store.Cell(row, phoneCol)) != "" {
			lastPhoned = row
		}
	}
	insertAt := lastPhoned + 1
	if lastPhoned == 0 {
		insertAt = 2
	}

	e.store.InsertRowBefore(insertAt)
	e.store.SetCell(insertAt, nameCol, name)
	e.store.SetCell(insertAt, phoneCol, phoneSuffix)
	slog.Info("added roster row", "name", name, "phone", phoneSuffix, "row", insertAt)
	return insertAt
}

// UpsertExcludedEntry inserts one synthetic line for a day's excluded sum
// directly above the sentinel total row, unless an equivalent line is
// already present. The label is "{date} - {messages}"; equivalence is the
// normalized label plus the amount within epsilon.
func (e *Engine) UpsertExcludedEntry(date string, amount decimal.Decimal, messages string) error {
	nameCol := ColumnIndex(e.store, e.cols.Name)
	if nameCol == 0 {
		return fmt.Errorf("%w: %q", common.ErrMissingColumn, e.cols.Name)
	}
	excludedCol := ColumnIndex(e.store, e.cols.Excluded)
	if excludedCol == 0 {
		return fmt.Errorf("%w: %q", common.ErrMissingColumn, e.cols.Excluded)
	}

	sentinel := e.sentinelRow()
	if sentinel == 0 {
		return fmt.Errorf("%w: %q", common.ErrMissingSentinel, e.cols.Sentinel)
	}

	label := strings.TrimSpace(date + " - " + messages)
	for row := 2; row < sentinel; row++ {
		if model.NormalizeText(e.store.Cell(row, nameCol)) != model.NormalizeText(label) {
			continue
		}
		existing, ok := CellDecimal(e.store, row, excludedCol)
		if ok && amountsEqual(existing, amount) {
			slog.Info("excluded entry already present, skipping",
				"label", label, "amount", amount)
			return nil
		}
	}

	// The sentinel stays the last row: new entries go immediately above it.
	e.store.InsertRowBefore(sentinel)
	e.store.SetAmount(sentinel, excludedCol, amount)
	e.store.SetCell(sentinel, nameCol, label)
	slog.Info("added excluded entry", "label", label, "amount", amount)
	return nil
}

// sentinelRow finds the fixed total row by scanning every cell for the
// sentinel label.
func (e *Engine) sentinelRow() int {
	label := strings.TrimSpace(e.cols.Sentinel)
	return FindRow(e.store, func(row int) bool {
		for col := 1; col <= e.store.LastColumn(); col++ {
			if strings.EqualFold(strings.TrimSpace(e.store.Cell(row, col)), label) {
				return true
			}
		}
		return false
	})
}
