// Package model defines the core domain types shared across the reconciliation pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// KindFee is the kind literal the payment export uses for fee rows. A fee
// row shares its ExternalID with the payment it belongs to.
const KindFee = "Gebyr"

// Transaction represents a single money movement from any export source.
type Transaction struct {
	Date        time.Time
	Name        string
	PhoneSuffix string
	Address     string
	Message     string
	Kind        string
	ExternalID  string
	Amount      decimal.Decimal
	Excluded    bool
}

// IsFee reports whether this row is a fee attached to a payment.
func (t *Transaction) IsFee() bool {
	return t.Kind == KindFee
}

// PostingDate returns the effective posting date for daily grouping.
func (t *Transaction) PostingDate() time.Time {
	return EffectivePostingDate(t.Date)
}

// Day truncates the transaction timestamp to its calendar day.
func (t *Transaction) Day() time.Time {
	return truncateToDay(t.Date)
}

// EffectivePostingDate returns the business day on which a transaction
// becomes visible and actionable. Funds arriving Friday or Saturday post the
// following Monday; every other weekday posts the next calendar day, which
// folds Sunday into Monday as well.
func EffectivePostingDate(ts time.Time) time.Time {
	d := truncateToDay(ts)
	switch d.Weekday() {
	case time.Friday:
		return d.AddDate(0, 0, 3)
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	default:
		return d.AddDate(0, 0, 1)
	}
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
