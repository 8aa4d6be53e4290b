package model

import (
	"fmt"
	"time"

	"github.com/kbirkholm/kollekt/internal/common"
)

// monthLabels maps calendar months to the column headers used in the ledger
// roster. The labels are the fixed Danish abbreviations the sheet is built
// with and are not localizable at runtime.
var monthLabels = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Marts",
	time.April:     "April",
	time.May:       "Maj",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "August",
	time.September: "Sept",
	time.October:   "Okt",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthLabel returns the roster column header for a month. An unmapped month
// is a structural assumption violation and yields a fatal error.
func MonthLabel(m time.Month) (string, error) {
	label, ok := monthLabels[m]
	if !ok {
		return "", fmt.Errorf("%w: month %d", common.ErrUnknownMonth, int(m))
	}
	return label, nil
}
