// Package report renders per-day transaction reports and the console
// summaries shown after a batch run.
package report

import (
	"fmt"

	"github.com/kbirkholm/kollekt/internal/aggregate"
	"github.com/kbirkholm/kollekt/internal/model"
)

// columns are the per-day report columns, shared by the xlsx and pdf
// renderers.
var columns = []string{
	"Date", "Time", "Name", "Phone", "Type", "Amount", "Message", "TransactionID", "Gift",
}

// BaseName names a day file: the posting date, a floored-sum suffix when
// another calendar day shares the posting date, and a marker when the day
// holds excluded transactions. The extension is the renderer's concern.
func BaseName(file aggregate.DayFile) string {
	name := "Mobilepay-" + file.PostingDate.Format("2006-01-02")
	if file.NeedsSuffix {
		name += fmt.Sprintf("-%s", file.Total().Floor().String())
	}
	if file.HasExcluded {
		name += "-hasExcluded"
	}
	return name
}

// giftMarker reports whether the transaction counts toward a sender's
// monthly gift total.
func giftMarker(txn model.Transaction) string {
	if txn.Excluded || txn.IsFee() {
		return "No"
	}
	return "Yes"
}
