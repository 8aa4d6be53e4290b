package report

import (
	"fmt"
	"io"
	"time"

	"github.com/kbirkholm/kollekt/internal/aggregate"
	"github.com/kbirkholm/kollekt/internal/cli"
	"github.com/kbirkholm/kollekt/internal/model"
)

// PrintDaily writes the per-day batch summary.
func PrintDaily(w io.Writer, days []aggregate.DaySummary) {
	fmt.Fprintln(w, cli.FormatTitle("Daily summary"))
	for _, day := range days {
		fmt.Fprintf(w, "%s  donations %10s  fees %8s  total %10s\n",
			cli.BoldStyle.Render(day.Date.Format("02-01-2006")),
			day.Regular.Donation.StringFixed(2),
			day.Regular.Fee.StringFixed(2),
			day.Regular.Total.StringFixed(2),
		)
		if day.Regular.Messages != "" {
			fmt.Fprintf(w, "            %s\n", cli.SubtleStyle.Render(day.Regular.Messages))
		}
		if !day.Excluded.Total.IsZero() {
			line := fmt.Sprintf("            excluded %10s", day.Excluded.Total.StringFixed(2))
			if day.Excluded.Messages != "" {
				line += "  " + day.Excluded.Messages
			}
			fmt.Fprintln(w, cli.WarningStyle.Render(line))
		}
	}
	fmt.Fprintln(w)
}

// PrintMonthlyTotals writes whole-month deposit sums.
func PrintMonthlyTotals(w io.Writer, totals []aggregate.MonthTotal) {
	fmt.Fprintln(w, cli.FormatTitle("Monthly totals"))
	for _, total := range totals {
		fmt.Fprintf(w, "%d %-8s %12s\n", total.Year, monthName(total.Month), total.Total.StringFixed(2))
	}
	fmt.Fprintln(w)
}

// PrintAddressTotals writes per-sender-address deposit sums per month.
func PrintAddressTotals(w io.Writer, totals []aggregate.AddressMonthTotal) {
	fmt.Fprintln(w, cli.FormatTitle("Totals per sender"))
	for _, total := range totals {
		fmt.Fprintf(w, "%d %-8s %12s  %s\n",
			total.Year, monthName(total.Month), total.Total.StringFixed(2), total.Address)
	}
	fmt.Fprintln(w)
}

func monthName(month time.Month) string {
	label, err := model.MonthLabel(month)
	if err != nil {
		return fmt.Sprintf("%d", int(month))
	}
	return label
}
