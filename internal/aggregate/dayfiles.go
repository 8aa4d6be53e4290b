package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/model"
)

// DayFile is one calendar day's transactions filed under that day's posting
// date. Two calendar days can share a posting date (a weekend and the
// preceding Friday), in which case each file needs a disambiguating suffix.
type DayFile struct {
	PostingDate  time.Time
	Transactions []model.Transaction
	// NeedsSuffix reports that another calendar day posts on the same date.
	NeedsSuffix bool
	// HasExcluded reports that the day contains excluded transactions.
	HasExcluded bool
}

// Total sums the day's transactions.
func (d *DayFile) Total() decimal.Decimal {
	total := decimal.Zero
	for _, txn := range d.Transactions {
		total = total.Add(txn.Amount)
	}
	return total
}

// DayFiles groups the batch for the per-day report files: one group per
// (posting date, raw calendar day) pair.
func DayFiles(txns []model.Transaction) []DayFile {
	type key struct {
		posting time.Time
		raw     time.Time
	}
	groups := make(map[key]*DayFile)
	postingCounts := make(map[time.Time]int)
	for _, txn := range txns {
		k := key{posting: txn.PostingDate(), raw: txn.Day()}
		group, ok := groups[k]
		if !ok {
			group = &DayFile{PostingDate: k.posting}
			groups[k] = group
			postingCounts[k.posting]++
		}
		group.Transactions = append(group.Transactions, txn)
		if txn.Excluded {
			group.HasExcluded = true
		}
	}

	out := make([]DayFile, 0, len(groups))
	for _, group := range groups {
		group.NeedsSuffix = postingCounts[group.PostingDate] > 1
		out = append(out, *group)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PostingDate.Equal(out[j].PostingDate) {
			return out[i].PostingDate.Before(out[j].PostingDate)
		}
		return out[i].Transactions[0].Date.Before(out[j].Transactions[0].Date)
	})
	return out
}

// MonthTotal is a whole month's deposit sum.
type MonthTotal struct {
	Year  int
	Month time.Month
	Total decimal.Decimal
}

// MonthlyTotals sums the batch per calendar month.
func MonthlyTotals(txns []model.Transaction) []MonthTotal {
	type key struct {
		year  int
		month time.Month
	}
	totals := make(map[key]decimal.Decimal)
	for _, txn := range txns {
		k := key{year: txn.Date.Year(), month: txn.Date.Month()}
		totals[k] = totals[k].Add(txn.Amount)
	}
	out := make([]MonthTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, MonthTotal{Year: k.year, Month: k.month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// AddressMonthTotal is one sender address's deposit sum within a month.
type AddressMonthTotal struct {
	Year    int
	Month   time.Month
	Address string
	Total   decimal.Decimal
}

// MonthlyByAddress sums the batch per calendar month and sender address.
func MonthlyByAddress(txns []model.Transaction) []AddressMonthTotal {
	type key struct {
		year    int
		month   time.Month
		address string
	}
	totals := make(map[key]decimal.Decimal)
	for _, txn := range txns {
		k := key{year: txn.Date.Year(), month: txn.Date.Month(), address: txn.Address}
		totals[k] = totals[k].Add(txn.Amount)
	}
	out := make([]AddressMonthTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, AddressMonthTotal{Year: k.year, Month: k.month, Address: k.address, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Address < out[j].Address
	})
	return out
}

// DayTotal is one raw calendar day's deposit sum with the day's distinct
// messages, used for the collection ledger.
type DayTotal struct {
	Date     time.Time
	Total    decimal.Decimal
	Messages string
}

// DailyTotals sums the batch per raw calendar day.
func DailyTotals(txns []model.Transaction) []DayTotal {
	days := make(map[time.Time]*DayTotal)
	messages := make(map[time.Time][]string)
	for _, txn := range txns {
		date := txn.Day()
		day, ok := days[date]
		if !ok {
			day = &DayTotal{Date: date}
			days[date] = day
		}
		day.Total = day.Total.Add(txn.Amount)
		if txn.Message != "" {
			messages[date] = appendDistinct(messages[date], txn.Message)
		}
	}
	out := make([]DayTotal, 0, len(days))
	for date, day := range days {
		day.Messages = strings.Join(messages[date], ", ")
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
