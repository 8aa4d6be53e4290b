// Package aggregate computes the summary views over a transaction batch.
//
// Every function here is pure: it reads the batch and returns a fresh
// aggregate, so the views can never disagree through shared state.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kbirkholm/kollekt/internal/model"
)

// Bucket sums one classification (regular or excluded) within a day.
type Bucket struct {
	// Donation is the sum of non-fee amounts.
	Donation decimal.Decimal
	// Fee is the fee sum, sign-flipped to positive.
	Fee decimal.Decimal
	// Total is the raw sum including fees.
	Total decimal.Decimal
	// Messages joins the distinct non-empty messages with ", ".
	Messages string
}

// DaySummary is the per-posting-date view of a batch.
type DaySummary struct {
	Date     time.Time
	Combined decimal.Decimal
	Regular  Bucket
	Excluded Bucket
}

type dayAccumulator struct {
	summary          DaySummary
	regularMessages  []string
	excludedMessages []string
}

// Daily groups the batch by effective posting date and splits each day into
// regular and excluded sub-totals.
func Daily(txns []model.Transaction) []DaySummary {
	days := make(map[time.Time]*dayAccumulator)
	for _, txn := range txns {
		date := txn.PostingDate()
		acc, ok := days[date]
		if !ok {
			acc = &dayAccumulator{summary: DaySummary{Date: date}}
			days[date] = acc
		}

		acc.summary.Combined = acc.summary.Combined.Add(txn.Amount)
		bucket := &acc.summary.Regular
		messages := &acc.regularMessages
		if txn.Excluded {
			bucket = &acc.summary.Excluded
			messages = &acc.excludedMessages
		}

		bucket.Total = bucket.Total.Add(txn.Amount)
		if txn.IsFee() {
			bucket.Fee = bucket.Fee.Sub(txn.Amount)
		} else {
			bucket.Donation = bucket.Donation.Add(txn.Amount)
		}
		if txn.Message != "" {
			*messages = appendDistinct(*messages, txn.Message)
		}
	}

	out := make([]DaySummary, 0, len(days))
	for _, acc := range days {
		acc.summary.Regular.Messages = strings.Join(acc.regularMessages, ", ")
		acc.summary.Excluded.Messages = strings.Join(acc.excludedMessages, ", ")
		out = append(out, acc.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// MonthlyTotal is one identity's donation total within a calendar month.
// The month comes from the raw transaction date, not the posting date.
type MonthlyTotal struct {
	Year        int
	Month       time.Month
	Name        string // rearranged to "Last, First Middle"
	PhoneSuffix string
	Total       decimal.Decimal
}

// MonthlyByIdentity sums regular (non-excluded, non-fee) transactions per
// calendar month and sender.
func MonthlyByIdentity(txns []model.Transaction) []MonthlyTotal {
	type key struct {
		year  int
		month time.Month
		name  string
		phone string
	}
	totals := make(map[key]decimal.Decimal)
	for _, txn := range txns {
		if txn.Excluded || txn.IsFee() {
			continue
		}
		k := key{
			year:  txn.Date.Year(),
			month: txn.Date.Month(),
			name:  model.RearrangeName(txn.Name),
			phone: txn.PhoneSuffix,
		}
		totals[k] = totals[k].Add(txn.Amount)
	}

	out := make([]MonthlyTotal, 0, len(totals))
	for k, total := range totals {
		out = append(out, MonthlyTotal{
			Year:        k.year,
			Month:       k.month,
			Name:        k.name,
			PhoneSuffix: k.phone,
			Total:       total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ExcludedDay is the excluded-transaction sum for one date together with a
// label message (the first non-empty one, a label rather than an audit
// trail).
type ExcludedDay struct {
	Date    time.Time
	Total   decimal.Decimal
	Message string
}

// ExcludedByDay sums excluded non-fee transactions per day. Whether the day
// is the effective posting date or the raw calendar date is configuration:
// the two historical flows disagreed.
func ExcludedByDay(txns []model.Transaction, effectiveDates bool) []ExcludedDay {
	days := make(map[time.Time]*ExcludedDay)
	for _, txn := range txns {
		if !txn.Excluded || txn.IsFee() {
			continue
		}
		date := txn.Day()
		if effectiveDates {
			date = txn.PostingDate()
		}
		day, ok := days[date]
		if !ok {
			day = &ExcludedDay{Date: date}
			days[date] = day
		}
		day.Total = day.Total.Add(txn.Amount)
		if day.Message == "" {
			day.Message = txn.Message
		}
	}

	out := make([]ExcludedDay, 0, len(days))
	for _, day := range days {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func appendDistinct(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
