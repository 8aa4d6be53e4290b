package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbirkholm/kollekt/internal/model"
)

func txn(day int, amount string, opts ...func(*model.Transaction)) model.Transaction {
	t := model.Transaction{
		Date:   time.Date(2024, time.June, day, 12, 0, 0, 0, time.Local),
		Amount: decimal.RequireFromString(amount),
		Kind:   "Betaling",
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func asFee(t *model.Transaction)      { t.Kind = model.KindFee }
func asExcluded(t *model.Transaction) { t.Excluded = true }
func withMessage(m string) func(*model.Transaction) {
	return func(t *model.Transaction) { t.Message = m }
}
func withSender(name, phone string) func(*model.Transaction) {
	return func(t *model.Transaction) { t.Name = name; t.PhoneSuffix = phone }
}

func TestDaily(t *testing.T) {
	// June 11 2024 is a Tuesday: everything posts on Wednesday the 12th.
	txns := []model.Transaction{
		txn(11, "100", withMessage("Gave")),
		txn(11, "-2.50", asFee),
		txn(11, "50", withMessage("Gave")), // duplicate message collapses
		txn(11, "200", asExcluded, withMessage("Sommerfest")),
		txn(11, "-1.50", asFee, asExcluded),
	}

	days := Daily(txns)
	require.Len(t, days, 1)

	day := days[0]
	assert.Equal(t, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.Local), day.Date)
	assert.True(t, day.Combined.Equal(decimal.RequireFromString("346")))

	assert.True(t, day.Regular.Donation.Equal(decimal.RequireFromString("150")))
	assert.True(t, day.Regular.Fee.Equal(decimal.RequireFromString("2.5")), "fee is sign-flipped")
	assert.True(t, day.Regular.Total.Equal(decimal.RequireFromString("147.5")))
	assert.Equal(t, "Gave", day.Regular.Messages)

	assert.True(t, day.Excluded.Donation.Equal(decimal.RequireFromString("200")))
	assert.True(t, day.Excluded.Fee.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, day.Excluded.Total.Equal(decimal.RequireFromString("198.5")))
	assert.Equal(t, "Sommerfest", day.Excluded.Messages)
}

func TestDaily_WeekendFoldsIntoMonday(t *testing.T) {
	txns := []model.Transaction{
		txn(7, "100"), // Friday
		txn(8, "100"), // Saturday
		txn(9, "100"), // Sunday
	}

	days := Daily(txns)
	require.Len(t, days, 1)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local), days[0].Date)
	assert.True(t, days[0].Combined.Equal(decimal.RequireFromString("300")))
}

func TestMonthlyByIdentity(t *testing.T) {
	txns := []model.Transaction{
		txn(3, "100", withSender("Jens Peter Hansen", "5678")),
		txn(17, "150", withSender("Jens Peter Hansen", "5678")),
		txn(17, "-2", asFee, withSender("Jens Peter Hansen", "5678")),
		txn(17, "500", asExcluded, withSender("Jens Peter Hansen", "5678")),
		txn(17, "75", withSender("Anna Madsen", "1111")),
	}

	totals := MonthlyByIdentity(txns)
	require.Len(t, totals, 2)

	assert.Equal(t, "Hansen, Jens Peter", totals[0].Name)
	assert.Equal(t, "5678", totals[0].PhoneSuffix)
	assert.True(t, totals[0].Total.Equal(decimal.RequireFromString("250")),
		"fees and excluded transactions stay out of the monthly totals")

	assert.Equal(t, "Madsen, Anna", totals[1].Name)
	assert.Equal(t, time.June, totals[1].Month)
	assert.Equal(t, 2024, totals[1].Year)
}

func TestMonthlyByIdentity_UsesRawDateNotPostingDate(t *testing.T) {
	// Friday 31 May posts on Monday 3 June but belongs to May's column.
	friday := model.Transaction{
		Date:   time.Date(2024, time.May, 31, 10, 0, 0, 0, time.Local),
		Amount: decimal.NewFromInt(100),
		Name:   "Jens Hansen",
	}

	totals := MonthlyByIdentity([]model.Transaction{friday})
	require.Len(t, totals, 1)
	assert.Equal(t, time.May, totals[0].Month)
}

func TestExcludedByDay(t *testing.T) {
	txns := []model.Transaction{
		txn(7, "200", asExcluded, withMessage("Sommerfest")), // Friday
		txn(7, "300", asExcluded),
		txn(7, "-2", asFee, asExcluded),
		txn(11, "50"), // regular, ignored
	}

	t.Run("effective dates", func(t *testing.T) {
		days := ExcludedByDay(txns, true)
		require.Len(t, days, 1)
		assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local), days[0].Date)
		assert.True(t, days[0].Total.Equal(decimal.RequireFromString("500")))
		assert.Equal(t, "Sommerfest", days[0].Message)
	})

	t.Run("raw dates", func(t *testing.T) {
		days := ExcludedByDay(txns, false)
		require.Len(t, days, 1)
		assert.Equal(t, time.Date(2024, time.June, 7, 0, 0, 0, 0, time.Local), days[0].Date)
	})
}

func TestDayFiles(t *testing.T) {
	txns := []model.Transaction{
		txn(7, "100"),                // Friday -> posts Monday the 10th
		txn(8, "200"),                // Saturday -> posts Monday the 10th
		txn(11, "50", asExcluded),    // Tuesday -> posts Wednesday
	}

	files := DayFiles(txns)
	require.Len(t, files, 3)

	assert.True(t, files[0].NeedsSuffix, "friday shares its posting date with saturday")
	assert.True(t, files[1].NeedsSuffix)
	assert.False(t, files[2].NeedsSuffix)
	assert.True(t, files[2].HasExcluded)
	assert.True(t, files[0].Total().Equal(decimal.RequireFromString("100")))
}

func TestDailyTotals(t *testing.T) {
	txns := []model.Transaction{
		txn(3, "100", withMessage("Gave")),
		txn(3, "200", withMessage("Gave fra Anna")),
		txn(4, "50"),
	}

	days := DailyTotals(txns)
	require.Len(t, days, 2)
	assert.True(t, days[0].Total.Equal(decimal.RequireFromString("300")))
	assert.Equal(t, "Gave, Gave fra Anna", days[0].Messages)
	assert.True(t, days[1].Total.Equal(decimal.RequireFromString("50")))
}

func TestMonthlyTotalsAndByAddress(t *testing.T) {
	may := model.Transaction{
		Date:    time.Date(2024, time.May, 30, 0, 0, 0, 0, time.Local),
		Amount:  decimal.NewFromInt(100),
		Address: "Hovedgaden 12, 7000 Fredericia",
	}
	june := model.Transaction{
		Date:    time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local),
		Amount:  decimal.NewFromInt(200),
		Address: "Hovedgaden 12, 7000 Fredericia",
	}

	months := MonthlyTotals([]model.Transaction{may, june})
	require.Len(t, months, 2)
	assert.Equal(t, time.May, months[0].Month)

	byAddress := MonthlyByAddress([]model.Transaction{may, june})
	require.Len(t, byAddress, 2)
	assert.Equal(t, "Hovedgaden 12, 7000 Fredericia", byAddress[0].Address)
}
