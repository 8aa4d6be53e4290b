package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFormat is a minimal continuation-joining layout: date;amount;message.
// The message sits last: it is the field the export wraps.
func testFormat() Format {
	return Format{
		Name:              "test",
		Separator:         ";",
		JoinContinuations: true,
		MinFields:         3,
		Date:              0,
		Amount:            1,
		Message:           2,
		Kind:              -1,
		ExternalID:        -1,
		SenderName:        -1,
		Phone:             -1,
		Address:           -1,
	}
}

func TestParse_LineContinuation(t *testing.T) {
	input := strings.Join([]string{
		"01-06-2024;100,00;Msg part one",
		"continued text no date",
		"02-06-2024;250,00;Next record",
	}, "\n")

	txns, err := NewReader(testFormat()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "Msg part one continued text no date", txns[0].Message)
	assert.Equal(t, "Next record", txns[1].Message)
}

func TestRecords_ContinuationJoinsBeforeSplitting(t *testing.T) {
	input := strings.Join([]string{
		"01-06-2024;Msg part one",
		"continued text no date",
		"02-06-2024;Next record;x;y",
	}, "\n")

	records, err := NewReader(testFormat()).records(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "01-06-2024;Msg part one continued text no date", records[0])
}

func TestParse_MalformedRecordsAreSkipped(t *testing.T) {
	input := strings.Join([]string{
		"01-06-2024;100,00;ok",
		"02-06-2024;too few fields",
		"03-06-2024;abc;bad amount",
		"04-06-2024;50,00;ok too",
	}, "\n")

	txns, err := NewReader(testFormat()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "ok", txns[0].Message)
	assert.Equal(t, "ok too", txns[1].Message)
}

func TestParse_LeadingJunkIsDropped(t *testing.T) {
	input := strings.Join([]string{
		"Dato;Beløb;Tekst",
		"01-06-2024;100,00;record",
	}, "\n")

	txns, err := NewReader(testFormat()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
}

func TestParse_MobilePayRecord(t *testing.T) {
	fields := make([]string, 17)
	fields[5] = "Betaling"
	fields[6] = "1.234,56"
	fields[10] = "07-06-2024 18:30:00"
	fields[11] = ` "til  indsamlingen" `
	fields[14] = "TX-1"
	fields[15] = "Jens  Peter Hansen"
	fields[16] = "+45 12 34 56 78"

	input := "header line\n" + strings.Join(fields, ";")

	txns, err := NewReader(MobilePay()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)

	txn := txns[0]
	assert.Equal(t, time.Date(2024, time.June, 7, 18, 30, 0, 0, time.Local), txn.Date)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "til  indsamlingen", txn.Message)
	assert.Equal(t, "Betaling", txn.Kind)
	assert.Equal(t, "TX-1", txn.ExternalID)
	assert.Equal(t, "Jens Peter Hansen", txn.Name)
	assert.Equal(t, "5678", txn.PhoneSuffix)
}

func TestParse_BankRecordWithWrappedAddress(t *testing.T) {
	input := strings.Join([]string{
		"03-06-2024;Gave fra medlem;500,00;;;;;Hovedgaden 12,",
		"7000 Fredericia",
	}, "\n")

	txns, err := NewReader(Bank()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Hovedgaden 12, 7000 Fredericia", txns[0].Address)
	assert.True(t, txns[0].Amount.Equal(decimal.NewFromInt(500)))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "100,50", want: "100.5"},
		{in: "1.234,56", want: "1234.56"},
		{in: "-75,00", want: "-75"},
		{in: "500", want: "500"},
		{in: "1,234.00", want: "1234"},
		{in: "1,234,567.89", want: "1234567.89"},
		{in: "123.45", want: "123.45"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s -> %s", tt.in, got)
	}

	_, err := ParseAmount("abc")
	assert.Error(t, err)
}
