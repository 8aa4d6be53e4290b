package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestEffectivePostingDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "friday posts the following monday",
			in:   date(2024, time.June, 7),
			want: date(2024, time.June, 10),
		},
		{
			name: "saturday posts the following monday",
			in:   date(2024, time.June, 8),
			want: date(2024, time.June, 10),
		},
		{
			name: "sunday folds into monday",
			in:   date(2024, time.June, 9),
			want: date(2024, time.June, 10),
		},
		{
			name: "tuesday posts wednesday",
			in:   date(2024, time.June, 11),
			want: date(2024, time.June, 12),
		},
		{
			name: "time of day is dropped",
			in:   time.Date(2024, time.June, 11, 23, 59, 59, 0, time.Local),
			want: date(2024, time.June, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePostingDate(tt.in))
		})
	}
}

func TestIsFee(t *testing.T) {
	fee := Transaction{Kind: KindFee}
	payment := Transaction{Kind: "Betaling"}

	assert.True(t, fee.IsFee())
	assert.False(t, payment.IsFee())
}
