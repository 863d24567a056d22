package leasing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name            string
		price           float64
		downPayment     float64
		months          int
		wantErr         error
		wantRemaining   float64
		wantMonthlyRate float64
	}{
		{
			name:            "обычный расчёт",
			price:           20000,
			downPayment:     5000,
			months:          36,
			wantRemaining:   15000.00,
			wantMonthlyRate: 416.67,
		},
		{
			name:            "взнос равен цене",
			price:           10000,
			downPayment:     10000,
			months:          12,
			wantRemaining:   0,
			wantMonthlyRate: 0,
		},
		{
			name:            "один месяц",
			price:           999.99,
			downPayment:     0,
			months:          1,
			wantRemaining:   999.99,
			wantMonthlyRate: 999.99,
		},
		{
			name:        "взнос больше цены",
			price:       5000,
			downPayment: 5000.01,
			months:      12,
			wantErr:     ErrDownPaymentTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Calculate(tt.price, tt.downPayment, tt.months)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, quote)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.price, quote.TotalPrice)
			assert.Equal(t, tt.downPayment, quote.DownPayment)
			assert.Equal(t, tt.wantRemaining, quote.RemainingAmount)
			assert.Equal(t, tt.months, quote.Months)
			assert.Equal(t, tt.wantMonthlyRate, quote.MonthlyRate)
		})
	}
}
