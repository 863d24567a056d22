// Package leasing реализует расчёт лизингового платежа.
//
// Расчёт детерминированный и не имеет побочных эффектов:
// остаток = цена - первоначальный взнос, ежемесячный платёж = остаток / месяцы.
package leasing

import (
	"errors"
	"math"
)

// ErrDownPaymentTooLarge возвращается, когда первоначальный взнос
// превышает цену автомобиля.
var ErrDownPaymentTooLarge = errors.New("down payment exceeds car price")

// Quote — арифметическая часть расчёта лизинга.
type Quote struct {
	TotalPrice      float64
	DownPayment     float64
	RemainingAmount float64
	Months          int
	MonthlyRate     float64
}

// Calculate считает остаток и ежемесячный платёж.
// Суммы округляются до двух знаков, как в банковской выписке.
func Calculate(price, downPayment float64, months int) (*Quote, error) {
	remaining := price - downPayment
	if remaining < 0 {
		return nil, ErrDownPaymentTooLarge
	}
	return &Quote{
		TotalPrice:      price,
		DownPayment:     downPayment,
		RemainingAmount: round2(remaining),
		Months:          months,
		MonthlyRate:     round2(remaining / float64(months)),
	}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
