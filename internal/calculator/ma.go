package calculator

import (
	"errors"

	"AssetWatch/internal/model"

	"github.com/shopspring/decimal"
)

// SMA computes the simple moving average of the last period closes.
func SMA(points []model.ClosePoint, period int) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(points) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	sum := decimal.Zero
	for i := len(points) - period; i < len(points); i++ {
		sum = sum.Add(points[i].Close)
	}
	return sum.Div(decimal.NewFromInt(int64(period))), nil
}

// Change returns the absolute and percent change from the first to the last
// close. A zero first close has no defined percent change.
func Change(points []model.ClosePoint) (abs, pct decimal.Decimal, err error) {
	if len(points) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no closes provided")
	}
	first := points[0].Close
	last := points[len(points)-1].Close
	abs = last.Sub(first)
	if first.IsZero() {
		return decimal.Zero, decimal.Zero, errors.New("first close is zero")
	}
	return abs, abs.Div(first).Mul(decimal.NewFromInt(100)), nil
}
