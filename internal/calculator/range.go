package calculator

import (
	"errors"

	"AssetWatch/internal/model"

	"github.com/shopspring/decimal"
)

// Range scans the most recent window closes and returns the high and low.
// A window of zero or less scans the whole series.
func Range(points []model.ClosePoint, window int) (high, low decimal.Decimal, err error) {
	if len(points) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no closes provided")
	}
	n := len(points)
	start := 0
	if window > 0 && n > window {
		start = n - window
	}
	high = points[start].Close
	low = points[start].Close
	for i := start + 1; i < n; i++ {
		high = decimal.Max(high, points[i].Close)
		low = decimal.Min(low, points[i].Close)
	}
	return high, low, nil
}

// Position returns where current sits within [low, high], clamped to 0..1.
func Position(current, high, low decimal.Decimal) (decimal.Decimal, error) {
	if high.Equal(low) {
		return decimal.NewFromFloat(0.5), nil
	}
	if high.LessThan(low) {
		return decimal.Zero, errors.New("high must be >= low")
	}
	pos := current.Sub(low).Div(high.Sub(low))
	if pos.IsNegative() {
		pos = decimal.Zero
	}
	if pos.GreaterThan(decimal.NewFromInt(1)) {
		pos = decimal.NewFromInt(1)
	}
	return pos, nil
}
