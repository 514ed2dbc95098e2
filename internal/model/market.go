package model

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// EquityBar represents a single daily OHLCV bar of a traded share.
type EquityBar struct {
	Date   civil.Date
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// CryptoRecord is one daily candle as returned by the crypto provider.
// Fields keeps every provider-native field, including time and close.
type CryptoRecord struct {
	Date   civil.Date
	Close  decimal.Decimal
	Fields map[string]any
}

// ClosePoint is the plottable (date, close) pair shared by every asset kind.
type ClosePoint struct {
	Date  civil.Date
	Close decimal.Decimal
}

func compareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}
