package model

import (
	"errors"
	"slices"
)

// Kind identifies the asset class of a tracked asset.
type Kind string

const (
	KindEquity Kind = "equity"
	KindCrypto Kind = "crypto"
)

// ParseKind maps a user-supplied asset class to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindEquity:
		return KindEquity, true
	case KindCrypto:
		return KindCrypto, true
	}
	return "", false
}

// Label is the human readable asset class name.
func (k Kind) Label() string {
	switch k {
	case KindEquity:
		return "Equity"
	case KindCrypto:
		return "Crypto"
	}
	return string(k)
}

// ErrEmptySeries is returned when an asset is built without any data point.
var ErrEmptySeries = errors.New("asset series is empty")

// TrackedAsset is one entry of the asset registry. It is implemented only by
// *EquityAsset and *CryptoAsset and is never mutated after construction.
type TrackedAsset interface {
	Identifier() string
	Kind() Kind
	Len() int
	Closes() []ClosePoint
	trackedAsset()
}

// EquityAsset is a share with its daily OHLCV history.
type EquityAsset struct {
	Symbol   string
	Currency string
	Bars     []EquityBar
}

// NewEquityAsset builds an equity asset with bars ordered ascending by date.
func NewEquityAsset(symbol, currency string, bars []EquityBar) (*EquityAsset, error) {
	if len(bars) == 0 {
		return nil, ErrEmptySeries
	}
	sorted := slices.Clone(bars)
	slices.SortStableFunc(sorted, func(a, b EquityBar) int { return compareDates(a.Date, b.Date) })
	return &EquityAsset{Symbol: symbol, Currency: currency, Bars: sorted}, nil
}

func (a *EquityAsset) Identifier() string { return a.Symbol }
func (a *EquityAsset) Kind() Kind         { return KindEquity }
func (a *EquityAsset) Len() int           { return len(a.Bars) }
func (a *EquityAsset) trackedAsset()      {}

func (a *EquityAsset) Closes() []ClosePoint {
	points := make([]ClosePoint, len(a.Bars))
	for i, b := range a.Bars {
		points[i] = ClosePoint{Date: b.Date, Close: b.Close}
	}
	return points
}

// CryptoAsset is a cryptocurrency priced in a settlement currency. Columns is
// the provider-native field order of its records.
type CryptoAsset struct {
	Symbol   string
	Currency string
	Columns  []string
	Records  []CryptoRecord
}

// NewCryptoAsset builds a crypto asset with records ordered ascending by date.
func NewCryptoAsset(symbol, currency string, columns []string, records []CryptoRecord) (*CryptoAsset, error) {
	if len(records) == 0 {
		return nil, ErrEmptySeries
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b CryptoRecord) int { return compareDates(a.Date, b.Date) })
	return &CryptoAsset{Symbol: symbol, Currency: currency, Columns: slices.Clone(columns), Records: sorted}, nil
}

func (a *CryptoAsset) Identifier() string { return a.Symbol }
func (a *CryptoAsset) Kind() Kind         { return KindCrypto }
func (a *CryptoAsset) Len() int           { return len(a.Records) }
func (a *CryptoAsset) trackedAsset()      {}

func (a *CryptoAsset) Closes() []ClosePoint {
	points := make([]ClosePoint, len(a.Records))
	for i, r := range a.Records {
		points[i] = ClosePoint{Date: r.Date, Close: r.Close}
	}
	return points
}
