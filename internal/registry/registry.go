// Package registry holds the ordered list of assets tracked by one session
// and derives the chart series and detail tables from it.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"AssetWatch/internal/model"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DetailRows is the number of trailing points shown per asset table.
const DetailRows = 10

// ErrNothingToRender is returned by RenderSeries on an empty registry.
var ErrNothingToRender = errors.New("nothing to render")

// Registry is an append-only, insertion-ordered sequence of tracked assets.
// Duplicates are kept as independent entries. It is not safe for concurrent
// use; the owning session serializes access.
type Registry struct {
	assets []model.TrackedAsset
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Append adds asset at the end of the registry.
func (r *Registry) Append(asset model.TrackedAsset) {
	r.assets = append(r.assets, asset)
}

// Len returns the number of tracked assets.
func (r *Registry) Len() int { return len(r.assets) }

// Assets returns a copy of the tracked assets in insertion order.
func (r *Registry) Assets() []model.TrackedAsset {
	return slices.Clone(r.assets)
}

// Series is one chart line: closing prices against the asset's own dates.
type Series struct {
	Label    string
	Kind     model.Kind
	Currency string
	X        []civil.Date
	Y        []decimal.Decimal
}

// RenderSeries returns one series per asset in insertion order. Series are not
// resampled nor aligned to each other.
func (r *Registry) RenderSeries() ([]Series, error) {
	if len(r.assets) == 0 {
		return nil, ErrNothingToRender
	}
	out := make([]Series, 0, len(r.assets))
	for _, a := range r.assets {
		closes := a.Closes()
		s := Series{
			Label:    a.Identifier(),
			Kind:     a.Kind(),
			Currency: currencyOf(a),
			X:        make([]civil.Date, len(closes)),
			Y:        make([]decimal.Decimal, len(closes)),
		}
		for i, p := range closes {
			s.X[i] = p.Date
			s.Y[i] = p.Close
		}
		out = append(out, s)
	}
	return out, nil
}

// Detail is the flat table of the last DetailRows points of one asset.
type Detail struct {
	Label    string
	Kind     model.Kind
	Title    string
	Currency string
	Columns  []string
	Rows     [][]string
}

// RenderDetail returns one table per asset in insertion order.
func (r *Registry) RenderDetail() []Detail {
	out := make([]Detail, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, DetailOf(a))
	}
	return out
}

// DetailOf builds the table of asset: OHLCV columns for equities,
// provider-native columns for crypto.
func DetailOf(asset model.TrackedAsset) Detail {
	d := Detail{
		Label:    asset.Identifier(),
		Kind:     asset.Kind(),
		Title:    fmt.Sprintf("%s: %s", asset.Kind().Label(), asset.Identifier()),
		Currency: currencyOf(asset),
	}
	switch a := asset.(type) {
	case *model.EquityAsset:
		d.Columns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}
		for _, b := range Tail(a.Bars, DetailRows) {
			d.Rows = append(d.Rows, []string{
				b.Date.String(),
				model.FormatPrice(b.Open, a.Currency),
				model.FormatPrice(b.High, a.Currency),
				model.FormatPrice(b.Low, a.Currency),
				model.FormatPrice(b.Close, a.Currency),
				strconv.FormatInt(b.Volume, 10),
			})
		}
	case *model.CryptoAsset:
		d.Columns = slices.Clone(a.Columns)
		if len(d.Columns) == 0 {
			d.Columns = []string{"time", "close"}
		}
		for _, rec := range Tail(a.Records, DetailRows) {
			row := make([]string, len(d.Columns))
			for i, col := range d.Columns {
				row[i] = cryptoCell(rec, col)
			}
			d.Rows = append(d.Rows, row)
		}
	}
	return d
}

func cryptoCell(rec model.CryptoRecord, col string) string {
	switch col {
	case "time":
		return rec.Date.String()
	case "close":
		if _, ok := rec.Fields[col]; !ok {
			return rec.Close.String()
		}
	}
	switch v := rec.Fields[col].(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func currencyOf(asset model.TrackedAsset) string {
	switch a := asset.(type) {
	case *model.EquityAsset:
		return a.Currency
	case *model.CryptoAsset:
		return a.Currency
	}
	return ""
}

// Tail returns the last n elements of s, or all of s when it is shorter.
func Tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
