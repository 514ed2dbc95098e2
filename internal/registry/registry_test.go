package registry

import (
	"testing"
	"time"

	"AssetWatch/internal/model"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan2 = civil.Date{Year: 2024, Month: time.January, Day: 2}

func equity(t *testing.T, symbol string, closes ...string) *model.EquityAsset {
	t.Helper()
	bars := make([]model.EquityBar, len(closes))
	for i, c := range closes {
		p := decimal.RequireFromString(c)
		bars[i] = model.EquityBar{Date: jan2.AddDays(i), Open: p, High: p, Low: p, Close: p, Volume: int64(100 + i)}
	}
	a, err := model.NewEquityAsset(symbol, "USD", bars)
	require.NoError(t, err)
	return a
}

func crypto(t *testing.T, symbol string, closes ...float64) *model.CryptoAsset {
	t.Helper()
	records := make([]model.CryptoRecord, len(closes))
	for i, c := range closes {
		d := jan2.AddDays(i)
		records[i] = model.CryptoRecord{
			Date:  d,
			Close: decimal.NewFromFloat(c),
			Fields: map[string]any{
				"time":           float64(d.In(time.UTC).Unix()),
				"close":          c,
				"conversionType": "direct",
			},
		}
	}
	a, err := model.NewCryptoAsset(symbol, "BRL", []string{"time", "close", "conversionType"}, records)
	require.NoError(t, err)
	return a
}

func TestRenderSeries_EmptyRegistry(t *testing.T) {
	r := New()
	series, err := r.RenderSeries()
	require.ErrorIs(t, err, ErrNothingToRender)
	assert.Nil(t, series)
	assert.Empty(t, r.RenderDetail())
}

func TestRenderSeries_TwoKinds(t *testing.T) {
	r := New()
	r.Append(equity(t, "AAPL", "100.0", "101.5"))
	r.Append(crypto(t, "BTC", 250000.0, 252000.0))

	series, err := r.RenderSeries()
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, "AAPL", series[0].Label)
	assert.Equal(t, model.KindEquity, series[0].Kind)
	assert.Equal(t, []civil.Date{jan2, jan2.AddDays(1)}, series[0].X)
	assert.True(t, series[0].Y[0].Equal(decimal.RequireFromString("100.0")))
	assert.True(t, series[0].Y[1].Equal(decimal.RequireFromString("101.5")))

	assert.Equal(t, "BTC", series[1].Label)
	assert.Equal(t, model.KindCrypto, series[1].Kind)
	assert.Equal(t, "BRL", series[1].Currency)
	assert.Equal(t, []civil.Date{jan2, jan2.AddDays(1)}, series[1].X)
	assert.True(t, series[1].Y[1].Equal(decimal.NewFromInt(252000)))
}

func TestRenderSeries_DuplicatesStayIndependent(t *testing.T) {
	r := New()
	r.Append(crypto(t, "BTC", 1, 2))
	r.Append(crypto(t, "BTC", 1, 2, 3))

	assert.Equal(t, 2, r.Len())
	series, err := r.RenderSeries()
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Len(t, series[0].X, 2)
	assert.Len(t, series[1].X, 3)

	details := r.RenderDetail()
	require.Len(t, details, 2)
	assert.Equal(t, "Crypto: BTC", details[0].Title)
	assert.Equal(t, "Crypto: BTC", details[1].Title)
}

func TestRenderDetail_FewerThanTenPoints(t *testing.T) {
	r := New()
	r.Append(equity(t, "AAPL", "100.0", "101.5", "99.25"))

	details := r.RenderDetail()
	require.Len(t, details, 1)
	d := details[0]
	assert.Equal(t, "Equity: AAPL", d.Title)
	assert.Equal(t, []string{"Date", "Open", "High", "Low", "Close", "Volume"}, d.Columns)
	require.Len(t, d.Rows, 3)
	assert.Equal(t, []string{"2024-01-02", "$100.00", "$100.00", "$100.00", "$100.00", "100"}, d.Rows[0])
	assert.Equal(t, "2024-01-04", d.Rows[2][0])
	assert.Equal(t, "$99.25", d.Rows[2][4])
}

func TestRenderDetail_KeepsLastTenInOrder(t *testing.T) {
	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	r := New()
	r.Append(crypto(t, "ETH", closes...))

	d := r.RenderDetail()[0]
	assert.Equal(t, []string{"time", "close", "conversionType"}, d.Columns)
	require.Len(t, d.Rows, DetailRows)
	for i, row := range d.Rows {
		assert.Equal(t, jan2.AddDays(5+i).String(), row[0])
		assert.Equal(t, decimal.NewFromInt(int64(6+i)).String(), row[1])
		assert.Equal(t, "direct", row[2])
	}
}

func TestAssetsReturnsCopy(t *testing.T) {
	r := New()
	r.Append(equity(t, "AAPL", "1"))
	assets := r.Assets()
	assets[0] = nil
	assert.NotNil(t, r.Assets()[0])
}

func TestTail(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Tail([]int{1, 2}, 10))
	assert.Equal(t, []int{3, 4}, Tail([]int{1, 2, 3, 4}, 2))
	assert.Empty(t, Tail([]int{}, 3))
}
