package renderer

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"AssetWatch/internal/model"
	"AssetWatch/internal/registry"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jan2 = civil.Date{Year: 2024, Month: time.January, Day: 2}

func sampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()

	aapl, err := model.NewEquityAsset("AAPL", "USD", []model.EquityBar{
		{Date: jan2, Open: decimal.NewFromInt(99), High: decimal.NewFromInt(101), Low: decimal.NewFromInt(98), Close: decimal.RequireFromString("100.0"), Volume: 1000},
		{Date: jan2.AddDays(1), Open: decimal.NewFromInt(100), High: decimal.NewFromInt(102), Low: decimal.NewFromInt(99), Close: decimal.RequireFromString("101.5"), Volume: 1200},
	})
	require.NoError(t, err)
	r.Append(aapl)

	btc, err := model.NewCryptoAsset("BTC", "BRL", []string{"time", "close"}, []model.CryptoRecord{
		{Date: jan2, Close: decimal.NewFromInt(250000), Fields: map[string]any{"time": 1704153600.0, "close": 250000.0}},
		{Date: jan2.AddDays(1), Close: decimal.NewFromInt(252000), Fields: map[string]any{"time": 1704240000.0, "close": 252000.0}},
	})
	require.NoError(t, err)
	r.Append(btc)
	return r
}

func TestTraces(t *testing.T) {
	series, err := sampleRegistry(t).RenderSeries()
	require.NoError(t, err)

	raw, err := json.Marshal(Traces(series))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"scatter"`)

	traces := Traces(series)
	require.Len(t, traces, 2)
	assert.Equal(t, "AAPL", traces[0].Name)
	assert.Equal(t, "lines", traces[0].Mode)
	assert.Equal(t, []string{"2024-01-02", "2024-01-03"}, traces[0].X)
	assert.Equal(t, []float64{100, 101.5}, traces[0].Y)
	assert.Equal(t, "BTC", traces[1].Name)
	assert.Equal(t, []float64{250000, 252000}, traces[1].Y)
}

func TestDetailMarkdown(t *testing.T) {
	out := DetailMarkdown(sampleRegistry(t).RenderDetail())

	assert.Contains(t, out, "### Equity: AAPL")
	assert.Contains(t, out, "### Crypto: BTC")
	assert.Contains(t, out, "Volume")
	assert.Contains(t, out, "$101.50")
	assert.Contains(t, out, "252000")
	assert.Less(t, strings.Index(out, "AAPL"), strings.Index(out, "BTC"))
}

func TestSeriesSummaryMarkdown(t *testing.T) {
	series, err := sampleRegistry(t).RenderSeries()
	require.NoError(t, err)

	out := SeriesSummaryMarkdown(series)
	assert.Contains(t, out, "Last close")
	assert.Contains(t, out, "2024-01-02")
	assert.Contains(t, out, "1.50%")
	assert.Contains(t, out, "0.80%")
	assert.Contains(t, out, "Range pos")
	assert.Contains(t, out, "100%")
}

func TestHTML(t *testing.T) {
	out, err := HTML(DetailMarkdown(sampleRegistry(t).RenderDetail()))
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "Date</th>")
	assert.Contains(t, out, "<h3>Equity: AAPL</h3>")
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(DetailMarkdown(sampleRegistry(t).RenderDetail()), "notty", 120)
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "BTC")
}

func TestSummaryRow_ZeroFirstCloseLeavesChangeEmpty(t *testing.T) {
	s := registry.Series{
		Label:    "NEW",
		Kind:     model.KindCrypto,
		Currency: "BRL",
		X:        []civil.Date{jan2, jan2.AddDays(1), jan2.AddDays(2)},
		Y:        []decimal.Decimal{decimal.Zero, decimal.NewFromInt(10), decimal.NewFromInt(12)},
	}

	row := summaryRow(s)
	assert.Equal(t, "NEW", row[0])
	assert.Equal(t, "3", row[4])
	assert.Empty(t, row[6])
	assert.Equal(t, "100%", row[10])
}
