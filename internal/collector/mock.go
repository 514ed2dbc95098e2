package collector

import (
	"context"
	"hash/fnv"
	"sync/atomic"
	"time"

	"AssetWatch/internal/model"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// MockFetcher returns controllable fixed data for development and testing.
// With no fixed data it generates a deterministic series per symbol. It is
// safe to share across sessions as long as the fixed fields are not mutated.
type MockFetcher struct {
	Price   float64
	Bars    []model.EquityBar
	Records []model.CryptoRecord
	Err     error

	calls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns how many fetches were made.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, from, to time.Time) (EquityHistory, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return EquityHistory{}, m.Err
	}
	if m.Bars != nil {
		return EquityHistory{Currency: "USD", Bars: m.Bars}, nil
	}
	days := int(to.Sub(from).Hours() / 24)
	return EquityHistory{Currency: "USD", Bars: generateMockBars(m.basePrice(symbol), days, to)}, nil
}

func (m *MockFetcher) FetchDailyRecords(_ context.Context, symbol, _ string, days int) (CryptoHistory, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return CryptoHistory{}, m.Err
	}
	records := m.Records
	if records == nil {
		for _, b := range generateMockBars(m.basePrice(symbol)*1000, days, time.Now()) {
			ts := b.Date.In(time.UTC).Unix()
			c, _ := b.Close.Float64()
			records = append(records, model.CryptoRecord{
				Date:   b.Date,
				Close:  b.Close,
				Fields: map[string]any{"time": float64(ts), "close": c},
			})
		}
	}
	if len(records) == 0 {
		return CryptoHistory{}, nil
	}
	return CryptoHistory{Columns: recordColumns(records[0].Fields), Records: records}, nil
}

func (m *MockFetcher) basePrice(symbol string) float64 {
	if m.Price > 0 {
		return m.Price
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return float64(50 + h.Sum32()%450)
}

func generateMockBars(basePrice float64, count int, end time.Time) []model.EquityBar {
	if count < 0 {
		count = 0
	}
	bars := make([]model.EquityBar, count)
	for i := 0; i < count; i++ {
		p := decimal.NewFromFloat(basePrice * (1 + float64(i-count/2)*0.001)).Round(4)
		bars[i] = model.EquityBar{
			Date:   civil.DateOf(end.AddDate(0, 0, -(count - i))),
			Open:   p.Mul(decimal.RequireFromString("0.999")),
			High:   p.Mul(decimal.RequireFromString("1.005")),
			Low:    p.Mul(decimal.RequireFromString("0.995")),
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
