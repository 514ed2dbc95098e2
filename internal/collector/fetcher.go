package collector

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"AssetWatch/internal/model"
)

// EquityHistory is the normalized daily history returned by an EquityFetcher.
type EquityHistory struct {
	Currency string
	Bars     []model.EquityBar
}

// CryptoHistory is the normalized daily history returned by a CryptoFetcher.
type CryptoHistory struct {
	Columns []string
	Records []model.CryptoRecord
}

// EquityFetcher retrieves the daily bars of a share between two instants.
// A well-formed response without any bar yields an empty history and no error.
type EquityFetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, from, to time.Time) (EquityHistory, error)
	Name() string
}

// CryptoFetcher retrieves the trailing daily candles of a cryptocurrency.
// A well-formed response without any record yields an empty history and no error.
type CryptoFetcher interface {
	FetchDailyRecords(ctx context.Context, symbol, currency string, days int) (CryptoHistory, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
