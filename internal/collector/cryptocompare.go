package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"AssetWatch/internal/model"

	"cloud.google.com/go/civil"
	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

const cryptoCompareDefaultBaseURL = "https://min-api.cryptocompare.com"

// cryptoCompareColumns is the field order of a histoday candle.
var cryptoCompareColumns = []string{
	"time", "high", "low", "open", "volumefrom", "volumeto", "close", "conversionType", "conversionSymbol",
}

// CryptoCompareFetcher implements CryptoFetcher using the CryptoCompare
// histoday endpoint.
type CryptoCompareFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCryptoCompareFetcher creates a fetcher with optional API key and proxy.
func NewCryptoCompareFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *CryptoCompareFetcher {
	if baseURL == "" {
		baseURL = cryptoCompareDefaultBaseURL
	}
	return &CryptoCompareFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (f *CryptoCompareFetcher) Name() string { return "cryptocompare" }

// FetchDailyRecords returns the trailing days daily candles of symbol priced in currency.
func (f *CryptoCompareFetcher) FetchDailyRecords(ctx context.Context, symbol, currency string, days int) (CryptoHistory, error) {
	q := url.Values{}
	q.Set("fsym", symbol)
	q.Set("tsym", currency)
	q.Set("limit", strconv.Itoa(days))
	endpoint := fmt.Sprintf("%s/data/v2/histoday?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return CryptoHistory{}, err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Apikey "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return CryptoHistory{}, fmt.Errorf("cryptocompare fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return CryptoHistory{}, fmt.Errorf("cryptocompare: status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return CryptoHistory{}, fmt.Errorf("cryptocompare decode: %w", err)
	}
	return parseHistoday(payload)
}

func parseHistoday(payload any) (CryptoHistory, error) {
	if status, err := jsonpath.Get("$.Response", payload); err == nil && status == "Error" {
		msg, _ := jsonpath.Get("$.Message", payload)
		return CryptoHistory{}, fmt.Errorf("cryptocompare api error: %v", msg)
	}

	raw, err := jsonpath.Get("$.Data.Data", payload)
	if err != nil {
		return CryptoHistory{}, fmt.Errorf("cryptocompare: unexpected payload: %w", err)
	}
	items, ok := raw.([]any)
	if !ok {
		return CryptoHistory{}, fmt.Errorf("cryptocompare: unexpected records type %T", raw)
	}

	history := CryptoHistory{Records: make([]model.CryptoRecord, 0, len(items))}
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return CryptoHistory{}, fmt.Errorf("cryptocompare: record %d is %T", i, item)
		}
		ts, ok := fields["time"].(float64)
		if !ok {
			return CryptoHistory{}, fmt.Errorf("cryptocompare: record %d has no time", i)
		}
		closing, ok := fields["close"].(float64)
		if !ok {
			return CryptoHistory{}, fmt.Errorf("cryptocompare: record %d has no close", i)
		}
		history.Records = append(history.Records, model.CryptoRecord{
			Date:   civil.DateOf(time.Unix(int64(ts), 0).UTC()),
			Close:  decimal.NewFromFloat(closing),
			Fields: fields,
		})
	}
	if len(history.Records) > 0 {
		history.Columns = recordColumns(history.Records[0].Fields)
	}
	return history, nil
}

// recordColumns returns the known histoday columns present in fields, in
// provider order, followed by any extra field sorted by name.
func recordColumns(fields map[string]any) []string {
	cols := make([]string, 0, len(fields))
	for _, c := range cryptoCompareColumns {
		if _, ok := fields[c]; ok {
			cols = append(cols, c)
		}
	}
	var extra []string
	for k := range fields {
		if !slices.Contains(cryptoCompareColumns, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
