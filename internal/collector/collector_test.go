package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"AssetWatch/internal/model"
	"AssetWatch/internal/recorder"
	"AssetWatch/internal/session"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	events []*recorder.AddEvent
	err    error
}

func (r *countingRecorder) RecordAdd(evt *recorder.AddEvent) error {
	r.events = append(r.events, evt)
	return r.err
}

func (r *countingRecorder) Close() error { return nil }

func stubBars(n int) []model.EquityBar {
	start := civil.Date{Year: 2024, Month: time.January, Day: 2}
	bars := make([]model.EquityBar, n)
	for i := range bars {
		p := decimal.NewFromInt(int64(100 + i))
		bars[i] = model.EquityBar{Date: start.AddDays(n - 1 - i), Open: p, High: p, Low: p, Close: p, Volume: 10}
	}
	return bars
}

func stubRecords(n int) []model.CryptoRecord {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	records := make([]model.CryptoRecord, n)
	for i := range records {
		ts := start.AddDate(0, 0, i)
		records[i] = model.CryptoRecord{
			Date:   civil.DateOf(ts),
			Close:  decimal.NewFromInt(int64(250000 + i)),
			Fields: map[string]any{"time": float64(ts.Unix()), "close": float64(250000 + i)},
		}
	}
	return records
}

func newTestCollector(equity, crypto *MockFetcher, rec recorder.Recorder) *Collector {
	c := NewCollector(equity, crypto, DefaultWindow(), rec)
	c.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestFetchEquity_NRows(t *testing.T) {
	for _, n := range []int{1, 2, 10, 120} {
		c := newTestCollector(&MockFetcher{Bars: stubBars(n)}, &MockFetcher{}, nil)
		asset, err := c.FetchEquity(context.Background(), "aapl")
		require.NoError(t, err)

		assert.Equal(t, model.KindEquity, asset.Kind())
		assert.Equal(t, "AAPL", asset.Identifier())
		require.Equal(t, n, asset.Len())
		for i := 1; i < len(asset.Bars); i++ {
			assert.True(t, asset.Bars[i-1].Date.Before(asset.Bars[i].Date), "bars must ascend by date")
		}
	}
}

func TestFetchCrypto_MRecords(t *testing.T) {
	for _, m := range []int{1, 3, 1461} {
		records := stubRecords(m)
		c := newTestCollector(&MockFetcher{}, &MockFetcher{Records: records}, nil)
		asset, err := c.FetchCrypto(context.Background(), "btc")
		require.NoError(t, err)

		assert.Equal(t, model.KindCrypto, asset.Kind())
		assert.Equal(t, "BRL", asset.Currency)
		require.Equal(t, m, asset.Len())
		for i, rec := range asset.Records {
			ts := int64(records[i].Fields["time"].(float64))
			assert.Equal(t, civil.DateOf(time.Unix(ts, 0).UTC()), rec.Date)
		}
	}
}

func TestFetch_EmptySymbolIsInvalidInput(t *testing.T) {
	equity := &MockFetcher{}
	crypto := &MockFetcher{}
	c := newTestCollector(equity, crypto, nil)

	_, err := c.FetchEquity(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.FetchCrypto(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = c.Fetch(context.Background(), model.Kind("bond"), "X")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, equity.Calls(), "no network call on invalid input")
	assert.Zero(t, crypto.Calls(), "no network call on invalid input")
}

func TestTrack_Success(t *testing.T) {
	rec := &countingRecorder{}
	c := newTestCollector(&MockFetcher{Bars: stubBars(2)}, &MockFetcher{Records: stubRecords(2)}, rec)
	s := session.New("s1", time.Now())

	asset, err := c.Track(context.Background(), s, model.KindEquity, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", asset.Identifier())

	_, err = c.Track(context.Background(), s, model.KindCrypto, "BTC")
	require.NoError(t, err)
	_, err = c.Track(context.Background(), s, model.KindCrypto, "BTC")
	require.NoError(t, err)

	assets := s.Registry.Assets()
	require.Len(t, assets, 3)
	assert.Equal(t, "AAPL", assets[0].Identifier())
	assert.Equal(t, "BTC", assets[1].Identifier())
	assert.Equal(t, "BTC", assets[2].Identifier())
	assert.NotSame(t, assets[1], assets[2])

	require.Len(t, rec.events, 3)
	assert.Equal(t, "s1", rec.events[0].SessionID)
}

func TestTrack_RecorderFailureDoesNotFailAdd(t *testing.T) {
	rec := &countingRecorder{err: errors.New("disk full")}
	c := newTestCollector(&MockFetcher{Bars: stubBars(1)}, &MockFetcher{}, rec)
	s := session.New("s1", time.Now())

	_, err := c.Track(context.Background(), s, model.KindEquity, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Registry.Len())
}

func TestTrack_NoDataLeavesRegistryUnchanged(t *testing.T) {
	rec := &countingRecorder{}
	c := newTestCollector(&MockFetcher{Bars: []model.EquityBar{}}, &MockFetcher{Records: []model.CryptoRecord{}}, rec)
	s := session.New("s1", time.Now())

	_, err := c.Track(context.Background(), s, model.KindEquity, "AAPL")
	require.ErrorIs(t, err, ErrNoDataAvailable)
	var nodata *NoDataError
	require.ErrorAs(t, err, &nodata)
	assert.Equal(t, "AAPL", nodata.Identifier)

	_, err = c.Track(context.Background(), s, model.KindCrypto, "BTC")
	require.ErrorIs(t, err, ErrNoDataAvailable)

	assert.Zero(t, s.Registry.Len())
	assert.Empty(t, rec.events)
}

func TestTrack_TransportErrorLeavesRegistryUnchanged(t *testing.T) {
	boom := errors.New("connection refused")
	c := newTestCollector(&MockFetcher{Err: boom}, &MockFetcher{Err: boom}, nil)
	s := session.New("s1", time.Now())

	for _, kind := range []model.Kind{model.KindEquity, model.KindCrypto} {
		_, err := c.Track(context.Background(), s, kind, "XYZ")
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, kind, perr.Kind)
		assert.Equal(t, "XYZ", perr.Identifier)
		assert.ErrorIs(t, err, boom)
	}
	assert.Zero(t, s.Registry.Len())
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "Enter a symbol before adding an asset.",
		UserMessage(fmt.Errorf("%w: equity symbol is empty", ErrInvalidInput)))
	assert.Equal(t, "No data available for Crypto BTC.",
		UserMessage(&NoDataError{Kind: model.KindCrypto, Identifier: "BTC"}))
	assert.Equal(t, "Could not fetch Equity AAPL: timeout",
		UserMessage(&ProviderError{Kind: model.KindEquity, Identifier: "AAPL", Err: errors.New("timeout")}))
}

func TestMockFetcher_Generated(t *testing.T) {
	m := &MockFetcher{}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h, err := m.FetchDailyBars(context.Background(), "AAPL", from, from.AddDate(0, 0, 30))
	require.NoError(t, err)
	assert.Len(t, h.Bars, 30)

	ch, err := m.FetchDailyRecords(context.Background(), "BTC", "BRL", 5)
	require.NoError(t, err)
	assert.Len(t, ch.Records, 5)
	assert.Equal(t, []string{"time", "close"}, ch.Columns)
	assert.Equal(t, 2, m.Calls())
}

func TestMockFetcher_ConcurrentFetches(t *testing.T) {
	m := &MockFetcher{}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = m.FetchDailyBars(context.Background(), "AAPL", from, from.AddDate(0, 0, 5))
		}()
		go func() {
			defer wg.Done()
			_, _ = m.FetchDailyRecords(context.Background(), "BTC", "BRL", 5)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, m.Calls())
}
