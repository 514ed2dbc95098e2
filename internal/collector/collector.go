package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"AssetWatch/internal/model"
	"AssetWatch/internal/recorder"
	"AssetWatch/internal/session"

	"github.com/zeromicro/go-zero/core/logx"
)

// Window fixes the history requested from each provider.
type Window struct {
	EquityStart    time.Time // equities are fetched from here through now
	CryptoCurrency string    // settlement currency of crypto prices
	CryptoDays     int       // trailing daily candles for crypto
}

// DefaultWindow mirrors the dashboard defaults: equities since 2024-01-01,
// crypto over four years priced in BRL.
func DefaultWindow() Window {
	return Window{
		EquityStart:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CryptoCurrency: "BRL",
		CryptoDays:     365 * 4,
	}
}

// Collector invokes the provider adapters and normalizes their output into
// tracked assets.
type Collector struct {
	Equity   EquityFetcher
	Crypto   CryptoFetcher
	Window   Window
	Recorder recorder.Recorder
	Now      func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(equity EquityFetcher, crypto CryptoFetcher, window Window, rec recorder.Recorder) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Equity:   equity,
		Crypto:   crypto,
		Window:   window,
		Recorder: rec,
		Now:      time.Now,
	}
}

func normalizeSymbol(kind model.Kind, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: %s symbol is empty", ErrInvalidInput, kind)
	}
	return symbol, nil
}

// FetchEquity returns the daily history of a share from the window start
// through now.
func (c *Collector) FetchEquity(ctx context.Context, symbol string) (*model.EquityAsset, error) {
	symbol, err := normalizeSymbol(model.KindEquity, symbol)
	if err != nil {
		return nil, err
	}
	history, err := c.Equity.FetchDailyBars(ctx, symbol, c.Window.EquityStart, c.Now())
	if err != nil {
		return nil, &ProviderError{Kind: model.KindEquity, Identifier: symbol, Err: err}
	}
	asset, err := model.NewEquityAsset(symbol, history.Currency, history.Bars)
	if err != nil {
		return nil, &NoDataError{Kind: model.KindEquity, Identifier: symbol}
	}
	return asset, nil
}

// FetchCrypto returns the trailing daily history of a cryptocurrency in the
// window settlement currency.
func (c *Collector) FetchCrypto(ctx context.Context, symbol string) (*model.CryptoAsset, error) {
	symbol, err := normalizeSymbol(model.KindCrypto, symbol)
	if err != nil {
		return nil, err
	}
	history, err := c.Crypto.FetchDailyRecords(ctx, symbol, c.Window.CryptoCurrency, c.Window.CryptoDays)
	if err != nil {
		return nil, &ProviderError{Kind: model.KindCrypto, Identifier: symbol, Err: err}
	}
	asset, err := model.NewCryptoAsset(symbol, c.Window.CryptoCurrency, history.Columns, history.Records)
	if err != nil {
		return nil, &NoDataError{Kind: model.KindCrypto, Identifier: symbol}
	}
	return asset, nil
}

// Fetch dispatches to the adapter matching kind.
func (c *Collector) Fetch(ctx context.Context, kind model.Kind, symbol string) (model.TrackedAsset, error) {
	switch kind {
	case model.KindEquity:
		asset, err := c.FetchEquity(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return asset, nil
	case model.KindCrypto:
		asset, err := c.FetchCrypto(ctx, symbol)
		if err != nil {
			return nil, err
		}
		return asset, nil
	}
	return nil, fmt.Errorf("%w: unknown asset kind %q", ErrInvalidInput, kind)
}

// Track fetches one asset and appends it to the session registry. On failure
// the registry is left unchanged and the typed error is returned.
func (c *Collector) Track(ctx context.Context, s *session.Session, kind model.Kind, symbol string) (model.TrackedAsset, error) {
	asset, err := c.Fetch(ctx, kind, symbol)
	if err != nil {
		return nil, err
	}
	s.Registry.Append(asset)
	logx.Infof("session %s: added %s %s (%d points)", s.ID, kind, asset.Identifier(), asset.Len())

	if err := c.Recorder.RecordAdd(recorder.NewAddEvent(s.ID, asset)); err != nil {
		logx.Errorf("record add of %s failed: %v", asset.Identifier(), err)
	}
	return asset, nil
}
