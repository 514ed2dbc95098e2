package recorder

import (
	"time"

	"AssetWatch/internal/model"
)

// AddEvent records one successful add to a session registry.
type AddEvent struct {
	SessionID  string
	Kind       model.Kind
	Identifier string
	Currency   string
	Points     int
	FirstDate  string
	LastDate   string
	LastClose  string
	AddedAt    time.Time
}

// NewAddEvent summarizes asset for the journal.
func NewAddEvent(sessionID string, asset model.TrackedAsset) *AddEvent {
	evt := &AddEvent{
		SessionID:  sessionID,
		Kind:       asset.Kind(),
		Identifier: asset.Identifier(),
		Points:     asset.Len(),
		AddedAt:    time.Now(),
	}
	switch a := asset.(type) {
	case *model.EquityAsset:
		evt.Currency = a.Currency
	case *model.CryptoAsset:
		evt.Currency = a.Currency
	}
	if closes := asset.Closes(); len(closes) > 0 {
		evt.FirstDate = closes[0].Date.String()
		evt.LastDate = closes[len(closes)-1].Date.String()
		evt.LastClose = closes[len(closes)-1].Close.String()
	}
	return evt
}

// Recorder journals registry additions for later analysis. It is write-only:
// nothing is ever read back into a session.
type Recorder interface {
	RecordAdd(evt *AddEvent) error
	Close() error
}
