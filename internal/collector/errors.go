package collector

import (
	"errors"
	"fmt"

	"AssetWatch/internal/model"
)

var (
	// ErrInvalidInput is returned for an empty symbol, before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDataAvailable matches every *NoDataError.
	ErrNoDataAvailable = errors.New("no data available")
)

// ProviderError reports a transport or provider-side failure for one symbol.
type ProviderError struct {
	Kind       model.Kind
	Identifier string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed for %s: %v", e.Kind, e.Identifier, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NoDataError reports a well-formed provider response without any data point.
type NoDataError struct {
	Kind       model.Kind
	Identifier string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data available for %s %s", e.Kind, e.Identifier)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoDataAvailable }

// UserMessage turns an add failure into the inline message shown to the user.
func UserMessage(err error) string {
	var (
		perr  *ProviderError
		nodat *NoDataError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "Enter a symbol before adding an asset."
	case errors.As(err, &nodat):
		return fmt.Sprintf("No data available for %s %s.", nodat.Kind.Label(), nodat.Identifier)
	case errors.As(err, &perr):
		return fmt.Sprintf("Could not fetch %s %s: %v", perr.Kind.Label(), perr.Identifier, perr.Err)
	}
	return err.Error()
}
