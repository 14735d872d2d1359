// Package apperr defines the error taxonomy shared by the orders service,
// its HTTP clients and the gateway.
//
// Every classified failure is an *Error whose Kind is one of the sentinel
// values below, so callers match with errors.Is regardless of wrapping:
//
//	if errors.Is(err, apperr.ErrNotFound) { ... }
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStockExceeded      = errors.New("stock exceeded")
	ErrOrderStateConflict = errors.New("order state conflict")
)

// Error carries a taxonomy kind plus the human readable message that is
// surfaced to the caller unchanged.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func OrderStateConflict(format string, args ...any) error {
	return &Error{Kind: ErrOrderStateConflict, Message: fmt.Sprintf(format, args...)}
}

// StockExceeded names the apparel whose remote stock cannot cover the
// requested quantity.
func StockExceeded(apparelID string, requested, available int) error {
	return &Error{
		Kind:    ErrStockExceeded,
		Message: fmt.Sprintf("not enough stock for %s: requested %d, available %d", apparelID, requested, available),
	}
}

var codes = []struct {
	kind error
	code string
}{
	{ErrNotFound, "not_found"},
	{ErrInvalidInput, "invalid_input"},
	{ErrStockExceeded, "stock_exceeded"},
	{ErrOrderStateConflict, "order_state_conflict"},
}

// Code returns the short machine-readable code used in error envelopes.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return "internal_error"
}

// FromCode rebuilds a taxonomy error from an envelope code. It returns nil
// for codes outside the taxonomy.
func FromCode(code, message string) error {
	for _, c := range codes {
		if c.code == code {
			return &Error{Kind: c.kind, Message: message}
		}
	}
	return nil
}

// HTTPStatus maps a taxonomy error to its HTTP status. Unclassified errors
// map to 500; callers that know better (e.g. upstream failures) check first.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrStockExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrOrderStateConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
