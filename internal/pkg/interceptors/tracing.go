package interceptors

import (
	"net/http"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors/constants"
)

// Transport copies the request id and idempotency key found in the outgoing
// request's context onto its headers so downstream services can correlate
// the call. Headers already set by the caller win.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := RequestID(req.Context())
	idempotencyKey := IdempotencyKey(req.Context())
	if requestID == "" && idempotencyKey == "" {
		return t.Base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	if requestID != "" && out.Header.Get(constants.HeaderXRequestId) == "" {
		out.Header.Set(constants.HeaderXRequestId, requestID)
	}
	if idempotencyKey != "" && out.Header.Get(constants.HeaderXIdempotencyKey) == "" {
		out.Header.Set(constants.HeaderXIdempotencyKey, idempotencyKey)
	}
	return t.Base.RoundTrip(out)
}
