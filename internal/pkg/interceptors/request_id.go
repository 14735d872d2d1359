// Package interceptors carries request metadata (request id, idempotency key)
// from inbound HTTP requests into the context and back out on every outbound
// call made while serving them.
package interceptors

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/footballstore-orders/internal/pkg/interceptors/constants"
)

// RequestMetadata stores the request id assigned by chi's middleware.RequestID
// and the caller's idempotency key in the request context. It must be
// mounted after middleware.RequestID.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = r.Header.Get(constants.HeaderXRequestId)
		}
		idempotencyKey := r.Header.Get(constants.HeaderXIdempotencyKey)

		ctx := WithMetadata(r.Context(), requestID, idempotencyKey)
		w.Header().Set(constants.HeaderXRequestId, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithMetadata returns a copy of ctx carrying the given request id and
// idempotency key. Empty values are stored as-is.
func WithMetadata(ctx context.Context, requestID, idempotencyKey string) context.Context {
	ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
	return context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(constants.ContextKeyRequestID).(string)
	return id
}

func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(constants.ContextKeyIdempotencyKey).(string)
	return key
}
