package sagalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
)

func TestNewEntryWithoutSpan(t *testing.T) {
	e := NewEntry(context.Background(), "create:o-1:r", StatusStarted, "", `{"a":1}`, nil)

	assert.Equal(t, "create:o-1:r", e.SagaID)
	assert.Equal(t, StatusStarted, e.Status)
	assert.Equal(t, "[]", e.ErrorMessages)
	assert.Empty(t, e.TraceID)
	assert.False(t, e.UpdatedAt.IsZero())
}

func TestNewEntryCarriesTraceAndErrors(t *testing.T) {
	tid, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	sid, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: tid, SpanID: sid, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	e := NewEntry(ctx, "s", StatusFailed, "Reserve_Stock_A_x2", "", []string{"boom"})

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", e.TraceID)
	assert.Equal(t, "00f067aa0ba902b7", e.SpanID)
	assert.JSONEq(t, `["boom"]`, e.ErrorMessages)
}
