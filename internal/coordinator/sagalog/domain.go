// Package sagalog defines the reservation log: a durable, append-only trail
// of every stock-adjustment saga run by the orders service.
//
// Each create, update or cancel that touches inventory writes a STARTED row,
// one STEP_DONE row per applied adjustment, and finally COMPLETED or
// COMPENSATING followed by FAILED. Rows carry the W3C trace id of the request
// so an operator can jump from a half-compensated reservation straight to
// its trace.
package sagalog

import "time"

// Status represents the lifecycle state of a saga execution.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusStepDone     Status = "STEP_DONE"
	StatusCompleted    Status = "COMPLETED"
	StatusCompensating Status = "COMPENSATING"
	StatusFailed       Status = "FAILED"
)

// SagaLog is one row of the reservation log.
type SagaLog struct {
	// SagaID identifies one saga run, "<operation>:<orderId>:<run uuid>".
	SagaID string

	Status Status

	// CurrentStep is the name of the step that was just executed or failed.
	CurrentStep string

	// Payload is the JSON adjustment plan, stored on STARTED only.
	Payload string

	// ErrorMessages is a JSON array of failure details.
	ErrorMessages string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
