package sagalog

import "context"

// Repository persists saga log entries. Each call appends a row; the log is
// never updated in place.
type Repository interface {
	Save(ctx context.Context, entry *SagaLog) error
}
