package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/footballstore-orders/internal/coordinator/sagalog"
)

// Step represents a single unit of work in the Saga.
// Each step must have a compensating action to undo its effects.
type Step interface {
	Name() string
	Execute(ctx context.Context) error
	Compensate(ctx context.Context) error
}

// Orchestrator runs a collection of Steps for one saga and records every
// transition in the saga log.
type Orchestrator struct {
	sagaID  string
	steps   []Step
	log     sagalog.Repository
	payload string
}

// NewOrchestrator builds a saga runner. repo may be nil, in which case
// transitions are only logged through slog.
func NewOrchestrator(sagaID string, steps []Step, repo sagalog.Repository) *Orchestrator {
	return &Orchestrator{sagaID: sagaID, steps: steps, log: repo}
}

// WithPayload attaches the JSON input stored on the STARTED entry.
func (o *Orchestrator) WithPayload(payload string) *Orchestrator {
	o.payload = payload
	return o
}

// Start runs the saga steps sequentially.
// If a step fails, every previously successful step is compensated in
// reverse order and the step's error is returned, joined with any
// compensation failures.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.record(ctx, sagalog.StatusStarted, "", o.payload, nil)

	done := make([]Step, 0, len(o.steps))
	for _, step := range o.steps {
		slog.DebugContext(ctx, "executing saga step", "saga_id", o.sagaID, "step", step.Name())

		if err := step.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "saga step failed, starting rollback",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)

			errs := []string{fmt.Sprintf("step %s failed: %v", step.Name(), err)}
			o.record(ctx, sagalog.StatusCompensating, step.Name(), "", errs)

			// Compensation must reach the collaborators even if the caller gave up.
			compCtx := context.WithoutCancel(ctx)
			compErr := o.rollback(compCtx, done)
			if compErr != nil {
				errs = append(errs, compErr.Error())
			}
			o.record(compCtx, sagalog.StatusFailed, step.Name(), "", errs)

			if compErr != nil {
				return errors.Join(err, compErr)
			}
			return err
		}

		done = append(done, step)
		o.record(ctx, sagalog.StatusStepDone, step.Name(), "", nil)
	}

	o.record(ctx, sagalog.StatusCompleted, "", "", nil)
	return nil
}

func (o *Orchestrator) rollback(ctx context.Context, steps []Step) error {
	var errs []error
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		slog.InfoContext(ctx, "compensating saga step", "saga_id", o.sagaID, "step", step.Name())
		if err := step.Compensate(ctx); err != nil {
			slog.ErrorContext(ctx, "CRITICAL: failed to compensate step",
				"saga_id", o.sagaID, "step", step.Name(), "error", err)
			errs = append(errs, fmt.Errorf("compensation of %s failed: %w", step.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (o *Orchestrator) record(ctx context.Context, status sagalog.Status, step, payload string, errs []string) {
	if o.log == nil {
		return
	}
	entry := sagalog.NewEntry(ctx, o.sagaID, status, step, payload, errs)
	if err := o.log.Save(context.WithoutCancel(ctx), entry); err != nil {
		slog.WarnContext(ctx, "saga log write failed", "saga_id", o.sagaID, "status", status, "error", err)
	}
}
