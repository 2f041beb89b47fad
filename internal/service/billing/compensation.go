package billing

import (
	"context"
	"errors"
)

// compensationLog records undo actions for the sub-steps a submission has
// completed. Rollback runs them newest first.
type compensationLog struct {
	steps []compensationStep
}

type compensationStep struct {
	name string
	undo func(context.Context) error
}

func (l *compensationLog) record(name string, undo func(context.Context) error) {
	l.steps = append(l.steps, compensationStep{name: name, undo: undo})
}

func (l *compensationLog) len() int {
	return len(l.steps)
}

// rollback keeps going after a failed step and joins the failures.
func (l *compensationLog) rollback(ctx context.Context) error {
	var errs []error
	for i := len(l.steps) - 1; i >= 0; i-- {
		if err := l.steps[i].undo(ctx); err != nil {
			errs = append(errs, &compensationError{step: l.steps[i].name, err: err})
		}
	}
	l.steps = nil
	return errors.Join(errs...)
}

type compensationError struct {
	step string
	err  error
}

func (e *compensationError) Error() string {
	return "compensate " + e.step + ": " + e.err.Error()
}

func (e *compensationError) Unwrap() error {
	return e.err
}
