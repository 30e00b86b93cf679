package observability

import (
	"context"
	"errors"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

// InstrumentedWorkflow counts add/remove outcomes by state and reason.
type InstrumentedWorkflow struct {
	inner ports.FavouriteWorkflow
}

func NewInstrumentedWorkflow(inner ports.FavouriteWorkflow) *InstrumentedWorkflow {
	return &InstrumentedWorkflow{inner: inner}
}

var _ ports.FavouriteWorkflow = (*InstrumentedWorkflow)(nil)

func (w *InstrumentedWorkflow) Add(ctx context.Context, in bars.AddInput) (bars.Result, error) {
	res, err := w.inner.Add(ctx, in)
	record(bars.OpAdd, res, err)
	return res, err
}

func (w *InstrumentedWorkflow) Remove(ctx context.Context, in bars.RemoveInput) (bars.Result, error) {
	res, err := w.inner.Remove(ctx, in)
	record(bars.OpRemove, res, err)
	return res, err
}

func (w *InstrumentedWorkflow) State(userID, placeID string) bars.State {
	return w.inner.State(userID, placeID)
}

func record(op bars.Operation, res bars.Result, err error) {
	cause := err
	if cause == nil {
		cause = res.Reason
	}
	workflowOutcomes.WithLabelValues(string(op), string(res.State), reasonLabel(cause)).Inc()
}

// reasonLabel keeps the label set bounded to the known sentinels.
func reasonLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, bars.ErrAlreadyFavourited):
		return "already_favourited"
	case errors.Is(err, bars.ErrAlreadyRemoved):
		return "already_removed"
	case errors.Is(err, bars.ErrInFlight):
		return "in_flight"
	case errors.Is(err, bars.ErrPartialFailure):
		return "partial_failure"
	case errors.Is(err, bars.ErrRemoveGuard):
		return "remove_guard"
	case errors.Is(err, bars.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, bars.ErrValidation):
		return "validation"
	case errors.Is(err, bars.ErrTransport):
		return "transport"
	default:
		return "other"
	}
}
