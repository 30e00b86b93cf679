package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

const (
	// DefaultWorkflowTimeout bounds a single add or remove, network calls included.
	DefaultWorkflowTimeout = 15 * time.Second

	// DefaultDedupWindow is how long a successful add suppresses repeated adds.
	DefaultDedupWindow = 5 * time.Minute
)

// entry is the state held for one (user, place) pair.
type entry struct {
	op         bars.Operation
	state      bars.State
	finishedAt time.Time

	// Halves of a failed add that did land, so a retry only issues the rest.
	placeCreated  bool
	memberCreated bool
}

// Workflow adds and removes favourites. Invocations for the same (user, place)
// pair are serialized through a per-key state machine; different pairs run
// independently.
type Workflow struct {
	repo        ports.FavouritesRepository
	states      cmap.ConcurrentMap[string, entry]
	timeout     time.Duration
	dedupWindow time.Duration
	logger      *slog.Logger

	// Unix nanos of the last sweep of settled entries.
	lastSweep atomic.Int64
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithTimeout overrides DefaultWorkflowTimeout.
func WithTimeout(d time.Duration) WorkflowOption {
	return func(w *Workflow) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithDedupWindow overrides DefaultDedupWindow.
func WithDedupWindow(d time.Duration) WorkflowOption {
	return func(w *Workflow) {
		if d > 0 {
			w.dedupWindow = d
		}
	}
}

func NewWorkflow(repo ports.FavouritesRepository, logger *slog.Logger, opts ...WorkflowOption) *Workflow {
	w := &Workflow{
		repo:        repo,
		states:      cmap.New[entry](),
		timeout:     DefaultWorkflowTimeout,
		dedupWindow: DefaultDedupWindow,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.FavouriteWorkflow = (*Workflow)(nil)

func stateKey(userID, placeID string) string {
	return userID + "|" + placeID
}

// State returns the state of the latest invocation for the pair, or Idle once
// its entry has been swept.
func (w *Workflow) State(userID, placeID string) bars.State {
	e, ok := w.states.Get(stateKey(userID, placeID))
	if !ok {
		return bars.StateIdle
	}
	return e.state
}

// begin moves the key to InFlight for op. If another invocation owns the key, or
// an add succeeded within the dedup window, the observed entry is returned with the
// reason and the key is left untouched.
func (w *Workflow) begin(key string, op bars.Operation) (entry, error) {
	var (
		result entry
		reason error
	)
	w.states.Upsert(key, entry{}, func(exist bool, inMap, _ entry) entry {
		if exist {
			switch {
			case inMap.state == bars.StateInFlight:
				result, reason = inMap, bars.ErrInFlight
				return inMap
			case op == bars.OpAdd && inMap.op == bars.OpAdd && inMap.state == bars.StateSuccess &&
				time.Since(inMap.finishedAt) < w.dedupWindow:
				result, reason = inMap, bars.ErrAlreadyFavourited
				return inMap
			}
		}

		result = entry{op: op, state: bars.StateInFlight}
		if exist && op == bars.OpAdd && inMap.op == bars.OpAdd {
			result.placeCreated, result.memberCreated = inMap.placeCreated, inMap.memberCreated
		}
		return result
	})
	return result, reason
}

// finish stores the final entry. An entry still marked InFlight is recorded as failed.
func (w *Workflow) finish(key string, e *entry) {
	if e.state == bars.StateInFlight {
		e.state = bars.StateFailed
	}
	e.finishedAt = time.Now()
	w.states.Set(key, *e)
	w.sweep(e.finishedAt)
}

// settled reports whether the entry no longer affects any invocation. Adds that
// left exactly one half written are kept so a retry skips the landed half.
func (e entry) settled(now time.Time, window time.Duration) bool {
	if e.state != bars.StateSuccess && e.state != bars.StateFailed {
		return false
	}
	if e.placeCreated != e.memberCreated {
		return false
	}
	return now.Sub(e.finishedAt) >= window
}

// sweep drops settled entries, at most once per dedup window.
func (w *Workflow) sweep(now time.Time) {
	last := w.lastSweep.Load()
	if now.UnixNano()-last < int64(w.dedupWindow) || !w.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	for _, key := range w.states.Keys() {
		w.states.RemoveCb(key, func(_ string, e entry, exists bool) bool {
			return exists && e.settled(now, w.dedupWindow)
		})
	}
}

// Add puts the place on the user's favourites. When neither the place nor the
// membership exist both are created concurrently; if exactly one of them lands the
// result is ErrPartialFailure and a retry only issues the missing half.
func (w *Workflow) Add(ctx context.Context, in bars.AddInput) (bars.Result, error) {
	ctx, span := tracer.Start(ctx, "Workflow.Add", trace.WithAttributes(
		attribute.String("user.id", in.UserID),
		attribute.String("place.id", in.Place.ID),
	))
	defer span.End()

	if in.UserID == "" {
		return w.fail(span, bars.ErrUnauthenticated)
	}
	if in.Place.ID == "" {
		return w.fail(span, fmt.Errorf("%w: place id is required", bars.ErrValidation))
	}

	key := stateKey(in.UserID, in.Place.ID)
	cur, reason := w.begin(key, bars.OpAdd)
	if reason != nil {
		w.logger.InfoContext(ctx, "favourite add skipped", "user_id", in.UserID, "place_id", in.Place.ID, "reason", reason)
		return w.skip(span, cur.state, reason)
	}
	defer w.finish(key, &cur)

	// A membership without its place is the trace of an earlier partial add, whether
	// or not this process saw it fail.
	placePending := !in.PlaceExists && !cur.placeCreated && (in.MembershipExists || cur.memberCreated)
	if in.MembershipExists && !placePending {
		cur = entry{op: bars.OpAdd, state: bars.StateSuccess}
		w.logger.InfoContext(ctx, "favourite already added", "user_id", in.UserID, "place_id", in.Place.ID)
		return w.skip(span, bars.StateSuccess, bars.ErrAlreadyFavourited)
	}

	needPlace := !in.PlaceExists && !cur.placeCreated
	needMember := !in.MembershipExists && !cur.memberCreated
	if !needPlace && !needMember {
		cur = entry{op: bars.OpAdd, state: bars.StateSuccess}
		return w.skip(span, bars.StateSuccess, bars.ErrAlreadyFavourited)
	}
	if needPlace {
		if err := in.Place.Validate(); err != nil {
			cur.state = bars.StateFailed
			return w.fail(span, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	placeErr, memberErr := w.create(ctx, in, needPlace, needMember)
	if needPlace && placeErr == nil {
		cur.placeCreated = true
	}
	if needMember && memberErr == nil {
		cur.memberCreated = true
	}

	if placeErr == nil && memberErr == nil {
		cur = entry{op: bars.OpAdd, state: bars.StateSuccess}
		w.logger.InfoContext(ctx, "favourite added", "user_id", in.UserID, "place_id", in.Place.ID, "place_created", needPlace)
		span.SetAttributes(attribute.String("favourite.state", string(bars.StateSuccess)))
		return bars.Result{State: bars.StateSuccess}, nil
	}

	cur.state = bars.StateFailed
	w.logger.ErrorContext(ctx, "failed to add favourite",
		"user_id", in.UserID,
		"place_id", in.Place.ID,
		"place_error", placeErr,
		"membership_error", memberErr,
		"timed_out", errors.Is(ctx.Err(), context.DeadlineExceeded),
	)
	if errors.Is(memberErr, bars.ErrUserNotFound) {
		return w.fail(span, bars.ErrUserNotFound)
	}
	if needPlace && needMember && (placeErr == nil) != (memberErr == nil) {
		return w.fail(span, bars.ErrPartialFailure)
	}
	return w.fail(span, bars.ErrTransport)
}

// create issues the required writes concurrently and reports each outcome separately.
func (w *Workflow) create(ctx context.Context, in bars.AddInput, needPlace, needMember bool) (placeErr, memberErr error) {
	var g errgroup.Group
	if needPlace {
		g.Go(func() error {
			placeErr = w.repo.CreatePlace(ctx, in.Place)
			return placeErr
		})
	}
	if needMember {
		g.Go(func() error {
			_, memberErr = w.repo.CreateMembership(ctx, in.UserID, in.Place.ID)
			return memberErr
		})
	}
	_ = g.Wait()
	return placeErr, memberErr
}

// Remove takes the place off the user's favourites. The membership is re-read
// right before deleting, and the last remaining favourite is never removed.
func (w *Workflow) Remove(ctx context.Context, in bars.RemoveInput) (bars.Result, error) {
	ctx, span := tracer.Start(ctx, "Workflow.Remove", trace.WithAttributes(
		attribute.String("user.id", in.UserID),
		attribute.String("place.id", in.PlaceID),
		attribute.Int("favourites.count", in.FavouriteCount),
	))
	defer span.End()

	if in.UserID == "" {
		return w.fail(span, bars.ErrUnauthenticated)
	}
	if in.PlaceID == "" {
		return w.fail(span, fmt.Errorf("%w: place id is required", bars.ErrValidation))
	}

	key := stateKey(in.UserID, in.PlaceID)
	cur, reason := w.begin(key, bars.OpRemove)
	if reason != nil {
		w.logger.InfoContext(ctx, "favourite remove skipped", "user_id", in.UserID, "place_id", in.PlaceID, "reason", reason)
		return w.skip(span, cur.state, reason)
	}
	defer w.finish(key, &cur)

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	membership, err := w.repo.GetMembership(ctx, in.UserID, in.PlaceID)
	if err != nil {
		cur.state = bars.StateFailed
		w.logger.ErrorContext(ctx, "failed to refetch membership", "user_id", in.UserID, "place_id", in.PlaceID, "error", err)
		return w.fail(span, bars.ErrTransport)
	}
	if membership == nil {
		cur.state = bars.StateSuccess
		w.logger.InfoContext(ctx, "favourite already removed", "user_id", in.UserID, "place_id", in.PlaceID)
		return w.skip(span, bars.StateSuccess, bars.ErrAlreadyRemoved)
	}
	if in.FavouriteCount <= 1 {
		cur.state = bars.StateFailed
		return w.fail(span, bars.ErrRemoveGuard)
	}

	if err := w.repo.DeleteMembership(ctx, membership.ID); err != nil {
		if errors.Is(err, bars.ErrMembershipNotFound) {
			cur.state = bars.StateSuccess
			return w.skip(span, bars.StateSuccess, bars.ErrAlreadyRemoved)
		}
		cur.state = bars.StateFailed
		w.logger.ErrorContext(ctx, "failed to delete membership",
			"membership_id", membership.ID,
			"error", err,
			"timed_out", errors.Is(ctx.Err(), context.DeadlineExceeded),
		)
		return w.fail(span, bars.ErrTransport)
	}

	cur.state = bars.StateSuccess
	w.logger.InfoContext(ctx, "favourite removed", "user_id", in.UserID, "place_id", in.PlaceID, "membership_id", membership.ID)
	span.SetAttributes(attribute.String("favourite.state", string(bars.StateSuccess)))
	return bars.Result{State: bars.StateSuccess}, nil
}

func (w *Workflow) skip(span trace.Span, state bars.State, reason error) (bars.Result, error) {
	span.SetAttributes(
		attribute.String("favourite.state", string(state)),
		attribute.String("favourite.skip_reason", reason.Error()),
	)
	return bars.Result{State: state, Reason: reason}, nil
}

func (w *Workflow) fail(span trace.Span, err error) (bars.Result, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("favourite.state", string(bars.StateFailed)))
	return bars.Result{State: bars.StateFailed}, err
}
