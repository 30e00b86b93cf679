package observability

import (
	"context"
	"time"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

// InstrumentedRepository records the latency and outcome of every repository call.
type InstrumentedRepository struct {
	inner ports.FavouritesRepository
}

func NewInstrumentedRepository(inner ports.FavouritesRepository) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner}
}

var _ ports.FavouritesRepository = (*InstrumentedRepository)(nil)

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	repositoryCallDuration.WithLabelValues(op, outcome).Observe(time.Since(start).Seconds())
}

func (r *InstrumentedRepository) GetFavourites(ctx context.Context, userID string) (favs []bars.Favourite, err error) {
	defer func(start time.Time) { observe("get_favourites", start, err) }(time.Now())
	return r.inner.GetFavourites(ctx, userID)
}

func (r *InstrumentedRepository) GetMembership(ctx context.Context, userID, placeID string) (m *bars.Membership, err error) {
	defer func(start time.Time) { observe("get_membership", start, err) }(time.Now())
	return r.inner.GetMembership(ctx, userID, placeID)
}

func (r *InstrumentedRepository) GetPlace(ctx context.Context, placeID string) (p *bars.Place, err error) {
	defer func(start time.Time) { observe("get_place", start, err) }(time.Now())
	return r.inner.GetPlace(ctx, placeID)
}

func (r *InstrumentedRepository) CreatePlace(ctx context.Context, place bars.Place) (err error) {
	defer func(start time.Time) { observe("create_place", start, err) }(time.Now())
	return r.inner.CreatePlace(ctx, place)
}

func (r *InstrumentedRepository) CreateMembership(ctx context.Context, userID, placeID string) (m bars.Membership, err error) {
	defer func(start time.Time) { observe("create_membership", start, err) }(time.Now())
	return r.inner.CreateMembership(ctx, userID, placeID)
}

func (r *InstrumentedRepository) DeleteMembership(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete_membership", start, err) }(time.Now())
	return r.inner.DeleteMembership(ctx, id)
}
