package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

var tracer = otel.Tracer("internal/core/service")

const (
	detailsTTL    = 24 * time.Hour
	favouritesTTL = 10 * time.Minute
)

func detailsKey(placeID string) string   { return "place:" + placeID }
func favouritesKey(userID string) string { return "favourites:" + userID }

// Service backs the REST API. It builds fresh snapshots of the backend for the
// favourite workflow and keeps the cached views in step with its writes.
type Service struct {
	repo     ports.FavouritesRepository
	users    ports.UserRepository
	gateway  ports.PlaceDetailsGateway
	workflow ports.FavouriteWorkflow
	cache    ports.Cache
	logger   *slog.Logger
}

func NewService(
	repo ports.FavouritesRepository,
	users ports.UserRepository,
	gateway ports.PlaceDetailsGateway,
	workflow ports.FavouriteWorkflow,
	cache ports.Cache,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		gateway:  gateway,
		workflow: workflow,
		cache:    cache,
		logger:   logger,
	}
}

var _ ports.BarService = (*Service)(nil)

// Favourites returns the user's favourites ordered by field and direction.
func (s *Service) Favourites(ctx context.Context, userID string, field bars.SortField, dir bars.Direction) ([]bars.Favourite, error) {
	ctx, span := tracer.Start(ctx, "Service.Favourites", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("sort.field", string(field)),
		attribute.String("sort.direction", string(dir)),
	))
	defer span.End()

	favs, err := s.loadFavourites(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return bars.Order(favs, field, dir)
}

// NearbyFavourites returns the user's favourites nearest first.
func (s *Service) NearbyFavourites(ctx context.Context, userID string, origin bars.Coordinates) ([]bars.NearbyFavourite, error) {
	ctx, span := tracer.Start(ctx, "Service.NearbyFavourites", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	if err := origin.Validate(); err != nil {
		return nil, err
	}
	favs, err := s.loadFavourites(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return bars.ByDistance(favs, origin), nil
}

func (s *Service) FavouritesGeoJSON(ctx context.Context, userID string) (*geojson.FeatureCollection, error) {
	ctx, span := tracer.Start(ctx, "Service.FavouritesGeoJSON", trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	favs, err := s.loadFavourites(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return bars.FeatureCollection(favs), nil
}

// loadFavourites reads the user's list through the cache.
func (s *Service) loadFavourites(ctx context.Context, userID string) ([]bars.Favourite, error) {
	if userID == "" {
		return nil, bars.ErrUnauthenticated
	}

	key := favouritesKey(userID)
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "favourites cache read failed", "user_id", userID, "error", err)
	}
	if found {
		var favs []bars.Favourite
		if err := json.Unmarshal(data, &favs); err == nil {
			return favs, nil
		}
		s.logger.WarnContext(ctx, "discarding corrupt favourites cache entry", "user_id", userID)
	}

	favs, err := s.repo.GetFavourites(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, favs, favouritesTTL)
	return favs, nil
}

// PlaceDetails returns the maps provider's details, cached for a day.
func (s *Service) PlaceDetails(ctx context.Context, placeID string) (bars.PlaceDetails, error) {
	ctx, span := tracer.Start(ctx, "Service.PlaceDetails", trace.WithAttributes(attribute.String("place.id", placeID)))
	defer span.End()

	key := detailsKey(placeID)
	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "details cache read failed", "place_id", placeID, "error", err)
	}
	if found {
		var details bars.PlaceDetails
		if err := json.Unmarshal(data, &details); err == nil {
			return details, nil
		}
	}

	details, err := s.gateway.GetPlaceDetails(ctx, placeID)
	if err != nil {
		span.RecordError(err)
		return bars.PlaceDetails{}, err
	}
	s.store(ctx, key, details, detailsTTL)
	return details, nil
}

// AddFavourite checks the user is registered, snapshots the place and membership,
// then runs the add workflow.
func (s *Service) AddFavourite(ctx context.Context, userID, placeID string) (bars.Result, error) {
	ctx, span := tracer.Start(ctx, "Service.AddFavourite", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("place.id", placeID),
	))
	defer span.End()

	if userID == "" {
		return bars.Result{State: bars.StateFailed}, bars.ErrUnauthenticated
	}
	if s.workflow.State(userID, placeID) == bars.StateInFlight {
		return bars.Result{State: bars.StateInFlight, Reason: bars.ErrInFlight}, nil
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, bars.ErrUserNotFound) {
			return bars.Result{State: bars.StateFailed}, err
		}
		s.logger.ErrorContext(ctx, "failed to look up user", "user_id", userID, "error", err)
		return bars.Result{State: bars.StateFailed}, bars.ErrTransport
	}

	place, err := s.repo.GetPlace(ctx, placeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to look up place", "place_id", placeID, "error", err)
		return bars.Result{State: bars.StateFailed}, bars.ErrTransport
	}
	membership, err := s.repo.GetMembership(ctx, userID, placeID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to look up membership", "user_id", userID, "place_id", placeID, "error", err)
		return bars.Result{State: bars.StateFailed}, bars.ErrTransport
	}

	in := bars.AddInput{
		UserID:           userID,
		PlaceExists:      place != nil,
		MembershipExists: membership != nil,
	}
	if place != nil {
		in.Place = *place
	} else {
		details, err := s.PlaceDetails(ctx, placeID)
		if err != nil {
			return bars.Result{State: bars.StateFailed}, err
		}
		in.Place = bars.PlaceFromDetails(details, userID)
		in.Place.ID = placeID
	}

	res, err := s.workflow.Add(ctx, in)
	if res.Reason == nil && res.State != bars.StateInFlight {
		s.invalidate(ctx, favouritesKey(userID))
	}
	return res, err
}

// RemoveFavourite counts the user's favourites from the store, then runs the remove workflow.
func (s *Service) RemoveFavourite(ctx context.Context, userID, placeID string) (bars.Result, error) {
	ctx, span := tracer.Start(ctx, "Service.RemoveFavourite", trace.WithAttributes(
		attribute.String("user.id", userID),
		attribute.String("place.id", placeID),
	))
	defer span.End()

	if userID == "" {
		return bars.Result{State: bars.StateFailed}, bars.ErrUnauthenticated
	}

	favs, err := s.repo.GetFavourites(ctx, userID)
	if err != nil {
		if errors.Is(err, bars.ErrUserNotFound) {
			return bars.Result{State: bars.StateFailed}, err
		}
		s.logger.ErrorContext(ctx, "failed to count favourites", "user_id", userID, "error", err)
		return bars.Result{State: bars.StateFailed}, bars.ErrTransport
	}

	res, err := s.workflow.Remove(ctx, bars.RemoveInput{
		UserID:         userID,
		PlaceID:        placeID,
		FavouriteCount: len(favs),
	})
	if res.State == bars.StateSuccess && res.Reason == nil {
		s.invalidate(ctx, favouritesKey(userID))
	}
	return res, err
}

func (s *Service) FavouriteState(userID, placeID string) bars.State {
	return s.workflow.State(userID, placeID)
}

// RegisterUser records the profile of an identity-provider user.
func (s *Service) RegisterUser(ctx context.Context, user auth.User) error {
	ctx, span := tracer.Start(ctx, "Service.RegisterUser", trace.WithAttributes(attribute.String("user.id", user.ID)))
	defer span.End()

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %s", bars.ErrValidation, err)
	}
	if err := s.users.Save(ctx, user); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save user: %w", err)
	}
	s.invalidate(ctx, favouritesKey(user.ID))
	return nil
}

func (s *Service) Profile(ctx context.Context, userID string) (auth.User, error) {
	if userID == "" {
		return auth.User{}, bars.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, userID)
}

// Helpers

// store writes v to the cache. Failures are logged; the store stays authoritative.
func (s *Service) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, ttl); err != nil {
		s.logger.WarnContext(ctx, "failed to set cache data", "key", key, "error", err)
	}
}

func (s *Service) invalidate(ctx context.Context, key string) {
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.logger.ErrorContext(ctx, "failed to invalidate cache", "key", key, "error", err)
	}
}
