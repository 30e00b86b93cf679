package ports

import (
	"context"
	"time"

	"github.com/paulmach/orb/geojson"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
)

// PlaceDetailsGateway fetches descriptive details from the maps provider.
type PlaceDetailsGateway interface {
	// GetPlaceDetails fails with bars.ErrDetailsUnavailable on any provider error.
	GetPlaceDetails(ctx context.Context, placeID string) (bars.PlaceDetails, error)
}

// IdentityProvider resolves the authenticated user of the current request.
type IdentityProvider interface {
	// CurrentUserID fails with bars.ErrUnauthenticated when there is no session.
	CurrentUserID(ctx context.Context) (string, error)
}

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// Cache defines the caching operations.
type Cache interface {
	// Get reports found=false on a miss.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)

	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Invalidate removes the given keys; missing keys are ignored.
	Invalidate(ctx context.Context, keys ...string) error
}

// FavouriteWorkflow orchestrates adding and removing favourites.
type FavouriteWorkflow interface {
	Add(ctx context.Context, in bars.AddInput) (bars.Result, error)
	Remove(ctx context.Context, in bars.RemoveInput) (bars.Result, error)
	State(userID, placeID string) bars.State
}

// BarService defines the application logic behind the REST API.
type BarService interface {
	Favourites(ctx context.Context, userID string, field bars.SortField, dir bars.Direction) ([]bars.Favourite, error)
	NearbyFavourites(ctx context.Context, userID string, origin bars.Coordinates) ([]bars.NearbyFavourite, error)
	FavouritesGeoJSON(ctx context.Context, userID string) (*geojson.FeatureCollection, error)
	PlaceDetails(ctx context.Context, placeID string) (bars.PlaceDetails, error)
	AddFavourite(ctx context.Context, userID, placeID string) (bars.Result, error)
	RemoveFavourite(ctx context.Context, userID, placeID string) (bars.Result, error)
	FavouriteState(userID, placeID string) bars.State
	RegisterUser(ctx context.Context, user auth.User) error
	Profile(ctx context.Context, userID string) (auth.User, error)
}
