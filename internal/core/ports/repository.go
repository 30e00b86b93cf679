package ports

import (
	"context"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
)

// UserRepository defines storage for users.
type UserRepository interface {
	// Save inserts the user or updates its username.
	Save(ctx context.Context, user auth.User) error
	FindByID(ctx context.Context, id string) (auth.User, error)
}

// FavouritesRepository defines storage for places and favourite memberships.
type FavouritesRepository interface {
	// GetFavourites returns every favourite of the user, oldest first.
	// It fails with bars.ErrUserNotFound for unknown users.
	GetFavourites(ctx context.Context, userID string) ([]bars.Favourite, error)

	// GetMembership returns nil when the user has not favourited the place.
	GetMembership(ctx context.Context, userID, placeID string) (*bars.Membership, error)

	// GetPlace returns nil when the place has never been registered.
	GetPlace(ctx context.Context, placeID string) (*bars.Place, error)

	// CreatePlace is idempotent by place ID; the first writer wins.
	CreatePlace(ctx context.Context, place bars.Place) error

	// CreateMembership returns the existing membership if the pair is already present.
	CreateMembership(ctx context.Context, userID, placeID string) (bars.Membership, error)

	DeleteMembership(ctx context.Context, membershipID string) error
}
