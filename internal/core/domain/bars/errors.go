package bars

import "errors"

// ErrValidation is the sentinel error for validation failures.
var ErrValidation = errors.New("validation failed")

// Lookup failures.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrMembershipNotFound = errors.New("favourite membership not found")
)

// Ordering failures.
var (
	ErrInvalidSortField     = errors.New("invalid sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
)

// Workflow outcomes. ErrAlreadyFavourited, ErrAlreadyRemoved and ErrInFlight
// describe short-circuits and are reported alongside a non-failed state.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrAlreadyFavourited  = errors.New("already added to favourites")
	ErrAlreadyRemoved     = errors.New("already removed from favourites")
	ErrInFlight           = errors.New("favourite update already in progress")
	ErrPartialFailure     = errors.New("favourite only partially saved, please try again")
	ErrRemoveGuard        = errors.New("at least one favourite must remain")
	ErrTransport          = errors.New("there was an error, please try again")
	ErrDetailsUnavailable = errors.New("place details unavailable")
)
