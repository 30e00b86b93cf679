package bars

import (
	"fmt"
	"time"
)

// Membership records that a user has favourited a place.
// There is at most one per (UserID, PlaceID).
type Membership struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (m Membership) Validate() error {
	if m.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if m.PlaceID == "" {
		return fmt.Errorf("%w: place_id is required", ErrValidation)
	}
	return nil
}

// Favourite is a place together with the membership that puts it on a user's list.
type Favourite struct {
	Place      Place      `json:"place"`
	Membership Membership `json:"membership"`
}
