package bars

import (
	"fmt"
	"math"
	"time"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the point is finite and lies within the valid latitude/longitude ranges.
func (c Coordinates) Validate() error {
	if !finite(c.Lat) || !finite(c.Lng) {
		return fmt.Errorf("%w: coordinates must be finite: %v,%v", ErrValidation, c.Lat, c.Lng)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude out of range: %v", ErrValidation, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude out of range: %v", ErrValidation, c.Lng)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Place is a bar as registered by the first user who favourited it.
// It is never updated after creation.
type Place struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Phone       string      `json:"phone,omitzero"`
	Location    string      `json:"location,omitzero"`
	Coordinates Coordinates `json:"coordinates"`
	Website     string      `json:"website,omitzero"`
	URL         string      `json:"url,omitzero"`
	AddedBy     string      `json:"added_by,omitzero"`
	CreatedAt   time.Time   `json:"created_at,omitzero"`
}

func (p Place) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return p.Coordinates.Validate()
}

// PlaceFromDetails builds the place record registered when userID favourites
// a place that is not yet known.
func PlaceFromDetails(d PlaceDetails, userID string) Place {
	return Place{
		ID:          d.PlaceID,
		Name:        d.Name,
		Phone:       d.Phone,
		Location:    d.Address,
		Coordinates: d.Coordinates,
		Website:     d.Website,
		URL:         d.URL,
		AddedBy:     userID,
	}
}
