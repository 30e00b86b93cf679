package bars

import (
	"fmt"
	"slices"
	"strings"
)

// SortField names a field favourites can be ordered by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "createdAt"
)

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortField maps a request value onto the supported sort fields.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(s); f {
	case SortByName, SortByCreatedAt:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortField, s)
}

// ParseDirection maps a request value onto a direction. An empty value is ascending.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(s)); d {
	case "":
		return Ascending, nil
	case Ascending, Descending:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortDirection, s)
}

// Order returns a stably sorted copy of favs. Names compare lexicographically,
// createdAt compares the membership creation time. favs is left untouched.
func Order(favs []Favourite, field SortField, dir Direction) ([]Favourite, error) {
	var compare func(a, b Favourite) int
	switch field {
	case SortByName:
		compare = func(a, b Favourite) int {
			return strings.Compare(a.Place.Name, b.Place.Name)
		}
	case SortByCreatedAt:
		compare = func(a, b Favourite) int {
			return a.Membership.CreatedAt.Compare(b.Membership.CreatedAt)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}

	switch dir {
	case Ascending:
	case Descending:
		asc := compare
		compare = func(a, b Favourite) int { return asc(b, a) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortDirection, dir)
	}

	out := make([]Favourite, len(favs))
	copy(out, favs)
	slices.SortStableFunc(out, compare)
	return out, nil
}
