package bars

import (
	"cmp"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// Point returns c as an orb point (longitude first).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// Distance returns the great-circle distance between two points in whole metres.
func Distance(from, to Coordinates) float64 {
	return math.Round(geo.DistanceHaversine(from.Point(), to.Point()))
}

// NearbyFavourite is a favourite annotated with its distance from an origin.
type NearbyFavourite struct {
	Favourite
	DistanceMetres float64 `json:"distance_m"`
}

// ByDistance annotates favs with their distance from origin, nearest first.
// Equal distances keep their input order.
func ByDistance(favs []Favourite, origin Coordinates) []NearbyFavourite {
	out := make([]NearbyFavourite, 0, len(favs))
	for _, f := range favs {
		out = append(out, NearbyFavourite{
			Favourite:      f,
			DistanceMetres: Distance(origin, f.Place.Coordinates),
		})
	}
	slices.SortStableFunc(out, func(a, b NearbyFavourite) int {
		return cmp.Compare(a.DistanceMetres, b.DistanceMetres)
	})
	return out
}

// FeatureCollection renders favs as GeoJSON points carrying the place id and name.
func FeatureCollection(favs []Favourite) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range favs {
		feature := geojson.NewFeature(f.Place.Coordinates.Point())
		feature.Properties["id"] = f.Place.ID
		feature.Properties["name"] = f.Place.Name
		fc.Append(feature)
	}
	return fc
}
