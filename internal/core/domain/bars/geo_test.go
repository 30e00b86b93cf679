package bars

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	origin := Coordinates{Lat: 51.5007, Lng: -0.1246}

	assert.Equal(t, 0.0, Distance(origin, origin))

	// Westminster to Tower Bridge is roughly 3.4km.
	d := Distance(origin, Coordinates{Lat: 51.5055, Lng: -0.0754})
	assert.InDelta(t, 3450, d, 300)
	assert.Equal(t, d, Distance(Coordinates{Lat: 51.5055, Lng: -0.0754}, origin))
}

func TestByDistance(t *testing.T) {
	origin := Coordinates{Lat: 0, Lng: 0}
	far := Favourite{Place: Place{ID: "far", Coordinates: Coordinates{Lat: 1, Lng: 1}}}
	near := Favourite{Place: Place{ID: "near", Coordinates: Coordinates{Lat: 0.01, Lng: 0.01}}}

	out := ByDistance([]Favourite{far, near}, origin)

	require.Len(t, out, 2)
	assert.Equal(t, "near", out[0].Place.ID)
	assert.Equal(t, "far", out[1].Place.ID)
	assert.Greater(t, out[1].DistanceMetres, out[0].DistanceMetres)
}

func TestFeatureCollection(t *testing.T) {
	favs := []Favourite{{
		Place: Place{ID: "ChIJ123", Name: "The Crown", Coordinates: Coordinates{Lat: 51.5, Lng: -0.12}},
	}}

	data, err := json.Marshal(FeatureCollection(favs))
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]string `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 1)
	assert.Equal(t, "Point", doc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{-0.12, 51.5}, doc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "ChIJ123", doc.Features[0].Properties["id"])
	assert.Equal(t, "The Crown", doc.Features[0].Properties["name"])
}
