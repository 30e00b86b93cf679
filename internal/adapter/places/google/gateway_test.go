package google

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bars-app/internal/core/domain/bars"
)

const detailsResponse = `{
	"status": "OK",
	"html_attributions": [],
	"result": {
		"place_id": "ChIJcrown",
		"name": "The Crown",
		"formatted_phone_number": "020 7946 0000",
		"vicinity": "1 High St, London",
		"geometry": {"location": {"lat": 51.5101, "lng": -0.1340}},
		"opening_hours": {"weekday_text": ["Monday: 12:00 - 23:00", "Tuesday: 12:00 - 23:00"]},
		"reviews": [{"author_name": "Ann", "rating": 5, "text": "Great ales", "time": 1700000000}],
		"website": "https://thecrown.example",
		"url": "https://maps.google.com/?cid=1",
		"types": ["bar", "point_of_interest"]
	}
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw, err := NewGateway("AIzaTestKey", logger, WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return gw
}

func TestGateway_GetPlaceDetails(t *testing.T) {
	var gotQuery map[string][]string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, detailsResponse)
	})

	d, err := gw.GetPlaceDetails(context.Background(), "ChIJcrown")

	require.NoError(t, err)
	assert.Equal(t, []string{"ChIJcrown"}, gotQuery["placeid"])
	assert.Equal(t, "The Crown", d.Name)
	assert.Equal(t, "020 7946 0000", d.Phone)
	assert.Equal(t, "1 High St, London", d.Address)
	assert.InDelta(t, 51.5101, d.Coordinates.Lat, 1e-9)
	assert.InDelta(t, -0.1340, d.Coordinates.Lng, 1e-9)
	assert.Len(t, d.OpeningHours, 2)
	require.Len(t, d.Reviews, 1)
	assert.Equal(t, bars.Review{Author: "Ann", Rating: 5, Text: "Great ales", Time: 1700000000}, d.Reviews[0])
	assert.Equal(t, "https://thecrown.example", d.Website)
	assert.Contains(t, d.Types, "bar")

	place := bars.PlaceFromDetails(d, "user1")
	assert.NoError(t, place.Validate())
}

func TestGateway_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "provider status not OK",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"status":"NOT_FOUND","error_message":"secret upstream detail"}`)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"status":`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, tt.handler)

			_, err := gw.GetPlaceDetails(context.Background(), "ChIJcrown")

			assert.ErrorIs(t, err, bars.ErrDetailsUnavailable)
			assert.NotContains(t, err.Error(), "secret upstream detail")
		})
	}
}

func TestGateway_EmptyPlaceID(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called")
	})

	_, err := gw.GetPlaceDetails(context.Background(), "")

	assert.ErrorIs(t, err, bars.ErrValidation)
}
