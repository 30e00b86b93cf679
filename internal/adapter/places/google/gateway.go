// Package google fetches place details from the Google Places API.
package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"googlemaps.github.io/maps"

	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

// detailFields is the field mask requested for every lookup.
var detailFields = []string{
	"place_id",
	"name",
	"formatted_phone_number",
	"vicinity",
	"geometry",
	"opening_hours",
	"reviews",
	"website",
	"url",
	"types",
}

type Gateway struct {
	client *maps.Client
	fields []maps.PlaceDetailsFieldMask
	logger *slog.Logger
}

var _ ports.PlaceDetailsGateway = (*Gateway)(nil)

type options struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*options)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

func NewGateway(apiKey string, logger *slog.Logger, opts ...Option) (*Gateway, error) {
	o := options{
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(o.httpClient),
	}
	if o.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(o.baseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	fields := make([]maps.PlaceDetailsFieldMask, 0, len(detailFields))
	for _, f := range detailFields {
		mask, err := maps.ParsePlaceDetailsFieldMask(f)
		if err != nil {
			return nil, fmt.Errorf("invalid field mask %q: %w", f, err)
		}
		fields = append(fields, mask)
	}

	return &Gateway{client: client, fields: fields, logger: logger}, nil
}

// GetPlaceDetails returns bars.ErrDetailsUnavailable for any lookup failure.
// The provider's message is logged, never returned.
func (g *Gateway) GetPlaceDetails(ctx context.Context, placeID string) (bars.PlaceDetails, error) {
	if placeID == "" {
		return bars.PlaceDetails{}, fmt.Errorf("%w: place id is required", bars.ErrValidation)
	}

	res, err := g.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields:  g.fields,
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "place details lookup failed", "place_id", placeID, "error", err)
		return bars.PlaceDetails{}, bars.ErrDetailsUnavailable
	}

	return toDetails(placeID, res), nil
}

func toDetails(placeID string, res maps.PlaceDetailsResult) bars.PlaceDetails {
	d := bars.PlaceDetails{
		PlaceID: placeID,
		Name:    res.Name,
		Phone:   res.FormattedPhoneNumber,
		Address: res.Vicinity,
		Coordinates: bars.Coordinates{
			Lat: res.Geometry.Location.Lat,
			Lng: res.Geometry.Location.Lng,
		},
		Website: res.Website,
		URL:     res.URL,
		Types:   res.Types,
	}
	if res.OpeningHours != nil {
		d.OpeningHours = res.OpeningHours.WeekdayText
	}
	for _, r := range res.Reviews {
		d.Reviews = append(d.Reviews, bars.Review{
			Author: r.AuthorName,
			Rating: r.Rating,
			Text:   r.Text,
			Time:   r.Time,
		})
	}
	return d
}
