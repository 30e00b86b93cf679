package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go-bars-app/internal/core/domain/bars"
)

type profileRequest struct {
	Username string `json:"username"`
}

// stateResponse reports the outcome of an add or remove.
type stateResponse struct {
	State  bars.State `json:"state"`
	Reason string     `json:"reason,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Partial bool   `json:"partial,omitempty"`
}

func newStateResponse(res bars.Result) stateResponse {
	resp := stateResponse{State: res.State}
	if res.Reason != nil {
		resp.Reason = res.Reason.Error()
	}
	return resp
}

// parseOrder reads ?sort= and ?direction=. Sort defaults to name, direction to ascending.
func parseOrder(r *http.Request) (bars.SortField, bars.Direction, error) {
	q := r.URL.Query()

	field := bars.SortByName
	if s := q.Get("sort"); s != "" {
		f, err := bars.ParseSortField(s)
		if err != nil {
			return "", "", err
		}
		field = f
	}

	dir, err := bars.ParseDirection(q.Get("direction"))
	if err != nil {
		return "", "", err
	}
	return field, dir, nil
}

// parseOrigin reads the required ?lat= and ?lng= query parameters.
func parseOrigin(r *http.Request) (bars.Coordinates, error) {
	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return bars.Coordinates{}, fmt.Errorf("%w: lat must be a number", bars.ErrValidation)
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		return bars.Coordinates{}, fmt.Errorf("%w: lng must be a number", bars.ErrValidation)
	}
	origin := bars.Coordinates{Lat: lat, Lng: lng}
	return origin, origin.Validate()
}

// writeJSON encodes v before writing the header so an encoding failure is
// reported as a 500 rather than a truncated 200.
func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		data = []byte(`{"error":"internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(data, '\n'))
}
