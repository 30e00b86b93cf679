package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"go-bars-app/internal/core/domain/auth"
	"go-bars-app/internal/core/domain/bars"
	"go-bars-app/internal/core/ports"
)

type Handler struct {
	service  ports.BarService
	identity ports.IdentityProvider
	logger   *slog.Logger
}

func NewHandler(service ports.BarService, identity ports.IdentityProvider, logger *slog.Logger) *Handler {
	return &Handler{service: service, identity: identity, logger: logger}
}

// ListFavourites handles GET /favourites?sort=&direction=
func (h *Handler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	field, dir, err := parseOrder(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	favs, err := h.service.Favourites(r.Context(), userID, field, dir)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

// Nearby handles GET /favourites/nearby?lat=&lng=
func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	origin, err := parseOrigin(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	nearby, err := h.service.NearbyFavourites(r.Context(), userID, origin)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearby)
}

// GeoJSON handles GET /favourites.geojson
func (h *Handler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	fc, err := h.service.FavouritesGeoJSON(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}

// AddFavourite handles POST /favourites/{placeId}
func (h *Handler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.service.AddFavourite(r.Context(), userID, r.PathValue("placeId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(res))
}

// RemoveFavourite handles DELETE /favourites/{placeId}
func (h *Handler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.service.RemoveFavourite(r.Context(), userID, r.PathValue("placeId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(res))
}

// FavouriteState handles GET /favourites/{placeId}/state
func (h *Handler) FavouriteState(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	state := h.service.FavouriteState(userID, r.PathValue("placeId"))
	writeJSON(w, http.StatusOK, stateResponse{State: state})
}

// PlaceDetails handles GET /places/{placeId}
func (h *Handler) PlaceDetails(w http.ResponseWriter, r *http.Request) {
	if _, err := h.identity.CurrentUserID(r.Context()); err != nil {
		h.respondError(w, r, err)
		return
	}

	details, err := h.service.PlaceDetails(r.Context(), r.PathValue("placeId"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// PutProfile handles PUT /me
// Payload: {"username": "..."}
func (h *Handler) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	user := auth.User{ID: userID, Username: req.Username}
	if err := h.service.RegisterUser(r.Context(), user); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// GetProfile handles GET /me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.identity.CurrentUserID(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// respondError maps domain errors to status codes. Unknown errors are logged and
// reported without detail.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}
	var code int

	switch {
	case errors.Is(err, bars.ErrUnauthenticated):
		code = http.StatusUnauthorized
		resp.Error = bars.ErrUnauthenticated.Error()
	case errors.Is(err, bars.ErrValidation),
		errors.Is(err, bars.ErrInvalidSortField),
		errors.Is(err, bars.ErrInvalidSortDirection):
		code = http.StatusBadRequest
	case errors.Is(err, bars.ErrUserNotFound):
		code = http.StatusNotFound
	case errors.Is(err, bars.ErrRemoveGuard):
		code = http.StatusConflict
	case errors.Is(err, bars.ErrPartialFailure):
		code = http.StatusBadGateway
		resp.Partial = true
	case errors.Is(err, bars.ErrTransport),
		errors.Is(err, bars.ErrDetailsUnavailable):
		code = http.StatusBadGateway
	default:
		h.logger.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
		code = http.StatusInternalServerError
		resp.Error = "internal server error"
	}

	writeJSON(w, code, resp)
}
