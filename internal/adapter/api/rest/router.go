package rest

import (
	"net/http"

	"github.com/swaggo/swag"

	_ "go-bars-app/docs"
	"go-bars-app/internal/core/ports"
)

// NewRouter initializes the HTTP router and registers routes.
func NewRouter(h *Handler, verifier ports.TokenVerifier, mws ...Middleware) http.Handler {
	mux := http.NewServeMux()

	// Protected Routes
	auth := AuthMiddleware(verifier)

	mux.Handle("PUT /me", auth(http.HandlerFunc(h.PutProfile)))
	mux.Handle("GET /me", auth(http.HandlerFunc(h.GetProfile)))

	mux.Handle("GET /favourites", auth(http.HandlerFunc(h.ListFavourites)))
	mux.Handle("GET /favourites/nearby", auth(http.HandlerFunc(h.Nearby)))
	mux.Handle("GET /favourites.geojson", auth(http.HandlerFunc(h.GeoJSON)))
	mux.Handle("POST /favourites/{placeId}", auth(http.HandlerFunc(h.AddFavourite)))
	mux.Handle("DELETE /favourites/{placeId}", auth(http.HandlerFunc(h.RemoveFavourite)))
	mux.Handle("GET /favourites/{placeId}/state", auth(http.HandlerFunc(h.FavouriteState)))
	mux.Handle("GET /places/{placeId}", auth(http.HandlerFunc(h.PlaceDetails)))

	// Documentation
	mux.HandleFunc("GET /openapi.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "api document unavailable"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	mux.HandleFunc("GET /api-docs", func(w http.ResponseWriter, r *http.Request) {
		html := `<!DOCTYPE html>
				<html lang="en">
				<head>
					<meta charset="utf-8" />
					<meta name="viewport" content="width=device-width, initial-scale=1" />
					<meta name="description" content="SwaggerUI" />
					<title>SwaggerUI</title>
					<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
				</head>
				<body>
				<div id="swagger-ui"></div>
				<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
				<script>
					window.onload = () => {
						window.ui = SwaggerUIBundle({ url: '/openapi.json', dom_id: '#swagger-ui' });
					};
				</script>
				</body>
				</html>`
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	})

	// Wrap with middleware
	return Chain(mux, mws...)
}
