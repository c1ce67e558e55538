package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/olegrjumin/linkverdict/internal/logging"
	"github.com/olegrjumin/linkverdict/internal/service"
)

// NewServer creates and configures a new HTTP server
func NewServer(addr string, logger *logging.Logger, svc *service.Service) *http.Server {
	r := chi.NewRouter()
	r.Use(loggingMiddleware(logger))

	r.Get("/health", healthHandler)
	r.Post("/scan", scanHandler(svc))

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}

// healthHandler handles GET requests to /health
// Returns a simple JSON response indicating the service is healthy
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "linkverdict-api",
	})
}

// writeJSON is a helper function to write JSON responses
// It sets the correct Content-Type header and encodes the data as JSON
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// If encoding fails, the error is ignored (acceptable for this simple case)
	json.NewEncoder(w).Encode(data)
}
