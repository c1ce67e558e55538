package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/olegrjumin/linkverdict/internal/scan"
	"github.com/olegrjumin/linkverdict/internal/service"
)

// scanRequest represents the JSON request body for the /scan endpoint
type scanRequest struct {
	URL string `json:"url"`
}

// errorResponse is the JSON body returned for failed scans
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// scanHandler handles POST requests to /scan
// Accepts a JSON body with a URL, runs the scan through the service layer
// and returns the summary. Scans can take minutes when the upstream
// analysis is slow; clients should use generous timeouts.
func scanHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "Invalid JSON",
				Kind:  scan.ErrorInvalidURL,
			})
			return
		}

		if req.URL == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: "URL is required",
				Kind:  scan.ErrorInvalidURL,
			})
			return
		}

		summary, err := svc.ScanURL(r.Context(), req.URL)
		if err != nil {
			kind, message := scan.Classify(err)
			writeJSON(w, statusForKind(kind), errorResponse{
				Error: message,
				Kind:  kind,
			})
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

// statusForKind maps a scan error kind to the HTTP status returned to clients
func statusForKind(kind string) int {
	switch kind {
	case scan.ErrorInvalidURL:
		return http.StatusBadRequest
	case scan.ErrorTimeout:
		return http.StatusGatewayTimeout
	case scan.ErrorUpstreamHTTP, scan.ErrorProtocol, scan.ErrorUnexpectedStatus:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
