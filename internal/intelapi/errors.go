package intelapi

import (
	"errors"
	"fmt"
)

// ErrMissingAnalysisID is returned when the upstream accepted a submission
// but the response carried no analysis id. That breaks the documented
// contract of the submit endpoint, so it is not retried.
var ErrMissingAnalysisID = errors.New("submission response missing analysis id")

// HTTPError represents a non-2xx, non-404 response from the intel API.
// The status code is preserved so callers can react to specific outcomes
// (403 credential problem, 429 rate limit, and so on).
type HTTPError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("intel API returned status %d: %s", e.Status, e.Message)
}
