package scan

import (
	"errors"
	"fmt"

	"github.com/olegrjumin/linkverdict/internal/intelapi"
)

// Error type constants
const (
	ErrorNone             = "none"
	ErrorInvalidURL       = "invalid_url"
	ErrorUpstreamHTTP     = "upstream_http"
	ErrorProtocol         = "protocol_violation"
	ErrorTimeout          = "analysis_timeout"
	ErrorUnexpectedStatus = "unexpected_status"
	ErrorInternal         = "internal"
)

// ErrInvalidURL marks a malformed scan target. No upstream call is made.
var ErrInvalidURL = errors.New("invalid url")

// ErrAnalysisTimeout is returned when a job stays queued or running past
// the polling budget. Callers can surface this as "try again later".
var ErrAnalysisTimeout = errors.New("analysis did not complete within the polling budget")

// ErrReportMissing is returned when no report exists for a URL whose
// analysis just completed. A completed analysis must produce a retrievable
// report, so this is an upstream contract violation and is not retried.
var ErrReportMissing = errors.New("report missing after completed analysis")

// UnexpectedStatusError is returned when a job ends in a terminal state
// other than completed
type UnexpectedStatusError struct {
	Status string
}

// Error implements the error interface
func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("analysis ended with unexpected status %q", e.Status)
}

// Classify determines the error type from a Go error
// Returns the error type constant and a human-readable message
func Classify(err error) (string, string) {
	if err == nil {
		return ErrorNone, ""
	}

	var httpErr *intelapi.HTTPError
	var statusErr *UnexpectedStatusError

	switch {
	case errors.Is(err, ErrInvalidURL):
		return ErrorInvalidURL, err.Error()
	case errors.Is(err, ErrAnalysisTimeout):
		return ErrorTimeout, err.Error()
	case errors.As(err, &statusErr):
		return ErrorUnexpectedStatus, statusErr.Error()
	case errors.Is(err, intelapi.ErrMissingAnalysisID), errors.Is(err, ErrReportMissing):
		return ErrorProtocol, err.Error()
	case errors.As(err, &httpErr):
		return ErrorUpstreamHTTP, httpErr.Message
	}

	// Default to internal for transport failures and anything unrecognized
	return ErrorInternal, err.Error()
}
