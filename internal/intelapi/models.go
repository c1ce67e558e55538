package intelapi

// ReportEnvelope represents a URL report as returned by the intel API.
// All attribute fields are optional: a URL that was submitted but never
// finished analysis can come back with most of them missing.
type ReportEnvelope struct {
	Data ReportData `json:"data"`
}

// ReportData is the single data item inside a report envelope
type ReportData struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Attributes ReportAttributes `json:"attributes"`
}

// ReportAttributes holds the report fields the service consumes.
// Dates are unix timestamps in seconds, as the upstream sends them.
type ReportAttributes struct {
	LastAnalysisDate   *int64         `json:"last_analysis_date,omitempty"`
	LastSubmissionDate *int64         `json:"last_submission_date,omitempty"`
	TimesSubmitted     *int64         `json:"times_submitted,omitempty"`
	LastAnalysisStats  *AnalysisStats `json:"last_analysis_stats,omitempty"`
	TotalVotes         *TotalVotes    `json:"total_votes,omitempty"`
}

// AnalysisStats counts engine detections by category
type AnalysisStats struct {
	Harmless   int64 `json:"harmless"`
	Malicious  int64 `json:"malicious"`
	Suspicious int64 `json:"suspicious"`
	Timeout    int64 `json:"timeout"`
	Undetected int64 `json:"undetected"`
}

// TotalVotes is the community vote tally for a URL
type TotalVotes struct {
	Harmless  int64 `json:"harmless"`
	Malicious int64 `json:"malicious"`
}

// Analysis job status values. Anything outside this set is a terminal
// failure state reported by the upstream.
const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
)

// Analysis is a snapshot of an asynchronous analysis job
type Analysis struct {
	ID     string
	Status string
	Date   *int64 // unix seconds, set once the job has been scheduled
}

// Terminal reports whether the job has left the queued/running states
func (a *Analysis) Terminal() bool {
	return a.Status != StatusQueued && a.Status != StatusRunning
}
