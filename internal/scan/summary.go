package scan

import (
	"fmt"
	"time"

	"github.com/olegrjumin/linkverdict/internal/intelapi"
)

// StaleThreshold is how old a previous analysis can be before a new scan
// reports the prior result as stale.
const StaleThreshold = 30 * 24 * time.Hour

// ScanSummary is the simplified verdict produced for one scan.
// Immutable once built; a cached scan replays the same value.
type ScanSummary struct {
	URL                string                 `json:"url"`
	Safe               bool                   `json:"safe"`
	WasStale           bool                   `json:"wasStale"`
	StaleAgeHuman      string                 `json:"stale_age_human"`
	LastSubmittedAgo   string                 `json:"last_submitted_ago"`
	LastAnalysisDate   *string                `json:"last_analysis_date"`
	LastSubmissionDate *string                `json:"last_submission_date"`
	TimesSubmitted     *int64                 `json:"times_submitted"`
	TotalVotes         intelapi.TotalVotes    `json:"total_votes"`
	LastAnalysisStats  intelapi.AnalysisStats `json:"last_analysis_stats"`
}

// Summarize combines the pre-scan and post-scan report snapshots into a
// verdict. Pure: all inputs are explicit, including the clock.
//
// preScan may be nil (the URL had never been analyzed before this scan).
// postScan must be non-nil; the orchestrator verifies that before calling.
//
// Staleness describes the report that existed before this scan ran, so it
// is computed from the pre-scan snapshot only. The reported stats, votes,
// dates and counts come from the post-scan snapshot.
//
// The verdict counts engine detections only. Community votes are carried
// through for display but never affect Safe.
func Summarize(rawURL string, preScan, postScan *intelapi.ReportEnvelope, now time.Time) *ScanSummary {
	post := postScan.Data.Attributes

	summary := &ScanSummary{
		URL:              rawURL,
		StaleAgeHuman:    "fresh",
		LastSubmittedAgo: "unknown",
	}

	if post.LastAnalysisStats != nil {
		summary.LastAnalysisStats = *post.LastAnalysisStats
	}
	if post.TotalVotes != nil {
		summary.TotalVotes = *post.TotalVotes
	}
	summary.TimesSubmitted = post.TimesSubmitted
	summary.LastAnalysisDate = isoTime(post.LastAnalysisDate)
	summary.LastSubmissionDate = isoTime(post.LastSubmissionDate)

	summary.Safe = summary.LastAnalysisStats.Malicious+summary.LastAnalysisStats.Suspicious == 0

	if preScan != nil {
		pre := preScan.Data.Attributes
		if pre.LastAnalysisDate != nil {
			age := now.Sub(time.Unix(*pre.LastAnalysisDate, 0))
			summary.WasStale = age > StaleThreshold
			summary.StaleAgeHuman = humanizeDuration(age)
		}
		if pre.LastSubmissionDate != nil {
			summary.LastSubmittedAgo = humanizeDuration(now.Sub(time.Unix(*pre.LastSubmissionDate, 0)))
		}
	}

	return summary
}

// isoTime converts an optional unix timestamp to an RFC 3339 string
func isoTime(unixSeconds *int64) *string {
	if unixSeconds == nil {
		return nil
	}
	formatted := time.Unix(*unixSeconds, 0).UTC().Format(time.RFC3339)
	return &formatted
}

// humanizeDuration renders a duration as a short human-readable age string.
// Buckets, largest first: months (30 days each), days, hours, minutes,
// seconds. Negative durations render "unknown".
func humanizeDuration(d time.Duration) string {
	if d < 0 {
		return "unknown"
	}

	days := int64(d.Hours()) / 24
	switch {
	case days >= 30:
		months := days / 30
		unit := "months"
		if months == 1 {
			unit = "month"
		}
		return fmt.Sprintf("%d %s %dd", months, unit, days%30)
	case days >= 1:
		return fmt.Sprintf("%dd %dh", days, int64(d.Hours())%24)
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int64(d.Hours()), int64(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int64(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}
