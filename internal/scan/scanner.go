package scan

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Scanner sequences the end-to-end scan operation against the intel API
type Scanner struct {
	client IntelClient
	poller *Poller
	now    func() time.Time
}

// NewScanner creates a Scanner that uses the given client for upstream
// calls and the given poller to wait for analyses.
func NewScanner(client IntelClient, poller *Poller) *Scanner {
	return &Scanner{
		client: client,
		poller: poller,
		now:    time.Now,
	}
}

// Scan runs the full sequence for one URL:
//
//  1. Fetch the pre-scan report (absence is fine, the URL may be new)
//  2. Submit the URL for a fresh analysis
//  3. Poll the analysis job to completion
//  4. Fetch the post-scan report
//  5. Summarize both snapshots into a verdict
//
// Every step depends on the previous one succeeding. Any failure aborts
// the whole operation; there are no partial retries and no resumption
// mid-sequence. A scan can block for the full polling budget, so callers
// must treat it as long-running.
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*ScanSummary, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	// Pre-scan snapshot: nil when the URL has never been analyzed
	preScan, err := s.client.FetchReport(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching pre-scan report: %w", err)
	}

	analysisID, err := s.client.SubmitAnalysis(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("submitting for analysis: %w", err)
	}

	if _, err := s.poller.Await(ctx, analysisID); err != nil {
		return nil, err
	}

	postScan, err := s.client.FetchReport(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching post-scan report: %w", err)
	}
	// The analysis completed, so a report must exist now
	if postScan == nil {
		return nil, ErrReportMissing
	}

	return Summarize(rawURL, preScan, postScan, s.now()), nil
}

// validateURL rejects targets that aren't well-formed absolute http(s) URLs.
// The core treats the URL as opaque beyond this check; normalization is the
// caller's concern.
func validateURL(rawURL string) error {
	parsed, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}
