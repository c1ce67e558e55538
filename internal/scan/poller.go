package scan

import (
	"context"
	"time"

	"github.com/olegrjumin/linkverdict/internal/intelapi"
)

// IntelClient is the part of the upstream API the scan core consumes.
// Satisfied by *intelapi.Client; tests substitute fakes.
type IntelClient interface {
	FetchReport(ctx context.Context, targetURL string) (*intelapi.ReportEnvelope, error)
	SubmitAnalysis(ctx context.Context, targetURL string) (string, error)
	FetchAnalysis(ctx context.Context, analysisID string) (*intelapi.Analysis, error)
}

// Default polling parameters. Upstream jobs typically finish within
// seconds to low minutes, so a fixed interval is enough; no backoff.
const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollTimeout  = 180 * time.Second
)

// Poller waits for an asynchronous analysis job to reach a terminal state
type Poller struct {
	client   IntelClient
	interval time.Duration
	timeout  time.Duration

	// Seams for deterministic tests
	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a Poller. Zero interval or timeout fall back to the
// package defaults.
func NewPoller(client IntelClient, interval, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	return &Poller{
		client:   client,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
		wait:     sleepContext,
	}
}

// Await polls the job until it reaches a terminal state or the budget runs out.
//
// The status check happens before any sleep, so a job that is already
// terminal returns without waiting. Transitions:
//   - completed: success, the job snapshot is returned immediately
//   - any other terminal status: UnexpectedStatusError, no retry
//   - still queued/running once elapsed time reaches the budget: ErrAnalysisTimeout
func (p *Poller) Await(ctx context.Context, analysisID string) (*intelapi.Analysis, error) {
	start := p.now()

	for {
		// Re-check the budget before each attempt
		if p.now().Sub(start) >= p.timeout {
			return nil, ErrAnalysisTimeout
		}

		analysis, err := p.client.FetchAnalysis(ctx, analysisID)
		if err != nil {
			return nil, err
		}

		if analysis.Status == intelapi.StatusCompleted {
			return analysis, nil
		}
		if analysis.Terminal() {
			// Terminal but not completed: the upstream gave up on this job
			return nil, &UnexpectedStatusError{Status: analysis.Status}
		}

		if err := p.wait(ctx, p.interval); err != nil {
			return nil, err
		}
	}
}

// sleepContext sleeps for d, returning early with the context error if the
// caller's context is canceled. The poller has no cancellation signal of its
// own; an external deadline is layered through ctx.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
