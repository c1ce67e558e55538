package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/olegrjumin/linkverdict/internal/logging"
	"github.com/olegrjumin/linkverdict/internal/scan"
)

// Service provides the business logic layer for URL scanning
// It sits between the HTTP transport layer and the scan core, and owns
// the result cache: a cache hit bypasses the upstream sequence entirely.
type Service struct {
	scanner *scan.Scanner
	cache   *scan.Cache
	logger  *logging.Logger
}

// New creates a new Service instance
func New(scanner *scan.Scanner, cache *scan.Cache, logger *logging.Logger) *Service {
	return &Service{
		scanner: scanner,
		cache:   cache,
		logger:  logger,
	}
}

// ScanURL performs a URL scan, serving from cache when possible.
// This is the main entry point for the scanning use case. On a miss it
// can block for the full polling budget of the scan core.
func (s *Service) ScanURL(ctx context.Context, rawURL string) (*scan.ScanSummary, error) {
	// Each scan request gets its own id for log correlation
	requestID := uuid.New().String()

	if cached := s.cache.Get(rawURL); cached != nil {
		s.logger.Info("Scan served from cache",
			"request_id", requestID,
			"url", rawURL,
			"safe", cached.Safe,
		)
		return cached, nil
	}

	s.logger.Info("Scanning URL", "request_id", requestID, "url", rawURL)
	start := time.Now()

	summary, err := s.scanner.Scan(ctx, rawURL)
	if err != nil {
		errorType, message := scan.Classify(err)
		s.logger.Error("Scan failed",
			"request_id", requestID,
			"url", rawURL,
			"error_type", errorType,
			"error", message,
			"total_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	s.cache.Put(rawURL, summary)

	s.logger.Info("Scan completed",
		"request_id", requestID,
		"url", rawURL,
		"safe", summary.Safe,
		"was_stale", summary.WasStale,
		"total_ms", time.Since(start).Milliseconds(),
	)

	return summary, nil
}
