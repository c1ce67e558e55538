package intelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client handles requests to the threat-intel API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
}

// New creates a new intel API client.
// The API key is sent on every request; the upstream rejects calls without one.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  "linkverdict/1.0",
	}
}

// FetchReport retrieves the current report for a URL.
// A nil envelope with a nil error means the upstream has never analyzed
// this URL (HTTP 404), which is a valid pre-scan state.
func (c *Client) FetchReport(ctx context.Context, targetURL string) (*ReportEnvelope, error) {
	endpoint := fmt.Sprintf("%s/urls/%s", c.baseURL, URLID(targetURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call intel API: %w", err)
	}
	defer resp.Body.Close()

	// 404 means the URL has no report yet, not a failure
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp)
	}

	var envelope ReportEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	return &envelope, nil
}

// submitResponse is the wire shape of a successful submission
type submitResponse struct {
	Data struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

// SubmitAnalysis submits a URL for a fresh analysis and returns the id of
// the asynchronous job the upstream created for it.
func (c *Client) SubmitAnalysis(ctx context.Context, targetURL string) (string, error) {
	endpoint := c.baseURL + "/urls"

	// The submit endpoint takes a form-encoded body
	form := url.Values{}
	form.Set("url", targetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call intel API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.errorFromResponse(resp)
	}

	var submitted submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", fmt.Errorf("failed to parse submission response: %w", err)
	}

	// A 2xx submission without an analysis id violates the upstream contract
	if submitted.Data.ID == "" {
		return "", ErrMissingAnalysisID
	}

	return submitted.Data.ID, nil
}

// analysisResponse is the wire shape of a job status lookup
type analysisResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status string `json:"status"`
			Date   *int64 `json:"date,omitempty"`
		} `json:"attributes"`
	} `json:"data"`
}

// FetchAnalysis retrieves the current status of an analysis job.
// Unlike FetchReport, a 404 here is unexpected (the id came from a
// successful submission) and surfaces as a lookup failure.
func (c *Client) FetchAnalysis(ctx context.Context, analysisID string) (*Analysis, error) {
	endpoint := fmt.Sprintf("%s/analyses/%s", c.baseURL, analysisID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call intel API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp)
	}

	var parsed analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	return &Analysis{
		ID:     parsed.Data.ID,
		Status: parsed.Data.Attributes.Status,
		Date:   parsed.Data.Attributes.Date,
	}, nil
}

// setHeaders applies the headers every intel API call carries
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
}

// apiErrorBody is the error envelope the upstream uses for failures
type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorFromResponse builds an HTTPError from a non-success response.
// If the error body can't be parsed, the message falls back to the
// status code and status text.
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var parsed apiErrorBody
		if jsonErr := json.Unmarshal(body, &parsed); jsonErr == nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
	}

	return &HTTPError{
		Status:  resp.StatusCode,
		Message: message,
	}
}
