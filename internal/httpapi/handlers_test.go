package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/olegrjumin/linkverdict/internal/intelapi"
	"github.com/olegrjumin/linkverdict/internal/logging"
	"github.com/olegrjumin/linkverdict/internal/scan"
	"github.com/olegrjumin/linkverdict/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI stands up the whole stack against a fake upstream handler and
// returns the API server's handler for driving with httptest
func newTestAPI(t *testing.T, upstream http.HandlerFunc) http.Handler {
	t.Helper()

	upstreamServer := httptest.NewServer(upstream)
	t.Cleanup(upstreamServer.Close)

	client := intelapi.New(upstreamServer.URL, "test-key", upstreamServer.Client())
	poller := scan.NewPoller(client, time.Millisecond, time.Second)
	scanner := scan.NewScanner(client, poller)
	cache := scan.NewCache(24*time.Hour, 1000)
	svc := service.New(scanner, cache, logging.New())

	return NewServer(":0", logging.New(), svc).Handler
}

// happyUpstream serves a completed analysis and a clean report for any URL
func happyUpstream(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/urls":
		w.Write([]byte(`{"data":{"id":"u-1","type":"analysis"}}`))
	case strings.HasPrefix(r.URL.Path, "/analyses/"):
		w.Write([]byte(`{"data":{"id":"u-1","attributes":{"status":"completed"}}}`))
	case strings.HasPrefix(r.URL.Path, "/urls/"):
		w.Write([]byte(`{"data":{"id":"x","type":"url","attributes":{"last_analysis_stats":{"harmless":70,"undetected":2},"total_votes":{"harmless":5,"malicious":3}}}}`))
	default:
		http.NotFound(w, r)
	}
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestAPI(t, happyUpstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestScanEndpoint(t *testing.T) {
	handler := newTestAPI(t, happyUpstream)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{"url":"https://example.com"}`))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary scan.ScanSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "https://example.com", summary.URL)
	assert.True(t, summary.Safe)
	assert.Equal(t, "fresh", summary.StaleAgeHuman)
	assert.Equal(t, int64(3), summary.TotalVotes.Malicious)
}

func TestScanEndpointRejectsBadRequests(t *testing.T) {
	handler := newTestAPI(t, happyUpstream)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing url", `{}`},
		{"malformed url", `{"url":"not a url"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(tt.body))
			handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, scan.ErrorInvalidURL, body.Kind)
		})
	}
}

func TestScanEndpointUpstreamFailure(t *testing.T) {
	handler := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"ForbiddenError","message":"wrong api key"}}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scan", strings.NewReader(`{"url":"https://example.com"}`))
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, scan.ErrorUpstreamHTTP, body.Kind)
	assert.Equal(t, "wrong api key", body.Error)
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind string
		want int
	}{
		{scan.ErrorInvalidURL, http.StatusBadRequest},
		{scan.ErrorTimeout, http.StatusGatewayTimeout},
		{scan.ErrorUpstreamHTTP, http.StatusBadGateway},
		{scan.ErrorProtocol, http.StatusBadGateway},
		{scan.ErrorUnexpectedStatus, http.StatusBadGateway},
		{scan.ErrorInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForKind(tt.kind), "kind %s", tt.kind)
	}
}
