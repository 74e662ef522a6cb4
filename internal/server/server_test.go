package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docforge/internal/assets"
	"github.com/jonathan/docforge/internal/pipeline"
	"github.com/jonathan/docforge/internal/server/ratelimit"
)

type failingFetcher struct{}

func (failingFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	return nil, errors.New("unreachable: " + url)
}

const contractPayload = `{"title":"Service Agreement","content":"Terms and conditions"}`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	engine, err := pipeline.New(pipeline.Options{
		Loader: assets.NewLoader(assets.LoaderOptions{Fetcher: failingFetcher{}, FetchTimeout: time.Second}),
		Clock:  func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	cfg.Engine = engine
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGenerateEndpoint_Contract(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodPost, "/generate", contractPayload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=Service_Agreement.pdf`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, w.Header().Get("Content-Length"), strconv.Itoa(w.Body.Len()))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
}

func TestGenerateEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"empty body", "", http.StatusBadRequest, "empty_body"},
		{"no shape", `{"hello":"world"}`, http.StatusBadRequest, "unrecognized_payload"},
		{"malformed", `{"title":`, http.StatusBadRequest, "unrecognized_payload"},
		{"invalid intake", `{"clientName":"A","industry":"gym"}`, http.StatusUnprocessableEntity, "validation_failed"},
	}

	s := newTestServer(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s.Handler(), http.MethodPost, "/generate", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error)
		})
	}
}

func TestGenerateEndpoint_ValidationFields(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodPost, "/generate", `{"invoice":{"items":[{"description":"x","quantity":"lots","unitPrice":5}]}}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, "invoice.items[0].quantity", resp.Fields[0].Field)
}

func TestGenerateEndpoint_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, Config{MaxBodyBytes: 16})

	w := do(t, s.Handler(), http.MethodPost, "/generate", contractPayload)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestGenerateEndpoint_RateLimited(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{Enabled: true, Limit: 1, Window: time.Hour, Burst: 1}})
	h := s.Handler()

	first := do(t, h, http.MethodPost, "/generate", contractPayload)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(t, h, http.MethodPost, "/generate", contractPayload)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	health := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code, "health is never rate limited")
}

func TestCatalogEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodGet, "/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Industries, "default")
	assert.Contains(t, resp.Industries, "gym")
	assert.Contains(t, resp.Themes, resp.DefaultTheme)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodOptions, "/generate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	w := do(t, s.Handler(), http.MethodGet, "/generate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
