package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloggraph/internal/graph"
	"github.com/sushihentaime/bloggraph/internal/metrics"
)

func TestRecoverPanic(t *testing.T) {
	app, _ := newTestApplication(t, nil)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	app.recoverPanic(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		enabled  bool
		requests int
		expected []int
	}{
		{
			name:     "burst exhausted",
			enabled:  true,
			requests: 3,
			expected: []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests},
		},
		{
			name:     "disabled",
			enabled:  false,
			requests: 3,
			expected: []int{http.StatusOK, http.StatusOK, http.StatusOK},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newTestConfig()
			cfg.Limiter.Enabled = tc.enabled
			cfg.Limiter.RPS = 0.001
			cfg.Limiter.Burst = 2

			app, _ := newTestApplication(t, cfg)
			handler := app.rateLimit(ok)

			var got []int
			for i := 0; i < tc.requests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				req.RemoteAddr = "192.0.2.1:1234"
				res := httptest.NewRecorder()
				handler.ServeHTTP(res, req)
				got = append(got, res.Code)
			}

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRateLimit_PerClient(t *testing.T) {
	cfg := newTestConfig()
	cfg.Limiter.Enabled = true
	cfg.Limiter.RPS = 0.001
	cfg.Limiter.Burst = 1

	app, _ := newTestApplication(t, cfg)
	handler := app.rateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, addr := range []string{"192.0.2.1:1234", "192.0.2.2:1234", "192.0.2.1:5678"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if addr == "192.0.2.1:5678" {
			assert.Equal(t, http.StatusTooManyRequests, res.Code, addr)
		} else {
			assert.Equal(t, http.StatusOK, res.Code, addr)
		}
	}
}

func TestRecordMetrics(t *testing.T) {
	app, _ := newTestApplication(t, nil)
	ts := newTestServer(t, app.routes())

	requests := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/healthcheck", "200")
	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	unknownField := metrics.GraphErrorsTotal.WithLabelValues(string(graph.KindUnknownField))

	beforeRequests := testutil.ToFloat64(requests)
	beforeUnmatched := testutil.ToFloat64(unmatched)
	beforeUnknown := testutil.ToFloat64(unknownField)

	ts.get(t, "/v1/healthcheck")
	ts.get(t, "/nowhere")
	ts.post(t, "/graphql", map[string]any{"query": `{ posts { id } }`})

	assert.Equal(t, beforeRequests+1, testutil.ToFloat64(requests))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, beforeUnknown+1, testutil.ToFloat64(unknownField))

	res, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, strings.Contains(string(b), "bloggraph_http_requests_total"))
	assert.True(t, strings.Contains(string(b), "bloggraph_graph_errors_total"))
}
