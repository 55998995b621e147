package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloggraph/internal/common"
	"github.com/sushihentaime/bloggraph/internal/store/memstore"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig() *Config {
	cfg := &Config{
		Port:        "4000",
		Environment: "testing",
		Version:     "1.0.0",
		Storage:     storageMemory,
	}
	cfg.Limiter.Enabled = false
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 2

	return cfg
}

func newTestApplication(t *testing.T, cfg *Config) (*application, *common.MockMessageProducer) {
	t.Helper()

	if cfg == nil {
		cfg = newTestConfig()
	}

	mb := &common.MockMessageProducer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memstore.New(memstore.Options{UniquePairs: true})

	return newApplication(cfg, logger, st, mb), mb
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	t.Helper()
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	err = json.Unmarshal(responseBody, &env)
	require.NoError(t, err, string(responseBody))

	return res.StatusCode, res.Header, env
}

func (ts *testServer) postRaw(t *testing.T, path string, body []byte) (int, http.Header, envelope) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any) (int, http.Header, envelope) {
	t.Helper()

	jsonPayload, err := json.Marshal(data)
	require.NoError(t, err)

	return ts.postRaw(t, path, jsonPayload)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	t.Helper()

	res, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)

	return readResponse(t, res)
}

// dig walks a decoded JSON response by object keys and list indexes.
func dig(t *testing.T, v any, path ...any) any {
	t.Helper()

	for _, p := range path {
		switch key := p.(type) {
		case string:
			m, ok := v.(map[string]any)
			require.Truef(t, ok, "expected an object at %q, got %T", key, v)
			v = m[key]
		case int:
			l, ok := v.([]any)
			require.Truef(t, ok, "expected a list at %d, got %T", key, v)
			require.Greater(t, len(l), key)
			v = l[key]
		}
	}

	return v
}
