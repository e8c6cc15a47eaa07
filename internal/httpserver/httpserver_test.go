package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feedlab/snsbox/internal/config"
	"github.com/feedlab/snsbox/internal/events"
	"github.com/feedlab/snsbox/internal/faults"
	"github.com/feedlab/snsbox/internal/snapshot"
)

// testEnv is a fully wired server over an in-memory store.
type testEnv struct {
	cfg     *config.Config
	store   *snapshot.Store
	ctrl    *faults.Controller
	handler http.Handler
}

func newTestEnv(t *testing.T, sampler faults.Sampler) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Hostname:     "127.0.0.1",
		DatabasePath: config.InMemoryPath,
		SeedPath:     filepath.Join(t.TempDir(), "seed.json"),
		PublicDir:    t.TempDir(),
	}

	store := snapshot.NewStore(snapshot.NewMemoryPersister(), logger)
	store.Load()

	ctrl := faults.NewController()
	hub := events.NewHub(logger)
	server := NewServer(cfg, store, ctrl, sampler, hub, logger)

	return &testEnv{
		cfg:     cfg,
		store:   store,
		ctrl:    ctrl,
		handler: server.Handler(),
	}
}

// do performs a request against the handler tree. A string body is sent
// raw; anything else non-nil is JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
