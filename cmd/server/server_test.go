package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logvault/internal/logstore/models"
	"logvault/internal/logstore/persistence"
	"logvault/internal/logstore/service"
	"logvault/internal/logstore/store"
	"logvault/internal/platform/config"
	"logvault/internal/platform/health"
	"logvault/internal/usage"
	"logvault/pkg/secrets"
)

func newTestServer(t *testing.T, cfg config.Server, b *backend) (*httptest.Server, *service.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	st, err := store.New(cfg.LogStore.DefaultCapacity, store.WithMaxCapacity(cfg.LogStore.MaxCapacity))
	require.NoError(t, err)
	acct, err := usage.New(storeCounters{store: st}, usage.SystemClock{})
	require.NoError(t, err)
	svc := service.New(st, acct, b.Snapshotter, service.WithLogger(logger))

	srv := httptest.NewServer(newRouter(cfg, logger, reg, svc, health.New("test")))
	t.Cleanup(srv.Close)
	return srv, svc
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRestartPreservesEntries(t *testing.T) {
	cfg := config.Default()
	cfg.Persistence.Backend = config.BackendFile
	cfg.Persistence.SnapshotPath = filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()

	b, err := openBackend(ctx, cfg, prometheus.NewRegistry(), health.New("test"))
	require.NoError(t, err)
	srv, svc := newTestServer(t, cfg, b)

	for _, level := range []string{"Debug", "Warn", "Fatal"} {
		resp := postJSON(t, srv.URL+"/v1/logs", `{"message":"m","level":"`+level+`","namespace":"upgrade"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	require.NoError(t, svc.Checkpoint(ctx))
	require.NoError(t, b.Close())

	b2, err := openBackend(ctx, cfg, prometheus.NewRegistry(), health.New("test"))
	require.NoError(t, err)
	t.Cleanup(func() { b2.Close() })
	srv2, svc2 := newTestServer(t, cfg, b2)
	restored, err := svc2.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)

	resp := postJSON(t, srv2.URL+"/v1/logs/query", `{"namespaces":["upgrade"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out models.QueryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Entries, 3)
	assert.Equal(t, []uint64{1, 2, 3}, []uint64{out.Entries[0].Sequence, out.Entries[1].Sequence, out.Entries[2].Sequence})
	assert.Equal(t, "Fatal", out.Entries[2].LevelName)

	resp = postJSON(t, srv2.URL+"/v1/logs", `{"message":"after","level":"Info","namespace":"upgrade"}`)
	var added models.AddResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&added))
	assert.Equal(t, uint64(4), added.Sequence)
}

func TestRouterServesProbesAndMetrics(t *testing.T) {
	cfg := config.Default()
	srv, _ := newTestServer(t, cfg, &backend{Snapshotter: persistence.NewMemory()})

	for _, path := range []string{"/health", "/health/live", "/health/ready", "/metrics", "/v1/logs/buffer-size", "/v1/stats"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := postJSON(t, srv.URL+"/v1/logs", "level=Info")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouterAcceptsHashedAdminToken(t *testing.T) {
	hash, err := secrets.Hash("ops-token")
	require.NoError(t, err)
	cfg := config.Default()
	cfg.AdminAPIToken = hash
	srv, _ := newTestServer(t, cfg, &backend{Snapshotter: persistence.NewMemory()})

	clearWith := func(token string) int {
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/v1/logs/clear", strings.NewReader(`{}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("X-Admin-Token", token)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, clearWith(""))
	assert.Equal(t, http.StatusUnauthorized, clearWith(hash))
	assert.Equal(t, http.StatusOK, clearWith("ops-token"))
}

func TestOpenBackendMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Persistence.Backend = config.BackendMemory

	b, err := openBackend(context.Background(), cfg, prometheus.NewRegistry(), health.New("test"))
	require.NoError(t, err)
	assert.Nil(t, b.Background)
	assert.NoError(t, b.Close())
}

func TestOpenBackendPebble(t *testing.T) {
	cfg := config.Default()
	cfg.Persistence.Backend = config.BackendPebble
	cfg.Persistence.PebbleDir = t.TempDir()

	b, err := openBackend(context.Background(), cfg, prometheus.NewRegistry(), health.New("test"))
	require.NoError(t, err)

	img, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, img)
	assert.NoError(t, b.Close())
}

func TestStoreCounters(t *testing.T) {
	st, err := store.New(3)
	require.NoError(t, err)
	for range 5 {
		_, err := st.Add(context.Background(), models.NewEntry{Level: models.LevelInfo})
		require.NoError(t, err)
	}

	c := storeCounters{store: st}.Counters(context.Background())
	assert.Equal(t, usage.Counters{TotalAdded: 5, Size: 3, Capacity: 3}, c)
}
