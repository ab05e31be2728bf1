package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splax/hostrix/pkg/config"
)

func testConfig() config.DashboardConfig {
	return config.DashboardConfig{
		Environment:       "test",
		Addr:              "127.0.0.1:0",
		FormRateLimit:     -1,
		FormRateWindow:    time.Minute,
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}
}

func TestServeAndShutdown(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(context.Background(), testConfig(), log)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewFailsOnBadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects:\n  - id: a\n    name: a\n    status: nope\n    type: static\n"), 0o644))

	cfg := testConfig()
	cfg.MockProjectsPath = path
	_, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNewFallsBackWhenRedisUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRedisAddr = "127.0.0.1:1"
	a, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	a.Router().Close()
}
