package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func servePage(h http.Handler) string {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	return rr.Body.String()
}

func TestPageHandlerFallsBackToEmbedded(t *testing.T) {
	t.Parallel()

	h := NewPageHandler(filepath.Join(t.TempDir(), "missing.html"))
	require.Equal(t, string(embeddedIndex), servePage(h))

	// Nothing to watch, returns straight away.
	require.NoError(t, NewPageHandler("").Watch(context.Background()))
}

func TestPageHandlerReloadsOnWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>v1</p>"), 0o644))

	h := NewPageHandler(path)
	require.Equal(t, "<p>v1</p>", servePage(h))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx) }()

	// The watcher may not be registered yet, so keep rewriting until it sees a change.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("<p>v2</p>"), 0o644)
		return servePage(h) == "<p>v2</p>"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
