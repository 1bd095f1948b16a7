package server

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"audiolist/logger"

	"github.com/fsnotify/fsnotify"
)

//go:embed ui/index.html
var embeddedIndex []byte

// PageHandler serves the HTML client page. When backed by a file on disk it
// reloads the page whenever that file changes.
type PageHandler struct {
	path string

	mu      sync.RWMutex
	content []byte
	modTime time.Time
}

// NewPageHandler loads the page from path, falling back to the built-in page
// when path is empty or unreadable.
func NewPageHandler(path string) *PageHandler {
	h := &PageHandler{path: path}
	if path == "" {
		h.useEmbedded()
		return h
	}
	if err := h.reload(); err != nil {
		logger.Info("Client page not found on disk, serving built-in page",
			logger.String("path", path),
			logger.ErrorField(err),
		)
		h.useEmbedded()
	}
	return h
}

func (h *PageHandler) useEmbedded() {
	h.mu.Lock()
	h.content = embeddedIndex
	h.modTime = time.Time{}
	h.mu.Unlock()
}

func (h *PageHandler) reload() error {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return err
	}
	info, err := os.Stat(h.path)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.content = data
	h.modTime = info.ModTime()
	h.mu.Unlock()
	return nil
}

// ServeHTTP implements http.Handler.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	content, modTime := h.content, h.modTime
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", modTime, bytes.NewReader(content))
}

// Watch reloads the page whenever its file is written, created or replaced.
// It returns nil once ctx is cancelled, or immediately when the handler is not
// backed by a file.
func (h *PageHandler) Watch(ctx context.Context) error {
	if h.path == "" {
		return nil
	}
	dir := filepath.Dir(h.path)
	if _, err := os.Stat(dir); err != nil {
		logger.Debug("Client page directory missing, not watching", logger.String("dir", dir))
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create page watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(h.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := h.reload(); err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					logger.Warn("Failed to reload client page", logger.ErrorField(err))
				}
				continue
			}
			logger.Info("Client page reloaded", logger.String("path", h.path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Page watcher error", logger.ErrorField(err))
		}
	}
}
