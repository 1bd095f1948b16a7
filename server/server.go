package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"audiolist/config"
	"audiolist/core/audio"
	"audiolist/core/events"
	"audiolist/logger"
	"audiolist/model"
	"audiolist/repository"
	"audiolist/storage"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the API, event feed and client page onto a gorilla/mux router.
func NewRouter(api *APIHandler, feed http.Handler, page http.Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	router.HandleFunc("/api/tracks", api.GetTracksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/tracks", api.UploadTrackHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/tracks/{id}", api.DeleteTrackHandler).Methods(http.MethodDelete)
	router.HandleFunc(model.StreamPathPrefix+"{id}", api.StreamHandler).Methods(http.MethodGet, http.MethodHead)

	if feed != nil {
		router.Handle("/api/events", feed).Methods(http.MethodGet)
	}
	if page != nil {
		router.Handle("/", page).Methods(http.MethodGet, http.MethodHead)
	}

	// Preflight requests for any API route.
	router.PathPrefix("/api/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return router
}

// NewTrackRepository builds the in-memory store from cfg, seeding it when configured.
func NewTrackRepository(cfg *config.Config) repository.TrackRepository {
	blobs := storage.NewBlobStore(storage.Limits{
		MaxBlobSize:  cfg.MaxUploadSize,
		MaxTotalSize: cfg.MaxStoreSize,
	})
	repo := repository.NewMemoryTrackRepository(blobs)
	if cfg.SeedDemoTracks {
		n := repo.Seed(model.DemoTracks)
		logger.Info("Seeded demo tracks", logger.Int("count", n))
	}
	return repo
}

// Start runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts it down gracefully.
func Start(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := events.NewHub()
	page := NewPageHandler(cfg.WebIndexFile)
	api := NewAPIHandler(NewTrackRepository(cfg), audio.NewTagProber(), hub, cfg)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      NewRouter(api, NewEventsHandler(hub), page),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hub.Run(gctx) })
	g.Go(func() error { return page.Watch(gctx) })
	g.Go(func() error {
		logger.Info("Server starting",
			logger.String("addr", cfg.Port),
			logger.Bytes("maxUpload", cfg.MaxUploadSize),
			logger.Bytes("maxStore", cfg.MaxStoreSize),
			logger.Bool("seedDemoTracks", cfg.SeedDemoTracks),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logger.Info("Server stopped")
		return nil
	})

	return g.Wait()
}
