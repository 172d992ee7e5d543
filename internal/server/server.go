package server

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vistapra/content-hub-go/internal/api"
	"github.com/vistapra/content-hub-go/internal/config"
	"github.com/vistapra/content-hub-go/internal/db"
	"github.com/vistapra/content-hub-go/internal/events"
	"github.com/vistapra/content-hub-go/internal/maintenance"
	"github.com/vistapra/content-hub-go/internal/screens"
	"github.com/vistapra/content-hub-go/internal/settings"
	"github.com/vistapra/content-hub-go/internal/uploads"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack passes through so the websocket upgrade on /v1/events still
// works behind the logger.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// requestLoggerMiddleware logs all incoming HTTP requests
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, wrapped.status, time.Since(start).Round(time.Millisecond))
	})
}

// Options controls server wiring.
type Options struct {
	// DisableBackup skips the cron backup job (for tests).
	DisableBackup bool
}

// NewHandler builds the HTTP handler and returns a shutdown function.
func NewHandler(cfg config.Config, options Options) (http.Handler, func(context.Context) error, error) {
	log.Printf("Using database: %s", cfg.SQLiteDBPath)
	dbPair, err := db.Init(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}

	router := chi.NewRouter()
	router.Use(middleware.StripSlashes)
	router.Use(requestLoggerMiddleware)
	router.Use(api.RequestIDMiddleware)
	router.Use(api.RecovererMiddleware)

	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "x-request-id"},
			ExposedHeaders: []string{"x-request-id"},
			MaxAge:         300,
		}))
	}

	registerHealthRoutes(router)

	hub := events.NewHub(nil)
	router.Handle("/v1/events", hub)

	screensRepo := screens.NewRepository(dbPair)
	screens.RegisterRoutes(router, screensRepo, hub)

	settingsService := settings.NewService(dbPair, nil)
	settings.RegisterRoutes(router, settingsService, hub)

	uploadService, err := uploads.NewService(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		dbPair.Close()
		return nil, nil, err
	}
	uploads.RegisterRoutes(router, uploadService)

	// Serve uploaded files
	router.Handle("/v1/uploads/*", http.StripPrefix("/v1/uploads/", http.FileServer(http.Dir(uploadService.Dir()))))

	backupJob := maintenance.NewBackupJob(dbPair, cfg.SQLiteDBPath, cfg.BackupDir, cfg.BackupSchedule, cfg.BackupRetain, nil)
	if !options.DisableBackup {
		if err := backupJob.Start(); err != nil {
			dbPair.Close()
			return nil, nil, err
		}
	}

	shutdown := func(ctx context.Context) error {
		backupJob.Stop()
		hub.Close()
		if ctx == nil {
			ctx = context.Background()
		}
		return dbPair.Close()
	}

	return router, shutdown, nil
}

func registerHealthRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/v1/health", api.Handler(func(w http.ResponseWriter, r *http.Request) error {
		response := map[string]any{
			"status":    "healthy",
			"service":   "content-hub",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		return api.WriteJSON(w, http.StatusOK, response)
	}))
}
