package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/database"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/platform/metrics"
	"bookshelf/internal/web"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logrus.Logger) error {
	pool, err := database.Open(ctx, cfg.Database())
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.WithFields(logrus.Fields{
		"dialect": pool.Dialect(),
		"dsn":     database.RedactDSN(cfg.DatabaseURL),
	}).Info("database ready")

	if err := seedSampleData(ctx, cfg, pool, logger); err != nil {
		return err
	}

	m := metrics.New()
	if err := m.RegisterDB(pool.DB.DB, "books"); err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newHandler(ctx, cfg, pool, logger, m),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// seedSampleData fills an empty books table with the sample catalogue when
// the configuration asks for it.
func seedSampleData(ctx context.Context, cfg config.Config, pool *database.Pool, logger logrus.FieldLogger) error {
	if !cfg.SeedOnStartup() {
		return nil
	}
	inserted, err := book.Seed(ctx, book.NewSQLRepo(pool.DB, cfg.DBQueryTimeout), false)
	if err != nil {
		return fmt.Errorf("seed sample books: %w", err)
	}
	logger.WithField("inserted", inserted).Info("sample books seeded")
	return nil
}

// newHandler wires routes and middleware around an already opened pool.
func newHandler(ctx context.Context, cfg config.Config, pool *database.Pool, logger *logrus.Logger, m *metrics.Metrics) http.Handler {
	bookRepository := book.NewSQLRepo(pool.DB, cfg.DBQueryTimeout)
	bookService := book.NewService(bookRepository)
	bookHandler := book.NewHTTPHandler(bookService, logger)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := pool.PingContext(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Handle("GET /metrics", m.Handler())

	bookHandler.Register(router)
	router.Handle("GET /{$}", web.Handler())

	middlewares := []httpx.Middleware{
		m.Middleware,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins()),
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	}
	if cfg.RateLimitRPS > 0 {
		middlewares = append(middlewares, httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxyHeaders).Middleware)
	}
	return httpx.Chain(m.Routes(router), middlewares...)
}
