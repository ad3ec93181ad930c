package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alex-user-go/tripsearch/internal/config"
	"github.com/alex-user-go/tripsearch/internal/handler"
	"github.com/alex-user-go/tripsearch/internal/middleware"
	"github.com/alex-user-go/tripsearch/internal/obs"
	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/cache"
	"github.com/alex-user-go/tripsearch/internal/search/ratelimit"
	"github.com/alex-user-go/tripsearch/internal/session"
)

// Run loads the configuration at configPath and serves until SIGINT/SIGTERM.
func Run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := NewLogger(os.Stdout, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	srv, cleanup := NewServer(cfg, logger)
	defer cleanup()

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "provider", cfg.Provider.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

// NewServer wires every component into an http.Server. cleanup stops the
// background goroutines.
func NewServer(cfg *config.Config, logger *slog.Logger) (*http.Server, func()) {
	metrics := obs.NewMetrics(logger)

	if cfg.Provider.BaseURL == "" {
		logger.Warn("no provider configured, searches will return the placeholder listing")
	}
	provider := providers.NewHTTPProvider("catalog", cfg.Provider.BaseURL, cfg.Provider.Timeout)

	searchCache := cache.NewCache(cfg.Cache.TTL)
	limiter := ratelimit.New(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	sessions := session.NewStore(cfg.Session.TTL, metrics)

	h := handler.New(
		search.NewSource(provider, searchCache, cfg.Provider.Timeout, metrics, logger),
		search.NewDealFeed(provider, cfg.Provider.Timeout, logger),
		sessions,
		limiter,
		cfg.Concierge.Latency,
		metrics,
		logger,
	)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      middleware.Chain(mux, middleware.Logging(logger), middleware.Recover(logger)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	cleanup := func() {
		sessions.Close()
		limiter.Close()
		searchCache.Close()
	}
	return srv, cleanup
}

// NewLogger builds the process logger from the log settings.
func NewLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}
