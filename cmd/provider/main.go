package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

func main() {
	port := getEnv("PORT", "9001")
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	data := defaultCatalog
	if path := os.Getenv("CATALOG_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Error("failed to read catalog", "path", path, "error", err)
			os.Exit(1)
		}
		data = b
	}
	catalog, err := LoadCatalog(data)
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	s := &server{
		catalog:     catalog,
		latency:     getDuration("LATENCY", 100*time.Millisecond),
		failureRate: getFloat("FAILURE_RATE", 0.1),
		logger:      logger,
	}

	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("catalog provider listening",
			"addr", addr,
			"packages", len(catalog.Packages),
			"latency", s.latency,
			"failure_rate", s.failureRate,
		)
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
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f < 0 || f > 1 {
		return defaultValue
	}
	return f
}
