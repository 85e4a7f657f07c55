package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bnnadi/confida-scoring/internal/adapters/http/api"
	"github.com/bnnadi/confida-scoring/internal/analysis"
	anthropicbackend "github.com/bnnadi/confida-scoring/internal/analysis/backend/anthropic"
	geminibackend "github.com/bnnadi/confida-scoring/internal/analysis/backend/gemini"
	"github.com/bnnadi/confida-scoring/internal/analysis/backend/stub"
	"github.com/bnnadi/confida-scoring/internal/app"
	"github.com/bnnadi/confida-scoring/internal/config"
	"github.com/bnnadi/confida-scoring/internal/domain/score"
	"github.com/bnnadi/confida-scoring/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	capability, err := buildCapability(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("failed to build analysis capability: " + err.Error() + "\n")
		return
	}
	loggerInstance.Info(ctx, "analysis capability ready", logger.String("backend", cfg.Backend))

	svc := app.New(
		capability,
		app.WithLogger(loggerInstance),
		app.WithTimeout(cfg.AnalysisTimeout()),
		app.WithWeights(score.ScoringWeights{
			Content:   cfg.ContentWeight,
			Delivery:  cfg.DeliveryWeight,
			Technical: cfg.TechnicalWeight,
		}),
	)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// buildCapability selects the analysis backend from configuration.
func buildCapability(ctx context.Context, cfg *config.Config) (analysis.Capability, error) {
	switch cfg.Backend {
	case config.BackendGemini:
		return geminibackend.New(ctx, cfg.APIKey, cfg.Model)
	case config.BackendAnthropic:
		return anthropicbackend.New(cfg.APIKey, cfg.Model)
	default:
		return stub.New(), nil
	}
}
