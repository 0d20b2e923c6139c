package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/cooper/internal/adapters/chart"
	"github.com/okian/cooper/internal/adapters/http/web"
	service "github.com/okian/cooper/internal/app"
	"github.com/okian/cooper/internal/config"
	"github.com/okian/cooper/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	applyLogLevel(ctx, log, cfg.LogLevel)

	if os.Getenv(config.EnvConfig) != "" {
		go func() {
			err := config.Watch(ctx, log, func(c *config.Config) { applyLogLevel(ctx, log, c.LogLevel) })
			if err != nil {
				log.Warn(ctx, "config watch stopped", logger.Error(err))
			}
		}()
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithCurveSamples(cfg.ChartSamples),
	)
	renderer := chart.NewRenderer(
		chart.WithSize(cfg.ChartWidthPx, cfg.ChartHeightPx),
		chart.WithFormat(cfg.ChartFormat),
	)

	mux := http.NewServeMux()
	web.NewServer(svc, renderer, log).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("chart_format", renderer.Format()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
}

// applyLogLevel sets the level, falling back to info on invalid input.
func applyLogLevel(ctx context.Context, log logger.Logger, level string) {
	if err := logger.SetLevelString(level); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
}
