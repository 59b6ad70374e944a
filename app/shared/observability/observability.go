// Package observability wires the ambient stack: structured logging, the
// prometheus registry with its HTTP surface, and the otel tracer handed to
// services.
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config controls the observability setup.
type Config struct {
	ServiceName    string
	Environment    string
	MetricsAddress string
}

// Observability bundles the logger, metrics, and tracer handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  ScoringMetrics
	Tracer   trace.Tracer

	cfg    Config
	server *http.Server
}

// Init builds the logger, prometheus registry, and tracer. The tracer comes
// from the global otel provider, so it is a noop until a SDK is installed.
func Init(cfg Config) *Observability {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewScoringMetrics(registry),
		Tracer:   otel.Tracer(cfg.ServiceName),
		cfg:      cfg,
	}
}

// StartMetricsServer serves /metrics and /healthz until the context ends.
// A blank metrics address disables the server.
func (o *Observability) StartMetricsServer(ctx context.Context) error {
	if o.cfg.MetricsAddress == "" {
		o.Logger.InfoContext(ctx, "Metrics server disabled, no address configured")
		return nil
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	o.server = &http.Server{
		Addr:              o.cfg.MetricsAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		o.Logger.InfoContext(ctx, "Metrics server listening", slog.String("address", o.cfg.MetricsAddress))
		if err := o.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return o.server.Shutdown(shutdownCtx)
	}
}
