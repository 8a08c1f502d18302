// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the users service.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"
	"usersvc/internal/api/handler/v1handler"
	"usersvc/internal/config"
	"usersvc/pkg/controller"
	"usersvc/pkg/logger"

	"github.com/go-faster/jx"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// openAPISpec contains the embedded OpenAPI document of the users API.
//
//go:embed specs/openapi.yaml
var openAPISpec []byte

const healthPath = "/healthz"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// DocsPath is the HTTP path at which the Swagger UI is served.
	DocsPath string
	// SpecPath is the HTTP path at which the raw OpenAPI document is served.
	SpecPath string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		DocsPath:          cfg.HTTP.DocsPath,
		SpecPath:          cfg.HTTP.SpecPath,
	}
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	v1handler.Deps

	// Health is pinged by the health endpoint.
	Health Pinger
	// MeterProvider receives the HTTP request metrics.
	MeterProvider metric.MeterProvider
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e jx.Encoder
		status := http.StatusOK

		e.ObjStart()
		if err := p.Ping(r.Context()); err != nil {
			logger.Warn(r.Context(), "health check failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			e.FieldStart("error")
			e.Str("database unavailable")
		} else {
			e.FieldStart("status")
			e.Str("ok")
		}
		e.ObjEnd()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(e.Bytes())
	}
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI spec (SpecPath) and Swagger UI (DocsPath)
// - users API routes on a gorilla/mux router instrumented with otel metrics
// - health endpoint pinging the database
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	serveMux := http.NewServeMux()

	// prometheus metrics server
	serveMux.Handle(opts.MetricsPath, promhttp.Handler())

	// specs file
	serveMux.HandleFunc(opts.SpecPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPISpec)
	})
	// swagger playground
	serveMux.Handle(opts.DocsPath, v5emb.New(
		"User Management API",
		opts.SpecPath,
		opts.DocsPath,
	))

	// users api
	withMetrics, err := controller.WithMetrics(deps.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}
	router := mux.NewRouter()
	router.Use(withMetrics)
	v1handler.New(deps.Deps).Register(router)
	serveMux.Handle(v1handler.PathPrefix, router)
	serveMux.Handle(v1handler.PathPrefix+"/", router)

	// health
	serveMux.Handle(healthPath, healthHandler(deps.Health))

	// pprof
	serveMux.Handle(controller.PprofPath, controller.PprofMux())

	// cors
	handler := controller.WithCORS(serveMux)

	// logger
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
