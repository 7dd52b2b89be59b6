// Package apiserver assembles the JSON API router and HTTP server
package apiserver

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mealwise/core/internal/infrastructure/config"
	"github.com/mealwise/core/internal/infrastructure/http/handlers"
	"github.com/mealwise/core/internal/infrastructure/http/middleware"
	"github.com/mealwise/core/internal/infrastructure/monitoring"
	"github.com/mealwise/core/internal/infrastructure/security"
	"github.com/mealwise/core/internal/ports/inbound"
	"github.com/mealwise/core/pkg/errors"
	"github.com/mealwise/core/pkg/healthcheck"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// compressibleTypes are the response types worth compressing
var compressibleTypes = []string{"application/json", "text/plain"}

// Server represents the JSON API HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   chi.Router
	limiter  *middleware.RateLimiter
	catalog  inbound.CatalogService
	profiles inbound.ProfileService
	verifier *security.TokenVerifier
	metrics  *monitoring.Metrics
	ready    *healthcheck.HealthCheck
}

// NewServer creates a new API server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	catalog inbound.CatalogService,
	profiles inbound.ProfileService,
	verifier *security.TokenVerifier,
	metrics *monitoring.Metrics,
	ready *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger.Named("http"),
		catalog:  catalog,
		profiles: profiles,
		verifier: verifier,
		metrics:  metrics,
		ready:    ready,
	}
	if cfg.RateLimit.Enable {
		s.limiter = middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.BurstSize,
			cfg.RateLimit.CleanupInterval,
		)
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: otelhttp.NewHandler(s.router, "mealwise-api",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRoutes configures the middleware chain and routes
func (s *Server) setupRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, "/health", "/ready", s.config.Monitoring.MetricsPath))
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins, s.config.IsDevelopment()))
	}
	if s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics(s.metrics))
	}
	if s.limiter != nil {
		r.Use(s.limiter.Handler())
	}
	if s.config.Server.EnableCompression {
		compressor := chimiddleware.NewCompressor(5, compressibleTypes...)
		compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
			return brotli.NewWriterLevel(w, level)
		})
		r.Use(compressor.Handler)
	}
	r.Use(middleware.MaxBodySize(s.config.Server.MaxBodyBytes))
	r.Use(middleware.JSONOnly())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, errors.NewNotFoundError("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, errors.NewAppError(errors.CodeMethodNotAllowed, "Method not allowed", ""))
	})

	r.Get("/health", handlers.Health(s.config.App.Name, s.config.App.Version, s.catalog))
	if s.ready != nil {
		r.Get("/ready", s.ready.ReadinessHandler())
	}
	if s.config.Monitoring.EnableMetrics {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *Server) setupAPIV1Routes(r chi.Router) {
	catalogH := handlers.NewCatalogHandlers(s.catalog, s.logger)
	profileH := handlers.NewProfileHandlers(s.profiles, s.logger)
	adminH := handlers.NewAdminHandlers(s.catalog, s.logger)
	authenticate := middleware.Authenticate(s.verifier, s.logger)

	// Recipe routes are public
	r.Route("/recipes", func(r chi.Router) {
		r.Get("/", catalogH.Search)
		r.Get("/meals", catalogH.MainMeals)
		r.Get("/snacks", catalogH.Snacks)
		r.Get("/{id}", catalogH.Get)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", profileH.Get)
		r.Patch("/", profileH.Update)
		r.Delete("/", profileH.Reset)
		r.Get("/defaults", profileH.Defaults)
		r.Get("/targets", profileH.Targets)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRole(s.config.Auth.AdminRole))
		r.Post("/catalog/reload", adminH.ReloadCatalog)
	})
}

// Handler returns the router without the tracing wrapper
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Serve accepts connections on ln until Shutdown is called
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting JSON API server", zap.String("address", ln.Addr().String()))
	return s.server.Serve(ln)
}

// Start listens on the configured address and serves
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down JSON API server")
	if s.limiter != nil {
		s.limiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
