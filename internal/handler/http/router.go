package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/brandcatalog/internal/service"
	"github.com/utafrali/brandcatalog/pkg/health"
	"github.com/utafrali/brandcatalog/pkg/middleware"
)

// RouterConfig holds the cross-cutting settings of the HTTP router.
type RouterConfig struct {
	ServiceName       string
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
	// Registry receives the HTTP collectors and backs /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry
}

// NewRouter creates a chi router with all brand service routes registered.
func NewRouter(
	brandService *service.BrandService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewHTTPMetrics(cfg.Registry, cfg.ServiceName)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.Middleware)

	// Health check and observability endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry}))
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	// Brand API endpoints
	brandHandler := NewBrandHandler(brandService, logger)

	r.Route("/api/brands", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(chimw.Compress(5, "application/json"))

		r.Get("/", brandHandler.ListBrands)
		r.Post("/", brandHandler.CreateBrand)
		r.Get("/{id:-?[0-9]+}", brandHandler.GetBrand)
		r.Put("/{id:-?[0-9]+}", brandHandler.UpdateBrand)
		r.Delete("/{id:-?[0-9]+}", brandHandler.DeleteBrand)
	})

	return r
}
