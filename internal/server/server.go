package server

import (
	"fmt"
	"net/http"
	"time"

	"review-studio/internal/config"
	custommiddleware "review-studio/internal/middleware"
	"review-studio/internal/monitoring"
	"review-studio/internal/service"
	"review-studio/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the wired services the HTTP surface exposes.
type Dependencies struct {
	Acquisition service.AcquisitionService
	Lookup      service.ProductLookupService
	Metrics     *monitoring.Metrics
	Gatherer    prometheus.Gatherer
	Redis       *redis.Client // nil disables rate limiting
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewRouter builds the chi router for the function endpoints
func NewRouter(cfg *config.Config, logger *zap.Logger, deps Dependencies) http.Handler {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	if deps.Metrics != nil {
		router.Use(custommiddleware.MetricsMiddleware(deps.Metrics))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	router.Route("/api", func(r chi.Router) {
		r.Use(custommiddleware.CORSMiddleware(nil))
		if deps.Redis != nil {
			r.Use(custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
				RequestsPerWindow: cfg.RateLimit.Requests,
				Window:            cfg.RateLimit.Window(),
				KeyPrefix:         "studio_rate_limit",
			}, logger))
		}

		if deps.Acquisition != nil {
			transport.NewImageHandler(deps.Acquisition, logger).RegisterRoutes(r)
		}
		if deps.Lookup != nil {
			transport.NewProductHandler(deps.Lookup, logger).RegisterRoutes(r)
		}
	})

	return router
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:        fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:     NewRouter(cfg, logger, deps),
			IdleTimeout: time.Minute,
			ReadTimeout: 10 * time.Second,
			// Six sequential downloads and uploads have to fit in one response.
			WriteTimeout: 3 * time.Minute,
		},
		config: cfg,
		logger: logger,
		redis:  deps.Redis,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
