package server

import (
	"context"
	"fmt"

	"review-studio/internal/config"
	"review-studio/internal/fetch"
	"review-studio/internal/monitoring"
	"review-studio/internal/repository"
	"review-studio/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildDependencies wires storage, fetching and metrics from configuration.
// The bucket is created when missing.
func BuildDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Dependencies, error) {
	store, err := repository.NewMinioImageRepository(cfg.Storage)
	if err != nil {
		return Dependencies{}, fmt.Errorf("failed to create image repository: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return Dependencies{}, fmt.Errorf("failed to ensure bucket: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.NewMetrics(registry)

	fetcher := fetch.New(fetch.Options{
		Timeout:  cfg.Pipeline.FetchTimeout(),
		MaxBytes: cfg.Pipeline.MaxImageBytes,
	})

	deps := Dependencies{
		Acquisition: service.NewAcquisitionService(fetcher, store, logger,
			service.WithMetrics(metrics),
			service.WithMaxImages(cfg.Pipeline.MaxImages),
		),
		Lookup:   service.NewProductLookupService(fetcher, metrics, logger),
		Metrics:  metrics,
		Gatherer: registry,
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
			client.Close()
		} else {
			deps.Redis = client
		}
	}

	return deps, nil
}
