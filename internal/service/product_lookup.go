package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"review-studio/internal/domain"
	"review-studio/internal/fetch"
	"review-studio/internal/marketplace"
	"review-studio/internal/monitoring"
	"review-studio/internal/scrape"

	"go.uber.org/zap"
)

var ErrInvalidProductURL = errors.New("please enter a valid Amazon product URL")

// PageFetcher downloads an HTML page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*fetch.Result, error)
}

// ProductLookupService defines the interface for product page lookups
type ProductLookupService interface {
	Lookup(ctx context.Context, url string) (*domain.Product, error)
}

type productLookupService struct {
	fetcher PageFetcher
	metrics *monitoring.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewProductLookupService creates a new instance of ProductLookupService
func NewProductLookupService(fetcher PageFetcher, metrics *monitoring.Metrics, logger *zap.Logger) ProductLookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productLookupService{
		fetcher: fetcher,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Lookup fetches and parses a marketplace product page
func (s *productLookupService) Lookup(ctx context.Context, url string) (*domain.Product, error) {
	asin, ok := marketplace.ExtractASIN(url)
	if !ok {
		s.metrics.IncLookup("invalid")
		return nil, ErrInvalidProductURL
	}

	page, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		s.metrics.IncLookup("fetch_failed")
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}

	product, err := scrape.ParseProductPage(page.Body)
	if err != nil {
		if errors.Is(err, scrape.ErrBotChallenge) {
			s.metrics.IncLookup("bot_challenge")
			s.logger.Warn("Bot challenge on product page", zap.String("asin", asin))
		} else {
			s.metrics.IncLookup("parse_failed")
		}
		return nil, err
	}

	product.URL = url
	product.ASIN = asin
	product.FetchedAt = s.now().UTC()
	s.metrics.IncLookup("ok")

	s.logger.Info("Product page parsed",
		zap.String("asin", asin),
		zap.Int("images", len(product.ImageURLs)),
	)
	return product, nil
}
