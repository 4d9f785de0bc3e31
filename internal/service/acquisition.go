package service

import (
	"context"
	"errors"
	"fmt"

	"review-studio/internal/domain"
	"review-studio/internal/fetch"
	"review-studio/internal/marketplace"
	"review-studio/internal/monitoring"
	"review-studio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxImagesPerRequest is how many source URLs a single acquisition processes.
const MaxImagesPerRequest = 6

var (
	ErrNoImageURLs   = errors.New("imageUrls must be a non-empty array")
	ErrMissingUserID = errors.New("userId is required")
	ErrNoStore       = errors.New("image store is not configured")
)

// ImageFetcher downloads a single image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (*fetch.Result, error)
}

// AcquireRequest is one acquisition invocation.
type AcquireRequest struct {
	ImageURLs   []string
	ProductName string
	UserID      string
}

// AcquireResult reports what was stored. TotalRequested counts every URL the
// caller sent, including the ones past the cap.
type AcquireResult struct {
	RunID           string
	Images          []domain.StoredImageResult
	TotalRequested  int
	TotalDownloaded int
}

// AcquisitionService defines the interface for the image acquisition pipeline
type AcquisitionService interface {
	AcquireImages(ctx context.Context, req AcquireRequest) (*AcquireResult, error)
}

type acquisitionService struct {
	fetcher   ImageFetcher
	store     repository.ImageRepository
	namer     *marketplace.Namer
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	maxImages int
	newRunID  func() string
}

// AcquisitionOption customizes the service.
type AcquisitionOption func(*acquisitionService)

// WithNamer overrides the filename clock.
func WithNamer(n *marketplace.Namer) AcquisitionOption {
	return func(s *acquisitionService) { s.namer = n }
}

// WithMetrics records pipeline counters.
func WithMetrics(m *monitoring.Metrics) AcquisitionOption {
	return func(s *acquisitionService) { s.metrics = m }
}

// WithMaxImages lowers the per-request cap. Values outside 1..6 are ignored.
func WithMaxImages(n int) AcquisitionOption {
	return func(s *acquisitionService) {
		if n > 0 && n <= MaxImagesPerRequest {
			s.maxImages = n
		}
	}
}

// NewAcquisitionService creates a new instance of AcquisitionService
func NewAcquisitionService(
	fetcher ImageFetcher,
	store repository.ImageRepository,
	logger *zap.Logger,
	opts ...AcquisitionOption,
) AcquisitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &acquisitionService{
		fetcher:   fetcher,
		store:     store,
		namer:     marketplace.NewNamer(),
		logger:    logger,
		maxImages: MaxImagesPerRequest,
		newRunID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AcquireImages downloads up to the cap of images one at a time, re-uploads
// them under {userId}/{seoFilename} and returns the ones that made it. A failed
// image is logged and skipped; only validation, a missing store or a cancelled
// context fail the whole call.
func (s *acquisitionService) AcquireImages(ctx context.Context, req AcquireRequest) (*AcquireResult, error) {
	if len(req.ImageURLs) == 0 {
		return nil, ErrNoImageURLs
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}
	if s.store == nil || s.fetcher == nil {
		return nil, ErrNoStore
	}

	runID := s.newRunID()
	log := s.logger.With(
		zap.String("run_id", runID),
		zap.String("user_id", req.UserID),
	)

	sources := req.ImageURLs
	if len(sources) > s.maxImages {
		sources = sources[:s.maxImages]
	}
	s.metrics.AddRequested(len(sources))

	log.Info("Starting image acquisition",
		zap.Int("requested", len(req.ImageURLs)),
		zap.Int("processing", len(sources)),
	)

	images := make([]domain.StoredImageResult, 0, len(sources))
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("acquisition cancelled: %w", err)
		}

		stored, err := s.acquireOne(ctx, source, req, i)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("acquisition cancelled: %w", ctxErr)
			}
			log.Warn("Skipping image",
				zap.Int("index", i),
				zap.String("url", source),
				zap.Error(err),
			)
			continue
		}
		s.metrics.IncStored()
		images = append(images, *stored)
	}

	log.Info("Image acquisition finished", zap.Int("stored", len(images)))

	return &AcquireResult{
		RunID:           runID,
		Images:          images,
		TotalRequested:  len(req.ImageURLs),
		TotalDownloaded: len(images),
	}, nil
}

func (s *acquisitionService) acquireOne(ctx context.Context, source string, req AcquireRequest, index int) (*domain.StoredImageResult, error) {
	highRes := marketplace.HighResImageURL(source)

	res, err := s.fetcher.FetchImage(ctx, highRes)
	if err != nil {
		s.metrics.IncFailure(monitoring.StageFetch)
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	contentType := res.ContentType
	if contentType == "" {
		contentType = fetch.DefaultContentType
	}

	filename := s.namer.GenerateFilename(req.ProductName, index)
	path := req.UserID + "/" + filename
	if err := s.store.Upload(ctx, path, res.Body, contentType); err != nil {
		s.metrics.IncFailure(monitoring.StageUpload)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &domain.StoredImageResult{
		OriginalURL: source,
		HighResURL:  highRes,
		StoragePath: path,
		PublicURL:   s.store.PublicURL(path),
		SEOFilename: filename,
		AltText:     marketplace.AltText(req.ProductName, index),
	}, nil
}
