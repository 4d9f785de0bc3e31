package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"review-studio/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrMissingBucket   = errors.New("storage bucket is not configured")
	ErrMissingEndpoint = errors.New("storage endpoint is not configured")
)

// ImageRepository defines the interface for the image object store
type ImageRepository interface {
	// Upload writes data at path, replacing any existing object.
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// PublicURL returns the address the object at path is served from.
	PublicURL(path string) string
	EnsureBucket(ctx context.Context) error
}

type minioImageRepository struct {
	client  *minio.Client
	bucket  string
	region  string
	baseURL string
}

// NewMinioImageRepository creates an ImageRepository backed by an
// S3-compatible endpoint.
func NewMinioImageRepository(cfg config.StorageConfig) (ImageRepository, error) {
	if cfg.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	if cfg.Bucket == "" {
		return nil, ErrMissingBucket
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioImageRepository{
		client:  client,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: PublicBaseURL(cfg),
	}, nil
}

// PublicBaseURL is the configured public base, or the endpoint URL when none
// is set.
func PublicBaseURL(cfg config.StorageConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + strings.TrimRight(cfg.Endpoint, "/")
}

// EnsureBucket creates the bucket if it doesn't exist
func (r *minioImageRepository) EnsureBucket(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if exists {
		return nil
	}

	if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", r.bucket, err)
	}
	return nil
}

// Upload puts the object; S3 semantics overwrite an existing key
func (r *minioImageRepository) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, r.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

func (r *minioImageRepository) PublicURL(path string) string {
	return ObjectURL(r.baseURL, r.bucket, path)
}

// ObjectURL joins base, bucket and an object path, escaping each path segment.
func ObjectURL(baseURL, bucket, path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return baseURL + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}
