package client

import (
	"context"

	"review-studio/internal/domain"
)

const (
	msgAcquireNeedsImages = "imageUrls must be a non-empty array"
	msgAcquireNeedsUser   = "userId is required"
	msgAcquireFallback    = "Failed to download product images"
)

type acquireRequest struct {
	ImageURLs   []string `json:"imageUrls"`
	ProductName string   `json:"productName,omitempty"`
	UserID      string   `json:"userId"`
}

// AcquiredImages is the download-product-images result.
type AcquiredImages struct {
	Images          []domain.StoredImageResult `json:"images"`
	TotalRequested  int                        `json:"totalRequested"`
	TotalDownloaded int                        `json:"totalDownloaded"`
}

// ImageAcquirer copies product images into the studio bucket through the
// download-product-images function.
type ImageAcquirer struct {
	functions Functions
	state     tracker[*AcquiredImages]
}

func NewImageAcquirer(functions Functions) *ImageAcquirer {
	return &ImageAcquirer{functions: functions}
}

// Acquire mirrors the function's own request validation so bad input never
// leaves the process.
func (a *ImageAcquirer) Acquire(ctx context.Context, imageURLs []string, productName, userID string) Outcome[*AcquiredImages] {
	if len(imageURLs) == 0 {
		a.state.settle(nil, msgAcquireNeedsImages)
		return failed[*AcquiredImages](KindValidation, msgAcquireNeedsImages, nil)
	}
	if userID == "" {
		a.state.settle(nil, msgAcquireNeedsUser)
		return failed[*AcquiredImages](KindValidation, msgAcquireNeedsUser, nil)
	}

	token := a.state.begin()

	var resp AcquiredImages
	err := a.functions.Invoke(ctx, FunctionDownloadProductImages, acquireRequest{
		ImageURLs:   imageURLs,
		ProductName: productName,
		UserID:      userID,
	}, &resp)
	if err != nil {
		msg := remoteMessage(err, msgAcquireFallback)
		a.state.fail(token, msg)
		return failed[*AcquiredImages](KindRemote, msg, nil)
	}
	if resp.Images == nil {
		resp.Images = []domain.StoredImageResult{}
	}

	a.state.succeed(token, &resp)
	if resp.TotalDownloaded == 0 {
		return Outcome[*AcquiredImages]{Status: StatusEmpty, Data: &resp, Message: "No images could be downloaded"}
	}
	return succeeded(&resp)
}

// State is a snapshot of the latest request.
func (a *ImageAcquirer) State() State[*AcquiredImages] {
	return a.state.snapshot()
}
