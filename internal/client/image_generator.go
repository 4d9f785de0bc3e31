package client

import (
	"context"
	"errors"
	"strings"

	"review-studio/internal/domain"
)

const (
	msgImagesNeedInput   = "Please provide an article title, product name or keyword"
	msgImagesNoneCreated = "No images were generated. Please try again."
	msgImagesRateLimited = "Rate limit exceeded. Please wait a moment and try again."
	msgImagesPayment     = "AI credits exhausted. Please add credits to continue."
	msgImagesFallback    = "Failed to generate images"
)

// ImageRequest parameters for the image generation function.
type ImageRequest struct {
	ArticleTitle string `json:"articleTitle"`
	ProductName  string `json:"productName"`
	Keyword      string `json:"keyword"`
	ImageCount   int    `json:"imageCount"`
	ImageType    string `json:"imageType"`
}

type generateImagesResponse struct {
	Images []domain.GeneratedImage `json:"images"`
}

// ImageGenerator requests AI article images. Failed calls still carry an
// empty, non-nil list.
type ImageGenerator struct {
	functions Functions
	state     tracker[[]domain.GeneratedImage]
}

func NewImageGenerator(functions Functions) *ImageGenerator {
	return &ImageGenerator{functions: functions}
}

// Generate needs at least one of ArticleTitle, ProductName and Keyword.
func (g *ImageGenerator) Generate(ctx context.Context, req ImageRequest) Outcome[[]domain.GeneratedImage] {
	if strings.TrimSpace(req.ArticleTitle) == "" && strings.TrimSpace(req.ProductName) == "" && strings.TrimSpace(req.Keyword) == "" {
		g.state.settle([]domain.GeneratedImage{}, msgImagesNeedInput)
		return failed(KindValidation, msgImagesNeedInput, []domain.GeneratedImage{})
	}

	token := g.state.begin()

	var resp generateImagesResponse
	if err := g.functions.Invoke(ctx, FunctionGenerateImages, req, &resp); err != nil {
		kind, msg := ClassifyImageError(err)
		g.state.fail(token, msg)
		return failed(kind, msg, []domain.GeneratedImage{})
	}

	if len(resp.Images) == 0 {
		images := []domain.GeneratedImage{}
		g.state.succeed(token, images)
		return Outcome[[]domain.GeneratedImage]{Status: StatusEmpty, Data: images, Message: msgImagesNoneCreated}
	}

	g.state.succeed(token, resp.Images)
	return succeeded(resp.Images)
}

// State is a snapshot of the latest request.
func (g *ImageGenerator) State() State[[]domain.GeneratedImage] {
	return g.state.snapshot()
}

// ClassifyImageError maps rate-limit and billing failures to their own
// messages. Anything else keeps its raw message.
func ClassifyImageError(err error) (Kind, string) {
	raw := err.Error()
	var remote *RemoteError
	if errors.As(err, &remote) {
		raw = remote.Message
	}

	switch {
	case strings.Contains(raw, "Rate limit"):
		return KindRateLimit, msgImagesRateLimited
	case strings.Contains(raw, "Payment required"):
		return KindPaymentRequired, msgImagesPayment
	case raw == "":
		return KindRemote, msgImagesFallback
	default:
		return KindRemote, raw
	}
}
