package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"review-studio/internal/domain"
	"review-studio/internal/middleware"
	"review-studio/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AcquisitionIDHeader carries the run ID of an acquisition back to the caller
const AcquisitionIDHeader = "X-Acquisition-ID"

const invalidBodyMessage = "Invalid JSON body"

// AcquireImagesRequest represents the image acquisition request payload
type AcquireImagesRequest struct {
	ImageURLs   []string `json:"imageUrls" validate:"required,min=1"`
	ProductName string   `json:"productName"`
	UserID      string   `json:"userId" validate:"required"`
}

// AcquireImagesResponse represents the image acquisition response
type AcquireImagesResponse struct {
	Success         bool                       `json:"success"`
	Images          []domain.StoredImageResult `json:"images"`
	TotalRequested  int                        `json:"totalRequested"`
	TotalDownloaded int                        `json:"totalDownloaded"`
}

// BadRequestError is a request the caller has to fix.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// DecodeAcquireRequest parses and validates an acquisition payload. Every
// failure is a *BadRequestError.
func DecodeAcquireRequest(body io.Reader) (service.AcquireRequest, error) {
	var req AcquireImagesRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && strings.HasPrefix(typeErr.Field, "imageUrls") {
			return service.AcquireRequest{}, &BadRequestError{Message: service.ErrNoImageURLs.Error()}
		}
		return service.AcquireRequest{}, &BadRequestError{Message: invalidBodyMessage}
	}

	if err := middleware.ValidateRequest(&req); err != nil {
		for _, ve := range middleware.FormatValidationErrors(err) {
			switch ve.Field {
			case "imageUrls":
				return service.AcquireRequest{}, &BadRequestError{Message: service.ErrNoImageURLs.Error()}
			case "userId":
				return service.AcquireRequest{}, &BadRequestError{Message: service.ErrMissingUserID.Error()}
			}
		}
		return service.AcquireRequest{}, &BadRequestError{Message: middleware.FirstValidationMessage(err)}
	}

	return service.AcquireRequest{
		ImageURLs:   req.ImageURLs,
		ProductName: req.ProductName,
		UserID:      req.UserID,
	}, nil
}

// IsBadRequest reports whether err should surface as a 400.
func IsBadRequest(err error) bool {
	var bad *BadRequestError
	return errors.As(err, &bad) ||
		errors.Is(err, service.ErrNoImageURLs) ||
		errors.Is(err, service.ErrMissingUserID)
}

// ImageHandler handles HTTP requests for the image acquisition function
type ImageHandler struct {
	acquisition service.AcquisitionService
	logger      *zap.Logger
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(acquisition service.AcquisitionService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		acquisition: acquisition,
		logger:      logger,
	}
}

// RegisterRoutes registers the image acquisition routes
func (h *ImageHandler) RegisterRoutes(r chi.Router) {
	r.Route("/images", func(r chi.Router) {
		r.Options("/acquire", Preflight)
		r.Post("/acquire", h.AcquireImages)
	})

	// Function-name route used by the client wrappers
	r.Options("/download-product-images", Preflight)
	r.Post("/download-product-images", h.AcquireImages)
}

// AcquireImages handles POST /api/images/acquire
func (h *ImageHandler) AcquireImages(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w.Header())

	req, err := DecodeAcquireRequest(r.Body)
	if err != nil {
		h.logger.Debug("Acquisition request rejected", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.acquisition.AcquireImages(r.Context(), req)
	if err != nil {
		if IsBadRequest(err) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Image acquisition failed", zap.Error(err), zap.String("user_id", req.UserID))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(AcquisitionIDHeader, result.RunID)
	middleware.RespondWithJSON(w, http.StatusOK, NewAcquireImagesResponse(result))
}

// NewAcquireImagesResponse shapes a pipeline result for the wire
func NewAcquireImagesResponse(result *service.AcquireResult) AcquireImagesResponse {
	images := result.Images
	if images == nil {
		images = []domain.StoredImageResult{}
	}
	return AcquireImagesResponse{
		Success:         true,
		Images:          images,
		TotalRequested:  result.TotalRequested,
		TotalDownloaded: result.TotalDownloaded,
	}
}

// Preflight answers OPTIONS with the CORS headers and an empty body
func Preflight(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w.Header())
	w.WriteHeader(http.StatusOK)
}
