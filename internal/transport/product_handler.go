package transport

import (
	"errors"
	"net/http"

	"review-studio/internal/domain"
	"review-studio/internal/fetch"
	"review-studio/internal/middleware"
	"review-studio/internal/scrape"
	"review-studio/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LookupProductRequest represents the product lookup request payload
type LookupProductRequest struct {
	URL string `json:"url" validate:"required"`
}

// LookupProductResponse represents the product lookup response
type LookupProductResponse struct {
	Success bool            `json:"success"`
	Product *domain.Product `json:"product"`
}

// ProductHandler handles HTTP requests for the product lookup function
type ProductHandler struct {
	lookup service.ProductLookupService
	logger *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(lookup service.ProductLookupService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		lookup: lookup,
		logger: logger,
	}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Options("/lookup", Preflight)
		r.Post("/lookup", h.Lookup)
	})

	// Function-name route used by the client wrappers
	r.Options("/scrape-product", Preflight)
	r.Post("/scrape-product", h.Lookup)
}

// Lookup handles POST /api/products/lookup
func (h *ProductHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w.Header())

	var req LookupProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithError(w, http.StatusBadRequest, service.ErrInvalidProductURL.Error())
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, invalidBodyMessage)
		return
	}

	product, err := h.lookup.Lookup(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductURL):
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, scrape.ErrBotChallenge), errors.Is(err, scrape.ErrNoTitle), errors.Is(err, fetch.ErrUnexpectedStatus):
			h.logger.Warn("Product lookup failed upstream", zap.Error(err), zap.String("url", req.URL))
			middleware.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			h.logger.Error("Product lookup failed", zap.Error(err), zap.String("url", req.URL))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch product data")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, LookupProductResponse{
		Success: true,
		Product: product,
	})
}
