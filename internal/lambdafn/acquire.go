// Package lambdafn exposes the image acquisition pipeline as an API Gateway
// proxy function.
package lambdafn

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"review-studio/internal/middleware"
	"review-studio/internal/service"
	"review-studio/internal/transport"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// AcquireHandler serves download-product-images on Lambda.
type AcquireHandler struct {
	acquisition service.AcquisitionService
	logger      *zap.Logger
}

func NewAcquireHandler(acquisition service.AcquisitionService, logger *zap.Logger) *AcquireHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcquireHandler{acquisition: acquisition, logger: logger}
}

// Handle follows the same contract as POST /api/images/acquire. Errors are
// always reported in the response, never returned to the runtime.
func (h *AcquireHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return response(http.StatusOK, ""), nil
	}

	req, err := transport.DecodeAcquireRequest(strings.NewReader(request.Body))
	if err != nil {
		return errorResponse(http.StatusBadRequest, err.Error()), nil
	}

	result, err := h.acquisition.AcquireImages(ctx, req)
	if err != nil {
		if transport.IsBadRequest(err) {
			return errorResponse(http.StatusBadRequest, err.Error()), nil
		}
		h.logger.Error("Image acquisition failed",
			zap.Error(err),
			zap.String("request_id", request.RequestContext.RequestID),
		)
		return errorResponse(http.StatusInternalServerError, err.Error()), nil
	}

	body, err := json.Marshal(transport.NewAcquireImagesResponse(result))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "Failed to format response"), nil
	}

	resp := response(http.StatusOK, string(body))
	resp.Headers[transport.AcquisitionIDHeader] = result.RunID
	return resp, nil
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(middleware.ErrorResponse{Error: message})
	return response(status, string(body))
}

func response(status int, body string) events.APIGatewayProxyResponse {
	headers := middleware.CORSHeaders()
	if body != "" {
		headers["Content-Type"] = "application/json"
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}
