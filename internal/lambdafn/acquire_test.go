package lambdafn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"review-studio/internal/domain"
	"review-studio/internal/service"

	"github.com/aws/aws-lambda-go/events"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

type stubAcquisition struct {
	calls int
	err   error
}

func (s *stubAcquisition) AcquireImages(ctx context.Context, req service.AcquireRequest) (*service.AcquireResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	images := make([]domain.StoredImageResult, 0, len(req.ImageURLs))
	for _, u := range req.ImageURLs {
		images = append(images, domain.StoredImageResult{OriginalURL: u, StoragePath: req.UserID + "/x.jpg"})
	}
	return &service.AcquireResult{
		RunID:           "run-7",
		Images:          images,
		TotalRequested:  len(req.ImageURLs),
		TotalDownloaded: len(images),
	}, nil
}

func TestHandle_Success(t *testing.T) {
	h := NewAcquireHandler(&stubAcquisition{}, nil)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"imageUrls":["https://img.test/a.jpg"],"productName":"Wireless Mouse","userId":"u1"}`,
	})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, resp.Body)
	}
	if resp.Headers["Access-Control-Allow-Origin"] != "*" || resp.Headers["X-Acquisition-ID"] != "run-7" {
		t.Errorf("unexpected headers %v", resp.Headers)
	}

	var body struct {
		Success         bool `json:"success"`
		TotalRequested  int  `json:"totalRequested"`
		TotalDownloaded int  `json:"totalDownloaded"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !body.Success || body.TotalRequested != 1 || body.TotalDownloaded != 1 {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestHandle_Options(t *testing.T) {
	stub := &stubAcquisition{}
	resp, _ := NewAcquireHandler(stub, nil).Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions})

	if resp.StatusCode != http.StatusOK || resp.Body != "" {
		t.Errorf("unexpected preflight %+v", resp)
	}
	if resp.Headers["Access-Control-Allow-Headers"] != "authorization, x-client-info, apikey, content-type" {
		t.Errorf("allow-headers = %q", resp.Headers["Access-Control-Allow-Headers"])
	}
	if stub.calls != 0 {
		t.Error("preflight reached the pipeline")
	}
}

func TestHandle_FatalError(t *testing.T) {
	h := NewAcquireHandler(&stubAcquisition{err: errors.New("bucket missing")}, nil)
	resp, _ := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Body:       `{"imageUrls":["https://img.test/a.jpg"],"userId":"u1"}`,
	})

	if resp.StatusCode != http.StatusInternalServerError || resp.Body != `{"error":"bucket missing"}` {
		t.Errorf("unexpected response %d %s", resp.StatusCode, resp.Body)
	}
}

// Feature: review-studio, Property 13: Invalid payloads are 400s that never run the pipeline
func TestProperty_HandleRejectsInvalidPayloads(t *testing.T) {
	properties := gopter.NewProperties(nil)

	bodies := []string{
		``,
		`not json`,
		`{}`,
		`{"imageUrls":[]}`,
		`{"imageUrls":{"a":1},"userId":"u1"}`,
		`{"imageUrls":["https://img.test/a.jpg"]}`,
		`{"imageUrls":["https://img.test/a.jpg"],"userId":""}`,
	}

	properties.Property("bad bodies are rejected before acquisition", prop.ForAll(
		func(i int) bool {
			stub := &stubAcquisition{}
			resp, err := NewAcquireHandler(stub, nil).Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodPost,
				Body:       bodies[i],
			})
			if err != nil {
				return false
			}

			var body map[string]string
			if json.Unmarshal([]byte(resp.Body), &body) != nil {
				return false
			}
			return resp.StatusCode == http.StatusBadRequest && body["error"] != "" && stub.calls == 0
		},
		gen.IntRange(0, len(bodies)-1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
