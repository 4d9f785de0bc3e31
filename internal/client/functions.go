package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"review-studio/internal/config"
)

// Remote function names.
const (
	FunctionScrapeProduct         = "scrape-product"
	FunctionGenerateMetadata      = "generate-metadata"
	FunctionGenerateImages        = "generate-images"
	FunctionDownloadProductImages = "download-product-images"
)

const maxResponseBytes = 4 << 20

// Functions invokes a named remote function with a JSON payload and decodes
// the JSON data into out.
type Functions interface {
	Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error
}

// RemoteError is a structured failure reported by a remote function.
type RemoteError struct {
	Function   string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// ErrMalformedResponse means the function answered but not with the expected shape.
var ErrMalformedResponse = errors.New("malformed function response")

// HTTPFunctions calls functions at {BaseURL}/{name}.
type HTTPFunctions struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPFunctions creates an HTTPFunctions from configuration.
func NewHTTPFunctions(cfg config.FunctionsConfig, httpClient *http.Client) *HTTPFunctions {
	if httpClient == nil {
		timeout := cfg.Timeout()
		if timeout <= 0 {
			timeout = time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPFunctions{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// Invoke posts payload and decodes the response. Non-2xx responses and bodies
// carrying an "error" field become a *RemoteError.
func (f *HTTPFunctions) Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/"+name, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-info", "review-studio-go")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
		req.Header.Set("apikey", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading %s response: %w", name, err)
	}

	// Non-JSON bodies leave the envelope empty and fall through to the status check.
	var envelope errorEnvelope
	_ = json.Unmarshal(raw, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("%s returned %d %s", name, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &RemoteError{Function: name, StatusCode: resp.StatusCode, Message: msg}
	}
	if envelope.Error != "" {
		return &RemoteError{Function: name, StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w from %s: %v", ErrMalformedResponse, name, err)
	}
	return nil
}

// remoteMessage extracts the user-facing text of err, or fallback.
func remoteMessage(err error, fallback string) string {
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote.Message
	}
	return fallback
}
