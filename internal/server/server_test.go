package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"review-studio/internal/config"
	"review-studio/internal/domain"
	"review-studio/internal/monitoring"
	"review-studio/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type stubAcquisition struct{}

func (stubAcquisition) AcquireImages(ctx context.Context, req service.AcquireRequest) (*service.AcquireResult, error) {
	return &service.AcquireResult{
		RunID:           "run-1",
		Images:          []domain.StoredImageResult{},
		TotalRequested:  len(req.ImageURLs),
		TotalDownloaded: 0,
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test"},
		RateLimit: config.RateLimitConfig{Requests: 2, WindowSeconds: 60},
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)
	router := NewRouter(testConfig(), zap.NewNop(), Dependencies{
		Acquisition: stubAcquisition{},
		Metrics:     metrics,
		Gatherer:    reg,
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Errorf("metrics endpoint missing request counter: %d", w.Code)
	}
}

func TestRouter_AcquireRouteAndPreflight(t *testing.T) {
	router := NewRouter(testConfig(), zap.NewNop(), Dependencies{Acquisition: stubAcquisition{}})

	req := httptest.NewRequest(http.MethodPost, "/api/images/acquire", strings.NewReader(`{"imageUrls":["https://x.test/a.jpg"],"userId":"u1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("acquire: %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/images/acquire", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type, apikey")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight allow-origin = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_RateLimitWhenRedisConfigured(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	router := NewRouter(testConfig(), zap.NewNop(), Dependencies{Acquisition: stubAcquisition{}, Redis: rdb})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/images/acquire", strings.NewReader(`{"imageUrls":["https://x.test/a.jpg"],"userId":"u1"}`))
		req.RemoteAddr = "10.1.1.1:4000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}
}

func TestNewServer_Timeouts(t *testing.T) {
	srv := NewServer(testConfig(), zap.NewNop(), Dependencies{})
	if srv.Addr != ":0" || srv.WriteTimeout < time.Minute {
		t.Errorf("unexpected server settings addr=%s write=%v", srv.Addr, srv.WriteTimeout)
	}
	if err := srv.Close(); err != nil {
		t.Errorf("Close returned %v", err)
	}
}
