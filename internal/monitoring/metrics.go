package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure stages recorded by the acquisition pipeline.
const (
	StageFetch  = "fetch"
	StageUpload = "upload"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ImagesRequested     prometheus.Counter
	ImagesStored        prometheus.Counter
	ImageFailures       *prometheus.CounterVec
	ProductLookups      *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ImagesRequested: factory.NewCounter(prometheus.CounterOpts{
			Name: "studio_images_requested_total",
			Help: "Image URLs accepted for acquisition after the per-request cap",
		}),
		ImagesStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "studio_images_stored_total",
			Help: "Images downloaded and uploaded to object storage",
		}),
		ImageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_image_failures_total",
			Help: "Images skipped by the acquisition pipeline",
		}, []string{"stage"}),
		ProductLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "studio_product_lookups_total",
			Help: "Product page lookups by result",
		}, []string{"result"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) AddRequested(n int) {
	if m == nil {
		return
	}
	m.ImagesRequested.Add(float64(n))
}

func (m *Metrics) IncStored() {
	if m == nil {
		return
	}
	m.ImagesStored.Inc()
}

func (m *Metrics) IncFailure(stage string) {
	if m == nil {
		return
	}
	m.ImageFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) IncLookup(result string) {
	if m == nil {
		return
	}
	m.ProductLookups.WithLabelValues(result).Inc()
}
