package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TasksTagged    *prometheus.CounterVec
	EncodeSeconds  prometheus.Histogram
	ActiveWorkers  prometheus.Gauge
	APIRequests    *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TasksTagged: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geohash_tasks_tagged_total",
			Help: "Total number of tasks processed by the geohash tagger.",
		}, []string{"status"}),
		EncodeSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "geohash_encode_duration_seconds",
			Help:    "Duration of geohash encoding for a single task.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "geohash_active_workers",
			Help: "Current number of active workers tagging tasks.",
		}),
		APIRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "geohash_api_requests_total",
			Help: "Total number of geohash API requests by route and status code.",
		}, []string{"route", "code"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geohash_api_request_duration_seconds",
			Help:    "Duration of geohash API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
