package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Conversions    *prometheus.CounterVec
	LookupErrors   prometheus.Counter
	RequestSeconds *prometheus.HistogramVec
	BatchPoints    prometheus.Histogram
	ActiveWorkers  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_conversions_total",
			Help: "Total number of coordinate conversions, by CRS and operation.",
		}, []string{"crs", "operation"}),
		LookupErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_crs_lookup_errors_total",
			Help: "Total number of requests naming an unknown CRS.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_request_duration_seconds",
			Help:    "Duration of API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		BatchPoints: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "meridian_batch_points",
			Help:    "Number of points per projected batch.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_active_workers",
			Help: "Current number of workers projecting batch chunks.",
		}),
	}
}
