package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provideo_http_requests_total",
		Help: "Total number of HTTP requests by route pattern and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "provideo_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	registrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provideo_registrations_total",
		Help: "Total number of registered catalog entities",
	}, []string{"kind"})

	viewEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provideo_view_events_total",
		Help: "Total number of recorded video views",
	}, []string{"bot"})

	cacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "provideo_video_cache_lookups_total",
		Help: "Video detail cache lookups by result",
	}, []string{"result"})

	aggregationDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "provideo_view_aggregation_duration_seconds",
		Help:    "Duration of view count aggregation runs in seconds",
		Buckets: prometheus.DefBuckets,
	})

	aggregationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "provideo_view_aggregation_errors_total",
		Help: "Total number of failed view count aggregation runs",
	})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(registrationsTotal)
	prometheus.MustRegister(viewEventsTotal)
	prometheus.MustRegister(cacheLookupsTotal)
	prometheus.MustRegister(aggregationDurationSeconds)
	prometheus.MustRegister(aggregationErrorsTotal)
}

const (
	KindVideo   = "video"
	KindCreator = "model"
)

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func IncRegistration(kind string) {
	registrationsTotal.WithLabelValues(kind).Inc()
}

func IncViewEvent(bot bool) {
	viewEventsTotal.WithLabelValues(strconv.FormatBool(bot)).Inc()
}

func IncCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

// ObserveAggregation records one aggregator run. A non-nil err counts as a failed run.
func ObserveAggregation(elapsed time.Duration, err error) {
	aggregationDurationSeconds.Observe(elapsed.Seconds())
	if err != nil {
		aggregationErrorsTotal.Inc()
	}
}
