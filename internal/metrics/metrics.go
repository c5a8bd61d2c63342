// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by services and middleware.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordAuthFailure(reason string)
	RecordFollowOp(op, result string)
	RecordTimelineCache(hit bool)
}

// Collector records metrics into a Prometheus registry.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	authFailures  *prometheus.CounterVec
	followOps     *prometheus.CounterVec
	timelineCache *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minitweet_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minitweet_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minitweet_auth_failures_total",
			Help: "Rejected logins and protected requests.",
		}, []string{"reason"}),
		followOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minitweet_follow_operations_total",
			Help: "Follow and unfollow attempts by outcome.",
		}, []string{"op", "result"}),
		timelineCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "minitweet_timeline_cache_total",
			Help: "Timeline cache lookups by outcome.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.authFailures,
		c.followOps,
		c.timelineCache,
	)

	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordFollowOp(op, result string) {
	c.followOps.WithLabelValues(op, result).Inc()
}

func (c *Collector) RecordTimelineCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.timelineCache.WithLabelValues(result).Inc()
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where no registry is wired.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthFailure(string)                             {}
func (Nop) RecordFollowOp(string, string)                        {}
func (Nop) RecordTimelineCache(bool)                             {}
