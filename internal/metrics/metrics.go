// Package metrics exposes Prometheus collectors for the HTTP layer and for
// domain events such as logged metric values.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vitalog"

// Collector owns a private registry so that several apps (tests included)
// can live in one process.
type Collector struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	metricLogs   *prometheus.CounterVec
	goalsCreated *prometheus.CounterVec
	authEvents   *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
	tokensPurged prometheus.Counter
}

func NewCollector() *Collector {
	collector := &Collector{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
		metricLogs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "metric_logs_total",
			Help:      "Total number of metric values logged.",
		}, []string{"metric"}),
		goalsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracking",
			Name:      "goals_created_total",
			Help:      "Total number of unified goals created.",
		}, []string{"type", "period"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Authentication events by outcome.",
		}, []string{"event", "outcome"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter.",
		}, []string{"limiter"}),
		tokensPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "revoked_tokens_purged_total",
			Help:      "Expired revoked tokens removed by maintenance.",
		}),
	}

	collector.registry.MustRegister(
		collector.httpInFlight,
		collector.httpRequests,
		collector.httpDuration,
		collector.metricLogs,
		collector.goalsCreated,
		collector.authEvents,
		collector.rateLimited,
		collector.tokensPurged,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
	return collector
}

func (collector *Collector) Registry() *prometheus.Registry {
	return collector.registry
}

// Handler serves the registry in the Prometheus text format.
func (collector *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(collector.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency labelled by the matched
// route pattern, so path parameters do not explode label cardinality.
func (collector *Collector) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		collector.httpInFlight.Inc()
		defer collector.httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		method := strings.ToUpper(c.Method())
		route := routeLabel(c)
		collector.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		collector.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

func (collector *Collector) RecordMetricLog(metric string) {
	collector.metricLogs.WithLabelValues(metric).Inc()
}

func (collector *Collector) RecordGoalCreated(goalType string, period string) {
	collector.goalsCreated.WithLabelValues(goalType, period).Inc()
}

func (collector *Collector) RecordAuthEvent(event string, outcome string) {
	collector.authEvents.WithLabelValues(event, outcome).Inc()
}

func (collector *Collector) RecordRateLimited(limiter string) {
	collector.rateLimited.WithLabelValues(limiter).Inc()
}

func (collector *Collector) RecordTokensPurged(count int64) {
	if count <= 0 {
		return
	}
	collector.tokensPurged.Add(float64(count))
}

func routeLabel(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Path == "" || (route.Path == "/" && c.Path() != "/") {
		return "unmatched"
	}
	return route.Path
}
