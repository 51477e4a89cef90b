// Package metrics collects Prometheus metrics for the site and serves them
// for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsroom"

// Recorder is the subset of metrics that handlers report.
type Recorder interface {
	RecordNewsCreated()
	RecordNewsViewed()
	RecordMailSent()
	RecordMailFailed()
}

type Collector struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	newsCreated  prometheus.Counter
	newsViews    prometheus.Counter
	mailSent     prometheus.Counter
	mailFailures prometheus.Counter
}

// NewCollector creates the metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		newsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_created_total",
			Help:      "News items created through the site.",
		}),
		newsViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_views_total",
			Help:      "News detail pages served.",
		}),
		mailSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_sent_total",
			Help:      "Contact emails accepted by the mail relay.",
		}),
		mailFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mail_failed_total",
			Help:      "Contact emails that could not be sent.",
		}),
	}

	reg.MustRegister(c.requests, c.duration, c.newsCreated, c.newsViews, c.mailSent, c.mailFailures)
	return c
}

func (c *Collector) RecordNewsCreated() { c.newsCreated.Inc() }
func (c *Collector) RecordNewsViewed()  { c.newsViews.Inc() }
func (c *Collector) RecordMailSent()    { c.mailSent.Inc() }
func (c *Collector) RecordMailFailed()  { c.mailFailures.Inc() }

// RecordRequest counts one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Middleware records every request under its route pattern, so /news/1/ and
// /news/2/ share a series. Unmatched paths are grouped as "unmatched".
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		c.RecordRequest(ctx.Request.Method, route, ctx.Writer.Status(), time.Since(start))
	}
}

// Handler serves the metrics in gatherer for Prometheus scraping.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used where metrics are not wired, as in tests.
type Nop struct{}

func (Nop) RecordNewsCreated() {}
func (Nop) RecordNewsViewed()  {}
func (Nop) RecordMailSent()    {}
func (Nop) RecordMailFailed()  {}
