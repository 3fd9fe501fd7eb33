// Package metrics exposes Prometheus counters for HTTP traffic and for the
// outcome of every best-effort step (persistence, mail, AI provider), so a
// "submitted" page can be told apart from a delivered one after the fact.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Business metrics
	inquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiry_submissions_total",
			Help: "Business inquiry submissions by validation result",
		},
		[]string{"result"}, // accepted, rejected
	)

	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
	)

	stepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "best_effort_steps_total",
			Help: "Best-effort side effects by step and status",
		},
		[]string{"step", "status"}, // step: inquiry_store, operator_mail, ...; status: ok, failed
	)

	newsletterTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Newsletter subscribe attempts by resulting status",
		},
		[]string{"status"}, // subscribed, exists, invalid
	)

	chatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Chat replies by source",
		},
		[]string{"source"}, // sdk, http, fallback
	)
)

// Middleware records request count and latency per route template. The
// route template (not the raw path) keeps label cardinality bounded.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordInquiry records an inquiry submission.
func RecordInquiry(accepted bool) {
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	inquiriesTotal.WithLabelValues(result).Inc()
}

// RecordContactSubmission records a new contact form submission.
func RecordContactSubmission() {
	contactSubmissionsTotal.Inc()
}

// RecordStep records the outcome of a best-effort side effect.
func RecordStep(step string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	stepsTotal.WithLabelValues(step, status).Inc()
}

// RecordNewsletter records a newsletter subscribe attempt.
func RecordNewsletter(status string) {
	newsletterTotal.WithLabelValues(status).Inc()
}

// RecordChatReply records where a chat reply came from.
func RecordChatReply(source string) {
	chatRepliesTotal.WithLabelValues(source).Inc()
}
