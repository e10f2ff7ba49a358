package metrics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the polls service
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	VotesCast        prometheus.Counter
	QuestionsCreated prometheus.Counter
}

// New registers the polls collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "polls",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "polls",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		VotesCast: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "polls",
			Name:      "votes_total",
			Help:      "Total number of votes recorded",
		}),
		QuestionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "polls",
			Name:      "questions_created_total",
			Help:      "Total number of questions created through the add question form",
		}),
	}
}

// UnmatchedRoute labels requests that no registered route handled
const UnmatchedRoute = "unmatched"

// Middleware records request count and duration per matched route
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := routeLabel(c, err)

		m.RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())

		return err
	}
}

// routeLabel is the matched route path, or UnmatchedRoute when the router fell
// through every registered route
func routeLabel(c *fiber.Ctx, err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusMethodNotAllowed:
			return UnmatchedRoute
		case fe.Code == fiber.StatusNotFound && strings.HasPrefix(fe.Message, "Cannot "):
			return UnmatchedRoute
		}
	}
	return c.Route().Path
}

// Handler exposes the collectors gathered by g in the Prometheus text format
func Handler(g prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
