package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MembershipOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_membership_operations_total",
		Help: "Membership and invitation operations by outcome.",
	}, []string{"operation", "outcome"})

	SharingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photoshare_sharing_operations_total",
		Help: "Album sharing operations by outcome.",
	}, []string{"operation", "outcome"})

	InvitesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photoshare_invites_resolved_total",
		Help: "Pending invites promoted into memberships.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "photoshare_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Middleware records request latency labelled by the matched route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		route := c.Route().Path
		requestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(statusOf(c, err))).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf reports the status the app's ErrorHandler will write for err,
// which runs only after this middleware returns.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
