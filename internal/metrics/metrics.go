package metrics

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted into the WAITING state.",
		},
	)

	bookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lendit",
			Name:      "booking_decisions_total",
			Help:      "Terminal booking transitions by resulting status.",
		},
		[]string{"status"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingDecisions)
	})
}

// IncBookingCreated counts a successful booking creation.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingDecision counts a terminal transition by resulting status.
func IncBookingDecision(status string) {
	bookingDecisions.WithLabelValues(status).Inc()
}

// Middleware counts every handled request by matched route and status code.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
