package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sloboda_http_requests_total",
		Help: "HTTP requests handled, by route and status code.",
	}, []string{"route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sloboda_http_request_duration_seconds",
		Help:    "HTTP request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	votesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sloboda_votes_total",
		Help: "Votes applied, by target type.",
	}, []string{"target"})

	commentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sloboda_comments_created_total",
		Help: "Comments accepted for storage.",
	})

	notificationsPushed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sloboda_notifications_pushed_total",
		Help: "Notifications delivered over the websocket hub.",
	})
)

// ObserveRequest records one handled HTTP request.
func ObserveRequest(route string, status int, took time.Duration) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route).Observe(took.Seconds())
}

// CountVote records one applied vote.
func CountVote(target string) {
	votesCast.WithLabelValues(target).Inc()
}

// CountComment records one created comment.
func CountComment() {
	commentsCreated.Inc()
}

// CountNotificationPush records one websocket delivery.
func CountNotificationPush() {
	notificationsPushed.Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
