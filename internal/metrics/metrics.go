package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(AuthEvents)
	prometheus.MustRegister(ConsumptionsLogged)
}

const (
	namespace = "macrotracker"

	LabelMethod = "method"
	LabelRoute  = "route"
	LabelStatus = "status"
	LabelEvent  = "event"
)

// Auth event label values.
const (
	EventSignup         = "signup"
	EventLogin          = "login"
	EventLoginFailed    = "login_failed"
	EventLoginPending   = "login_pending"
	EventLogout         = "logout"
	EventSessionExpired = "session_expired"
	EventAdminBootstrap = "admin_bootstrap"
	EventCSRFRejected   = "csrf_rejected"
)

var (
	// HTTPRequests counts handled requests by method, matched route and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of handled HTTP requests.",
		},
		[]string{LabelMethod, LabelRoute, LabelStatus})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{LabelMethod, LabelRoute})

	AuthEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Authentication events by outcome.",
	}, []string{LabelEvent})

	ConsumptionsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consumptions_logged_total",
		Help:      "Number of consumptions recorded.",
	})
)
