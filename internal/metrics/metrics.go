package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Auth
	AuthFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Authentication/authorization failures",
		},
		[]string{"reason"}, // token|role|forbidden
	)
	TokenRefreshesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "token_refreshes_total",
			Help: "Successful token verifications (each slides the expiry)",
		},
	)
	SignInsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sign_ins_total",
			Help: "Sign-in attempts",
		},
		[]string{"result"}, // ok|failed
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(AuthFailuresTotal)
	prometheus.MustRegister(TokenRefreshesTotal)
	prometheus.MustRegister(SignInsTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
