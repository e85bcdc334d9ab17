// Package observability provides Prometheus metrics and OpenTelemetry tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recurate_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LoginAttempts counts login attempts by outcome (success, unknown_email,
	// wrong_password).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recurate_login_attempts_total",
		Help: "Total number of login attempts by outcome",
	}, []string{"outcome"})

	// SessionsActive is the gauge of currently known live sessions.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recurate_sessions_active",
		Help: "Number of sessions created minus sessions destroyed",
	})

	// PostsCreated counts posts created by media kind (text, image, video).
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recurate_posts_created_total",
		Help: "Total number of posts created by media kind",
	}, []string{"kind"})
)
