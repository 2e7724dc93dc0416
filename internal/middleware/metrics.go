package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chirp_redis_errors_total",
	Help: "Number of Redis command errors, labeled by command.",
}, []string{"command"})

// LikeToggles counts like set/unset operations by direction.
var LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chirp_like_toggles_total",
	Help: "Number of like toggle operations, labeled by direction (set/unset).",
}, []string{"direction"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
