package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ExternalAPIFailures counts failed calls to third-party services, labeled by service name.
var ExternalAPIFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "artfolio_external_api_failures_total",
	Help: "Number of failed outbound calls to external services.",
}, []string{"service"})

// RedisErrors counts Redis command failures, labeled by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "artfolio_redis_errors_total",
	Help: "Number of failed Redis commands.",
}, []string{"command"})

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the shared Prometheus HTTP middleware. The underlying
// collectors register against the default registry, so this is created once
// per process no matter how many servers are constructed.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware wraps the Prometheus middleware as a fiber.Handler.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
