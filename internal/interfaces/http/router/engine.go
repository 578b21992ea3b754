package router

import (
	"github.com/gin-gonic/gin"
	"github.com/samarth/backend/internal/infrastructure/config"
	"github.com/samarth/backend/internal/infrastructure/logger"
	"github.com/samarth/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineOptions configures the global middleware chain
type EngineOptions struct {
	Logger    *zap.Logger
	HTTP      config.HTTPConfig
	Telemetry config.TelemetryConfig
	// Meter records HTTP metrics when Telemetry.MetricsEnabled is set
	Meter metric.Meter
}

// NewEngine creates a gin engine with the middleware every request passes
// through, in order: request id, access log, panic recovery, security
// headers, CORS, body limit, then the tracing, metrics and profiling hooks.
func NewEngine(opts EngineOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(opts.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = opts.HTTP.CORSAllowOrigins
	if len(opts.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = opts.HTTP.CORSAllowMethods
	}
	if len(opts.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = opts.HTTP.CORSAllowHeaders
	}

	tracing := middleware.DefaultTracingConfig()
	tracing.Enabled = opts.Telemetry.Enabled
	if opts.Telemetry.ServiceName != "" {
		tracing.ServiceName = opts.Telemetry.ServiceName
	}

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = opts.Telemetry.ProfilingEnabled

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
	)
	if opts.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodySize))
	}
	if tracing.Enabled {
		engine.Use(middleware.TracingWithConfig(tracing), middleware.SpanErrorMarker())
	}
	engine.Use(
		middleware.HTTPMetrics(opts.Meter, opts.Telemetry.MetricsEnabled),
		middleware.ProfilingWithConfig(profiling),
	)

	return engine
}
