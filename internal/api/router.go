package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/page-comments-api/internal/config"
	"github.com/page-comments-api/internal/metrics"
	"github.com/page-comments-api/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const serviceName = "page-comments-api"

const indexText = `page-comments-api

GET  /get/:slug   list the comments of a page
GET  /key         obtain a posting token (valid 90 seconds, bound to your address)
POST /new/:slug   post {"key", "author", "body"} as JSON
`

// HealthChecker is anything that can report whether a backing store is reachable
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheckFunc adapts a function to HealthChecker
type HealthCheckFunc func(ctx context.Context) error

// Ping calls f
func (f HealthCheckFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// RouterDeps holds everything NewRouter wires together
type RouterDeps struct {
	Services *service.Services
	Config   *config.Config
	Log      zerolog.Logger

	// Metrics receives per-response counts; Gatherer backs GET /metrics
	Metrics  metrics.Recorder
	Gatherer prometheus.Gatherer

	// HealthCheckers are pinged by GET /health, keyed by name
	HealthCheckers map[string]HealthChecker
}

// NewRouter creates and configures the Gin router
func NewRouter(deps RouterDeps) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}

	router := gin.New()

	// The client address comes from the platform header only; X-Forwarded-For is never trusted.
	router.TrustedPlatform = deps.Config.Server.TrustedPlatform
	if err := router.SetTrustedProxies(nil); err != nil {
		deps.Log.Error().Err(err).Msg("Failed to clear trusted proxies")
	}

	// Middleware
	router.Use(recoveryMiddleware(deps.Log))
	router.Use(loggingMiddleware(deps.Log))
	router.Use(metricsMiddleware(deps.Metrics))

	// Handlers
	tokenHandler := NewTokenHandler(deps.Services, deps.Log)
	commentHandler := NewCommentHandler(deps.Services, deps.Log)

	// Operational endpoints
	router.GET("/health", healthCheck(deps.HealthCheckers))
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Gatherer)))
	}

	// Public endpoints, reachable from the site's frontend only
	limit := noLimit
	if deps.Config.RateLimit.Enabled {
		limit = newAddressLimiter(deps.Config.RateLimit, 10*time.Minute).middleware()
	}

	public := router.Group("")
	public.Use(corsMiddleware(deps.Config.Server.CORSAllowedOrigin))
	{
		public.GET("/", index)
		public.GET("/get/:slug", commentHandler.ListComments)
		public.GET("/key", limit, tokenHandler.RequestToken)
		public.POST("/new/:slug", limit, commentHandler.SubmitComment)

		// Preflight requests are answered by corsMiddleware
		public.OPTIONS("/", preflight)
		public.OPTIONS("/get/:slug", preflight)
		public.OPTIONS("/key", preflight)
		public.OPTIONS("/new/:slug", preflight)
	}

	return router
}

// index returns the informational text
func index(c *gin.Context) {
	c.String(http.StatusOK, indexText)
}

func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func noLimit(c *gin.Context) {
	c.Next()
}

// healthCheck returns the health status, pinging every backing store
func healthCheck(checkers map[string]HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{}
		for name, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		health := "healthy"
		if status != http.StatusOK {
			health = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":    health,
			"checks":    checks,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.String(http.StatusInternalServerError, textInternalError)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// metricsMiddleware counts responses by route template
func metricsMiddleware(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.HTTPResponse(route, c.Writer.Status())
	}
}

// corsMiddleware allows a single origin and answers preflight requests
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
