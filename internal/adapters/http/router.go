package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/wisdom-quotes/internal/adapters/http/middleware"
	"github.com/jsamuelsen/wisdom-quotes/internal/platform/telemetry"
)

// DefaultMaxRequestSize caps request bodies when no limit is configured.
const DefaultMaxRequestSize = 64 << 10

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger seeded into every request context.
	Logger *slog.Logger

	// ServiceName names the server spans.
	ServiceName string

	// HealthHandler handles the /-/ endpoints.
	HealthHandler *handlers.HealthHandler

	// PageHandler serves the HTML widget and its form actions.
	PageHandler *handlers.PageHandler

	// QuoteHandler serves the JSON API.
	QuoteHandler *handlers.QuoteHandler

	// Timeout bounds API requests. Zero disables it.
	Timeout time.Duration

	// MaxRequestSize caps request bodies in bytes.
	MaxRequestSize int64
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Context logger - seed the request context with the base logger
//  2. Recovery - catch panics
//  3. Request ID - generate/extract request ID
//  4. Correlation ID - handle distributed tracing correlation
//  5. OpenTelemetry - server span, then HTTP metrics
//  6. Logging - request logging (skips /-/ endpoints)
//  7. Body limit - reject oversized bodies
//
// Route groups:
//   - /-/ (internal): health, build info and metrics, no timeout
//   - / and /actions/:action: the HTML page
//   - /api/v1/: the JSON API, with a request timeout
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = DefaultMaxRequestSize
	}

	engine.Use(
		middleware.ContextLogger(cfg.Logger),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
		middleware.BodyLimit(cfg.MaxRequestSize),
	)

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterRoutes(engine)
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(apiV1)
	}
}
