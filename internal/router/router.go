package router // package router wires handlers and middleware onto echo

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/visit-counter/internal/config"
	"github.com/iliyamo/visit-counter/internal/handler"
	"github.com/iliyamo/visit-counter/internal/middleware"
	"github.com/iliyamo/visit-counter/internal/web"
)

// New builds the echo instance serving the visit counter.  rdb may be nil,
// which disables rate limiting.
func New(cfg *config.Config, h *handler.VisitHandler, rdb *redis.Client, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	// The client address is the peer of the TCP connection; forwarding
	// headers are not trusted.
	e.IPExtractor = echo.ExtractIPDirect()
	e.Renderer = web.NewRenderer()

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log))

	limit := middleware.NewTokenBucket(cfg.RateLimit, rdb, log, handler.IsHealthCheck)
	RegisterRoutes(e, h, limit)
	return e
}

// RegisterRoutes maps the health endpoint and the catch-all status page.
// Health is registered without the limiter so probes are never throttled.
func RegisterRoutes(e *echo.Echo, h *handler.VisitHandler, limit echo.MiddlewareFunc) {
	e.GET(handler.HealthPath, h.Health)
	e.GET("/", h.Page, limit)
	e.GET("/*", h.Page, limit)
}
