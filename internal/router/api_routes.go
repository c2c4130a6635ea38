package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/config"
	"github.com/cosmoruler/Summerbuild/internal/handler"
	"github.com/cosmoruler/Summerbuild/internal/middleware"
)

// RegisterAPI registers the public discovery endpoints: recommendations,
// the rate-limited places proxy and the admin-flag lookup. None of these
// require authentication; the proxy carries the fixed-window limiter so the
// upstream quota survives anonymous traffic.
func RegisterAPI(e *echo.Echo, rec *handler.RecommendHandler, proxy *handler.ProxyHandler,
	prof *handler.ProfileHandler, rl config.RateLimitConfig, counters middleware.CounterStore) {

	e.GET("/api/recommend", rec.Recommend)
	e.GET("/api/profile/:id", prof.Get)
	e.GET("/restaurants", proxy.Restaurants, middleware.NewFixedWindow(rl, counters))
}
