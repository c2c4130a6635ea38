package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/handler"
	"github.com/cosmoruler/Summerbuild/internal/middleware"
)

// RegisterSaved registers the saved-restaurants collection under /v1/saved.
// All routes require a valid JWT; each user only ever sees their own rows.
func RegisterSaved(e *echo.Echo, h *handler.SavedHandler, jwtSecret string) {
	g := e.Group("/v1/saved", middleware.JWTAuth(jwtSecret))
	g.GET("", h.List)
	g.POST("", h.Add)
	g.GET("/:id", h.Check)
	g.DELETE("/:id", h.Remove)
}
