package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/handler"
	"github.com/cosmoruler/Summerbuild/internal/middleware"
)

// RegisterAdmin mounts the user-management surface twice. /admin sits
// behind the x-admin-secret header for operators and the management UI,
// which hold the shared secret. /v1/admin serves signed-in admins: a valid
// JWT plus the database-backed admin flag, checked per request so revoking
// the flag takes effect immediately.
func RegisterAdmin(e *echo.Echo, h *handler.AdminUsersHandler, adminSecret, jwtSecret string, admins middleware.AdminChecker) {
	ops := e.Group("/admin", middleware.AdminSecret(adminSecret))
	registerAdminUsers(ops, h)

	self := e.Group("/v1/admin", middleware.JWTAuth(jwtSecret), middleware.RequireAdmin(admins))
	registerAdminUsers(self, h)
}

func registerAdminUsers(g *echo.Group, h *handler.AdminUsersHandler) {
	g.GET("/users", h.List)
	g.POST("/users", h.Create)
	g.PUT("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)
}
