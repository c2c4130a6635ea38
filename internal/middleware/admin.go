package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AdminChecker answers whether a user currently holds the admin flag.
// Implemented by repository.ProfileRepo.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uint64) (bool, error)
}

// RequireAdmin enforces the database-backed admin flag on a route group.
// It runs after JWTAuth. The flag lives in the profiles table, not in the
// token, so revoking admin takes effect on the next request rather than at
// token expiry. An absent profile row reads as not an admin.
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			isAdmin, err := checker.IsAdmin(ctx, uid)
			if err != nil {
				c.Logger().Errorf("admin check failed for user %d: %v", uid, err)
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
