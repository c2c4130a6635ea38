package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/repository"
)

// ProfileHandler exposes the public admin-flag lookup used by clients to
// decide whether to show admin affordances.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(p *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: p}
}

// Get handles GET /api/profile/:id. A user with no profile row reads as a
// regular user rather than a 404.
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	isAdmin, err := h.Profiles.IsAdmin(ctx, id)
	if err != nil {
		c.Logger().Errorf("profile: lookup failed for %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "profile lookup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_admin": isAdmin})
}
