package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/config"
	"github.com/cosmoruler/Summerbuild/internal/model"
	"github.com/cosmoruler/Summerbuild/internal/repository"
)

// AdminUsersHandler serves the user-management surface behind the admin
// secret. Accounts and admin flags live in separate tables; listing joins
// them in memory and mutations touch each store independently, surfacing
// partial failures to the caller instead of rolling back.
type AdminUsersHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
}

func NewAdminUsersHandler(cfg config.Config, u *repository.UserRepo, p *repository.ProfileRepo) *AdminUsersHandler {
	return &AdminUsersHandler{Cfg: cfg, Users: u, Profiles: p}
}

type adminUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// List handles GET /admin/users.
func (h *AdminUsersHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		c.Logger().Errorf("admin: list users failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	profiles, err := h.Profiles.List(ctx)
	if err != nil {
		c.Logger().Errorf("admin: list profiles failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list profiles failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"users": mergeUsers(users, profiles)})
}

// mergeUsers left-joins accounts with the sparse profiles table. A user
// without a profile row is a regular user.
func mergeUsers(users []model.User, profiles []model.Profile) []model.AdminUser {
	flags := make(map[uint64]bool, len(profiles))
	for _, p := range profiles {
		flags[p.UserID] = p.IsAdmin
	}
	out := make([]model.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, model.AdminUser{
			ID:      u.ID,
			Email:   u.Email,
			IsAdmin: flags[u.ID],
		})
	}
	return out
}

// Create handles POST /admin/users. The account insert and the profile
// upsert are separate writes; if the profile write fails the account still
// exists and the response says so.
func (h *AdminUsersHandler) Create(c echo.Context) error {
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role := "USER"
	if req.IsAdmin {
		role = "ADMIN"
	}
	uid, err := h.Users.Create(ctx, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		c.Logger().Errorf("admin: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if err := h.Profiles.Upsert(ctx, uid, req.IsAdmin); err != nil {
		c.Logger().Errorf("admin: profile upsert failed for user %d: %v", uid, err)
		return c.JSON(http.StatusCreated, echo.Map{
			"user":    model.AdminUser{ID: uid, Email: req.Email},
			"warning": "user created but admin flag not set",
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": model.AdminUser{ID: uid, Email: req.Email, IsAdmin: req.IsAdmin},
	})
}

// Update handles PUT /admin/users/:id. Empty email or password fields leave
// the current value in place.
func (h *AdminUsersHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req adminUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Update(ctx, id, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		switch err {
		case repository.ErrEmailExists:
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		default:
			c.Logger().Errorf("admin: update user %d failed: %v", id, err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
		}
	}

	if err := h.Profiles.Upsert(ctx, id, req.IsAdmin); err != nil {
		c.Logger().Errorf("admin: profile upsert failed for user %d: %v", id, err)
		return c.JSON(http.StatusOK, echo.Map{
			"updated": true,
			"warning": "user updated but admin flag not set",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}

// Delete handles DELETE /admin/users/:id. The account and profile rows are
// removed one after the other; a profile cleanup failure is reported as a
// warning, not a rollback.
func (h *AdminUsersHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		c.Logger().Errorf("admin: delete user %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
	}

	if err := h.Profiles.Delete(ctx, id); err != nil {
		c.Logger().Errorf("admin: profile delete failed for user %d: %v", id, err)
		return c.JSON(http.StatusOK, echo.Map{
			"deleted": true,
			"warning": "user deleted but profile row remains",
		})
	}
	return c.NoContent(http.StatusNoContent)
}
