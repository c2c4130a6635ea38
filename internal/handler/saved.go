package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/middleware"
	"github.com/cosmoruler/Summerbuild/internal/model"
	"github.com/cosmoruler/Summerbuild/internal/notify"
	"github.com/cosmoruler/Summerbuild/internal/queue"
	"github.com/cosmoruler/Summerbuild/internal/repository"
	queuepub "github.com/cosmoruler/Summerbuild/internal/service"
)

// SavedHandler manages a user's saved-restaurant collection. Mutations are
// broadcast on the in-process hub for connected clients and published to the
// broker for offline processing; both are best effort.
type SavedHandler struct {
	Saved *repository.SavedRepo
	Hub   *notify.Hub
}

func NewSavedHandler(s *repository.SavedRepo, hub *notify.Hub) *SavedHandler {
	return &SavedHandler{Saved: s, Hub: hub}
}

// Add handles POST /v1/saved with a restaurant snapshot in the body.
func (h *SavedHandler) Add(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	var rest model.Restaurant
	if err := c.Bind(&rest); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	restaurantID, err := h.Saved.Add(ctx, uid, rest)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoIdentifier):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant has no identifier"})
		case errors.Is(err, repository.ErrAlreadySaved):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already saved"})
		default:
			c.Logger().Errorf("saved: add failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
		}
	}

	h.broadcast(uid, restaurantID, rest.Name, "saved")
	return c.JSON(http.StatusCreated, echo.Map{"restaurant_id": restaurantID, "saved": true})
}

// Remove handles DELETE /v1/saved/:id.
func (h *SavedHandler) Remove(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	restaurantID := c.Param("id")
	if restaurantID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Saved.Remove(ctx, uid, restaurantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not saved"})
		}
		c.Logger().Errorf("saved: remove failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}

	h.broadcast(uid, restaurantID, "", "removed")
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/saved, newest first.
func (h *SavedHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Saved.ListByUser(ctx, uid)
	if err != nil {
		c.Logger().Errorf("saved: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	if saved == nil {
		saved = []model.SavedRestaurant{}
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

// Check handles GET /v1/saved/:id, reporting membership.
func (h *SavedHandler) Check(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	restaurantID := c.Param("id")
	if restaurantID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	saved, err := h.Saved.IsSaved(ctx, uid, restaurantID)
	if err != nil {
		c.Logger().Errorf("saved: check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "check failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"saved": saved})
}

func (h *SavedHandler) broadcast(uid uint64, restaurantID, name, action string) {
	if h.Hub != nil {
		h.Hub.Publish(notify.Change{UserID: uid, RestaurantID: restaurantID, Action: action})
	}
	ev := queue.SavedChangedEvent{
		UserID:       uid,
		RestaurantID: restaurantID,
		Name:         name,
		Action:       action,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queuepub.PublishSavedChanged(ctx, ev)
	}()
}
