package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/model"
	"github.com/cosmoruler/Summerbuild/internal/places"
	"github.com/cosmoruler/Summerbuild/internal/repository"
)

// Singapore bounding box. Requests outside it are rejected before any
// upstream call so the metered places API is never spent on coordinates the
// app cannot serve.
const (
	sgLatMin = 1.09
	sgLatMax = 1.29
	sgLngMin = 103.36
	sgLngMax = 104.24
)

// ProxyHandler fronts the external places search API: it validates input,
// enforces the shared rate limit (via middleware), persists normalized rows
// and relays results.
type ProxyHandler struct {
	Searcher       places.NearbySearcher
	RestaurantRepo *repository.RestaurantRepo
}

func NewProxyHandler(s places.NearbySearcher, r *repository.RestaurantRepo) *ProxyHandler {
	return &ProxyHandler{Searcher: s, RestaurantRepo: r}
}

// Restaurants handles GET /restaurants?lat=&lng=&keyword=.
func (h *ProxyHandler) Restaurants(c echo.Context) error {
	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr == "" || lngStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat and lng are required"})
	}
	lat, err1 := strconv.ParseFloat(latStr, 64)
	lng, err2 := strconv.ParseFloat(lngStr, 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat and lng must be numbers"})
	}
	if lat < sgLatMin || lat > sgLatMax || lng < sgLngMin || lng > sgLngMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location outside supported area"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	results, err := h.Searcher.NearbySearch(ctx, lat, lng, c.QueryParam("type"))
	if err != nil {
		c.Logger().Errorf("proxy: upstream search failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "places service unavailable"})
	}

	// Persistence is best effort; a write failure must not cost the client
	// its results.
	if h.RestaurantRepo != nil {
		if err := h.RestaurantRepo.UpsertBatch(ctx, normalizeResults(results)); err != nil {
			c.Logger().Errorf("proxy: upsert failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"results": results})
}

func normalizeResults(in []places.NearbyResult) []model.ProxyRestaurant {
	out := make([]model.ProxyRestaurant, 0, len(in))
	for _, r := range in {
		if r.Name == "" {
			continue
		}
		out = append(out, model.ProxyRestaurant{
			Name:    r.Name,
			Address: r.Vicinity,
			Rating:  r.Rating,
			Lat:     r.Geometry.Location.Lat,
			Lng:     r.Geometry.Location.Lng,
		})
	}
	return out
}
