package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/places"
	"github.com/cosmoruler/Summerbuild/internal/recommend"
)

// RecommendHandler serves restaurant recommendations around a coordinate.
// Candidates come from the Overpass API; ranking and filtering are local.
type RecommendHandler struct {
	Overpass *places.OverpassClient
	Radius   int // search radius in meters
	Limit    int
}

func NewRecommendHandler(overpass *places.OverpassClient) *RecommendHandler {
	return &RecommendHandler{Overpass: overpass, Radius: 3000, Limit: 25}
}

// Recommend handles GET /api/recommend. lat and lon are required; the rest
// of the query shapes the ranking. Results are cleaned before returning so
// sparse upstream data presents consistently.
func (h *RecommendHandler) Recommend(c echo.Context) error {
	lat, err1 := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err1 != nil || err2 != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat and lon are required"})
	}

	params, err := parseRecommendParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	candidates, err := h.Overpass.SearchNearby(ctx, lat, lon, h.Radius, nil, h.Limit)
	if err != nil {
		c.Logger().Errorf("recommend: overpass search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "recommendation service unavailable"})
	}

	ranked := recommend.Rank(candidates, params)
	return c.JSON(http.StatusOK, echo.Map{"results": recommend.Clean(ranked)})
}

// parseRecommendParams reads the optional ranking knobs, applying the same
// defaults the endpoint documents: price 1-5, rating 1-6, top_n 3.
// Out-of-range or malformed values are rejected rather than clamped.
func parseRecommendParams(c echo.Context) (recommend.Params, error) {
	p := recommend.Params{
		Query:     strings.TrimSpace(c.QueryParam("query")),
		PriceMin:  1,
		PriceMax:  5,
		RatingMin: 1,
		RatingMax: 6,
		TopN:      recommend.DefaultTopN,
	}

	var err error
	if p.PriceMin, err = intParam(c, "price_min", p.PriceMin, 1, 5); err != nil {
		return p, err
	}
	if p.PriceMax, err = intParam(c, "price_max", p.PriceMax, 1, 5); err != nil {
		return p, err
	}
	if p.RatingMin, err = intParam(c, "rating_min", p.RatingMin, 1, 6); err != nil {
		return p, err
	}
	if p.RatingMax, err = intParam(c, "rating_max", p.RatingMax, 1, 6); err != nil {
		return p, err
	}
	if v := c.QueryParam("bookable"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return p, errBadParam("bookable")
		}
		p.Bookable = b
	}
	if v := c.QueryParam("top_n"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 1 {
			return p, errBadParam("top_n")
		}
		p.TopN = n
	}
	if p.PriceMin > p.PriceMax {
		return p, errBadParam("price_min")
	}
	if p.RatingMin > p.RatingMax {
		return p, errBadParam("rating_min")
	}
	return p, nil
}

type paramError string

func (e paramError) Error() string { return "invalid parameter: " + string(e) }

func errBadParam(name string) error { return paramError(name) }

func intParam(c echo.Context, name string, def, lo, hi int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return def, errBadParam(name)
	}
	return n, nil
}
