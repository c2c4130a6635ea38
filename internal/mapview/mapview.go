// Package mapview projects restaurant results onto map markers for the
// client. It owns the fixed geographic frame of the app: the Singapore
// bounding box the map is clamped to, the default center and the zoom used
// when recentering on the user.
package mapview

import (
	"github.com/cosmoruler/Summerbuild/internal/geo"
	"github.com/cosmoruler/Summerbuild/internal/model"
)

// Fixed Singapore frame. Bounds match the proxy endpoint's validation box;
// viscosity 1.0 is a hard clamp with no overscroll.
const (
	BoundsLatMin = 1.09
	BoundsLatMax = 1.29
	BoundsLngMin = 103.36
	BoundsLngMax = 104.24

	DefaultCenterLat = 1.3521
	DefaultCenterLng = 103.8198
	DefaultZoom      = 15
	BoundsViscosity  = 1.0
)

// Marker is a single pin on the map.
type Marker struct {
	Name       string  `json:"name"`
	Cuisine    string  `json:"cuisine,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
	Selected   bool    `json:"selected"`
	IsUser     bool    `json:"is_user,omitempty"`
}

// View is everything the map needs to render one state: center, zoom, the
// clamped bounds and the marker set.
type View struct {
	CenterLat float64  `json:"center_lat"`
	CenterLng float64  `json:"center_lng"`
	Zoom      int      `json:"zoom"`
	Bounds    [4]float64 `json:"bounds"` // latMin, lngMin, latMax, lngMax
	Markers   []Marker `json:"markers"`
}

// Build produces the map view for a result list. Result markers appear only
// after a search has been performed; until then only the user marker (when
// location is known) renders. Results are ranked by distance from the user
// and capped so the map never draws more than geo.MaxMapMarkers pins. The
// selected marker is matched by display name; two results sharing a name
// collide, a known weakness kept for parity with list selection.
//
// When the user location is nil the map keeps the default center and no
// ranking is possible, so no result markers render either.
func Build(results []model.Restaurant, userLat, userLng *float64, selectedName string, searchPerformed bool) View {
	v := View{
		CenterLat: DefaultCenterLat,
		CenterLng: DefaultCenterLng,
		Zoom:      DefaultZoom,
		Bounds:    [4]float64{BoundsLatMin, BoundsLngMin, BoundsLatMax, BoundsLngMax},
	}
	if userLat == nil || userLng == nil {
		return v
	}

	// Recenter on the user whenever their location is known.
	v.CenterLat, v.CenterLng = *userLat, *userLng
	v.Markers = append(v.Markers, Marker{Name: "Your Location", Lat: *userLat, Lng: *userLng, IsUser: true})

	if !searchPerformed {
		return v
	}
	for _, r := range geo.RankNearest(*userLat, *userLng, results, geo.MaxMapMarkers) {
		v.Markers = append(v.Markers, Marker{
			Name:       r.Restaurant.Name,
			Cuisine:    r.Restaurant.Cuisine,
			Lat:        *r.Restaurant.Lat,
			Lng:        *r.Restaurant.Lon,
			DistanceKm: r.DistanceKm,
			Selected:   selectedName != "" && r.Restaurant.Name == selectedName,
		})
	}
	return v
}
