package geo

import (
	"math"
	"sort"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

const (
	// EarthRadiusKm is Earth's radius in kilometres for the haversine formula.
	EarthRadiusKm = 6371.0
	// MaxMapMarkers caps how many ranked results feed the map view.
	MaxMapMarkers = 20
)

// DistanceKm computes the great-circle distance in kilometres between two
// points using the haversine formula:
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	d = 2·R·atan2(√a, √(1−a))
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Ranked pairs a result with its computed distance from the user.
type Ranked struct {
	Restaurant model.Restaurant
	DistanceKm float64
}

// RankNearest returns at most max results sorted ascending by great-circle
// distance from (lat, lng). Results without coordinates are dropped. The
// full unranked list still feeds the list view; this reduced subset feeds
// only the map. Sorting is stable so equal distances keep input order.
func RankNearest(lat, lng float64, results []model.Restaurant, max int) []Ranked {
	ranked := make([]Ranked, 0, len(results))
	for _, r := range results {
		if r.Lat == nil || r.Lon == nil {
			continue
		}
		ranked = append(ranked, Ranked{
			Restaurant: r,
			DistanceKm: DistanceKm(lat, lng, *r.Lat, *r.Lon),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].DistanceKm < ranked[j].DistanceKm })
	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}
