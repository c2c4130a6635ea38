package model

import (
	"errors"
	"strconv"
	"time"
)

// ErrNoIdentifier is returned when a restaurant has neither a provided id
// nor the name+lat+lon needed to derive one. Save operations must fail
// before touching the persistence layer in that case.
var ErrNoIdentifier = errors.New("restaurant has no unique identifier")

// Restaurant is a search result as returned by the recommendation endpoint.
// Results are transient: they live in client memory for the duration of a
// search and are never persisted as-is. There is no guaranteed natural key;
// DeriveID builds one when needed. Address carries the structured OSM
// subfields (addr:street, addr:city, addr:postcode, addr:housenumber, ...)
// exactly as the upstream tags them.
type Restaurant struct {
	ID              string            `json:"id,omitempty"`
	Name            string            `json:"name"`
	Cuisine         string            `json:"cuisine,omitempty"`
	Address         map[string]string `json:"address,omitempty"`
	Lat             *float64          `json:"lat,omitempty"`
	Lon             *float64          `json:"lon,omitempty"`
	Rating          float64           `json:"rating,omitempty"`
	ReviewCount     int               `json:"review_count,omitempty"`
	PriceLevel      int               `json:"price_level,omitempty"`
	Website         string            `json:"website,omitempty"`
	Phone           string            `json:"phone,omitempty"`
	OpeningHours    string            `json:"opening_hours,omitempty"`
	Tags            map[string]string `json:"tags,omitempty"`
	Image           string            `json:"image,omitempty"`
	SimilarityScore float64           `json:"similarity_score,omitempty"`
}

// Bookable reports whether the place accepts reservations according to its
// upstream tags.
func (r Restaurant) Bookable() bool {
	if r.Tags == nil {
		return false
	}
	v := r.Tags["reservation"]
	return v == "yes" || v == "required" || v == "recommended"
}

// DeriveID returns a stable identifier for the restaurant: the provided id
// when present, otherwise a name_lat_lon composite. Coordinates are printed
// with the shortest exact decimal form so {name:"X", lat:1, lon:2} derives
// "X_1_2". When neither source exists, ErrNoIdentifier is returned.
func (r Restaurant) DeriveID() (string, error) {
	if r.ID != "" {
		return r.ID, nil
	}
	if r.Name != "" && r.Lat != nil && r.Lon != nil {
		return r.Name + "_" + formatCoord(*r.Lat) + "_" + formatCoord(*r.Lon), nil
	}
	return "", ErrNoIdentifier
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SavedRestaurant mirrors the `saved_restaurants` table. Rows are created on
// save and deleted on unsave, never mutated in place. Uniqueness is enforced
// by the database on (user_id, restaurant_id).
type SavedRestaurant struct {
	ID           uint64            `json:"id"`
	UserID       uint64            `json:"user_id"`
	RestaurantID string            `json:"restaurant_id"` // provided or derived
	Name         string            `json:"name"`
	Cuisine      string            `json:"cuisine,omitempty"`
	Address      map[string]string `json:"address,omitempty"` // JSON column
	Lat          *float64          `json:"lat,omitempty"`
	Lon          *float64          `json:"lon,omitempty"`
	Rating       float64           `json:"rating,omitempty"`
	PriceLevel   int               `json:"price_level,omitempty"`
	Website      string            `json:"website,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	OpeningHours string            `json:"opening_hours,omitempty"`
	Tags         map[string]string `json:"tags,omitempty"` // JSON column
	CreatedAt    time.Time         `json:"created_at"`
}

// ProxyRestaurant is the normalized row the places proxy upserts into the
// `restaurants` table, keyed by (name, address).
type ProxyRestaurant struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
