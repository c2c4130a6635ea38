// Package places talks to the external place APIs: the Overpass API that
// backs the recommendation endpoint, and the paid nearby-search API the
// /restaurants proxy fronts.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// DefaultOverpassEndpoint is used when no endpoint is configured.
const DefaultOverpassEndpoint = "https://overpass-api.de/api/interpreter"

// OverpassClient queries the Overpass API for places around a coordinate.
type OverpassClient struct {
	Endpoint string
	HTTP     *http.Client
}

// NewOverpassClient builds a client with a bounded request timeout.
func NewOverpassClient(endpoint string) *OverpassClient {
	if endpoint == "" {
		endpoint = DefaultOverpassEndpoint
	}
	return &OverpassClient{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// BuildQuery constructs the raw Overpass QL for a radius search. Each place
// type must be a key=value tag filter such as "amenity=restaurant"; nodes,
// ways and relations are unioned per filter.
func BuildQuery(lat, lon float64, radius int, placeTypes []string, limit int) (string, error) {
	if len(placeTypes) == 0 {
		placeTypes = []string{"amenity=restaurant", "amenity=cafe"}
	}
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, p := range placeTypes {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return "", fmt.Errorf("place type %q must look like amenity=restaurant", p)
		}
		tag := fmt.Sprintf("[%q=%q]", k, v)
		fmt.Fprintf(&b, "node(around:%d,%g,%g)%s;\n", radius, lat, lon, tag)
		fmt.Fprintf(&b, "way(around:%d,%g,%g)%s;\n", radius, lat, lon, tag)
		fmt.Fprintf(&b, "relation(around:%d,%g,%g)%s;\n", radius, lat, lon, tag)
	}
	fmt.Fprintf(&b, ");\nout center %d;", limit)
	return b.String(), nil
}

// overpassResponse is the subset of the Overpass JSON envelope we read.
type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat"`
	Lon    *float64          `json:"lon"`
	Center *struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"center"`
	Tags map[string]string `json:"tags"`
}

// addressKeys are the structured address subfields copied from OSM tags.
var addressKeys = []string{"addr:street", "addr:housename", "addr:housenumber", "addr:postcode", "addr:city", "name"}

// SearchNearby posts a radius query and converts the returned elements into
// restaurant results. Unnamed elements are skipped. Ways and relations take
// their coordinates from the computed center.
func (c *OverpassClient) SearchNearby(ctx context.Context, lat, lon float64, radius int, placeTypes []string, limit int) ([]model.Restaurant, error) {
	q, err := BuildQuery(lat, lon, radius, placeTypes, limit)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(q))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("overpass decode: %w", err)
	}
	return ProcessElements(out.Elements), nil
}

// ProcessElements converts raw Overpass elements into restaurant results.
func ProcessElements(elements []overpassElement) []model.Restaurant {
	places := make([]model.Restaurant, 0, len(elements))
	for _, el := range elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		r := model.Restaurant{
			ID:           fmt.Sprintf("%s_%d", el.Type, el.ID),
			Name:         name,
			Cuisine:      el.Tags["cuisine"],
			Website:      el.Tags["website"],
			Phone:        el.Tags["phone"],
			OpeningHours: el.Tags["opening_hours"],
			Image:        el.Tags["image"],
			Tags:         el.Tags,
			Lat:          el.Lat,
			Lon:          el.Lon,
		}
		if el.Center != nil {
			r.Lat, r.Lon = el.Center.Lat, el.Center.Lon
		}
		addr := map[string]string{}
		for _, k := range addressKeys {
			if v, ok := el.Tags[k]; ok {
				addr[k] = v
			}
		}
		if len(addr) > 0 {
			r.Address = addr
		}
		places = append(places, r)
	}
	return places
}
