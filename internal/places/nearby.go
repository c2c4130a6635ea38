package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NearbyResult is one raw upstream result from the paid nearby-search API.
// The full payload is passed through to the caller; only the fields needed
// for normalization are decoded into named struct members, the rest rides
// along in Raw.
type NearbyResult struct {
	Name     string  `json:"name"`
	Vicinity string  `json:"vicinity"`
	Rating   float64 `json:"rating"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Raw json.RawMessage `json:"-"`
}

// NearbySearcher is the upstream the /restaurants proxy calls. It sits
// behind an interface so handler tests can verify the proxy rejects bad
// input before any upstream call is made.
type NearbySearcher interface {
	NearbySearch(ctx context.Context, lat, lng float64, keyword string) ([]NearbyResult, error)
}

// NearbyClient implements NearbySearcher against a Places-style HTTP API.
// The API key is supplied from the environment and never reaches clients.
type NearbyClient struct {
	BaseURL string
	APIKey  string
	Radius  int
	HTTP    *http.Client
}

// NewNearbyClient builds a client searching within a 3km radius.
func NewNearbyClient(baseURL, apiKey string) *NearbyClient {
	return &NearbyClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Radius:  3000,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *NearbyClient) NearbySearch(ctx context.Context, lat, lng float64, keyword string) ([]NearbyResult, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%g,%g", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", c.Radius))
	q.Set("type", "restaurant")
	q.Set("keyword", keyword)
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby search status %d", resp.StatusCode)
	}

	var payload struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("nearby search decode: %w", err)
	}
	out := make([]NearbyResult, 0, len(payload.Results))
	for _, raw := range payload.Results {
		var r NearbyResult
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		r.Raw = raw
		out = append(out, r)
	}
	return out, nil
}
