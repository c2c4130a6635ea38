// Package recclient is the client-side wrapper around the recommendation
// endpoint. It owns the fetch lifecycle a results view needs: it does
// nothing until a location is known, tracks loading and error state, keeps
// the previous results visible when a fetch fails, and tags every request
// with a sequence number so a slow response can never overwrite a newer one.
package recclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// Params shape one recommendation request.
type Params struct {
	Query     string
	PriceMin  int
	PriceMax  int
	RatingMin int
	RatingMax int
	Bookable  bool
	TopN      int
}

// State is what a view renders.
type State struct {
	Results []model.Restaurant
	Loading bool
	Err     string
}

// Client fetches recommendations. Safe for concurrent use.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	mu    sync.Mutex
	seq   uint64
	lat   *float64
	lon   *float64
	state State
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetLocation records the coordinate future fetches run against.
func (c *Client) SetLocation(lat, lon float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lat, c.lon = &lat, &lon
}

// State returns a snapshot of the current view state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Results = append([]model.Restaurant(nil), c.state.Results...)
	return s
}

// Fetch issues one recommendation request. Without a location it is a
// no-op. Each call supersedes any in-flight one: when an older response
// lands after a newer request has been issued, it is discarded. On failure
// the previous results stay visible alongside the error.
func (c *Client) Fetch(ctx context.Context, p Params) error {
	c.mu.Lock()
	if c.lat == nil || c.lon == nil {
		c.mu.Unlock()
		return nil
	}
	lat, lon := *c.lat, *c.lon
	c.seq++
	my := c.seq
	c.state.Loading = true
	c.mu.Unlock()

	results, err := c.doFetch(ctx, lat, lon, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if my != c.seq {
		return nil // a newer request owns the state now
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err.Error()
		return err
	}
	c.state.Results = results
	c.state.Err = ""
	return nil
}

func (c *Client) doFetch(ctx context.Context, lat, lon float64, p Params) ([]model.Restaurant, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.PriceMin > 0 {
		q.Set("price_min", strconv.Itoa(p.PriceMin))
	}
	if p.PriceMax > 0 {
		q.Set("price_max", strconv.Itoa(p.PriceMax))
	}
	if p.RatingMin > 0 {
		q.Set("rating_min", strconv.Itoa(p.RatingMin))
	}
	if p.RatingMax > 0 {
		q.Set("rating_max", strconv.Itoa(p.RatingMax))
	}
	if p.Bookable {
		q.Set("bookable", "true")
	}
	if p.TopN > 0 {
		q.Set("top_n", strconv.Itoa(p.TopN))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/recommend?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recommend request failed: %s", resp.Status)
	}

	var body struct {
		Results []model.Restaurant `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Results, nil
}
