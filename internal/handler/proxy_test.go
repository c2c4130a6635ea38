package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cosmoruler/Summerbuild/internal/places"
)

type stubSearcher struct {
	calls   int
	results []places.NearbyResult
	err     error
}

func (s *stubSearcher) NearbySearch(_ context.Context, _, _ float64, _ string) ([]places.NearbyResult, error) {
	s.calls++
	return s.results, s.err
}

func proxyRequest(t *testing.T, h *ProxyHandler, query url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/restaurants?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	if err := h.Restaurants(e.NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestProxyRejectsMissingParams(t *testing.T) {
	s := &stubSearcher{}
	h := NewProxyHandler(s, nil)

	rec := proxyRequest(t, h, url.Values{"lat": {"1.3"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if s.calls != 0 {
		t.Fatalf("upstream called %d times on invalid input", s.calls)
	}
}

func TestProxyRejectsOutOfBoundsBeforeUpstream(t *testing.T) {
	s := &stubSearcher{}
	h := NewProxyHandler(s, nil)

	cases := []struct{ lat, lng string }{
		{"51.5", "-0.12"},  // London
		{"1.3", "99.0"},    // west of the box
		{"0.5", "103.8"},   // south of the box
		{"1.3521", "105.0"},
	}
	for _, tc := range cases {
		rec := proxyRequest(t, h, url.Values{"lat": {tc.lat}, "lng": {tc.lng}})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("(%s,%s): got %d, want 400", tc.lat, tc.lng, rec.Code)
		}
	}
	if s.calls != 0 {
		t.Fatalf("upstream called %d times for out-of-bounds coordinates", s.calls)
	}
}

func TestProxyRelaysResults(t *testing.T) {
	s := &stubSearcher{results: []places.NearbyResult{{Name: "Tian Tian", Vicinity: "Maxwell Rd", Rating: 4.5}}}
	h := NewProxyHandler(s, nil)

	rec := proxyRequest(t, h, url.Values{"lat": {"1.28"}, "lng": {"103.845"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if s.calls != 1 {
		t.Fatalf("upstream calls = %d, want 1", s.calls)
	}
}

func TestNormalizeResultsDropsUnnamed(t *testing.T) {
	in := []places.NearbyResult{
		{Name: "Tian Tian", Vicinity: "Maxwell Rd", Rating: 4.5},
		{Name: "", Vicinity: "nowhere"},
	}
	out := normalizeResults(in)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Name != "Tian Tian" || out[0].Address != "Maxwell Rd" {
		t.Fatalf("unexpected row: %+v", out[0])
	}
}
