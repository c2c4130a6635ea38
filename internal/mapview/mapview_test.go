package mapview

import (
	"fmt"
	"testing"

	"github.com/cosmoruler/Summerbuild/internal/geo"
	"github.com/cosmoruler/Summerbuild/internal/model"
)

func f(v float64) *float64 { return &v }

func sample(n int) []model.Restaurant {
	out := make([]model.Restaurant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Restaurant{
			Name: fmt.Sprintf("r%d", i),
			Lat:  f(1.30 + float64(i)*0.001),
			Lon:  f(103.80),
		})
	}
	return out
}

func TestBuild_NoLocation(t *testing.T) {
	v := Build(sample(5), nil, nil, "", true)
	if len(v.Markers) != 0 {
		t.Fatalf("markers without location = %d, want 0", len(v.Markers))
	}
	if v.CenterLat != DefaultCenterLat || v.CenterLng != DefaultCenterLng {
		t.Fatal("expected default center when location unknown")
	}
}

func TestBuild_NoMarkersBeforeSearch(t *testing.T) {
	v := Build(sample(5), f(1.30), f(103.80), "", false)
	if len(v.Markers) != 1 || !v.Markers[0].IsUser {
		t.Fatalf("expected only the user marker before a search, got %d markers", len(v.Markers))
	}
	if v.CenterLat != 1.30 || v.CenterLng != 103.80 {
		t.Fatal("expected map recentered on user")
	}
}

func TestBuild_CapsResultMarkers(t *testing.T) {
	v := Build(sample(25), f(1.30), f(103.80), "", true)
	if got := len(v.Markers); got != geo.MaxMapMarkers+1 { // +1 user marker
		t.Fatalf("marker count = %d, want %d", got, geo.MaxMapMarkers+1)
	}
	// Result markers come back nearest first.
	if v.Markers[1].Name != "r0" {
		t.Fatalf("nearest marker = %q, want r0", v.Markers[1].Name)
	}
}

func TestBuild_SelectedMatchedByName(t *testing.T) {
	v := Build(sample(3), f(1.30), f(103.80), "r1", true)
	var hits int
	for _, m := range v.Markers {
		if m.Selected {
			hits++
			if m.Name != "r1" {
				t.Fatalf("selected marker = %q, want r1", m.Name)
			}
		}
	}
	if hits != 1 {
		t.Fatalf("selected markers = %d, want 1", hits)
	}
}
