package recommend

import (
	"testing"

	"github.com/cosmoruler/Summerbuild/internal/filters"
	"github.com/cosmoruler/Summerbuild/internal/model"
)

func defaults() Params {
	return Params{
		PriceMin:  filters.PriceMin,
		PriceMax:  filters.PriceMax,
		RatingMin: filters.RatingMin,
		RatingMax: filters.RatingMax,
		TopN:      10,
	}
}

func TestRank_EmptyQueryReturnsFirstN(t *testing.T) {
	places := []model.Restaurant{
		{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"},
	}
	p := defaults()
	p.TopN = 2
	got := Rank(places, p)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "B" {
		t.Fatalf("got %+v", got)
	}
	for _, r := range got {
		if r.SimilarityScore != 1.0 {
			t.Fatalf("score = %v, want 1.0", r.SimilarityScore)
		}
	}
}

func TestRank_QueryOrdersBySimilarity(t *testing.T) {
	places := []model.Restaurant{
		{Name: "Noodle Bar", Cuisine: "chinese"},
		{Name: "TungLok Seafood", Cuisine: "seafood", Tags: map[string]string{"amenity": "restaurant", "outdoor_seating": "yes"}},
		{Name: "Pasta Place", Cuisine: "italian"},
	}
	p := defaults()
	p.Query = "seafood restaurant"
	got := Rank(places, p)
	if len(got) == 0 || got[0].Name != "TungLok Seafood" {
		t.Fatalf("top result = %+v", got)
	}
	if got[0].SimilarityScore <= got[len(got)-1].SimilarityScore {
		t.Fatal("scores not descending")
	}
}

func TestRank_RangeAndBookableFilters(t *testing.T) {
	places := []model.Restaurant{
		{Name: "cheap", PriceLevel: 1},
		{Name: "pricey", PriceLevel: 5},
		{Name: "unrated"}, // no price/rating data: never range-filtered
		{Name: "low", Rating: 1.5},
		{Name: "bookable", Tags: map[string]string{"reservation": "yes"}},
	}
	p := defaults()
	p.PriceMax = 3
	p.RatingMin = 2
	got := Rank(places, p)
	names := map[string]bool{}
	for _, r := range got {
		names[r.Name] = true
	}
	if names["pricey"] || names["low"] {
		t.Fatalf("range filters leaked: %v", names)
	}
	if !names["unrated"] || !names["cheap"] {
		t.Fatalf("expected sparse-data places kept: %v", names)
	}

	p.Bookable = true
	got = Rank(places, p)
	if len(got) != 1 || got[0].Name != "bookable" {
		t.Fatalf("bookable filter: %+v", got)
	}
}

func TestDescription(t *testing.T) {
	r := model.Restaurant{
		Name:    "Jumbo Seafood",
		Cuisine: "seafood",
		Tags:    map[string]string{"amenity": "restaurant"},
		Address: map[string]string{"addr:housenumber": "20", "addr:street": "Upper Circular Road", "addr:city": "Singapore"},
	}
	want := "jumbo seafood seafood restaurant 20 upper circular road singapore"
	if got := Description(r); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestClean_DefaultsAndKeptFields(t *testing.T) {
	lat := 1.29
	got := Clean([]model.Restaurant{{Lat: &lat}})
	if got[0].Name != "Unknown" || got[0].Cuisine != "Not specified" {
		t.Fatalf("defaults not applied: %+v", got[0])
	}
	if got[0].Lat == nil || *got[0].Lat != 1.29 {
		t.Fatal("coordinates must survive cleaning")
	}
}
