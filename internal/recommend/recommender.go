// Package recommend ranks candidate places against a free-text preference
// query. Each place is flattened into a descriptive text (name, cuisine,
// amenity, address) and scored by cosine similarity between term-frequency
// vectors of the query and the description. Places are then filtered by the
// numeric ranges and the bookable flag before the top N are returned.
package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/cosmoruler/Summerbuild/internal/model"
)

// DefaultTopN matches the endpoint's default when top_n is not supplied.
const DefaultTopN = 3

// Params are the ranking inputs alongside the candidate list.
type Params struct {
	Query     string
	PriceMin  int
	PriceMax  int
	RatingMin int
	RatingMax int
	Bookable  bool
	TopN      int
}

// Description flattens a place into the lowercase text the similarity
// scoring runs over.
func Description(r model.Restaurant) string {
	amenity := "place"
	if r.Tags != nil && r.Tags["amenity"] != "" {
		amenity = r.Tags["amenity"]
	}
	parts := []string{r.Name, r.Cuisine, amenity}
	for _, k := range []string{"addr:housenumber", "addr:street", "addr:city"} {
		if v, ok := r.Address[k]; ok {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty(parts), " "))
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func tokenize(s string) map[string]float64 {
	tf := map[string]float64{}
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		tf[tok]++
	}
	return tf
}

// cosine computes the cosine similarity of two term-frequency vectors.
func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for t, w := range a {
		na += w * w
		if w2, ok := b[t]; ok {
			dot += w * w2
		}
	}
	for _, w := range b {
		nb += w * w
	}
	if dot == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Rank scores, filters and truncates the candidate list. With an empty
// query the first TopN surviving candidates are returned with score 1.0;
// otherwise candidates are ordered by descending similarity to the query.
// Range filters only reject places that carry the relevant field: a place
// with no rating or price level is not excluded by a default range, since
// upstream data is sparse.
func Rank(places []model.Restaurant, p Params) []model.Restaurant {
	if p.TopN <= 0 {
		p.TopN = DefaultTopN
	}

	kept := make([]model.Restaurant, 0, len(places))
	for _, r := range places {
		if r.PriceLevel != 0 && (r.PriceLevel < p.PriceMin || r.PriceLevel > p.PriceMax) {
			continue
		}
		if r.Rating != 0 && (r.Rating < float64(p.RatingMin) || r.Rating > float64(p.RatingMax)) {
			continue
		}
		if p.Bookable && !r.Bookable() {
			continue
		}
		kept = append(kept, r)
	}

	query := strings.TrimSpace(p.Query)
	if query == "" {
		if len(kept) > p.TopN {
			kept = kept[:p.TopN]
		}
		out := make([]model.Restaurant, len(kept))
		for i, r := range kept {
			r.SimilarityScore = 1.0
			out[i] = r
		}
		return out
	}

	qv := tokenize(query)
	out := make([]model.Restaurant, len(kept))
	for i, r := range kept {
		r.SimilarityScore = cosine(qv, tokenize(Description(r)))
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	if len(out) > p.TopN {
		out = out[:p.TopN]
	}
	return out
}

// Clean reduces ranked places to the response shape. Unlike the original
// engine this keeps coordinates and the secondary fields, because the map
// and the save flow need them downstream.
func Clean(places []model.Restaurant) []model.Restaurant {
	out := make([]model.Restaurant, 0, len(places))
	for _, r := range places {
		name := r.Name
		if name == "" {
			name = "Unknown"
		}
		cuisine := r.Cuisine
		if cuisine == "" {
			cuisine = "Not specified"
		}
		out = append(out, model.Restaurant{
			ID:              r.ID,
			Name:            name,
			Cuisine:         cuisine,
			Address:         r.Address,
			Lat:             r.Lat,
			Lon:             r.Lon,
			Rating:          r.Rating,
			ReviewCount:     r.ReviewCount,
			PriceLevel:      r.PriceLevel,
			Website:         r.Website,
			Phone:           r.Phone,
			OpeningHours:    r.OpeningHours,
			Tags:            r.Tags,
			Image:           r.Image,
			SimilarityScore: r.SimilarityScore,
		})
	}
	return out
}
