// Package filters maintains the set of active search filter labels and keeps
// the free-text search term consistent with that set. The label vocabulary
// is fixed: seven enumerations plus the price-level glyphs. The search term
// is a derived view over the selected labels that users may still hand-edit
// between toggles; hand-typed text coexists with the labels but is never
// parsed back into them.
package filters

import (
	"regexp"
	"strings"
)

// Filter label vocabulary. Display order matters and matches the UI.
var (
	AmenityTypes = []string{"Restaurant", "Cafe", "Bar", "Pub", "Biergarten", "Food Court"}
	CuisineList  = []string{
		"Malaysian", "Peranakan", "Seafood", "Shanghainese", "Sichuan", "Singaporean",
		"Southeast Asian", "Taiwanese", "Thai", "Themed", "Vegan", "Vegetarian", "Western",
	}
	DietaryOptions       = []string{"Vegan", "Vegetarian", "Gluten Free", "Halal", "Kosher"}
	SeatingFeatures      = []string{"Outdoor Seating", "Indoor Seating", "Takeaway", "Delivery", "Drive Through", "Reservation"}
	PaymentOptions       = []string{"Credit Card", "Cash"}
	AccessibilityOptions = []string{"Wheelchair Accessible", "Wheelchair Toilet"}
	OtherOptions         = []string{"WiFi", "Kids Area", "Pet Friendly", "Live Music", "Organic"}
	PriceLevels          = []string{"$", "$$", "$$$", "$$$$", "$$$$$"}
)

// Default numeric ranges. Price level runs 1–5, rating 1–6.
const (
	PriceMin  = 1
	PriceMax  = 5
	RatingMin = 1
	RatingMax = 6
)

// allLabels is every known label across all enumerations, used for
// stripping labels out of the search term on toggle.
var allLabels = func() []string {
	var out []string
	out = append(out, AmenityTypes...)
	out = append(out, CuisineList...)
	out = append(out, DietaryOptions...)
	out = append(out, SeatingFeatures...)
	out = append(out, PaymentOptions...)
	out = append(out, AccessibilityOptions...)
	out = append(out, OtherOptions...)
	out = append(out, PriceLevels...)
	return out
}()

// labelPatterns holds one compiled whole-word, case-insensitive pattern per
// known label. Compiled once; labels are fixed at build time.
var labelPatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, 0, len(allLabels))
	for _, l := range allLabels {
		ps = append(ps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(l)+`\b`))
	}
	return ps
}()

// Selection is the session-local filter state: an insertion-ordered set of
// selected labels plus the free-text search term derived from them. The
// zero value is ready to use. Selection is not safe for concurrent use; it
// models per-view UI state.
type Selection struct {
	labels []string
	term   string
}

// Labels returns the selected labels in insertion order.
func (s *Selection) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Term returns the current search term.
func (s *Selection) Term() string { return s.term }

// SetTerm replaces the search term with hand-edited text. The label set is
// left untouched; free text is never parsed back into labels.
func (s *Selection) SetTerm(t string) { s.term = t }

// Has reports whether label is currently selected.
func (s *Selection) Has(label string) bool {
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}

// Toggle adds label to the selection when absent and removes it when
// present, then rewrites the search term: every known label is stripped
// from the current text (whole word, case-insensitive), the remainder is
// trimmed, and the updated label set is appended joined by single spaces.
// Stripping is global per label, so hand-typed text that happens to equal a
// label is removed too; that lossy behavior is accepted.
func (s *Selection) Toggle(label string) {
	if s.Has(label) {
		kept := s.labels[:0]
		for _, l := range s.labels {
			if l != label {
				kept = append(kept, l)
			}
		}
		s.labels = kept
	} else {
		s.labels = append(s.labels, label)
	}

	base := s.term
	for _, p := range labelPatterns {
		base = strings.TrimSpace(p.ReplaceAllString(base, ""))
	}
	s.term = strings.TrimSpace(base + " " + strings.Join(s.labels, " "))
}

// SearchPerformed reports whether the user has narrowed the search in any
// way: non-empty term, any selected label, a non-default price or rating
// range, or the bookable flag. The map draws no result markers until this
// is true.
func SearchPerformed(sel *Selection, priceLo, priceHi, ratingLo, ratingHi int, bookable bool) bool {
	if sel != nil && (sel.term != "" || len(sel.labels) > 0) {
		return true
	}
	if priceLo != PriceMin || priceHi != PriceMax {
		return true
	}
	if ratingLo != RatingMin || ratingHi != RatingMax {
		return true
	}
	return bookable
}
