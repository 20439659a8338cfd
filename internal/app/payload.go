package app

import (
	"tripdesk/internal/domain"
)

const (
	reviewType        = "HOTELBEDS"
	defaultMinReview  = 1.0
	defaultMaxReview  = 5.0
	minReviewCountDef = 1
)

// BuildPayload assembles the supplier availability request from validated
// input plus the destination's resolved hotel codes. countryCodes runs
// parallel to codes; the payload's source market is the most frequent one,
// first seen winning ties.
func BuildPayload(req domain.SearchRequest, occupancies []domain.Occupancy, codes []int, countryCodes []string) domain.SearchPayload {
	minRate, maxRate := defaultMinReview, defaultMaxReview
	if req.MinRating != nil {
		minRate = *req.MinRating
	}
	if req.MaxRating != nil {
		maxRate = *req.MaxRating
	}

	p := domain.SearchPayload{
		Stay:         domain.Stay{CheckIn: req.CheckIn, CheckOut: req.CheckOut},
		Occupancies:  occupancies,
		Hotels:       domain.HotelCodes{Hotel: codes},
		SourceMarket: dominantCountry(countryCodes),
		Reviews: []domain.ReviewFilter{{
			Type:           reviewType,
			MinRate:        minRate,
			MaxRate:        maxRate,
			MinReviewCount: minReviewCountDef,
		}},
		Pagination:     domain.PageRequest{Page: req.Page, PageSize: req.PageSize},
		Accommodations: req.Accommodations,
	}
	if !req.Filters.Empty() {
		f := req.Filters
		p.Filter = &f
	}
	return p
}

// dominantCountry returns the most frequent non-empty code; ties break toward
// the code seen first.
func dominantCountry(codes []string) string {
	counts := make(map[string]int)
	var order []string
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}
	best := ""
	bestN := 0
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}
