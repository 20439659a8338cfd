package app

import (
	"context"
	"math"
	"time"

	"tripdesk/internal/domain"
)

// SearchService runs the hotel availability pipeline: validate, resolve the
// destination locally, call the supplier, paginate the full result set and
// enrich only the requested page with local content.
type SearchService struct {
	supplier domain.SupplierClient
	content  *ContentService
	now      func() time.Time
}

func NewSearchService(sc domain.SupplierClient, content *ContentService) *SearchService {
	return &SearchService{supplier: sc, content: content, now: time.Now}
}

func (s *SearchService) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	occupancies := BuildOccupancies(req.Rooms)
	if err := ValidateSearch(req.Destination, req.CheckIn, req.CheckOut, occupancies, s.now()); err != nil {
		return domain.SearchResponse{}, err
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	codes, countries, err := s.content.DestinationHotels(ctx, req.Destination)
	if err != nil {
		return domain.SearchResponse{}, &domain.PersistenceError{Op: "resolve destination", Err: err}
	}

	// an unknown destination still goes to the supplier with an empty code
	// list; the supplier answers with zero hotels
	payload := BuildPayload(req, occupancies, codes, countries)
	result, err := s.supplier.Search(ctx, payload)
	if err != nil {
		return domain.SearchResponse{}, err
	}

	accommodations, err := s.content.Accommodations(ctx)
	if err != nil {
		return domain.SearchResponse{}, &domain.PersistenceError{Op: "load accommodations", Err: err}
	}

	all := result.Hotels
	total := len(all)
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}
	offset := (page - 1) * pageSize

	pageHotels := slicePage(all, offset, pageSize)

	if len(pageHotels) > 0 {
		if err := s.enrich(ctx, pageHotels); err != nil {
			return domain.SearchResponse{}, err
		}
	}

	return domain.SearchResponse{
		Success:        true,
		Data:           pageHotels,
		Prices:         priceSpan(all),
		Accommodations: accommodations,
		Pagination: domain.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrev:     page > 1 && total > 0,
			Offset:      offset,
		},
	}, nil
}

func slicePage(all []domain.SupplierHotel, offset, limit int) []domain.SupplierHotel {
	if offset >= len(all) || offset < 0 {
		return []domain.SupplierHotel{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// enrich attaches each page hotel's local content under "local_data". A hotel
// with no local match keeps an empty object; zero matches across the whole
// page while the supplier returned hotels is a hard failure.
func (s *SearchService) enrich(ctx context.Context, page []domain.SupplierHotel) error {
	codes := make([]int, 0, len(page))
	for _, h := range page {
		if c, ok := hotelCode(h); ok {
			codes = append(codes, c)
		}
	}

	content, err := s.content.HotelContent(ctx, codes, false)
	if err != nil {
		return &domain.PersistenceError{Op: "load hotel content", Err: err}
	}
	if len(content) == 0 {
		return domain.ErrEnrichmentUnavailable
	}

	for _, h := range page {
		code, ok := hotelCode(h)
		if !ok {
			h["local_data"] = map[string]any{}
			continue
		}
		if c, found := content[code]; found {
			h["local_data"] = c
		} else {
			h["local_data"] = map[string]any{}
		}
	}
	return nil
}

// priceSpan reports the rounded rate bounds over the entire result set, not
// just the current page.
func priceSpan(all []domain.SupplierHotel) domain.PriceSpan {
	var span domain.PriceSpan
	haveMin, haveMax := false, false
	for _, h := range all {
		if minRate := getFloatFlexible(h, "minRate"); minRate != nil {
			lo := int(math.Round(*minRate))
			if !haveMin || lo < span.OverallMinRate {
				span.OverallMinRate = lo
				haveMin = true
			}
		}
		if maxRate := getFloatFlexible(h, "maxRate"); maxRate != nil {
			hi := int(math.Round(*maxRate))
			if !haveMax || hi > span.OverallMaxRate {
				span.OverallMaxRate = hi
				haveMax = true
			}
		}
	}
	return span
}
