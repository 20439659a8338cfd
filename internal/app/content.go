package app

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tripdesk/internal/domain"
)

// Image-type tags fetched for the detailed hotel view.
var detailImageTypes = []string{"GEN", "DEP", "COM", "PIS", "RES", "BAR", "PLA"}

// Facility group codes for the detailed view; group 70 capped at 4 entries
// feeds the summary view.
var detailFacilityGroups = []int{10, 40}

const (
	summaryFacilityGroup = 70
	summaryFacilityCap   = 4
)

// ContentService is the cache-aside layer over the local hotel content store.
// Every read is idempotent and safe to serve stale within the TTL window.
type ContentService struct {
	repo     domain.ContentRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewContentService(r domain.ContentRepository, c domain.Cache, ttl time.Duration) *ContentService {
	return &ContentService{repo: r, cache: c, cacheTTL: ttl}
}

// cacheKey builds a deterministic key from an operation name and sorted
// operand ids; long operand lists collapse to an md5 digest.
func cacheKey(op string, operands []string) string {
	sorted := make([]string, len(operands))
	copy(sorted, operands)
	sort.Strings(sorted)
	joined := strings.Join(sorted, ",")
	if len(joined) > 120 {
		sum := md5.Sum([]byte(joined))
		joined = hex.EncodeToString(sum[:])
	}
	return op + ":" + joined
}

func intOperands(codes []int) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strconv.Itoa(c)
	}
	return out
}

func (s *ContentService) ttlSec() int { return int(s.cacheTTL.Seconds()) }

type destinationHotels struct {
	Codes     []int    `json:"codes"`
	Countries []string `json:"countries"`
}

// DestinationHotels resolves a destination code to its local hotel codes and
// their country codes, capped at 1000 rows by the repository.
func (s *ContentService) DestinationHotels(ctx context.Context, destCode string) ([]int, []string, error) {
	key := cacheKey("dest:hotels", []string{destCode})
	var dh destinationHotels
	if ok, _ := s.cache.Get(ctx, key, &dh); ok {
		return dh.Codes, dh.Countries, nil
	}
	codes, countries, err := s.repo.HotelIDsByDestination(ctx, destCode)
	if err != nil {
		return nil, nil, err
	}
	_ = s.cache.Set(ctx, key, destinationHotels{Codes: codes, Countries: countries}, s.ttlSec())
	return codes, countries, nil
}

// BaseHotels returns the base fields for a code list, keyed by hotel code.
func (s *ContentService) BaseHotels(ctx context.Context, codes []int) (map[int]domain.HotelBase, error) {
	key := cacheKey("hotels:base", intOperands(codes))
	var out map[int]domain.HotelBase
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rows, err := s.repo.BaseHotels(ctx, codes)
	if err != nil {
		return nil, err
	}
	out = make(map[int]domain.HotelBase, len(rows))
	for _, h := range rows {
		out[h.Code] = h
	}
	_ = s.cache.Set(ctx, key, out, s.ttlSec())
	return out, nil
}

// HotelContent assembles the per-hotel local data attached to a search page.
// Detailed pages carry the full image/facility sets; summary pages carry one
// general image and a capped facility list. Images and facilities load in
// parallel.
func (s *ContentService) HotelContent(ctx context.Context, codes []int, detailed bool) (map[int]domain.HotelContent, error) {
	if len(codes) == 0 {
		return map[int]domain.HotelContent{}, nil
	}

	bases, err := s.BaseHotels(ctx, codes)
	if err != nil {
		return nil, err
	}

	var images map[int][]domain.Image
	var facilities map[int][]domain.Facility

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.images(gctx, codes, detailed)
		return err
	})
	g.Go(func() error {
		var err error
		facilities, err = s.facilities(gctx, codes, detailed)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int]domain.HotelContent, len(bases))
	for code, base := range bases {
		out[code] = domain.HotelContent{
			HotelBase:  base,
			Images:     images[code],
			Facilities: facilities[code],
		}
	}
	return out, nil
}

func (s *ContentService) images(ctx context.Context, codes []int, detailed bool) (map[int][]domain.Image, error) {
	op := "hotels:images:main"
	if detailed {
		op = "hotels:images:detail"
	}
	key := cacheKey(op, intOperands(codes))
	var out map[int][]domain.Image
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	var err error
	if detailed {
		out, err = s.repo.ImagesByTypes(ctx, codes, detailImageTypes)
	} else {
		out, err = s.repo.MainImages(ctx, codes)
	}
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, s.ttlSec())
	return out, nil
}

func (s *ContentService) facilities(ctx context.Context, codes []int, detailed bool) (map[int][]domain.Facility, error) {
	op := "hotels:facilities:summary"
	if detailed {
		op = "hotels:facilities:detail"
	}
	key := cacheKey(op, intOperands(codes))
	var out map[int][]domain.Facility
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	var err error
	if detailed {
		out, err = s.repo.FacilitiesByGroups(ctx, codes, detailFacilityGroups)
	} else {
		out, err = s.repo.LimitedFacilities(ctx, codes, summaryFacilityGroup, summaryFacilityCap)
	}
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, out, s.ttlSec())
	return out, nil
}

// RoomContent returns facilities and images for a hotel's room codes, both
// keyed by room code.
func (s *ContentService) RoomContent(ctx context.Context, hotelCode int, codes []string) (map[string][]domain.RoomFacility, map[string][]domain.Image, error) {
	operands := append([]string{strconv.Itoa(hotelCode)}, codes...)
	facKey := cacheKey("rooms:facilities", operands)
	imgKey := cacheKey("rooms:images", operands)

	var facs map[string][]domain.RoomFacility
	var imgs map[string][]domain.Image
	facHit, _ := s.cache.Get(ctx, facKey, &facs)
	imgHit, _ := s.cache.Get(ctx, imgKey, &imgs)
	if facHit && imgHit {
		return facs, imgs, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if !facHit {
		g.Go(func() error {
			var err error
			facs, err = s.repo.RoomFacilities(gctx, hotelCode, codes)
			if err == nil {
				_ = s.cache.Set(gctx, facKey, facs, s.ttlSec())
			}
			return err
		})
	}
	if !imgHit {
		g.Go(func() error {
			var err error
			imgs, err = s.repo.RoomImages(gctx, hotelCode, codes)
			if err == nil {
				_ = s.cache.Set(gctx, imgKey, imgs, s.ttlSec())
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return facs, imgs, nil
}

// HotelFacilities is the full ordered facility list for one hotel.
func (s *ContentService) HotelFacilities(ctx context.Context, code int) ([]domain.Facility, error) {
	key := cacheKey("hotel:facilities", []string{strconv.Itoa(code)})
	var out []domain.Facility
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rows, err := s.repo.HotelFacilities(ctx, code)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rows, s.ttlSec())
	return rows, nil
}

// Accommodations is the accommodation taxonomy, cached as a whole.
func (s *ContentService) Accommodations(ctx context.Context) ([]domain.Accommodation, error) {
	key := "accommodations:all"
	var out []domain.Accommodation
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	rows, err := s.repo.Accommodations(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, rows, s.ttlSec())
	return rows, nil
}

// SearchDestinations is the destination/hotel typeahead; both lookups run in
// parallel and the merged hit list is cached per query string.
func (s *ContentService) SearchDestinations(ctx context.Context, q string) ([]domain.DestinationHit, error) {
	key := cacheKey("typeahead", []string{strings.ToLower(q)})
	var out []domain.DestinationHit
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	var dests, hotels []domain.DestinationHit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dests, err = s.repo.SearchDestinations(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		hotels, err = s.repo.SearchHotels(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out = append(dests, hotels...)
	_ = s.cache.Set(ctx, key, out, s.ttlSec())
	return out, nil
}

// HotelInfo is the single-hotel record used to describe cart selections.
func (s *ContentService) HotelInfo(ctx context.Context, code int) (domain.HotelInfo, error) {
	key := cacheKey("hotel:info", []string{strconv.Itoa(code)})
	var out domain.HotelInfo
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	hi, err := s.repo.HotelInfoByCode(ctx, code)
	if err != nil {
		return domain.HotelInfo{}, err
	}
	_ = s.cache.Set(ctx, key, hi, s.ttlSec())
	return hi, nil
}
