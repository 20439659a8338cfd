package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"tripdesk/internal/domain"
)

// ---- in-memory cache ----

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	gets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *memCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// ---- content repository ----

type fakeContentRepo struct {
	hotels    map[int]domain.HotelBase
	countries map[int]string
	byDest    map[string][]int
	images    map[int][]domain.Image
	calls     struct {
		baseHotels int
		byDest     int
	}
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{
		hotels:    map[int]domain.HotelBase{},
		countries: map[int]string{},
		byDest:    map[string][]int{},
		images:    map[int][]domain.Image{},
	}
}

func (f *fakeContentRepo) addHotel(code int, dest, country string) {
	f.hotels[code] = domain.HotelBase{Code: code}
	f.countries[code] = country
	f.byDest[dest] = append(f.byDest[dest], code)
}

func (f *fakeContentRepo) HotelIDsByDestination(_ context.Context, destCode string) ([]int, []string, error) {
	f.calls.byDest++
	codes := f.byDest[destCode]
	countries := make([]string, len(codes))
	for i, c := range codes {
		countries[i] = f.countries[c]
	}
	return codes, countries, nil
}

func (f *fakeContentRepo) HotelCountryCode(_ context.Context, code int) (string, error) {
	if cc, ok := f.countries[code]; ok {
		return cc, nil
	}
	return "", domain.ErrNotFound
}

func (f *fakeContentRepo) BaseHotels(_ context.Context, codes []int) ([]domain.HotelBase, error) {
	f.calls.baseHotels++
	var out []domain.HotelBase
	for _, c := range codes {
		if h, ok := f.hotels[c]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) ImagesByTypes(_ context.Context, codes []int, _ []string) (map[int][]domain.Image, error) {
	out := map[int][]domain.Image{}
	for _, c := range codes {
		if imgs, ok := f.images[c]; ok {
			out[c] = imgs
		}
	}
	return out, nil
}

func (f *fakeContentRepo) MainImages(_ context.Context, codes []int) (map[int][]domain.Image, error) {
	return f.ImagesByTypes(nil, codes, nil)
}

func (f *fakeContentRepo) FacilitiesByGroups(_ context.Context, _ []int, _ []int) (map[int][]domain.Facility, error) {
	return map[int][]domain.Facility{}, nil
}

func (f *fakeContentRepo) LimitedFacilities(_ context.Context, _ []int, _, _ int) (map[int][]domain.Facility, error) {
	return map[int][]domain.Facility{}, nil
}

func (f *fakeContentRepo) HotelFacilities(_ context.Context, _ int) ([]domain.Facility, error) {
	return nil, nil
}

func (f *fakeContentRepo) RoomFacilities(_ context.Context, _ int, _ []string) (map[string][]domain.RoomFacility, error) {
	return map[string][]domain.RoomFacility{}, nil
}

func (f *fakeContentRepo) RoomImages(_ context.Context, _ int, _ []string) (map[string][]domain.Image, error) {
	return map[string][]domain.Image{}, nil
}

func (f *fakeContentRepo) Accommodations(_ context.Context) ([]domain.Accommodation, error) {
	return []domain.Accommodation{{Code: "HOTEL", Description: "Hotel"}}, nil
}

func (f *fakeContentRepo) SearchDestinations(_ context.Context, _ string) ([]domain.DestinationHit, error) {
	return nil, nil
}

func (f *fakeContentRepo) SearchHotels(_ context.Context, _ string) ([]domain.DestinationHit, error) {
	return nil, nil
}

func (f *fakeContentRepo) HotelInfoByCode(_ context.Context, code int) (domain.HotelInfo, error) {
	if _, ok := f.hotels[code]; !ok {
		return domain.HotelInfo{}, domain.ErrNotFound
	}
	name := fmt.Sprintf("Hotel %d", code)
	return domain.HotelInfo{Code: code, Name: &name}, nil
}

// ---- supplier ----

type fakeSupplier struct {
	searchResult domain.SupplierResult
	searchErr    error
	searchCalls  int
	lastPayload  domain.SearchPayload

	bookResult domain.BookingResult
	bookErr    error
	bookCalls  int
	lastBook   domain.BookingPayload
}

func (f *fakeSupplier) Search(_ context.Context, p domain.SearchPayload) (domain.SupplierResult, error) {
	f.searchCalls++
	f.lastPayload = p
	return f.searchResult, f.searchErr
}

func (f *fakeSupplier) Book(_ context.Context, p domain.BookingPayload) (domain.BookingResult, error) {
	f.bookCalls++
	f.lastBook = p
	return f.bookResult, f.bookErr
}

func (f *fakeSupplier) CheckRates(_ context.Context, _ []string) (map[string]any, error) {
	return map[string]any{"ok": true}, nil
}

// ---- booking repo / accounts / notifier ----

type fakeBookingRepo struct {
	createErr error
	bookings  []domain.Booking
	txs       []domain.WalletTransaction
	debits    []float64
	nextID    int64
}

func (f *fakeBookingRepo) CreateWithDebit(_ context.Context, b domain.Booking, wt domain.WalletTransaction, debit float64) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	b.ID = f.nextID
	f.bookings = append(f.bookings, b)
	f.txs = append(f.txs, wt)
	f.debits = append(f.debits, debit)
	return f.nextID, nil
}

func (f *fakeBookingRepo) ByReference(_ context.Context, ref string) (domain.Booking, error) {
	for _, b := range f.bookings {
		if b.Reference == ref {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}

func (f *fakeBookingRepo) ByUser(_ context.Context, email string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeAccounts struct {
	account domain.Account
	lastKey string
}

func (f *fakeAccounts) IsValidAPIKey(_ context.Context, key string) (bool, error) {
	return key == f.account.Token, nil
}

func (f *fakeAccounts) ByKey(_ context.Context, k string) (domain.Account, error) {
	f.lastKey = k
	if k == f.account.Token || k == f.account.Email {
		return f.account, nil
	}
	return domain.Account{}, domain.ErrNotFound
}

type fakeNotifier struct {
	sent    int
	sendErr error
	lastTo  string
}

func (f *fakeNotifier) Send(_ context.Context, to, _, _, _ string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	f.lastTo = to
	return nil
}

// ---- cart repo ----

type fakeCartRepo struct {
	items  []domain.CartItem
	nextID int64
}

func ownerMatches(item domain.CartItem, owner domain.CartOwner) bool {
	if owner.IsUser() {
		return item.UserID != nil && *item.UserID == owner.UserID
	}
	return item.UserID == nil && item.SessionID != nil && *item.SessionID == owner.SessionID
}

func (f *fakeCartRepo) Exists(_ context.Context, cartItemID string, owner domain.CartOwner) (bool, error) {
	for _, it := range f.items {
		if it.CartItemID == cartItemID && ownerMatches(it, owner) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) Insert(_ context.Context, item domain.CartItem, owner domain.CartOwner) (int64, error) {
	f.nextID++
	item.ID = f.nextID
	if owner.IsUser() {
		u := owner.UserID
		item.UserID = &u
	} else {
		s := owner.SessionID
		item.SessionID = &s
	}
	f.items = append(f.items, item)
	return f.nextID, nil
}

func (f *fakeCartRepo) ItemsByOwner(_ context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	var out []domain.CartItem
	for _, it := range f.items {
		if ownerMatches(it, owner) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) ItemByID(_ context.Context, id int64) (domain.CartItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return domain.CartItem{}, domain.ErrNotFound
}

func (f *fakeCartRepo) Remove(_ context.Context, id int64) (bool, error) {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) TransferGuestToUser(_ context.Context, userID int64, sessionID string) error {
	for i := range f.items {
		it := &f.items[i]
		if it.UserID == nil && it.SessionID != nil && *it.SessionID == sessionID {
			u := userID
			it.UserID = &u
			it.SessionID = nil
		}
	}
	return nil
}
