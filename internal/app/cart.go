package app

import (
	"context"
	"encoding/json"
	"time"

	"tripdesk/internal/domain"
)

// CartService manages ephemeral pending selections. Expiry is enforced at
// read time by the repository; no background sweep runs.
type CartService struct {
	repo    domain.CartRepository
	content *ContentService
	ttl     time.Duration
	now     func() time.Time
}

func NewCartService(r domain.CartRepository, content *ContentService, ttl time.Duration) *CartService {
	return &CartService{repo: r, content: content, ttl: ttl, now: time.Now}
}

// Add stores a selection for its owner. A pre-existing (cartItemId, owner)
// pair is reported as success with IsNewItem=false, never duplicated.
func (s *CartService) Add(ctx context.Context, item domain.CartItem, owner domain.CartOwner) (domain.CartAddResult, error) {
	if item.CartItemID == "" {
		return domain.CartAddResult{}, &domain.ValidationError{Field: "cartItemId", Detail: "cart item id is required"}
	}
	if !owner.IsUser() && owner.SessionID == "" {
		return domain.CartAddResult{}, &domain.ValidationError{Field: "sessionId", Detail: "a user or session owner is required"}
	}

	exists, err := s.repo.Exists(ctx, item.CartItemID, owner)
	if err != nil {
		return domain.CartAddResult{}, &domain.PersistenceError{Op: "cart exists", Err: err}
	}
	if exists {
		return domain.CartAddResult{
			Success:    true,
			Message:    "item already in cart",
			CartItemID: item.CartItemID,
			IsNewItem:  false,
		}, nil
	}

	now := s.now()
	item.AddedAt = now
	item.ExpiresAt = now.Add(s.ttl)
	if _, err := s.repo.Insert(ctx, item, owner); err != nil {
		return domain.CartAddResult{}, &domain.PersistenceError{Op: "cart insert", Err: err}
	}
	return domain.CartAddResult{
		Success:    true,
		Message:    "item added to cart",
		CartItemID: item.CartItemID,
		IsNewItem:  true,
	}, nil
}

// Items returns the owner's non-expired selections.
func (s *CartService) Items(ctx context.Context, owner domain.CartOwner) ([]domain.CartItem, error) {
	items, err := s.repo.ItemsByOwner(ctx, owner)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "cart read", Err: err}
	}
	return items, nil
}

// ItemDetails is a single cart row joined with its hotel's local record.
type ItemDetails struct {
	Item  domain.CartItem   `json:"item"`
	Hotel *domain.HotelInfo `json:"hotel,omitempty"`
}

// ItemByID fetches one cart row and, when the stored booking details name a
// hotel code, the hotel's local record.
func (s *CartService) ItemByID(ctx context.Context, id int64) (ItemDetails, error) {
	item, err := s.repo.ItemByID(ctx, id)
	if err != nil {
		return ItemDetails{}, err
	}
	out := ItemDetails{Item: item}

	if code, ok := cartHotelCode(item); ok {
		if hi, err := s.content.HotelInfo(ctx, code); err == nil {
			out.Hotel = &hi
		}
	}
	return out, nil
}

// Remove deletes one row by id; a missing row reports ErrNotFound.
func (s *CartService) Remove(ctx context.Context, id int64) error {
	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		return &domain.PersistenceError{Op: "cart remove", Err: err}
	}
	if !removed {
		return domain.ErrNotFound
	}
	return nil
}

// TransferGuestToUser moves a session's live items to the user at login. Safe
// to call when the session holds nothing.
func (s *CartService) TransferGuestToUser(ctx context.Context, userID int64, sessionID string) error {
	if err := s.repo.TransferGuestToUser(ctx, userID, sessionID); err != nil {
		return &domain.PersistenceError{Op: "cart transfer", Err: err}
	}
	return nil
}

func cartHotelCode(item domain.CartItem) (int, bool) {
	for _, blob := range [][]byte{item.BookingDetails, item.RoomData} {
		if len(blob) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(blob, &m); err != nil {
			continue
		}
		if c, ok := getIntFlexible(m, "hotelCode", "hotel_code", "code"); ok {
			return c, true
		}
	}
	return 0, false
}
