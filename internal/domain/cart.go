package domain

import (
	"encoding/json"
	"time"
)

// CartOwner identifies who holds a cart item: a resolved user id or a guest
// session id, never both.
type CartOwner struct {
	UserID    int64
	SessionID string
}

func (o CartOwner) IsUser() bool { return o.UserID != 0 }

// CartItem is an ephemeral pending room selection. The three data blobs are
// opaque structured documents the client round-trips.
type CartItem struct {
	ID             int64           `json:"id"`
	CartItemID     string          `json:"cart_item_id"`
	UserID         *int64          `json:"user_id"`
	SessionID      *string         `json:"session_id"`
	RoomData       json.RawMessage `json:"room_data"`
	RateData       json.RawMessage `json:"rate_data"`
	BookingDetails json.RawMessage `json:"booking_details"`
	AddedAt        time.Time       `json:"added_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
}

// CartAddResult reports whether Add created a new row; a pre-existing
// (cartItemId, owner) pair is a no-op, not an error.
type CartAddResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	CartItemID string `json:"cart_item_id"`
	IsNewItem  bool   `json:"is_new_item"`
}
