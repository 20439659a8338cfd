package domain

import "context"

// ContentRepository is the relational store for hotel metadata, images,
// facilities and taxonomies. Every query here is idempotent and safe to serve
// stale from the cache layer; nothing on the search path writes back.
type ContentRepository interface {
	HotelIDsByDestination(ctx context.Context, destCode string) (codes []int, countryCodes []string, err error)
	HotelCountryCode(ctx context.Context, code int) (string, error)
	BaseHotels(ctx context.Context, codes []int) ([]HotelBase, error)
	ImagesByTypes(ctx context.Context, codes []int, imageTypes []string) (map[int][]Image, error)
	MainImages(ctx context.Context, codes []int) (map[int][]Image, error)
	FacilitiesByGroups(ctx context.Context, codes []int, groups []int) (map[int][]Facility, error)
	LimitedFacilities(ctx context.Context, codes []int, group, limit int) (map[int][]Facility, error)
	HotelFacilities(ctx context.Context, code int) ([]Facility, error)
	RoomFacilities(ctx context.Context, hotelCode int, roomCodes []string) (map[string][]RoomFacility, error)
	RoomImages(ctx context.Context, hotelCode int, roomCodes []string) (map[string][]Image, error)
	Accommodations(ctx context.Context) ([]Accommodation, error)
	SearchDestinations(ctx context.Context, q string) ([]DestinationHit, error)
	SearchHotels(ctx context.Context, q string) ([]DestinationHit, error)
	HotelInfoByCode(ctx context.Context, code int) (HotelInfo, error)
}

// CartRepository persists pending selections with TTL-based expiry enforced at
// read time.
type CartRepository interface {
	Exists(ctx context.Context, cartItemID string, owner CartOwner) (bool, error)
	Insert(ctx context.Context, item CartItem, owner CartOwner) (int64, error)
	ItemsByOwner(ctx context.Context, owner CartOwner) ([]CartItem, error)
	ItemByID(ctx context.Context, id int64) (CartItem, error)
	Remove(ctx context.Context, id int64) (bool, error)
	TransferGuestToUser(ctx context.Context, userID int64, sessionID string) error
}

// BookingRepository persists bookings and wallet movements. CreateWithDebit
// must execute the booking insert, the wallet transaction insert and the
// balance decrement inside a single local transaction.
type BookingRepository interface {
	CreateWithDebit(ctx context.Context, b Booking, tx WalletTransaction, debit float64) (int64, error)
	ByReference(ctx context.Context, reference string) (Booking, error)
	ByUser(ctx context.Context, email string) ([]Booking, error)
}

// AccountRepository resolves API consumers and their wallets.
type AccountRepository interface {
	IsValidAPIKey(ctx context.Context, key string) (bool, error)
	ByKey(ctx context.Context, keyOrEmail string) (Account, error)
}

// SupplierClient is the mutually authenticated hotel inventory/booking API.
type SupplierClient interface {
	Search(ctx context.Context, payload SearchPayload) (SupplierResult, error)
	Book(ctx context.Context, payload BookingPayload) (BookingResult, error)
	CheckRates(ctx context.Context, rateKeys []string) (map[string]any, error)
}

// Cache is a TTL key-value store. Get returns (false, nil) on a miss or an
// expired entry.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Notifier delivers outbound email. A send failure never rolls back the
// operation that triggered it.
type Notifier interface {
	Send(ctx context.Context, to, name, subject, htmlBody string) error
}

// PaymentIntent is the third-party processor's handle for a pending charge.
type PaymentIntent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

// PaymentStatus reports the processor-side state of an intent.
type PaymentStatus struct {
	Success         bool   `json:"success"`
	Status          string `json:"status"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	RequiresAction  bool   `json:"requires_action"`
}

// PaymentProcessor is the external card-payment capability.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (PaymentIntent, error)
	ConfirmIntent(ctx context.Context, id string) (PaymentStatus, error)
}
