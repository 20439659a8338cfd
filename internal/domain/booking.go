package domain

import "time"

// BookingRequest is the inbound hotel-booking request. Guests carries the
// room-scoped guest fields exactly as submitted
// ("room1_adult1_firstName", "room2_child1_age", ...); the orchestrator
// reconstructs the manifest from them.
type BookingRequest struct {
	TotalAmount     float64           `json:"total_amount"`
	RateKey         string            `json:"rateKey"`
	HolderFirstName string            `json:"holderFirstName"`
	HolderLastName  string            `json:"holderLastName"`
	HolderEmail     string            `json:"holderEmail"`
	Rooms           int               `json:"rooms"`
	Occupancies     []RoomRequest     `json:"occupancies"`
	HotelName       string            `json:"hotelName"`
	DestName        string            `json:"destName"`
	Category        string            `json:"category"`
	Address         string            `json:"address"`
	Phone           string            `json:"phone"`
	CheckIn         string            `json:"checkIn"`
	CheckOut        string            `json:"checkOut"`
	RoomName        string            `json:"roomName"`
	BoardName       string            `json:"boardName"`
	Currency        string            `json:"currency"`
	SpecialRequests string            `json:"special_requests"`
	PaymentType     string            `json:"payment_type"`
	PaymentMethod   string            `json:"payment_method"`
	User            string            `json:"user"`
	Guests          map[string]string `json:"guests"`
}

// BookingPax is one validated guest in the supplier booking manifest.
// Age is set for children only.
type BookingPax struct {
	RoomID  int    `json:"roomId"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Age     *int   `json:"age,omitempty"`
}

// Supplier booking wire types.

type BookingHolder struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type BookingRoom struct {
	RateKey string       `json:"rateKey"`
	Paxes   []BookingPax `json:"paxes"`
}

type BookingPayload struct {
	Holder          BookingHolder `json:"holder"`
	Rooms           []BookingRoom `json:"rooms"`
	ClientReference string        `json:"clientReference"`
	Remark          string        `json:"remark"`
}

// BookingResult is the decoded supplier booking response. Raw keeps the full
// object for passthrough to the client.
type BookingResult struct {
	Reference    string
	Status       string
	SupplierName string
	VATNumber    string
	Raw          map[string]any
}

// Booking is the locally persisted record, created only after a successful
// supplier booking call and never mutated afterwards by this core.
type Booking struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstname"`
	LastName      string    `json:"lastname"`
	Reference     string    `json:"reference"`
	Phone         string    `json:"phone"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	BookingType   string    `json:"booking_type"`
	UserKey       string    `json:"user"`
	PaymentType   string    `json:"payment_type"`
	PaymentMethod string    `json:"payment_method"`
	TotalAmount   float64   `json:"total_amount"`
	MetaJSON      []byte    `json:"-"`
}

// WalletTransaction records a signed balance movement. Persisted in the same
// transaction as the Booking and the wallet decrement.
type WalletTransaction struct {
	ID          int64
	UserID      int64
	Type        string // debit|credit
	Amount      float64
	Commission  float64
	Description string
	Date        time.Time
}

// BookingConfirmation is returned to the client on success. EmailSent is false
// when the notification could not be delivered; the booking still stands.
type BookingConfirmation struct {
	Reference string         `json:"booking_reference"`
	Status    string         `json:"status"`
	BookingID int64          `json:"booking_id"`
	Data      map[string]any `json:"data"`
	EmailSent bool           `json:"email_sent"`
}
