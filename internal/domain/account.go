package domain

// Account is an API consumer with a prepaid wallet. HotelMargin is the
// commission percentage applied to hotel bookings.
type Account struct {
	ID          int64
	Name        string
	Email       string
	Token       string
	Wallet      float64
	HotelMargin float64
}
