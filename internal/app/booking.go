package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	_ "embed"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripdesk/internal/domain"
)

//go:embed templates/booking_confirmation.html
var confirmationHTML string

var confirmationTmpl = template.Must(template.New("booking_confirmation").Parse(confirmationHTML))

// BookingService orchestrates a hotel booking: guest-manifest validation,
// funding check, the supplier call, the local booking + wallet transaction
// and the confirmation email.
type BookingService struct {
	supplier domain.SupplierClient
	bookings domain.BookingRepository
	accounts domain.AccountRepository
	notifier domain.Notifier
	now      func() time.Time
}

func NewBookingService(sc domain.SupplierClient, br domain.BookingRepository, ar domain.AccountRepository, n domain.Notifier) *BookingService {
	return &BookingService{supplier: sc, bookings: br, accounts: ar, notifier: n, now: time.Now}
}

func (s *BookingService) Book(ctx context.Context, req domain.BookingRequest) (domain.BookingConfirmation, error) {
	if err := checkRequired(req); err != nil {
		return domain.BookingConfirmation{}, err
	}

	paxes, err := BuildGuestManifest(req.Occupancies, req.Guests)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}

	// funds are checked before the supplier is called so a confirmed
	// reservation can always be settled
	account, err := s.accounts.ByKey(ctx, req.User)
	if err != nil {
		return domain.BookingConfirmation{}, &domain.PersistenceError{Op: "resolve account", Err: err}
	}
	if account.Wallet < req.TotalAmount {
		return domain.BookingConfirmation{}, domain.ErrInsufficientFunds
	}

	payload := buildBookingPayload(req, paxes)
	result, err := s.supplier.Book(ctx, payload)
	if err != nil {
		return domain.BookingConfirmation{}, err
	}

	commission := 0.0
	if account.HotelMargin > 0 {
		commission = account.HotelMargin / 100 * req.TotalAmount
	}
	debit := req.TotalAmount - commission

	now := s.now()
	meta, _ := json.Marshal(map[string]string{
		"hotelName": req.HotelName,
		"destName":  req.DestName,
		"checkIn":   req.CheckIn,
		"checkOut":  req.CheckOut,
		"roomName":  req.RoomName,
		"boardName": req.BoardName,
		"currency":  req.Currency,
	})
	booking := domain.Booking{
		Email:         req.HolderEmail,
		FirstName:     req.HolderFirstName,
		LastName:      req.HolderLastName,
		Reference:     result.Reference,
		Phone:         req.Phone,
		Date:          now,
		Status:        result.Status,
		BookingType:   "hotel",
		UserKey:       req.User,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		TotalAmount:   req.TotalAmount,
		MetaJSON:      meta,
	}
	wt := domain.WalletTransaction{
		UserID:      account.ID,
		Type:        "debit",
		Amount:      req.TotalAmount,
		Commission:  commission,
		Description: "hotel booking " + result.Reference,
		Date:        now,
	}

	bookingID, err := s.bookings.CreateWithDebit(ctx, booking, wt, debit)
	if err != nil {
		// the supplier holds a confirmed reservation with no local
		// record; log the reference for manual reconciliation
		orphan := &domain.OrphanedBookingError{Reference: result.Reference, Err: err}
		log.Error().Str("reference", result.Reference).Err(err).Msg("orphaned booking: supplier confirmed, local persistence failed")
		return domain.BookingConfirmation{}, orphan
	}

	emailSent := s.sendConfirmation(ctx, req, result)

	return domain.BookingConfirmation{
		Reference: result.Reference,
		Status:    result.Status,
		BookingID: bookingID,
		Data:      result.Raw,
		EmailSent: emailSent,
	}, nil
}

func checkRequired(req domain.BookingRequest) error {
	switch {
	case req.HolderFirstName == "":
		return &domain.ValidationError{Field: "holderFirstName", Detail: "holder first name is required"}
	case req.HolderLastName == "":
		return &domain.ValidationError{Field: "holderLastName", Detail: "holder last name is required"}
	case req.HolderEmail == "":
		return &domain.ValidationError{Field: "holderEmail", Detail: "holder email is required"}
	case req.RateKey == "":
		return &domain.ValidationError{Field: "rateKey", Detail: "rate key is required"}
	case req.Rooms < 1:
		return &domain.ValidationError{Field: "rooms", Detail: "room count must be positive"}
	case req.TotalAmount <= 0:
		return &domain.ValidationError{Field: "total_amount", Detail: "total amount must be positive"}
	}
	return nil
}

func buildBookingPayload(req domain.BookingRequest, paxes []domain.BookingPax) domain.BookingPayload {
	byRoom := make(map[int][]domain.BookingPax)
	for _, p := range paxes {
		byRoom[p.RoomID] = append(byRoom[p.RoomID], p)
	}
	rooms := make([]domain.BookingRoom, 0, req.Rooms)
	for i := 1; i <= req.Rooms; i++ {
		rooms = append(rooms, domain.BookingRoom{
			RateKey: req.RateKey,
			Paxes:   byRoom[i],
		})
	}
	return domain.BookingPayload{
		Holder:          domain.BookingHolder{Name: req.HolderFirstName, Surname: req.HolderLastName},
		Rooms:           rooms,
		ClientReference: uuid.NewString(),
		Remark:          req.SpecialRequests,
	}
}

// sendConfirmation is best-effort; a failed send never rolls back the booking.
func (s *BookingService) sendConfirmation(ctx context.Context, req domain.BookingRequest, result domain.BookingResult) bool {
	var body bytes.Buffer
	data := map[string]string{
		"HolderName": req.HolderFirstName + " " + req.HolderLastName,
		"Reference":  result.Reference,
		"Status":     result.Status,
		"HotelName":  req.HotelName,
		"DestName":   req.DestName,
		"CheckIn":    req.CheckIn,
		"CheckOut":   req.CheckOut,
		"RoomName":   req.RoomName,
		"BoardName":  req.BoardName,
		"Total":      fmt.Sprintf("%.2f %s", req.TotalAmount, req.Currency),
	}
	if err := confirmationTmpl.Execute(&body, data); err != nil {
		log.Warn().Err(err).Msg("booking confirmation template failed")
		return false
	}
	subject := "Booking confirmation " + result.Reference
	if err := s.notifier.Send(ctx, req.HolderEmail, data["HolderName"], subject, body.String()); err != nil {
		log.Warn().Str("reference", result.Reference).Err(err).Msg("booking confirmation email failed")
		return false
	}
	return true
}

// Booking returns a persisted booking by its supplier reference.
func (s *BookingService) Booking(ctx context.Context, reference string) (domain.Booking, error) {
	return s.bookings.ByReference(ctx, reference)
}

// UserBookings lists a holder's bookings, newest first.
func (s *BookingService) UserBookings(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ByUser(ctx, email)
}

// CheckRates re-prices a rate key against the supplier before booking.
func (s *BookingService) CheckRates(ctx context.Context, rateKeys []string) (map[string]any, error) {
	if len(rateKeys) == 0 {
		return nil, &domain.ValidationError{Field: "rateKeys", Detail: "at least one rate key is required"}
	}
	return s.supplier.CheckRates(ctx, rateKeys)
}
