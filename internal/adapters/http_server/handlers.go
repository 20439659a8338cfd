package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tripdesk/internal/adapters/observability"
	"tripdesk/internal/app"
	"tripdesk/internal/domain"
)

type Handlers struct {
	Search   *app.SearchService
	Content  *app.ContentService
	Cart     *app.CartService
	Booking  *app.BookingService
	Payments domain.PaymentProcessor
	Accounts domain.AccountRepository
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(Auth(h.Accounts))

		r.Post("/hotels/search", h.searchHotels)
		r.Get("/destinations", h.searchDestinations)
		r.Get("/accommodations", h.listAccommodations)
		r.Get("/hotels/{code:[0-9]+}", h.hotelDetails)
		r.Get("/hotels/{code:[0-9]+}/facilities", h.hotelFacilities)
		r.Post("/hotels/{code:[0-9]+}/rooms", h.roomContent)
		r.Post("/checkrates", h.checkRates)

		r.Post("/cart", h.cartAdd)
		r.Get("/cart", h.cartItems)
		r.Get("/cart/{id:[0-9]+}", h.cartItem)
		r.Delete("/cart/{id:[0-9]+}", h.cartRemove)
		r.Post("/cart/transfer", h.cartTransfer)

		r.Post("/bookings", h.createBooking)
		r.Get("/bookings", h.userBookings)
		r.Get("/bookings/{reference}", h.bookingDetails)

		r.Post("/payments/intent", h.createPaymentIntent)
		r.Post("/payments/intent/{id}/confirm", h.confirmPaymentIntent)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Input", "request body is not valid JSON")
		return false
	}
	return true
}

// ---- search & content ----

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.Search.Search(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) searchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) < 2 {
		writeError(w, http.StatusBadRequest, "Invalid Input", "query must be at least 2 characters")
		return
	}
	hits, err := h.Content.SearchDestinations(r.Context(), q)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": hits})
}

func (h *Handlers) listAccommodations(w http.ResponseWriter, r *http.Request) {
	accs, err := h.Content.Accommodations(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": accs})
}

func (h *Handlers) hotelCode(w http.ResponseWriter, r *http.Request) (int, bool) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || code <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid Input", "hotel code must be a positive number")
		return 0, false
	}
	return code, true
}

func (h *Handlers) hotelDetails(w http.ResponseWriter, r *http.Request) {
	code, ok := h.hotelCode(w, r)
	if !ok {
		return
	}
	info, err := h.Content.HotelInfo(r.Context(), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	content, err := h.Content.HotelContent(r.Context(), []int{code}, true)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"hotel":   info,
			"content": content[code],
		},
	})
}

func (h *Handlers) hotelFacilities(w http.ResponseWriter, r *http.Request) {
	code, ok := h.hotelCode(w, r)
	if !ok {
		return
	}
	facs, err := h.Content.HotelFacilities(r.Context(), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": facs})
}

func (h *Handlers) roomContent(w http.ResponseWriter, r *http.Request) {
	code, ok := h.hotelCode(w, r)
	if !ok {
		return
	}
	var req struct {
		RoomCodes []string `json:"roomCodes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.RoomCodes) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid Input", "roomCodes is required")
		return
	}
	facs, imgs, err := h.Content.RoomContent(r.Context(), code, req.RoomCodes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"facilities": facs, "images": imgs},
	})
}

func (h *Handlers) checkRates(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RateKeys []string `json:"rateKeys"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := h.Booking.CheckRates(r.Context(), req.RateKeys)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": out})
}

// ---- cart ----

type cartAddRequest struct {
	CartItemID     string          `json:"cartItemId"`
	UserID         int64           `json:"userId"`
	SessionID      string          `json:"sessionId"`
	RoomData       json.RawMessage `json:"roomData"`
	RateData       json.RawMessage `json:"rateData"`
	BookingDetails json.RawMessage `json:"bookingDetails"`
}

func cartOwner(userID int64, sessionID string) domain.CartOwner {
	if userID != 0 {
		return domain.CartOwner{UserID: userID}
	}
	return domain.CartOwner{SessionID: sessionID}
}

func (h *Handlers) cartAdd(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item := domain.CartItem{
		CartItemID:     req.CartItemID,
		RoomData:       req.RoomData,
		RateData:       req.RateData,
		BookingDetails: req.BookingDetails,
	}
	res, err := h.Cart.Add(r.Context(), item, cartOwner(req.UserID, req.SessionID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) cartItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	sessionID := r.URL.Query().Get("sessionId")
	if userID == 0 && sessionID == "" {
		writeError(w, http.StatusBadRequest, "Invalid Input", "a userId or sessionId is required")
		return
	}
	items, err := h.Cart.Items(r.Context(), cartOwner(userID, sessionID))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": items})
}

func (h *Handlers) cartID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid Input", "cart id must be a positive number")
		return 0, false
	}
	return id, true
}

func (h *Handlers) cartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}
	details, err := h.Cart.ItemByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": details})
}

func (h *Handlers) cartRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if err := h.Cart.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handlers) cartTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID    int64  `json:"userId"`
		SessionID string `json:"sessionId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid Input", "userId is required")
		return
	}
	if err := h.Cart.TransferGuestToUser(r.Context(), req.UserID, req.SessionID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ---- bookings ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	conf, err := h.Booking.Book(r.Context(), req)
	if err != nil {
		var oe *domain.OrphanedBookingError
		var se *domain.SupplierError
		switch {
		case errors.As(err, &oe):
			observability.ObserveBooking("orphaned")
		case errors.Is(err, domain.ErrInsufficientFunds):
			observability.ObserveBooking("insufficient_funds")
		case errors.As(err, &se):
			observability.ObserveBooking("rejected")
		}
		writeDomainError(w, err)
		return
	}
	observability.ObserveBooking("confirmed")
	writeJSON(w, http.StatusOK, conf)
}

func (h *Handlers) bookingDetails(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "reference")
	b, err := h.Booking.Booking(r.Context(), ref)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": b})
}

func (h *Handlers) userBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Invalid Input", "email is required")
		return
	}
	list, err := h.Booking.UserBookings(r.Context(), email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": list})
}

// ---- payments ----

func (h *Handlers) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 || req.Currency == "" {
		writeError(w, http.StatusBadRequest, "Invalid Input", "a positive amount and a currency are required")
		return
	}
	intent, err := h.Payments.CreateIntent(r.Context(), req.Amount, req.Currency)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

func (h *Handlers) confirmPaymentIntent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Invalid Input", "payment intent id is required")
		return
	}
	status, err := h.Payments.ConfirmIntent(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
