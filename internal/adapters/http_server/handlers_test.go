package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "tripdesk/internal/adapters/http_server"
	"tripdesk/internal/app"
	"tripdesk/internal/domain"
)

// ---- minimal fakes ----

type stubAccounts struct{ token string }

func (s *stubAccounts) IsValidAPIKey(_ context.Context, key string) (bool, error) {
	return key == s.token, nil
}
func (s *stubAccounts) ByKey(_ context.Context, k string) (domain.Account, error) {
	if k != s.token {
		return domain.Account{}, domain.ErrNotFound
	}
	return domain.Account{ID: 1, Token: s.token, Wallet: 500, HotelMargin: 10}, nil
}

type stubSupplier struct{ hotels []domain.SupplierHotel }

func (s *stubSupplier) Search(_ context.Context, _ domain.SearchPayload) (domain.SupplierResult, error) {
	return domain.SupplierResult{Hotels: s.hotels, Total: len(s.hotels)}, nil
}
func (s *stubSupplier) Book(_ context.Context, _ domain.BookingPayload) (domain.BookingResult, error) {
	return domain.BookingResult{Reference: "HB-1", Status: "CONFIRMED"}, nil
}
func (s *stubSupplier) CheckRates(_ context.Context, _ []string) (map[string]any, error) {
	return map[string]any{}, nil
}

type stubContentRepo struct{ codes []int }

func (s *stubContentRepo) HotelIDsByDestination(_ context.Context, _ string) ([]int, []string, error) {
	countries := make([]string, len(s.codes))
	for i := range countries {
		countries[i] = "ES"
	}
	return s.codes, countries, nil
}
func (s *stubContentRepo) HotelCountryCode(_ context.Context, _ int) (string, error) { return "ES", nil }
func (s *stubContentRepo) BaseHotels(_ context.Context, codes []int) ([]domain.HotelBase, error) {
	out := make([]domain.HotelBase, len(codes))
	for i, c := range codes {
		out[i] = domain.HotelBase{Code: c}
	}
	return out, nil
}
func (s *stubContentRepo) ImagesByTypes(_ context.Context, _ []int, _ []string) (map[int][]domain.Image, error) {
	return map[int][]domain.Image{}, nil
}
func (s *stubContentRepo) MainImages(_ context.Context, _ []int) (map[int][]domain.Image, error) {
	return map[int][]domain.Image{}, nil
}
func (s *stubContentRepo) FacilitiesByGroups(_ context.Context, _ []int, _ []int) (map[int][]domain.Facility, error) {
	return map[int][]domain.Facility{}, nil
}
func (s *stubContentRepo) LimitedFacilities(_ context.Context, _ []int, _, _ int) (map[int][]domain.Facility, error) {
	return map[int][]domain.Facility{}, nil
}
func (s *stubContentRepo) HotelFacilities(_ context.Context, _ int) ([]domain.Facility, error) {
	return nil, nil
}
func (s *stubContentRepo) RoomFacilities(_ context.Context, _ int, _ []string) (map[string][]domain.RoomFacility, error) {
	return map[string][]domain.RoomFacility{}, nil
}
func (s *stubContentRepo) RoomImages(_ context.Context, _ int, _ []string) (map[string][]domain.Image, error) {
	return map[string][]domain.Image{}, nil
}
func (s *stubContentRepo) Accommodations(_ context.Context) ([]domain.Accommodation, error) {
	return []domain.Accommodation{{Code: "HOTEL", Description: "Hotel"}}, nil
}
func (s *stubContentRepo) SearchDestinations(_ context.Context, _ string) ([]domain.DestinationHit, error) {
	return []domain.DestinationHit{{Destination: "Palma", DestCode: "PMI", Country: "Spain", Total: 12}}, nil
}
func (s *stubContentRepo) SearchHotels(_ context.Context, _ string) ([]domain.DestinationHit, error) {
	return nil, nil
}
func (s *stubContentRepo) HotelInfoByCode(_ context.Context, code int) (domain.HotelInfo, error) {
	return domain.HotelInfo{Code: code}, nil
}

type stubCache struct{}

func (stubCache) Get(_ context.Context, _ string, _ any) (bool, error) { return false, nil }
func (stubCache) Set(_ context.Context, _ string, _ any, _ int) error  { return nil }
func (stubCache) Del(_ context.Context, _ string) error                { return nil }

type stubCartRepo struct{ items []domain.CartItem }

func (s *stubCartRepo) Exists(_ context.Context, id string, _ domain.CartOwner) (bool, error) {
	for _, it := range s.items {
		if it.CartItemID == id {
			return true, nil
		}
	}
	return false, nil
}
func (s *stubCartRepo) Insert(_ context.Context, item domain.CartItem, _ domain.CartOwner) (int64, error) {
	item.ID = int64(len(s.items) + 1)
	s.items = append(s.items, item)
	return item.ID, nil
}
func (s *stubCartRepo) ItemsByOwner(_ context.Context, _ domain.CartOwner) ([]domain.CartItem, error) {
	return s.items, nil
}
func (s *stubCartRepo) ItemByID(_ context.Context, _ int64) (domain.CartItem, error) {
	return domain.CartItem{}, domain.ErrNotFound
}
func (s *stubCartRepo) Remove(_ context.Context, _ int64) (bool, error) { return false, nil }
func (s *stubCartRepo) TransferGuestToUser(_ context.Context, _ int64, _ string) error {
	return nil
}

type stubBookingRepo struct{}

func (stubBookingRepo) CreateWithDebit(_ context.Context, _ domain.Booking, _ domain.WalletTransaction, _ float64) (int64, error) {
	return 1, nil
}
func (stubBookingRepo) ByReference(_ context.Context, _ string) (domain.Booking, error) {
	return domain.Booking{}, domain.ErrNotFound
}
func (stubBookingRepo) ByUser(_ context.Context, _ string) ([]domain.Booking, error) {
	return nil, nil
}

type stubNotifier struct{}

func (stubNotifier) Send(_ context.Context, _, _, _, _ string) error { return nil }

type stubPayments struct{}

func (stubPayments) CreateIntent(_ context.Context, _ int64, _ string) (domain.PaymentIntent, error) {
	return domain.PaymentIntent{ID: "pi_1", ClientSecret: "cs_1"}, nil
}
func (stubPayments) ConfirmIntent(_ context.Context, id string) (domain.PaymentStatus, error) {
	return domain.PaymentStatus{Success: true, Status: "succeeded", PaymentIntentID: id}, nil
}

// ---- fixture ----

const testToken = "tok-test"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	contentRepo := &stubContentRepo{codes: []int{1, 2}}
	supplier := &stubSupplier{hotels: []domain.SupplierHotel{
		{"code": float64(1), "minRate": 50.0, "maxRate": 90.0},
		{"code": float64(2), "minRate": 70.0, "maxRate": 120.0},
	}}
	content := app.NewContentService(contentRepo, stubCache{}, time.Hour)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Search:   app.NewSearchService(supplier, content),
		Content:  content,
		Cart:     app.NewCartService(&stubCartRepo{}, content, 15*time.Minute),
		Booking:  app.NewBookingService(supplier, stubBookingRepo{}, &stubAccounts{token: testToken}, stubNotifier{}),
		Payments: stubPayments{},
		Accounts: &stubAccounts{token: testToken},
	})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func envelopeTitle(t *testing.T, body map[string]any) string {
	t.Helper()
	errs, ok := body["errors"].([]any)
	if !ok || len(errs) == 0 {
		t.Fatalf("missing error envelope: %v", body)
	}
	first, _ := errs[0].(map[string]any)
	title, _ := first["title"].(string)
	return title
}

// ---- tests ----

func TestAuth_MissingToken(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/accommodations", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if envelopeTitle(t, body) != "Missing Credential" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/accommodations", "wrong", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
	if envelopeTitle(t, body) != "Invalid Credential" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/nope", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if envelopeTitle(t, body) != "Not Found" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/hotels/search", testToken, nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
	if envelopeTitle(t, body) != "Method Not Allowed" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestNonNumericHotelCodeIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/hotels/palma", testToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if envelopeTitle(t, body) != "Not Found" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t)

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	after := time.Now().AddDate(0, 0, 4).Format("2006-01-02")
	req := map[string]any{
		"destination": "PMI",
		"checkIn":     tomorrow,
		"checkOut":    after,
		"rooms":       []map[string]any{{"adults": 2}},
		"page":        1,
		"pageSize":    10,
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/hotels/search", testToken, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if ok, _ := body["success"].(bool); !ok {
		t.Fatalf("expects success envelope: %v", body)
	}
	data, _ := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 hotels, got %d", len(data))
	}
	prices, _ := body["prices"].(map[string]any)
	if prices["overallMinRate"].(float64) != 50 || prices["overallMaxRate"].(float64) != 120 {
		t.Fatalf("unexpected prices: %v", prices)
	}
}

func TestSearchEndpoint_ValidationError(t *testing.T) {
	ts := newTestServer(t)
	req := map[string]any{
		"destination": "PMI",
		"checkIn":     "2020-01-01",
		"checkOut":    "2020-01-05",
		"rooms":       []map[string]any{{"adults": 2}},
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/hotels/search", testToken, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %v", resp.StatusCode, body)
	}
	if envelopeTitle(t, body) != "Invalid Input" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestBookingEndpoint_InsufficientFunds(t *testing.T) {
	ts := newTestServer(t)
	req := map[string]any{
		"total_amount":    9999.0,
		"rateKey":         "RK1",
		"holderFirstName": "Maya",
		"holderLastName":  "Stone",
		"holderEmail":     "maya@example.com",
		"rooms":           1,
		"occupancies":     []map[string]any{{"adults": 1}},
		"user":            testToken,
		"guests": map[string]string{
			"room1_adult1_firstName": "Maya",
			"room1_adult1_lastName":  "Stone",
			"room1_adult1_type":      "AD",
		},
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/bookings", testToken, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %v", resp.StatusCode, body)
	}
	if envelopeTitle(t, body) != "Insufficient Funds" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestBookingEndpoint_HappyPath(t *testing.T) {
	ts := newTestServer(t)
	req := map[string]any{
		"total_amount":    100.0,
		"rateKey":         "RK1",
		"holderFirstName": "Maya",
		"holderLastName":  "Stone",
		"holderEmail":     "maya@example.com",
		"rooms":           1,
		"occupancies":     []map[string]any{{"adults": 1}},
		"user":            testToken,
		"guests": map[string]string{
			"room1_adult1_firstName": "Maya",
			"room1_adult1_lastName":  "Stone",
			"room1_adult1_type":      "AD",
		},
	}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/bookings", testToken, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if body["booking_reference"] != "HB-1" {
		t.Fatalf("unexpected confirmation: %v", body)
	}
}

func TestPaymentIntentEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/v1/payments/intent", testToken,
		map[string]any{"amount": 10000, "currency": "eur"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if body["paymentIntentId"] != "pi_1" {
		t.Fatalf("unexpected intent: %v", body)
	}

	resp, body = doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/payments/intent/%s/confirm", ts.URL, "pi_1"), testToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	if ok, _ := body["success"].(bool); !ok {
		t.Fatalf("unexpected confirmation: %v", body)
	}
}

func TestDestinationTypeahead(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/v1/destinations?q=pa", testToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %v", resp.StatusCode, body)
	}
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("expected one hit: %v", body)
	}

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/v1/destinations?q=p", testToken, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short query should 400, got %d: %v", resp.StatusCode, body)
	}
}
