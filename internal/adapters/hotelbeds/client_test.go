package hotelbeds

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"tripdesk/internal/domain"
)

func testConfig(searchURL, bookURL string) Config {
	return Config{
		SearchURL: searchURL,
		BookURL:   bookURL,
		RatesURL:  searchURL,
		Key:       "k",
		Secret:    "s",
		RPS:       100,
	}
}

func TestSignature_FreshPerCall(t *testing.T) {
	at := time.Unix(1700000000, 0)
	a := signature("key", "secret", at)
	b := signature("key", "secret", at.Add(time.Second))
	if a == b {
		t.Fatal("signature must change with the timestamp")
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(a) {
		t.Fatalf("not a sha256 hex digest: %s", a)
	}
}

func TestSearch_SendsAuthHeadersAndDecodesHotels(t *testing.T) {
	var gotKey, gotSig, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Api-key")
		gotSig = r.Header.Get("X-Signature")
		gotAccept = r.Header.Get("Accept-Encoding")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"hotels": map[string]any{
				"total":  2.0,
				"hotels": []any{map[string]any{"code": 101.0}, map[string]any{"code": 102.0}},
			},
		})
	}))
	defer ts.Close()

	cl, err := New(testConfig(ts.URL, ts.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	res, err := cl.Search(context.Background(), domain.SearchPayload{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Total != 2 || len(res.Hotels) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotKey != "k" {
		t.Fatalf("Api-key header: %q", gotKey)
	}
	if !regexp.MustCompile(`^[0-9a-f]{64}$`).MatchString(gotSig) {
		t.Fatalf("X-Signature header: %q", gotSig)
	}
	if gotAccept != "gzip" {
		t.Fatalf("Accept-Encoding header: %q", gotAccept)
	}
}

func TestSearch_SupplierErrorCarriesStatusAndDetail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "INVALID_KEY", "message": "quota exceeded"},
		})
	}))
	defer ts.Close()

	cl, _ := New(testConfig(ts.URL, ts.URL))
	_, err := cl.Search(context.Background(), domain.SearchPayload{})

	var se *domain.SupplierError
	if !errors.As(err, &se) {
		t.Fatalf("expected SupplierError, got %T: %v", err, err)
	}
	if se.Status != http.StatusForbidden || se.Detail != "quota exceeded" {
		t.Fatalf("unexpected supplier error: %+v", se)
	}
}

func TestSearch_NetworkFailureIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // nothing listening anymore

	cl, _ := New(testConfig(ts.URL, ts.URL))
	_, err := cl.Search(context.Background(), domain.SearchPayload{})

	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T: %v", err, err)
	}
}

func TestBook_ReferenceRequired(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"booking": map[string]any{"status": "CONFIRMED"}})
	}))
	defer ts.Close()

	cl, _ := New(testConfig(ts.URL, ts.URL))
	_, err := cl.Book(context.Background(), domain.BookingPayload{})
	if err == nil {
		t.Fatal("expected error for response without a reference")
	}
}

func TestBook_DecodesSupplierFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"booking": map[string]any{
				"reference": "R-42",
				"status":    "CONFIRMED",
				"hotel": map[string]any{
					"supplier": map[string]any{"name": "HOTELBEDS", "vatNumber": "ESB123"},
				},
			},
		})
	}))
	defer ts.Close()

	cl, _ := New(testConfig(ts.URL, ts.URL))
	br, err := cl.Book(context.Background(), domain.BookingPayload{})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if br.Reference != "R-42" || br.Status != "CONFIRMED" || br.SupplierName != "HOTELBEDS" || br.VATNumber != "ESB123" {
		t.Fatalf("unexpected booking result: %+v", br)
	}
}

func TestNew_RejectsPartialTLSMaterial(t *testing.T) {
	cfg := testConfig("https://example.invalid", "https://example.invalid")
	cfg.CertFile = "/nonexistent/client.crt"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for partial TLS material")
	}

	cfg.KeyFile = "/nonexistent/client.key"
	cfg.CAFile = "/nonexistent/ca.pem"
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for missing TLS files")
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(Config{SearchURL: "x"}); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}
