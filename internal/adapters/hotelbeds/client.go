package hotelbeds

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tripdesk/internal/adapters/observability"
	"tripdesk/internal/domain"
)

type Config struct {
	SearchURL string
	BookURL   string
	RatesURL  string
	Key       string
	Secret    string

	// Client-certificate material for the mutually authenticated endpoints.
	// Either all three are set or all are empty; a partial or unloadable set
	// fails at construction, before any network attempt.
	CertFile string
	KeyFile  string
	CAFile   string

	Timeout time.Duration
	RPS     int
}

type Client struct {
	cfg Config
	hc  *http.Client
	rl  *rate.Limiter
	now func() time.Time
}

func New(cfg Config) (*Client, error) {
	if cfg.Key == "" || cfg.Secret == "" {
		return nil, fmt.Errorf("supplier key and secret are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}

	transport, err := newTransport(cfg.CertFile, cfg.KeyFile, cfg.CAFile)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout, Transport: transport},
		rl:  rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS),
		now: time.Now,
	}, nil
}

func newTransport(certFile, keyFile, caFile string) (*http.Transport, error) {
	if certFile == "" && keyFile == "" && caFile == "" {
		return http.DefaultTransport.(*http.Transport).Clone(), nil
	}
	for _, f := range []string{certFile, keyFile, caFile} {
		if f == "" {
			return nil, fmt.Errorf("mutual TLS requires cert, key and CA files together")
		}
		if _, err := os.Stat(f); err != nil {
			return nil, fmt.Errorf("TLS material missing: %s: %w", f, err)
		}
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load client certificate: %w", err)
	}
	caPEM, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("read CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("CA bundle %s contains no certificates", caFile)
	}
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
	}
	return t, nil
}

func (c *Client) Search(ctx context.Context, payload domain.SearchPayload) (domain.SupplierResult, error) {
	var raw map[string]any
	if err := c.post(ctx, "search", c.cfg.SearchURL, payload, &raw); err != nil {
		return domain.SupplierResult{}, err
	}

	var out domain.SupplierResult
	if hotels, ok := lookup(raw, "hotels").(map[string]any); ok {
		if list, ok := hotels["hotels"].([]any); ok {
			out.Hotels = make([]domain.SupplierHotel, 0, len(list))
			for _, h := range list {
				if m, ok := h.(map[string]any); ok {
					out.Hotels = append(out.Hotels, domain.SupplierHotel(m))
				}
			}
		}
		if total, ok := hotels["total"].(float64); ok {
			out.Total = int(total)
		}
	}
	if out.Total == 0 {
		out.Total = len(out.Hotels)
	}
	return out, nil
}

func (c *Client) Book(ctx context.Context, payload domain.BookingPayload) (domain.BookingResult, error) {
	var raw map[string]any
	if err := c.post(ctx, "book", c.cfg.BookURL, payload, &raw); err != nil {
		return domain.BookingResult{}, err
	}

	ref := lookupStr(raw, "booking.reference")
	if ref == "" {
		return domain.BookingResult{}, &domain.SupplierError{
			Status: http.StatusOK,
			Detail: "booking response is missing a reference",
		}
	}
	return domain.BookingResult{
		Reference:    ref,
		Status:       lookupStr(raw, "booking.status"),
		SupplierName: lookupStr(raw, "booking.hotel.supplier.name"),
		VATNumber:    lookupStr(raw, "booking.hotel.supplier.vatNumber"),
		Raw:          raw,
	}, nil
}

func (c *Client) CheckRates(ctx context.Context, rateKeys []string) (map[string]any, error) {
	rooms := make([]map[string]string, 0, len(rateKeys))
	for _, rk := range rateKeys {
		rooms = append(rooms, map[string]string{"rateKey": rk})
	}
	var raw map[string]any
	if err := c.post(ctx, "checkrates", c.cfg.RatesURL, map[string]any{"rooms": rooms}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, endpoint, url string, payload any, out *map[string]any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Api-key", c.cfg.Key)
	req.Header.Set("X-Signature", signature(c.cfg.Key, c.cfg.Secret, c.now()))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		observability.ObserveSupplier(endpoint, 0, time.Since(start))
		return &domain.TransportError{Op: "supplier " + endpoint, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveSupplier(endpoint, resp.StatusCode, time.Since(start))

	raw, err := readBody(resp)
	if err != nil {
		return &domain.TransportError{Op: "supplier " + endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.SupplierError{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.SupplierError{Status: resp.StatusCode, Detail: "response is not valid JSON"}
	}
	return nil
}

// readBody drains the response, transparently gunzipping. Setting
// Accept-Encoding by hand disables net/http's automatic decompression.
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if strings.Contains(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	return io.ReadAll(io.LimitReader(r, 16<<20))
}

// errorDetail pulls the supplier's own error message out of a failure body,
// falling back to the raw text when it is not JSON.
func errorDetail(body []byte) string {
	var m map[string]any
	if json.Unmarshal(body, &m) == nil {
		if msg := lookupStr(m, "error.message"); msg != "" {
			return msg
		}
		if msg, ok := m["error"].(string); ok && msg != "" {
			return msg
		}
	}
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "unknown supplier error"
	}
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}

// lookup walks a dot path through nested JSON objects.
func lookup(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if s, ok := lookup(m, path).(string); ok {
		return s
	}
	return ""
}
