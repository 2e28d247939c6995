// Package coinbase is a minimal Coinbase REST client for spot prices.
package coinbase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/swingtree/pricing"
	"github.com/shopspring/decimal"
)

const (
	// BaseURL is the Coinbase REST API endpoint.
	BaseURL = "https://api.coinbase.com"
	// APIVersion is sent as CB-VERSION on every request.
	APIVersion = "2024-01-01"
)

// Client represents a Coinbase API client
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a new Coinbase API client. Both credentials are
// required.
func NewClient(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, errors.New("coinbase: API key and secret are required")
	}
	c := &Client{
		baseURL:   BaseURL,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// spotResponse represents the API response for a spot price
type spotResponse struct {
	Data struct {
		Amount   string `json:"amount"`
		Base     string `json:"base"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// SpotPrice fetches the current spot price of pair, e.g. "BTC-USD".
func (c *Client) SpotPrice(ctx context.Context, pair string) (decimal.Decimal, time.Time, error) {
	if pair == "" {
		return decimal.Zero, time.Time{}, fmt.Errorf("pair is required")
	}

	path := "/v2/prices/" + url.PathEscape(pair) + "/spot"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("create request: %w", err)
	}
	now := c.now()
	c.sign(httpReq, now, path, nil)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return decimal.Zero, time.Time{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp spotResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("decode response: %w", err)
	}

	amount, err := decimal.NewFromString(apiResp.Data.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("parse amount %q: %w", apiResp.Data.Amount, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, time.Time{}, fmt.Errorf("non-positive amount %s", amount)
	}
	return amount, now.UTC(), nil
}

// Latest implements pricing.Source.
func (c *Client) Latest(ctx context.Context, pair string) (pricing.Tick, error) {
	amount, at, err := c.SpotPrice(ctx, pair)
	if err != nil {
		return pricing.Tick{}, &pricing.DataIntegrityError{Source: "coinbase", Pair: pair, Err: err}
	}
	price, _ := amount.Float64()
	return pricing.Tick{Pair: pair, Price: price, Time: at}, nil
}

// sign sets the API-key authentication headers. The signature is the hex
// HMAC-SHA256 of timestamp + method + request path + body.
func (c *Client) sign(req *http.Request, now time.Time, path string, body []byte) {
	ts := strconv.FormatInt(now.Unix(), 10)
	req.Header.Set("CB-ACCESS-KEY", c.apiKey)
	req.Header.Set("CB-ACCESS-TIMESTAMP", ts)
	req.Header.Set("CB-ACCESS-SIGN", Signature(c.apiSecret, ts, req.Method, path, body))
	req.Header.Set("CB-VERSION", APIVersion)
	req.Header.Set("Accept", "application/json")
}

// Signature computes the CB-ACCESS-SIGN header value.
func Signature(secret, timestamp, method, path string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + method + path))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
