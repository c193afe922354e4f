package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid      = errors.New("razorpay config invalid")
	ErrRequestFailed      = errors.New("razorpay request failed")
	ErrResponseInvalid    = errors.New("razorpay response invalid")
	ErrSignatureInvalid   = errors.New("razorpay signature invalid")
	ErrGatewayUnavailable = errors.New("razorpay gateway unavailable")
)

const (
	defaultBaseURL = "https://api.razorpay.com"
	requestTimeout = 15 * time.Second
)

// Config holds the gateway credentials. Both keys are mandatory; callers
// must reject startup when either is missing.
type Config struct {
	KeyID         string `json:"key_id" mapstructure:"key_id"`
	KeySecret     string `json:"key_secret" mapstructure:"key_secret"`
	BaseURL       string `json:"base_url" mapstructure:"base_url"`
	WebhookSecret string `json:"webhook_secret" mapstructure:"webhook_secret"`
}

// ValidateConfig checks the credentials are present
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) baseURL() string {
	trimmed := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if trimmed == "" {
		return defaultBaseURL
	}
	return trimmed
}

// CreateOrderInput describes the order to open at the gateway.
// Amount is in paise.
type CreateOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order is the gateway order as returned by the API
type Order struct {
	ID         string                 `json:"id"`
	Amount     int64                  `json:"amount"`
	AmountPaid int64                  `json:"amount_paid"`
	AmountDue  int64                  `json:"amount_due"`
	Currency   string                 `json:"currency"`
	Receipt    string                 `json:"receipt"`
	Status     string                 `json:"status"`
	CreatedAt  int64                  `json:"created_at"`
	Raw        map[string]interface{} `json:"-"`
}

// Client talks to the Razorpay REST API
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient builds a gateway client, failing closed on missing credentials
func NewClient(cfg Config) (*Client, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: requestTimeout},
	}, nil
}

// KeyID exposes the publishable key for checkout payloads
func (c *Client) KeyID() string {
	return c.cfg.KeyID
}

// CreateOrder opens a gateway order sized in paise. Transient network
// failures are retried once; persistent failure maps to ErrGatewayUnavailable.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrRequestFailed)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "INR"
	}
	params := map[string]interface{}{
		"amount":   input.Amount,
		"currency": currency,
	}
	if input.Receipt != "" {
		params["receipt"] = input.Receipt
	}
	if len(input.Notes) > 0 {
		params["notes"] = input.Notes
	}

	respBytes, err := c.doJSON(ctx, http.MethodPost, "/v1/orders", params)
	if err != nil {
		return nil, err
	}
	return parseOrder(respBytes)
}

// FetchOrder reads an order back from the gateway
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrRequestFailed)
	}
	respBytes, err := c.doJSON(ctx, http.MethodGet, "/v1/orders/"+orderID, nil)
	if err != nil {
		return nil, err
	}
	return parseOrder(respBytes)
}

// VerifyPaymentSignature checks the checkout callback signature:
// HMAC-SHA256 hex over "orderID|paymentID" keyed with the secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) error {
	return VerifySignature(orderID, paymentID, signature, c.cfg.KeySecret)
}

// VerifySignature is the package-level form of the signature check
func VerifySignature(orderID, paymentID, signature, secret string) error {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return ErrSignatureInvalid
	}
	expected := Sign(orderID+"|"+paymentID, secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature)))) != 1 {
		return ErrSignatureInvalid
	}
	return nil
}

// Sign computes the lowercase hex HMAC-SHA256 of payload
func Sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func parseOrder(respBytes []byte) (*Order, error) {
	var order Order
	if err := json.Unmarshal(respBytes, &order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal(respBytes, &raw)
	order.Raw = raw
	return &order, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, params map[string]interface{}) ([]byte, error) {
	var lastErr error
	// one retry on transient network failure
	for attempt := 0; attempt < 2; attempt++ {
		respBytes, err := c.doJSONOnce(ctx, method, path, params)
		if err == nil {
			return respBytes, nil
		}
		lastErr = err
		if !isTransient(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, lastErr)
}

func (c *Client) doJSONOnce(ctx context.Context, method, path string, params map[string]interface{}) ([]byte, error) {
	var reader io.Reader
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.baseURL()+path, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d: %s", ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	return respBytes, nil
}

// isTransient reports whether the failure is worth one retry: network
// errors, timeouts and 5xx responses. Client errors are final.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRequestFailed) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "http status 5") || strings.Contains(msg, "connection refused") || strings.Contains(msg, "EOF")
}
