package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const razorpayBaseURL = "https://api.razorpay.com"

type RazorpayClient struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient Doer
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    razorpayBaseURL,
		HTTPClient: defaultHTTPClient(),
	}
}

func (c *RazorpayClient) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// Order is the subset of a Razorpay order response the portal consumes,
// plus the raw body kept for the audit trail.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	Raw      []byte `json:"-"`
}

// CreateOrder creates a payment intent for the given amount in paise.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*Order, error) {
	if !c.Configured() {
		return nil, ErrConfigMissing
	}

	payload, err := json.Marshal(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	return c.doOrder(req)
}

// FetchOrder retrieves the current state of an order for the poll path.
func (c *RazorpayClient) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	if !c.Configured() {
		return nil, ErrConfigMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/orders/"+orderID, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	return c.doOrder(req)
}

// VerifySignature checks a browser-redirect signature against the key secret.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifyRazorpaySignature(orderID, paymentID, signature, c.KeySecret)
}

func (c *RazorpayClient) doOrder(req *http.Request) (*Order, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RejectedError{Provider: "Razorpay", Status: resp.StatusCode, Detail: string(body)}
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("razorpay: invalid order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay: order id missing in response")
	}
	order.Raw = body
	return &order, nil
}
