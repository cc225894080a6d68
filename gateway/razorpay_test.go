package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer records the last request and replays a canned response.
type fakeDoer struct {
	lastReq  *http.Request
	lastBody []byte
	status   int
	body     string
	err      error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		f.lastBody, _ = io.ReadAll(req.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(f.body))),
		Header:     make(http.Header),
	}, nil
}

func TestRazorpayCreateOrder(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   `{"id":"order_abc","amount":150000,"currency":"INR","receipt":"ADM421700000000","status":"created"}`,
	}
	client := NewRazorpayClient("key_id", "key_secret")
	client.HTTPClient = doer

	order, err := client.CreateOrder(context.Background(), 150000, "ADM421700000000")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(150000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.NotEmpty(t, order.Raw)

	require.NotNil(t, doer.lastReq)
	assert.Equal(t, http.MethodPost, doer.lastReq.Method)
	assert.Equal(t, "https://api.razorpay.com/v1/orders", doer.lastReq.URL.String())
	user, pass, ok := doer.lastReq.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "key_id", user)
	assert.Equal(t, "key_secret", pass)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(doer.lastBody, &sent))
	assert.Equal(t, float64(150000), sent["amount"])
	assert.Equal(t, "INR", sent["currency"])
	assert.Equal(t, "ADM421700000000", sent["receipt"])
	assert.Equal(t, float64(1), sent["payment_capture"])
}

func TestRazorpayCreateOrderNotConfigured(t *testing.T) {
	client := NewRazorpayClient("", "")
	_, err := client.CreateOrder(context.Background(), 100, "rcpt")
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestRazorpayCreateOrderUnavailable(t *testing.T) {
	client := NewRazorpayClient("key_id", "key_secret")
	client.HTTPClient = &fakeDoer{err: errors.New("connection refused")}

	_, err := client.CreateOrder(context.Background(), 100, "rcpt")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRazorpayCreateOrderRejected(t *testing.T) {
	client := NewRazorpayClient("key_id", "key_secret")
	client.HTTPClient = &fakeDoer{status: http.StatusBadRequest, body: `{"error":{"description":"amount too small"}}`}

	_, err := client.CreateOrder(context.Background(), 100, "rcpt")
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Razorpay", rejected.Provider)
	assert.Equal(t, http.StatusBadRequest, rejected.Status)
}

func TestRazorpayFetchOrder(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   `{"id":"order_abc","amount":150000,"currency":"INR","status":"paid"}`,
	}
	client := NewRazorpayClient("key_id", "key_secret")
	client.HTTPClient = doer

	order, err := client.FetchOrder(context.Background(), "order_abc")
	require.NoError(t, err)
	assert.Equal(t, "paid", order.Status)
	assert.Equal(t, "https://api.razorpay.com/v1/orders/order_abc", doer.lastReq.URL.String())
}

func TestRazorpayOrderMissingID(t *testing.T) {
	client := NewRazorpayClient("key_id", "key_secret")
	client.HTTPClient = &fakeDoer{status: http.StatusOK, body: `{}`}

	_, err := client.CreateOrder(context.Background(), 100, "rcpt")
	assert.Error(t, err)
}
