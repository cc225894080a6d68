package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const phonePePayPath = "/pg/v1/pay"

type PhonePeClient struct {
	MerchantID string
	SaltKey    string
	SaltIndex  string
	BaseURL    string
	HTTPClient Doer
}

func NewPhonePeClient(merchantID, saltKey, saltIndex, baseURL string) *PhonePeClient {
	return &PhonePeClient{
		MerchantID: merchantID,
		SaltKey:    saltKey,
		SaltIndex:  saltIndex,
		BaseURL:    baseURL,
		HTTPClient: defaultHTTPClient(),
	}
}

func (c *PhonePeClient) Configured() bool {
	return c.MerchantID != "" && c.SaltKey != "" && c.SaltIndex != "" && c.BaseURL != ""
}

type PayRequest struct {
	MerchantTransactionID string
	MerchantUserID        string
	AmountPaise           int64
	RedirectURL           string
	CallbackURL           string
	MobileNumber          string
}

type PayResponse struct {
	RedirectURL string
	Raw         []byte
}

// StatusResult is a decoded PhonePe transaction payload, from either a
// callback envelope or the status endpoint.
type StatusResult struct {
	MerchantTransactionID string
	State                 string
	Code                  string
	TransactionID         string
	ReferenceID           string
	Raw                   []byte
}

// CreatePayment initiates a pay-page transaction. The X-VERIFY checksum is
// computed over the exact base64 payload sent in the body; the provider
// rejects the call if the two ever diverge.
func (c *PhonePeClient) CreatePayment(ctx context.Context, pr PayRequest) (*PayResponse, error) {
	if !c.Configured() {
		return nil, ErrConfigMissing
	}

	payload, err := json.Marshal(map[string]interface{}{
		"merchantId":            c.MerchantID,
		"merchantTransactionId": pr.MerchantTransactionID,
		"merchantUserId":        pr.MerchantUserID,
		"amount":                pr.AmountPaise,
		"redirectUrl":           pr.RedirectURL,
		"redirectMode":          "POST",
		"callbackUrl":           pr.CallbackURL,
		"mobileNumber":          pr.MobileNumber,
		"paymentInstrument":     map[string]string{"type": "PAY_PAGE"},
	})
	if err != nil {
		return nil, err
	}

	payloadB64 := base64.StdEncoding.EncodeToString(payload)
	body, err := json.Marshal(map[string]string{"request": payloadB64})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+phonePePayPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", PhonePeChecksum(payloadB64, phonePePayPath, c.SaltKey, c.SaltIndex))

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Data struct {
			InstrumentResponse struct {
				RedirectInfo struct {
					URL string `json:"url"`
				} `json:"redirectInfo"`
			} `json:"instrumentResponse"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("phonepe: invalid pay response: %w", err)
	}
	if parsed.Data.InstrumentResponse.RedirectInfo.URL == "" {
		return nil, fmt.Errorf("phonepe: pay page URL missing in response")
	}

	return &PayResponse{RedirectURL: parsed.Data.InstrumentResponse.RedirectInfo.URL, Raw: raw}, nil
}

// FetchStatus polls the provider for the current transaction state.
func (c *PhonePeClient) FetchStatus(ctx context.Context, merchantTxnID string) (*StatusResult, error) {
	if !c.Configured() {
		return nil, ErrConfigMissing
	}

	apiPath := "/pg/v1/status/" + c.MerchantID + "/" + merchantTxnID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+apiPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", PhonePeChecksum("", apiPath, c.SaltKey, c.SaltIndex))
	req.Header.Set("X-MERCHANT-ID", c.MerchantID)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return ParsePhonePeResponse(raw)
}

// VerifyCallback checks the X-VERIFY header of an inbound callback.
func (c *PhonePeClient) VerifyCallback(responseB64, header string) bool {
	return VerifyPhonePeCallback(responseB64, header, c.SaltKey, c.SaltIndex)
}

// ParsePhonePeResponse extracts the reconciliation-relevant fields from a
// decoded PhonePe payload. State and response code appear either nested under
// "data" or at the top level depending on the channel.
func ParsePhonePeResponse(raw []byte) (*StatusResult, error) {
	var parsed struct {
		Code  string `json:"code"`
		State string `json:"state"`
		Data  struct {
			MerchantTransactionID string `json:"merchantTransactionId"`
			State                 string `json:"state"`
			ResponseCode          string `json:"responseCode"`
			TransactionID         string `json:"transactionId"`
			UTR                   string `json:"utr"`
			ProviderReferenceID   string `json:"providerReferenceId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("phonepe: invalid response payload: %w", err)
	}

	res := &StatusResult{
		MerchantTransactionID: parsed.Data.MerchantTransactionID,
		State:                 parsed.Data.State,
		Code:                  parsed.Data.ResponseCode,
		TransactionID:         parsed.Data.TransactionID,
		ReferenceID:           parsed.Data.UTR,
		Raw:                   raw,
	}
	if res.State == "" {
		res.State = parsed.State
	}
	if res.Code == "" {
		res.Code = parsed.Code
	}
	if res.ReferenceID == "" {
		res.ReferenceID = parsed.Data.ProviderReferenceID
	}
	return res, nil
}

func (c *PhonePeClient) do(req *http.Request) ([]byte, error) {
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
		return nil, &RejectedError{Provider: "PhonePe", Status: resp.StatusCode, Detail: string(body)}
	}
	return body, nil
}
