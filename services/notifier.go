package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/config"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"go.uber.org/zap"
)

// Doer abstracts the HTTP client used by notification channels.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MessageSender delivers a single text message to a phone number.
type MessageSender interface {
	Send(ctx context.Context, to, body string) error
}

// Notifier dispatches a one-shot payment confirmation over the configured
// channels. Delivery is best-effort: a failed send is swallowed and the
// notified_at stamp stays unset, so a later reconciliation replay retries.
type Notifier struct {
	enabled bool
	senders []MessageSender
	logger  *zap.Logger
}

func NewNotifier(cfg *config.Config, logger *zap.Logger) *Notifier {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	var senders []MessageSender
	if strings.EqualFold(cfg.SMSProvider, "twilio") &&
		cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		senders = append(senders, &twilioSMS{
			accountSID:  cfg.TwilioAccountSID,
			authToken:   cfg.TwilioAuthToken,
			from:        cfg.TwilioFromNumber,
			countryCode: cfg.DefaultCountryCode,
			http:        httpClient,
		})
	}
	if strings.EqualFold(cfg.WhatsAppProvider, "cloud") &&
		cfg.WhatsAppPhoneNumberID != "" && cfg.WhatsAppAccessToken != "" {
		senders = append(senders, &whatsAppCloud{
			phoneNumberID: cfg.WhatsAppPhoneNumberID,
			accessToken:   cfg.WhatsAppAccessToken,
			apiVersion:    cfg.WhatsAppAPIVersion,
			countryCode:   cfg.DefaultCountryCode,
			http:          httpClient,
		})
	}

	return &Notifier{
		enabled: cfg.SendPaymentNotifications,
		senders: senders,
		logger:  logger,
	}
}

// MaybeNotify sends the payment confirmation unless notifications are
// disabled or this payment was already notified. When at least one channel
// reports success it stamps payment.NotifiedAt; persisting the stamp is the
// caller's responsibility.
func (n *Notifier) MaybeNotify(ctx context.Context, admission *models.Admission, payment *models.Payment) {
	if n == nil || !n.enabled {
		return
	}
	if payment.NotifiedAt != nil {
		return
	}

	body := fmt.Sprintf(
		"Payment received for Admission #%d. Amount: INR %d. Thank you - Pradhan Chemistry Classes.",
		admission.ID, payment.Amount,
	)

	sent := false
	for _, sender := range n.senders {
		if err := sender.Send(ctx, admission.Student.Mobile, body); err != nil {
			n.logger.Warn("Payment notification dispatch failed",
				zap.Uint("admission_id", admission.ID),
				zap.Error(err),
			)
			continue
		}
		sent = true
	}

	if sent {
		now := time.Now()
		payment.NotifiedAt = &now
	}
}

// formatE164 prefixes the default country code for bare local numbers.
func formatE164(number, countryCode string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "+") {
		return number
	}
	return countryCode + number
}

type twilioSMS struct {
	accountSID  string
	authToken   string
	from        string
	countryCode string
	http        Doer
}

func (t *twilioSMS) Send(ctx context.Context, to, body string) error {
	form := url.Values{
		"To":   {formatE164(to, t.countryCode)},
		"From": {t.from},
		"Body": {body},
	}

	endpoint := "https://api.twilio.com/2010-04-01/Accounts/" + t.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.accountSID, t.authToken)

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}
	return nil
}

type whatsAppCloud struct {
	phoneNumberID string
	accessToken   string
	apiVersion    string
	countryCode   string
	http          Doer
}

func (w *whatsAppCloud) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                strings.TrimPrefix(formatE164(to, w.countryCode), "+"),
		"type":              "text",
		"text":              map[string]string{"body": body},
	})
	if err != nil {
		return err
	}

	endpoint := "https://graph.facebook.com/" + w.apiVersion + "/" + w.phoneNumberID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.accessToken)

	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp: unexpected status %d", resp.StatusCode)
	}
	return nil
}
