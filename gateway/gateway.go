// Package gateway holds the outbound payment-gateway clients and the
// integrity-code helpers for both supported providers. Transport and
// application failures never escape as raw errors: they are translated into
// ErrUnavailable, ErrConfigMissing or a RejectedError at this boundary.
package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Doer abstracts the HTTP client so gateway calls are testable without
// network access.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrUnavailable indicates a network or timeout failure reaching the
	// provider. No payment state is mutated; the caller may retry.
	ErrUnavailable = errors.New("payment gateway unavailable")

	// ErrConfigMissing indicates required provider credentials are absent.
	// Checked before any outbound call is attempted.
	ErrConfigMissing = errors.New("payment gateway is not configured")
)

// RejectedError is a non-2xx application-level response from the provider.
type RejectedError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected the request (status %d): %s", e.Provider, e.Status, e.Detail)
}

const requestTimeout = 30 * time.Second

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
