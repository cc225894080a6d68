package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// RazorpaySignature computes the HMAC-SHA256 hex digest Razorpay attaches to
// a completed checkout, keyed by the key secret over "order_id|payment_id".
func RazorpaySignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyRazorpaySignature checks a redirect signature in constant time.
// Any empty input fails verification.
func VerifyRazorpaySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}
	expected := RazorpaySignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// PhonePeChecksum computes the X-VERIFY value for an outbound PhonePe call:
// sha256(base64Payload + apiPath + saltKey) + "###" + saltIndex. The payload
// argument must be the exact base64 string transmitted in the request body.
func PhonePeChecksum(payloadB64, apiPath, saltKey, saltIndex string) string {
	digest := sha256.Sum256([]byte(payloadB64 + apiPath + saltKey))
	return hex.EncodeToString(digest[:]) + "###" + saltIndex
}

// VerifyPhonePeCallback checks the X-VERIFY header of an inbound callback in
// constant time. The header value covers the base64 response body and the
// salt key, without an API path component.
func VerifyPhonePeCallback(responseB64, header, saltKey, saltIndex string) bool {
	if header == "" || saltKey == "" {
		return false
	}
	digest := sha256.Sum256([]byte(responseB64 + saltKey))
	expected := hex.EncodeToString(digest[:]) + "###" + saltIndex
	return hmac.Equal([]byte(expected), []byte(header))
}
