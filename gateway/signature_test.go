package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyRazorpaySignature(t *testing.T) {
	secret := "test_secret"
	sig := RazorpaySignature("order_abc", "pay_xyz", secret)

	assert.True(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_other", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig+"0", secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, "wrong_secret"))
}

func TestVerifyRazorpaySignatureEmptyInputs(t *testing.T) {
	secret := "test_secret"
	sig := RazorpaySignature("order_abc", "pay_xyz", secret)

	assert.False(t, VerifyRazorpaySignature("", "pay_xyz", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "", sig, secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", "", secret))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig, ""))
}

func TestPhonePeChecksumFormat(t *testing.T) {
	checksum := PhonePeChecksum("eyJmb28iOiJiYXIifQ==", "/pg/v1/pay", "salt", "1")

	parts := strings.Split(checksum, "###")
	assert.Len(t, parts, 2)
	assert.Len(t, parts[0], 64)
	assert.Equal(t, "1", parts[1])

	// A different payload must produce a different digest.
	other := PhonePeChecksum("eyJmb28iOiJiYXoifQ==", "/pg/v1/pay", "salt", "1")
	assert.NotEqual(t, checksum, other)
}

func TestVerifyPhonePeCallback(t *testing.T) {
	responseB64 := "eyJzdGF0ZSI6IkNPTVBMRVRFRCJ9"
	header := PhonePeChecksum(responseB64, "", "salt", "1")

	assert.True(t, VerifyPhonePeCallback(responseB64, header, "salt", "1"))
	assert.False(t, VerifyPhonePeCallback(responseB64, header, "othersalt", "1"))
	assert.False(t, VerifyPhonePeCallback(responseB64+"x", header, "salt", "1"))
	assert.False(t, VerifyPhonePeCallback(responseB64, "", "salt", "1"))
	assert.False(t, VerifyPhonePeCallback(responseB64, header, "", "1"))
}
