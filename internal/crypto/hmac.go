package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// GenerateHMAC computes an HMAC-SHA-256 tag over data with key.
func GenerateHMAC(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// VerifyHMAC recomputes the HMAC-SHA-256 tag over data and compares it to
// tag in constant time. A mismatched or wrong-length tag returns false; it
// is an expected outcome, not an error.
func VerifyHMAC(key, data, tag []byte) bool {
	if len(tag) != HMACTagSize {
		return false
	}
	expected := GenerateHMAC(key, data)
	return hmac.Equal(expected, tag)
}
