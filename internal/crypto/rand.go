package crypto

import (
	"crypto/rand"
	"io"
)

// randReader is the random source used for nonces, MAC keys, and key
// generation. It defaults to crypto/rand but can be overridden for testing.
var randReader io.Reader = rand.Reader

// ReadRandom fills buf from the package's random source.
func ReadRandom(buf []byte) error {
	_, err := io.ReadFull(randReader, buf)
	return err
}

// NewNonce returns a fresh random nonce of NonceSize bytes.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if err := ReadRandom(nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

// NewMACKey returns a fresh random HMAC key of HMACKeySize bytes.
func NewMACKey() ([]byte, error) {
	key := make([]byte, HMACKeySize)
	if err := ReadRandom(key); err != nil {
		return nil, err
	}
	return key, nil
}

// SetRandReaderForTesting sets the random reader used by this package.
// This is intended for testing only. Returns a function to restore the
// original reader. Since this package is internal, this function cannot be
// accessed by external code.
func SetRandReaderForTesting(r io.Reader) func() {
	original := randReader
	randReader = r
	return func() { randReader = original }
}
