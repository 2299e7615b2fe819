package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// newGCM constructs an AES-256-GCM AEAD with the protocol's 128-bit nonce.
func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

// Encrypt encrypts plaintext with AES-256-GCM under a fresh random nonce.
// It returns the ciphertext (with the GCM tag appended) and the nonce that
// was drawn. Empty plaintext is valid and yields a tag-only ciphertext.
func Encrypt(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce, err = NewNonce()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext, err = EncryptWithNonce(key, plaintext, nonce, nil)
	if err != nil {
		return nil, nil, err
	}

	return ciphertext, nonce, nil
}

// EncryptWithNonce encrypts plaintext with AES-256-GCM under an explicit
// nonce. Callers are responsible for nonce uniqueness; prefer Encrypt.
func EncryptWithNonce(key, plaintext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	return aesGCM.Seal(nil, nonce, plaintext, aad), nil
}

// Decrypt decrypts AES-256-GCM ciphertext produced under (key, nonce).
// It fails closed with ErrDecryptionFailed if the authentication tag does
// not match: tampered ciphertext, wrong key, and wrong nonce are
// indistinguishable by design.
func Decrypt(key, ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), NonceSize)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
