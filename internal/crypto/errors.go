package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a symmetric key is not exactly
	// AESKeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidMACKeySize is returned when an HMAC key is not exactly
	// HMACKeySize bytes.
	ErrInvalidMACKeySize = errors.New("invalid MAC key size")

	// ErrInvalidNonceSize is returned when a nonce is not exactly
	// NonceSize bytes.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrDecryptionFailed is returned when the GCM tag check fails during
	// decryption. No plaintext is released in this case.
	ErrDecryptionFailed = errors.New("decryption failed: authentication tag mismatch")

	// ErrMalformedPrivateKey is returned when private key PEM material
	// cannot be parsed.
	ErrMalformedPrivateKey = errors.New("malformed private key")

	// ErrMalformedPublicKey is returned when public key PEM material
	// cannot be parsed.
	ErrMalformedPublicKey = errors.New("malformed public key")

	// ErrUnsupportedKeyType is returned when parsed key material is not of
	// a type this package signs or verifies with.
	ErrUnsupportedKeyType = errors.New("unsupported key type")

	// ErrPassphraseRequired is returned when an encrypted private key is
	// parsed without a passphrase.
	ErrPassphraseRequired = errors.New("passphrase required")

	// ErrBadPassphrase is returned when the supplied passphrase cannot
	// decrypt an encrypted private key.
	ErrBadPassphrase = errors.New("bad passphrase")
)
