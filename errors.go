package securecore

import (
	"errors"
	"fmt"

	"github.com/fedshare/securecore-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidKeyLength is returned when a symmetric or MAC key is not
	// exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("invalid key length")

	// ErrAuthenticationFailed is returned when decryption rejects the
	// ciphertext: tampered data, a wrong key, or a wrong nonce. No
	// plaintext is released in this case.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrInvalidKeyFormat is returned when key material cannot be parsed.
	// It signals a caller bug, distinguishable from a genuine
	// verification failure.
	ErrInvalidKeyFormat = errors.New("invalid key format")

	// ErrContextClosed is returned when operations are attempted on a
	// closed SecurityContext.
	ErrContextClosed = errors.New("security context has been closed")

	// ErrInvalidNonceSize is returned when a SealedMessage carries a nonce
	// that is not exactly NonceSize bytes.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrInvalidEnvelope is returned when a serialized SealedMessage or
	// exported key pair fails validation.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrUnknownScheme is returned when a signature scheme is not one of
	// the supported Scheme values.
	ErrUnknownScheme = errors.New("unknown signature scheme")

	// ErrPassphraseRequired is returned when an encrypted private key
	// export is requested or parsed without a passphrase.
	ErrPassphraseRequired = errors.New("passphrase required")

	// ErrBadPassphrase is returned when a passphrase cannot decrypt an
	// encrypted private key.
	ErrBadPassphrase = errors.New("bad passphrase")
)

// SecureCoreError is implemented by all typed errors of this package.
type SecureCoreError interface {
	error
	SecureCoreError() // marker method
}

// KeyLengthError reports a key of the wrong length supplied at context
// construction. It matches ErrInvalidKeyLength with errors.Is.
type KeyLengthError struct {
	// Key names the offending key ("symmetric key" or "MAC key").
	Key string
	// Got is the supplied length in bytes.
	Got int
}

func (e *KeyLengthError) Error() string {
	return fmt.Sprintf("%s must be exactly %d bytes, got %d", e.Key, KeySize, e.Got)
}

// SecureCoreError implements the SecureCoreError interface.
func (e *KeyLengthError) SecureCoreError() {}

// Is implements errors.Is for sentinel error matching.
func (e *KeyLengthError) Is(target error) bool {
	return target == ErrInvalidKeyLength
}

// KeyFormatError reports key material that could not be parsed. It matches
// ErrInvalidKeyFormat with errors.Is.
type KeyFormatError struct {
	Message string
	Err     error
}

func (e *KeyFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("key format error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("key format error: %s", e.Message)
}

// SecureCoreError implements the SecureCoreError interface.
func (e *KeyFormatError) SecureCoreError() {}

// Unwrap returns the underlying parse error.
func (e *KeyFormatError) Unwrap() error { return e.Err }

// Is implements errors.Is for sentinel error matching.
func (e *KeyFormatError) Is(target error) bool {
	return target == ErrInvalidKeyFormat
}

// wrapCryptoError converts internal crypto errors to public sentinel and
// typed errors so that errors.Is() checks work correctly.
func wrapCryptoError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return ErrAuthenticationFailed
	case errors.Is(err, crypto.ErrInvalidNonceSize):
		return fmt.Errorf("%w: %v", ErrInvalidNonceSize, err)
	case errors.Is(err, crypto.ErrMalformedPrivateKey):
		return &KeyFormatError{Message: "malformed private key", Err: err}
	case errors.Is(err, crypto.ErrMalformedPublicKey):
		return &KeyFormatError{Message: "malformed public key", Err: err}
	case errors.Is(err, crypto.ErrUnsupportedKeyType):
		return &KeyFormatError{Message: "unsupported key type", Err: err}
	case errors.Is(err, crypto.ErrPassphraseRequired):
		return ErrPassphraseRequired
	case errors.Is(err, crypto.ErrBadPassphrase):
		return ErrBadPassphrase
	}

	return err
}
