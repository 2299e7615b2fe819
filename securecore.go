package securecore

import (
	"bytes"
	"encoding/pem"
	"fmt"
	"sync/atomic"

	"github.com/fedshare/securecore-go/internal/crypto"
)

// SecurityContext holds one caller's cryptographic session: the
// caller-supplied 32-byte symmetric key and a MAC key fixed at
// construction. No field is mutated after construction, so a single
// context is safe for concurrent use from multiple goroutines. Close
// wipes the key material; construct one context per security boundary
// rather than sharing process-wide state.
type SecurityContext struct {
	symmetricKey []byte
	macKey       []byte
	scheme       SignatureScheme
	closed       atomic.Bool
}

// New creates a SecurityContext from a 32-byte symmetric key. The key is
// copied; the caller may wipe its own buffer afterwards. A fresh random
// MAC key is generated unless WithMACKey supplies one, so integrity tags
// are by default only verifiable within the context that produced them.
func New(symmetricKey []byte, opts ...Option) (*SecurityContext, error) {
	if len(symmetricKey) != KeySize {
		return nil, &KeyLengthError{Key: "symmetric key", Got: len(symmetricKey)}
	}

	cfg := contextConfig{scheme: SchemeRSAPSS}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.macKey != nil && len(cfg.macKey) != KeySize {
		return nil, &KeyLengthError{Key: "MAC key", Got: len(cfg.macKey)}
	}
	if cfg.scheme != SchemeRSAPSS && cfg.scheme != SchemeMLDSA65 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, cfg.scheme)
	}

	macKey := bytes.Clone(cfg.macKey)
	if macKey == nil {
		var err error
		macKey, err = crypto.NewMACKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate MAC key: %w", err)
		}
	}

	return &SecurityContext{
		symmetricKey: bytes.Clone(symmetricKey),
		macKey:       macKey,
		scheme:       cfg.scheme,
	}, nil
}

// Close wipes the context's key material. Operations on a closed context
// fail with ErrContextClosed. Close is idempotent, but must not race with
// in-flight operations on the same context.
func (c *SecurityContext) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	crypto.Wipe(c.symmetricKey)
	crypto.Wipe(c.macKey)
	return nil
}

// Encrypt seals plaintext with AES-256-GCM under the context's symmetric
// key and a fresh random nonce. Empty plaintext is valid. The returned
// SealedMessage must be decrypted exactly once by a holder of the same
// key; its nonce is public and travels with the ciphertext.
func (c *SecurityContext) Encrypt(plaintext []byte) (*SealedMessage, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}

	ciphertext, nonce, err := crypto.Encrypt(c.symmetricKey, plaintext)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return &SealedMessage{
		Version:    SealedMessageVersion,
		Algorithm:  AlgorithmAESGCM,
		Nonce:      nonce,
		Ciphertext: ciphertext,
	}, nil
}

// Decrypt opens a SealedMessage. It fails closed with
// ErrAuthenticationFailed if the authentication tag does not match —
// tampered ciphertext, a wrong key, and a wrong nonce are
// indistinguishable — and never returns partial plaintext. The error is
// surfaced to the caller and must not be swallowed: it signals corruption
// or active tampering.
func (c *SecurityContext) Decrypt(sealed *SealedMessage) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}
	if sealed == nil {
		return nil, fmt.Errorf("%w: nil message", ErrInvalidEnvelope)
	}

	plaintext, err := crypto.Decrypt(c.symmetricKey, sealed.Ciphertext, sealed.Nonce, nil)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return plaintext, nil
}

// GenerateTag computes an HMAC-SHA-256 integrity tag over data with the
// context's MAC key.
func (c *SecurityContext) GenerateTag(data []byte) (IntegrityTag, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}
	return IntegrityTag(crypto.GenerateHMAC(c.macKey, data)), nil
}

// VerifyTag reports whether tag matches data under the context's MAC key.
// The comparison is constant time. A mismatch is an expected outcome and
// returns false; it is never surfaced as an error. A closed context also
// returns false.
func (c *SecurityContext) VerifyTag(data []byte, tag IntegrityTag) bool {
	if c.closed.Load() {
		return false
	}
	return crypto.VerifyHMAC(c.macKey, data, tag)
}

// GenerateKeyPair creates a signing key pair in the context's signature
// scheme (RSA-2048 with PSS by default). The private half is returned
// unencrypted in PEM form and never persisted here; the caller is
// responsible for protecting it at rest.
func (c *SecurityContext) GenerateKeyPair() (*KeyPair, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}
	return GenerateKeyPair(c.scheme)
}

// Sign signs data with a private key in PEM form. The scheme is detected
// from the PEM block type, so a context can sign with keys it did not
// generate. Signing is probabilistic in both schemes: the same data signs
// to different bytes each time, and every one of them verifies.
func (c *SecurityContext) Sign(privateKeyPEM []byte, data []byte) (Signature, error) {
	if c.closed.Load() {
		return nil, ErrContextClosed
	}

	scheme, err := schemeOfPEM(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	var sig []byte
	switch scheme {
	case SchemeMLDSA65:
		sig, err = crypto.SignMLDSA(privateKeyPEM, data)
	default:
		sig, err = crypto.SignRSAPSS(privateKeyPEM, data)
	}
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	return Signature(sig), nil
}

// Verify reports whether sig was produced by the private half of the
// given public key over byte-identical data. A mismatched or malformed
// signature returns (false, nil): verification failure is an outcome
// callers branch on, not an exception. A public key that cannot be parsed
// returns a *KeyFormatError, since that is a caller bug distinguishable
// from a genuine verification failure.
func (c *SecurityContext) Verify(publicKeyPEM []byte, data []byte, sig Signature) (bool, error) {
	if c.closed.Load() {
		return false, ErrContextClosed
	}

	scheme, err := schemeOfPEM(publicKeyPEM)
	if err != nil {
		return false, err
	}

	var ok bool
	switch scheme {
	case SchemeMLDSA65:
		ok, err = crypto.VerifyMLDSA(publicKeyPEM, data, sig)
	default:
		ok, err = crypto.VerifyRSAPSS(publicKeyPEM, data, sig)
	}
	if err != nil {
		return false, wrapCryptoError(err)
	}

	return ok, nil
}

// schemeOfPEM detects the signature scheme from the PEM block type.
func schemeOfPEM(pemBytes []byte) (SignatureScheme, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return "", &KeyFormatError{Message: "no PEM block found"}
	}

	switch block.Type {
	case crypto.PEMTypeMLDSAPrivateKey, crypto.PEMTypeMLDSAPublicKey:
		return SchemeMLDSA65, nil
	case crypto.PEMTypePrivateKey, crypto.PEMTypePublicKey, crypto.PEMTypeEncryptedPrivateKey:
		return SchemeRSAPSS, nil
	default:
		return "", &KeyFormatError{Message: fmt.Sprintf("unexpected PEM block type %q", block.Type)}
	}
}

// DeriveContextKey derives a 32-byte context key from a master secret
// using HKDF-SHA-512 with domain separation, for callers that provision
// many contexts from one secret. The salt should be unique per derived
// context (a tenant or session identifier is typical); it need not be
// secret.
func DeriveContextKey(masterSecret, salt []byte) ([]byte, error) {
	if len(masterSecret) == 0 {
		return nil, fmt.Errorf("master secret must not be empty")
	}
	return crypto.DeriveKey(masterSecret, salt, []byte(crypto.HKDFContext), KeySize)
}
