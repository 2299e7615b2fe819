package securecore

import (
	"fmt"
	"time"

	"github.com/fedshare/securecore-go/internal/crypto"
)

// SignatureScheme identifies an asymmetric signature algorithm.
type SignatureScheme string

const (
	// SchemeRSAPSS is RSA-2048 with PSS padding over SHA-256 (default).
	SchemeRSAPSS SignatureScheme = "RSA-PSS-SHA256"
	// SchemeMLDSA65 is the post-quantum ML-DSA-65 scheme (FIPS 204), for
	// artifacts whose non-repudiation must outlive RSA.
	SchemeMLDSA65 SignatureScheme = "ML-DSA-65"
)

// KeyPair is an asymmetric identity. The private half must never leave
// the holder; the public half is distributed out-of-band.
type KeyPair struct {
	// Scheme is the signature scheme of this key pair.
	Scheme SignatureScheme
	// PrivateKeyPEM is the PEM-encoded private key, unencrypted.
	PrivateKeyPEM []byte
	// PublicKeyPEM is the PEM-encoded public key, freely shareable.
	PublicKeyPEM []byte
}

// GenerateKeyPair creates a signing key pair in the given scheme.
func GenerateKeyPair(scheme SignatureScheme) (*KeyPair, error) {
	var privPEM, pubPEM []byte
	var err error

	switch scheme {
	case SchemeRSAPSS:
		privPEM, pubPEM, err = crypto.GenerateRSAKeyPair()
	case SchemeMLDSA65:
		privPEM, pubPEM, err = crypto.GenerateMLDSAKeyPair()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		Scheme:        scheme,
		PrivateKeyPEM: privPEM,
		PublicKeyPEM:  pubPEM,
	}, nil
}

// ExportPrivateKeyEncrypted returns the private key as a passphrase-
// protected PKCS#8 "ENCRYPTED PRIVATE KEY" PEM block. Only RSA keys
// support encrypted export; ML-DSA keys must be protected by the caller's
// key storage instead.
func (kp *KeyPair) ExportPrivateKeyEncrypted(passphrase []byte) ([]byte, error) {
	if kp.Scheme != SchemeRSAPSS {
		return nil, fmt.Errorf("%w: encrypted export supports %q only", ErrUnknownScheme, SchemeRSAPSS)
	}
	if len(passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}

	key, err := crypto.ParsePrivateKeyPEM(kp.PrivateKeyPEM, nil)
	if err != nil {
		return nil, wrapCryptoError(err)
	}

	encPEM, err := crypto.MarshalEncryptedPrivateKeyPEM(key, passphrase)
	if err != nil {
		return nil, wrapCryptoError(err)
	}
	return encPEM, nil
}

// ExportVersion is the current key pair export format version.
const ExportVersion = 1

// ExportedKeyPair contains all data needed to restore a key pair.
// WARNING: this contains private key material - handle securely.
type ExportedKeyPair struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// Scheme is the signature scheme name.
	Scheme string `json:"scheme"`
	// PrivateKeyPEM is the PEM-encoded private key.
	PrivateKeyPEM string `json:"privateKeyPem"`
	// PublicKeyPEM is the PEM-encoded public key.
	PublicKeyPEM string `json:"publicKeyPem"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// Export returns the key pair in its serializable form.
func (kp *KeyPair) Export() *ExportedKeyPair {
	return &ExportedKeyPair{
		Version:       ExportVersion,
		Scheme:        string(kp.Scheme),
		PrivateKeyPEM: string(kp.PrivateKeyPEM),
		PublicKeyPEM:  string(kp.PublicKeyPEM),
		ExportedAt:    time.Now().UTC(),
	}
}

// Validate checks that the exported data is structurally valid.
func (e *ExportedKeyPair) Validate() error {
	if e.Version != ExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidEnvelope, e.Version, ExportVersion)
	}

	switch SignatureScheme(e.Scheme) {
	case SchemeRSAPSS, SchemeMLDSA65:
	default:
		return fmt.Errorf("%w: unknown scheme %q", ErrInvalidEnvelope, e.Scheme)
	}

	if e.PrivateKeyPEM == "" {
		return fmt.Errorf("%w: privateKeyPem is required", ErrInvalidEnvelope)
	}
	if e.PublicKeyPEM == "" {
		return fmt.Errorf("%w: publicKeyPem is required", ErrInvalidEnvelope)
	}

	return nil
}

// ImportKeyPair restores a key pair from its exported form, verifying the
// key material parses under the declared scheme.
func ImportKeyPair(e *ExportedKeyPair) (*KeyPair, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	kp := &KeyPair{
		Scheme:        SignatureScheme(e.Scheme),
		PrivateKeyPEM: []byte(e.PrivateKeyPEM),
		PublicKeyPEM:  []byte(e.PublicKeyPEM),
	}

	privScheme, err := schemeOfPEM(kp.PrivateKeyPEM)
	if err != nil {
		return nil, err
	}
	pubScheme, err := schemeOfPEM(kp.PublicKeyPEM)
	if err != nil {
		return nil, err
	}
	if privScheme != kp.Scheme || pubScheme != kp.Scheme {
		return nil, fmt.Errorf("%w: key material does not match scheme %q", ErrInvalidEnvelope, kp.Scheme)
	}

	if kp.Scheme == SchemeRSAPSS {
		if _, err := crypto.ParsePrivateKeyPEM(kp.PrivateKeyPEM, nil); err != nil {
			return nil, wrapCryptoError(err)
		}
		if _, err := crypto.ParsePublicKeyPEM(kp.PublicKeyPEM); err != nil {
			return nil, wrapCryptoError(err)
		}
	}

	return kp, nil
}
