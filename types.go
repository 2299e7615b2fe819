package securecore

import (
	"encoding/json"
	"fmt"

	"github.com/fedshare/securecore-go/internal/crypto"
)

// Protocol constants.
const (
	// KeySize is the required length of symmetric and MAC keys in bytes.
	KeySize = crypto.AESKeySize
	// NonceSize is the length of a SealedMessage nonce in bytes.
	NonceSize = crypto.NonceSize
	// TagSize is the length of an IntegrityTag in bytes.
	TagSize = crypto.HMACTagSize

	// SealedMessageVersion is the current sealed message format version.
	SealedMessageVersion = 1

	// AlgorithmAESGCM identifies the AEAD algorithm of a SealedMessage.
	AlgorithmAESGCM = "AES-256-GCM"
)

// SealedMessage is a confidentiality-protected payload: the GCM ciphertext
// (authentication tag included) and the nonce drawn for this encryption.
// The nonce is public and must travel with the ciphertext; it is never
// reused under the same key.
type SealedMessage struct {
	// Version is the sealed message format version.
	Version int
	// Algorithm identifies the AEAD suite, AlgorithmAESGCM.
	Algorithm string
	// Nonce is the 16-byte value drawn fresh for this encryption.
	Nonce []byte
	// Ciphertext is the encrypted payload with the GCM tag appended.
	Ciphertext []byte
}

// sealedMessageJSON is the wire envelope with base64url-encoded fields.
type sealedMessageJSON struct {
	V          int    `json:"v"`
	Alg        string `json:"alg"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// MarshalJSON encodes the sealed message as a JSON envelope with
// base64url-encoded binary fields.
func (m *SealedMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(sealedMessageJSON{
		V:          m.Version,
		Alg:        m.Algorithm,
		Nonce:      crypto.ToBase64URL(m.Nonce),
		Ciphertext: crypto.ToBase64URL(m.Ciphertext),
	})
}

// UnmarshalJSON decodes a JSON envelope produced by MarshalJSON. Call
// Validate before decrypting.
//
// Malformed field encodings are reported as ErrInvalidEnvelope. When the
// input is not well-formed JSON at all, json.Unmarshal rejects it before
// this method runs, so the caller sees the stdlib syntax error instead.
func (m *SealedMessage) UnmarshalJSON(data []byte) error {
	var env sealedMessageJSON
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	nonce, err := crypto.FromBase64URL(env.Nonce)
	if err != nil {
		return fmt.Errorf("%w: invalid nonce encoding", ErrInvalidEnvelope)
	}
	ciphertext, err := crypto.FromBase64URL(env.Ciphertext)
	if err != nil {
		return fmt.Errorf("%w: invalid ciphertext encoding", ErrInvalidEnvelope)
	}

	m.Version = env.V
	m.Algorithm = env.Alg
	m.Nonce = nonce
	m.Ciphertext = ciphertext
	return nil
}

// Validate checks the structural invariants of a sealed message. It does
// not authenticate the ciphertext; only Decrypt does that.
func (m *SealedMessage) Validate() error {
	if m.Version != SealedMessageVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidEnvelope, m.Version, SealedMessageVersion)
	}
	if m.Algorithm != AlgorithmAESGCM {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidEnvelope, m.Algorithm)
	}
	if len(m.Nonce) != NonceSize {
		return fmt.Errorf("%w: nonce size %d, expected %d", ErrInvalidEnvelope, len(m.Nonce), NonceSize)
	}
	if len(m.Ciphertext) < crypto.TagSize {
		return fmt.Errorf("%w: ciphertext shorter than authentication tag", ErrInvalidEnvelope)
	}
	return nil
}

// IntegrityTag is an HMAC-SHA-256 proof that a payload was not altered.
// Tags are not secret and may be stored or transmitted in the clear.
type IntegrityTag []byte

// String returns the tag as base64url for logging and transport.
func (t IntegrityTag) String() string {
	return crypto.ToBase64URL(t)
}

// ParseIntegrityTag decodes a base64url tag produced by
// IntegrityTag.String.
func ParseIntegrityTag(s string) (IntegrityTag, error) {
	raw, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return IntegrityTag(raw), nil
}

// Signature is an asymmetric signature bound to exactly one
// (private key, payload) pair at creation time.
type Signature []byte

// String returns the signature as base64url for logging and transport.
func (s Signature) String() string {
	return crypto.ToBase64URL(s)
}

// ParseSignature decodes a base64url signature produced by
// Signature.String.
func ParseSignature(s string) (Signature, error) {
	raw, err := crypto.FromBase64URL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return Signature(raw), nil
}
