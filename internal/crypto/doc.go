// Package crypto provides the cryptographic primitives for the securecore
// protection layer: authenticated encryption, keyed integrity tags, and
// digital signatures.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD)
//     for protecting artifact payloads. The protocol uses a full-block
//     128-bit nonce rather than the GCM default of 96 bits.
//
//   - HMAC-SHA-256 (RFC 2104): Keyed integrity tags for payloads that are
//     not independently confidentiality-protected. Tag comparison is
//     constant time.
//
//   - RSA-2048 with PSS padding (RFC 8017): Digital signatures for origin
//     authentication and non-repudiation. The salt length is maximal, so
//     signing the same data twice yields different signature bytes.
//
//   - ML-DSA-65 (NIST FIPS 204): Optional post-quantum signature scheme
//     for artifacts whose non-repudiation must outlive RSA.
//
//   - HKDF-SHA-512 (RFC 5869): Key derivation for provisioning per-context
//     keys from a master secret with domain separation.
//
// # Critical Security Notes
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Nonce reuse completely breaks the security of AES-GCM, allowing attackers
// to recover the authentication key and forge messages. [Encrypt] draws a
// fresh random nonce on every call; the explicit-nonce functions exist for
// protocol-level testing only.
//
// Decryption fails closed: no plaintext is ever released when the GCM tag
// check fails, whether the cause is a tampered ciphertext, a wrong key, or
// a wrong nonce.
//
// Key material must never be logged, transmitted in plaintext, or stored in
// version control. Use [Wipe] to clear key buffers that are no longer
// needed.
package crypto
