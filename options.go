package securecore

import "bytes"

// contextConfig holds configuration for a SecurityContext.
type contextConfig struct {
	macKey []byte
	scheme SignatureScheme
}

// Option configures a SecurityContext at construction.
type Option func(*contextConfig)

// WithMACKey supplies a 32-byte MAC key instead of generating a random
// one, so integrity tags can be verified by other processes holding the
// same key. The key is copied. Without this option, tags are only valid
// within the context that generated them.
func WithMACKey(key []byte) Option {
	return func(c *contextConfig) {
		c.macKey = bytes.Clone(key)
	}
}

// WithSignatureScheme selects the scheme used by GenerateKeyPair. The
// default is SchemeRSAPSS. Sign and Verify detect the scheme from the key
// material itself and are unaffected.
func WithSignatureScheme(scheme SignatureScheme) Option {
	return func(c *contextConfig) {
		c.scheme = scheme
	}
}
