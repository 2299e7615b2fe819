package crypto

import (
	"encoding/pem"
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// GenerateMLDSAKeyPair creates a new ML-DSA-65 key pair. The raw key bytes
// are carried in PEM blocks so that key handling is uniform across
// signature schemes.
func GenerateMLDSAKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	pub, priv, err := mldsa65.GenerateKey(randReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ML-DSA key: %w", err)
	}

	// MarshalBinary never fails for valid keys from GenerateKey
	privBytes, _ := priv.MarshalBinary()
	pubBytes, _ := pub.MarshalBinary()

	return EncodePEM(PEMTypeMLDSAPrivateKey, privBytes),
		EncodePEM(PEMTypeMLDSAPublicKey, pubBytes), nil
}

// SignMLDSA signs data with an ML-DSA-65 private key in PEM form. Signing
// is hedged (randomized), so signing the same data twice yields different
// signature bytes.
func SignMLDSA(privateKeyPEM, data []byte) ([]byte, error) {
	block, _ := pem.Decode(privateKeyPEM)
	if block == nil || block.Type != PEMTypeMLDSAPrivateKey {
		return nil, fmt.Errorf("%w: expected %q PEM block", ErrMalformedPrivateKey, PEMTypeMLDSAPrivateKey)
	}
	if len(block.Bytes) != MLDSAPrivateKeySize {
		return nil, fmt.Errorf("%w: key size %d, want %d", ErrMalformedPrivateKey, len(block.Bytes), MLDSAPrivateKeySize)
	}

	var priv mldsa65.PrivateKey
	if err := priv.UnmarshalBinary(block.Bytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPrivateKey, err)
	}

	sig := make([]byte, MLDSASignatureSize)
	if err := mldsa65.SignTo(&priv, data, nil, true, sig); err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	return sig, nil
}

// VerifyMLDSA reports whether sig is a valid ML-DSA-65 signature over data
// under the public key in PEM form. A mismatched signature returns false
// with no error; an unparseable key returns an error.
func VerifyMLDSA(publicKeyPEM, data, sig []byte) (bool, error) {
	block, _ := pem.Decode(publicKeyPEM)
	if block == nil || block.Type != PEMTypeMLDSAPublicKey {
		return false, fmt.Errorf("%w: expected %q PEM block", ErrMalformedPublicKey, PEMTypeMLDSAPublicKey)
	}
	if len(block.Bytes) != MLDSAPublicKeySize {
		return false, fmt.Errorf("%w: key size %d, want %d", ErrMalformedPublicKey, len(block.Bytes), MLDSAPublicKeySize)
	}

	var pub mldsa65.PublicKey
	if err := pub.UnmarshalBinary(block.Bytes); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	return mldsa65.Verify(&pub, data, nil, sig), nil
}
