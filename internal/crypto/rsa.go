package crypto

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
)

// pssOptions selects SHA-256 with the maximum salt length the key allows,
// matching the probabilistic signing behavior required by the protocol.
var pssOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto,
	Hash:       crypto.SHA256,
}

// GenerateRSAKeyPair creates a new RSA-2048 key pair and returns the
// private key as PKCS#8 PEM and the public key as PKIX PEM. The private
// half is unencrypted; the caller is responsible for protecting it at rest.
func GenerateRSAKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(randReader, RSAKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}

	privateKeyPEM, err = MarshalPrivateKeyPEM(key)
	if err != nil {
		return nil, nil, err
	}

	publicKeyPEM, err = MarshalPublicKeyPEM(&key.PublicKey)
	if err != nil {
		return nil, nil, err
	}

	return privateKeyPEM, publicKeyPEM, nil
}

// SignRSAPSS signs data with an RSA private key in PEM form using RSA-PSS
// over SHA-256. The padding is probabilistic: signing the same data twice
// yields different signature bytes, and both verify.
func SignRSAPSS(privateKeyPEM, data []byte) ([]byte, error) {
	key, err := ParsePrivateKeyPEM(privateKeyPEM, nil)
	if err != nil {
		return nil, err
	}

	if key.N.BitLen() < MinRSAKeyBits {
		return nil, fmt.Errorf("%w: RSA modulus %d bits, want at least %d",
			ErrUnsupportedKeyType, key.N.BitLen(), MinRSAKeyBits)
	}

	digest := sha256.Sum256(data)
	sig, err := rsa.SignPSS(randReader, key, crypto.SHA256, digest[:], pssOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}

	return sig, nil
}

// VerifyRSAPSS reports whether sig is a valid RSA-PSS signature over data
// under the public key in PEM form. A mismatched or malformed signature
// returns false with no error; a key that cannot be parsed returns an
// error so callers can distinguish caller bugs from genuine verification
// failures.
func VerifyRSAPSS(publicKeyPEM, data, sig []byte) (bool, error) {
	key, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return false, err
	}

	digest := sha256.Sum256(data)
	if err := rsa.VerifyPSS(key, crypto.SHA256, digest[:], sig, pssOptions); err != nil {
		return false, nil
	}

	return true, nil
}
