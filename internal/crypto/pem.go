package crypto

import (
	"crypto"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/youmark/pkcs8"
)

// pkcs8BadPassphraseMsg is the substring youmark/pkcs8 puts in the error
// it returns for a wrong decryption passphrase. The package exports no
// error type or sentinel for this case, so matching the message is the
// only way to tell a bad passphrase from corrupt key material. Must be
// kept in sync with that package's error text.
const pkcs8BadPassphraseMsg = "incorrect password"

// EncodePEM encodes der into a PEM block of the given type.
func EncodePEM(blockType string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

// MarshalPrivateKeyPEM marshals an RSA private key to an unencrypted
// PKCS#8 "PRIVATE KEY" PEM block.
func MarshalPrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	return EncodePEM(PEMTypePrivateKey, der), nil
}

// MarshalPublicKeyPEM marshals an RSA public key to a PKIX "PUBLIC KEY"
// PEM block.
func MarshalPublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key)
	if err != nil {
		return nil, err
	}
	return EncodePEM(PEMTypePublicKey, der), nil
}

// MarshalEncryptedPrivateKeyPEM marshals an RSA private key to a PKCS#8
// "ENCRYPTED PRIVATE KEY" PEM block protected by the passphrase
// (AES-256-CBC, PBKDF2-SHA-256).
func MarshalEncryptedPrivateKeyPEM(key *rsa.PrivateKey, passphrase []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, ErrPassphraseRequired
	}
	der, err := pkcs8.MarshalPrivateKey(key, passphrase, &pkcs8.Opts{
		Cipher: pkcs8.AES256CBC,
		KDFOpts: pkcs8.PBKDF2Opts{
			SaltSize:       8,
			IterationCount: 10000,
			HMACHash:       crypto.SHA256,
		},
	})
	if err != nil {
		return nil, err
	}
	return EncodePEM(PEMTypeEncryptedPrivateKey, der), nil
}

// ParsePrivateKeyPEM parses RSA private key PEM material. It accepts
// unencrypted PKCS#8 "PRIVATE KEY" blocks and, when a passphrase is
// supplied, PKCS#8 "ENCRYPTED PRIVATE KEY" blocks.
func ParsePrivateKeyPEM(pemBytes, passphrase []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrMalformedPrivateKey)
	}

	switch block.Type {
	case PEMTypePrivateKey:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPrivateKey, err)
		}
		return asRSAPrivateKey(key)

	case PEMTypeEncryptedPrivateKey:
		if len(passphrase) == 0 {
			return nil, ErrPassphraseRequired
		}
		key, _, err := pkcs8.ParsePrivateKey(block.Bytes, passphrase)
		if err != nil {
			if strings.Contains(err.Error(), pkcs8BadPassphraseMsg) {
				return nil, ErrBadPassphrase
			}
			return nil, fmt.Errorf("%w: %v", ErrMalformedPrivateKey, err)
		}
		return asRSAPrivateKey(key)

	default:
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrMalformedPrivateKey, block.Type)
	}
}

// ParsePublicKeyPEM parses an RSA public key from a PKIX "PUBLIC KEY"
// PEM block.
func ParsePublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrMalformedPublicKey)
	}
	if block.Type != PEMTypePublicKey {
		return nil, fmt.Errorf("%w: unexpected PEM block type %q", ErrMalformedPublicKey, block.Type)
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
	return rsaKey, nil
}

func asRSAPrivateKey(key any) (*rsa.PrivateKey, error) {
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
	return rsaKey, nil
}
