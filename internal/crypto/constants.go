package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// NonceSize is the size of an AES-GCM nonce in bytes. The protocol uses
	// a full-block 128-bit nonce, not the GCM default of 96 bits.
	NonceSize = 16
	// TagSize is the size of an AES-GCM authentication tag in bytes.
	TagSize = 16

	// HMACKeySize is the size of the HMAC-SHA-256 key in bytes.
	HMACKeySize = 32
	// HMACTagSize is the size of an HMAC-SHA-256 tag in bytes.
	HMACTagSize = 32

	// RSAKeyBits is the RSA modulus size in bits for generated key pairs.
	RSAKeyBits = 2048
	// MinRSAKeyBits is the smallest RSA modulus accepted for signing keys.
	MinRSAKeyBits = 2048

	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = 1952
	// MLDSAPrivateKeySize is the size of an ML-DSA-65 private key in bytes.
	MLDSAPrivateKeySize = 4032
	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = 3309

	// HKDFContext is the domain-separation string used when deriving
	// context keys from a master secret.
	HKDFContext = "securecore:context-key:v1"
)

// PEM block types for key material produced by this package.
const (
	PEMTypePrivateKey          = "PRIVATE KEY"
	PEMTypePublicKey           = "PUBLIC KEY"
	PEMTypeEncryptedPrivateKey = "ENCRYPTED PRIVATE KEY"
	PEMTypeMLDSAPrivateKey     = "ML-DSA-65 PRIVATE KEY"
	PEMTypeMLDSAPublicKey      = "ML-DSA-65 PUBLIC KEY"
)
