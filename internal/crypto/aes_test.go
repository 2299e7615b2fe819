package crypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"testing"
)

func TestEncrypt_Decrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello world")},
		{"json", []byte(`{"patientId": "p-123", "score": 0.97}`)},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, AESKeySize)
			if _, err := rand.Read(key); err != nil {
				t.Fatal(err)
			}

			ciphertext, nonce, err := Encrypt(key, tt.plaintext)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			if len(nonce) != NonceSize {
				t.Errorf("nonce length = %d, want %d", len(nonce), NonceSize)
			}

			// Ciphertext is plaintext plus the GCM tag
			if len(ciphertext) != len(tt.plaintext)+TagSize {
				t.Errorf("ciphertext length = %d, want %d", len(ciphertext), len(tt.plaintext)+TagSize)
			}

			decrypted, err := Decrypt(key, ciphertext, nonce, nil)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if !bytes.Equal(decrypted, tt.plaintext) {
				t.Errorf("decrypted = %v, want %v", decrypted, tt.plaintext)
			}
		})
	}
}

func TestEncrypt_InvalidKeySize(t *testing.T) {
	tests := []struct {
		name    string
		keySize int
	}{
		{"empty", 0},
		{"aes-128", 16},
		{"one short", 31},
		{"one long", 33},
		{"too long", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keySize)
			_, _, err := Encrypt(key, []byte("test"))
			if !errors.Is(err, ErrInvalidKeySize) {
				t.Errorf("expected ErrInvalidKeySize, got %v", err)
			}
		})
	}
}

func TestEncrypt_FreshNonces(t *testing.T) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("same plaintext every time")
	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		_, nonce, err := Encrypt(key, plaintext)
		if err != nil {
			t.Fatal(err)
		}
		if _, dup := seen[string(nonce)]; dup {
			t.Fatalf("nonce repeated after %d encryptions", i)
		}
		seen[string(nonce)] = struct{}{}
	}
}

func TestDecrypt_InvalidNonceSize(t *testing.T) {
	key := make([]byte, AESKeySize)

	tests := []struct {
		name      string
		nonceSize int
	}{
		{"empty", 0},
		{"gcm default", 12},
		{"too long", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonce := make([]byte, tt.nonceSize)
			_, err := Decrypt(key, make([]byte, TagSize), nonce, nil)
			if !errors.Is(err, ErrInvalidNonceSize) {
				t.Errorf("expected ErrInvalidNonceSize, got %v", err)
			}
		})
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}

	plaintext := []byte("sensitive healthcare data")
	ciphertext, nonce, err := Encrypt(key, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	// Flip a single bit at every position; the tag check must always fail.
	for i := range ciphertext {
		tampered := bytes.Clone(ciphertext)
		tampered[i] ^= 0x01

		if _, err := Decrypt(key, tampered, nonce, nil); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("byte %d: expected ErrDecryptionFailed, got %v", i, err)
		}
	}
}

func TestDecrypt_TamperedNonce(t *testing.T) {
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}

	ciphertext, nonce, err := Encrypt(key, []byte("payload"))
	if err != nil {
		t.Fatal(err)
	}

	for i := range nonce {
		tampered := bytes.Clone(nonce)
		tampered[i] ^= 0x01

		if _, err := Decrypt(key, ciphertext, tampered, nil); !errors.Is(err, ErrDecryptionFailed) {
			t.Fatalf("byte %d: expected ErrDecryptionFailed, got %v", i, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	key1 := make([]byte, AESKeySize)
	key2 := make([]byte, AESKeySize)
	if _, err := rand.Read(key1); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(key2); err != nil {
		t.Fatal(err)
	}

	ciphertext, nonce, err := Encrypt(key1, []byte("sensitive data"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Decrypt(key2, ciphertext, nonce, nil); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestEncryptWithNonce_AADRoundTrip(t *testing.T) {
	key := make([]byte, AESKeySize)
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(key); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(nonce); err != nil {
		t.Fatal(err)
	}

	aad := []byte("artifact-id: 42")
	plaintext := []byte("secret message")

	ciphertext, err := EncryptWithNonce(key, plaintext, nonce, aad)
	if err != nil {
		t.Fatal(err)
	}

	decrypted, err := Decrypt(key, ciphertext, nonce, aad)
	if err != nil {
		t.Fatalf("Decrypt() with matching AAD error = %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q, want %q", decrypted, plaintext)
	}

	// Mismatched AAD must fail closed.
	if _, err := Decrypt(key, ciphertext, nonce, []byte("artifact-id: 43")); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed with wrong AAD, got %v", err)
	}
}

func BenchmarkEncrypt(b *testing.B) {
	key := make([]byte, AESKeySize)
	plaintext := make([]byte, 1000)

	rand.Read(key)
	rand.Read(plaintext)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = Encrypt(key, plaintext)
	}
}

func BenchmarkDecrypt(b *testing.B) {
	key := make([]byte, AESKeySize)
	plaintext := make([]byte, 1000)

	rand.Read(key)
	rand.Read(plaintext)

	ciphertext, nonce, _ := Encrypt(key, plaintext)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Decrypt(key, ciphertext, nonce, nil)
	}
}

// Example_encryptDecrypt demonstrates encrypting and decrypting data with
// AES-256-GCM.
func Example_encryptDecrypt() {
	// Generate a random 256-bit key.
	key := make([]byte, AESKeySize)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}

	// Encrypt draws a fresh nonce; keep it with the ciphertext.
	ciphertext, nonce, err := Encrypt(key, []byte("Hello, World!"))
	if err != nil {
		panic(err)
	}

	decrypted, err := Decrypt(key, ciphertext, nonce, nil)
	if err != nil {
		panic(err)
	}

	fmt.Println(string(decrypted))
	// Output: Hello, World!
}
