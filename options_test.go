package securecore

import (
	"crypto/rand"
	"errors"
	"testing"
)

func TestWithMACKey_CrossContextVerification(t *testing.T) {
	symKey := make([]byte, KeySize)
	macKey := make([]byte, KeySize)
	if _, err := rand.Read(symKey); err != nil {
		t.Fatal(err)
	}
	if _, err := rand.Read(macKey); err != nil {
		t.Fatal(err)
	}

	ctx1, err := New(symKey, WithMACKey(macKey))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx1.Close()
	ctx2, err := New(symKey, WithMACKey(macKey))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx2.Close()

	data := []byte("tag verified by another process")
	tag, err := ctx1.GenerateTag(data)
	if err != nil {
		t.Fatal(err)
	}

	if !ctx2.VerifyTag(data, tag) {
		t.Error("tag did not verify across contexts sharing a MAC key")
	}
}

func TestWithMACKey_InvalidLength(t *testing.T) {
	symKey := make([]byte, KeySize)

	for _, size := range []int{0, 16, 31, 33} {
		if _, err := New(symKey, WithMACKey(make([]byte, size))); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("MAC key size %d: expected ErrInvalidKeyLength, got %v", size, err)
		}
	}
}

func TestWithMACKey_CopiesKey(t *testing.T) {
	symKey := make([]byte, KeySize)
	macKey := make([]byte, KeySize)
	if _, err := rand.Read(macKey); err != nil {
		t.Fatal(err)
	}

	ctx, err := New(symKey, WithMACKey(macKey))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	data := []byte("payload")
	tag, err := ctx.GenerateTag(data)
	if err != nil {
		t.Fatal(err)
	}

	for i := range macKey {
		macKey[i] = 0
	}

	if !ctx.VerifyTag(data, tag) {
		t.Error("wiping the caller's MAC key buffer affected the context")
	}
}

func TestWithSignatureScheme(t *testing.T) {
	symKey := make([]byte, KeySize)

	ctx, err := New(symKey, WithSignatureScheme(SchemeMLDSA65))
	if err != nil {
		t.Fatal(err)
	}
	defer ctx.Close()

	kp, err := ctx.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	if kp.Scheme != SchemeMLDSA65 {
		t.Errorf("scheme = %q, want %q", kp.Scheme, SchemeMLDSA65)
	}

	data := []byte("post-quantum signed artifact")
	sig, err := ctx.Sign(kp.PrivateKeyPEM, data)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	ok, err := ctx.Verify(kp.PublicKeyPEM, data, sig)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("Verify() = false for a genuine ML-DSA signature")
	}
}

func TestWithSignatureScheme_Unknown(t *testing.T) {
	symKey := make([]byte, KeySize)

	_, err := New(symKey, WithSignatureScheme("ED25519"))
	if !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("expected ErrUnknownScheme, got %v", err)
	}
}

func TestSchemes_AreNotInterchangeable(t *testing.T) {
	symKey := make([]byte, KeySize)

	rsaCtx, err := New(symKey)
	if err != nil {
		t.Fatal(err)
	}
	defer rsaCtx.Close()
	pqCtx, err := New(symKey, WithSignatureScheme(SchemeMLDSA65))
	if err != nil {
		t.Fatal(err)
	}
	defer pqCtx.Close()

	rsaKP, err := rsaCtx.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	pqKP, err := pqCtx.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("payload")
	rsaSig, err := rsaCtx.Sign(rsaKP.PrivateKeyPEM, data)
	if err != nil {
		t.Fatal(err)
	}

	// An RSA signature presented with an ML-DSA public key is just a
	// verification failure for that key.
	ok, err := pqCtx.Verify(pqKP.PublicKeyPEM, data, rsaSig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("RSA signature verified under an ML-DSA key")
	}
}
