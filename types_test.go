package securecore

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestSealedMessage_JSONRoundTrip(t *testing.T) {
	ctx := newTestContext(t)

	sealed, err := ctx.Encrypt([]byte("serialized payload"))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(sealed)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	// The envelope carries base64url strings, not raw bytes.
	if !strings.Contains(string(data), `"alg":"AES-256-GCM"`) {
		t.Errorf("envelope missing algorithm field: %s", data)
	}

	var restored SealedMessage
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := restored.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if !bytes.Equal(restored.Nonce, sealed.Nonce) {
		t.Error("nonce changed across serialization")
	}
	if !bytes.Equal(restored.Ciphertext, sealed.Ciphertext) {
		t.Error("ciphertext changed across serialization")
	}

	plaintext, err := ctx.Decrypt(&restored)
	if err != nil {
		t.Fatalf("Decrypt() after round trip error = %v", err)
	}
	if string(plaintext) != "serialized payload" {
		t.Errorf("plaintext = %q", plaintext)
	}
}

func TestSealedMessage_UnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json"},
		{"bad nonce encoding", `{"v":1,"alg":"AES-256-GCM","nonce":"!!!","ciphertext":"AAAA"}`},
		{"bad ciphertext encoding", `{"v":1,"alg":"AES-256-GCM","nonce":"AAAA","ciphertext":"!!!"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UnmarshalJSON is invoked directly: json.Unmarshal
			// syntax-checks the input first and reports malformed JSON
			// with its own error before the method runs.
			var m SealedMessage
			if err := m.UnmarshalJSON([]byte(tt.data)); !errors.Is(err, ErrInvalidEnvelope) {
				t.Errorf("expected ErrInvalidEnvelope, got %v", err)
			}
		})
	}
}

func TestSealedMessage_Validate(t *testing.T) {
	valid := SealedMessage{
		Version:    SealedMessageVersion,
		Algorithm:  AlgorithmAESGCM,
		Nonce:      make([]byte, NonceSize),
		Ciphertext: make([]byte, 16),
	}

	tests := []struct {
		name   string
		mutate func(*SealedMessage)
	}{
		{"wrong version", func(m *SealedMessage) { m.Version = 2 }},
		{"wrong algorithm", func(m *SealedMessage) { m.Algorithm = "AES-256-CBC" }},
		{"short nonce", func(m *SealedMessage) { m.Nonce = m.Nonce[:12] }},
		{"empty nonce", func(m *SealedMessage) { m.Nonce = nil }},
		{"ciphertext shorter than tag", func(m *SealedMessage) { m.Ciphertext = m.Ciphertext[:15] }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid message failed validation: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			if err := m.Validate(); !errors.Is(err, ErrInvalidEnvelope) {
				t.Errorf("expected ErrInvalidEnvelope, got %v", err)
			}
		})
	}
}

func TestIntegrityTag_String(t *testing.T) {
	tag := IntegrityTag{0xde, 0xad, 0xbe, 0xef}
	if got := tag.String(); got != "3q2-7w" {
		t.Errorf("String() = %q, want %q", got, "3q2-7w")
	}
}

func TestParseIntegrityTag(t *testing.T) {
	tag := IntegrityTag{0xde, 0xad, 0xbe, 0xef}

	parsed, err := ParseIntegrityTag(tag.String())
	if err != nil {
		t.Fatalf("ParseIntegrityTag() error = %v", err)
	}
	if !bytes.Equal(parsed, tag) {
		t.Errorf("ParseIntegrityTag() = %x, want %x", parsed, tag)
	}

	if _, err := ParseIntegrityTag("not!base64url"); !errors.Is(err, ErrInvalidEnvelope) {
		t.Errorf("expected ErrInvalidEnvelope, got %v", err)
	}
}

func TestParseSignature(t *testing.T) {
	sig := Signature{0x01, 0x02, 0x03, 0x04, 0x05}

	parsed, err := ParseSignature(sig.String())
	if err != nil {
		t.Fatalf("ParseSignature() error = %v", err)
	}
	if !bytes.Equal(parsed, sig) {
		t.Errorf("ParseSignature() = %x, want %x", parsed, sig)
	}

	if _, err := ParseSignature("===="); !errors.Is(err, ErrInvalidEnvelope) {
		t.Errorf("expected ErrInvalidEnvelope, got %v", err)
	}
}
