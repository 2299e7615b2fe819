// Package keystore persists key pairs in the operating system's
// credential store (Keychain on macOS, libsecret on Linux, Credential
// Manager on Windows). Key pairs are stored as their versioned JSON
// export, so anything written by one securecore release can be read
// back by later ones.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	securecore "github.com/fedshare/securecore-go"
)

// ErrNotFound is returned when no key pair is stored under the
// requested name.
var ErrNotFound = errors.New("key pair not found")

// Store reads and writes key pairs in an OS credential store.
type Store struct {
	ring keyring.Keyring
}

// Open connects to the OS credential store under the given service
// name. Entries from different services do not collide.
func Open(service string) (*Store, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
	})
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return &Store{ring: ring}, nil
}

// NewWithKeyring wraps an existing keyring backend. Tests use this
// with keyring.NewArrayKeyring to avoid touching the real credential
// store.
func NewWithKeyring(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Save stores the key pair under name, replacing any existing entry.
func (s *Store) Save(name string, kp *securecore.KeyPair) error {
	data, err := json.Marshal(kp.Export())
	if err != nil {
		return fmt.Errorf("export key pair: %w", err)
	}

	err = s.ring.Set(keyring.Item{
		Key:   name,
		Data:  data,
		Label: "securecore key pair (" + string(kp.Scheme) + ")",
	})
	if err != nil {
		return fmt.Errorf("store key pair %q: %w", name, err)
	}
	return nil
}

// Load retrieves and validates the key pair stored under name.
func (s *Store) Load(name string) (*securecore.KeyPair, error) {
	item, err := s.ring.Get(name)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("load key pair %q: %w", name, err)
	}

	var exported securecore.ExportedKeyPair
	if err := json.Unmarshal(item.Data, &exported); err != nil {
		return nil, fmt.Errorf("parse key pair %q: %w", name, err)
	}

	kp, err := securecore.ImportKeyPair(&exported)
	if err != nil {
		return nil, fmt.Errorf("import key pair %q: %w", name, err)
	}
	return kp, nil
}

// Delete removes the key pair stored under name. Deleting a missing
// entry returns ErrNotFound.
func (s *Store) Delete(name string) error {
	err := s.ring.Remove(name)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("delete key pair %q: %w", name, err)
	}
	return nil
}

// List returns the names of all stored key pairs.
func (s *Store) List() ([]string, error) {
	names, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("list key pairs: %w", err)
	}
	return names, nil
}
