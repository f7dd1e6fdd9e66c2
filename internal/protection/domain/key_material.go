package domain

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"
)

// KeyMaterial holds the server-side secrets the protection engine is built from.
//
// It is constructed once at process start and passed explicitly into the engine, so
// tests and key rotation can use alternate material without touching process state.
// The master key is never used directly: per-tier keys are derived from it.
type KeyMaterial struct {
	MasterKey []byte // 32-byte master key for the reversible tiers
	Pepper    []byte // fingerprint HMAC key, distinct from MasterKey
}

// KMSKeeper unwraps (and for key generation, wraps) key material held by a KMS.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// NewKeyMaterial validates raw key bytes and returns a KeyMaterial owning copies of them.
// Any problem is reported as ErrConfiguration.
func NewKeyMaterial(masterKey, pepper []byte) (*KeyMaterial, error) {
	if len(masterKey) == 0 {
		return nil, fmt.Errorf("%w: master key is not set", ErrConfiguration)
	}
	if len(masterKey) != KeySize {
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrConfiguration, KeySize, len(masterKey))
	}
	if len(pepper) == 0 {
		return nil, fmt.Errorf("%w: fingerprint pepper is not set", ErrConfiguration)
	}
	if len(pepper) < MinPepperSize {
		return nil, fmt.Errorf(
			"%w: fingerprint pepper must be at least %d bytes, got %d",
			ErrConfiguration,
			MinPepperSize,
			len(pepper),
		)
	}
	if bytes.Equal(masterKey, pepper) {
		return nil, fmt.Errorf("%w: fingerprint pepper must differ from the master key", ErrConfiguration)
	}

	return &KeyMaterial{
		MasterKey: bytes.Clone(masterKey),
		Pepper:    bytes.Clone(pepper),
	}, nil
}

// ParseKeyMaterial decodes hex-encoded key material as supplied by the key store.
func ParseKeyMaterial(masterKeyHex, pepperHex string) (*KeyMaterial, error) {
	masterKey, err := DecodeHexSecret("master key", masterKeyHex)
	if err != nil {
		return nil, err
	}
	defer Zero(masterKey)

	pepper, err := DecodeHexSecret("fingerprint pepper", pepperHex)
	if err != nil {
		return nil, err
	}
	defer Zero(pepper)

	return NewKeyMaterial(masterKey, pepper)
}

// Close zeroes the key material. The KeyMaterial must not be used afterwards.
func (k *KeyMaterial) Close() {
	if k == nil {
		return
	}
	Zero(k.MasterKey)
	Zero(k.Pepper)
	k.MasterKey = nil
	k.Pepper = nil
}

// DecodeHexSecret decodes a hex-encoded secret. An empty value is reported as not set.
func DecodeHexSecret(name, value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrConfiguration, name)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", ErrConfiguration, name)
	}
	return b, nil
}
