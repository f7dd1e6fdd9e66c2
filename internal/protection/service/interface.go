// Package service provides the cryptographic primitives behind field protection.
// Implements AEAD ciphers for the highest tier, AES-CBC for the strong and basic tiers,
// adaptive hashing for system codes, keyed fingerprints and KMS key unwrapping.
package service

import (
	"context"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext (tag appended) and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext (tag appended) using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the nonce length the cipher expects.
	NonceSize() int

	// Overhead returns the authentication tag length.
	Overhead() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg protectionDomain.Algorithm) (AEAD, error)
}

// BlockCipher defines randomized, unauthenticated encryption used by the strong and basic tiers.
type BlockCipher interface {
	// Encrypt pads and encrypts plaintext under a fresh random IV.
	Encrypt(plaintext []byte) (ciphertext, iv []byte, err error)

	// Decrypt decrypts and unpads ciphertext. Bad lengths or padding return ErrMalformedInput.
	Decrypt(ciphertext, iv []byte) ([]byte, error)
}

// CodeHasher defines one-way adaptive hashing for passwords, PINs and access codes.
type CodeHasher interface {
	// Hash hashes code with a fresh random salt.
	Hash(code []byte) (string, error)

	// Verify reports whether code matches the stored hash. Any failure is false.
	Verify(code []byte, hashed string) bool
}

// Fingerprinter defines keyed deterministic digests for equality lookups.
type Fingerprinter interface {
	// Fingerprint returns the hex HMAC of an already normalized value.
	Fingerprint(normalized string) protectionDomain.Fingerprint
}

// KMSService opens KMS keepers used to unwrap field key material.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (protectionDomain.KMSKeeper, error)
}
