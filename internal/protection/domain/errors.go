package domain

import (
	"github.com/allisson/fieldguard/internal/errors"
)

// Field protection errors.
//
// Programmer errors (unknown tier, irreversible operation) wrap ErrInvalidInput so they
// surface loudly instead of being coerced. Integrity failures never carry plaintext.
var (
	// ErrConfiguration indicates the master key or pepper is absent or malformed.
	ErrConfiguration = errors.Wrap(errors.ErrConfiguration, "field protection key material is missing or invalid")

	// ErrUnsupportedTier indicates a tier outside the fixed enumeration.
	ErrUnsupportedTier = errors.Wrap(errors.ErrInvalidInput, "unsupported protection tier")

	// ErrUnsupportedOperation indicates an operation the tier cannot perform,
	// such as decrypting a one-way system-code hash.
	ErrUnsupportedOperation = errors.Wrap(errors.ErrInvalidInput, "operation not supported for protection tier")

	// ErrMalformedInput indicates a stored value that does not match the tier's format.
	// Usually data corruption or a tier mismatch between write and read.
	ErrMalformedInput = errors.Wrap(errors.ErrInvalidInput, "malformed protected value")

	// ErrIntegrity indicates authenticated decryption failed: the value was altered or
	// written under different key material.
	ErrIntegrity = errors.Wrap(errors.ErrIntegrity, "protected value failed integrity check")

	// ErrUnsupportedAlgorithm indicates an unknown AEAD algorithm.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedHasher indicates an unknown system-code hasher or policy.
	ErrUnsupportedHasher = errors.Wrap(errors.ErrInvalidInput, "unsupported system code hasher")

	// ErrInvalidKeySize indicates a derived or supplied key that is not 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrUnsupportedFingerprintKind indicates an unknown fingerprint normalization kind.
	ErrUnsupportedFingerprintKind = errors.Wrap(errors.ErrInvalidInput, "unsupported fingerprint kind")

	// ErrSystemCodeTooLong indicates a code longer than the configured hasher accepts.
	ErrSystemCodeTooLong = errors.Wrap(errors.ErrInvalidInput, "system code is too long")
)
