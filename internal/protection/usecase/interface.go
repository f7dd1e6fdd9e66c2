// Package usecase implements the field protection engine: protect, unprotect, verify and
// fingerprint for every protection tier.
package usecase

import (
	"context"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// ProtectionUseCase defines the field protection engine.
//
// Implementations are stateless after construction and safe for concurrent use.
type ProtectionUseCase interface {
	// Protect transforms plaintext under tier. Empty plaintext returns an empty value.
	// Returns ErrUnsupportedTier for tiers outside the enumeration.
	Protect(ctx context.Context, plaintext string, tier protectionDomain.Tier) (protectionDomain.ProtectedValue, error)

	// Unprotect recovers the plaintext of a reversible tier. Returns ErrUnsupportedOperation
	// for system-code, ErrMalformedInput for values that do not parse, and ErrIntegrity when
	// a highest-tier value fails authentication.
	Unprotect(ctx context.Context, value protectionDomain.ProtectedValue, tier protectionDomain.Tier) (string, error)

	// Verify reports whether plaintext matches stored. Cryptographic mismatch is false, not an error.
	Verify(
		ctx context.Context,
		plaintext string,
		stored protectionDomain.ProtectedValue,
		tier protectionDomain.Tier,
	) (bool, error)

	// Fingerprint returns the keyed digest of plaintext normalized for kind.
	Fingerprint(
		ctx context.Context,
		plaintext string,
		kind protectionDomain.FingerprintKind,
	) (protectionDomain.Fingerprint, error)
}
