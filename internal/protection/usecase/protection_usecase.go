package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"

	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionService "github.com/allisson/fieldguard/internal/protection/service"
)

// Config holds the engine settings that are not key material.
type Config struct {
	// HighestAlgorithm is the AEAD for the highest tier. Empty means AES-256-GCM.
	HighestAlgorithm protectionDomain.Algorithm
	// CodeHasher selects the system-code hash and work factor.
	CodeHasher protectionService.CodeHasherConfig
	// MaxSystemCodeConcurrency bounds concurrent system-code hash and verify calls. 0 is unbounded.
	MaxSystemCodeConcurrency int
}

// protectionUseCase implements ProtectionUseCase.
type protectionUseCase struct {
	highest       protectionService.AEAD
	strong        protectionService.BlockCipher
	basic         protectionService.BlockCipher
	hasher        protectionService.CodeHasher
	fingerprinter protectionService.Fingerprinter
	codeSlots     *semaphore.Weighted
}

// NewProtectionUseCase builds the engine from explicit key material. Per-tier keys are
// derived here; the caller keeps ownership of keys and may Close it afterwards.
// Missing or malformed key material is reported as ErrConfiguration.
func NewProtectionUseCase(
	keys *protectionDomain.KeyMaterial,
	cfg Config,
	aeadManager protectionService.AEADManager,
) (ProtectionUseCase, error) {
	if keys == nil {
		return nil, fmt.Errorf("%w: key material is not loaded", protectionDomain.ErrConfiguration)
	}
	validated, err := protectionDomain.NewKeyMaterial(keys.MasterKey, keys.Pepper)
	if err != nil {
		return nil, err
	}
	defer validated.Close()

	tierKeys, err := protectionService.DeriveTierKeys(validated.MasterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", protectionDomain.ErrConfiguration, err)
	}
	defer tierKeys.Close()

	alg := cfg.HighestAlgorithm
	if alg == "" {
		alg = protectionDomain.AESGCM
	}
	highest, err := aeadManager.CreateCipher(tierKeys.Highest, alg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", protectionDomain.ErrConfiguration, err)
	}

	strong, err := protectionService.NewAESCBC(tierKeys.Strong)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", protectionDomain.ErrConfiguration, err)
	}
	basic, err := protectionService.NewAESCBC(tierKeys.Basic)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", protectionDomain.ErrConfiguration, err)
	}

	hasher, err := protectionService.NewCodeHasher(cfg.CodeHasher)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", protectionDomain.ErrConfiguration, err)
	}

	var codeSlots *semaphore.Weighted
	if cfg.MaxSystemCodeConcurrency > 0 {
		codeSlots = semaphore.NewWeighted(int64(cfg.MaxSystemCodeConcurrency))
	}

	return &protectionUseCase{
		highest:       highest,
		strong:        strong,
		basic:         basic,
		hasher:        hasher,
		fingerprinter: protectionService.NewHMACFingerprinter(validated.Pepper),
		codeSlots:     codeSlots,
	}, nil
}

// Protect transforms plaintext under tier.
func (p *protectionUseCase) Protect(
	ctx context.Context,
	plaintext string,
	tier protectionDomain.Tier,
) (protectionDomain.ProtectedValue, error) {
	if err := tier.Validate(); err != nil {
		return "", err
	}
	if plaintext == "" {
		return "", nil
	}

	switch tier {
	case protectionDomain.TierHighest:
		sealed, nonce, err := p.highest.Encrypt([]byte(plaintext), []byte(tier))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to encrypt field")
		}
		split := len(sealed) - p.highest.Overhead()
		return protectionDomain.FormatEnvelope(tier, protectionDomain.Envelope{
			Nonce:      nonce,
			Tag:        sealed[split:],
			Ciphertext: sealed[:split],
		})

	case protectionDomain.TierStrong, protectionDomain.TierBasic:
		ciphertext, iv, err := p.blockCipher(tier).Encrypt([]byte(plaintext))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to encrypt field")
		}
		return protectionDomain.FormatEnvelope(tier, protectionDomain.Envelope{
			Nonce:      iv,
			Ciphertext: ciphertext,
		})

	default:
		release, err := p.acquireCodeSlot(ctx)
		if err != nil {
			return "", err
		}
		defer release()

		hashed, err := p.hasher.Hash([]byte(plaintext))
		if err != nil {
			return "", err
		}
		return protectionDomain.ProtectedValue(hashed), nil
	}
}

// Unprotect recovers the plaintext of a reversible tier.
func (p *protectionUseCase) Unprotect(
	ctx context.Context,
	value protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (string, error) {
	if err := tier.Validate(); err != nil {
		return "", err
	}
	if !tier.IsReversible() {
		return "", protectionDomain.ErrUnsupportedOperation
	}
	if value.IsEmpty() {
		return "", nil
	}

	env, err := protectionDomain.ParseEnvelope(tier, value)
	if err != nil {
		return "", err
	}

	if tier == protectionDomain.TierHighest {
		if len(env.Nonce) != p.highest.NonceSize() || len(env.Tag) != p.highest.Overhead() {
			return "", protectionDomain.ErrMalformedInput
		}
		sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
		sealed = append(append(sealed, env.Ciphertext...), env.Tag...)

		plaintext, err := p.highest.Decrypt(sealed, env.Nonce, []byte(tier))
		if err != nil {
			if errors.Is(err, protectionDomain.ErrMalformedInput) {
				return "", err
			}
			return "", protectionDomain.ErrIntegrity
		}
		return string(plaintext), nil
	}

	plaintext, err := p.blockCipher(tier).Decrypt(env.Ciphertext, env.Nonce)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Verify reports whether plaintext matches stored. An absent stored value never matches.
func (p *protectionUseCase) Verify(
	ctx context.Context,
	plaintext string,
	stored protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (bool, error) {
	if err := tier.Validate(); err != nil {
		return false, err
	}
	if stored.IsEmpty() {
		return false, nil
	}

	if tier == protectionDomain.TierSystemCode {
		release, err := p.acquireCodeSlot(ctx)
		if err != nil {
			return false, err
		}
		defer release()

		return p.hasher.Verify([]byte(plaintext), stored.String()), nil
	}

	recovered, err := p.Unprotect(ctx, stored, tier)
	if err != nil {
		return false, nil
	}
	return recovered == plaintext, nil
}

// Fingerprint returns the keyed digest of plaintext normalized for kind.
func (p *protectionUseCase) Fingerprint(
	ctx context.Context,
	plaintext string,
	kind protectionDomain.FingerprintKind,
) (protectionDomain.Fingerprint, error) {
	kind, err := protectionDomain.ParseFingerprintKind(string(kind))
	if err != nil {
		return "", err
	}
	return p.fingerprinter.Fingerprint(kind.Normalize(plaintext)), nil
}

func (p *protectionUseCase) blockCipher(tier protectionDomain.Tier) protectionService.BlockCipher {
	if tier == protectionDomain.TierStrong {
		return p.strong
	}
	return p.basic
}

// acquireCodeSlot waits for a system-code slot when concurrency is bounded.
func (p *protectionUseCase) acquireCodeSlot(ctx context.Context) (func(), error) {
	if p.codeSlots == nil {
		return func() {}, nil
	}
	if err := p.codeSlots.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "failed to acquire system code slot")
	}
	return func() { p.codeSlots.Release(1) }, nil
}
