package service

import (
	"errors"
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// bcryptMaxLength is the input limit of bcrypt. Longer codes are rejected, not truncated.
const bcryptMaxLength = 72

// CodeHasherConfig selects the system-code hash and its work factor.
type CodeHasherConfig struct {
	Algorithm  protectionDomain.HashAlgorithm
	Policy     protectionDomain.HashPolicy
	BcryptCost int // 0 means bcrypt.DefaultCost
}

// codeHasher implements CodeHasher. New hashes use the configured algorithm; Verify
// accepts both encodings so stored values survive a change of SYSTEM_CODE_HASHER.
type codeHasher struct {
	algorithm  protectionDomain.HashAlgorithm
	argon2     *pwdhash.PasswordHasher
	bcryptCost int
}

// NewCodeHasher creates a CodeHasher for the given configuration.
func NewCodeHasher(cfg CodeHasherConfig) (CodeHasher, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, protectionDomain.ErrUnsupportedHasher
	}

	switch cfg.Algorithm {
	case protectionDomain.Argon2id, protectionDomain.Bcrypt:
	default:
		return nil, protectionDomain.ErrUnsupportedHasher
	}

	argon2, err := newArgon2Hasher(cfg.Policy)
	if err != nil {
		return nil, err
	}

	return &codeHasher{
		algorithm:  cfg.Algorithm,
		argon2:     argon2,
		bcryptCost: cost,
	}, nil
}

func newArgon2Hasher(policy protectionDomain.HashPolicy) (*pwdhash.PasswordHasher, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)
	switch policy {
	case protectionDomain.PolicyInteractive, "":
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case protectionDomain.PolicyModerate:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, protectionDomain.ErrUnsupportedHasher
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2id hasher")
	}
	return hasher, nil
}

// Hash hashes code with a fresh random salt.
func (h *codeHasher) Hash(code []byte) (string, error) {
	if h.algorithm == protectionDomain.Bcrypt {
		if len(code) > bcryptMaxLength {
			return "", protectionDomain.ErrSystemCodeTooLong
		}
		hashed, err := bcrypt.GenerateFromPassword(code, h.bcryptCost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return "", protectionDomain.ErrSystemCodeTooLong
			}
			return "", apperrors.Wrap(err, "failed to hash system code")
		}
		return string(hashed), nil
	}

	hashed, err := h.argon2.Hash(code)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash system code")
	}
	return hashed, nil
}

// Verify compares code against hashed in constant time. Malformed hashes are false.
func (h *codeHasher) Verify(code []byte, hashed string) bool {
	if hashed == "" {
		return false
	}
	if strings.HasPrefix(hashed, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(hashed), code) == nil
	}
	ok, err := h.argon2.Verify(code, hashed)
	if err != nil {
		return false
	}
	return ok
}
