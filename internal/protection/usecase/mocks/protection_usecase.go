// Package mocks provides mock implementations of the field protection engine for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// MockProtectionUseCase is a mock implementation of ProtectionUseCase for testing.
type MockProtectionUseCase struct {
	mock.Mock
}

// Protect mocks the Protect method of ProtectionUseCase.
func (m *MockProtectionUseCase) Protect(
	ctx context.Context,
	plaintext string,
	tier protectionDomain.Tier,
) (protectionDomain.ProtectedValue, error) {
	args := m.Called(ctx, plaintext, tier)
	return args.Get(0).(protectionDomain.ProtectedValue), args.Error(1)
}

// Unprotect mocks the Unprotect method of ProtectionUseCase.
func (m *MockProtectionUseCase) Unprotect(
	ctx context.Context,
	value protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (string, error) {
	args := m.Called(ctx, value, tier)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of ProtectionUseCase.
func (m *MockProtectionUseCase) Verify(
	ctx context.Context,
	plaintext string,
	stored protectionDomain.ProtectedValue,
	tier protectionDomain.Tier,
) (bool, error) {
	args := m.Called(ctx, plaintext, stored, tier)
	return args.Bool(0), args.Error(1)
}

// Fingerprint mocks the Fingerprint method of ProtectionUseCase.
func (m *MockProtectionUseCase) Fingerprint(
	ctx context.Context,
	plaintext string,
	kind protectionDomain.FingerprintKind,
) (protectionDomain.Fingerprint, error) {
	args := m.Called(ctx, plaintext, kind)
	return args.Get(0).(protectionDomain.Fingerprint), args.Error(1)
}
