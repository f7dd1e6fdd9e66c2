package commands

import (
	"context"
	"fmt"
	"io"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionUseCase "github.com/allisson/fieldguard/internal/protection/usecase"
)

// RunProtectField prints the ProtectedValue of value under tier using the configured keys.
func RunProtectField(
	ctx context.Context,
	protection protectionUseCase.ProtectionUseCase,
	writer io.Writer,
	tierStr string,
	value string,
) error {
	tier, err := protectionDomain.ParseTier(tierStr)
	if err != nil {
		return fmt.Errorf("invalid tier %q: %w", tierStr, err)
	}

	protected, err := protection.Protect(ctx, value, tier)
	if err != nil {
		return fmt.Errorf("failed to protect value: %w", err)
	}

	_, _ = fmt.Fprintln(writer, protected.String())
	return nil
}

// RunFingerprintField prints the fingerprint of value normalized for kind.
func RunFingerprintField(
	ctx context.Context,
	protection protectionUseCase.ProtectionUseCase,
	writer io.Writer,
	kindStr string,
	value string,
) error {
	kind, err := protectionDomain.ParseFingerprintKind(kindStr)
	if err != nil {
		return fmt.Errorf("invalid fingerprint kind %q: %w", kindStr, err)
	}

	fingerprint, err := protection.Fingerprint(ctx, value, kind)
	if err != nil {
		return fmt.Errorf("failed to fingerprint value: %w", err)
	}

	_, _ = fmt.Fprintln(writer, fingerprint.String())
	return nil
}
