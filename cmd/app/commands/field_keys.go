package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionService "github.com/allisson/fieldguard/internal/protection/service"
)

// pepperSize is the length of generated fingerprint peppers.
const pepperSize = 32

// RunCreateFieldKeys generates a fresh master key and fingerprint pepper and prints them as
// environment variables. With kmsKeyURI both values are wrapped by the KMS key first, and
// the printed hex is the KMS ciphertext. The raw keys are zeroed before returning.
//
// Replacing the keys of a populated database makes existing values unreadable and
// existing fingerprints unmatchable.
func RunCreateFieldKeys(
	ctx context.Context,
	kmsService protectionService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	masterKey := make([]byte, protectionDomain.KeySize)
	defer protectionDomain.Zero(masterKey)
	pepper := make([]byte, pepperSize)
	defer protectionDomain.Zero(pepper)

	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	if _, err := rand.Read(pepper); err != nil {
		return fmt.Errorf("failed to generate fingerprint pepper: %w", err)
	}

	if kmsKeyURI == "" {
		logger.Warn("printing unwrapped field keys, use --kms-key-uri outside development")
		_, _ = fmt.Fprintln(writer, "# Field protection keys (plaintext)")
		_, _ = fmt.Fprintf(writer, "FIELD_MASTER_KEY=\"%s\"\n", hex.EncodeToString(masterKey))
		_, _ = fmt.Fprintf(writer, "FIELD_FINGERPRINT_PEPPER=\"%s\"\n", hex.EncodeToString(pepper))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Error("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	wrappedMasterKey, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to wrap master key with KMS: %w", err)
	}
	wrappedPepper, err := keeper.Encrypt(ctx, pepper)
	if err != nil {
		return fmt.Errorf("failed to wrap fingerprint pepper with KMS: %w", err)
	}

	logger.Info("field keys wrapped with KMS")

	_, _ = fmt.Fprintln(writer, "# Field protection keys (KMS wrapped)")
	_, _ = fmt.Fprintf(writer, "FIELD_KEYS_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "FIELD_MASTER_KEY=\"%s\"\n", hex.EncodeToString(wrappedMasterKey))
	_, _ = fmt.Fprintf(writer, "FIELD_FINGERPRINT_PEPPER=\"%s\"\n", hex.EncodeToString(wrappedPepper))
	return nil
}
