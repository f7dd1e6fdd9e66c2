package service

import (
	"context"
	"fmt"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// KeySource is the hex-encoded key material as read from configuration.
// When KMSKeyURI is set both values are hex of KMS ciphertext.
type KeySource struct {
	MasterKeyHex string
	PepperHex    string
	KMSKeyURI    string
}

// LoadKeyMaterial decodes the key source, unwrapping it through KMS when configured.
// Every failure is reported as ErrConfiguration.
func LoadKeyMaterial(
	ctx context.Context,
	source KeySource,
	kms KMSService,
) (*protectionDomain.KeyMaterial, error) {
	if source.KMSKeyURI == "" {
		return protectionDomain.ParseKeyMaterial(source.MasterKeyHex, source.PepperHex)
	}

	wrappedMasterKey, err := protectionDomain.DecodeHexSecret("master key", source.MasterKeyHex)
	if err != nil {
		return nil, err
	}
	wrappedPepper, err := protectionDomain.DecodeHexSecret("fingerprint pepper", source.PepperHex)
	if err != nil {
		return nil, err
	}

	keeper, err := kms.OpenKeeper(ctx, source.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", protectionDomain.ErrConfiguration, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	masterKey, err := keeper.Decrypt(ctx, wrappedMasterKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unwrap master key: %v", protectionDomain.ErrConfiguration, err)
	}
	defer protectionDomain.Zero(masterKey)

	pepper, err := keeper.Decrypt(ctx, wrappedPepper)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: failed to unwrap fingerprint pepper: %v",
			protectionDomain.ErrConfiguration,
			err,
		)
	}
	defer protectionDomain.Zero(pepper)

	return protectionDomain.NewKeyMaterial(masterKey, pepper)
}
