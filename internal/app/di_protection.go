package app

import (
	"context"
	"fmt"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionService "github.com/allisson/fieldguard/internal/protection/service"
	protectionUseCase "github.com/allisson/fieldguard/internal/protection/usecase"
)

// KeyMaterial returns the field key material, unwrapped through KMS when configured.
func (c *Container) KeyMaterial() (*protectionDomain.KeyMaterial, error) {
	var err error
	c.keyMaterialInit.Do(func() {
		c.keyMaterial, err = c.initKeyMaterial()
		if err != nil {
			c.initErrors["keyMaterial"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyMaterial"]; exists {
		return nil, storedErr
	}
	return c.keyMaterial, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() protectionService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = protectionService.NewAEADManager()
	})
	return c.aeadManager
}

// KMSService returns the KMS service.
func (c *Container) KMSService() protectionService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = protectionService.NewKMSService()
	})
	return c.kmsService
}

// ProtectionUseCase returns the field protection engine.
func (c *Container) ProtectionUseCase() (protectionUseCase.ProtectionUseCase, error) {
	var err error
	c.protectionUseCaseInit.Do(func() {
		c.protectionUseCase, err = c.initProtectionUseCase()
		if err != nil {
			c.initErrors["protectionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["protectionUseCase"]; exists {
		return nil, storedErr
	}
	return c.protectionUseCase, nil
}

func (c *Container) initKeyMaterial() (*protectionDomain.KeyMaterial, error) {
	keys, err := protectionService.LoadKeyMaterial(
		context.Background(),
		protectionService.KeySource{
			MasterKeyHex: c.config.FieldMasterKey,
			PepperHex:    c.config.FieldFingerprintPepper,
			KMSKeyURI:    c.config.FieldKeysKMSKeyURI,
		},
		c.KMSService(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load field key material: %w", err)
	}
	return keys, nil
}

func (c *Container) initProtectionUseCase() (protectionUseCase.ProtectionUseCase, error) {
	keys, err := c.KeyMaterial()
	if err != nil {
		return nil, fmt.Errorf("failed to get key material for protection use case: %w", err)
	}

	baseUseCase, err := protectionUseCase.NewProtectionUseCase(
		keys,
		protectionUseCase.Config{
			HighestAlgorithm: protectionDomain.Algorithm(c.config.HighestTierAlgorithm),
			CodeHasher: protectionService.CodeHasherConfig{
				Algorithm:  protectionDomain.HashAlgorithm(c.config.SystemCodeHasher),
				Policy:     protectionDomain.HashPolicy(c.config.SystemCodePolicy),
				BcryptCost: c.config.SystemCodeBcryptCost,
			},
			MaxSystemCodeConcurrency: c.config.SystemCodeMaxConcurrency,
		},
		c.AEADManager(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create protection use case: %w", err)
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for protection use case: %w", err)
		}
		return protectionUseCase.NewProtectionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
