package service

import (
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// AEADManagerService implements the AEADManager interface for creating AEAD cipher instances.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher creates an AEAD cipher instance for the specified algorithm.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedAlgorithm if algorithm is unknown.
func (am *AEADManagerService) CreateCipher(key []byte, alg protectionDomain.Algorithm) (AEAD, error) {
	if len(key) != protectionDomain.KeySize {
		return nil, protectionDomain.ErrInvalidKeySize
	}

	switch alg {
	case protectionDomain.AESGCM:
		return NewAESGCM(key)
	case protectionDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, protectionDomain.ErrUnsupportedAlgorithm
	}
}
