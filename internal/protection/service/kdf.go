package service

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// HKDF info strings. Distinct strings give each reversible tier its own key.
const (
	infoHighest = "fieldguard-highest"
	infoStrong  = "fieldguard-strong"
	infoBasic   = "fieldguard-basic"
)

// TierKeys holds the subkeys derived from the master key for the reversible tiers.
type TierKeys struct {
	Highest []byte
	Strong  []byte
	Basic   []byte
}

// DeriveTierKeys derives one 32-byte subkey per reversible tier with HKDF-SHA256.
// The master key itself never encrypts a field.
func DeriveTierKeys(masterKey []byte) (*TierKeys, error) {
	if len(masterKey) != protectionDomain.KeySize {
		return nil, protectionDomain.ErrInvalidKeySize
	}

	keys := &TierKeys{}
	for _, d := range []struct {
		info string
		out  *[]byte
	}{
		{infoHighest, &keys.Highest},
		{infoStrong, &keys.Strong},
		{infoBasic, &keys.Basic},
	} {
		key, err := hkdfDerive(masterKey, d.info)
		if err != nil {
			keys.Close()
			return nil, err
		}
		*d.out = key
	}

	return keys, nil
}

// Close zeroes the derived keys.
func (k *TierKeys) Close() {
	protectionDomain.Zero(k.Highest)
	protectionDomain.Zero(k.Strong)
	protectionDomain.Zero(k.Basic)
}

func hkdfDerive(masterKey []byte, info string) ([]byte, error) {
	out := make([]byte, protectionDomain.KeySize)
	reader := hkdf.New(sha256.New, masterKey, nil, []byte(info))
	if _, err := io.ReadFull(reader, out); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", info, err)
	}
	return out, nil
}
