package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// NewKeyMaterial returns random field key material. It is zeroed at cleanup.
func NewKeyMaterial(t *testing.T) *protectionDomain.KeyMaterial {
	t.Helper()
	masterKeyHex, pepperHex := NewKeyMaterialHex(t)
	km, err := protectionDomain.ParseKeyMaterial(masterKeyHex, pepperHex)
	require.NoError(t, err)
	t.Cleanup(km.Close)
	return km
}

// NewKeyMaterialHex returns random hex values for FIELD_MASTER_KEY and FIELD_FINGERPRINT_PEPPER.
func NewKeyMaterialHex(t *testing.T) (masterKeyHex, pepperHex string) {
	t.Helper()
	masterKey := make([]byte, protectionDomain.KeySize)
	pepper := make([]byte, 32)
	_, err := rand.Read(masterKey)
	require.NoError(t, err)
	_, err = rand.Read(pepper)
	require.NoError(t, err)
	return hex.EncodeToString(masterKey), hex.EncodeToString(pepper)
}
