package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

// MockKMSService is a mock implementation of KMSService.
type MockKMSService struct {
	mock.Mock
}

func (m *MockKMSService) OpenKeeper(ctx context.Context, keyURI string) (protectionDomain.KMSKeeper, error) {
	args := m.Called(ctx, keyURI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(protectionDomain.KMSKeeper), args.Error(1)
}

// MockKMSKeeper is a mock implementation of KMSKeeper.
type MockKMSKeeper struct {
	mock.Mock
}

func (m *MockKMSKeeper) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, ciphertext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKMSKeeper) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}

func TestLoadKeyMaterial(t *testing.T) {
	ctx := context.Background()
	masterKey := bytes.Repeat([]byte{0x01}, protectionDomain.KeySize)
	pepper := bytes.Repeat([]byte{0x02}, 32)

	t.Run("plain hex", func(t *testing.T) {
		km, err := LoadKeyMaterial(ctx, KeySource{
			MasterKeyHex: hex.EncodeToString(masterKey),
			PepperHex:    hex.EncodeToString(pepper),
		}, NewKMSService())
		require.NoError(t, err)
		assert.Equal(t, masterKey, km.MasterKey)
		assert.Equal(t, pepper, km.Pepper)
	})

	t.Run("missing master key", func(t *testing.T) {
		_, err := LoadKeyMaterial(ctx, KeySource{PepperHex: hex.EncodeToString(pepper)}, NewKMSService())
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
	})

	t.Run("wrapped with localsecrets", func(t *testing.T) {
		keyURI := generateLocalSecretsURI(t)
		keeper, err := NewKMSService().OpenKeeper(ctx, keyURI)
		require.NoError(t, err)
		wrappedMasterKey, err := keeper.Encrypt(ctx, masterKey)
		require.NoError(t, err)
		wrappedPepper, err := keeper.Encrypt(ctx, pepper)
		require.NoError(t, err)
		require.NoError(t, keeper.Close())

		km, err := LoadKeyMaterial(ctx, KeySource{
			MasterKeyHex: hex.EncodeToString(wrappedMasterKey),
			PepperHex:    hex.EncodeToString(wrappedPepper),
			KMSKeyURI:    keyURI,
		}, NewKMSService())
		require.NoError(t, err)
		assert.Equal(t, masterKey, km.MasterKey)
		assert.Equal(t, pepper, km.Pepper)
	})

	t.Run("keeper open failure", func(t *testing.T) {
		kms := &MockKMSService{}
		kms.On("OpenKeeper", ctx, "gcpkms://bad").Return(nil, errors.New("boom"))

		_, err := LoadKeyMaterial(ctx, KeySource{
			MasterKeyHex: "aa",
			PepperHex:    "bb",
			KMSKeyURI:    "gcpkms://bad",
		}, kms)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
		kms.AssertExpectations(t)
	})

	t.Run("unwrap failure closes keeper", func(t *testing.T) {
		keeper := &MockKMSKeeper{}
		keeper.On("Decrypt", ctx, []byte{0xaa}).Return(nil, errors.New("denied"))
		keeper.On("Close").Return(nil)

		kms := &MockKMSService{}
		kms.On("OpenKeeper", ctx, "awskms:///alias/x").Return(keeper, nil)

		_, err := LoadKeyMaterial(ctx, KeySource{
			MasterKeyHex: "aa",
			PepperHex:    "bb",
			KMSKeyURI:    "awskms:///alias/x",
		}, kms)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
		assert.Contains(t, err.Error(), "failed to unwrap master key")
		keeper.AssertExpectations(t)
	})
}
