package usecase

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionService "github.com/allisson/fieldguard/internal/protection/service"
)

func testKeyMaterial(t *testing.T, seed byte) *protectionDomain.KeyMaterial {
	t.Helper()
	km, err := protectionDomain.NewKeyMaterial(
		bytes.Repeat([]byte{seed}, protectionDomain.KeySize),
		bytes.Repeat([]byte{seed + 1}, 32),
	)
	require.NoError(t, err)
	return km
}

func testConfig() Config {
	return Config{
		HighestAlgorithm: protectionDomain.AESGCM,
		CodeHasher: protectionService.CodeHasherConfig{
			Algorithm:  protectionDomain.Bcrypt,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func newTestEngine(t *testing.T) ProtectionUseCase {
	t.Helper()
	engine, err := NewProtectionUseCase(testKeyMaterial(t, 0x10), testConfig(), protectionService.NewAEADManager())
	require.NoError(t, err)
	return engine
}

func TestNewProtectionUseCase(t *testing.T) {
	aeadManager := protectionService.NewAEADManager()

	t.Run("nil key material", func(t *testing.T) {
		_, err := NewProtectionUseCase(nil, testConfig(), aeadManager)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
		assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
	})

	t.Run("malformed key material", func(t *testing.T) {
		km := &protectionDomain.KeyMaterial{MasterKey: []byte("short"), Pepper: bytes.Repeat([]byte{1}, 16)}
		_, err := NewProtectionUseCase(km, testConfig(), aeadManager)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		cfg := testConfig()
		cfg.HighestAlgorithm = "des"
		_, err := NewProtectionUseCase(testKeyMaterial(t, 1), cfg, aeadManager)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedAlgorithm)
	})

	t.Run("unsupported hasher", func(t *testing.T) {
		cfg := testConfig()
		cfg.CodeHasher.Algorithm = "scrypt"
		_, err := NewProtectionUseCase(testKeyMaterial(t, 1), cfg, aeadManager)
		assert.ErrorIs(t, err, protectionDomain.ErrConfiguration)
	})

	t.Run("caller may close key material after construction", func(t *testing.T) {
		km := testKeyMaterial(t, 2)
		engine, err := NewProtectionUseCase(km, testConfig(), aeadManager)
		require.NoError(t, err)
		km.Close()

		ctx := context.Background()
		value, err := engine.Protect(ctx, "12345678901", protectionDomain.TierHighest)
		require.NoError(t, err)
		plaintext, err := engine.Unprotect(ctx, value, protectionDomain.TierHighest)
		require.NoError(t, err)
		assert.Equal(t, "12345678901", plaintext)
	})
}

func TestProtectionUseCase_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, alg := range []protectionDomain.Algorithm{protectionDomain.AESGCM, protectionDomain.ChaCha20} {
		cfg := testConfig()
		cfg.HighestAlgorithm = alg
		engine, err := NewProtectionUseCase(testKeyMaterial(t, 0x20), cfg, protectionService.NewAEADManager())
		require.NoError(t, err)

		for _, tier := range []protectionDomain.Tier{
			protectionDomain.TierHighest,
			protectionDomain.TierStrong,
			protectionDomain.TierBasic,
		} {
			for _, plaintext := range []string{"x", "12345678901", "Adaeze Okonkwo", "ünïcödé ✓", strings.Repeat("z", 300)} {
				value, err := engine.Protect(ctx, plaintext, tier)
				require.NoError(t, err)
				assert.Len(t, strings.Split(value.String(), ":"), tier.Segments())
				assert.NotContains(t, value.String(), plaintext)

				recovered, err := engine.Unprotect(ctx, value, tier)
				require.NoError(t, err, "%s/%s", alg, tier)
				assert.Equal(t, plaintext, recovered)
			}
		}
	}
}

func TestProtectionUseCase_StrongTierPhone(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	a, err := engine.Protect(ctx, "+2348012345678", protectionDomain.TierStrong)
	require.NoError(t, err)
	b, err := engine.Protect(ctx, "+2348012345678", protectionDomain.TierStrong)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	fa, err := engine.Fingerprint(ctx, "+2348012345678", protectionDomain.KindPhone)
	require.NoError(t, err)
	fb, err := engine.Fingerprint(ctx, "+234 801 234 5678", protectionDomain.KindPhone)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	recovered, err := engine.Unprotect(ctx, a, protectionDomain.TierStrong)
	require.NoError(t, err)
	assert.Equal(t, "+2348012345678", recovered)
}

func TestProtectionUseCase_NonDeterministicCiphertext(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	for _, tier := range protectionDomain.Tiers {
		a, err := engine.Protect(ctx, "same input", tier)
		require.NoError(t, err)
		b, err := engine.Protect(ctx, "same input", tier)
		require.NoError(t, err)
		assert.NotEqual(t, a, b, "tier %s", tier)
	}

	fa, err := engine.Fingerprint(ctx, "same input", protectionDomain.KindText)
	require.NoError(t, err)
	fb, err := engine.Fingerprint(ctx, "same input", protectionDomain.KindText)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
}

func TestProtectionUseCase_TierKeySeparation(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	value, err := engine.Protect(ctx, "Lagos", protectionDomain.TierStrong)
	require.NoError(t, err)

	recovered, err := engine.Unprotect(ctx, value, protectionDomain.TierBasic)
	if err == nil {
		assert.NotEqual(t, "Lagos", recovered)
	} else {
		assert.ErrorIs(t, err, protectionDomain.ErrMalformedInput)
	}

	_, err = engine.Unprotect(ctx, value, protectionDomain.TierHighest)
	assert.ErrorIs(t, err, protectionDomain.ErrMalformedInput)
}

func flipHex(s string, i int) string {
	b := []byte(s)
	if b[i] == '0' {
		b[i] = '1'
	} else {
		b[i] = '0'
	}
	return string(b)
}

func TestProtectionUseCase_TamperDetection(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	value, err := engine.Protect(ctx, "12345678901", protectionDomain.TierHighest)
	require.NoError(t, err)
	parts := strings.Split(value.String(), ":")
	require.Len(t, parts, 3)

	for segment, name := range []string{"nonce", "tag", "ciphertext"} {
		for i := range len(parts[segment]) {
			tampered := append([]string(nil), parts...)
			tampered[segment] = flipHex(tampered[segment], i)

			plaintext, err := engine.Unprotect(
				ctx,
				protectionDomain.ProtectedValue(strings.Join(tampered, ":")),
				protectionDomain.TierHighest,
			)
			require.ErrorIs(t, err, protectionDomain.ErrIntegrity, "%s byte %d", name, i)
			assert.True(t, apperrors.Is(err, apperrors.ErrIntegrity))
			assert.Empty(t, plaintext)
		}
	}

	t.Run("case change", func(t *testing.T) {
		for segment, name := range []string{"nonce", "tag", "ciphertext"} {
			for i, c := range parts[segment] {
				if c < 'a' || c > 'f' {
					continue
				}
				tampered := append([]string(nil), parts...)
				tampered[segment] = parts[segment][:i] + strings.ToUpper(string(c)) + parts[segment][i+1:]
				altered := protectionDomain.ProtectedValue(strings.Join(tampered, ":"))
				require.NotEqual(t, value, altered)

				plaintext, err := engine.Unprotect(ctx, altered, protectionDomain.TierHighest)
				require.Error(t, err, "%s char %d", name, i)
				assert.ErrorIs(t, err, protectionDomain.ErrMalformedInput)
				assert.Empty(t, plaintext)

				ok, err := engine.Verify(ctx, "12345678901", altered, protectionDomain.TierHighest)
				require.NoError(t, err)
				assert.False(t, ok, "%s char %d", name, i)
			}
		}

		upper := protectionDomain.ProtectedValue(strings.ToUpper(value.String()))
		if upper != value {
			_, err := engine.Unprotect(ctx, upper, protectionDomain.TierHighest)
			assert.ErrorIs(t, err, protectionDomain.ErrMalformedInput)
		}
	})

	t.Run("wrong key material", func(t *testing.T) {
		other, err := NewProtectionUseCase(testKeyMaterial(t, 0x30), testConfig(), protectionService.NewAEADManager())
		require.NoError(t, err)
		_, err = other.Unprotect(ctx, value, protectionDomain.TierHighest)
		assert.ErrorIs(t, err, protectionDomain.ErrIntegrity)
	})
}

func TestProtectionUseCase_Unprotect_Malformed(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	tests := []struct {
		name  string
		value protectionDomain.ProtectedValue
		tier  protectionDomain.Tier
	}{
		{"highest with two segments", "00112233445566778899aabb:ff", protectionDomain.TierHighest},
		{"highest with short nonce", "0011:00112233445566778899aabbccddeeff:ff", protectionDomain.TierHighest},
		{"highest with short tag", "00112233445566778899aabb:0011:ff", protectionDomain.TierHighest},
		{"strong with three segments", "aa:bb:cc", protectionDomain.TierStrong},
		{"basic with non-hex", "zz:yy", protectionDomain.TierBasic},
		{"basic with bad block length", "00112233445566778899aabbccddeeff:0011", protectionDomain.TierBasic},
		{"strong with short iv", "0011:00112233445566778899aabbccddeeff", protectionDomain.TierStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Unprotect(ctx, tt.value, tt.tier)
			assert.ErrorIs(t, err, protectionDomain.ErrMalformedInput)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestProtectionUseCase_SystemCode(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	value, err := engine.Protect(ctx, "Secret123!", protectionDomain.TierSystemCode)
	require.NoError(t, err)
	assert.NotContains(t, value.String(), "Secret123!")

	_, err = engine.Unprotect(ctx, value, protectionDomain.TierSystemCode)
	assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedOperation)

	_, err = engine.Unprotect(ctx, "", protectionDomain.TierSystemCode)
	assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedOperation)

	ok, err := engine.Verify(ctx, "Secret123!", value, protectionDomain.TierSystemCode)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = engine.Verify(ctx, "wrong", value, protectionDomain.TierSystemCode)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = engine.Verify(ctx, "Secret123!", "", protectionDomain.TierSystemCode)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("argon2id", func(t *testing.T) {
		cfg := testConfig()
		cfg.CodeHasher = protectionService.CodeHasherConfig{
			Algorithm: protectionDomain.Argon2id,
			Policy:    protectionDomain.PolicyInteractive,
		}
		argon, err := NewProtectionUseCase(testKeyMaterial(t, 0x40), cfg, protectionService.NewAEADManager())
		require.NoError(t, err)

		pin, err := argon.Protect(ctx, "4821", protectionDomain.TierSystemCode)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(pin.String(), "$argon2id$"))

		ok, err := argon.Verify(ctx, "4821", pin, protectionDomain.TierSystemCode)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = argon.Verify(ctx, "4822", pin, protectionDomain.TierSystemCode)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProtectionUseCase_Verify_Reversible(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	for _, tier := range []protectionDomain.Tier{
		protectionDomain.TierHighest,
		protectionDomain.TierStrong,
		protectionDomain.TierBasic,
	} {
		t.Run(tier.String(), func(t *testing.T) {
			value, err := engine.Protect(ctx, "agent@example.com", tier)
			require.NoError(t, err)

			ok, err := engine.Verify(ctx, "agent@example.com", value, tier)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = engine.Verify(ctx, "Agent@example.com", value, tier)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = engine.Verify(ctx, "agent@example.com", "not:valid:at:all", tier)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = engine.Verify(ctx, "", "", tier)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	t.Run("tampered highest value is a mismatch", func(t *testing.T) {
		value, err := engine.Protect(ctx, "12345678901", protectionDomain.TierHighest)
		require.NoError(t, err)
		parts := strings.Split(value.String(), ":")
		parts[2] = flipHex(parts[2], 0)

		ok, err := engine.Verify(
			ctx,
			"12345678901",
			protectionDomain.ProtectedValue(strings.Join(parts, ":")),
			protectionDomain.TierHighest,
		)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestProtectionUseCase_EmptyShortCircuit(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	for _, tier := range protectionDomain.Tiers {
		value, err := engine.Protect(ctx, "", tier)
		require.NoError(t, err)
		assert.True(t, value.IsEmpty(), "tier %s", tier)
	}

	for _, tier := range []protectionDomain.Tier{
		protectionDomain.TierHighest,
		protectionDomain.TierStrong,
		protectionDomain.TierBasic,
	} {
		plaintext, err := engine.Unprotect(ctx, "", tier)
		require.NoError(t, err)
		assert.Empty(t, plaintext)
	}

	fp, err := engine.Fingerprint(ctx, "   ", protectionDomain.KindEmail)
	require.NoError(t, err)
	assert.Empty(t, fp)
}

func TestProtectionUseCase_UnsupportedTier(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	for _, tier := range []protectionDomain.Tier{"government", "government-id", "system", ""} {
		_, err := engine.Protect(ctx, "value", tier)
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedTier)

		_, err = engine.Protect(ctx, "", tier)
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedTier)

		_, err = engine.Unprotect(ctx, "aa:bb", tier)
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedTier)

		_, err = engine.Verify(ctx, "value", "aa:bb", tier)
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedTier)
	}
}

func TestProtectionUseCase_Fingerprint(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t)

	t.Run("email case and whitespace", func(t *testing.T) {
		a, err := engine.Fingerprint(ctx, "User@Example.com", protectionDomain.KindEmail)
		require.NoError(t, err)
		b, err := engine.Fingerprint(ctx, "  user@example.com ", protectionDomain.KindEmail)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Len(t, a.String(), 64)

		c, err := engine.Fingerprint(ctx, "other@example.com", protectionDomain.KindEmail)
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("text is case sensitive", func(t *testing.T) {
		a, err := engine.Fingerprint(ctx, "Abc", protectionDomain.KindText)
		require.NoError(t, err)
		b, err := engine.Fingerprint(ctx, "abc", protectionDomain.KindText)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("empty kind defaults to text", func(t *testing.T) {
		a, err := engine.Fingerprint(ctx, " Abc ", "")
		require.NoError(t, err)
		b, err := engine.Fingerprint(ctx, "Abc", protectionDomain.KindText)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := engine.Fingerprint(ctx, "x", "nin")
		assert.ErrorIs(t, err, protectionDomain.ErrUnsupportedFingerprintKind)
	})

	t.Run("pepper changes fingerprint", func(t *testing.T) {
		other, err := NewProtectionUseCase(testKeyMaterial(t, 0x50), testConfig(), protectionService.NewAEADManager())
		require.NoError(t, err)
		a, err := engine.Fingerprint(ctx, "user@example.com", protectionDomain.KindEmail)
		require.NoError(t, err)
		b, err := other.Fingerprint(ctx, "user@example.com", protectionDomain.KindEmail)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestProtectionUseCase_Concurrent(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.MaxSystemCodeConcurrency = 2
	engine, err := NewProtectionUseCase(testKeyMaterial(t, 0x60), cfg, protectionService.NewAEADManager())
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tier := protectionDomain.Tiers[i%len(protectionDomain.Tiers)]
			value, err := engine.Protect(ctx, "concurrent", tier)
			if err != nil {
				errs <- err
				return
			}
			ok, err := engine.Verify(ctx, "concurrent", value, tier)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestProtectionUseCase_SystemCodeSlotHonoursContext(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSystemCodeConcurrency = 1
	engine, err := NewProtectionUseCase(testKeyMaterial(t, 0x70), cfg, protectionService.NewAEADManager())
	require.NoError(t, err)

	impl := engine.(*protectionUseCase)
	require.NoError(t, impl.codeSlots.Acquire(context.Background(), 1))
	defer impl.codeSlots.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = engine.Protect(ctx, "1234", protectionDomain.TierSystemCode)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = engine.Verify(ctx, "1234", "$2a$04$abc", protectionDomain.TierSystemCode)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	value, err := engine.Protect(ctx, "not a code", protectionDomain.TierBasic)
	require.NoError(t, err)
	assert.False(t, value.IsEmpty())
}
