package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/fieldguard/internal/errors"
)

func TestParseTier(t *testing.T) {
	t.Run("canonical names", func(t *testing.T) {
		for _, name := range []string{"highest", "strong", "basic", "system-code"} {
			tier, err := ParseTier(name)
			require.NoError(t, err)
			assert.Equal(t, name, tier.String())
		}
	})

	t.Run("legacy aliases are rejected", func(t *testing.T) {
		for _, name := range []string{"government", "government-id", "system", "HIGHEST", ""} {
			_, err := ParseTier(name)
			assert.ErrorIs(t, err, ErrUnsupportedTier, "tier %q", name)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		}
	})
}

func TestTier_Properties(t *testing.T) {
	tests := []struct {
		tier          Tier
		reversible    bool
		authenticated bool
		segments      int
	}{
		{TierHighest, true, true, 3},
		{TierStrong, true, false, 2},
		{TierBasic, true, false, 2},
		{TierSystemCode, false, false, 0},
		{Tier("unknown"), false, false, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			assert.Equal(t, tt.reversible, tt.tier.IsReversible())
			assert.Equal(t, tt.authenticated, tt.tier.IsAuthenticated())
			assert.Equal(t, tt.segments, tt.tier.Segments())
		})
	}
}

func TestTiers(t *testing.T) {
	assert.Len(t, Tiers, 4)
	for _, tier := range Tiers {
		assert.NoError(t, tier.Validate())
	}
}
