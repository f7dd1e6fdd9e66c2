package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEnvelope(t *testing.T) {
	env := Envelope{
		Nonce:      []byte{0x01, 0x02},
		Tag:        []byte{0xaa, 0xbb},
		Ciphertext: []byte{0xff},
	}

	t.Run("highest has three segments", func(t *testing.T) {
		v, err := FormatEnvelope(TierHighest, env)
		require.NoError(t, err)
		assert.Equal(t, ProtectedValue("0102:aabb:ff"), v)
	})

	t.Run("strong and basic omit the tag", func(t *testing.T) {
		for _, tier := range []Tier{TierStrong, TierBasic} {
			v, err := FormatEnvelope(tier, env)
			require.NoError(t, err)
			assert.Equal(t, ProtectedValue("0102:ff"), v)
		}
	})

	t.Run("system-code is irreversible", func(t *testing.T) {
		_, err := FormatEnvelope(TierSystemCode, env)
		assert.ErrorIs(t, err, ErrUnsupportedOperation)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := FormatEnvelope(Tier("government"), env)
		assert.ErrorIs(t, err, ErrUnsupportedTier)
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("highest", func(t *testing.T) {
		env, err := ParseEnvelope(TierHighest, "0102:aabb:ff")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, env.Nonce)
		assert.Equal(t, []byte{0xaa, 0xbb}, env.Tag)
		assert.Equal(t, []byte{0xff}, env.Ciphertext)
	})

	t.Run("strong", func(t *testing.T) {
		env, err := ParseEnvelope(TierStrong, "0102:ff")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, env.Nonce)
		assert.Nil(t, env.Tag)
		assert.Equal(t, []byte{0xff}, env.Ciphertext)
	})

	t.Run("segment count must match tier", func(t *testing.T) {
		_, err := ParseEnvelope(TierHighest, "0102:ff")
		assert.ErrorIs(t, err, ErrMalformedInput)

		_, err = ParseEnvelope(TierBasic, "0102:aabb:ff")
		assert.ErrorIs(t, err, ErrMalformedInput)

		_, err = ParseEnvelope(TierStrong, "0102ff")
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("segments must be hex", func(t *testing.T) {
		_, err := ParseEnvelope(TierStrong, "zz:ff")
		assert.ErrorIs(t, err, ErrMalformedInput)

		_, err = ParseEnvelope(TierHighest, "0102:abc:ff")
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("upper-case hex", func(t *testing.T) {
		for _, value := range []ProtectedValue{"0102:AABB:ff", "0102:aabb:FF", "0A02:aabb:ff"} {
			_, err := ParseEnvelope(TierHighest, value)
			assert.ErrorIs(t, err, ErrMalformedInput, "value %s", value)
		}

		_, err := ParseEnvelope(TierBasic, "0102:Ff")
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("segments must be non-empty", func(t *testing.T) {
		_, err := ParseEnvelope(TierStrong, ":ff")
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("system-code cannot be parsed", func(t *testing.T) {
		_, err := ParseEnvelope(TierSystemCode, "$2a$10$abc")
		assert.ErrorIs(t, err, ErrUnsupportedOperation)
	})

	t.Run("unknown tier", func(t *testing.T) {
		_, err := ParseEnvelope(Tier("system"), "0102:ff")
		assert.ErrorIs(t, err, ErrUnsupportedTier)
	})
}
