package domain

import (
	"encoding/hex"
	"strings"
)

// segmentSeparator joins the hex segments of a reversible ProtectedValue.
const segmentSeparator = ":"

// ProtectedValue is the persisted form of a sensitive field. It is opaque to the
// persistence layer and is always replaced, never mutated, when the field changes.
//
// Layout by tier:
//
//	highest      hex(nonce):hex(tag):hex(ciphertext)
//	strong/basic hex(iv):hex(ciphertext)
//	system-code  adaptive hash string ($argon2id$... or $2a$...)
type ProtectedValue string

// String implements fmt.Stringer.
func (p ProtectedValue) String() string {
	return string(p)
}

// IsEmpty reports whether the value represents an absent field.
func (p ProtectedValue) IsEmpty() bool {
	return p == ""
}

// Envelope is the decoded form of a reversible ProtectedValue.
// Tag is only populated for the highest tier.
type Envelope struct {
	Nonce      []byte
	Tag        []byte
	Ciphertext []byte
}

// FormatEnvelope encodes an envelope for the given reversible tier.
func FormatEnvelope(tier Tier, env Envelope) (ProtectedValue, error) {
	switch tier {
	case TierHighest:
		return ProtectedValue(strings.Join([]string{
			hex.EncodeToString(env.Nonce),
			hex.EncodeToString(env.Tag),
			hex.EncodeToString(env.Ciphertext),
		}, segmentSeparator)), nil
	case TierStrong, TierBasic:
		return ProtectedValue(strings.Join([]string{
			hex.EncodeToString(env.Nonce),
			hex.EncodeToString(env.Ciphertext),
		}, segmentSeparator)), nil
	case TierSystemCode:
		return "", ErrUnsupportedOperation
	default:
		return "", ErrUnsupportedTier
	}
}

// ParseEnvelope decodes a reversible ProtectedValue strictly: the segment count must
// match the tier and every segment must be non-empty, lower-case hex exactly as
// FormatEnvelope writes it.
func ParseEnvelope(tier Tier, value ProtectedValue) (Envelope, error) {
	if err := tier.Validate(); err != nil {
		return Envelope{}, err
	}
	if !tier.IsReversible() {
		return Envelope{}, ErrUnsupportedOperation
	}

	parts := strings.Split(string(value), segmentSeparator)
	if len(parts) != tier.Segments() {
		return Envelope{}, ErrMalformedInput
	}

	decoded := make([][]byte, len(parts))
	for i, part := range parts {
		if part == "" {
			return Envelope{}, ErrMalformedInput
		}
		b, err := hex.DecodeString(part)
		if err != nil || hex.EncodeToString(b) != part {
			return Envelope{}, ErrMalformedInput
		}
		decoded[i] = b
	}

	if tier == TierHighest {
		return Envelope{Nonce: decoded[0], Tag: decoded[1], Ciphertext: decoded[2]}, nil
	}
	return Envelope{Nonce: decoded[0], Ciphertext: decoded[1]}, nil
}
