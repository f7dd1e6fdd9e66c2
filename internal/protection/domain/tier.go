package domain

// Tier is the sensitivity class a field is protected under.
type Tier string

const (
	// TierHighest protects government identifiers with authenticated encryption.
	TierHighest Tier = "highest"
	// TierStrong protects contact details (phone, email) with randomized encryption.
	TierStrong Tier = "strong"
	// TierBasic protects lower sensitivity values (name, location) with randomized encryption.
	TierBasic Tier = "basic"
	// TierSystemCode protects passwords, PINs and access codes with a one-way adaptive hash.
	TierSystemCode Tier = "system-code"
)

// Tiers lists every supported tier.
var Tiers = []Tier{TierHighest, TierStrong, TierBasic, TierSystemCode}

// ParseTier converts a string to a Tier. Only the canonical names are accepted.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate returns ErrUnsupportedTier for values outside the fixed enumeration.
func (t Tier) Validate() error {
	switch t {
	case TierHighest, TierStrong, TierBasic, TierSystemCode:
		return nil
	default:
		return ErrUnsupportedTier
	}
}

// IsReversible reports whether values protected under the tier can be decrypted.
func (t Tier) IsReversible() bool {
	switch t {
	case TierHighest, TierStrong, TierBasic:
		return true
	default:
		return false
	}
}

// IsAuthenticated reports whether the tier detects tampering on decryption.
func (t Tier) IsAuthenticated() bool {
	return t == TierHighest
}

// Segments returns the number of ':'-separated segments a ProtectedValue of this tier has.
// Irreversible tiers return 0.
func (t Tier) Segments() int {
	switch t {
	case TierHighest:
		return 3
	case TierStrong, TierBasic:
		return 2
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (t Tier) String() string {
	return string(t)
}
