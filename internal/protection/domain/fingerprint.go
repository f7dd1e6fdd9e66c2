package domain

import "strings"

// Fingerprint is a deterministic keyed digest of a normalized plaintext, stored next to
// the ProtectedValue so the field can be found by equality without decrypting rows.
type Fingerprint string

// String implements fmt.Stringer.
func (f Fingerprint) String() string {
	return string(f)
}

// FingerprintKind selects the normalization applied before fingerprinting.
// The same kind must be used when writing a field and when querying it.
type FingerprintKind string

const (
	// KindText trims surrounding whitespace only.
	KindText FingerprintKind = "text"

	// KindEmail trims and lower-cases, so "User@Example.com" matches "user@example.com".
	KindEmail FingerprintKind = "email"

	// KindPhone keeps ASCII digits and a leading '+', so "+234 801-234-5678" matches "+2348012345678".
	KindPhone FingerprintKind = "phone"
)

// ParseFingerprintKind converts a string to a FingerprintKind. Empty means KindText.
func ParseFingerprintKind(s string) (FingerprintKind, error) {
	switch k := FingerprintKind(s); k {
	case "":
		return KindText, nil
	case KindText, KindEmail, KindPhone:
		return k, nil
	default:
		return "", ErrUnsupportedFingerprintKind
	}
}

// Normalize returns the canonical form of s for this kind.
func (k FingerprintKind) Normalize(s string) string {
	switch k {
	case KindEmail:
		return strings.ToLower(strings.TrimSpace(s))
	case KindPhone:
		return normalizePhone(s)
	default:
		return strings.TrimSpace(s)
	}
}

func normalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
