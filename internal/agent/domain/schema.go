package domain

import (
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// Field names a protected column of the agents table.
type Field string

const (
	FieldNIN       Field = "nin"
	FieldEmail     Field = "email"
	FieldPhone     Field = "phone"
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldState     Field = "state"
	FieldLGA       Field = "lga"
	FieldAddress   Field = "address"
	FieldPassword  Field = "password"
	FieldPIN       Field = "pin"
)

// FieldSpec declares how a field is protected. An empty Fingerprint means the field is
// not searchable.
type FieldSpec struct {
	Tier        protectionDomain.Tier
	Fingerprint protectionDomain.FingerprintKind
}

// Schema is the single place where agent fields are assigned a protection tier.
// Highest tier fields must never be fingerprinted.
var Schema = map[Field]FieldSpec{
	FieldNIN:       {Tier: protectionDomain.TierHighest},
	FieldEmail:     {Tier: protectionDomain.TierStrong, Fingerprint: protectionDomain.KindEmail},
	FieldPhone:     {Tier: protectionDomain.TierStrong, Fingerprint: protectionDomain.KindPhone},
	FieldFirstName: {Tier: protectionDomain.TierBasic},
	FieldLastName:  {Tier: protectionDomain.TierBasic},
	FieldState:     {Tier: protectionDomain.TierBasic},
	FieldLGA:       {Tier: protectionDomain.TierBasic},
	FieldAddress:   {Tier: protectionDomain.TierBasic},
	FieldPassword:  {Tier: protectionDomain.TierSystemCode},
	FieldPIN:       {Tier: protectionDomain.TierSystemCode},
}

// Tier returns the protection tier of f. Unknown fields return an empty tier, which the
// protection engine rejects.
func (f Field) Tier() protectionDomain.Tier {
	return Schema[f].Tier
}

// FingerprintKind returns the normalization used for f's fingerprint, or "" if f is not searchable.
func (f Field) FingerprintKind() protectionDomain.FingerprintKind {
	return Schema[f].Fingerprint
}

// String implements fmt.Stringer.
func (f Field) String() string {
	return string(f)
}
