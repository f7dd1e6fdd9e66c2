package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

func TestSchema(t *testing.T) {
	tests := []struct {
		field       Field
		tier        protectionDomain.Tier
		fingerprint protectionDomain.FingerprintKind
	}{
		{FieldNIN, protectionDomain.TierHighest, ""},
		{FieldEmail, protectionDomain.TierStrong, protectionDomain.KindEmail},
		{FieldPhone, protectionDomain.TierStrong, protectionDomain.KindPhone},
		{FieldFirstName, protectionDomain.TierBasic, ""},
		{FieldLastName, protectionDomain.TierBasic, ""},
		{FieldState, protectionDomain.TierBasic, ""},
		{FieldLGA, protectionDomain.TierBasic, ""},
		{FieldAddress, protectionDomain.TierBasic, ""},
		{FieldPassword, protectionDomain.TierSystemCode, ""},
		{FieldPIN, protectionDomain.TierSystemCode, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			assert.Equal(t, tt.tier, tt.field.Tier())
			assert.Equal(t, tt.fingerprint, tt.field.FingerprintKind())
		})
	}

	assert.Len(t, Schema, len(tests))
}

func TestSchema_FingerprintsOnlyReversibleNonHighestFields(t *testing.T) {
	for field, rule := range Schema {
		assert.NoError(t, rule.Tier.Validate(), "field %s", field)
		if rule.Fingerprint == "" {
			continue
		}
		assert.NotEqual(t, protectionDomain.TierHighest, rule.Tier, "field %s", field)
		assert.True(t, rule.Tier.IsReversible(), "field %s", field)
	}
}

func TestField_Unknown(t *testing.T) {
	f := Field("middle_name")
	assert.Empty(t, f.Tier())
	assert.Error(t, f.Tier().Validate())
	assert.Empty(t, f.FingerprintKind())
}

func TestAgentRecord_HasPIN(t *testing.T) {
	assert.False(t, (&AgentRecord{}).HasPIN())
	assert.True(t, (&AgentRecord{PINHash: "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$aGFzaA"}).HasPIN())
}
