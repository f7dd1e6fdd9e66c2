// Package domain defines the agent account model and the protection schema of its fields.
//
// An agent is stored as an AgentRecord: every personal field is a ProtectedValue produced
// under the tier declared in Schema, and contact fields carry a search fingerprint so an
// agent can be found by email or phone without decrypting rows. The decrypted Agent view
// is what use cases return to callers.
package domain

import (
	"time"

	"github.com/google/uuid"

	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// Agent is the decrypted view of an enrolled agent. It never carries hashes.
type Agent struct {
	ID        uuid.UUID
	NIN       string
	Email     string
	Phone     string
	FirstName string
	LastName  string
	State     string
	LGA       string
	Address   string
	HasPIN    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgentRecord is the persisted form of an agent.
type AgentRecord struct {
	ID               uuid.UUID
	NIN              protectionDomain.ProtectedValue
	Email            protectionDomain.ProtectedValue
	EmailFingerprint protectionDomain.Fingerprint
	Phone            protectionDomain.ProtectedValue
	PhoneFingerprint protectionDomain.Fingerprint
	FirstName        protectionDomain.ProtectedValue
	LastName         protectionDomain.ProtectedValue
	State            protectionDomain.ProtectedValue
	LGA              protectionDomain.ProtectedValue
	Address          protectionDomain.ProtectedValue
	PasswordHash     protectionDomain.ProtectedValue
	PINHash          protectionDomain.ProtectedValue // empty until the first SetPIN
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPIN reports whether a transaction PIN has been set.
func (r *AgentRecord) HasPIN() bool {
	return !r.PINHash.IsEmpty()
}
