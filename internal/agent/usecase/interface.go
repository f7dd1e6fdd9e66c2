// Package usecase implements agent enrollment and account management on top of the
// field protection engine.
package usecase

import (
	"context"

	"github.com/google/uuid"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// AgentRepository persists protected agent records.
type AgentRepository interface {
	// Create returns ErrAgentAlreadyExists when a fingerprint column collides.
	Create(ctx context.Context, record *agentDomain.AgentRecord) error

	// Update replaces every column of an existing record.
	Update(ctx context.Context, record *agentDomain.AgentRecord) error

	// GetByID returns ErrAgentNotFound when no row matches.
	GetByID(ctx context.Context, id uuid.UUID) (*agentDomain.AgentRecord, error)

	GetByEmailFingerprint(ctx context.Context, fp protectionDomain.Fingerprint) (*agentDomain.AgentRecord, error)

	GetByPhoneFingerprint(ctx context.Context, fp protectionDomain.Fingerprint) (*agentDomain.AgentRecord, error)

	// List returns records ordered by id.
	List(ctx context.Context, offset, limit int) ([]*agentDomain.AgentRecord, error)
}

// AgentUseCase manages agent accounts. Every personal field is protected before it
// reaches the repository and decrypted on the way out.
type AgentUseCase interface {
	// Enroll validates input, rejects duplicate email or phone and stores a new agent.
	Enroll(ctx context.Context, input *agentDomain.EnrollInput) (*agentDomain.Agent, error)

	Get(ctx context.Context, id uuid.UUID) (*agentDomain.Agent, error)

	// GetByEmail looks an agent up by email fingerprint. Case and surrounding spaces are ignored.
	GetByEmail(ctx context.Context, email string) (*agentDomain.Agent, error)

	// GetByPhone looks an agent up by phone fingerprint. Separators are ignored.
	GetByPhone(ctx context.Context, phone string) (*agentDomain.Agent, error)

	List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error)

	// UpdateProfile re-protects the changed fields with fresh values.
	UpdateProfile(
		ctx context.Context,
		id uuid.UUID,
		input *agentDomain.UpdateProfileInput,
	) (*agentDomain.Agent, error)

	// SetPIN sets the transaction PIN. The first PIN needs no currentPIN; afterwards
	// currentPIN must verify or ErrInvalidPIN is returned.
	SetPIN(ctx context.Context, id uuid.UUID, currentPIN, newPIN string) error

	// VerifyPIN reports whether pin matches. An agent without a PIN never matches.
	VerifyPIN(ctx context.Context, id uuid.UUID, pin string) (bool, error)

	// VerifyCredentials returns the agent for a matching email and password.
	// Unknown emails and wrong passwords both return ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (*agentDomain.Agent, error)
}
