package domain

import (
	"github.com/allisson/fieldguard/internal/errors"
)

// Agent errors.
var (
	// ErrAgentNotFound indicates no agent matches the id, email or phone.
	ErrAgentNotFound = errors.Wrap(errors.ErrNotFound, "agent not found")

	// ErrAgentAlreadyExists indicates the email or phone belongs to another agent.
	ErrAgentAlreadyExists = errors.Wrap(errors.ErrConflict, "agent with this email or phone already exists")

	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidPIN indicates the current PIN did not verify.
	ErrInvalidPIN = errors.Wrap(errors.ErrUnauthorized, "invalid pin")
)
