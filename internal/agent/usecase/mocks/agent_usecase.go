// Package mocks provides mock implementations of agent use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// MockAgentUseCase is a mock implementation of AgentUseCase for testing.
type MockAgentUseCase struct {
	mock.Mock
}

func agentOrNil(v any) *agentDomain.Agent {
	if v == nil {
		return nil
	}
	return v.(*agentDomain.Agent)
}

func recordOrNil(v any) *agentDomain.AgentRecord {
	if v == nil {
		return nil
	}
	return v.(*agentDomain.AgentRecord)
}

// Enroll mocks the Enroll method.
func (m *MockAgentUseCase) Enroll(ctx context.Context, input *agentDomain.EnrollInput) (*agentDomain.Agent, error) {
	args := m.Called(ctx, input)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// Get mocks the Get method.
func (m *MockAgentUseCase) Get(ctx context.Context, id uuid.UUID) (*agentDomain.Agent, error) {
	args := m.Called(ctx, id)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// GetByEmail mocks the GetByEmail method.
func (m *MockAgentUseCase) GetByEmail(ctx context.Context, email string) (*agentDomain.Agent, error) {
	args := m.Called(ctx, email)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// GetByPhone mocks the GetByPhone method.
func (m *MockAgentUseCase) GetByPhone(ctx context.Context, phone string) (*agentDomain.Agent, error) {
	args := m.Called(ctx, phone)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// List mocks the List method.
func (m *MockAgentUseCase) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentDomain.Agent), args.Error(1)
}

// UpdateProfile mocks the UpdateProfile method.
func (m *MockAgentUseCase) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input *agentDomain.UpdateProfileInput,
) (*agentDomain.Agent, error) {
	args := m.Called(ctx, id, input)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// SetPIN mocks the SetPIN method.
func (m *MockAgentUseCase) SetPIN(ctx context.Context, id uuid.UUID, currentPIN, newPIN string) error {
	args := m.Called(ctx, id, currentPIN, newPIN)
	return args.Error(0)
}

// VerifyPIN mocks the VerifyPIN method.
func (m *MockAgentUseCase) VerifyPIN(ctx context.Context, id uuid.UUID, pin string) (bool, error) {
	args := m.Called(ctx, id, pin)
	return args.Bool(0), args.Error(1)
}

// VerifyCredentials mocks the VerifyCredentials method.
func (m *MockAgentUseCase) VerifyCredentials(
	ctx context.Context,
	email, password string,
) (*agentDomain.Agent, error) {
	args := m.Called(ctx, email, password)
	return agentOrNil(args.Get(0)), args.Error(1)
}

// MockAgentRepository is a mock implementation of AgentRepository for testing.
type MockAgentRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockAgentRepository) Create(ctx context.Context, record *agentDomain.AgentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Update mocks the Update method.
func (m *MockAgentRepository) Update(ctx context.Context, record *agentDomain.AgentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*agentDomain.AgentRecord, error) {
	args := m.Called(ctx, id)
	return recordOrNil(args.Get(0)), args.Error(1)
}

// GetByEmailFingerprint mocks the GetByEmailFingerprint method.
func (m *MockAgentRepository) GetByEmailFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	args := m.Called(ctx, fp)
	return recordOrNil(args.Get(0)), args.Error(1)
}

// GetByPhoneFingerprint mocks the GetByPhoneFingerprint method.
func (m *MockAgentRepository) GetByPhoneFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	args := m.Called(ctx, fp)
	return recordOrNil(args.Get(0)), args.Error(1)
}

// List mocks the List method.
func (m *MockAgentRepository) List(ctx context.Context, offset, limit int) ([]*agentDomain.AgentRecord, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*agentDomain.AgentRecord), args.Error(1)
}

// MockTxManager is a mock TxManager that runs fn in the caller's context.
type MockTxManager struct {
	mock.Mock
}

// WithTx records the call and, unless an error is configured, runs fn.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
