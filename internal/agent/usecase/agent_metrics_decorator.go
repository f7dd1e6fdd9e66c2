package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	"github.com/allisson/fieldguard/internal/metrics"
)

// agentUseCaseWithMetrics decorates AgentUseCase with metrics instrumentation.
type agentUseCaseWithMetrics struct {
	next    AgentUseCase
	metrics metrics.BusinessMetrics
}

// NewAgentUseCaseWithMetrics wraps an AgentUseCase with metrics recording.
func NewAgentUseCaseWithMetrics(useCase AgentUseCase, m metrics.BusinessMetrics) AgentUseCase {
	return &agentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *agentUseCaseWithMetrics) Enroll(
	ctx context.Context,
	input *agentDomain.EnrollInput,
) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Enroll(ctx, input)
	a.record(ctx, "enroll", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) Get(ctx context.Context, id uuid.UUID) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.Get(ctx, id)
	a.record(ctx, "get", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) GetByEmail(ctx context.Context, email string) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.GetByEmail(ctx, email)
	a.record(ctx, "get_by_email", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) GetByPhone(ctx context.Context, phone string) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.GetByPhone(ctx, phone)
	a.record(ctx, "get_by_phone", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	start := time.Now()
	agents, err := a.next.List(ctx, offset, limit)
	a.record(ctx, "list", start, err)
	return agents, err
}

func (a *agentUseCaseWithMetrics) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input *agentDomain.UpdateProfileInput,
) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.UpdateProfile(ctx, id, input)
	a.record(ctx, "update_profile", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) SetPIN(ctx context.Context, id uuid.UUID, currentPIN, newPIN string) error {
	start := time.Now()
	err := a.next.SetPIN(ctx, id, currentPIN, newPIN)
	a.record(ctx, "set_pin", start, err)
	return err
}

func (a *agentUseCaseWithMetrics) VerifyPIN(ctx context.Context, id uuid.UUID, pin string) (bool, error) {
	start := time.Now()
	ok, err := a.next.VerifyPIN(ctx, id, pin)
	a.record(ctx, "verify_pin", start, err)
	return ok, err
}

func (a *agentUseCaseWithMetrics) VerifyCredentials(
	ctx context.Context,
	email, password string,
) (*agentDomain.Agent, error) {
	start := time.Now()
	agent, err := a.next.VerifyCredentials(ctx, email, password)
	a.record(ctx, "verify_credentials", start, err)
	return agent, err
}

func (a *agentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "agent", operation, status)
	a.metrics.RecordDuration(ctx, "agent", operation, time.Since(start), status)
}
