package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	"github.com/allisson/fieldguard/internal/database"
	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
	protectionUseCase "github.com/allisson/fieldguard/internal/protection/usecase"
)

// agentUseCase implements AgentUseCase.
type agentUseCase struct {
	txManager  database.TxManager
	agentRepo  AgentRepository
	protection protectionUseCase.ProtectionUseCase

	// decoyOnce guards decoyHash, the system-code hash checked for unknown emails.
	decoyOnce sync.Once
	decoyHash protectionDomain.ProtectedValue
}

// decoyPassword seeds the hash verified when no agent matches an email.
const decoyPassword = "fieldguard-unknown-agent"

// NewAgentUseCase creates an AgentUseCase.
func NewAgentUseCase(
	txManager database.TxManager,
	agentRepo AgentRepository,
	protection protectionUseCase.ProtectionUseCase,
) AgentUseCase {
	return &agentUseCase{
		txManager:  txManager,
		agentRepo:  agentRepo,
		protection: protection,
	}
}

func (a *agentUseCase) Enroll(ctx context.Context, input *agentDomain.EnrollInput) (*agentDomain.Agent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	view := &agentDomain.Agent{
		ID:        uuid.Must(uuid.NewV7()),
		NIN:       input.NIN,
		Email:     normalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		State:     strings.TrimSpace(input.State),
		LGA:       strings.TrimSpace(input.LGA),
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: time.Now().UTC(),
	}
	view.UpdatedAt = view.CreatedAt

	// Hash and encrypt before opening the transaction.
	s := a.sealer(ctx)
	record := &agentDomain.AgentRecord{
		ID:               view.ID,
		NIN:              s.seal(agentDomain.FieldNIN, view.NIN),
		Email:            s.seal(agentDomain.FieldEmail, view.Email),
		EmailFingerprint: s.fingerprint(agentDomain.FieldEmail, view.Email),
		Phone:            s.seal(agentDomain.FieldPhone, view.Phone),
		PhoneFingerprint: s.fingerprint(agentDomain.FieldPhone, view.Phone),
		FirstName:        s.seal(agentDomain.FieldFirstName, view.FirstName),
		LastName:         s.seal(agentDomain.FieldLastName, view.LastName),
		State:            s.seal(agentDomain.FieldState, view.State),
		LGA:              s.seal(agentDomain.FieldLGA, view.LGA),
		Address:          s.seal(agentDomain.FieldAddress, view.Address),
		PasswordHash:     s.seal(agentDomain.FieldPassword, input.Password),
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
	}
	if s.err != nil {
		return nil, s.err
	}

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := a.ensureAvailable(ctx, record); err != nil {
			return err
		}
		return a.agentRepo.Create(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (a *agentUseCase) Get(ctx context.Context, id uuid.UUID) (*agentDomain.Agent, error) {
	record, err := a.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, record)
}

func (a *agentUseCase) GetByEmail(ctx context.Context, email string) (*agentDomain.Agent, error) {
	return a.getByFingerprint(ctx, agentDomain.FieldEmail, email, a.agentRepo.GetByEmailFingerprint)
}

func (a *agentUseCase) GetByPhone(ctx context.Context, phone string) (*agentDomain.Agent, error) {
	return a.getByFingerprint(ctx, agentDomain.FieldPhone, phone, a.agentRepo.GetByPhoneFingerprint)
}

func (a *agentUseCase) List(ctx context.Context, offset, limit int) ([]*agentDomain.Agent, error) {
	records, err := a.agentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	agents := make([]*agentDomain.Agent, 0, len(records))
	for _, record := range records {
		agent, err := a.open(ctx, record)
		if err != nil {
			return nil, err
		}
		agents = append(agents, agent)
	}
	return agents, nil
}

func (a *agentUseCase) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input *agentDomain.UpdateProfileInput,
) (*agentDomain.Agent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.IsEmpty() {
		return a.Get(ctx, id)
	}

	var agent *agentDomain.Agent
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := a.agentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		s := a.sealer(ctx)
		if input.Email != nil {
			email := normalizeEmail(*input.Email)
			record.Email = s.seal(agentDomain.FieldEmail, email)
			record.EmailFingerprint = s.fingerprint(agentDomain.FieldEmail, email)
		}
		if input.Phone != nil {
			phone := strings.TrimSpace(*input.Phone)
			record.Phone = s.seal(agentDomain.FieldPhone, phone)
			record.PhoneFingerprint = s.fingerprint(agentDomain.FieldPhone, phone)
		}
		s.replace(&record.FirstName, agentDomain.FieldFirstName, input.FirstName)
		s.replace(&record.LastName, agentDomain.FieldLastName, input.LastName)
		s.replace(&record.State, agentDomain.FieldState, input.State)
		s.replace(&record.LGA, agentDomain.FieldLGA, input.LGA)
		s.replace(&record.Address, agentDomain.FieldAddress, input.Address)
		if s.err != nil {
			return s.err
		}

		if input.Email != nil || input.Phone != nil {
			if err := a.ensureAvailable(ctx, record); err != nil {
				return err
			}
		}

		record.UpdatedAt = time.Now().UTC()
		if err := a.agentRepo.Update(ctx, record); err != nil {
			return err
		}

		agent, err = a.open(ctx, record)
		return err
	})
	if err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *agentUseCase) SetPIN(ctx context.Context, id uuid.UUID, currentPIN, newPIN string) error {
	if err := agentDomain.ValidatePIN(newPIN); err != nil {
		return err
	}

	return a.txManager.WithTx(ctx, func(ctx context.Context) error {
		record, err := a.agentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if record.HasPIN() {
			ok, err := a.protection.Verify(ctx, currentPIN, record.PINHash, agentDomain.FieldPIN.Tier())
			if err != nil {
				return apperrors.Wrap(err, "failed to verify pin")
			}
			if !ok {
				return agentDomain.ErrInvalidPIN
			}
		}

		s := a.sealer(ctx)
		record.PINHash = s.seal(agentDomain.FieldPIN, newPIN)
		if s.err != nil {
			return s.err
		}
		record.UpdatedAt = time.Now().UTC()

		return a.agentRepo.Update(ctx, record)
	})
}

func (a *agentUseCase) VerifyPIN(ctx context.Context, id uuid.UUID, pin string) (bool, error) {
	record, err := a.agentRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !record.HasPIN() {
		return false, nil
	}

	ok, err := a.protection.Verify(ctx, pin, record.PINHash, agentDomain.FieldPIN.Tier())
	if err != nil {
		return false, apperrors.Wrap(err, "failed to verify pin")
	}
	return ok, nil
}

func (a *agentUseCase) VerifyCredentials(
	ctx context.Context,
	email, password string,
) (*agentDomain.Agent, error) {
	fp, err := a.protection.Fingerprint(ctx, email, agentDomain.FieldEmail.FingerprintKind())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to fingerprint email")
	}
	if fp == "" {
		return nil, agentDomain.ErrInvalidCredentials
	}

	record, err := a.agentRepo.GetByEmailFingerprint(ctx, fp)
	if err != nil {
		if apperrors.Is(err, agentDomain.ErrAgentNotFound) {
			a.verifyDecoy(ctx, password)
			return nil, agentDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := a.protection.Verify(ctx, password, record.PasswordHash, agentDomain.FieldPassword.Tier())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to verify password")
	}
	if !ok {
		return nil, agentDomain.ErrInvalidCredentials
	}

	return a.open(ctx, record)
}

// verifyDecoy spends the same adaptive-hash work on an unknown email as on a known
// one. The outcome is discarded.
func (a *agentUseCase) verifyDecoy(ctx context.Context, password string) {
	a.decoyOnce.Do(func() {
		hashed, err := a.protection.Protect(context.WithoutCancel(ctx), decoyPassword, agentDomain.FieldPassword.Tier())
		if err == nil {
			a.decoyHash = hashed
		}
	})
	if a.decoyHash.IsEmpty() {
		return
	}
	_, _ = a.protection.Verify(ctx, password, a.decoyHash, agentDomain.FieldPassword.Tier())
}

type fingerprintLookup func(context.Context, protectionDomain.Fingerprint) (*agentDomain.AgentRecord, error)

func (a *agentUseCase) getByFingerprint(
	ctx context.Context,
	field agentDomain.Field,
	value string,
	lookup fingerprintLookup,
) (*agentDomain.Agent, error) {
	fp, err := a.protection.Fingerprint(ctx, value, field.FingerprintKind())
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to fingerprint %s", field)
	}
	if fp == "" {
		return nil, agentDomain.ErrAgentNotFound
	}

	record, err := lookup(ctx, fp)
	if err != nil {
		return nil, err
	}
	return a.open(ctx, record)
}

// ensureAvailable fails with ErrAgentAlreadyExists when record's email or phone
// fingerprint belongs to a different agent.
func (a *agentUseCase) ensureAvailable(ctx context.Context, record *agentDomain.AgentRecord) error {
	checks := []struct {
		fp     protectionDomain.Fingerprint
		lookup fingerprintLookup
	}{
		{record.EmailFingerprint, a.agentRepo.GetByEmailFingerprint},
		{record.PhoneFingerprint, a.agentRepo.GetByPhoneFingerprint},
	}

	for _, check := range checks {
		existing, err := check.lookup(ctx, check.fp)
		if err != nil {
			if apperrors.Is(err, agentDomain.ErrAgentNotFound) {
				continue
			}
			return err
		}
		if existing.ID != record.ID {
			return agentDomain.ErrAgentAlreadyExists
		}
	}
	return nil
}

// open decrypts record into the Agent view.
func (a *agentUseCase) open(ctx context.Context, record *agentDomain.AgentRecord) (*agentDomain.Agent, error) {
	o := &fieldOpener{ctx: ctx, protection: a.protection}
	agent := &agentDomain.Agent{
		ID:        record.ID,
		NIN:       o.open(agentDomain.FieldNIN, record.NIN),
		Email:     o.open(agentDomain.FieldEmail, record.Email),
		Phone:     o.open(agentDomain.FieldPhone, record.Phone),
		FirstName: o.open(agentDomain.FieldFirstName, record.FirstName),
		LastName:  o.open(agentDomain.FieldLastName, record.LastName),
		State:     o.open(agentDomain.FieldState, record.State),
		LGA:       o.open(agentDomain.FieldLGA, record.LGA),
		Address:   o.open(agentDomain.FieldAddress, record.Address),
		HasPIN:    record.HasPIN(),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	if o.err != nil {
		return nil, apperrors.Wrapf(o.err, "failed to open agent %s", record.ID)
	}
	return agent, nil
}

func (a *agentUseCase) sealer(ctx context.Context) *fieldSealer {
	return &fieldSealer{ctx: ctx, protection: a.protection}
}

// fieldSealer protects fields one after another and keeps the first error, so a
// record can be built in a single composite literal.
type fieldSealer struct {
	ctx        context.Context
	protection protectionUseCase.ProtectionUseCase
	err        error
}

func (s *fieldSealer) seal(field agentDomain.Field, plaintext string) protectionDomain.ProtectedValue {
	if s.err != nil {
		return ""
	}
	value, err := s.protection.Protect(s.ctx, plaintext, field.Tier())
	if err != nil {
		s.err = apperrors.Wrapf(err, "failed to protect %s", field)
		return ""
	}
	return value
}

func (s *fieldSealer) fingerprint(field agentDomain.Field, plaintext string) protectionDomain.Fingerprint {
	if s.err != nil {
		return ""
	}
	fp, err := s.protection.Fingerprint(s.ctx, plaintext, field.FingerprintKind())
	if err != nil {
		s.err = apperrors.Wrapf(err, "failed to fingerprint %s", field)
		return ""
	}
	return fp
}

// replace re-protects *dst when plaintext is set.
func (s *fieldSealer) replace(dst *protectionDomain.ProtectedValue, field agentDomain.Field, plaintext *string) {
	if plaintext == nil {
		return
	}
	*dst = s.seal(field, strings.TrimSpace(*plaintext))
}

type fieldOpener struct {
	ctx        context.Context
	protection protectionUseCase.ProtectionUseCase
	err        error
}

func (o *fieldOpener) open(field agentDomain.Field, value protectionDomain.ProtectedValue) string {
	if o.err != nil {
		return ""
	}
	plaintext, err := o.protection.Unprotect(o.ctx, value, field.Tier())
	if err != nil {
		o.err = apperrors.Wrapf(err, "failed to decrypt %s", field)
		return ""
	}
	return plaintext
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
