// Package repository implements agent persistence.
//
// Provides PostgreSQL and MySQL implementations with transaction support via database.GetTx().
// PostgreSQL uses native UUID types, MySQL uses BINARY(16). Protected values and
// fingerprints are stored as opaque text.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	"github.com/allisson/fieldguard/internal/database"
	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

const agentColumns = `id, nin, email, email_fingerprint, phone, phone_fingerprint, first_name, last_name,
	state, lga, address, password_hash, pin_hash, created_at, updated_at`

// PostgreSQLAgentRepository implements AgentRepository for PostgreSQL.
type PostgreSQLAgentRepository struct {
	db *sql.DB
}

// NewPostgreSQLAgentRepository creates a new PostgreSQL agent repository.
func NewPostgreSQLAgentRepository(db *sql.DB) *PostgreSQLAgentRepository {
	return &PostgreSQLAgentRepository{db: db}
}

// Create inserts a new agent record.
func (p *PostgreSQLAgentRepository) Create(ctx context.Context, record *agentDomain.AgentRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO agents (` + agentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.ID,
		record.NIN,
		record.Email,
		record.EmailFingerprint,
		record.Phone,
		record.PhoneFingerprint,
		record.FirstName,
		record.LastName,
		record.State,
		record.LGA,
		record.Address,
		record.PasswordHash,
		record.PINHash,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return agentDomain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Update replaces every mutable column of an agent record.
func (p *PostgreSQLAgentRepository) Update(ctx context.Context, record *agentDomain.AgentRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE agents
			  SET email = $1,
				  email_fingerprint = $2,
				  phone = $3,
				  phone_fingerprint = $4,
				  first_name = $5,
				  last_name = $6,
				  state = $7,
				  lga = $8,
				  address = $9,
				  password_hash = $10,
				  pin_hash = $11,
				  updated_at = $12
			  WHERE id = $13`

	result, err := querier.ExecContext(
		ctx,
		query,
		record.Email,
		record.EmailFingerprint,
		record.Phone,
		record.PhoneFingerprint,
		record.FirstName,
		record.LastName,
		record.State,
		record.LGA,
		record.Address,
		record.PasswordHash,
		record.PINHash,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return agentDomain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update agent")
	}

	return checkRowsAffected(result)
}

// GetByID retrieves an agent record by id.
func (p *PostgreSQLAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*agentDomain.AgentRecord, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return p.getOne(ctx, query, id)
}

// GetByEmailFingerprint retrieves an agent record by email fingerprint.
func (p *PostgreSQLAgentRepository) GetByEmailFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email_fingerprint = $1`
	return p.getOne(ctx, query, fp)
}

// GetByPhoneFingerprint retrieves an agent record by phone fingerprint.
func (p *PostgreSQLAgentRepository) GetByPhoneFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE phone_fingerprint = $1`
	return p.getOne(ctx, query, fp)
}

// List retrieves agent records ordered by id, which is enrollment order for UUIDv7.
func (p *PostgreSQLAgentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*agentDomain.AgentRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*agentDomain.AgentRecord, 0)
	for rows.Next() {
		var record agentDomain.AgentRecord
		if err := rows.Scan(postgresScanDest(&record)...); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agents")
	}

	return records, nil
}

func (p *PostgreSQLAgentRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*agentDomain.AgentRecord, error) {
	querier := database.GetTx(ctx, p.db)

	var record agentDomain.AgentRecord
	err := querier.QueryRowContext(ctx, query, arg).Scan(postgresScanDest(&record)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, agentDomain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent")
	}
	return &record, nil
}

func postgresScanDest(record *agentDomain.AgentRecord) []any {
	return append([]any{&record.ID}, fieldScanDest(record)...)
}

// fieldScanDest returns scan targets for every column after id.
func fieldScanDest(record *agentDomain.AgentRecord) []any {
	return []any{
		&record.NIN,
		&record.Email,
		&record.EmailFingerprint,
		&record.Phone,
		&record.PhoneFingerprint,
		&record.FirstName,
		&record.LastName,
		&record.State,
		&record.LGA,
		&record.Address,
		&record.PasswordHash,
		&record.PINHash,
		&record.CreatedAt,
		&record.UpdatedAt,
	}
}

func checkRowsAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return agentDomain.ErrAgentNotFound
	}
	return nil
}

// isPostgreSQLUniqueViolation reports SQLSTATE 23505 (unique_violation).
func isPostgreSQLUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
