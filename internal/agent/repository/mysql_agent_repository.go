package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	"github.com/allisson/fieldguard/internal/database"
	apperrors "github.com/allisson/fieldguard/internal/errors"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

// MySQLAgentRepository implements AgentRepository for MySQL.
// The DSN must set parseTime=true so DATETIME columns scan into time.Time.
type MySQLAgentRepository struct {
	db *sql.DB
}

// NewMySQLAgentRepository creates a new MySQL agent repository.
func NewMySQLAgentRepository(db *sql.DB) *MySQLAgentRepository {
	return &MySQLAgentRepository{db: db}
}

// Create inserts a new agent record using BINARY(16) for the id.
func (m *MySQLAgentRepository) Create(ctx context.Context, record *agentDomain.AgentRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `INSERT INTO agents (` + agentColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
		if isMySQLUniqueViolation(err) {
			return agentDomain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create agent")
	}
	return nil
}

// Update replaces every mutable column of an agent record.
func (m *MySQLAgentRepository) Update(ctx context.Context, record *agentDomain.AgentRecord) error {
	querier := database.GetTx(ctx, m.db)

	id, err := record.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `UPDATE agents
			  SET email = ?,
				  email_fingerprint = ?,
				  phone = ?,
				  phone_fingerprint = ?,
				  first_name = ?,
				  last_name = ?,
				  state = ?,
				  lga = ?,
				  address = ?,
				  password_hash = ?,
				  pin_hash = ?,
				  updated_at = ?
			  WHERE id = ?`

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
		id,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return agentDomain.ErrAgentAlreadyExists
		}
		return apperrors.Wrap(err, "failed to update agent")
	}

	// MySQL reports 0 affected rows when nothing changed, so a miss is confirmed by lookup.
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		if _, err := m.GetByID(ctx, record.ID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves an agent record by id.
func (m *MySQLAgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*agentDomain.AgentRecord, error) {
	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal agent id")
	}

	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = ?`
	return m.getOne(ctx, query, idBytes)
}

// GetByEmailFingerprint retrieves an agent record by email fingerprint.
func (m *MySQLAgentRepository) GetByEmailFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email_fingerprint = ?`
	return m.getOne(ctx, query, fp)
}

// GetByPhoneFingerprint retrieves an agent record by phone fingerprint.
func (m *MySQLAgentRepository) GetByPhoneFingerprint(
	ctx context.Context,
	fp protectionDomain.Fingerprint,
) (*agentDomain.AgentRecord, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE phone_fingerprint = ?`
	return m.getOne(ctx, query, fp)
}

// List retrieves agent records ordered by id.
func (m *MySQLAgentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*agentDomain.AgentRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY id LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list agents")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*agentDomain.AgentRecord, 0)
	for rows.Next() {
		var (
			record  agentDomain.AgentRecord
			idBytes []byte
		)
		if err := rows.Scan(append([]any{&idBytes}, fieldScanDest(&record)...)...); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan agent")
		}
		if err := record.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal agent id")
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate agents")
	}

	return records, nil
}

func (m *MySQLAgentRepository) getOne(
	ctx context.Context,
	query string,
	arg any,
) (*agentDomain.AgentRecord, error) {
	querier := database.GetTx(ctx, m.db)

	var (
		record  agentDomain.AgentRecord
		idBytes []byte
	)
	err := querier.QueryRowContext(ctx, query, arg).Scan(append([]any{&idBytes}, fieldScanDest(&record)...)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, agentDomain.ErrAgentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get agent")
	}

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal agent id")
	}
	return &record, nil
}

// isMySQLUniqueViolation reports error 1062 (ER_DUP_ENTRY).
func isMySQLUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
