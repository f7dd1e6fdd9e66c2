package repository

import (
	"database/sql/driver"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	agentDomain "github.com/allisson/fieldguard/internal/agent/domain"
	protectionDomain "github.com/allisson/fieldguard/internal/protection/domain"
)

var columnNames = []string{
	"id", "nin", "email", "email_fingerprint", "phone", "phone_fingerprint", "first_name", "last_name",
	"state", "lga", "address", "password_hash", "pin_hash", "created_at", "updated_at",
}

// newTestRecord returns a record holding placeholder protected values; the repository
// never interprets them.
func newTestRecord(suffix string) *agentDomain.AgentRecord {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &agentDomain.AgentRecord{
		ID:               uuid.Must(uuid.NewV7()),
		NIN:              protectionDomain.ProtectedValue("aa:bb:cc" + suffix),
		Email:            protectionDomain.ProtectedValue("0a:0b" + suffix),
		EmailFingerprint: protectionDomain.Fingerprint("e" + suffix),
		Phone:            protectionDomain.ProtectedValue("1a:1b" + suffix),
		PhoneFingerprint: protectionDomain.Fingerprint("p" + suffix),
		FirstName:        "2a:2b",
		LastName:         "3a:3b",
		State:            "4a:4b",
		LGA:              "5a:5b",
		PasswordHash:     protectionDomain.ProtectedValue("$2a$04$placeholder" + suffix),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// recordValues lists the column values of r in agentColumns order.
func recordValues(id driver.Value, r *agentDomain.AgentRecord) []driver.Value {
	return []driver.Value{
		id,
		string(r.NIN),
		string(r.Email),
		string(r.EmailFingerprint),
		string(r.Phone),
		string(r.PhoneFingerprint),
		string(r.FirstName),
		string(r.LastName),
		string(r.State),
		string(r.LGA),
		string(r.Address),
		string(r.PasswordHash),
		string(r.PINHash),
		r.CreatedAt,
		r.UpdatedAt,
	}
}

// updateValues lists the arguments of an Update statement.
func updateValues(id driver.Value, r *agentDomain.AgentRecord) []driver.Value {
	values := recordValues(id, r)
	// Every column except id, nin and created_at, followed by the id.
	args := append([]driver.Value{}, values[2:13]...)
	return append(args, r.UpdatedAt, id)
}

func postgresRows(records ...*agentDomain.AgentRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(columnNames)
	for _, r := range records {
		rows.AddRow(recordValues(r.ID.String(), r)...)
	}
	return rows
}

func mysqlID(id uuid.UUID) []byte {
	b, _ := id.MarshalBinary()
	return b
}

func mysqlRows(records ...*agentDomain.AgentRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(columnNames)
	for _, r := range records {
		rows.AddRow(recordValues(mysqlID(r.ID), r)...)
	}
	return rows
}
