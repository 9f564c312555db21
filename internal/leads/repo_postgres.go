package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
)

// PostgresStore reads and writes leads directly in Postgres through database/sql
// (pgx stdlib driver). It assumes a table shaped like:
//
//	id text primary key, phone text, name text, project text,
//	status text, last_call_status text, dtmf_input text, last_called_at timestamptz
//
// Updates are single statements with no row locking; last write wins.
type PostgresStore struct {
	db    *sql.DB
	table string
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func NewPostgresStore(db *sql.DB, table string) (*PostgresStore, error) {
	if db == nil {
		return nil, errors.New("leads: db is nil")
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("leads: invalid table name %q", table)
	}
	return &PostgresStore{db: db, table: table}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Lead, error) {
	q := `
SELECT id, COALESCE(phone, ''), COALESCE(name, ''), COALESCE(project, ''),
       COALESCE(status, ''), last_call_status, dtmf_input, last_called_at
FROM ` + s.table + `
WHERE id = $1
`
	l, err := scanLead(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, fmt.Errorf("leads: select %s: %w", id, err)
	}
	return l, nil
}

func (s *PostgresStore) UpdateOutcome(ctx context.Context, id string, u OutcomeUpdate) error {
	q := `
UPDATE ` + s.table + `
SET status = $2, last_call_status = $3, dtmf_input = $4, last_called_at = $5
WHERE id = $1
`
	_, err := s.db.ExecContext(ctx, q,
		id,
		string(u.Status),
		nullString(u.LastCallStatus),
		nullString(u.DTMFInput),
		u.LastCalledAt,
	)
	if err != nil {
		return fmt.Errorf("leads: update %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Lead, error) {
	q := `
SELECT id, COALESCE(phone, ''), COALESCE(name, ''), COALESCE(project, ''),
       COALESCE(status, ''), last_call_status, dtmf_input, last_called_at
FROM ` + s.table + `
ORDER BY id
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	defer rows.Close()

	var out []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: list scan: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leads: list: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var (
		l              Lead
		status         string
		lastCallStatus sql.NullString
		dtmf           sql.NullString
		lastCalledAt   sql.NullTime
	)
	if err := row.Scan(
		&l.ID,
		&l.Phone,
		&l.Name,
		&l.Project,
		&status,
		&lastCallStatus,
		&dtmf,
		&lastCalledAt,
	); err != nil {
		return Lead{}, err
	}
	l.Status = Status(status)
	if lastCallStatus.Valid {
		l.LastCallStatus = &lastCallStatus.String
	}
	if dtmf.Valid {
		l.DTMFInput = &dtmf.String
	}
	if lastCalledAt.Valid {
		at := lastCalledAt.Time.UTC()
		l.LastCalledAt = &at
	}
	return l, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
