package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sm8ta/fleet_maintenance_console/internal/core/ports"
)

const undefinedTable = "42P01"

// StateStore keeps client state in the client_state table.
type StateStore struct {
	db *sql.DB
}

func NewStateStore(db *sql.DB) (*StateStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	return &StateStore{db: db}, nil
}

func (s *StateStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM client_state WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ports.ErrStateNotFound
	}
	if err != nil {
		return "", wrap("read client state", err)
	}
	return value, nil
}

func (s *StateStore) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO client_state (key, value, updated_at)
	VALUES ($1, $2, CURRENT_TIMESTAMP)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return wrap("write client state", err)
	}
	return nil
}

func (s *StateStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM client_state WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return wrap("delete client state", err)
	}
	return nil
}

func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == undefinedTable {
		return fmt.Errorf("%s: client_state table is missing, run migrations: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
