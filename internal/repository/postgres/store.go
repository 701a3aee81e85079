package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"wordtrainer/internal/domain"
)

// Store implements repository.Store on the records table
type Store struct {
	db *sql.DB
}

// NewStore creates a new Postgres-backed store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the value stored at key
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM records WHERE key = $1`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Put inserts or replaces the value at key
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO records (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	_, err := s.db.ExecContext(ctx, query, key, value)
	return err
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE key = $1`
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

// Keys returns keys starting with prefix in sorted order
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key
		FROM records
		WHERE key LIKE $1
		ORDER BY key
	`

	rows, err := s.db.QueryContext(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// escapeLike quotes the LIKE wildcards in s
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
