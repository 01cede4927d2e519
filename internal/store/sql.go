package store

import (
	"context"
	"database/sql"
	"errors"

	"fambalance/internal/database"
)

// SQLStore keeps each key as one row of kv_entries
type SQLStore struct {
	db *database.DB
}

// NewSQLStore wraps a migrated database connection
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get retrieves the value stored at key
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Set updates or inserts the value at key
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.db.Dialect.UpsertKV(), key, string(value))
	return err
}

// Delete removes key; deleting a missing key is not an error
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, key)
	return err
}

// Keys lists every stored key in ascending order
func (s *SQLStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT entry_key FROM kv_entries ORDER BY entry_key`)
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
