package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// KV is a key-value blob store backed by the blobs table
type KV struct {
	db *sql.DB
}

// NewKV returns a blob store over db. RunMigrations must have been applied.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db}
}

// Get returns the value stored under key. The boolean is false when the key
// does not exist.
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key=?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set overwrites the value stored under key
func (s *KV) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
			  ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	_, err := s.db.ExecContext(ctx, query, key, value, time.Now())
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key=?`, key)
	return err
}
