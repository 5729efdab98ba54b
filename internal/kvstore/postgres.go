package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/page-comments-api/internal/database"
)

// PostgresStore keeps keys in the kv_entries table. Expired rows are invisible
// to Get and removed in bulk by the Sweeper.
type PostgresStore struct {
	db        *database.DB
	namespace string
	now       func() time.Time
}

// NewPostgresStore creates a namespaced store backed by kv_entries
func NewPostgresStore(db *database.DB, namespace string) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace, now: time.Now}
}

// WithClock replaces the time source used for expiry
func (s *PostgresStore) WithClock(now func() time.Time) *PostgresStore {
	s.now = now
	return s
}

// Get returns the value stored under key, if it has not expired
func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2 AND expires_at > $3`

	var value string
	err := s.db.QueryRowContext(ctx, query, s.namespace, key, s.now().UTC()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv get %s:%s: %w", s.namespace, key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value and TTL
func (s *PostgresStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("kv put %s:%s: ttl must be positive", s.namespace, key)
	}

	query := `
		INSERT INTO kv_entries (namespace, key, value, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (namespace, key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	_, err := s.db.ExecContext(ctx, query, s.namespace, key, value, s.now().UTC().Add(ttl))
	if err != nil {
		return fmt.Errorf("kv put %s:%s: %w", s.namespace, key, err)
	}
	return nil
}

// Ping checks the database connection
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// DeleteExpired removes every expired row across all namespaces
func DeleteExpired(ctx context.Context, db *database.DB, now time.Time) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM kv_entries WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("kv sweep: %w", err)
	}
	return res.RowsAffected()
}
