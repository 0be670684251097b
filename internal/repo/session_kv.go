// Package repo contains all database access logic for the DynoTrip backend.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dynotrip/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SessionKV is the durable key–value storage behind the trip state container.
// Values are opaque JSON strings; one row per (session, key). The container
// depends on this interface, not a concrete implementation, so it can run
// against Postgres, plain memory, or a test double interchangeably.
type SessionKV interface {
	// Get returns the stored value. Returns domain.ErrNotFound when the
	// session has no entry under key.
	Get(ctx context.Context, sessionID, key string) (string, error)

	// Set stores value under (sessionID, key), overwriting any previous value.
	Set(ctx context.Context, sessionID, key, value string) error

	// Delete removes the entry. Deleting an absent entry is a no-op.
	Delete(ctx context.Context, sessionID, key string) error
}

// pgSessionKV is the Postgres implementation of SessionKV.
type pgSessionKV struct {
	db db
}

// NewSessionKV constructs a SessionKV backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSessionKV(db db) SessionKV {
	return &pgSessionKV{db: db}
}

// Get retrieves one value by (session_id, key).
func (r *pgSessionKV) Get(ctx context.Context, sessionID, key string) (string, error) {
	const q = `
		SELECT value
		FROM session_state
		WHERE session_id = @session_id AND key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"session_id": sessionID, "key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.SessionKV.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.SessionKV.Get: %w", err)
	}
	return value, nil
}

// Set upserts one value.
func (r *pgSessionKV) Set(ctx context.Context, sessionID, key, value string) error {
	const q = `
		INSERT INTO session_state (session_id, key, value)
		VALUES (@session_id, @key, @value)
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = excluded.value, updated_at = now()`

	args := pgx.NamedArgs{"session_id": sessionID, "key": key, "value": value}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.SessionKV.Set: %w", err)
	}
	return nil
}

// Delete removes one entry; a missing row is not an error.
func (r *pgSessionKV) Delete(ctx context.Context, sessionID, key string) error {
	const q = `DELETE FROM session_state WHERE session_id = @session_id AND key = @key`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"session_id": sessionID, "key": key}); err != nil {
		return fmt.Errorf("repo.SessionKV.Delete: %w", err)
	}
	return nil
}
