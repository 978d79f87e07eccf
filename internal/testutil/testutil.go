// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	"github.com/listling/listling/internal/database"
	"github.com/listling/listling/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 515151

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops all application tables and reapplies the migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool, databaseURL string) error {
	drop := `
		DROP TABLE IF EXISTS list_shares, items, lists, login_tokens, users,
			schema_migrations CASCADE
	`
	if _, err := pool.Exec(ctx, drop); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}

	if err := database.RunMigrations(databaseURL); err != nil {
		return fmt.Errorf("reapply migrations: %w", err)
	}

	return nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a test user with sensible defaults.
func NewTestUser(t testing.TB, email string) *model.User {
	t.Helper()
	return &model.User{
		ID:        ulid.Make().String(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

// NewTestList creates a test list. ownerID may be empty for an anonymous
// list.
func NewTestList(t testing.TB, ownerID string) *model.List {
	t.Helper()
	list := &model.List{
		ID:        ulid.Make().String(),
		CreatedAt: time.Now().UTC(),
	}
	if ownerID != "" {
		list.OwnerID = &ownerID
	}
	return list
}

// NewTestItem creates a test item for the given list.
func NewTestItem(t testing.TB, listID, text string) *model.Item {
	t.Helper()
	return &model.Item{
		ID:        ulid.Make().String(),
		ListID:    listID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
