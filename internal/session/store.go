// Package session provides Redis-backed login session storage.
// A session maps an opaque cookie value to the email of the identity it
// was established for; the identity itself is re-hydrated per request.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces session keys in Redis.
const keyPrefix = "session:"

// Store provides session persistence on Redis.
type Store struct {
	client *redis.Client
	maxAge time.Duration
}

// New creates a Store connected to the given Redis URL.
func New(ctx context.Context, redisURL string, maxAge time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{client: client, maxAge: maxAge}, nil
}

// Create establishes a new session for email and returns its ID.
func (s *Store) Create(ctx context.Context, email string) (string, error) {
	id, err := generateSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, email, s.maxAge).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return id, nil
}

// Email returns the email bound to the session, or empty string if the
// session does not exist or has expired.
func (s *Store) Email(ctx context.Context, id string) (string, error) {
	email, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load session: %w", err)
	}
	return email, nil
}

// Destroy removes the session. Destroying an unknown session is a no-op.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// generateSessionID returns a cryptographically random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
