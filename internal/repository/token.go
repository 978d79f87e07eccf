package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/listling/listling/internal/model"
)

// ErrTokenNotFound indicates the token value is unknown or already consumed.
var ErrTokenNotFound = errors.New("login token not found")

// CreateToken inserts a new login token.
func (r *Repository) CreateToken(ctx context.Context, token *model.Token) error {
	query := `
		INSERT INTO login_tokens (value, email, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query,
		token.Value,
		token.Email,
		token.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create login token: %w", err)
	}

	return nil
}

// ConsumeToken deletes the token with the given value and returns the email
// it was bound to. Deletion and lookup are one statement, so a token can be
// redeemed exactly once even under concurrent presentation.
func (r *Repository) ConsumeToken(ctx context.Context, value string) (string, error) {
	query := `
		DELETE FROM login_tokens
		WHERE value = $1
		RETURNING email
	`

	var email string
	err := r.pool.QueryRow(ctx, query, value).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to consume login token: %w", err)
	}

	return email, nil
}
