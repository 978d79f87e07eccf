package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/listling/listling/internal/model"
)

// Common errors for list repository operations.
var (
	ErrListNotFound  = errors.New("list not found")
	ErrDuplicateItem = errors.New("duplicate item text in list")
)

// CreateListWithFirstItem inserts a list together with its first item in a
// single transaction, so a list can never exist without at least one item.
func (r *Repository) CreateListWithFirstItem(ctx context.Context, list *model.List, first *model.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO lists (id, owner_id, created_at)
		VALUES ($1, $2, $3)
	`, list.ID, list.OwnerID, list.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO items (id, list_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, first.ID, first.ListID, first.Text, first.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create first item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit list creation: %w", err)
	}

	return nil
}

// GetListByID retrieves a list by its ID. Items and shares are not loaded.
func (r *Repository) GetListByID(ctx context.Context, id string) (*model.List, error) {
	query := `
		SELECT id, owner_id, created_at
		FROM lists
		WHERE id = $1
	`

	var list model.List
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&list.ID,
		&list.OwnerID,
		&list.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list by ID: %w", err)
	}

	return &list, nil
}

// ListsOwnedBy retrieves all lists owned by the given user, oldest first.
func (r *Repository) ListsOwnedBy(ctx context.Context, userID string) ([]*model.List, error) {
	query := `
		SELECT id, owner_id, created_at
		FROM lists
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned lists: %w", err)
	}
	defer rows.Close()

	var lists []*model.List
	for rows.Next() {
		var list model.List
		if err := rows.Scan(&list.ID, &list.OwnerID, &list.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, &list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lists: %w", err)
	}

	return lists, nil
}

// AddItem inserts an item into its list. The unique index on
// (list_id, text) is the backstop for concurrent submissions of identical
// text: whichever insert loses surfaces as ErrDuplicateItem.
func (r *Repository) AddItem(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (id, list_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.ListID,
		item.Text,
		item.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateItem
		}
		return fmt.Errorf("failed to add item: %w", err)
	}

	return nil
}

// ListItems retrieves the items of a list, oldest first.
func (r *Repository) ListItems(ctx context.Context, listID string) ([]*model.Item, error) {
	query := `
		SELECT id, list_id, text, created_at
		FROM items
		WHERE list_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.ListID, &item.Text, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// HasItemText reports whether the list already contains an item with
// exactly the given text. The comparison is case-sensitive.
func (r *Repository) HasItemText(ctx context.Context, listID, text string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM items WHERE list_id = $1 AND text = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, listID, text).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check item text: %w", err)
	}

	return exists, nil
}

// AddShare grants a user access to a list. Granting to an already-shared
// user is a no-op; the composite primary key keeps one row per recipient.
func (r *Repository) AddShare(ctx context.Context, listID, userID string) error {
	query := `
		INSERT INTO list_shares (list_id, user_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (list_id, user_id) DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, listID, userID); err != nil {
		return fmt.Errorf("failed to add share: %w", err)
	}

	return nil
}

// SharedWith retrieves the users a list has been shared with, in grant
// order.
func (r *Repository) SharedWith(ctx context.Context, listID string) ([]*model.User, error) {
	query := `
		SELECT u.id, u.email, u.created_at
		FROM list_shares s
		JOIN users u ON u.id = s.user_id
		WHERE s.list_id = $1
		ORDER BY s.created_at, u.id
	`

	rows, err := r.pool.Query(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shared user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return users, nil
}
