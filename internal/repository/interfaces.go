package repository

import (
	"context"

	"github.com/listling/listling/internal/model"
)

// UserStore persists identities keyed by email.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrEmailExists if the email
	// is already registered.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the user with the given email, or
	// ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetOrCreateUserByEmail returns the user with the given email,
	// inserting it first if absent. The operation is atomic: concurrent
	// calls for the same email all observe the same row.
	GetOrCreateUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenStore persists one-time login tokens.
type TokenStore interface {
	// CreateToken inserts a new login token.
	CreateToken(ctx context.Context, token *model.Token) error

	// ConsumeToken atomically deletes the token with the given value and
	// returns its bound email. Returns ErrTokenNotFound if no such token
	// exists (including a token already consumed).
	ConsumeToken(ctx context.Context, value string) (string, error)
}

// ListStore persists lists, their items and their sharing grants.
type ListStore interface {
	// CreateListWithFirstItem inserts a list and its first item in one
	// transaction.
	CreateListWithFirstItem(ctx context.Context, list *model.List, first *model.Item) error

	// GetListByID returns the list with the given ID, without items or
	// shares hydrated, or ErrListNotFound.
	GetListByID(ctx context.Context, id string) (*model.List, error)

	// ListsOwnedBy returns all lists owned by the given user, oldest
	// first.
	ListsOwnedBy(ctx context.Context, userID string) ([]*model.List, error)

	// AddItem inserts an item. Returns ErrDuplicateItem if the list
	// already has an item with identical text.
	AddItem(ctx context.Context, item *model.Item) error

	// ListItems returns the items of a list, oldest first.
	ListItems(ctx context.Context, listID string) ([]*model.Item, error)

	// HasItemText reports whether the list already contains an item with
	// exactly the given text.
	HasItemText(ctx context.Context, listID, text string) (bool, error)

	// AddShare grants the user access to the list. Re-granting is a
	// no-op; the recipient appears at most once.
	AddShare(ctx context.Context, listID, userID string) error

	// SharedWith returns the users the list has been shared with, in
	// grant order.
	SharedWith(ctx context.Context, listID string) ([]*model.User, error)
}
