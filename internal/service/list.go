package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/listling/listling/internal/metrics"
	"github.com/listling/listling/internal/model"
	"github.com/listling/listling/internal/repository"
)

// Service errors.
var (
	ErrEmptyItemText     = errors.New("item text must not be empty")
	ErrDuplicateItemText = errors.New("item text already exists in list")
	ErrListNotFound      = errors.New("list not found")

	// ErrShareRecipient covers both a malformed address and an address
	// with no registered account. One uniform failure keeps the share
	// endpoint from disclosing whether an account exists.
	ErrShareRecipient = errors.New("share recipient is invalid or unknown")
)

// ListService handles list creation, item validation and sharing.
type ListService struct {
	lists   repository.ListStore
	users   repository.UserStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewListService creates a new ListService.
func NewListService(
	lists repository.ListStore,
	users repository.UserStore,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *ListService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ListService{
		lists:   lists,
		users:   users,
		metrics: recorder,
		logger:  logger,
	}
}

// CreateNew creates a list together with its first item. A nil owner
// leaves the list anonymous; a non-nil owner is set exactly once here and
// never changes afterwards.
func (s *ListService) CreateNew(ctx context.Context, firstItemText string, owner *model.User) (*model.List, error) {
	firstItemText = strings.TrimSpace(firstItemText)
	if err := validateItemText(ctx, firstItemRules, s.lists, "", firstItemText); err != nil {
		s.metrics.IncItemRejected(metrics.RejectEmpty)
		return nil, err
	}

	now := time.Now().UTC()
	list := &model.List{
		ID:        ulid.Make().String(),
		CreatedAt: now,
	}
	if owner != nil {
		ownerID := owner.ID
		list.OwnerID = &ownerID
	}

	first := &model.Item{
		ID:        ulid.Make().String(),
		ListID:    list.ID,
		Text:      firstItemText,
		CreatedAt: now,
	}

	if err := s.lists.CreateListWithFirstItem(ctx, list, first); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	list.Items = []*model.Item{first}

	s.metrics.IncListCreated(list.Owned())
	s.logger.Info("list created",
		slog.String("list_id", list.ID),
		slog.Bool("owned", list.Owned()),
	)
	return list, nil
}

// AddItem validates candidate text against the target list and appends it.
// Validation runs the required rule before the uniqueness rule; on failure
// nothing is persisted and the typed error identifies the violated rule.
func (s *ListService) AddItem(ctx context.Context, listID, text string) (*model.Item, error) {
	if _, err := s.getList(ctx, listID); err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if err := validateItemText(ctx, newItemRules, s.lists, listID, text); err != nil {
		switch {
		case errors.Is(err, ErrEmptyItemText):
			s.metrics.IncItemRejected(metrics.RejectEmpty)
		case errors.Is(err, ErrDuplicateItemText):
			s.metrics.IncItemRejected(metrics.RejectDuplicate)
		}
		return nil, err
	}

	item := &model.Item{
		ID:        ulid.Make().String(),
		ListID:    listID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.lists.AddItem(ctx, item); err != nil {
		// A concurrent submission can slip past the uniqueness rule;
		// the unique index turns the losing insert into the same
		// duplicate outcome.
		if errors.Is(err, repository.ErrDuplicateItem) {
			s.metrics.IncItemRejected(metrics.RejectDuplicate)
			return nil, ErrDuplicateItemText
		}
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.metrics.IncItemAdded()
	return item, nil
}

// Share grants the user registered under shareeEmail access to the list.
// A malformed address and an unregistered address report the same
// ErrShareRecipient. Re-sharing with an already-shared user succeeds and
// leaves a single grant.
func (s *ListService) Share(ctx context.Context, listID, shareeEmail string) error {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return err
	}

	shareeEmail = strings.TrimSpace(shareeEmail)
	if !validEmail(shareeEmail) {
		s.metrics.IncShareRejected()
		return ErrShareRecipient
	}

	sharee, err := s.users.GetUserByEmail(ctx, shareeEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncShareRejected()
			return ErrShareRecipient
		}
		return fmt.Errorf("failed to resolve share recipient: %w", err)
	}

	if err := s.lists.AddShare(ctx, list.ID, sharee.ID); err != nil {
		return fmt.Errorf("failed to share list: %w", err)
	}

	s.metrics.IncListShared()
	s.logger.Info("list shared",
		slog.String("list_id", list.ID),
		slog.String("sharee_id", sharee.ID),
	)
	return nil
}

// GetList returns a list with its items and sharing grants hydrated.
func (s *ListService) GetList(ctx context.Context, listID string) (*model.List, error) {
	list, err := s.getList(ctx, listID)
	if err != nil {
		return nil, err
	}

	items, err := s.lists.ListItems(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	list.Items = items

	shared, err := s.lists.SharedWith(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shares: %w", err)
	}
	list.SharedWith = shared

	return list, nil
}

// MyLists returns the lists owned by the given user, oldest first.
func (s *ListService) MyLists(ctx context.Context, owner *model.User) ([]*model.List, error) {
	if owner == nil {
		return nil, nil
	}
	lists, err := s.lists.ListsOwnedBy(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned lists: %w", err)
	}
	return lists, nil
}

// getList maps the repository's not-found error to the service error.
func (s *ListService) getList(ctx context.Context, listID string) (*model.List, error) {
	list, err := s.lists.GetListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}
