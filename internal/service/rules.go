package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/listling/listling/internal/repository"
)

// itemRule checks one constraint on candidate item text for a list.
type itemRule func(ctx context.Context, lists repository.ListStore, listID, text string) error

// newItemRules validate an item appended to an existing list. Order is a
// contract: the required check runs first, so empty text always reports
// ErrEmptyItemText and the uniqueness check is never consulted for it.
var newItemRules = []itemRule{
	requiredText,
	uniqueText,
}

// firstItemRules validate the first item of a brand new list, which cannot
// collide with anything.
var firstItemRules = []itemRule{
	requiredText,
}

// validateItemText runs the rules in order and returns the first failure.
func validateItemText(ctx context.Context, rules []itemRule, lists repository.ListStore, listID, text string) error {
	for _, rule := range rules {
		if err := rule(ctx, lists, listID, text); err != nil {
			return err
		}
	}
	return nil
}

// requiredText rejects empty and whitespace-only text.
func requiredText(_ context.Context, _ repository.ListStore, _ string, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyItemText
	}
	return nil
}

// uniqueText rejects text that already appears in the target list.
// The database unique index remains the backstop for the window between
// this check and the insert.
func uniqueText(ctx context.Context, lists repository.ListStore, listID, text string) error {
	exists, err := lists.HasItemText(ctx, listID, text)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate item: %w", err)
	}
	if exists {
		return ErrDuplicateItemText
	}
	return nil
}
