package model

import "time"

// List is a to-do list. The owner is optional: lists started by anonymous
// visitors have none. Ownership is set once at creation and never moves.
type List struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Items and SharedWith are hydrated on demand; they are not
	// populated by every query that returns a List.
	Items      []*Item `json:"items,omitempty"`
	SharedWith []*User `json:"shared_with,omitempty"`
}

// Owned reports whether the list has an owner.
func (l *List) Owned() bool {
	return l.OwnerID != nil && *l.OwnerID != ""
}

// Item is one entry of a list. Item text is unique within its list
// (case-sensitive exact match), enforced both by validation and by a
// database constraint.
type Item struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
