package model

import "time"

// Token is an opaque one-time login credential bound to a single email
// address. It is created when a login link is requested and consumed by
// authentication; there is no separate expiry field.
type Token struct {
	Value     string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
