// Package model defines domain entities for the application.
package model

import "time"

// User is an identity keyed by email address.
// Users are created explicitly by admin tooling or auto-provisioned
// the first time a login token for their email is resolved.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
