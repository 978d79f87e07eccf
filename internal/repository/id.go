package repository

import "github.com/oklog/ulid/v2"

// newID returns a fresh ULID for rows inserted by the repository itself.
func newID() string {
	return ulid.Make().String()
}
