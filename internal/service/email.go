package service

import (
	"net/mail"
	"strings"
)

// validEmail reports whether s is a single well-formed bare email address.
// Addresses with display names ("Bob <bob@example.com>") are rejected: the
// stored identity key must be exactly what the user typed.
func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	return addr.Address == s
}
