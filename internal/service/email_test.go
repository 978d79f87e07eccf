package service

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"edith@example.com", true},
		{"a@b.co", true},
		{"user+tag@example.com", true},
		{"user.name@sub.example.com", true},
		{"", false},
		{"   ", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"two@at@signs.com", false},
		{"spaces in@example.com", false},
		{"Bob <bob@example.com>", false},
		{"edith@example.com, frank@example.com", false},
	}

	for _, test := range tests {
		if got := validEmail(test.email); got != test.want {
			t.Errorf("validEmail(%q) = %v, want %v", test.email, got, test.want)
		}
	}
}
