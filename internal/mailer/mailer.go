// Package mailer provides outbound email delivery.
package mailer

import "context"

// Mailer sends a single email. A delivery failure is reported to the
// caller, which decides whether the surrounding flow treats it as fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
