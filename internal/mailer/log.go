package mailer

import (
	"context"
	"log/slog"
)

// LogMailer writes messages to the log instead of delivering them.
// Used in development and in environments without an SMTP relay.
type LogMailer struct {
	logger *slog.Logger
}

// NewLog creates a LogMailer.
func NewLog(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info("mail not sent (log mailer)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
