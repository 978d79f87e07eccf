package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/listling/listling/internal/auth"
	"github.com/listling/listling/internal/model"
)

// SessionCookie is the name of the login session cookie.
const SessionCookie = "listling_session"

// SessionReader resolves a session ID to the email it was established for.
// An unknown or expired session resolves to the empty string, not an error.
type SessionReader interface {
	Email(ctx context.Context, id string) (string, error)
}

// IdentityResolver re-hydrates an identity from a persisted email.
// A nil user without error means the email no longer resolves.
type IdentityResolver interface {
	GetUser(ctx context.Context, email string) (*model.User, error)
}

// CurrentUser returns a middleware that loads the authenticated user for
// the request, if any. Every failure mode falls back to anonymous: a
// missing cookie, an unknown session and a vanished user all let the
// request proceed without an identity.
func CurrentUser(logger *slog.Logger, sessions SessionReader, ids IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			email, err := sessions.Email(r.Context(), cookie.Value)
			if err != nil {
				logger.Warn("session lookup failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if email == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := ids.GetUser(r.Context(), email)
			if err != nil {
				logger.Warn("identity lookup failed",
					slog.String("request_id", GetRequestID(r.Context())),
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
