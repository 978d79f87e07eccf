package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/listling/listling/internal/auth"
	"github.com/listling/listling/internal/model"
)

// stubSessions maps session IDs to emails.
type stubSessions struct {
	emails map[string]string
	err    error
}

func (s *stubSessions) Email(_ context.Context, id string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.emails[id], nil
}

// stubIdentities maps emails to users.
type stubIdentities struct {
	users map[string]*model.User
	err   error
}

func (s *stubIdentities) GetUser(_ context.Context, email string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[email], nil
}

// captureUser runs the middleware around a handler that records the
// resolved identity.
func captureUser(t *testing.T, sessions SessionReader, ids IdentityResolver, cookie string) *model.User {
	t.Helper()

	var got *model.User
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wrapped := CurrentUser(logger, sessions, ids)(handler)

	req := httptest.NewRequest("GET", "/api/my/lists", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie})
	}
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("handler not reached, status = %d", rec.Code)
	}
	return got
}

func TestCurrentUser_ResolvesIdentity(t *testing.T) {
	t.Parallel()

	user := &model.User{ID: "u1", Email: "edith@example.com"}
	sessions := &stubSessions{emails: map[string]string{"sess-1": user.Email}}
	ids := &stubIdentities{users: map[string]*model.User{user.Email: user}}

	got := captureUser(t, sessions, ids, "sess-1")
	if got == nil || got.ID != user.ID {
		t.Errorf("resolved user = %+v, want %+v", got, user)
	}
}

func TestCurrentUser_NoCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{emails: map[string]string{}}
	ids := &stubIdentities{users: map[string]*model.User{}}

	if got := captureUser(t, sessions, ids, ""); got != nil {
		t.Errorf("expected anonymous, got %+v", got)
	}
}

func TestCurrentUser_UnknownSessionIsAnonymous(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{emails: map[string]string{}}
	ids := &stubIdentities{users: map[string]*model.User{}}

	if got := captureUser(t, sessions, ids, "expired"); got != nil {
		t.Errorf("expected anonymous, got %+v", got)
	}
}

func TestCurrentUser_SessionLookupErrorIsAnonymous(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{err: errors.New("redis down")}
	ids := &stubIdentities{users: map[string]*model.User{}}

	if got := captureUser(t, sessions, ids, "sess-1"); got != nil {
		t.Errorf("expected anonymous on session store failure, got %+v", got)
	}
}

func TestCurrentUser_VanishedUserIsAnonymous(t *testing.T) {
	t.Parallel()

	// Session resolves but the user record no longer exists.
	sessions := &stubSessions{emails: map[string]string{"sess-1": "gone@example.com"}}
	ids := &stubIdentities{users: map[string]*model.User{}}

	if got := captureUser(t, sessions, ids, "sess-1"); got != nil {
		t.Errorf("expected anonymous for vanished user, got %+v", got)
	}
}

func TestCurrentUser_IdentityLookupErrorIsAnonymous(t *testing.T) {
	t.Parallel()

	sessions := &stubSessions{emails: map[string]string{"sess-1": "edith@example.com"}}
	ids := &stubIdentities{err: errors.New("db down")}

	if got := captureUser(t, sessions, ids, "sess-1"); got != nil {
		t.Errorf("expected anonymous on identity store failure, got %+v", got)
	}
}
