package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/listling/listling/internal/middleware"
	"github.com/listling/listling/internal/model"
)

func TestSendLoginEmail(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/send-login-email", `{"email":"edith@example.com"}`)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body.String())
	}
	if got := decodeMap(t, rec)["message"]; got != MsgCheckEmail {
		t.Errorf("message = %q, want %q", got, MsgCheckEmail)
	}

	if len(app.mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(app.mailer.sent))
	}
	if !strings.Contains(app.mailer.sent[0], "http://example.com/login?token=") {
		t.Errorf("email body missing login link: %q", app.mailer.sent[0])
	}
}

func TestSendLoginEmailRejectsInvalidAddress(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []string{
		`{"email":"not-an-email"}`,
		`{"email":""}`,
		`{}`,
		`not json`,
	} {
		rec := app.do(http.MethodPost, "/auth/send-login-email", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want %d", body, rec.Code, http.StatusBadRequest)
			continue
		}
		if got := decodeMap(t, rec)["error"]; got != MsgInvalidEmail {
			t.Errorf("body %q: error = %q, want %q", body, got, MsgInvalidEmail)
		}
	}

	if len(app.mailer.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(app.mailer.sent))
	}
}

func TestLoginEstablishesSession(t *testing.T) {
	app := newTestApp(t)
	app.store.CreateToken(context.Background(), &model.Token{
		Value: "good-token",
		Email: "edith@example.com",
	})

	rec := app.do(http.MethodGet, "/login?token=good-token", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie not set")
	}
	if cookie.Value != "sess-edith@example.com" {
		t.Errorf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}

	// First login provisions the account.
	if _, err := app.store.GetUserByEmail(context.Background(), "edith@example.com"); err != nil {
		t.Errorf("user not provisioned: %v", err)
	}
}

func TestLoginUnknownTokenStaysAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/login?token=never-issued", "/login"} {
		rec := app.do(http.MethodGet, target, "")

		if rec.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want %d", target, rec.Code, http.StatusFound)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Errorf("%s: cookies set for anonymous redirect", target)
		}
	}
}

func TestLoginTokenWorksExactlyOnce(t *testing.T) {
	app := newTestApp(t)
	app.store.CreateToken(context.Background(), &model.Token{
		Value: "once",
		Email: "edith@example.com",
	})

	first := app.do(http.MethodGet, "/login?token=once", "")
	if len(first.Result().Cookies()) == 0 {
		t.Fatal("first use did not establish a session")
	}

	second := app.do(http.MethodGet, "/login?token=once", "")
	if second.Code != http.StatusFound {
		t.Errorf("second use: status = %d, want %d", second.Code, http.StatusFound)
	}
	if len(second.Result().Cookies()) != 0 {
		t.Error("second use established a session")
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	sessionID, _ := app.sessions.Create(context.Background(), "edith@example.com")

	rec := app.doWithCookie(http.MethodPost, "/auth/logout", sessionID)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(app.sessions.destroyed) != 1 || app.sessions.destroyed[0] != sessionID {
		t.Errorf("destroyed = %v, want [%s]", app.sessions.destroyed, sessionID)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie not cleared")
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodPost, "/auth/logout", "")

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(app.sessions.destroyed) != 0 {
		t.Errorf("destroyed = %v, want none", app.sessions.destroyed)
	}
}
