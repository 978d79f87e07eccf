package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/listling/listling/internal/middleware"
	"github.com/listling/listling/internal/service"
)

// SessionManager establishes and destroys login sessions.
type SessionManager interface {
	Create(ctx context.Context, email string) (string, error)
	Destroy(ctx context.Context, id string) error
}

// AuthHandler manages the passwordless login endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	sessions      SessionManager
	logger        *slog.Logger
	cookieMaxAge  time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, sessions SessionManager, logger *slog.Logger, cookieMaxAge time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          auth,
		sessions:      sessions,
		logger:        logger,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

// SendLoginEmail accepts a submitted email and mails a login link.
// The success response is identical whether or not an account exists for
// the address; only a malformed address is rejected.
//
// POST /auth/send-login-email
func (h *AuthHandler) SendLoginEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, MsgInvalidEmail)
		return
	}

	if err := h.auth.SendLoginLink(r.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			writeError(w, http.StatusBadRequest, MsgInvalidEmail)
			return
		}
		h.logger.Error("send login email failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusAccepted, MsgCheckEmail)
}

// Login completes the emailed callback link. A resolvable token
// establishes a session; anything else falls through to an anonymous
// redirect with no error surfaced.
//
// GET /login?token=VALUE
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		h.logger.Error("authentication failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if user == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	sessionID, err := h.sessions.Create(r.Context(), user.Email)
	if err != nil {
		h.logger.Error("session creation failed",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout destroys the current session, if one exists.
//
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Warn("session destroy failed",
				slog.String("request_id", middleware.GetRequestID(r.Context())),
				slog.String("error", err.Error()),
			)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}
