package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestLogging_TokenRedaction ensures login tokens never reach the logs.
// The login callback carries its one-time token in the query string, so the
// logger must record the path only.
func TestLogging_TokenRedaction(t *testing.T) {
	t.Parallel()

	const token = "0d8757a2-9f8c-4a31-9d2e-7b1f29c3d441"

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("GET", "/login?token="+token, nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	if strings.Contains(logOutput, token) {
		t.Errorf("log output contains login token - tokens must never be logged")
	}
	if !strings.Contains(logOutput, `"path":"/login"`) {
		t.Errorf("log output missing bare path, got: %s", logOutput)
	}
}

func TestLogging_StatusAndMethod(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("POST", "/api/lists", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	logOutput := buf.String()

	if !strings.Contains(logOutput, `"status_code":201`) {
		t.Errorf("log output missing status code, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, `"method":"POST"`) {
		t.Errorf("log output missing method, got: %s", logOutput)
	}
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("GET", "/api/lists/x", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("5xx response not logged at error level: %s", buf.String())
	}
}

func TestLogging_ImplicitStatusOK(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// Handler writes a body without an explicit WriteHeader call.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	wrapped := Logger(logger)(handler)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), `"status_code":200`) {
		t.Errorf("implicit 200 not recorded: %s", buf.String())
	}
}
