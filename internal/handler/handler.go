// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// User-facing messages. The wording is part of the product surface and is
// pinned by the functional tests.
const (
	MsgCheckEmail    = "Check your email, we've sent you a link you can use to log in."
	MsgInvalidEmail  = "Enter a valid email address."
	MsgEmptyItem     = "You can't have an empty list item"
	MsgDuplicateItem = "You've already got this in your list"
	MsgShareSuccess  = "The list has been successfully shared."
	MsgShareFail     = "Given email is invalid or doesn't exist in Listling."
)

// errInvalidBody indicates an unparseable or missing request body.
var errInvalidBody = errors.New("invalid request body")

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already written; nothing left to report to the client.
		_ = err
	}
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMessage writes a JSON message body with the given status code.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errInvalidBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}
