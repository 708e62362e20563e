// Package httputil holds the JSON response helpers shared by operator-facing
// handlers. The terminal-facing router never uses these; it always answers
// "OK".
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in the "error" field.
const (
	CodeBadRequest  = "bad_request"
	CodeConflict    = "conflict"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal_error"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": code, "error_description": description}.
// Internal errors never expose their description.
func WriteError(w http.ResponseWriter, status int, code, description string) {
	body := map[string]string{"error": code}
	if code != CodeInternal && description != "" {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}
