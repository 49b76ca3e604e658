// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "healthlink/pkg/domain-errors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard error envelope
// {error, error_description}. Internal errors omit the description so
// storage details never leak to clients; the caller is expected to have
// logged the underlying error already.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		if msg := dErrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
