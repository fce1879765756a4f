// Package shared centralizes JSON response writing for all HTTP handlers so
// error envelopes stay consistent across the API surface.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "privacyguard/pkg/domain-errors"
)

// WriteError translates a domain error into the JSON error envelope:
//
//	{"error": "<code>", "error_description": "<message>"}
//
// Unclassified errors map to a 500 with a generic description so internal
// details never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	description := "An unexpected error occurred"

	var de *dErrors.Error
	if errors.As(err, &de) {
		description = de.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             string(code),
		"error_description": description,
	})
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
