package httpapi

import (
	"encoding/json"
	"net/http"

	"translatord/internal/manager"
	"translatord/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusForError maps well-known manager errors to HTTP status codes.
// Unknown errors fall through to 500.
func statusForError(err error) int {
	switch {
	case manager.IsInvalidInput(err):
		return http.StatusBadRequest
	case manager.IsUnknownPair(err):
		return http.StatusUnprocessableEntity
	case manager.IsArtifactMissing(err):
		return http.StatusNotFound
	case manager.IsFetchFailure(err):
		return http.StatusBadGateway
	case manager.IsIncompleteArtifact(err):
		return http.StatusInternalServerError
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
