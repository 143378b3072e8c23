// Package shared holds the JSON response helpers every handler uses. It is
// the single place HTTP status codes are chosen from domain error codes.
package shared

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	dErrors "contacthub/pkg/domain-errors"
)

// ErrorBody is the uniform error envelope. Title is derived from the HTTP
// status class; Message carries the specific failure verbatim. StackTrace is
// populated only in development mode.
type ErrorBody struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

// statusTitles is the fixed status → title table. Statuses outside the table
// fall back to the 500 entry.
var statusTitles = map[int]string{
	http.StatusBadRequest:          "Validation Failed",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "Internal Server Error",
}

// includeStackTraces toggles development-mode stack traces in error bodies.
// Set once at startup before serving.
var includeStackTraces bool

// EnableStackTraces turns on stackTrace fields in error responses. Call only
// in development mode.
func EnableStackTraces() { includeStackTraces = true }

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the uniform envelope. It is the
// only place error codes become HTTP statuses.
func WriteError(w http.ResponseWriter, err error) {
	status := dErrors.HTTPStatus(dErrors.GetCode(err))
	title, ok := statusTitles[status]
	if !ok {
		status = http.StatusInternalServerError
		title = statusTitles[http.StatusInternalServerError]
	}
	body := ErrorBody{Title: title, Message: dErrors.Message(err)}
	if includeStackTraces {
		body.StackTrace = string(debug.Stack())
	}
	WriteJSON(w, status, body)
}
