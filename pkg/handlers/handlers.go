// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/neura/pkg/failure"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string       `json:"error"`
	Kind  failure.Kind `json:"kind"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>", "kind": "<failure kind>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("handler error", "error", err, "status", status)
	}
	RespondJSON(w, status, ErrorBody{
		Error: err.Error(),
		Kind:  failure.KindOf(err),
	})
}

// RespondFailure writes an error response whose status is derived from the
// error's failure kind.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	RespondError(w, logger, failure.Status(err), err)
}
