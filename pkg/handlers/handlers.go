// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Hinter is implemented by errors that carry a remediation hint for the client.
type Hinter interface {
	Hint() string
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError writes err as a JSON error envelope with the given status code.
// Server errors (5xx) are logged; if the error carries a remediation hint,
// the hint is included in the response body.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	}

	body := map[string]string{"error": err.Error()}

	var hinter Hinter
	if errors.As(err, &hinter) {
		body["hint"] = hinter.Hint()
	}

	RespondJSON(w, status, body)
}
